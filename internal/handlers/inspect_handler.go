package handlers

import (
	"io"
	"net/http"

	"serverless-adapter/pkg/lambda"
)

// InspectResponse describes the request as the application received it
type InspectResponse struct {
	Method    string              `json:"method"`
	Path      string              `json:"path"`
	Query     map[string][]string `json:"query"`
	Headers   map[string][]string `json:"headers"`
	Body      string              `json:"body"`
	Host      string              `json:"host"`
	Source    string              `json:"source,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
	Stage     string              `json:"stage,omitempty"`
	SourceIP  string              `json:"source_ip,omitempty"`
}

// Inspect echoes the incoming request. It is framework-agnostic so every demo
// app variant mounts the same handler.
func Inspect(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, badRequest(err, ""))
		return
	}

	resp := InspectResponse{
		Method:  r.Method,
		Path:    r.URL.Path,
		Query:   r.URL.Query(),
		Headers: r.Header.Clone(),
		Body:    string(body),
		Host:    r.Host,
	}

	if event, ok := lambda.FromContext(r.Context()); ok {
		resp.Source = event.Source
		resp.RequestID = event.RequestID
		resp.Stage = event.Stage
		resp.SourceIP = event.SourceIP
	}

	respondJSON(w, http.StatusOK, resp)
}
