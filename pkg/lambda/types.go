package lambda

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

type contextKey int

const requestContextKey contextKey = iota

// Request is the canonical, framework-agnostic request synthesized from a provider event.
// It is created once per invocation and never mutated after it is handed to a framework.
type Request struct {
	Source         string            `json:"source"`
	Method         string            `json:"method"`
	Path           string            `json:"path"`
	RawPath        string            `json:"raw_path,omitempty"`
	RawQuery       string            `json:"raw_query"`
	Query          url.Values        `json:"query"`
	Headers        http.Header       `json:"headers"`
	Body           []byte            `json:"body"`
	PathParams     map[string]string `json:"path_params"`
	StageVariables map[string]string `json:"stage_variables"`
	Host           string            `json:"host"`
	SourceIP       string            `json:"source_ip"`
	RequestID      string            `json:"request_id"`
	Stage          string            `json:"stage"`

	// MultiValueHeaders records that the inbound envelope carried multi-value
	// headers. ALB requires the reply to use the same mode.
	MultiValueHeaders bool `json:"multi_value_headers"`

	// Event is the decoded provider envelope (an aws-lambda-go events type).
	Event any `json:"-"`
}

// Response is the completed response collected from a framework
type Response struct {
	StatusCode int         `json:"status_code"`
	Headers    http.Header `json:"headers"`
	Body       []byte      `json:"body"`
}

// URL returns the request URL. Path is already decoded, so it is escaped
// rather than parsed; RawPath is used when it is a valid encoding of Path.
func (r *Request) URL() *url.URL {
	return &url.URL{
		Host:     r.Host,
		Path:     r.Path,
		RawPath:  r.RawPath,
		RawQuery: r.RawQuery,
	}
}

// RequestURI returns the escaped path plus the encoded query string
func (r *Request) RequestURI() string {
	return r.URL().RequestURI()
}

// HTTPRequest builds the *http.Request handed to the framework. The synthetic
// request is reachable from the request context through FromContext.
func (r *Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(NewContext(ctx, r), r.Method, "/", bytes.NewReader(r.Body))
	if err != nil {
		return nil, fmt.Errorf("build http request for %s %s: %w", r.Method, r.Path, err)
	}

	req.URL = r.URL()
	req.RequestURI = req.URL.RequestURI()
	req.Header = r.Headers.Clone()
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	req.Host = r.Host
	if r.SourceIP != "" {
		// net/http reports RemoteAddr as host:port
		req.RemoteAddr = net.JoinHostPort(r.SourceIP, "0")
	}
	req.ContentLength = int64(len(r.Body))
	if len(r.Body) == 0 {
		req.Body = http.NoBody
	}

	return req, nil
}

// NewContext returns a copy of ctx carrying the synthetic request
func NewContext(ctx context.Context, r *Request) context.Context {
	return context.WithValue(ctx, requestContextKey, r)
}

// FromContext returns the synthetic request stored in ctx, if any
func FromContext(ctx context.Context) (*Request, bool) {
	r, ok := ctx.Value(requestContextKey).(*Request)
	return r, ok
}
