// Package aws converts collected responses into the reply envelopes of the
// AWS Lambda HTTP integrations: ALB target groups and API Gateway REST (v1)
// and HTTP (v2) APIs.
package aws

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"serverless-adapter/internal/shape"
	"serverless-adapter/pkg/lambda"
)

// Adapter encodes replies for one provider envelope
type Adapter interface {
	Kind() shape.Kind
	Name() string

	// Reply converts a completed response for req into the provider envelope
	Reply(req *lambda.Request, res *lambda.Response) (any, error)

	// ErrorReply builds a JSON error envelope without a framework round trip
	ErrorReply(req *lambda.Request, status int, body ErrorBody) any
}

// ErrorBody is the JSON payload of error replies
type ErrorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Registry maps detected kinds to their adapters
type Registry struct {
	adapters map[shape.Kind]Adapter
}

// NewRegistry registers adapters by their kind; later entries replace earlier ones
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[shape.Kind]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Kind()] = a
	}
	return r
}

// DefaultRegistry registers the ALB, API Gateway v1 and v2 adapters
func DefaultRegistry(encoder *BodyEncoder) *Registry {
	if encoder == nil {
		encoder = NewBodyEncoder()
	}
	return NewRegistry(
		NewALB(encoder),
		NewAPIGatewayV1(encoder),
		NewAPIGatewayV2(encoder),
	)
}

// Lookup returns the adapter for kind
func (r *Registry) Lookup(kind shape.Kind) (Adapter, bool) {
	a, ok := r.adapters[kind]
	return a, ok
}

// Kinds lists registered kinds ordered by kind
func (r *Registry) Kinds() []shape.Kind {
	kinds := make([]shape.Kind, 0, len(r.adapters))
	for k := range r.adapters {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// UnrecognizedReply is returned for events no adapter can answer. It uses the
// API Gateway proxy response shape, the most widely accepted of the three.
func UnrecognizedReply(body ErrorBody) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      http.StatusBadRequest,
		Headers:         map[string]string{"Content-Type": "application/json"},
		Body:            errorJSON(body),
		IsBase64Encoded: false,
	}
}

func errorJSON(body ErrorBody) string {
	data, err := json.Marshal(body)
	if err != nil {
		return `{"error":"internal error"}`
	}
	return string(data)
}

func errorHeaders() http.Header {
	return http.Header{"Content-Type": {"application/json"}}
}

func statusDescription(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return fmt.Sprint(code)
	}
	return fmt.Sprintf("%d %s", code, text)
}

// singleValueHeaders keeps the last value of each header
func singleValueHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		if len(vs) == 0 {
			continue
		}
		out[k] = vs[len(vs)-1]
	}
	return out
}

// joinedHeaders folds repeated headers into one comma-separated value
func joinedHeaders(h http.Header, skip ...string) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		if len(vs) == 0 || contains(skip, k) {
			continue
		}
		out[k] = strings.Join(vs, ",")
	}
	return out
}

func multiValueHeaders(h http.Header) map[string][]string {
	out := make(map[string][]string, len(h))
	for k, vs := range h {
		if len(vs) == 0 {
			continue
		}
		out[k] = append([]string(nil), vs...)
	}
	return out
}

func contains(list []string, key string) bool {
	for _, s := range list {
		if http.CanonicalHeaderKey(s) == http.CanonicalHeaderKey(key) {
			return true
		}
	}
	return false
}
