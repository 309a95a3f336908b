// Package testutil builds provider events for tests.
package testutil

import (
	"encoding/json"
	"net/url"
	"sort"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

const targetGroupARN = "arn:aws:elasticloadbalancing:us-east-1:123456789012:targetgroup/lambda-target/abcdef123456"

func encodeBody(body any) string {
	if body == nil {
		return ""
	}
	if s, ok := body.(string); ok {
		return s
	}
	data, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	return string(data)
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

func jsonHeaders(body any, headers map[string]string) map[string]string {
	out := map[string]string{
		"accept":            "application/json",
		"host":              "lambda-test.example.com",
		"user-agent":        "Mozilla/5.0",
		"x-forwarded-for":   "203.0.113.10",
		"x-forwarded-port":  "443",
		"x-forwarded-proto": "https",
	}
	if body != nil {
		out["content-type"] = "application/json"
	}
	for k, v := range headers {
		out[k] = v
	}
	return out
}

// ALBEventRequest returns an ALB target group event with single-value headers
func ALBEventRequest(method, path string, body any) events.ALBTargetGroupRequest {
	return events.ALBTargetGroupRequest{
		HTTPMethod:            method,
		Path:                  path,
		QueryStringParameters: map[string]string{},
		Headers:               jsonHeaders(body, nil),
		RequestContext: events.ALBTargetGroupRequestContext{
			ELB: events.ELBContext{TargetGroupArn: targetGroupARN},
		},
		IsBase64Encoded: false,
		Body:            encodeBody(body),
	}
}

// ALBEvent returns the JSON payload of ALBEventRequest
func ALBEvent(method, path string, body any) []byte {
	return mustMarshal(ALBEventRequest(method, path, body))
}

// ALBEventWithMultiValueHeaders returns an ALB event using the multi-value header mode
func ALBEventWithMultiValueHeaders(method, path string, body any) []byte {
	single := jsonHeaders(body, nil)
	multi := make(map[string][]string, len(single))
	for k, v := range single {
		multi[k] = []string{v}
	}

	e := events.ALBTargetGroupRequest{
		HTTPMethod:                      method,
		Path:                            path,
		MultiValueQueryStringParameters: map[string][]string{},
		MultiValueHeaders:               multi,
		RequestContext: events.ALBTargetGroupRequestContext{
			ELB: events.ELBContext{TargetGroupArn: targetGroupARN},
		},
		Body: encodeBody(body),
	}
	return mustMarshal(e)
}

// APIGatewayV1EventRequest returns an API Gateway REST proxy event
func APIGatewayV1EventRequest(method, path string, body any, headers, query map[string]string) events.APIGatewayProxyRequest {
	h := jsonHeaders(body, headers)
	multiHeaders := make(map[string][]string, len(h))
	for k, v := range h {
		multiHeaders[k] = []string{v}
	}
	multiQuery := make(map[string][]string, len(query))
	for k, v := range query {
		multiQuery[k] = []string{v}
	}

	return events.APIGatewayProxyRequest{
		Resource:                        "/{proxy+}",
		Path:                            path,
		HTTPMethod:                      method,
		Headers:                         h,
		MultiValueHeaders:               multiHeaders,
		QueryStringParameters:           query,
		MultiValueQueryStringParameters: multiQuery,
		PathParameters:                  map[string]string{"proxy": strings.TrimPrefix(path, "/")},
		StageVariables:                  nil,
		RequestContext: events.APIGatewayProxyRequestContext{
			AccountID:    "123456789012",
			ResourceID:   "us4z18",
			Stage:        "test",
			RequestID:    "41b45ea3-70b5-11e6-b7bd-69b5aaebc7d9",
			ResourcePath: "/{proxy+}",
			Path:         "/test" + path,
			HTTPMethod:   method,
			APIID:        "wt6mne2s9k",
			Identity: events.APIGatewayRequestIdentity{
				SourceIP:  "203.0.113.10",
				UserAgent: "Mozilla/5.0",
			},
		},
		Body:            encodeBody(body),
		IsBase64Encoded: false,
	}
}

// APIGatewayV1Event returns the JSON payload of APIGatewayV1EventRequest
func APIGatewayV1Event(method, path string, body any, headers, query map[string]string) []byte {
	return mustMarshal(APIGatewayV1EventRequest(method, path, body, headers, query))
}

// APIGatewayV2EventRequest returns an API Gateway HTTP API (payload 2.0) event
func APIGatewayV2EventRequest(method, path string, body any, headers, query map[string]string) events.APIGatewayV2HTTPRequest {
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(query[k]))
	}

	return events.APIGatewayV2HTTPRequest{
		Version:               "2.0",
		RouteKey:              "$default",
		RawPath:               path,
		RawQueryString:        strings.Join(parts, "&"),
		Headers:               jsonHeaders(body, headers),
		QueryStringParameters: query,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			RouteKey:   "$default",
			AccountID:  "123456789012",
			Stage:      "$default",
			RequestID:  "JKJaXmPLvHcESHA=",
			APIID:      "r3pmxmplak",
			DomainName: "r3pmxmplak.execute-api.us-east-2.amazonaws.com",
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:    method,
				Path:      path,
				Protocol:  "HTTP/1.1",
				SourceIP:  "203.0.113.10",
				UserAgent: "Mozilla/5.0",
			},
		},
		Body:            encodeBody(body),
		IsBase64Encoded: false,
	}
}

// APIGatewayV2Event returns the JSON payload of APIGatewayV2EventRequest
func APIGatewayV2Event(method, path string, body any, headers, query map[string]string) []byte {
	return mustMarshal(APIGatewayV2EventRequest(method, path, body, headers, query))
}

// Marshal encodes any event value
func Marshal(v any) []byte {
	return mustMarshal(v)
}

// NamedEvent pairs an event payload with the shape it must be detected as
type NamedEvent struct {
	Name    string
	Payload []byte
}

// AllEvents mirrors the full matrix of shapes, including absent and malformed input
func AllEvents() []NamedEvent {
	return []NamedEvent{
		{"unrecognized", nil},
		{"alb", ALBEvent("POST", "/users", map[string]string{"name": "potato with banana"})},
		{"alb", ALBEventWithMultiValueHeaders("PUT", "/users", map[string]string{"name": "batata"})},
		{"alb", ALBEvent("GET", "/users", nil)},
		{"alb", ALBEventWithMultiValueHeaders("GET", "/users", nil)},
		{"api-gateway-v1", APIGatewayV1Event("POST", "/users", map[string]string{"name": "Fake"}, nil, nil)},
		{"api-gateway-v1", APIGatewayV1Event("PUT", "/users", map[string]string{"name": "Fake v2"}, nil, nil)},
		{"api-gateway-v1", APIGatewayV1Event("GET", "/users", nil, map[string]string{}, map[string]string{"page": "2"})},
		{"api-gateway-v2", APIGatewayV2Event("GET", "/collaborators", nil, nil, nil)},
		{"api-gateway-v2", APIGatewayV2Event("POST", "/collaborators", map[string]string{"name": "Fake"}, nil, nil)},
		{"api-gateway-v2", APIGatewayV2Event("PUT", "/collaborators", map[string]string{"name": "Fake v2"}, nil, nil)},
		{"api-gateway-v2", APIGatewayV2Event("GET", "/collaborators", nil, map[string]string{}, map[string]string{"page": "2"})},
		{"api-gateway-v2", APIGatewayV2Event("collaborators", "/users", nil, nil, nil)},
	}
}
