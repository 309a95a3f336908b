// Package synth converts a detected provider envelope into the canonical
// synthetic request handed to a framework.
package synth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"serverless-adapter/internal/shape"
	"serverless-adapter/pkg/lambda"
)

// Options tune request synthesis
type Options struct {
	// StripBasePath is removed from the start of the request path, for APIs
	// mounted under a custom domain base path mapping.
	StripBasePath string
}

// Synthesize builds the synthetic request for payload, already detected as kind
func Synthesize(payload []byte, kind shape.Kind, opts Options) (*lambda.Request, error) {
	var (
		req *lambda.Request
		err error
	)

	switch kind {
	case shape.KindALB:
		var e events.ALBTargetGroupRequest
		if err := decode(payload, kind, &e); err != nil {
			return nil, err
		}
		req, err = fromALB(&e)
	case shape.KindAPIGatewayV1:
		var e events.APIGatewayProxyRequest
		if err := decode(payload, kind, &e); err != nil {
			return nil, err
		}
		req, err = fromAPIGatewayV1(&e)
	case shape.KindAPIGatewayV2:
		var e events.APIGatewayV2HTTPRequest
		if err := decode(payload, kind, &e); err != nil {
			return nil, err
		}
		req, err = fromAPIGatewayV2(&e)
	default:
		return nil, &shape.UnsupportedKindError{Op: "synthesize", Kind: kind}
	}
	if err != nil {
		return nil, err
	}

	req.Source = kind.String()
	req.Method = strings.ToUpper(req.Method)
	req.Path = normalizePath(stripBasePath(req.Path, opts.StripBasePath))
	if req.RawPath != "" {
		req.RawPath = normalizePath(stripBasePath(req.RawPath, opts.StripBasePath))
	}
	if req.Host == "" {
		req.Host = req.Headers.Get("Host")
	}
	if len(req.Body) > 0 && req.Headers.Get("Content-Length") == "" {
		req.Headers.Set("Content-Length", fmt.Sprint(len(req.Body)))
	}

	return req, nil
}

func decode(payload []byte, kind shape.Kind, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("decode %s event: %w: %v", kind, ErrMalformedEvent, err)
	}
	return nil
}

func fromALB(e *events.ALBTargetGroupRequest) (*lambda.Request, error) {
	headers := mergeHeaders(e.Headers, e.MultiValueHeaders)
	requestID := headers.Get("X-Amzn-Trace-Id")

	body, err := decodeBody(e.Body, e.IsBase64Encoded, shape.KindALB, requestID)
	if err != nil {
		return nil, err
	}

	// ALB forwards query values exactly as the client sent them
	rawQuery := joinRawQuery(mergeQuery(e.QueryStringParameters, e.MultiValueQueryStringParameters))

	return &lambda.Request{
		Method:            e.HTTPMethod,
		Path:              e.Path,
		RawQuery:          rawQuery,
		Query:             parseQuery(rawQuery),
		Headers:           headers,
		Body:              body,
		SourceIP:          firstForwardedFor(headers),
		RequestID:         requestID,
		MultiValueHeaders: len(e.MultiValueHeaders) > 0,
		Event:             e,
	}, nil
}

func fromAPIGatewayV1(e *events.APIGatewayProxyRequest) (*lambda.Request, error) {
	body, err := decodeBody(e.Body, e.IsBase64Encoded, shape.KindAPIGatewayV1, e.RequestContext.RequestID)
	if err != nil {
		return nil, err
	}

	query := mergeQuery(e.QueryStringParameters, e.MultiValueQueryStringParameters)

	return &lambda.Request{
		Method:            e.HTTPMethod,
		Path:              e.Path,
		RawQuery:          query.Encode(),
		Query:             query,
		Headers:           mergeHeaders(e.Headers, e.MultiValueHeaders),
		Body:              body,
		PathParams:        e.PathParameters,
		StageVariables:    e.StageVariables,
		SourceIP:          e.RequestContext.Identity.SourceIP,
		RequestID:         e.RequestContext.RequestID,
		Stage:             e.RequestContext.Stage,
		MultiValueHeaders: len(e.MultiValueHeaders) > 0,
		Event:             e,
	}, nil
}

func fromAPIGatewayV2(e *events.APIGatewayV2HTTPRequest) (*lambda.Request, error) {
	body, err := decodeBody(e.Body, e.IsBase64Encoded, shape.KindAPIGatewayV2, e.RequestContext.RequestID)
	if err != nil {
		return nil, err
	}

	// rawPath keeps the client's escaping; requestContext.http.path is decoded
	path, rawPath := e.RequestContext.HTTP.Path, ""
	if e.RawPath != "" {
		path = e.RawPath
		if unescaped, err := url.PathUnescape(e.RawPath); err == nil && unescaped != e.RawPath {
			path, rawPath = unescaped, e.RawPath
		}
	}

	rawQuery := e.RawQueryString
	if rawQuery == "" && len(e.QueryStringParameters) > 0 {
		rawQuery = mergeQuery(e.QueryStringParameters, nil).Encode()
	}

	headers := mergeHeaders(e.Headers, nil)
	if len(e.Cookies) > 0 {
		headers.Set("Cookie", strings.Join(e.Cookies, "; "))
	}

	return &lambda.Request{
		Method:         e.RequestContext.HTTP.Method,
		Path:           path,
		RawPath:        rawPath,
		RawQuery:       rawQuery,
		Query:          parseQuery(rawQuery),
		Headers:        headers,
		Body:           body,
		PathParams:     e.PathParameters,
		StageVariables: e.StageVariables,
		Host:           e.RequestContext.DomainName,
		SourceIP:       e.RequestContext.HTTP.SourceIP,
		RequestID:      e.RequestContext.RequestID,
		Stage:          e.RequestContext.Stage,
		Event:          e,
	}, nil
}

func decodeBody(body string, encoded bool, kind shape.Kind, requestID string) ([]byte, error) {
	if body == "" {
		return nil, nil
	}
	if !encoded {
		return []byte(body), nil
	}

	decoded, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, &MalformedBodyError{Kind: kind, RequestID: requestID, Err: err}
	}
	return decoded, nil
}

func stripBasePath(path, base string) string {
	base = strings.Trim(base, "/")
	if base == "" {
		return path
	}
	base = "/" + base

	switch {
	case path == base:
		return "/"
	case strings.HasPrefix(path, base+"/"):
		return path[len(base):]
	default:
		return path
	}
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

// parseQuery keeps whatever pairs parse; a malformed pair is left to the
// framework, which sees the raw query string too.
func parseQuery(rawQuery string) url.Values {
	values, _ := url.ParseQuery(rawQuery)
	if values == nil {
		values = url.Values{}
	}
	return values
}
