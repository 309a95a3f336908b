package aws

import (
	"github.com/aws/aws-lambda-go/events"

	"serverless-adapter/internal/shape"
	"serverless-adapter/pkg/lambda"
)

// APIGatewayV1 replies to API Gateway REST API proxy events
type APIGatewayV1 struct {
	encoder *BodyEncoder
}

// NewAPIGatewayV1 creates the REST API adapter
func NewAPIGatewayV1(encoder *BodyEncoder) *APIGatewayV1 {
	return &APIGatewayV1{encoder: encoder}
}

func (a *APIGatewayV1) Kind() shape.Kind { return shape.KindAPIGatewayV1 }
func (a *APIGatewayV1) Name() string     { return "ApiGatewayV1Adapter" }

// Reply fills both header maps; API Gateway merges them, with the
// multi-value map taking precedence.
func (a *APIGatewayV1) Reply(_ *lambda.Request, res *lambda.Response) (any, error) {
	body, isBase64 := a.encoder.Encode(res.Headers, res.Body)

	return events.APIGatewayProxyResponse{
		StatusCode:        res.StatusCode,
		Headers:           singleValueHeaders(res.Headers),
		MultiValueHeaders: multiValueHeaders(res.Headers),
		Body:              body,
		IsBase64Encoded:   isBase64,
	}, nil
}

func (a *APIGatewayV1) ErrorReply(req *lambda.Request, status int, body ErrorBody) any {
	reply, _ := a.Reply(req, &lambda.Response{
		StatusCode: status,
		Headers:    errorHeaders(),
		Body:       []byte(errorJSON(body)),
	})
	return reply
}

// APIGatewayV2 replies to API Gateway HTTP API (payload format 2.0) events
type APIGatewayV2 struct {
	encoder *BodyEncoder
}

// NewAPIGatewayV2 creates the HTTP API adapter
func NewAPIGatewayV2(encoder *BodyEncoder) *APIGatewayV2 {
	return &APIGatewayV2{encoder: encoder}
}

func (a *APIGatewayV2) Kind() shape.Kind { return shape.KindAPIGatewayV2 }
func (a *APIGatewayV2) Name() string     { return "ApiGatewayV2Adapter" }

// Reply joins repeated headers with commas. Set-Cookie cannot be joined, so
// its values travel in the cookies list.
func (a *APIGatewayV2) Reply(_ *lambda.Request, res *lambda.Response) (any, error) {
	body, isBase64 := a.encoder.Encode(res.Headers, res.Body)

	var cookies []string
	if values := res.Headers.Values("Set-Cookie"); len(values) > 0 {
		cookies = append(cookies, values...)
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode:      res.StatusCode,
		Headers:         joinedHeaders(res.Headers, "Set-Cookie"),
		Body:            body,
		IsBase64Encoded: isBase64,
		Cookies:         cookies,
	}, nil
}

func (a *APIGatewayV2) ErrorReply(req *lambda.Request, status int, body ErrorBody) any {
	reply, _ := a.Reply(req, &lambda.Response{
		StatusCode: status,
		Headers:    errorHeaders(),
		Body:       []byte(errorJSON(body)),
	})
	return reply
}
