package aws

import (
	"github.com/aws/aws-lambda-go/events"

	"serverless-adapter/internal/shape"
	"serverless-adapter/pkg/lambda"
)

// ALB replies to Application Load Balancer target group events. When the
// target group has multi-value headers enabled the request carries
// multiValueHeaders, and the reply must use them too.
type ALB struct {
	encoder *BodyEncoder
}

// NewALB creates the ALB adapter
func NewALB(encoder *BodyEncoder) *ALB {
	return &ALB{encoder: encoder}
}

func (a *ALB) Kind() shape.Kind { return shape.KindALB }
func (a *ALB) Name() string     { return "AlbAdapter" }

func (a *ALB) Reply(req *lambda.Request, res *lambda.Response) (any, error) {
	body, isBase64 := a.encoder.Encode(res.Headers, res.Body)

	reply := events.ALBTargetGroupResponse{
		StatusCode:        res.StatusCode,
		StatusDescription: statusDescription(res.StatusCode),
		Body:              body,
		IsBase64Encoded:   isBase64,
	}
	if req != nil && req.MultiValueHeaders {
		reply.MultiValueHeaders = multiValueHeaders(res.Headers)
	} else {
		reply.Headers = singleValueHeaders(res.Headers)
	}

	return reply, nil
}

func (a *ALB) ErrorReply(req *lambda.Request, status int, body ErrorBody) any {
	reply, _ := a.Reply(req, &lambda.Response{
		StatusCode: status,
		Headers:    errorHeaders(),
		Body:       []byte(errorJSON(body)),
	})
	return reply
}
