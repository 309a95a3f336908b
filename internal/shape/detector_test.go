package shape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"serverless-adapter/internal/shape"
	"serverless-adapter/internal/testutil"
)

func TestDetectAllEvents(t *testing.T) {
	for _, ev := range testutil.AllEvents() {
		t.Run(ev.Name, func(t *testing.T) {
			assert.Equal(t, ev.Name, shape.Detect(ev.Payload).String())
		})
	}
}

func TestDetectUnrecognizedInput(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"whitespace":      "   ",
		"null":            "null",
		"array":           `[{"httpMethod":"GET"}]`,
		"string":          `"GET /users"`,
		"number":          `42`,
		"invalid json":    `{"httpMethod":`,
		"empty object":    `{}`,
		"scheduled event": `{"version":"0","source":"aws.events","detail-type":"Scheduled Event","detail":{}}`,
		"sqs event":       `{"Records":[{"eventSource":"aws:sqs","body":"hi"}]}`,
		"method only":     `{"httpMethod":"GET","path":"/"}`,
		"null context":    `{"httpMethod":"GET","path":"/","resource":"/","requestContext":null}`,
		"http not object": `{"rawPath":"/","requestContext":{"http":"GET"}}`,
		"elb no method":   `{"path":"/","requestContext":{"elb":{"targetGroupArn":"arn"}}}`,
		"numeric method":  `{"httpMethod":1,"requestContext":{"elb":{}}}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, shape.KindUnrecognized, shape.Detect([]byte(payload)))
		})
	}

	assert.Equal(t, shape.KindUnrecognized, shape.Detect(nil))
}

func TestDetectMinimalShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    shape.Kind
	}{
		{"v2 minimal", `{"rawPath":"/","requestContext":{"http":{"method":"GET"}}}`, shape.KindAPIGatewayV2},
		{"v2 empty raw path", `{"rawPath":"","requestContext":{"http":{}}}`, shape.KindAPIGatewayV2},
		{"alb minimal", `{"httpMethod":"GET","requestContext":{"elb":{}}}`, shape.KindALB},
		{"v1 with resource", `{"httpMethod":"GET","resource":"/","requestContext":{}}`, shape.KindAPIGatewayV1},
		{"v1 with stage only", `{"httpMethod":"GET","requestContext":{"stage":"prod"}}`, shape.KindAPIGatewayV1},
		{"v1 without body or headers", `{"httpMethod":"GET","resource":"/","requestContext":{"stage":"prod"},"headers":null,"body":null}`, shape.KindAPIGatewayV1},
		{"v2 shaped with httpMethod", `{"httpMethod":"GET","resource":"/","rawPath":"/","requestContext":{"stage":"x","http":{}}}`, shape.KindAPIGatewayV2},
		{"elb context wins over resource", `{"httpMethod":"GET","resource":"/","requestContext":{"elb":{},"stage":"x"}}`, shape.KindALB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shape.Detect([]byte(tt.payload)))
		})
	}
}

// Every known event must satisfy exactly one predicate, so the order of the
// detection list never decides between two shapes.
func TestPredicatesDoNotCollide(t *testing.T) {
	for _, ev := range testutil.AllEvents() {
		e, ok := shape.Probe(ev.Payload)
		if !ok {
			continue
		}

		var matched []shape.Kind
		for _, p := range shape.Predicates() {
			if p.Match(e) {
				matched = append(matched, p.Kind)
			}
		}
		assert.Len(t, matched, 1, "event %s matched %v", ev.Name, matched)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "alb", shape.KindALB.String())
	assert.Equal(t, "api-gateway-v1", shape.KindAPIGatewayV1.String())
	assert.Equal(t, "api-gateway-v2", shape.KindAPIGatewayV2.String())
	assert.Equal(t, "unrecognized", shape.KindUnrecognized.String())
	assert.Equal(t, "unrecognized", shape.Kind(99).String())
}

func TestIsUnrecognized(t *testing.T) {
	err := &shape.UnsupportedKindError{Op: "synthesize", Kind: shape.KindUnrecognized}
	assert.True(t, shape.IsUnrecognized(err))
	assert.Contains(t, err.Error(), "unrecognized")
	assert.False(t, shape.IsUnrecognized(nil))
}

func TestEnvelopeHasObject(t *testing.T) {
	e, ok := shape.Probe([]byte(`{"multiValueHeaders":{"accept":["*/*"]},"headers":{},"body":"x","nothing":null}`))
	assert.True(t, ok)
	assert.True(t, e.HasObject("multiValueHeaders"))
	assert.False(t, e.HasObject("headers"))
	assert.False(t, e.HasObject("body"))
	assert.False(t, e.HasObject("nothing"))
	assert.False(t, e.HasObject("missing"))
}
