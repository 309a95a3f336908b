// Package shape identifies which provider envelope an incoming Lambda event is.
//
// Envelopes carry no discriminator field, so detection runs an ordered list of
// structural predicates. Each predicate checks the smallest set of fields that
// separates its envelope from the others; the list is kept mutually exclusive
// and covered by collision tests.
package shape

import (
	"bytes"
	"encoding/json"
)

// Kind names a known envelope shape
type Kind int

const (
	KindUnrecognized Kind = iota
	KindALB
	KindAPIGatewayV1
	KindAPIGatewayV2
)

func (k Kind) String() string {
	switch k {
	case KindALB:
		return "alb"
	case KindAPIGatewayV1:
		return "api-gateway-v1"
	case KindAPIGatewayV2:
		return "api-gateway-v2"
	default:
		return "unrecognized"
	}
}

// Predicate matches one envelope shape
type Predicate struct {
	Kind  Kind
	Match func(e *Envelope) bool
}

var predicates = []Predicate{
	{Kind: KindAPIGatewayV2, Match: isAPIGatewayV2},
	{Kind: KindALB, Match: isALB},
	{Kind: KindAPIGatewayV1, Match: isAPIGatewayV1},
}

// Predicates returns the ordered detection list
func Predicates() []Predicate {
	out := make([]Predicate, len(predicates))
	copy(out, predicates)
	return out
}

// Detect returns the shape of payload, or KindUnrecognized when no predicate
// matches. It never fails: absent, null, non-object or invalid JSON payloads
// are simply unrecognized.
func Detect(payload []byte) Kind {
	e, ok := Probe(payload)
	if !ok {
		return KindUnrecognized
	}

	for _, p := range predicates {
		if p.Match(e) {
			return p.Kind
		}
	}
	return KindUnrecognized
}

// Envelope is the top-level field set of an event, decoded lazily
type Envelope struct {
	fields         map[string]json.RawMessage
	requestContext map[string]json.RawMessage
}

// Probe decodes the top level of payload and its requestContext object
func Probe(payload []byte) (*Envelope, bool) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, false
	}

	e := &Envelope{fields: fields}
	if rc, ok := fields["requestContext"]; ok && isObject(rc) {
		_ = json.Unmarshal(rc, &e.requestContext)
	}
	return e, true
}

// Has reports whether key is present and not null
func (e *Envelope) Has(key string) bool {
	v, ok := e.fields[key]
	return ok && !isNull(v)
}

// HasObject reports whether key holds a non-empty JSON object
func (e *Envelope) HasObject(key string) bool {
	v, ok := e.fields[key]
	if !ok || !isObject(v) {
		return false
	}
	var m map[string]json.RawMessage
	return json.Unmarshal(v, &m) == nil && len(m) > 0
}

// HasString reports whether key holds a JSON string
func (e *Envelope) HasString(key string) bool {
	v, ok := e.fields[key]
	return ok && isString(v)
}

// HasContext reports whether requestContext is an object
func (e *Envelope) HasContext() bool {
	return e.requestContext != nil
}

// ContextObject reports whether requestContext.key is an object
func (e *Envelope) ContextObject(key string) bool {
	v, ok := e.requestContext[key]
	return ok && isObject(v)
}

// ContextHas reports whether requestContext.key is present and not null
func (e *Envelope) ContextHas(key string) bool {
	v, ok := e.requestContext[key]
	return ok && !isNull(v)
}

// API Gateway HTTP API (payload format 2.0) is the only shape with
// requestContext.http and rawPath.
func isAPIGatewayV2(e *Envelope) bool {
	return e.ContextObject("http") && e.Has("rawPath")
}

func isALB(e *Envelope) bool {
	return e.ContextObject("elb") && e.HasString("httpMethod")
}

func isAPIGatewayV1(e *Envelope) bool {
	if !e.HasString("httpMethod") || !e.HasContext() {
		return false
	}
	if e.ContextObject("elb") || e.ContextObject("http") {
		return false
	}
	return e.Has("resource") || e.ContextHas("stage")
}

func isNull(v json.RawMessage) bool {
	t := bytes.TrimSpace(v)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func isObject(v json.RawMessage) bool {
	t := bytes.TrimSpace(v)
	return len(t) > 0 && t[0] == '{'
}

func isString(v json.RawMessage) bool {
	t := bytes.TrimSpace(v)
	return len(t) > 0 && t[0] == '"'
}
