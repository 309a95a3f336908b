package synth

import (
	"errors"
	"fmt"

	"serverless-adapter/internal/shape"
)

// ErrMalformedBody is returned when a base64-flagged body cannot be decoded
var ErrMalformedBody = errors.New("malformed body")

// ErrMalformedEvent is returned when a detected envelope cannot be decoded into its type
var ErrMalformedEvent = errors.New("malformed event")

// MalformedBodyError carries the event context of a body decoding failure
type MalformedBodyError struct {
	Kind      shape.Kind
	RequestID string
	Err       error
}

func (e *MalformedBodyError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s event %s: %v: %v", e.Kind, e.RequestID, ErrMalformedBody, e.Err)
	}
	return fmt.Sprintf("%s event: %v: %v", e.Kind, ErrMalformedBody, e.Err)
}

func (e *MalformedBodyError) Unwrap() []error {
	return []error{ErrMalformedBody, e.Err}
}

// IsMalformedBody returns true if err is a body decoding failure
func IsMalformedBody(err error) bool {
	return errors.Is(err, ErrMalformedBody)
}
