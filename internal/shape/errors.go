package shape

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedEventShape is returned when an event matches no known envelope
var ErrUnrecognizedEventShape = errors.New("unrecognized event shape")

// UnsupportedKindError reports a detected kind with no registered handling
type UnsupportedKindError struct {
	Op   string
	Kind Kind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("%s: no handling registered for %s events", e.Op, e.Kind)
}

func (e *UnsupportedKindError) Unwrap() error {
	return ErrUnrecognizedEventShape
}

// IsUnrecognized returns true if err means the event shape could not be handled
func IsUnrecognized(err error) bool {
	return errors.Is(err, ErrUnrecognizedEventShape)
}
