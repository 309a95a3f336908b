// Package framework hands a synthetic request/response pair to an HTTP
// framework instance. Each framework exposes its dispatch entry point
// differently, so each gets its own Contract implementation.
package framework

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrFrameworkDispatch is returned when a framework's dispatch entry point cannot be located
var ErrFrameworkDispatch = errors.New("framework dispatch entry point not found")

// DispatchError describes a framework that cannot be wired
type DispatchError struct {
	Framework string
	Reason    string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Framework, ErrFrameworkDispatch, e.Reason)
}

func (e *DispatchError) Unwrap() error {
	return ErrFrameworkDispatch
}

// Contract is implemented once per supported framework
type Contract[T any] interface {
	// Name identifies the framework in logs and configuration
	Name() string

	// Validate checks that app exposes a dispatch entry point. It runs once,
	// at wiring time.
	Validate(app T) error

	// SendRequest runs the framework's request pipeline exactly once for r,
	// writing into w. It performs no transformation of either.
	SendRequest(app T, w http.ResponseWriter, r *http.Request)
}

// Dispatcher is a framework instance bound to its contract
type Dispatcher interface {
	Name() string
	Dispatch(w http.ResponseWriter, r *http.Request)
}

type boundDispatcher[T any] struct {
	contract Contract[T]
	app      T
}

func (d *boundDispatcher[T]) Name() string {
	return d.contract.Name()
}

func (d *boundDispatcher[T]) Dispatch(w http.ResponseWriter, r *http.Request) {
	d.contract.SendRequest(d.app, w, r)
}

// Bind validates app against c and returns a Dispatcher for it
func Bind[T any](c Contract[T], app T) (Dispatcher, error) {
	if err := c.Validate(app); err != nil {
		return nil, err
	}
	return &boundDispatcher[T]{contract: c, app: app}, nil
}
