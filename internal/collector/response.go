// Package collector provides the synthetic http.ResponseWriter a framework
// writes into, and the single-resolution completion signal the invocation
// handler waits on.
package collector

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"

	"serverless-adapter/pkg/lambda"
)

// ErrResponseCompleted is returned by Write once the response has ended
var ErrResponseCompleted = errors.New("response already completed")

// DefaultStatusCode is used when the framework never sets a status
const DefaultStatusCode = http.StatusOK

// State is the lifecycle position of a Response
type State int

const (
	StatePending State = iota
	StateWriting
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateWriting:
		return "writing"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Response collects status, headers and ordered body chunks. It implements
// http.ResponseWriter and http.Flusher.
type Response struct {
	mu      sync.Mutex
	header  http.Header
	written http.Header
	status  int
	chunks  [][]byte
	state   State

	done chan struct{}
	once sync.Once
}

// New returns a Response in the Pending state
func New() *Response {
	return &Response{
		header: make(http.Header),
		done:   make(chan struct{}),
	}
}

// Header returns the mutable header map. As with net/http, changes made after
// the status is written are not part of the response.
func (r *Response) Header() http.Header {
	return r.header
}

// WriteHeader records the status code. Only the first call counts.
// Informational codes other than 101 are ignored.
func (r *Response) WriteHeader(code int) {
	if code >= 100 && code < 200 && code != http.StatusSwitchingProtocols {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateCompleted || r.status != 0 {
		return
	}
	r.writeHeaderLocked(code)
}

func (r *Response) writeHeaderLocked(code int) {
	r.status = code
	r.written = r.header.Clone()
}

// Write appends a body chunk and moves the response to Writing
func (r *Response) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateCompleted {
		return 0, ErrResponseCompleted
	}
	if r.status == 0 {
		if _, ok := r.header["Content-Type"]; !ok && len(p) > 0 && r.header.Get("Content-Encoding") == "" {
			r.header.Set("Content-Type", http.DetectContentType(p))
		}
		r.writeHeaderLocked(DefaultStatusCode)
	}
	if len(p) == 0 {
		return 0, nil
	}

	chunk := make([]byte, len(p))
	copy(chunk, p)
	r.chunks = append(r.chunks, chunk)
	r.state = StateWriting

	return len(p), nil
}

// WriteString appends s as a body chunk
func (r *Response) WriteString(s string) (int, error) {
	return r.Write([]byte(s))
}

// Flush is a no-op; the whole body is delivered at completion
func (r *Response) Flush() {}

// End marks the response Completed. Only the first call has an effect.
func (r *Response) End() {
	r.once.Do(func() {
		r.mu.Lock()
		if r.status == 0 {
			r.writeHeaderLocked(DefaultStatusCode)
		}
		r.state = StateCompleted
		r.mu.Unlock()

		close(r.done)
	})
}

// Done is closed when the response reaches Completed
func (r *Response) Done() <-chan struct{} {
	return r.done
}

// State returns the current lifecycle state
func (r *Response) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Written reports whether a status has been committed
func (r *Response) Written() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status != 0
}

// Status returns the committed status, or 0 while none is set
func (r *Response) Status() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Result snapshots the accumulated status, headers and body
func (r *Response) Result() *lambda.Response {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := r.status
	headers := r.written
	if status == 0 {
		status = DefaultStatusCode
		headers = r.header.Clone()
	}
	if headers == nil {
		headers = make(http.Header)
	}

	return &lambda.Response{
		StatusCode: status,
		Headers:    headers,
		Body:       bytes.Join(r.chunks, nil),
	}
}

// Wait blocks until the response completes or ctx is done
func (r *Response) Wait(ctx context.Context) (*lambda.Response, error) {
	select {
	case <-r.done:
		return r.Result(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
