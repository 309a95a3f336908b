package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"serverless-adapter/internal/adapters/aws"
	"serverless-adapter/internal/collector"
	"serverless-adapter/internal/framework"
	"serverless-adapter/internal/shape"
	"serverless-adapter/internal/synth"
	"serverless-adapter/pkg/lambda"
)

// HandlerOptions tune the invocation handler
type HandlerOptions struct {
	Synth        synth.Options
	ExposeErrors bool
	Logger       *logrus.Logger
}

// Handler turns one Lambda invocation into one framework request
type Handler struct {
	dispatcher   framework.Dispatcher
	registry     *aws.Registry
	synthOptions synth.Options
	exposeErrors bool
	log          *logrus.Logger
}

// NewHandler creates an invocation handler around a bound framework
func NewHandler(dispatcher framework.Dispatcher, registry *aws.Registry, opts HandlerOptions) *Handler {
	if registry == nil {
		registry = aws.DefaultRegistry(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Handler{
		dispatcher:   dispatcher,
		registry:     registry,
		synthOptions: opts.Synth,
		exposeErrors: opts.ExposeErrors,
		log:          logger,
	}
}

// Invoke is the Lambda entry point. Event shape and body problems become
// error replies; only a cancelled context is returned as an error.
func (h *Handler) Invoke(ctx context.Context, payload json.RawMessage) (any, error) {
	start := time.Now()
	kind := shape.Detect(payload)

	adapter, ok := h.registry.Lookup(kind)
	if !ok {
		h.log.WithFields(logrus.Fields{
			"event_kind":   kind.String(),
			"payload_size": len(payload),
		}).Warn("Unrecognized event shape")

		return aws.UnrecognizedReply(aws.ErrorBody{
			Error:   "Unrecognized event shape",
			Message: h.message(&shape.UnsupportedKindError{Op: "detect", Kind: kind}),
		}), nil
	}

	fields := logrus.Fields{
		"event_kind": kind.String(),
		"adapter":    adapter.Name(),
		"framework":  h.dispatcher.Name(),
	}

	req, err := synth.Synthesize(payload, kind, h.synthOptions)
	if err != nil {
		return h.rejectEvent(adapter, envelopeRequest(payload), fields, err), nil
	}
	fields["request_id"] = req.RequestID
	fields["method"] = req.Method
	fields["path"] = req.Path

	httpReq, err := req.HTTPRequest(ctx)
	if err != nil {
		return h.rejectEvent(adapter, req, fields, err), nil
	}

	res := collector.New()
	go h.dispatch(res, httpReq, h.log.WithFields(fields))

	out, err := res.Wait(ctx)
	if err != nil {
		fields["response_state"] = res.State().String()
		h.log.WithFields(fields).WithError(err).Error("Invocation ended before the response completed")
		return nil, err
	}

	reply, err := adapter.Reply(req, out)
	if err != nil {
		h.log.WithFields(fields).WithError(err).Error("Failed to encode reply")
		return adapter.ErrorReply(req, http.StatusInternalServerError, aws.ErrorBody{
			Error:     "Internal server error",
			Message:   h.message(err),
			RequestID: req.RequestID,
		}), nil
	}

	fields["status_code"] = out.StatusCode
	fields["response_size"] = len(out.Body)
	fields["latency_ms"] = float64(time.Since(start).Nanoseconds()) / 1000000
	h.logCompletion(fields, out.StatusCode)

	return reply, nil
}

// dispatch runs the framework and ends the response when it returns.
// A panic that escapes the framework becomes a 500 if nothing was written yet.
func (h *Handler) dispatch(res *collector.Response, r *http.Request, entry *logrus.Entry) {
	defer func() {
		if rec := recover(); rec != nil {
			if rec != http.ErrAbortHandler {
				entry.WithField("panic", fmt.Sprint(rec)).Error("Framework panicked while handling request")
			}
			if !res.Written() {
				res.Header().Set("Content-Type", "application/json")
				res.WriteHeader(http.StatusInternalServerError)
				_, _ = res.Write([]byte(`{"error":"Internal server error"}`))
			}
		}
		res.End()
	}()

	h.dispatcher.Dispatch(res, r)
}

func (h *Handler) rejectEvent(adapter aws.Adapter, req *lambda.Request, fields logrus.Fields, err error) any {
	h.log.WithFields(fields).WithError(err).Warn("Rejected malformed event")

	body := aws.ErrorBody{Error: "Malformed event", Message: h.message(err)}
	var bodyErr *synth.MalformedBodyError
	if errors.As(err, &bodyErr) {
		body.Error = "Malformed body"
		body.RequestID = bodyErr.RequestID
	}
	if req != nil && req.RequestID != "" {
		body.RequestID = req.RequestID
	}

	return adapter.ErrorReply(req, http.StatusBadRequest, body)
}

// envelopeRequest keeps the header mode of an event that could not be
// synthesized, so the error reply uses the mode the event arrived in.
func envelopeRequest(payload []byte) *lambda.Request {
	req := &lambda.Request{}
	if e, ok := shape.Probe(payload); ok {
		req.MultiValueHeaders = e.HasObject("multiValueHeaders")
	}
	return req
}

func (h *Handler) message(err error) string {
	if !h.exposeErrors {
		return ""
	}
	return err.Error()
}

func (h *Handler) logCompletion(fields logrus.Fields, status int) {
	entry := h.log.WithFields(fields)
	switch {
	case status >= 500:
		entry.Error("Server error")
	case status >= 400:
		entry.Warn("Client error")
	default:
		entry.Info("Request completed")
	}
}
