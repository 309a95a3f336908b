package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"serverless-adapter/pkg/lambda"
)

// RequestIDKey is the key used to store request ID in context
const RequestIDKey = "request_id"

// EventSourceKey is the key used to store the provider event source in context
const EventSourceKey = "event_source"

// RequestID middleware adds a request ID to each request. Requests that came
// through the Lambda adapter reuse the provider request ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")

		if req, ok := lambda.FromContext(c.Request.Context()); ok {
			c.Set(EventSourceKey, req.Source)
			if requestID == "" {
				requestID = req.RequestID
			}
		}

		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// requestFields are the log fields shared by the middleware. Requests that
// arrived through the Lambda adapter also carry their event source and stage.
func requestFields(c *gin.Context) logrus.Fields {
	fields := logrus.Fields{
		"request_id": c.GetString(RequestIDKey),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	}
	if req, ok := lambda.FromContext(c.Request.Context()); ok {
		fields["event_source"] = req.Source
		if req.Stage != "" {
			fields["stage"] = req.Stage
		}
	}
	return fields
}

func millis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1000000
}

// StructuredLogger logs one line per completed request, leveled by status
func StructuredLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := requestFields(c)
		fields["status_code"] = status
		fields["latency_ms"] = millis(time.Since(start))
		fields["client_ip"] = c.ClientIP()
		fields["content_length"] = c.Request.ContentLength
		fields["response_size"] = c.Writer.Size()
		if raw := c.Request.URL.RawQuery; raw != "" {
			fields["query"] = raw
		}

		entry := logrus.WithFields(fields)
		switch {
		case status >= 500:
			entry.Error("Server error")
		case status >= 400:
			entry.Warn("Client error")
		default:
			entry.Info("Request completed")
		}
	}
}

// PerformanceMonitor warns about requests slower than threshold. A zero
// threshold means one second.
func PerformanceMonitor(threshold time.Duration) gin.HandlerFunc {
	if threshold == 0 {
		threshold = time.Second
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if latency := time.Since(start); latency > threshold {
			fields := requestFields(c)
			fields["latency_ms"] = millis(latency)
			fields["threshold_ms"] = millis(threshold)
			fields["status_code"] = c.Writer.Status()
			logrus.WithFields(fields).Warn("Slow request detected")
		}
	}
}
