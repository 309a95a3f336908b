package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"serverless-adapter/internal/middleware"
	"serverless-adapter/internal/services"
)

// errorResponse maps a service error to a status and the standard error body
func errorResponse(err error, requestID string) (int, middleware.ErrorResponse) {
	response := middleware.ErrorResponse{
		Message:   err.Error(),
		RequestID: requestID,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		response.Error = "Validation failed"
		response.Message = "Request validation failed"
		response.ValidationErrors = middleware.FormatValidationErrors(validationErrors)
		return http.StatusBadRequest, response
	case errors.Is(err, services.ErrRecordNotFound):
		response.Error = "Record not found"
		return http.StatusNotFound, response
	case errors.Is(err, services.ErrUnknownCollection):
		response.Error = "Unknown collection"
		return http.StatusNotFound, response
	case isValidationError(err):
		response.Error = "Invalid request"
		return http.StatusBadRequest, response
	default:
		response.Error = "Internal server error"
		response.Message = "An internal error occurred"
		return http.StatusInternalServerError, response
	}
}

// badRequest builds the body for undecodable input
func badRequest(err error, requestID string) middleware.ErrorResponse {
	return middleware.ErrorResponse{
		Error:     "Invalid request body",
		Message:   err.Error(),
		RequestID: requestID,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// isValidationError checks if an error is a validation error
func isValidationError(err error) bool {
	if err == nil {
		return false
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return true
	}
	return containsAny(err.Error(), "validation", "invalid", "cannot be nil")
}

func containsAny(s string, substrs ...string) bool {
	s = strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
