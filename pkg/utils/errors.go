package utils

import (
	"fmt"
	"net/http"
)

// APIError represents an application error that maps directly onto the wire
// error shape {error, error_type, parameters}.
type APIError struct {
	Code       int            `json:"code"`
	Type       string         `json:"type"`
	Message    string         `json:"message"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// NewValidationError reports a malformed request parameter. Always raised
// before any network activity.
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:    http.StatusBadRequest,
		Type:    "validation_error",
		Message: message,
	}
}

// NewUpstreamError reports one source failing with a network error,
// non-success status, or unparseable body.
func NewUpstreamError(source string, detail string) *APIError {
	return &APIError{
		Code:    http.StatusBadGateway,
		Type:    "upstream_error",
		Message: fmt.Sprintf("%s: %s", source, detail),
	}
}

// NewScrapeFailedError reports a fatal batch-engine failure, echoing the
// parameters that were sent so the caller can diagnose the call.
func NewScrapeFailedError(err error, parameters map[string]any) *APIError {
	return &APIError{
		Code:       http.StatusInternalServerError,
		Type:       "scrape_failed",
		Message:    err.Error(),
		Parameters: parameters,
	}
}

// NewInternalError reports a failure inside the gateway itself.
func NewInternalError(message string) *APIError {
	return &APIError{
		Code:    http.StatusInternalServerError,
		Type:    "internal_error",
		Message: message,
	}
}
