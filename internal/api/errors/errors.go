package errors

import (
	"fmt"
	"net/http"

	apperrors "yt2t/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindNotFound           ErrorKind = "not_found"
	KindInternal           ErrorKind = "internal"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindBadRequest         ErrorKind = "bad_request"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Code      string            `json:"code,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Code:    "not_found",
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
		Code:    "invalid_request",
	}
}

// kinds maps domain error codes to HTTP kinds. Codes not listed are internal.
var kinds = map[string]ErrorKind{
	"invalid_request":    KindBadRequest,
	"unsupported_format": KindBadRequest,
	"unsupported_source": KindBadRequest,
	"not_found":          KindNotFound,
	"audio_not_found":    KindNotFound,
	"model_unavailable":  KindServiceUnavailable,
}

// FromError converts any error into an APIError. Domain errors keep their
// taxonomy code; an existing APIError is returned as-is.
func FromError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if apperrors.As(err, &apiErr) {
		return apiErr
	}

	code := apperrors.Code(err)
	kind, ok := kinds[code]
	if !ok {
		kind = KindInternal
	}
	return &APIError{
		Kind:    kind,
		Message: err.Error(),
		Code:    code,
	}
}
