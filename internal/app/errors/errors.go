package errors

import (
	stderrors "errors"
	"fmt"
)

// Fetch layer
var (
	ErrSourceUnavailable = New("source unavailable")
	ErrUnsupportedSource = New("unsupported source")
	ErrNetwork           = New("network error")
)

// Normalize layer
var (
	ErrUnsupportedFormat = New("unsupported audio format")
	ErrDecode            = New("audio decode failed")
	ErrEncode            = New("audio encode failed")
)

// Transcription layer
var (
	ErrModelUnavailable = New("speech model unavailable")
	ErrAudioNotFound    = New("audio file not found")
)

// File serving and request validation
var (
	ErrNotFound       = New("not found")
	ErrInvalidRequest = New("invalid request")
)

var codes = []struct {
	sentinel *Error
	code     string
}{
	{ErrSourceUnavailable, "source_unavailable"},
	{ErrUnsupportedSource, "unsupported_source"},
	{ErrNetwork, "network_error"},
	{ErrUnsupportedFormat, "unsupported_format"},
	{ErrDecode, "decode_error"},
	{ErrEncode, "encode_error"},
	{ErrModelUnavailable, "model_unavailable"},
	{ErrAudioNotFound, "audio_not_found"},
	{ErrNotFound, "not_found"},
	{ErrInvalidRequest, "invalid_request"},
}

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Kind attaches a taxonomy sentinel to a detail error so that errors.Is matches
// the sentinel while the message keeps the detail.
func Kind(kind *Error, detail error) error {
	if detail == nil {
		return kind
	}
	return &Error{
		message: kind.message,
		cause:   &joined{kind: kind, detail: detail},
	}
}

// Kindf is Kind with a formatted detail message.
func Kindf(kind *Error, format string, args ...interface{}) error {
	return Kind(kind, fmt.Errorf(format, args...))
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e == t || (e.cause == nil && t.cause == nil && e.message == t.message)
}

// joined carries both the sentinel and the detail so the chain matches either.
type joined struct {
	kind   *Error
	detail error
}

func (j *joined) Error() string { return j.detail.Error() }

func (j *joined) Unwrap() []error { return []error{j.kind, j.detail} }

// Code returns the taxonomy name of the first sentinel found in err's chain,
// or "internal" when none matches.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if stderrors.Is(err, c.sentinel) {
			return c.code
		}
	}
	return "internal"
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
