package apierr

import (
	"fmt"
)

// Kind classifies an API failure into one of the four categories the
// client distinguishes. Callers branch on kinds, never on error strings.
type Kind string

const (
	// KindNetwork covers failures where no HTTP response was received:
	// DNS errors, connection refusals, timeouts, cancelled requests.
	KindNetwork Kind = "NETWORK_FAILURE"

	// KindHTTP covers responses with a non-2xx status code.
	KindHTTP Kind = "HTTP_ERROR"

	// KindEnvelope covers 2xx responses whose envelope reported
	// success=false. These are business-rule rejections, not transport
	// problems.
	KindEnvelope Kind = "ENVELOPE_REJECTED"

	// KindValidation covers client-side validation failures detected
	// before any request is dispatched.
	KindValidation Kind = "VALIDATION_FAILURE"
)

// Error is the structured error type surfaced by the transport, resource,
// and query layers. The Kind is always set; the remaining fields are
// populated when the failure mode provides them.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	RequestID  string
	Fields     map[string]string
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind. This lets
// errors.Is treat kinds as matchable identities across wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// WithRequestID returns a copy of the error annotated with the request ID.
func (e *Error) WithRequestID(id string) *Error {
	clone := *e
	clone.RequestID = id
	return &clone
}

// Network creates a NETWORK_FAILURE error wrapping the transport cause.
func Network(cause error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: "request failed before a response was received",
		Cause:   cause,
	}
}

// HTTP creates an HTTP_ERROR for a non-2xx response. The message is the
// server-provided envelope message when one could be decoded, otherwise
// the HTTP status text.
func HTTP(status int, message, requestID string) *Error {
	return &Error{
		Kind:       KindHTTP,
		Message:    message,
		StatusCode: status,
		RequestID:  requestID,
	}
}

// Envelope creates an ENVELOPE_REJECTED error from a success=false
// envelope message.
func Envelope(message, requestID string) *Error {
	return &Error{
		Kind:      KindEnvelope,
		Message:   message,
		RequestID: requestID,
	}
}

// Validation creates a VALIDATION_FAILURE error. The fields map carries
// per-field messages so forms can attach errors to the offending inputs.
func Validation(message string, fields map[string]string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: message,
		Fields:  fields,
	}
}
