package apierr

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// IsNetwork reports whether err is a NETWORK_FAILURE anywhere in its chain.
func IsNetwork(err error) bool {
	return isKind(err, KindNetwork)
}

// IsHTTP reports whether err is an HTTP_ERROR anywhere in its chain.
func IsHTTP(err error) bool {
	return isKind(err, KindHTTP)
}

// IsEnvelope reports whether err is an ENVELOPE_REJECTED anywhere in its chain.
func IsEnvelope(err error) bool {
	return isKind(err, KindEnvelope)
}

// IsValidation reports whether err is a VALIDATION_FAILURE anywhere in its chain.
func IsValidation(err error) bool {
	return isKind(err, KindValidation)
}

// IsNotFound reports whether err represents a missing resource: an HTTP 404
// or an envelope rejection whose message says the record was not found.
func IsNotFound(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	if e.Kind == KindHTTP && e.StatusCode == http.StatusNotFound {
		return true
	}
	if e.Kind == KindEnvelope && strings.Contains(strings.ToLower(e.Message), "not found") {
		return true
	}
	return false
}

// IsUnauthorized reports whether err is an HTTP 401 response.
func IsUnauthorized(err error) bool {
	status, ok := StatusOf(err)
	return ok && status == http.StatusUnauthorized
}

// StatusOf extracts the HTTP status code from an HTTP_ERROR in the chain.
func StatusOf(err error) (int, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	if e.Kind != KindHTTP {
		return 0, false
	}
	return e.StatusCode, true
}

// FieldsOf extracts the per-field validation messages from a
// VALIDATION_FAILURE in the chain.
func FieldsOf(err error) (map[string]string, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return nil, false
	}
	if e.Kind != KindValidation || len(e.Fields) == 0 {
		return nil, false
	}
	return e.Fields, true
}

// Retryable reports whether a failed read is worth retrying. Network
// failures and server-side HTTP errors (5xx, 429) qualify. Envelope
// rejections and validation failures never do, and neither does a request
// the caller already cancelled.
func Retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case KindNetwork:
		return true
	case KindHTTP:
		return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
	default:
		return false
	}
}

func isKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
