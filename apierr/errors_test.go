package apierr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  HTTP(500, "internal error", "req-1"),
			want: "HTTP_ERROR: internal error",
		},
		{
			name: "with cause",
			err:  Network(errors.New("dial tcp: connection refused")),
			want: "NETWORK_FAILURE: request failed before a response was received: dial tcp: connection refused",
		},
		{
			name: "envelope rejection",
			err:  Envelope("order already invoiced", ""),
			want: "ENVELOPE_REJECTED: order already invoiced",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := &net.DNSError{Name: "api.example.com", Err: "no such host"}
	err := Network(cause)

	var dnsErr *net.DNSError
	if !errors.As(err, &dnsErr) {
		t.Fatal("expected errors.As to find the DNS cause")
	}
	if dnsErr.Name != "api.example.com" {
		t.Errorf("unwrapped cause lost data: got %q", dnsErr.Name)
	}
}

func TestError_IsMatchesKind(t *testing.T) {
	wrapped := fmt.Errorf("loading orders: %w", HTTP(503, "unavailable", ""))

	if !errors.Is(wrapped, &Error{Kind: KindHTTP}) {
		t.Error("expected wrapped HTTP error to match KindHTTP")
	}
	if errors.Is(wrapped, &Error{Kind: KindEnvelope}) {
		t.Error("HTTP error must not match KindEnvelope")
	}
}

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"network matches IsNetwork", Network(errors.New("refused")), IsNetwork, true},
		{"network does not match IsHTTP", Network(errors.New("refused")), IsHTTP, false},
		{"http matches IsHTTP", HTTP(502, "bad gateway", ""), IsHTTP, true},
		{"envelope matches IsEnvelope", Envelope("nope", ""), IsEnvelope, true},
		{"validation matches IsValidation", Validation("bad input", nil), IsValidation, true},
		{"wrapped error still matches", fmt.Errorf("ctx: %w", Envelope("nope", "")), IsEnvelope, true},
		{"plain error matches nothing", errors.New("plain"), IsNetwork, false},
		{"nil matches nothing", nil, IsHTTP, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"http 404", HTTP(404, "Not Found", ""), true},
		{"http 500", HTTP(500, "boom", ""), false},
		{"envelope not found message", Envelope("order not found", ""), true},
		{"envelope other message", Envelope("quota exceeded", ""), false},
		{"network failure", Network(errors.New("refused")), false},
		{"plain error", errors.New("not found"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	if status, ok := StatusOf(fmt.Errorf("wrapped: %w", HTTP(429, "slow down", ""))); !ok || status != 429 {
		t.Errorf("StatusOf() = %d, %v; want 429, true", status, ok)
	}
	if _, ok := StatusOf(Network(errors.New("refused"))); ok {
		t.Error("StatusOf() on a network failure should report false")
	}
	if _, ok := StatusOf(errors.New("plain")); ok {
		t.Error("StatusOf() on a plain error should report false")
	}
}

func TestFieldsOf(t *testing.T) {
	fields := map[string]string{"email": "must be a valid email"}
	got, ok := FieldsOf(Validation("invalid payload", fields))
	if !ok {
		t.Fatal("expected fields to be reported")
	}
	if got["email"] != fields["email"] {
		t.Errorf("FieldsOf() = %v, want %v", got, fields)
	}

	if _, ok := FieldsOf(Validation("no fields", nil)); ok {
		t.Error("validation error without fields should report false")
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"network failure", Network(errors.New("refused")), true},
		{"http 500", HTTP(500, "boom", ""), true},
		{"http 503", HTTP(503, "unavailable", ""), true},
		{"http 429", HTTP(429, "slow down", ""), true},
		{"http 404", HTTP(404, "missing", ""), false},
		{"http 400", HTTP(400, "bad request", ""), false},
		{"envelope rejection", Envelope("rejected", ""), false},
		{"validation failure", Validation("invalid", nil), false},
		{"cancelled request", Network(context.Canceled), false},
		{"deadline exceeded", Network(context.DeadlineExceeded), false},
		{"plain error", errors.New("plain"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Retryable(tt.err); got != tt.want {
				t.Errorf("Retryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithRequestID(t *testing.T) {
	base := Envelope("rejected", "")
	annotated := base.WithRequestID("req-42")

	if annotated.RequestID != "req-42" {
		t.Errorf("RequestID = %q, want req-42", annotated.RequestID)
	}
	if base.RequestID != "" {
		t.Error("WithRequestID must not mutate the original error")
	}
}
