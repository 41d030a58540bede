package tracing

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// recordingTracer captures started spans for assertions.
type recordingTracer struct {
	mu    sync.Mutex
	names []string
	attrs [][]Attribute
	errs  []error
}

func (r *recordingTracer) Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
	r.attrs = append(r.attrs, attrs)
	return ctx, &recordingSpan{tracer: r}
}

type recordingSpan struct {
	tracer *recordingTracer
}

func (s *recordingSpan) End(err error) {
	s.tracer.mu.Lock()
	defer s.tracer.mu.Unlock()
	s.tracer.errs = append(s.tracer.errs, err)
}

func TestNopTracerKeepsContext(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "payload")

	got, span := Nop().Start(ctx, "http.request", String("method", "GET"))
	if got.Value(ctxKey{}) != "payload" {
		t.Error("nop tracer must return the caller's context unchanged")
	}
	span.End(errors.New("recorded but discarded"))
}

func TestAttributeHelpers(t *testing.T) {
	tests := []struct {
		name string
		attr Attribute
		key  string
		val  any
	}{
		{"string", String("method", "GET"), "method", "GET"},
		{"int", Int("status", 200), "status", 200},
		{"bool", Bool("cached", true), "cached", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.key || tt.attr.Value != tt.val {
				t.Errorf("attribute = %+v, want {%s %v}", tt.attr, tt.key, tt.val)
			}
		})
	}
}

func TestRecordingTracerRoundTrip(t *testing.T) {
	tracer := &recordingTracer{}

	_, span := tracer.Start(context.Background(), "http.request", String("path", "/orders"))
	span.End(nil)

	if len(tracer.names) != 1 || tracer.names[0] != "http.request" {
		t.Fatalf("span names = %v, want [http.request]", tracer.names)
	}
	if len(tracer.attrs[0]) != 1 || tracer.attrs[0][0].Key != "path" {
		t.Errorf("span attrs = %v, want path attribute", tracer.attrs[0])
	}
	if len(tracer.errs) != 1 || tracer.errs[0] != nil {
		t.Errorf("span end errs = %v, want [nil]", tracer.errs)
	}
}
