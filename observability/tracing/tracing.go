// Package tracing defines a minimal span abstraction so the transport can
// emit traces without binding callers to a specific tracing backend. The
// OpenTelemetry adapter lives alongside; the zero-cost default is the nop
// tracer.
package tracing

import "context"

// Attribute is a key/value pair recorded on a span.
type Attribute struct {
	Key   string
	Value any
}

// String builds a string attribute.
func String(key, value string) Attribute { return Attribute{Key: key, Value: value} }

// Int builds an int attribute.
func Int(key string, value int) Attribute { return Attribute{Key: key, Value: value} }

// Bool builds a bool attribute.
func Bool(key string, value bool) Attribute { return Attribute{Key: key, Value: value} }

// Span is an in-flight trace span. End records the outcome and closes it.
type Span interface {
	End(err error)
}

// Tracer starts spans around client operations.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Nop returns a tracer that discards every span.
func Nop() Tracer { return nopTracer{} }

type nopTracer struct{}

func (nopTracer) Start(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) End(error) {}
