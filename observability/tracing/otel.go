package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultInstrumentationName = "github.com/AnkaaDesign/apiclient"

// NewOTelTracer adapts an OpenTelemetry TracerProvider to the Tracer
// interface. A nil provider falls back to the global provider.
func NewOTelTracer(provider trace.TracerProvider, instrumentationName string) Tracer {
	if instrumentationName == "" {
		instrumentationName = defaultInstrumentationName
	}
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &otelTracer{tracer: provider.Tracer(instrumentationName)}
}

type otelTracer struct {
	tracer trace.Tracer
}

func (t *otelTracer) Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span) {
	if t == nil || t.tracer == nil {
		return ctx, nopSpan{}
	}
	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(convertAttrs(attrs)...))
	return ctx, otelSpan{span: span}
}

type otelSpan struct {
	span trace.Span
}

func (s otelSpan) End(err error) {
	if err != nil {
		s.span.RecordError(err)
	}
	s.span.End()
}

func convertAttrs(attrs []Attribute) []attribute.KeyValue {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]attribute.KeyValue, 0, len(attrs))
	for _, a := range attrs {
		if a.Key == "" {
			continue
		}
		switch v := a.Value.(type) {
		case string:
			out = append(out, attribute.String(a.Key, v))
		case bool:
			out = append(out, attribute.Bool(a.Key, v))
		case int:
			out = append(out, attribute.Int(a.Key, v))
		case int64:
			out = append(out, attribute.Int64(a.Key, v))
		case float64:
			out = append(out, attribute.Float64(a.Key, v))
		default:
			out = append(out, attribute.String(a.Key, fmt.Sprint(v)))
		}
	}
	return out
}
