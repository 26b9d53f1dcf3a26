package orchestration

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/agbru/shorcalc/internal/orchestration"

// startSpan opens a span on the global tracer provider. Without a configured
// provider the span is a no-op.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan records err, if any, and ends span.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func operandAttrs(k, n uint64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int64("shor.base", int64(k)),
		attribute.Int64("shor.modulus", int64(n)),
	}
}
