package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var engineTracer = otel.Tracer("crown-league/internal/usecase")
var engineNoopSpan = trace.SpanFromContext(context.Background())

func startEngineSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, engineNoopSpan
	}
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, engineNoopSpan
	}
	return engineTracer.Start(ctx, name)
}
