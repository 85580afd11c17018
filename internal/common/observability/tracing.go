// internal/common/observability/tracing.go
package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "carrier-quoting"

// StartCarrierCall opens a span around one carrier HTTP call. Exporter
// wiring is the host service's concern; the core only emits through the
// otel API.
func StartCarrierCall(ctx context.Context, carrierID, operation string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "carrier.call",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("carrier.id", carrierID),
			attribute.String("carrier.operation", operation),
		),
	)
}

// EndCarrierCall records the result on the span and closes it.
func EndCarrierCall(span trace.Span, statusCode int, err error) {
	span.SetAttributes(attribute.Int("http.status_code", statusCode))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// StartQuoteRun opens the parent span for one orchestrator run.
func StartQuoteRun(ctx context.Context, applicationID string, adapters int) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "quote.run",
		trace.WithAttributes(
			attribute.String("application.id", applicationID),
			attribute.Int("quote.adapters", adapters),
		),
	)
}
