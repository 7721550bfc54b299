package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "docsmith"

// StartGenerationSpan starts a span covering a full document generation
// pipeline run.
func StartGenerationSpan(ctx context.Context, agentID, documentType string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "generation",
		trace.WithAttributes(
			attribute.String("agent.id", agentID),
			attribute.String("document.type", documentType),
		),
	)
}

// StartValidationSpan starts a span for a prompt validation call.
func StartValidationSpan(ctx context.Context, agentID, model string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "validation",
		trace.WithAttributes(
			attribute.String("agent.id", agentID),
			attribute.String("llm.model", model),
		),
	)
}

// StartCompletionSpan starts a span for a single provider completion call.
func StartCompletionSpan(ctx context.Context, provider, model, stage string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "completion",
		trace.WithAttributes(
			attribute.String("llm.provider", provider),
			attribute.String("llm.model", model),
			attribute.String("llm.stage", stage),
		),
	)
}
