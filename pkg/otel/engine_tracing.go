package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// Span names
	SpanEnterOrder   = "enter_order"
	SpanCancelOrder  = "cancel_order"
	SpanEngineCancel = "engine_cancel"

	// Attribute keys
	AttributeClientOrderID = "order.client_id"
	AttributeOrderNumber   = "order.number"
	AttributeInstrument    = "order.instrument"
	AttributeOrderSide     = "order.side"
	AttributeOrderPrice    = "order.price"
	AttributeOrderQuantity = "order.quantity"
	AttributeRejectReason  = "order.reject_reason"
)

// StartEngineSpan starts a span on the engine tracer. Before Init the
// span is a no-op, so callers never need to guard against a missing
// tracer.
func StartEngineSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if engineTracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return engineTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// AddAttributes adds attributes to a span
func AddAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	if span == nil {
		return
	}
	span.SetAttributes(attrs...)
}
