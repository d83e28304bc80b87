package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/quivertrade/engine"

var (
	// engineMetrics holds the singleton instance
	engineMetrics *EngineMetrics
)

// EngineMetrics holds counters for matching engine operations
type EngineMetrics struct {
	ordersAccepted metric.Int64Counter
	ordersRejected metric.Int64Counter
	matchesTotal   metric.Int64Counter
	cancelsTotal   metric.Int64Counter
}

// GetEngineMetrics returns the EngineMetrics singleton. Before Init the
// global meter provider is a no-op, so recording is always safe.
func GetEngineMetrics() *EngineMetrics {
	if engineMetrics == nil {
		meter := otel.GetMeterProvider().Meter(instrumentationName)

		ordersAccepted, err := meter.Int64Counter(
			"engine.orders_accepted.total",
			metric.WithDescription("Total number of orders admitted into a book"),
			metric.WithUnit("{order}"),
		)
		if err != nil {
			return &EngineMetrics{}
		}

		ordersRejected, err := meter.Int64Counter(
			"engine.orders_rejected.total",
			metric.WithDescription("Total number of order-entry requests rejected"),
			metric.WithUnit("{order}"),
		)
		if err != nil {
			return &EngineMetrics{}
		}

		matchesTotal, err := meter.Int64Counter(
			"engine.matches.total",
			metric.WithDescription("Total number of matches executed"),
			metric.WithUnit("{match}"),
		)
		if err != nil {
			return &EngineMetrics{}
		}

		cancelsTotal, err := meter.Int64Counter(
			"engine.cancels.total",
			metric.WithDescription("Total number of cancel callbacks handled"),
			metric.WithUnit("{cancel}"),
		)
		if err != nil {
			return &EngineMetrics{}
		}

		engineMetrics = &EngineMetrics{
			ordersAccepted: ordersAccepted,
			ordersRejected: ordersRejected,
			matchesTotal:   matchesTotal,
			cancelsTotal:   cancelsTotal,
		}
	}
	return engineMetrics
}

// RecordOrderAccepted increments the accepted-order counter
func (m *EngineMetrics) RecordOrderAccepted(ctx context.Context, instrument string) {
	if m.ordersAccepted == nil {
		return
	}
	m.ordersAccepted.Add(ctx, 1, metric.WithAttributes(attribute.String(AttributeInstrument, instrument)))
}

// RecordOrderRejected increments the rejected-order counter
func (m *EngineMetrics) RecordOrderRejected(ctx context.Context, reason string) {
	if m.ordersRejected == nil {
		return
	}
	m.ordersRejected.Add(ctx, 1, metric.WithAttributes(attribute.String(AttributeRejectReason, reason)))
}

// RecordMatch increments the match counter
func (m *EngineMetrics) RecordMatch(ctx context.Context) {
	if m.matchesTotal == nil {
		return
	}
	m.matchesTotal.Add(ctx, 1)
}

// RecordCancel increments the cancel counter
func (m *EngineMetrics) RecordCancel(ctx context.Context) {
	if m.cancelsTotal == nil {
		return
	}
	m.cancelsTotal.Add(ctx, 1)
}
