// Package marketdata defines the outbound market-data contract of the
// matching engine and the event model shared by its publishers.
package marketdata

import "github.com/quivertrade/engine/pkg/book"

// Sink receives market-data events from the matching engine. Calls
// arrive synchronously from the engine's single processing goroutine,
// in the exact order events occurred. Implementations must not call
// back into the engine and must not fail the caller; delivery problems
// are theirs to log and absorb.
type Sink interface {
	// OrderAdded reports a new resting order.
	OrderAdded(orderNumber uint64, side book.Side, instrument string, size, price uint64)

	// OrderExecuted reports quantity executed against a resting order.
	OrderExecuted(orderNumber uint64, quantity, matchNumber uint64)

	// OrderCanceled reports a partial cancellation of a resting order.
	OrderCanceled(orderNumber uint64, canceledQuantity uint64)

	// OrderDeleted reports that a resting order was removed.
	OrderDeleted(orderNumber uint64)
}

// EventType identifies a feed event
type EventType string

// Feed event types
const (
	EventOrderAdded    EventType = "order_added"
	EventOrderExecuted EventType = "order_executed"
	EventOrderCanceled EventType = "order_canceled"
	EventOrderDeleted  EventType = "order_deleted"
)

// Event is the wire representation of a market-data event on the feed.
// Price and Size are decimal strings scaled by the instrument's tick
// and lot size; fields not applicable to the event type are omitted.
type Event struct {
	Type        EventType `json:"type"`
	OrderNumber uint64    `json:"orderNumber"`
	Side        string    `json:"side,omitempty"`
	Instrument  string    `json:"instrument,omitempty"`
	Size        string    `json:"size,omitempty"`
	Price       string    `json:"price,omitempty"`
	Quantity    uint64    `json:"quantity,omitempty"`
	MatchNumber uint64    `json:"matchNumber,omitempty"`
}

// NopSink discards all events
type NopSink struct{}

// OrderAdded does nothing
func (NopSink) OrderAdded(orderNumber uint64, side book.Side, instrument string, size, price uint64) {
}

// OrderExecuted does nothing
func (NopSink) OrderExecuted(orderNumber uint64, quantity, matchNumber uint64) {}

// OrderCanceled does nothing
func (NopSink) OrderCanceled(orderNumber uint64, canceledQuantity uint64) {}

// OrderDeleted does nothing
func (NopSink) OrderDeleted(orderNumber uint64) {}

// Fanout forwards every event to each sink in order
type Fanout []Sink

// NewFanout creates a Fanout over the given sinks
func NewFanout(sinks ...Sink) Fanout {
	return Fanout(sinks)
}

// OrderAdded forwards to every sink
func (f Fanout) OrderAdded(orderNumber uint64, side book.Side, instrument string, size, price uint64) {
	for _, s := range f {
		s.OrderAdded(orderNumber, side, instrument, size, price)
	}
}

// OrderExecuted forwards to every sink
func (f Fanout) OrderExecuted(orderNumber uint64, quantity, matchNumber uint64) {
	for _, s := range f {
		s.OrderExecuted(orderNumber, quantity, matchNumber)
	}
}

// OrderCanceled forwards to every sink
func (f Fanout) OrderCanceled(orderNumber uint64, canceledQuantity uint64) {
	for _, s := range f {
		s.OrderCanceled(orderNumber, canceledQuantity)
	}
}

// OrderDeleted forwards to every sink
func (f Fanout) OrderDeleted(orderNumber uint64) {
	for _, s := range f {
		s.OrderDeleted(orderNumber)
	}
}

// Ensure implementations satisfy Sink
var (
	_ Sink = NopSink{}
	_ Sink = Fanout{}
)
