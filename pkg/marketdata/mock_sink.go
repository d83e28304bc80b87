package marketdata

import "github.com/quivertrade/engine/pkg/book"

// Call records a single sink invocation with its raw arguments.
type Call struct {
	Type        EventType
	OrderNumber uint64
	Side        book.Side
	Instrument  string
	Size        uint64
	Price       uint64
	Quantity    uint64
	MatchNumber uint64
}

// MockSink records every event it receives, for tests.
type MockSink struct {
	Calls []Call
}

// NewMockSink creates a new MockSink.
func NewMockSink() *MockSink {
	return &MockSink{}
}

// OrderAdded records the event.
func (m *MockSink) OrderAdded(orderNumber uint64, side book.Side, instrument string, size, price uint64) {
	m.Calls = append(m.Calls, Call{
		Type:        EventOrderAdded,
		OrderNumber: orderNumber,
		Side:        side,
		Instrument:  instrument,
		Size:        size,
		Price:       price,
	})
}

// OrderExecuted records the event.
func (m *MockSink) OrderExecuted(orderNumber uint64, quantity, matchNumber uint64) {
	m.Calls = append(m.Calls, Call{
		Type:        EventOrderExecuted,
		OrderNumber: orderNumber,
		Quantity:    quantity,
		MatchNumber: matchNumber,
	})
}

// OrderCanceled records the event.
func (m *MockSink) OrderCanceled(orderNumber uint64, canceledQuantity uint64) {
	m.Calls = append(m.Calls, Call{
		Type:        EventOrderCanceled,
		OrderNumber: orderNumber,
		Quantity:    canceledQuantity,
	})
}

// OrderDeleted records the event.
func (m *MockSink) OrderDeleted(orderNumber uint64) {
	m.Calls = append(m.Calls, Call{
		Type:        EventOrderDeleted,
		OrderNumber: orderNumber,
	})
}

// Reset clears recorded calls.
func (m *MockSink) Reset() {
	m.Calls = nil
}

// Ensure MockSink implements Sink
var _ Sink = (*MockSink)(nil)
