package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quivertrade/engine/pkg/book"
)

func TestFanoutForwardsToEverySinkInOrder(t *testing.T) {
	first := &MockSink{}
	second := &MockSink{}
	fanout := NewFanout(first, second)

	fanout.OrderAdded(1, book.Buy, "FOO", 100, 1000)
	fanout.OrderExecuted(1, 50, 7)
	fanout.OrderCanceled(1, 25)
	fanout.OrderDeleted(1)

	for _, sink := range []*MockSink{first, second} {
		require.Len(t, sink.Calls, 4)
		assert.Equal(t, EventOrderAdded, sink.Calls[0].Type)
		assert.Equal(t, EventOrderExecuted, sink.Calls[1].Type)
		assert.Equal(t, EventOrderCanceled, sink.Calls[2].Type)
		assert.Equal(t, EventOrderDeleted, sink.Calls[3].Type)
	}

	added := first.Calls[0]
	assert.Equal(t, uint64(1), added.OrderNumber)
	assert.Equal(t, book.Buy, added.Side)
	assert.Equal(t, "FOO", added.Instrument)
	assert.Equal(t, uint64(100), added.Size)
	assert.Equal(t, uint64(1000), added.Price)

	executed := first.Calls[1]
	assert.Equal(t, uint64(50), executed.Quantity)
	assert.Equal(t, uint64(7), executed.MatchNumber)
}

func TestEmptyFanoutDiscards(t *testing.T) {
	fanout := NewFanout()
	fanout.OrderAdded(1, book.Sell, "FOO", 10, 10)
	fanout.OrderDeleted(1)
}
