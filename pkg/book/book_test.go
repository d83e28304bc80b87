package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingListener captures book callbacks in arrival order
type recordingListener struct {
	events []bookEvent
}

type bookEvent struct {
	kind      string
	resting   uint64
	incoming  uint64
	number    uint64
	side      Side
	price     uint64
	executed  uint64
	size      uint64
	canceled  uint64
	remaining uint64
}

func (r *recordingListener) Match(restingOrderNumber, incomingOrderNumber uint64, price, executedQuantity, remainingQuantity uint64) {
	r.events = append(r.events, bookEvent{
		kind:      "match",
		resting:   restingOrderNumber,
		incoming:  incomingOrderNumber,
		price:     price,
		executed:  executedQuantity,
		remaining: remainingQuantity,
	})
}

func (r *recordingListener) Add(orderNumber uint64, side Side, price, size uint64) {
	r.events = append(r.events, bookEvent{
		kind:   "add",
		number: orderNumber,
		side:   side,
		price:  price,
		size:   size,
	})
}

func (r *recordingListener) Cancel(orderNumber uint64, canceledQuantity, remainingQuantity uint64) {
	r.events = append(r.events, bookEvent{
		kind:      "cancel",
		number:    orderNumber,
		canceled:  canceledQuantity,
		remaining: remainingQuantity,
	})
}

func (r *recordingListener) reset() {
	r.events = nil
}

func TestEnterRestsWhenBookEmpty(t *testing.T) {
	b := New()
	l := &recordingListener{}

	b.Enter(l, 1, Buy, 1000, 10)

	require.Len(t, l.events, 1)
	assert.Equal(t, "add", l.events[0].kind)
	assert.Equal(t, uint64(1), l.events[0].number)
	assert.Equal(t, Buy, l.events[0].side)
	assert.Equal(t, uint64(1000), l.events[0].price)
	assert.Equal(t, uint64(10), l.events[0].size)
	assert.Equal(t, 1, b.Orders())
}

func TestEnterMatchesAtRestingPrice(t *testing.T) {
	b := New()
	l := &recordingListener{}

	b.Enter(l, 1, Sell, 1000, 5)
	l.reset()

	// Buyer is willing to pay more, but the trade prints at the
	// resting sell's limit price.
	b.Enter(l, 2, Buy, 1200, 5)

	require.Len(t, l.events, 1)
	ev := l.events[0]
	assert.Equal(t, "match", ev.kind)
	assert.Equal(t, uint64(1), ev.resting)
	assert.Equal(t, uint64(2), ev.incoming)
	assert.Equal(t, uint64(1000), ev.price)
	assert.Equal(t, uint64(5), ev.executed)
	assert.Equal(t, uint64(0), ev.remaining)
	assert.Equal(t, 0, b.Orders())
}

func TestEnterPartialFillThenRest(t *testing.T) {
	b := New()
	l := &recordingListener{}

	b.Enter(l, 1, Sell, 1000, 4)
	l.reset()

	b.Enter(l, 2, Buy, 1000, 10)

	require.Len(t, l.events, 2)
	assert.Equal(t, "match", l.events[0].kind)
	assert.Equal(t, uint64(4), l.events[0].executed)
	assert.Equal(t, "add", l.events[1].kind)
	assert.Equal(t, uint64(2), l.events[1].number)
	assert.Equal(t, uint64(6), l.events[1].size)
	assert.Equal(t, 1, b.Orders())
}

func TestEnterSweepsMultipleLevelsBestFirst(t *testing.T) {
	b := New()
	l := &recordingListener{}

	b.Enter(l, 1, Sell, 1010, 5)
	b.Enter(l, 2, Sell, 1000, 5)
	b.Enter(l, 3, Sell, 1020, 5)
	l.reset()

	b.Enter(l, 4, Buy, 1010, 12)

	// Best ask 1000 first, then 1010; 1020 does not cross.
	require.Len(t, l.events, 3)
	assert.Equal(t, uint64(2), l.events[0].resting)
	assert.Equal(t, uint64(1000), l.events[0].price)
	assert.Equal(t, uint64(5), l.events[0].executed)
	assert.Equal(t, uint64(1), l.events[1].resting)
	assert.Equal(t, uint64(1010), l.events[1].price)
	assert.Equal(t, uint64(5), l.events[1].executed)
	assert.Equal(t, "add", l.events[2].kind)
	assert.Equal(t, uint64(2), l.events[2].size)
}

func TestTimePriorityWithinLevel(t *testing.T) {
	b := New()
	l := &recordingListener{}

	b.Enter(l, 1, Buy, 1000, 3)
	b.Enter(l, 2, Buy, 1000, 3)
	l.reset()

	b.Enter(l, 3, Sell, 1000, 4)

	require.Len(t, l.events, 2)
	assert.Equal(t, uint64(1), l.events[0].resting)
	assert.Equal(t, uint64(3), l.events[0].executed)
	assert.Equal(t, uint64(2), l.events[1].resting)
	assert.Equal(t, uint64(1), l.events[1].executed)
	assert.Equal(t, uint64(2), l.events[1].remaining)
}

func TestEnterEmitsAtMostOneAdd(t *testing.T) {
	b := New()
	l := &recordingListener{}

	b.Enter(l, 1, Sell, 1000, 2)
	b.Enter(l, 2, Sell, 1001, 2)
	l.reset()

	b.Enter(l, 3, Buy, 1005, 10)

	adds := 0
	for _, ev := range l.events {
		if ev.kind == "add" {
			adds++
		}
	}
	assert.Equal(t, 1, adds)
}

func TestCancelPartial(t *testing.T) {
	b := New()
	l := &recordingListener{}

	b.Enter(l, 1, Buy, 1000, 10)
	l.reset()

	b.Cancel(l, 1, 4)

	require.Len(t, l.events, 1)
	ev := l.events[0]
	assert.Equal(t, "cancel", ev.kind)
	assert.Equal(t, uint64(4), ev.canceled)
	assert.Equal(t, uint64(6), ev.remaining)
	assert.Equal(t, 1, b.Orders())
}

func TestCancelAllRemainingWithZero(t *testing.T) {
	b := New()
	l := &recordingListener{}

	b.Enter(l, 1, Buy, 1000, 10)
	l.reset()

	b.Cancel(l, 1, 0)

	require.Len(t, l.events, 1)
	assert.Equal(t, uint64(10), l.events[0].canceled)
	assert.Equal(t, uint64(0), l.events[0].remaining)
	assert.Equal(t, 0, b.Orders())
}

func TestCancelAboveRemainingRemovesOrder(t *testing.T) {
	b := New()
	l := &recordingListener{}

	b.Enter(l, 1, Sell, 1000, 5)
	l.reset()

	b.Cancel(l, 1, 100)

	require.Len(t, l.events, 1)
	assert.Equal(t, uint64(5), l.events[0].canceled)
	assert.Equal(t, uint64(0), l.events[0].remaining)
	assert.Equal(t, 0, b.Orders())
}

func TestCancelUnknownOrderIsNoOp(t *testing.T) {
	b := New()
	l := &recordingListener{}

	b.Cancel(l, 42, 0)

	assert.Empty(t, l.events)
}

func TestCanceledOrderNoLongerMatches(t *testing.T) {
	b := New()
	l := &recordingListener{}

	b.Enter(l, 1, Sell, 1000, 5)
	b.Cancel(l, 1, 0)
	l.reset()

	b.Enter(l, 2, Buy, 1000, 5)

	require.Len(t, l.events, 1)
	assert.Equal(t, "add", l.events[0].kind)
}

func TestDuplicateOrderNumberIgnored(t *testing.T) {
	b := New()
	l := &recordingListener{}

	b.Enter(l, 1, Buy, 1000, 10)
	l.reset()

	b.Enter(l, 1, Sell, 1000, 10)

	assert.Empty(t, l.events)
	assert.Equal(t, 1, b.Orders())
}
