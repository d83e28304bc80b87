// Package book implements a per-instrument price/time priority limit
// order book. The book holds resting orders and reports every state
// change synchronously through a Listener supplied with each call.
package book

import (
	"github.com/tidwall/btree"
)

// Side represents buy or sell side of an order
type Side int

// Order sides
const (
	Sell Side = iota
	Buy
)

// String returns side as string
func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Opposite returns the other side of the book
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Listener receives book events. All callbacks run synchronously inside
// the Enter or Cancel call that caused them: an Enter invokes zero or
// more Match callbacks followed by at most one Add callback, and a
// Cancel of a known order invokes exactly one Cancel callback.
//
// Listeners must not call back into the book.
type Listener interface {
	// Match reports quantity executed against a resting order. The
	// trade prints at the resting order's limit price.
	Match(restingOrderNumber, incomingOrderNumber uint64, price, executedQuantity, remainingQuantity uint64)

	// Add reports that the incoming order rests in the book with the
	// given remaining size.
	Add(orderNumber uint64, side Side, price, size uint64)

	// Cancel reports quantity removed from a resting order.
	Cancel(orderNumber uint64, canceledQuantity, remainingQuantity uint64)
}

type restingOrder struct {
	number    uint64
	side      Side
	price     uint64
	remaining uint64
}

// priceLevel is a FIFO queue of resting orders at one price
type priceLevel struct {
	price uint64
	queue []*restingOrder
}

// Book is a price/time priority order book for a single instrument.
// It is not safe for concurrent use; the matching engine drives it
// from a single goroutine.
type Book struct {
	bids   *btree.BTreeG[*priceLevel]
	asks   *btree.BTreeG[*priceLevel]
	orders map[uint64]*restingOrder
}

// New creates an empty Book
func New() *Book {
	// Bids sorted greatest price first, asks least price first, so that
	// Min() is always the best level on either tree.
	bids := btree.NewBTreeG(func(a, b *priceLevel) bool {
		return a.price > b.price
	})
	asks := btree.NewBTreeG(func(a, b *priceLevel) bool {
		return a.price < b.price
	})
	return &Book{
		bids:   bids,
		asks:   asks,
		orders: make(map[uint64]*restingOrder),
	}
}

// Enter matches an incoming order against the opposite side of the book
// and rests any remainder. Matches execute best price first, oldest
// order first, and each one is reported through l.Match before Enter
// returns. A remainder rests at the limit price and is reported through
// l.Add. An order number already present in the book is ignored.
func (b *Book) Enter(l Listener, orderNumber uint64, side Side, price, quantity uint64) {
	if _, exists := b.orders[orderNumber]; exists {
		return
	}

	remaining := quantity

	opposite := b.asks
	crosses := func(levelPrice uint64) bool { return levelPrice <= price }
	if side == Sell {
		opposite = b.bids
		crosses = func(levelPrice uint64) bool { return levelPrice >= price }
	}

	for remaining > 0 {
		best, ok := opposite.Min()
		if !ok || !crosses(best.price) {
			break
		}

		for len(best.queue) > 0 && remaining > 0 {
			resting := best.queue[0]

			executed := remaining
			if resting.remaining < executed {
				executed = resting.remaining
			}

			resting.remaining -= executed
			remaining -= executed

			l.Match(resting.number, orderNumber, resting.price, executed, resting.remaining)

			if resting.remaining == 0 {
				best.queue = best.queue[1:]
				delete(b.orders, resting.number)
			}
		}

		if len(best.queue) == 0 {
			opposite.Delete(best)
		}
	}

	if remaining == 0 {
		return
	}

	resting := &restingOrder{
		number:    orderNumber,
		side:      side,
		price:     price,
		remaining: remaining,
	}
	b.orders[orderNumber] = resting

	tree := b.bids
	if side == Sell {
		tree = b.asks
	}
	level, ok := tree.Get(&priceLevel{price: price})
	if !ok {
		level = &priceLevel{price: price}
		tree.Set(level)
	}
	level.queue = append(level.queue, resting)

	l.Add(orderNumber, side, price, remaining)
}

// Cancel removes quantity from a resting order. A quantity of zero, or
// one at or above the order's remaining size, cancels the whole
// remainder and removes the order from the book. The outcome is
// reported through exactly one l.Cancel callback. An unknown order
// number is a no-op.
func (b *Book) Cancel(l Listener, orderNumber uint64, quantity uint64) {
	resting, ok := b.orders[orderNumber]
	if !ok {
		return
	}

	canceled := resting.remaining
	if quantity != 0 && quantity < resting.remaining {
		canceled = quantity
	}

	resting.remaining -= canceled
	if resting.remaining == 0 {
		b.remove(resting)
	}

	l.Cancel(orderNumber, canceled, resting.remaining)
}

// Orders returns the number of orders currently resting in the book
func (b *Book) Orders() int {
	return len(b.orders)
}

func (b *Book) remove(resting *restingOrder) {
	delete(b.orders, resting.number)

	tree := b.bids
	if resting.side == Sell {
		tree = b.asks
	}

	level, ok := tree.Get(&priceLevel{price: resting.price})
	if !ok {
		return
	}
	for i, queued := range level.queue {
		if queued.number == resting.number {
			level.queue = append(level.queue[:i], level.queue[i+1:]...)
			break
		}
	}
	if len(level.queue) == 0 {
		tree.Delete(level)
	}
}
