package engine

import (
	"context"

	"github.com/quivertrade/engine/pkg/book"
	"github.com/quivertrade/engine/pkg/otel"
)

// CancelOrigin tags who asked for a cancellation. The bridge branches
// on it: client-requested cancels notify the owner and clean up the
// registry, engine-forced cancels do neither (the orchestrator removes
// the registry entry itself).
type CancelOrigin int

// Cancel origins
const (
	CancelByRequest CancelOrigin = iota
	CancelByEngine
)

// bridge translates book events into registry updates, execution
// reports and market-data events. One bridge value is built per
// top-level engine call and handed to the book, which echoes it into
// every callback the call triggers; the acting order therefore travels
// with the call instead of living in a mutable engine-wide slot.
type bridge struct {
	engine *Engine
	ctx    context.Context
	acting *Order
	origin CancelOrigin
}

// Match handles quantity executed against a resting order. The resting
// owner is told first, then the acting owner, then market data; public
// tape consumers rely on seeing both trade halves before the broadcast.
func (b *bridge) Match(restingOrderNumber, incomingOrderNumber uint64, price, executedQuantity, remainingQuantity uint64) {
	// The resting side may already have been retired through another
	// path; a match against an untracked order is silently ignored.
	resting := b.engine.registry.Lookup(restingOrderNumber)
	if resting == nil {
		return
	}

	matchNumber := b.engine.seq.NextMatchNumber()

	resting.Session().OrderExecuted(price, executedQuantity, LiquidityAdded, matchNumber, resting)

	b.acting.Session().OrderExecuted(price, executedQuantity, LiquidityRemoved, matchNumber, b.acting)

	b.engine.marketData.OrderExecuted(restingOrderNumber, executedQuantity, matchNumber)

	otel.GetEngineMetrics().RecordMatch(b.ctx)

	if remainingQuantity == 0 {
		b.engine.registry.Release(resting)
	}
}

// Add handles the acting order resting in the book with remaining
// quantity. Fires at most once per admission.
func (b *bridge) Add(orderNumber uint64, side book.Side, price, size uint64) {
	b.engine.marketData.OrderAdded(orderNumber, side, b.acting.Instrument(), size, price)

	b.engine.registry.Track(b.acting)
}

// Cancel handles quantity removed from a resting order.
func (b *bridge) Cancel(orderNumber uint64, canceledQuantity, remainingQuantity uint64) {
	if b.origin == CancelByRequest {
		b.acting.Session().OrderCanceled(canceledQuantity, CancelRequested, b.acting)
	}

	otel.GetEngineMetrics().RecordCancel(b.ctx)

	if remainingQuantity > 0 {
		b.engine.marketData.OrderCanceled(orderNumber, canceledQuantity)
	} else {
		b.engine.marketData.OrderDeleted(orderNumber)

		if b.origin == CancelByRequest {
			b.engine.registry.Release(b.acting)
		}
	}
}

// Ensure bridge implements the book's callback contract
var _ book.Listener = (*bridge)(nil)
