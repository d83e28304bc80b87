// Package engine implements the order-processing core of the exchange:
// it admits order-entry requests, drives them through per-instrument
// order books, and fans the resulting state changes out as execution
// reports to order owners and market-data events to subscribers, while
// assigning globally unique, strictly increasing order and match
// numbers.
//
// The engine is synchronous and single-threaded: every call runs its
// whole cascade of book callbacks to completion before returning, and
// exactly one goroutine may drive it. Callbacks must not reenter the
// engine's public entry points.
package engine

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/quivertrade/engine/pkg/book"
	"github.com/quivertrade/engine/pkg/logging"
	"github.com/quivertrade/engine/pkg/marketdata"
	"github.com/quivertrade/engine/pkg/otel"
)

// Engine is the matching engine orchestrator. It owns one book per
// configured instrument, the order registry, and the shared sequence
// counters.
type Engine struct {
	books      map[string]*book.Book
	registry   *Registry
	seq        *Sequence
	marketData marketdata.Sink
}

// New creates an Engine with one empty book per instrument symbol.
// Market-data events go to sink; a nil sink discards them.
func New(instruments []string, sink marketdata.Sink) *Engine {
	if sink == nil {
		sink = marketdata.NopSink{}
	}

	books := make(map[string]*book.Book, len(instruments))
	for _, symbol := range instruments {
		books[symbol] = book.New()
	}

	return &Engine{
		books:      books,
		registry:   NewRegistry(),
		seq:        NewSequence(),
		marketData: sink,
	}
}

// EnterOrder admits an order-entry request. An unknown instrument or an
// unrecognized side is rejected through the session without consuming
// an order number. Otherwise the engine assigns the next order number,
// confirms acceptance, and enters the order into the instrument's book;
// any matches, and the add if a remainder rests, are reported through
// the session and the market-data sink before EnterOrder returns.
func (e *Engine) EnterOrder(ctx context.Context, req EnterOrder, session Session) {
	ctx, span := otel.StartEngineSpan(ctx, otel.SpanEnterOrder,
		attribute.String(otel.AttributeClientOrderID, req.ClientOrderID),
		attribute.String(otel.AttributeInstrument, req.Instrument),
		attribute.String(otel.AttributeOrderSide, req.Side.String()),
	)
	defer span.End()

	logger := logging.FromContext(ctx).With().
		Str("client_order_id", req.ClientOrderID).
		Str("instrument", req.Instrument).
		Logger()

	bk, ok := e.books[req.Instrument]
	if !ok {
		logger.Debug().Msg("Rejected order for unknown instrument")
		otel.GetEngineMetrics().RecordOrderRejected(ctx, string(RejectUnknownInstrument))
		session.OrderRejected(req, RejectUnknownInstrument)
		return
	}

	side, err := req.Side.bookSide()
	if err != nil {
		logger.Debug().Uint8("side", uint8(req.Side)).Msg("Rejected order with unrecognized side")
		otel.GetEngineMetrics().RecordOrderRejected(ctx, string(RejectInvalidSide))
		session.OrderRejected(req, RejectInvalidSide)
		return
	}

	orderNumber := e.seq.NextOrderNumber()

	order := &Order{
		clientOrderID: req.ClientOrderID,
		orderNumber:   orderNumber,
		instrument:    req.Instrument,
		session:       session,
		book:          bk,
	}

	otel.AddAttributes(span, attribute.Int64(otel.AttributeOrderNumber, int64(orderNumber)))
	otel.GetEngineMetrics().RecordOrderAccepted(ctx, req.Instrument)

	session.OrderAccepted(req, order)

	bk.Enter(&bridge{engine: e, ctx: ctx, acting: order}, orderNumber, side, req.Price, req.Quantity)

	logger.Debug().Uint64("order_number", orderNumber).Msg("Order entered")
}

// CancelOrder handles a client-requested, possibly partial,
// cancellation of a tracked order. The owner notification and, on a
// full cancel, registry cleanup happen inside the book's cancel
// callback before CancelOrder returns.
func (e *Engine) CancelOrder(ctx context.Context, req CancelOrder, order *Order) {
	ctx, span := otel.StartEngineSpan(ctx, otel.SpanCancelOrder,
		attribute.Int64(otel.AttributeOrderNumber, int64(order.OrderNumber())),
		attribute.String(otel.AttributeInstrument, order.Instrument()),
	)
	defer span.End()

	order.book.Cancel(&bridge{engine: e, ctx: ctx, acting: order, origin: CancelByRequest},
		order.OrderNumber(), req.Quantity)
}

// Cancel is the engine-initiated forced full retirement of an order,
// used on session teardown and administrative action. The owner is not
// notified; the order's remaining quantity is canceled in the book and
// the order is removed from the registry.
func (e *Engine) Cancel(ctx context.Context, order *Order) {
	ctx, span := otel.StartEngineSpan(ctx, otel.SpanEngineCancel,
		attribute.Int64(otel.AttributeOrderNumber, int64(order.OrderNumber())),
		attribute.String(otel.AttributeInstrument, order.Instrument()),
	)
	defer span.End()

	order.book.Cancel(&bridge{engine: e, ctx: ctx, origin: CancelByEngine}, order.OrderNumber(), 0)

	e.registry.Drop(order.OrderNumber())
}

// Lookup returns the tracked order for an order number, or nil
func (e *Engine) Lookup(orderNumber uint64) *Order {
	return e.registry.Lookup(orderNumber)
}

// Tracked returns the number of orders currently tracked
func (e *Engine) Tracked() int {
	return e.registry.Len()
}

// Instruments returns the configured instrument symbols
func (e *Engine) Instruments() []string {
	symbols := make([]string, 0, len(e.books))
	for symbol := range e.books {
		symbols = append(symbols, symbol)
	}
	return symbols
}
