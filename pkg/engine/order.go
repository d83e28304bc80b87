package engine

import (
	"github.com/quivertrade/engine/pkg/book"
)

// Side is the buy/sell encoding used on the order-entry side of the
// engine, as carried by the inbound protocol.
type Side byte

// Order entry sides
const (
	Buy  Side = 'B'
	Sell Side = 'S'
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

// bookSide translates the order-entry side to the book's side
// representation. An unrecognized encoding is reported to the caller
// and never reaches the book.
func (s Side) bookSide() (book.Side, error) {
	switch s {
	case Buy:
		return book.Buy, nil
	case Sell:
		return book.Sell, nil
	}
	return 0, ErrInvalidSide
}

// RejectReason explains why an order was not admitted
type RejectReason string

// Reject reasons
const (
	RejectUnknownInstrument RejectReason = "unknown-instrument"
	RejectInvalidSide       RejectReason = "invalid-side"
)

// CancelReason explains why quantity was canceled
type CancelReason string

// Cancel reasons
const (
	CancelRequested CancelReason = "requested"
)

// Liquidity marks whether a fill added or removed liquidity
type Liquidity string

// Liquidity flags
const (
	// LiquidityAdded marks the resting side of a match
	LiquidityAdded Liquidity = "added"
	// LiquidityRemoved marks the incoming side of a match
	LiquidityRemoved Liquidity = "removed"
)

// EnterOrder is an inbound order-entry request
type EnterOrder struct {
	ClientOrderID string
	Instrument    string
	Side          Side
	Price         uint64
	Quantity      uint64
}

// CancelOrder is an inbound cancel request for a tracked order
type CancelOrder struct {
	Quantity uint64
}

// Session is the order owner's notification contract. The engine only
// references sessions, it never owns them.
type Session interface {
	// OrderAccepted confirms admission with the assigned order number.
	OrderAccepted(req EnterOrder, order *Order)

	// OrderRejected reports a request that was not admitted.
	OrderRejected(req EnterOrder, reason RejectReason)

	// OrderExecuted reports a fill on one of the session's orders.
	OrderExecuted(price, quantity uint64, liquidity Liquidity, matchNumber uint64, order *Order)

	// OrderCanceled reports quantity canceled from one of the
	// session's orders.
	OrderCanceled(quantity uint64, reason CancelReason, order *Order)

	// Track notifies the session the engine started tracking the order.
	Track(order *Order)

	// Release notifies the session the engine stopped tracking the order.
	Release(order *Order)
}

// Order is the identity of a request admitted into a book: the owner's
// opaque identifier, the engine-assigned order number, and references
// to the owning session and the instrument's book. The order number is
// assigned once and never reused.
type Order struct {
	clientOrderID string
	orderNumber   uint64
	instrument    string
	session       Session
	book          *book.Book
}

// ClientOrderID returns the identifier the owner supplied. The engine
// echoes it back and never interprets it.
func (o *Order) ClientOrderID() string {
	return o.clientOrderID
}

// OrderNumber returns the engine-assigned order number
func (o *Order) OrderNumber() uint64 {
	return o.orderNumber
}

// Instrument returns the instrument symbol the order was entered for
func (o *Order) Instrument() string {
	return o.instrument
}

// Session returns the owning session
func (o *Order) Session() Session {
	return o.session
}
