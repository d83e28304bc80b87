package gateway

import (
	"github.com/rs/zerolog/log"

	"github.com/quivertrade/engine/pkg/engine"
	"github.com/quivertrade/engine/pkg/reports"
)

// Session represents one connected client. It receives the engine's
// order notifications and publishes them as execution reports, and it
// remembers the client's live orders so cancels can be addressed by
// client order ID.
type Session struct {
	clientID string
	sender   reports.Sender

	// orders maps client order ID to the tracked order. Only orders
	// the engine currently tracks appear here.
	orders map[string]*engine.Order
}

// NewSession creates a session for a client, publishing reports
// through sender
func NewSession(clientID string, sender reports.Sender) *Session {
	return &Session{
		clientID: clientID,
		sender:   sender,
		orders:   make(map[string]*engine.Order),
	}
}

// ClientID returns the client identifier
func (s *Session) ClientID() string {
	return s.clientID
}

// Order returns the tracked order for a client order ID, or nil
func (s *Session) Order(clientOrderID string) *engine.Order {
	return s.orders[clientOrderID]
}

// Orders returns all orders the engine currently tracks for this
// session
func (s *Session) Orders() []*engine.Order {
	orders := make([]*engine.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, order)
	}
	return orders
}

// OrderAccepted implements engine.Session
func (s *Session) OrderAccepted(req engine.EnterOrder, order *engine.Order) {
	s.publish(&reports.Report{
		Type:          reports.ReportAccepted,
		ClientID:      s.clientID,
		ClientOrderID: order.ClientOrderID(),
		OrderNumber:   order.OrderNumber(),
		Instrument:    order.Instrument(),
		Price:         req.Price,
		Quantity:      req.Quantity,
	})
}

// OrderRejected implements engine.Session
func (s *Session) OrderRejected(req engine.EnterOrder, reason engine.RejectReason) {
	s.publish(&reports.Report{
		Type:          reports.ReportRejected,
		ClientID:      s.clientID,
		ClientOrderID: req.ClientOrderID,
		Instrument:    req.Instrument,
		Reason:        string(reason),
	})
}

// OrderExecuted implements engine.Session
func (s *Session) OrderExecuted(price, quantity uint64, liquidity engine.Liquidity, matchNumber uint64, order *engine.Order) {
	s.publish(&reports.Report{
		Type:          reports.ReportExecuted,
		ClientID:      s.clientID,
		ClientOrderID: order.ClientOrderID(),
		OrderNumber:   order.OrderNumber(),
		Instrument:    order.Instrument(),
		Price:         price,
		Quantity:      quantity,
		Liquidity:     string(liquidity),
		MatchNumber:   matchNumber,
	})
}

// OrderCanceled implements engine.Session
func (s *Session) OrderCanceled(quantity uint64, reason engine.CancelReason, order *engine.Order) {
	s.publish(&reports.Report{
		Type:          reports.ReportCanceled,
		ClientID:      s.clientID,
		ClientOrderID: order.ClientOrderID(),
		OrderNumber:   order.OrderNumber(),
		Instrument:    order.Instrument(),
		Quantity:      quantity,
		Reason:        string(reason),
	})
}

// Track implements engine.Session
func (s *Session) Track(order *engine.Order) {
	s.orders[order.ClientOrderID()] = order
}

// Release implements engine.Session
func (s *Session) Release(order *engine.Order) {
	delete(s.orders, order.ClientOrderID())
}

func (s *Session) publish(report *reports.Report) {
	if err := s.sender.SendReport(report); err != nil {
		log.Error().Err(err).
			Str("client_id", s.clientID).
			Str("client_order_id", report.ClientOrderID).
			Msg("Failed to publish execution report")
	}
}

// Ensure Session implements engine.Session
var _ engine.Session = (*Session)(nil)
