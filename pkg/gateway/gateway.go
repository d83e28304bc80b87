// Package gateway routes order-entry messages from clients into the
// matching engine and turns the engine's notifications into execution
// reports. One gateway serves many client sessions; all dispatching
// happens on a single goroutine, matching the engine's threading
// contract.
package gateway

import (
	"context"

	"github.com/quivertrade/engine/pkg/engine"
	"github.com/quivertrade/engine/pkg/logging"
	"github.com/quivertrade/engine/pkg/reports"
)

// Message types
const (
	MessageEnter  = "enter"
	MessageCancel = "cancel"
	MessageLogout = "logout"
)

// Message is an inbound order-entry message from a client
type Message struct {
	Type          string `json:"type"`
	ClientID      string `json:"clientID"`
	ClientOrderID string `json:"clientOrderID,omitempty"`
	Instrument    string `json:"instrument,omitempty"`
	Side          string `json:"side,omitempty"`
	Price         uint64 `json:"price,omitempty"`
	Quantity      uint64 `json:"quantity,omitempty"`
}

// Gateway dispatches client messages into the engine
type Gateway struct {
	engine   *engine.Engine
	sender   reports.Sender
	sessions map[string]*Session
}

// New creates a gateway in front of eng, publishing execution reports
// through sender
func New(eng *engine.Engine, sender reports.Sender) *Gateway {
	return &Gateway{
		engine:   eng,
		sender:   sender,
		sessions: make(map[string]*Session),
	}
}

// Session returns the session for a client, creating it on first use
func (g *Gateway) Session(clientID string) *Session {
	session, ok := g.sessions[clientID]
	if !ok {
		session = NewSession(clientID, g.sender)
		g.sessions[clientID] = session
	}
	return session
}

// Dispatch handles one inbound message. Unknown message types and
// cancels for unknown orders are dropped with a log line; the order
// entry protocol has no error channel for them.
func (g *Gateway) Dispatch(ctx context.Context, msg Message) {
	logger := logging.FromContext(ctx).With().
		Str("client_id", msg.ClientID).
		Str("message_type", msg.Type).
		Logger()

	switch msg.Type {
	case MessageEnter:
		session := g.Session(msg.ClientID)
		g.engine.EnterOrder(ctx, engine.EnterOrder{
			ClientOrderID: msg.ClientOrderID,
			Instrument:    msg.Instrument,
			Side:          sideOf(msg.Side),
			Price:         msg.Price,
			Quantity:      msg.Quantity,
		}, session)

	case MessageCancel:
		session := g.Session(msg.ClientID)
		order := session.Order(msg.ClientOrderID)
		if order == nil {
			logger.Debug().Str("client_order_id", msg.ClientOrderID).Msg("Cancel for unknown order")
			return
		}
		g.engine.CancelOrder(ctx, engine.CancelOrder{Quantity: msg.Quantity}, order)

	case MessageLogout:
		g.logout(ctx, msg.ClientID)

	default:
		logger.Warn().Msg("Dropped message of unknown type")
	}
}

// logout force-cancels every live order of the client and forgets the
// session. The client receives no cancel reports for them.
func (g *Gateway) logout(ctx context.Context, clientID string) {
	session, ok := g.sessions[clientID]
	if !ok {
		return
	}

	for _, order := range session.Orders() {
		g.engine.Cancel(ctx, order)
	}

	delete(g.sessions, clientID)
}

// sideOf decodes the wire side. Anything but a single recognized byte
// maps to a value the engine rejects.
func sideOf(side string) engine.Side {
	if len(side) != 1 {
		return 0
	}
	return engine.Side(side[0])
}
