// Package kafka publishes the market-data feed to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/nikolaydubina/fpdecimal"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/quivertrade/engine/pkg/book"
	"github.com/quivertrade/engine/pkg/marketdata"
)

// Scaling converts an instrument's integer protocol units to the
// decimal prices and sizes shown on the public feed.
type Scaling struct {
	Tick fpdecimal.Decimal
	Lot  fpdecimal.Decimal
}

// Publisher implements marketdata.Sink by writing JSON events to a
// Kafka topic. Events for an order are keyed by its order number, so
// per-order ordering survives partitioning.
type Publisher struct {
	writer  *kafka.Writer
	topic   string
	scaling map[string]Scaling
}

// NewPublisher creates a Kafka feed publisher. scaling maps instrument
// symbols to their tick and lot sizes; instruments without an entry are
// published with unscaled integer values.
func NewPublisher(brokers []string, topic string, scaling map[string]Scaling) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Publisher{
		writer:  writer,
		topic:   topic,
		scaling: scaling,
	}
}

// OrderAdded publishes a new resting order
func (p *Publisher) OrderAdded(orderNumber uint64, side book.Side, instrument string, size, price uint64) {
	ev := marketdata.Event{
		Type:        marketdata.EventOrderAdded,
		OrderNumber: orderNumber,
		Side:        side.String(),
		Instrument:  instrument,
		Size:        p.scaleLot(instrument, size),
		Price:       p.scaleTick(instrument, price),
	}
	p.publish(orderNumber, ev)
}

// OrderExecuted publishes an execution
func (p *Publisher) OrderExecuted(orderNumber uint64, quantity, matchNumber uint64) {
	ev := marketdata.Event{
		Type:        marketdata.EventOrderExecuted,
		OrderNumber: orderNumber,
		Quantity:    quantity,
		MatchNumber: matchNumber,
	}
	p.publish(orderNumber, ev)
}

// OrderCanceled publishes a partial cancellation
func (p *Publisher) OrderCanceled(orderNumber uint64, canceledQuantity uint64) {
	ev := marketdata.Event{
		Type:        marketdata.EventOrderCanceled,
		OrderNumber: orderNumber,
		Quantity:    canceledQuantity,
	}
	p.publish(orderNumber, ev)
}

// OrderDeleted publishes a removal
func (p *Publisher) OrderDeleted(orderNumber uint64) {
	ev := marketdata.Event{
		Type:        marketdata.EventOrderDeleted,
		OrderNumber: orderNumber,
	}
	p.publish(orderNumber, ev)
}

// Close closes the Kafka writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) publish(orderNumber uint64, ev marketdata.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("type", string(ev.Type)).Msg("Failed to marshal feed event")
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(orderNumber, 10)),
		Value: data,
		Time:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		// Feed delivery failures are absorbed here; the engine's event
		// sequencing must not depend on downstream availability.
		log.Error().Err(err).Str("type", string(ev.Type)).Uint64("order_number", orderNumber).
			Msg("Failed to publish feed event")
	}
}

func (p *Publisher) scaleTick(instrument string, price uint64) string {
	s, ok := p.scaling[instrument]
	if !ok {
		return strconv.FormatUint(price, 10)
	}
	return s.Tick.Mul(fpdecimal.FromInt(int64(price))).String()
}

func (p *Publisher) scaleLot(instrument string, size uint64) string {
	s, ok := p.scaling[instrument]
	if !ok {
		return strconv.FormatUint(size, 10)
	}
	return s.Lot.Mul(fpdecimal.FromInt(int64(size))).String()
}

// Ensure Publisher implements marketdata.Sink
var _ marketdata.Sink = (*Publisher)(nil)
