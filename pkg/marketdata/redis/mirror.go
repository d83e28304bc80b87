// Package redis mirrors the market-data feed into Redis so query
// services can read the live book without touching the engine.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/quivertrade/engine/pkg/book"
	"github.com/quivertrade/engine/pkg/marketdata"
)

// RedisOptions represents configuration options for a Redis connection
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

var defaultOptions = &RedisOptions{
	Addr:     "localhost:6379",
	Password: "",
	DB:       0,
}

// SetDefaultRedisOptions sets the default options for Redis connections
func SetDefaultRedisOptions(options *RedisOptions) {
	defaultOptions = options
}

// GetRedisClient creates a new Redis client using the default options
func GetRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     defaultOptions.Addr,
		Password: defaultOptions.Password,
		DB:       defaultOptions.DB,
	})
}

// displayedOrder is the hash value kept per resting order
type displayedOrder struct {
	Side       string `json:"side"`
	Instrument string `json:"instrument"`
	Size       uint64 `json:"size"`
	Price      uint64 `json:"price"`
}

// Mirror implements marketdata.Sink by maintaining a hash of resting
// orders and a stream of executions in Redis. It is driven from the
// engine's single goroutine and keeps the displayed size of each order
// itself, since execution events carry only the executed delta.
type Mirror struct {
	client    *redis.Client
	keyPrefix string
	ordersKey string
	tradesKey string
	displayed map[uint64]*displayedOrder
	logger    *zap.Logger
}

// NewMirror creates a Mirror writing under the given key prefix
func NewMirror(client *redis.Client, keyPrefix string, logger *zap.Logger) *Mirror {
	return &Mirror{
		client:    client,
		keyPrefix: keyPrefix,
		ordersKey: fmt.Sprintf("%s:orders", keyPrefix),
		tradesKey: fmt.Sprintf("%s:trades", keyPrefix),
		displayed: make(map[uint64]*displayedOrder),
		logger:    logger,
	}
}

// OrderAdded stores the new resting order in the orders hash
func (m *Mirror) OrderAdded(orderNumber uint64, side book.Side, instrument string, size, price uint64) {
	order := &displayedOrder{
		Side:       side.String(),
		Instrument: instrument,
		Size:       size,
		Price:      price,
	}
	m.displayed[orderNumber] = order
	m.store(orderNumber, order)
}

// OrderExecuted appends the execution to the trades stream and shrinks
// the displayed order, removing it when fully consumed. Note a full
// fill never produces a separate deletion event on the feed.
func (m *Mirror) OrderExecuted(orderNumber uint64, quantity, matchNumber uint64) {
	err := m.client.XAdd(context.Background(), &redis.XAddArgs{
		Stream: m.tradesKey,
		Values: map[string]interface{}{
			"orderNumber": orderNumber,
			"quantity":    quantity,
			"matchNumber": matchNumber,
		},
	}).Err()
	if err != nil {
		m.logger.Error("failed to append trade",
			zap.Uint64("orderNumber", orderNumber),
			zap.Error(err))
	}

	order, ok := m.displayed[orderNumber]
	if !ok {
		return
	}
	if quantity >= order.Size {
		m.delete(orderNumber)
		return
	}
	order.Size -= quantity
	m.store(orderNumber, order)
}

// OrderCanceled shrinks the displayed order
func (m *Mirror) OrderCanceled(orderNumber uint64, canceledQuantity uint64) {
	order, ok := m.displayed[orderNumber]
	if !ok {
		return
	}
	if canceledQuantity >= order.Size {
		m.delete(orderNumber)
		return
	}
	order.Size -= canceledQuantity
	m.store(orderNumber, order)
}

// OrderDeleted removes the order from the orders hash
func (m *Mirror) OrderDeleted(orderNumber uint64) {
	m.delete(orderNumber)
}

func (m *Mirror) store(orderNumber uint64, order *displayedOrder) {
	data, err := json.Marshal(order)
	if err != nil {
		m.logger.Error("failed to marshal displayed order",
			zap.Uint64("orderNumber", orderNumber),
			zap.Error(err))
		return
	}

	field := strconv.FormatUint(orderNumber, 10)
	if err := m.client.HSet(context.Background(), m.ordersKey, field, data).Err(); err != nil {
		m.logger.Error("failed to store displayed order",
			zap.Uint64("orderNumber", orderNumber),
			zap.Error(err))
	}
}

func (m *Mirror) delete(orderNumber uint64) {
	delete(m.displayed, orderNumber)

	field := strconv.FormatUint(orderNumber, 10)
	if err := m.client.HDel(context.Background(), m.ordersKey, field).Err(); err != nil {
		m.logger.Error("failed to delete displayed order",
			zap.Uint64("orderNumber", orderNumber),
			zap.Error(err))
	}
}

// Ensure Mirror implements marketdata.Sink
var _ marketdata.Sink = (*Mirror)(nil)
