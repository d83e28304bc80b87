package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/quivertrade/engine/pkg/logging"
)

// Consumer reads order-entry messages from a Kafka topic and feeds
// them to the gateway. All messages flow through one partition
// consumer so the engine sees them in order, on one goroutine.
type Consumer struct {
	gateway   *Gateway
	consumer  sarama.Consumer
	partition sarama.PartitionConsumer
}

// NewConsumer creates a consumer reading the order-entry topic from
// the newest offset
func NewConsumer(gateway *Gateway, brokers []string, topic string) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Return.Errors = true

	consumer, err := sarama.NewConsumer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	partition, err := consumer.ConsumePartition(topic, 0, sarama.OffsetNewest)
	if err != nil {
		_ = consumer.Close()
		return nil, fmt.Errorf("failed to consume partition: %w", err)
	}

	return &Consumer{
		gateway:   gateway,
		consumer:  consumer,
		partition: partition,
	}, nil
}

// Run dispatches messages until the context is canceled. Messages
// that do not decode are dropped with a log line.
func (c *Consumer) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-c.partition.Errors():
			logger.Error().Err(err).Msg("Order entry consumer error")

		case kafkaMsg := <-c.partition.Messages():
			var msg Message
			if err := json.Unmarshal(kafkaMsg.Value, &msg); err != nil {
				logger.Warn().Err(err).
					Int64("offset", kafkaMsg.Offset).
					Msg("Dropped undecodable order entry message")
				continue
			}
			c.gateway.Dispatch(ctx, msg)
		}
	}
}

// Close tears down the partition consumer and the underlying consumer
func (c *Consumer) Close() error {
	if err := c.partition.Close(); err != nil {
		return err
	}
	return c.consumer.Close()
}
