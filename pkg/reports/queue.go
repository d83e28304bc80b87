package reports

import (
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
)

var (
	brokerList = []string{"localhost:9092"}
	topic      = "execution-reports"
)

// newSyncProducer creates the underlying producer; swapped in tests
var newSyncProducer = sarama.NewSyncProducer

// SetBrokerList overrides the Kafka broker list
func SetBrokerList(brokers []string) {
	brokerList = brokers
}

// SetTopic overrides the report topic
func SetTopic(t string) {
	topic = t
}

// QueueReportSender implements the Sender interface for sending
// execution reports to Kafka
type QueueReportSender struct {
	producer sarama.SyncProducer
}

// NewQueueReportSender creates a sender with its own Kafka producer
func NewQueueReportSender() (*QueueReportSender, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Return.Successes = true

	producer, err := newSyncProducer(brokerList, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &QueueReportSender{producer: producer}, nil
}

// SendReport sends the report to the Kafka queue, keyed by client ID
func (q *QueueReportSender) SendReport(report *Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(report.ClientID),
		Value: sarama.ByteEncoder(data),
	}

	if _, _, err := q.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to send report to Kafka: %w", err)
	}

	return nil
}

// Close closes the underlying producer
func (q *QueueReportSender) Close() error {
	return q.producer.Close()
}

// Ensure QueueReportSender implements Sender
var _ Sender = (*QueueReportSender)(nil)
