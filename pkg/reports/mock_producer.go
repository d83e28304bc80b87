package reports

import (
	"github.com/IBM/sarama"
)

// capturingProducer records produced report messages for tests. The
// fail error, when set, is returned from every send so tests can
// exercise the error paths. The transactional half of
// sarama.SyncProducer is stubbed out; the report queue never uses it.
type capturingProducer struct {
	sent []*sarama.ProducerMessage
	fail error
}

func (p *capturingProducer) SendMessage(msg *sarama.ProducerMessage) (partition int32, offset int64, err error) {
	if p.fail != nil {
		return 0, 0, p.fail
	}
	p.sent = append(p.sent, msg)
	return 0, 0, nil
}

func (p *capturingProducer) SendMessages(msgs []*sarama.ProducerMessage) error {
	if p.fail != nil {
		return p.fail
	}
	p.sent = append(p.sent, msgs...)
	return nil
}

func (p *capturingProducer) Close() error { return nil }

func (p *capturingProducer) TxnStatus() sarama.ProducerTxnStatusFlag { return 0 }

func (p *capturingProducer) IsTransactional() bool { return false }

func (p *capturingProducer) BeginTxn() error { return nil }

func (p *capturingProducer) CommitTxn() error { return nil }

func (p *capturingProducer) AbortTxn() error { return nil }

func (p *capturingProducer) AddMessageToTxn(msg *sarama.ConsumerMessage, groupID string, metadata *string) error {
	return nil
}

func (p *capturingProducer) AddOffsetsToTxn(offsets map[string][]*sarama.PartitionOffsetMetadata, groupID string) error {
	return nil
}

// Ensure capturingProducer satisfies the producer contract
var _ sarama.SyncProducer = (*capturingProducer)(nil)
