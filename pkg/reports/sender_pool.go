package reports

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	senderPool   chan Sender
	poolInitOnce sync.Once
	maxPoolSize  = 32
)

// initSenderPool initializes the sender pool
func initSenderPool() {
	poolInitOnce.Do(func() {
		senderPool = make(chan Sender, maxPoolSize)
		for i := 0; i < maxPoolSize; i++ {
			sender, err := NewQueueReportSender()
			if err != nil {
				log.Error().Err(err).Msg("Failed to create pooled report sender")
				continue
			}
			senderPool <- sender
		}
	})
}

// GetSender gets a sender from the pool
func GetSender() Sender {
	initSenderPool()

	select {
	case sender := <-senderPool:
		return sender
	default:
		log.Warn().Msg("Report sender pool is empty")
		return nil
	}
}

// ReturnSender returns a sender to the pool
func ReturnSender(sender Sender) {
	if sender == nil {
		return
	}

	select {
	case senderPool <- sender:
	default:
		log.Warn().Msg("Report sender pool is full, closing surplus sender")
		_ = sender.Close()
	}
}

// Send sends a report using a pooled sender
func Send(report *Report) error {
	sender := GetSender()
	if sender == nil {
		return fmt.Errorf("failed to get report sender from pool")
	}

	if err := sender.SendReport(report); err != nil {
		// A failed sender may hold a broken connection; close it
		// instead of returning it to the pool.
		_ = sender.Close()
		return err
	}

	ReturnSender(sender)
	return nil
}

// PooledSender adapts the pool to the Sender interface, so components
// that hold a single Sender publish through pooled producers instead
// of a dedicated one.
type PooledSender struct{}

// NewPooledSender populates the pool and returns a Sender over it
func NewPooledSender() *PooledSender {
	initSenderPool()
	return &PooledSender{}
}

// SendReport publishes the report through a pooled sender
func (*PooledSender) SendReport(report *Report) error {
	return Send(report)
}

// Close drains the pool, closing every pooled sender
func (*PooledSender) Close() error {
	for {
		select {
		case sender := <-senderPool:
			_ = sender.Close()
		default:
			return nil
		}
	}
}

// Ensure PooledSender implements Sender
var _ Sender = (*PooledSender)(nil)
