package reports

import (
	"errors"
	"sync"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetPool clears pool state and shrinks it, restoring everything
// when the test ends
func resetPool(t *testing.T, size int) {
	t.Helper()

	oldPool, oldSize := senderPool, maxPoolSize
	oldNewSyncProducer := newSyncProducer
	t.Cleanup(func() {
		senderPool, poolInitOnce, maxPoolSize = oldPool, sync.Once{}, oldSize
		newSyncProducer = oldNewSyncProducer
	})

	senderPool = nil
	poolInitOnce = sync.Once{}
	maxPoolSize = size
}

func TestPooledSenderPublishesThroughPool(t *testing.T) {
	resetPool(t, 2)

	var producers []*capturingProducer
	newSyncProducer = func(addrs []string, config *sarama.Config) (sarama.SyncProducer, error) {
		producer := &capturingProducer{}
		producers = append(producers, producer)
		return producer, nil
	}

	sender := NewPooledSender()
	defer sender.Close()

	require.Len(t, producers, 2)

	for i := 0; i < 5; i++ {
		require.NoError(t, sender.SendReport(&Report{
			Type:          ReportAccepted,
			ClientID:      "trader-1",
			ClientOrderID: "ord-1",
		}))
	}

	total := 0
	for _, producer := range producers {
		total += len(producer.sent)
	}
	assert.Equal(t, 5, total)

	// every sender went back to the pool after use
	assert.Len(t, senderPool, 2)
}

func TestSendEvictsFailedSender(t *testing.T) {
	resetPool(t, 1)

	newSyncProducer = func(addrs []string, config *sarama.Config) (sarama.SyncProducer, error) {
		return &capturingProducer{fail: errors.New("broker gone")}, nil
	}

	report := &Report{Type: ReportAccepted, ClientID: "trader-1", ClientOrderID: "ord-1"}

	require.Error(t, Send(report))

	// the failed sender was closed, not returned, so the pool is empty
	assert.Len(t, senderPool, 0)
	assert.ErrorContains(t, Send(report), "failed to get report sender")
}

func TestGetAndReturnSenderRoundTrip(t *testing.T) {
	resetPool(t, 1)

	newSyncProducer = func(addrs []string, config *sarama.Config) (sarama.SyncProducer, error) {
		return &capturingProducer{}, nil
	}

	sender := GetSender()
	require.NotNil(t, sender)

	// pool exhausted until the sender comes back
	assert.Nil(t, GetSender())

	ReturnSender(sender)
	assert.NotNil(t, GetSender())
}

func TestPooledSenderCloseDrainsPool(t *testing.T) {
	resetPool(t, 2)

	newSyncProducer = func(addrs []string, config *sarama.Config) (sarama.SyncProducer, error) {
		return &capturingProducer{}, nil
	}

	sender := NewPooledSender()
	require.NoError(t, sender.Close())

	assert.Len(t, senderPool, 0)
}
