package reports

import (
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendReport(t *testing.T) {
	oldNewSyncProducer := newSyncProducer
	defer func() { newSyncProducer = oldNewSyncProducer }()

	mock := &capturingProducer{}
	newSyncProducer = func(addrs []string, config *sarama.Config) (sarama.SyncProducer, error) {
		return mock, nil
	}

	sender, err := NewQueueReportSender()
	require.NoError(t, err)
	defer sender.Close()

	report := &Report{
		Type:          ReportExecuted,
		ClientID:      "trader-1",
		ClientOrderID: "ord-42",
		OrderNumber:   7,
		Instrument:    "FOO",
		Price:         1000,
		Quantity:      50,
		Liquidity:     "added",
		MatchNumber:   3,
	}
	require.NoError(t, sender.SendReport(report))

	require.Len(t, mock.sent, 1)
	msg := mock.sent[0]
	assert.Equal(t, topic, msg.Topic)

	key, err := msg.Key.Encode()
	require.NoError(t, err)
	assert.Equal(t, "trader-1", string(key))

	value, err := msg.Value.Encode()
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(value, &decoded))
	assert.Equal(t, *report, decoded)
}

func TestSendReportOmitsEmptyFields(t *testing.T) {
	oldNewSyncProducer := newSyncProducer
	defer func() { newSyncProducer = oldNewSyncProducer }()

	mock := &capturingProducer{}
	newSyncProducer = func(addrs []string, config *sarama.Config) (sarama.SyncProducer, error) {
		return mock, nil
	}

	sender, err := NewQueueReportSender()
	require.NoError(t, err)
	defer sender.Close()

	require.NoError(t, sender.SendReport(&Report{
		Type:          ReportRejected,
		ClientID:      "trader-2",
		ClientOrderID: "ord-1",
		Reason:        "unknown-instrument",
	}))

	require.Len(t, mock.sent, 1)
	value, err := mock.sent[0].Value.Encode()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(value, &raw))
	assert.NotContains(t, raw, "orderNumber")
	assert.NotContains(t, raw, "matchNumber")
	assert.Equal(t, "unknown-instrument", raw["reason"])
}
