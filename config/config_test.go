package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "order-entry", cfg.Kafka.OrderTopic)
	assert.Equal(t, "execution-reports", cfg.Kafka.ReportTopic)
	assert.Equal(t, "market-data", cfg.Kafka.FeedTopic)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Otel.Enabled)
	assert.Equal(t, "instruments.yaml", cfg.InstrumentsFile)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
kafka:
  brokers:
    - kafka-1:9092
    - kafka-2:9092
  report_topic: reports
redis:
  enabled: true
  addr: redis:6379
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "reports", cfg.Kafka.ReportTopic)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseInstruments(t *testing.T) {
	instruments, err := ParseInstruments([]byte(`
instruments:
  - symbol: FOO
    tick: "0.01"
    lot: "100"
  - symbol: BAR
    tick: "0.5"
    lot: "10"
`))
	require.NoError(t, err)
	require.Len(t, instruments, 2)

	assert.Equal(t, "FOO", instruments[0].Symbol)
	assert.Equal(t, "0.01", instruments[0].Tick.String())
	assert.Equal(t, "100", instruments[0].Lot.String())
	assert.Equal(t, []string{"FOO", "BAR"}, Symbols(instruments))
}

func TestParseInstrumentsDuplicateSymbol(t *testing.T) {
	_, err := ParseInstruments([]byte(`
instruments:
  - symbol: FOO
    tick: "0.01"
    lot: "100"
  - symbol: FOO
    tick: "0.01"
    lot: "100"
`))
	assert.ErrorContains(t, err, "duplicate instrument")
}

func TestParseInstrumentsEmpty(t *testing.T) {
	_, err := ParseInstruments([]byte("instruments: []\n"))
	assert.Error(t, err)
}

func TestParseInstrumentsBadTick(t *testing.T) {
	_, err := ParseInstruments([]byte(`
instruments:
  - symbol: FOO
    tick: "one cent"
    lot: "100"
`))
	assert.ErrorContains(t, err, "bad tick")
}
