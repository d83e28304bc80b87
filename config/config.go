// Package config loads engine configuration from defaults, an
// optional YAML file, and ENGINE_-prefixed environment variables, in
// increasing order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/quivertrade/engine/pkg/reports"
)

// Config represents the application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	Kafka struct {
		Brokers     []string `mapstructure:"brokers"`
		OrderTopic  string   `mapstructure:"order_topic"`
		ReportTopic string   `mapstructure:"report_topic"`
		FeedTopic   string   `mapstructure:"feed_topic"`
	} `mapstructure:"kafka"`

	Redis struct {
		Enabled  bool   `mapstructure:"enabled"`
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Otel struct {
		Enabled  bool   `mapstructure:"enabled"`
		Endpoint string `mapstructure:"endpoint"`
	} `mapstructure:"otel"`

	InstrumentsFile string `mapstructure:"instruments_file"`
}

// Load reads the configuration. A non-empty path names a YAML config
// file; environment variables such as ENGINE_KAFKA_BROKERS override
// file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.order_topic", "order-entry")
	v.SetDefault("kafka.report_topic", "execution-reports")
	v.SetDefault("kafka.feed_topic", "market-data")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.endpoint", "localhost:4317")
	v.SetDefault("instruments_file", "instruments.yaml")

	v.SetEnvPrefix("ENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Point the report queue at the configured cluster
	reports.SetBrokerList(config.Kafka.Brokers)
	reports.SetTopic(config.Kafka.ReportTopic)

	return &config, nil
}
