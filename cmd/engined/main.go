// Command engined runs the matching engine: it consumes order-entry
// messages from Kafka, matches them on in-memory books, and publishes
// execution reports and the market-data feed.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"go.uber.org/zap"

	"github.com/quivertrade/engine/config"
	"github.com/quivertrade/engine/pkg/engine"
	"github.com/quivertrade/engine/pkg/gateway"
	"github.com/quivertrade/engine/pkg/logging"
	"github.com/quivertrade/engine/pkg/marketdata"
	mdkafka "github.com/quivertrade/engine/pkg/marketdata/kafka"
	mdredis "github.com/quivertrade/engine/pkg/marketdata/redis"
	"github.com/quivertrade/engine/pkg/otel"
	"github.com/quivertrade/engine/pkg/reports"
)

var configFile = flag.String("config", "", "Path to config file (YAML)")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Setup(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Format == "pretty",
	})

	instruments, err := config.LoadInstruments(cfg.InstrumentsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load instruments")
	}

	cleanup, err := otel.Init(otel.Config{
		Endpoint:         cfg.Otel.Endpoint,
		CollectorEnabled: cfg.Otel.Enabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize telemetry")
	}
	defer cleanup()

	scaling := make(map[string]mdkafka.Scaling, len(instruments))
	for _, instrument := range instruments {
		scaling[instrument.Symbol] = mdkafka.Scaling{
			Tick: instrument.Tick,
			Lot:  instrument.Lot,
		}
	}

	feed := mdkafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.FeedTopic, scaling)
	defer feed.Close()

	sinks := []marketdata.Sink{feed}

	if cfg.Redis.Enabled {
		mdredis.SetDefaultRedisOptions(&mdredis.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		zapLogger, err := zap.NewProduction()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create redis mirror logger")
		}
		defer zapLogger.Sync()

		mirror := mdredis.NewMirror(mdredis.GetRedisClient(), "engine", zapLogger)
		sinks = append(sinks, mirror)
	}

	sender := reports.NewPooledSender()
	defer sender.Close()

	eng := engine.New(config.Symbols(instruments), marketdata.NewFanout(sinks...))
	gw := gateway.New(eng, sender)

	consumer, err := gateway.NewConsumer(gw, cfg.Kafka.Brokers, cfg.Kafka.OrderTopic)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create order entry consumer")
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Strs("instruments", config.Symbols(instruments)).
		Str("order_topic", cfg.Kafka.OrderTopic).
		Str("report_topic", cfg.Kafka.ReportTopic).
		Str("feed_topic", cfg.Kafka.FeedTopic).
		Msg("Matching engine started")

	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("Order entry consumer stopped")
		os.Exit(1)
	}

	log.Info().Msg("Matching engine shut down")
}
