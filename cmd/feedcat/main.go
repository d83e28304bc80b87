// Command feedcat tails the market-data feed topic and prints each
// event, colored by type, for eyeballing a running engine.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/segmentio/kafka-go"

	"github.com/quivertrade/engine/pkg/marketdata"
)

var (
	brokers = flag.String("brokers", "localhost:9092", "Comma-separated Kafka broker list")
	topic   = flag.String("topic", "market-data", "Market data feed topic")
)

var (
	addedColor    = color.New(color.FgGreen)
	executedColor = color.New(color.FgCyan, color.Bold)
	canceledColor = color.New(color.FgYellow)
	deletedColor  = color.New(color.FgRed)
)

func main() {
	flag.Parse()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: strings.Split(*brokers, ","),
		Topic:   *topic,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Fatalf("Failed to read feed: %v", err)
		}

		var event marketdata.Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("Skipping undecodable event at offset %d: %v", msg.Offset, err)
			continue
		}

		printEvent(event)
	}
}

func printEvent(event marketdata.Event) {
	switch event.Type {
	case marketdata.EventOrderAdded:
		addedColor.Printf("ADD    #%-10d %-4s %-8s %s @ %s\n",
			event.OrderNumber, event.Side, event.Instrument, event.Size, event.Price)

	case marketdata.EventOrderExecuted:
		executedColor.Printf("EXEC   #%-10d qty %d match %d\n",
			event.OrderNumber, event.Quantity, event.MatchNumber)

	case marketdata.EventOrderCanceled:
		canceledColor.Printf("CANCEL #%-10d qty %d\n",
			event.OrderNumber, event.Quantity)

	case marketdata.EventOrderDeleted:
		deletedColor.Printf("DELETE #%-10d\n", event.OrderNumber)

	default:
		fmt.Printf("?      %+v\n", event)
	}
}
