// Command loadtest measures matching engine throughput and latency by
// driving an in-process engine with randomized order flow on a single
// goroutine, matching the engine's threading contract.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/quivertrade/engine/pkg/engine"
	"github.com/quivertrade/engine/pkg/logging"
)

var (
	numOrders   = flag.Int("orders", 1_000_000, "Number of orders to enter")
	ordersPerS  = flag.Int("rate", 0, "Order entry rate limit, 0 for unlimited")
	cancelEvery = flag.Int("cancel-every", 10, "Cancel a live order after every N entries, 0 to disable")
	instrument  = flag.String("instrument", "LOAD", "Instrument symbol")
	priceBand   = flag.Uint64("price-band", 100, "Half-width of the random price band around 10000")
	seed        = flag.Int64("seed", 1, "Random seed")
)

// loadSession counts notifications and keeps the set of live orders so
// the driver can pick cancel targets.
type loadSession struct {
	accepted uint64
	rejected uint64
	executed uint64
	canceled uint64
	live     []*engine.Order
}

func (s *loadSession) OrderAccepted(req engine.EnterOrder, order *engine.Order) { s.accepted++ }

func (s *loadSession) OrderRejected(req engine.EnterOrder, reason engine.RejectReason) {
	s.rejected++
}

func (s *loadSession) OrderExecuted(price, quantity uint64, liquidity engine.Liquidity, matchNumber uint64, order *engine.Order) {
	s.executed++
}

func (s *loadSession) OrderCanceled(quantity uint64, reason engine.CancelReason, order *engine.Order) {
	s.canceled++
}

func (s *loadSession) Track(order *engine.Order) {
	s.live = append(s.live, order)
}

func (s *loadSession) Release(order *engine.Order) {
	for i, o := range s.live {
		if o == order {
			s.live[i] = s.live[len(s.live)-1]
			s.live = s.live[:len(s.live)-1]
			return
		}
	}
}

func main() {
	flag.Parse()

	logging.Setup(logging.Config{Level: "warn"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng := engine.New([]string{*instrument}, nil)
	session := &loadSession{}
	rng := rand.New(rand.NewSource(*seed))

	var limiter *rate.Limiter
	if *ordersPerS > 0 {
		limiter = rate.NewLimiter(rate.Limit(*ordersPerS), *ordersPerS)
	}

	// One microsecond to one second, three significant digits
	hist := hdrhistogram.New(1, 1_000_000, 3)

	log.Printf("Entering %d orders on %s...", *numOrders, *instrument)
	start := time.Now()

	entered := 0
	for ; entered < *numOrders; entered++ {
		if ctx.Err() != nil {
			log.Printf("Interrupted after %d orders", entered)
			break
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				break
			}
		}

		req := randomOrder(rng)
		begin := time.Now()
		eng.EnterOrder(ctx, req, session)
		if err := hist.RecordValue(time.Since(begin).Microseconds()); err != nil {
			log.Printf("Failed to record latency: %v", err)
		}

		if *cancelEvery > 0 && entered%*cancelEvery == *cancelEvery-1 && len(session.live) > 0 {
			target := session.live[rng.Intn(len(session.live))]
			eng.CancelOrder(ctx, engine.CancelOrder{}, target)
		}
	}

	elapsed := time.Since(start)

	fmt.Printf("\nEntered %d orders in %v (%.0f orders/s)\n",
		entered, elapsed.Round(time.Millisecond), float64(entered)/elapsed.Seconds())
	fmt.Printf("Accepted %d, executed %d, canceled %d, rejected %d, resting %d\n",
		session.accepted, session.executed, session.canceled, session.rejected, eng.Tracked())
	fmt.Printf("Enter latency (us): p50=%d p90=%d p99=%d p99.9=%d max=%d\n",
		hist.ValueAtQuantile(50),
		hist.ValueAtQuantile(90),
		hist.ValueAtQuantile(99),
		hist.ValueAtQuantile(99.9),
		hist.Max())
}

func randomOrder(rng *rand.Rand) engine.EnterOrder {
	side := engine.Buy
	if rng.Intn(2) == 0 {
		side = engine.Sell
	}

	return engine.EnterOrder{
		ClientOrderID: uuid.NewString(),
		Instrument:    *instrument,
		Side:          side,
		Price:         10_000 - *priceBand + uint64(rng.Int63n(int64(*priceBand)*2+1)),
		Quantity:      uint64(rng.Intn(100) + 1),
	}
}
