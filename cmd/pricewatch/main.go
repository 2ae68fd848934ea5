// Package main is the entry point for the pricewatch demo application.
//
// pricewatch is a usage example for the priceholder library: one simulated
// price feed and one watcher per configured symbol, all sharing a single
// holder through clones. It is an external caller of the library, nothing
// more.
package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/harryscholes/priceholder"
	"github.com/harryscholes/priceholder/internal/config"
)

func main() {
	// --- Configuration and Flags ---
	configFile := flag.String("config", "", "Path to config file (built-in defaults when empty)")
	verbose := flag.Bool("verbose", false, "Log every published price, not just deliveries")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg := config.New()
	if *configFile != "" {
		if err := cfg.Load(*configFile); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if len(cfg.Symbols) == 0 {
		log.Fatal("No symbols configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.RunSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.RunSeconds)*time.Second)
		defer cancel()
	}

	holder := priceholder.New[uint64]()
	tick := time.Duration(cfg.TickMillis) * time.Millisecond

	log.WithField("symbols", cfg.Symbols).Info("Starting pricewatch")

	var wg sync.WaitGroup
	for _, symbol := range cfg.Symbols {
		wg.Add(2)
		go feed(ctx, &wg, holder.Clone(), symbol, cfg, tick)
		go watch(ctx, &wg, holder.Clone(), symbol)
	}

	<-ctx.Done()
	log.Info("Shutting down...")
	if err := holder.Close(); err != nil {
		log.Errorf("Failed to close holder: %v", err)
	}
	wg.Wait()
	log.Info("pricewatch stopped")
}

// feed publishes a random walk of prices for one symbol until ctx ends.
func feed(ctx context.Context, wg *sync.WaitGroup, h *priceholder.Holder[uint64], symbol string, cfg *config.Config, tick time.Duration) {
	defer wg.Done()

	logger := log.WithFields(log.Fields{
		"feed":   uuid.NewString(),
		"symbol": symbol,
	})
	logger.Info("Feed started")

	price := cfg.StartPrice
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Feed stopped")
			return
		case <-ticker.C:
			price = step(price, cfg.MaxStep)
			if err := h.PutPrice(symbol, price); err != nil {
				logger.WithError(err).Error("Failed to publish price")
				return
			}
			logger.WithField("price", price).Debug("Published price")
		}
	}
}

// watch blocks on the next price for one symbol and logs each delivery.
func watch(ctx context.Context, wg *sync.WaitGroup, h *priceholder.Holder[uint64], symbol string) {
	defer wg.Done()

	logger := log.WithField("symbol", symbol)
	for {
		price, err := h.NextPriceContext(ctx, symbol)
		if err != nil {
			logger.WithError(err).Info("Watcher stopped")
			return
		}
		logger.WithField("price", price).Info("Price updated")
	}
}

// step moves price by at most maxStep in either direction, staying positive.
func step(price, maxStep uint64) uint64 {
	if maxStep == 0 {
		return price
	}
	delta := uint64(rand.Int63n(int64(maxStep))) + 1
	if rand.Intn(2) == 0 && price > delta {
		return price - delta
	}
	return price + delta
}
