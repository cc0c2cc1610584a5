// Command watch is a terminal dashboard that follows a treasuryd
// server: it polls the holdings snapshot and merges live asset price
// events on top of the price list.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"treasuryd/internal/common"
	"treasuryd/internal/dashclient"
	"treasuryd/internal/models"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "treasuryd server base URL")
	interval := flag.Duration("interval", dashclient.DefaultRefreshInterval, "snapshot refresh interval")
	flag.Parse()

	logger := common.NewDefaultLogger()
	client := dashclient.NewClient(*baseURL, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	controller := dashclient.NewRefreshController(client.FetchSnapshot, *interval, logger)
	controller.Start()
	defer controller.Stop()

	cache := dashclient.NewLiveMergeCache()
	if prices, err := client.FetchAssetPrices(ctx); err != nil {
		logger.Warn().Err(err).Msg("Asset price seed failed")
	} else {
		cache.Seed(prices)
	}

	sub, err := client.SubscribeLive(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Live subscription unavailable, prices will be poll-only")
	} else {
		defer sub.Close()
		go func() {
			for event := range sub.Events {
				cache.Apply(event)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sigChan:
			fmt.Println("\nbye")
			return
		case <-ticker.C:
			render(controller, cache)
		}
	}
}

func render(controller *dashclient.RefreshController, cache *dashclient.LiveMergeCache) {
	fmt.Print("\033[H\033[2J")

	switch controller.State() {
	case dashclient.StateInitializing:
		fmt.Println("loading holdings...")
		return
	case dashclient.StateError:
		fmt.Printf("error: %s\n", controller.Err())
		return
	}

	snapshot := controller.Snapshot()
	if snapshot == nil {
		return
	}

	if snapshot.LTCPrice != nil && snapshot.LTCPrice.Value != nil {
		fmt.Printf("LTC %s %.2f\n\n", snapshot.LTCPrice.Currency, *snapshot.LTCPrice.Value)
	}
	if snapshot.Debug != nil {
		fmt.Printf("! %s (%s)\n\n", snapshot.Debug.Message, snapshot.Debug.Hint)
	}

	printHoldings("COMPANIES", snapshot.Companies)
	printHoldings("ETFS", snapshot.ETFs)

	prices := cache.Snapshot()
	if len(prices) > 0 {
		fmt.Println("LIVE PRICES")
		for _, p := range prices {
			fmt.Printf("  %-12s %12.2f  %+6.2f%%\n", p.Name, p.Price, p.Growth)
		}
	}
}

func printHoldings(title string, holdings []models.Holding) {
	fmt.Println(title)
	if len(holdings) == 0 {
		fmt.Println("  (none)")
	}
	for _, h := range holdings {
		fmt.Printf("  %-28s %-8s %14.2f LTC %16.2f USD\n", h.Name, h.Ticker, h.LTCHoldings, h.ValueUSD)
	}
	fmt.Println()
}
