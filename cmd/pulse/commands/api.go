package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockpulse/backend/internal/api"
	"github.com/stockpulse/backend/internal/api/handlers"
	"github.com/stockpulse/backend/internal/contracts"
	"github.com/stockpulse/backend/internal/trends"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the REST API server.

Endpoints:
  GET /health                - Health check
  GET /api/data              - Mention trends for a day range
  GET /api/data/subreddits   - Trends restricted to a subreddit selection
  GET /api/submissions       - One page of a ticker's submissions
  GET /api/stocks/{tickers}  - Live quotes

Example:
  go run ./cmd/pulse api
  go run ./cmd/pulse api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	d, err := newDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	var quotes contracts.QuoteProvider
	if client := d.newQuoteProvider(); client != nil {
		quotes = client
	}
	cache := d.newCache()

	service := trends.NewService(
		d.submissions,
		d.grouper,
		d.catalog,
		quotes,
		cache,
		d.cfg.Subreddits,
		d.log,
	)

	dataHandler := handlers.NewDataHandler(service, d.log)
	stockHandler := handlers.NewStockHandler(quotes, cache, d.log)

	router := api.NewRouter(dataHandler, stockHandler, d.log)
	server := api.New(d.cfg, d.log, router)

	go func() {
		if err := server.Start(); err != nil {
			d.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", d.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	d.log.Info("Server stopped")
	return nil
}
