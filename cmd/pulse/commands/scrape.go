package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Ingest new submissions from the archive",
	Long: `Scrapes tracked subreddits hour by hour, from the newest stored
submission (or SCRAPE_START_DATE on an empty database) up to now,
extracting and persisting ticker mentions along the way.

Example:
  go run ./cmd/pulse scrape`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	d, err := newDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	result, err := d.newScraper().Run(context.Background())
	if err != nil {
		return fmt.Errorf("scrape: %w", err)
	}

	fmt.Printf("Scraped %d windows (%d failed)\n", result.Windows, result.Failed)
	return nil
}
