package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// rescrapeCmd represents the rescrape command
var rescrapeCmd = &cobra.Command{
	Use:   "rescrape",
	Short: "Refresh scores of recent submissions",
	Long: `Fetches the current score and body for every submission stored in
the last three hours, directly from Reddit.

Example:
  go run ./cmd/pulse rescrape`,
	RunE: runRescrape,
}

func init() {
	rootCmd.AddCommand(rescrapeCmd)
}

func runRescrape(cmd *cobra.Command, args []string) error {
	d, err := newDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.newRescraper().Run(context.Background()); err != nil {
		return fmt.Errorf("rescrape: %w", err)
	}

	fmt.Println("Rescrape complete")
	return nil
}
