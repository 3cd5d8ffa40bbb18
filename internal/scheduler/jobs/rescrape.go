package jobs

import (
	"context"

	"github.com/stockpulse/backend/internal/scraper"
	"github.com/stockpulse/backend/pkg/logger"
)

// RescrapeJob refreshes recent scores every 15 minutes
type RescrapeJob struct {
	rescraper *scraper.Rescraper
	logger    *logger.Logger
}

// NewRescrapeJob creates a new rescrape job
func NewRescrapeJob(r *scraper.Rescraper, log *logger.Logger) *RescrapeJob {
	return &RescrapeJob{rescraper: r, logger: log}
}

// Name returns the job name
func (j *RescrapeJob) Name() string {
	return "rescrape"
}

// Schedule runs every 15 minutes
func (j *RescrapeJob) Schedule() string {
	return "0 */15 * * * *"
}

// Run executes the rescrape
func (j *RescrapeJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled rescrape")
	return j.rescraper.Run(ctx)
}
