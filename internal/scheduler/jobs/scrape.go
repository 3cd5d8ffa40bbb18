package jobs

import (
	"context"
	"fmt"

	"github.com/stockpulse/backend/internal/scraper"
	"github.com/stockpulse/backend/pkg/logger"
)

// ScrapeJob ingests new submissions every hour, shortly after the
// hour so the previous window is complete in the archive.
type ScrapeJob struct {
	scraper *scraper.Scraper
	logger  *logger.Logger
}

// NewScrapeJob creates a new scrape job
func NewScrapeJob(s *scraper.Scraper, log *logger.Logger) *ScrapeJob {
	return &ScrapeJob{scraper: s, logger: log}
}

// Name returns the job name
func (j *ScrapeJob) Name() string {
	return "scrape"
}

// Schedule runs five minutes past every hour
func (j *ScrapeJob) Schedule() string {
	return "0 5 * * * *"
}

// Run executes the scrape
func (j *ScrapeJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled scrape")

	result, err := j.scraper.Run(ctx)
	if err != nil {
		return fmt.Errorf("scrape run: %w", err)
	}
	if result.Failed > 0 {
		return fmt.Errorf("scrape run finished with %d failed windows", result.Failed)
	}
	return nil
}
