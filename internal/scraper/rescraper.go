package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/stockpulse/backend/internal/contracts"
	"github.com/stockpulse/backend/pkg/logger"
)

// rescrapeLookback is how far back scores are refreshed. Reddit votes
// mostly settle within a few hours of posting.
const rescrapeLookback = 3 * time.Hour

// LiveSource fetches current submission state from Reddit by id
type LiveSource interface {
	GetSubmissionsByID(ctx context.Context, ids []string) ([]contracts.Submission, error)
}

// SubmissionRefresher is the slice of the submission store the
// rescraper needs.
type SubmissionRefresher interface {
	GetIDsSince(ctx context.Context, since int64) ([]string, error)
	UpdateScores(ctx context.Context, submissions []contracts.Submission) error
	StampSubmissionsUpdated(ctx context.Context, unix int64) error
}

// Rescraper refreshes scores and bodies for recent submissions
type Rescraper struct {
	source   LiveSource
	subStore SubmissionRefresher
	logger   *logger.Logger
}

// NewRescraper creates a new Rescraper
func NewRescraper(source LiveSource, subStore SubmissionRefresher, log *logger.Logger) *Rescraper {
	return &Rescraper{
		source:   source,
		subStore: subStore,
		logger:   log.WithField("module", "rescraper"),
	}
}

// Run refreshes every submission created within the lookback window
// and stamps the refresh time on success.
func (r *Rescraper) Run(ctx context.Context) error {
	since := time.Now().Add(-rescrapeLookback).Unix()

	ids, err := r.subStore.GetIDsSince(ctx, since)
	if err != nil {
		return fmt.Errorf("load recent submission ids: %w", err)
	}
	if len(ids) == 0 {
		r.logger.Debug("No recent submissions to rescrape")
		return nil
	}

	fresh, err := r.source.GetSubmissionsByID(ctx, ids)
	if err != nil {
		return fmt.Errorf("fetch current submission state: %w", err)
	}

	if err := r.subStore.UpdateScores(ctx, fresh); err != nil {
		return fmt.Errorf("update scores: %w", err)
	}

	if err := r.subStore.StampSubmissionsUpdated(ctx, time.Now().Unix()); err != nil {
		return fmt.Errorf("stamp refresh time: %w", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"requested": len(ids),
		"refreshed": len(fresh),
	}).Info("Rescrape complete")

	return nil
}
