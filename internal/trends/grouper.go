package trends

import (
	"github.com/stockpulse/backend/internal/contracts"
	"github.com/stockpulse/backend/internal/extract"
	"github.com/stockpulse/backend/pkg/logger"
)

// Grouper builds the inverted ticker index: for every submission it
// extracts validated tickers from title and body and files the
// submission under each.
type Grouper struct {
	extractor *extract.Extractor
	logger    *logger.Logger
}

// NewGrouper creates a new Grouper
func NewGrouper(extractor *extract.Extractor, log *logger.Logger) *Grouper {
	return &Grouper{
		extractor: extractor,
		logger:    log,
	}
}

// GroupByTicker maps each validated ticker to the submissions that
// mention it. A ticker mentioned in both title and body of the same
// submission counts once; submissions with no validated ticker appear
// in no group. Malformed submissions are skipped with a warning, never
// failing the batch.
func (g *Grouper) GroupByTicker(submissions []contracts.Submission) map[string][]contracts.Submission {
	groups := make(map[string][]contracts.Submission)

	for _, sub := range submissions {
		if sub.ID == "" || sub.Subreddit == "" || sub.CreatedUTC <= 0 {
			g.logger.WithFields(map[string]interface{}{
				"id":        sub.ID,
				"subreddit": sub.Subreddit,
			}).Warn("Skipping malformed submission")
			continue
		}

		for ticker := range g.Tickers(sub) {
			groups[ticker] = append(groups[ticker], sub)
		}
	}

	return groups
}

// Tickers returns the union of validated tickers in a submission's
// title and body
func (g *Grouper) Tickers(sub contracts.Submission) map[string]struct{} {
	tickers := g.extractor.ExtractReal(sub.Title)
	for ticker := range g.extractor.ExtractReal(sub.Selftext) {
		tickers[ticker] = struct{}{}
	}
	return tickers
}
