package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/stockpulse/backend/internal/contracts"
	"github.com/stockpulse/backend/internal/trends"
	"github.com/stockpulse/backend/pkg/logger"
)

const windowSeconds = 3600

// SubmissionSource fetches archived submissions for one subreddit in
// [after, before).
type SubmissionSource interface {
	GetSubmissions(ctx context.Context, subreddit string, after, before int64) ([]contracts.Submission, error)
}

// SubmissionWriter is the slice of the submission store the scraper
// needs.
type SubmissionWriter interface {
	LastSubmissionTime(ctx context.Context) (int64, error)
	SaveBatch(ctx context.Context, submissions []contracts.Submission) error
}

// TickerWriter persists reference tickers and mention links
type TickerWriter interface {
	SaveBatch(ctx context.Context, tickers []contracts.Ticker) error
	LinkSubmissions(ctx context.Context, links map[string][]string) error
}

// Scraper ingests archived submissions window by window, extracts
// tickers and persists everything.
type Scraper struct {
	source     SubmissionSource
	catalog    contracts.TickerCatalog
	grouper    *trends.Grouper
	subStore   SubmissionWriter
	tickers    TickerWriter
	subreddits []string
	startDate  time.Time
	logger     *logger.Logger
}

// New creates a new Scraper
func New(
	source SubmissionSource,
	cat contracts.TickerCatalog,
	grouper *trends.Grouper,
	subStore SubmissionWriter,
	tickers TickerWriter,
	subreddits []string,
	startDate time.Time,
	log *logger.Logger,
) *Scraper {
	return &Scraper{
		source:     source,
		catalog:    cat,
		grouper:    grouper,
		subStore:   subStore,
		tickers:    tickers,
		subreddits: subreddits,
		startDate:  startDate,
		logger:     log.WithField("module", "scraper"),
	}
}

// Result summarizes one scrape run
type Result struct {
	Windows     int
	Submissions int
	Failed      int
}

// Run scrapes hour-sized windows from the point after the newest
// stored submission (or the configured start date on an empty store)
// up to now. A failed window is logged and skipped; one bad hour never
// blocks the rest of the backlog.
func (s *Scraper) Run(ctx context.Context) (Result, error) {
	var result Result

	last, err := s.subStore.LastSubmissionTime(ctx)
	if err != nil {
		return result, fmt.Errorf("determine scrape start: %w", err)
	}

	from := s.startDate.Unix()
	if last > 0 {
		from = last + 1
	}
	now := time.Now().Unix()

	for from < now {
		to := from + windowSeconds
		if to > now {
			to = now
		}

		if err := s.scrapeWindow(ctx, from, to); err != nil {
			result.Failed++
			s.logger.WithError(err).WithFields(map[string]interface{}{
				"from": from,
				"to":   to,
			}).Error("Window scrape failed")
		} else {
			result.Windows++
		}

		from = to
	}

	s.logger.WithFields(map[string]interface{}{
		"windows": result.Windows,
		"failed":  result.Failed,
	}).Info("Scrape run complete")

	return result, nil
}

func (s *Scraper) scrapeWindow(ctx context.Context, from, to int64) error {
	var all []contracts.Submission

	for _, subreddit := range s.subreddits {
		subs, err := s.source.GetSubmissions(ctx, subreddit, from, to)
		if err != nil {
			return fmt.Errorf("fetch r/%s: %w", subreddit, err)
		}
		all = append(all, subs...)
	}

	if len(all) == 0 {
		return nil
	}

	if err := s.persist(ctx, all); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"from":        from,
		"to":          to,
		"submissions": len(all),
	}).Debug("Scraped window")

	return nil
}

// persist stores submissions together with the tickers they mention
func (s *Scraper) persist(ctx context.Context, submissions []contracts.Submission) error {
	if err := s.subStore.SaveBatch(ctx, submissions); err != nil {
		return fmt.Errorf("save submissions: %w", err)
	}

	links := make(map[string][]string)
	mentioned := make(map[string]struct{})

	for _, sub := range submissions {
		for ticker := range s.grouper.Tickers(sub) {
			links[sub.ID] = append(links[sub.ID], ticker)
			mentioned[ticker] = struct{}{}
		}
	}

	if len(mentioned) == 0 {
		return nil
	}

	rows := make([]contracts.Ticker, 0, len(mentioned))
	for symbol := range mentioned {
		info := s.catalog.Lookup(symbol)
		rows = append(rows, contracts.Ticker{
			Symbol:      symbol,
			IsFake:      info.IsFake,
			CompanyName: info.CompanyName,
			Exchange:    info.Exchange,
			Currency:    info.Currency,
		})
	}

	if err := s.tickers.SaveBatch(ctx, rows); err != nil {
		return fmt.Errorf("save tickers: %w", err)
	}
	if err := s.tickers.LinkSubmissions(ctx, links); err != nil {
		return fmt.Errorf("link submissions: %w", err)
	}
	return nil
}
