package trends

import (
	"context"
	"time"

	"github.com/stockpulse/backend/internal/contracts"
	"github.com/stockpulse/backend/pkg/logger"
	"github.com/stockpulse/backend/pkg/redis"
)

// Service runs the aggregation pipeline: fetch submissions for a
// window, group them by validated ticker, build the complete day and
// subreddit grid, annotate changes, and enrich with reference names
// and optional live quotes.
//
// Every request builds its trends from scratch; the only shared state
// is the read-only catalog, so concurrent requests do not interfere.
type Service struct {
	store      contracts.SubmissionStore
	grouper    *Grouper
	catalog    contracts.TickerCatalog
	quotes     contracts.QuoteProvider
	cache      *redis.Cache
	subreddits []string
	logger     *logger.Logger
}

// NewService creates the aggregation service. quotes and cache may be
// nil; both are optional enrichments.
func NewService(
	store contracts.SubmissionStore,
	grouper *Grouper,
	cat contracts.TickerCatalog,
	quotes contracts.QuoteProvider,
	cache *redis.Cache,
	subreddits []string,
	log *logger.Logger,
) *Service {
	return &Service{
		store:      store,
		grouper:    grouper,
		catalog:    cat,
		quotes:     quotes,
		cache:      cache,
		subreddits: subreddits,
		logger:     log.WithField("module", "trends"),
	}
}

// Subreddits returns the tracked subreddit list
func (s *Service) Subreddits() []string {
	return s.subreddits
}

// GetTrends aggregates mention trends for the inclusive UTC day range
// [from, to]. Quote enrichment failures degrade to absent stock data
// and never fail the response.
func (s *Service) GetTrends(ctx context.Context, from, to time.Time, withQuotes bool) (*contracts.TrendsResponse, error) {
	fromDay := startOfDayUTC(from)
	toDay := startOfDayUTC(to)

	cacheKey := redis.TrendsKey(fromDay.Format(dayFormat), toDay.Format(dayFormat))
	if s.cache != nil && !withQuotes {
		var cached contracts.TrendsResponse
		if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	submissions, err := s.store.GetRange(ctx, fromDay.Unix(), toDay.AddDate(0, 0, 1).Unix(), s.subreddits)
	if err != nil {
		return nil, err
	}

	groups := s.grouper.GroupByTicker(submissions)
	tickerTrends := BuildGrid(groups, fromDay, toDay, s.subreddits)

	for i := range tickerTrends {
		info := s.catalog.Lookup(tickerTrends[i].Ticker)
		tickerTrends[i].TickerName = info.CompanyName
	}

	if withQuotes {
		s.enrichQuotes(ctx, tickerTrends)
	}

	resp := &contracts.TrendsResponse{
		Data:        tickerTrends,
		DaysDesc:    DayKeysDesc(fromDay, toDay),
		Subreddits:  s.subreddits,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if last, err := s.store.LastSubmissionTime(ctx); err == nil && last > 0 {
		resp.LastSubmissionTime = time.Unix(last, 0).UTC().Format(time.RFC3339)
	}
	if updated, err := s.store.SubmissionsUpdated(ctx); err == nil && updated > 0 {
		resp.SubmissionsUpdated = time.Unix(updated, 0).UTC().Format(time.RFC3339)
	}

	if s.cache != nil && !withQuotes {
		if err := s.cache.Set(ctx, cacheKey, resp, redis.TTLMedium); err != nil {
			s.logger.WithError(err).Warn("Failed to cache trends response")
		}
	}

	return resp, nil
}

// GetSubmissions returns one page of a ticker's submissions as API views
func (s *Service) GetSubmissions(ctx context.Context, q contracts.SubmissionQuery) ([]contracts.SubmissionView, error) {
	submissions, err := s.store.GetByTicker(ctx, q)
	if err != nil {
		return nil, err
	}

	views := make([]contracts.SubmissionView, 0, len(submissions))
	for _, sub := range submissions {
		views = append(views, sub.View())
	}
	return views, nil
}

// enrichQuotes merges live quotes onto trends by symbol. Failures are
// logged and the trends ship without stock data.
func (s *Service) enrichQuotes(ctx context.Context, tickerTrends []contracts.TickerTrend) {
	if s.quotes == nil || len(tickerTrends) == 0 {
		return
	}

	tickers := make([]string, 0, len(tickerTrends))
	for _, trend := range tickerTrends {
		tickers = append(tickers, trend.Ticker)
	}

	quotes, err := s.quotes.GetQuotes(ctx, tickers)
	if err != nil {
		s.logger.WithError(err).Warn("Quote enrichment failed")
		return
	}

	for i := range tickerTrends {
		tickerTrends[i].StockData = quotes[tickerTrends[i].Ticker]
	}
}

func startOfDayUTC(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
