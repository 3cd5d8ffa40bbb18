package trends

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpulse/backend/internal/contracts"
	"github.com/stockpulse/backend/internal/extract"
	"github.com/stockpulse/backend/pkg/logger"
)

type serviceStore struct {
	submissions []contracts.Submission
	last        int64
	updated     int64
	rangeFrom   int64
	rangeTo     int64
}

func (s *serviceStore) GetRange(_ context.Context, from, to int64, _ []string) ([]contracts.Submission, error) {
	s.rangeFrom, s.rangeTo = from, to
	var out []contracts.Submission
	for _, sub := range s.submissions {
		if sub.CreatedUTC >= from && sub.CreatedUTC < to {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *serviceStore) GetByTicker(context.Context, contracts.SubmissionQuery) ([]contracts.Submission, error) {
	return nil, nil
}

func (s *serviceStore) LastSubmissionTime(context.Context) (int64, error) { return s.last, nil }
func (s *serviceStore) SubmissionsUpdated(context.Context) (int64, error) { return s.updated, nil }

type serviceQuotes struct {
	quotes map[string]*contracts.Quote
	err    error
}

func (q *serviceQuotes) GetQuotes(_ context.Context, tickers []string) (map[string]*contracts.Quote, error) {
	if q.err != nil {
		return nil, q.err
	}
	return q.quotes, nil
}

func newService(t *testing.T, store *serviceStore, quotes contracts.QuoteProvider) *Service {
	t.Helper()
	cat := &stubCatalog{real: map[string]bool{"GME": true, "AAPL": true, "TSLA": true}}
	ex, err := extract.New(1, 6, cat)
	require.NoError(t, err)
	grouper := NewGrouper(ex, logger.NewNop())
	return NewService(store, grouper, cat, quotes, nil, []string{"stocks", "wallstreetbets"}, logger.NewNop())
}

func TestGetTrends(t *testing.T) {
	store := &serviceStore{
		submissions: []contracts.Submission{
			{ID: "a", Subreddit: "stocks", Title: "GME again", CreatedUTC: at("2021-03-01")},
		},
		last:    at("2021-03-01"),
		updated: at("2021-03-02"),
	}
	svc := newService(t, store, nil)

	resp, err := svc.GetTrends(context.Background(), day("2021-03-01"), day("2021-03-02"), false)
	require.NoError(t, err)

	require.Len(t, resp.Data, 1)
	assert.Equal(t, "GME", resp.Data[0].Ticker)
	assert.Equal(t, "GME Inc.", resp.Data[0].TickerName)
	assert.Nil(t, resp.Data[0].StockData)
	assert.Equal(t, []string{"2021-03-02", "2021-03-01"}, resp.DaysDesc)
	assert.Equal(t, []string{"stocks", "wallstreetbets"}, resp.Subreddits)
	assert.NotEmpty(t, resp.LastSubmissionTime)
	assert.NotEmpty(t, resp.SubmissionsUpdated)
	assert.NotEmpty(t, resp.GeneratedAt)
}

func TestGetTrends_QueriesWholeDays(t *testing.T) {
	store := &serviceStore{}
	svc := newService(t, store, nil)

	// Mid-day timestamps still cover the full days.
	from := day("2021-03-01").Add(15 * time.Hour)
	to := day("2021-03-02").Add(3 * time.Hour)

	_, err := svc.GetTrends(context.Background(), from, to, false)
	require.NoError(t, err)

	assert.Equal(t, day("2021-03-01").Unix(), store.rangeFrom)
	assert.Equal(t, day("2021-03-03").Unix(), store.rangeTo, "upper bound is exclusive start of the next day")
}

func TestGetTrends_WithQuotes(t *testing.T) {
	store := &serviceStore{
		submissions: []contracts.Submission{
			{ID: "a", Subreddit: "stocks", Title: "GME", CreatedUTC: at("2021-03-01")},
		},
	}
	quotes := &serviceQuotes{quotes: map[string]*contracts.Quote{
		"GME": {CompanyName: "GameStop", LatestPrice: 180},
	}}
	svc := newService(t, store, quotes)

	resp, err := svc.GetTrends(context.Background(), day("2021-03-01"), day("2021-03-01"), true)
	require.NoError(t, err)

	require.Len(t, resp.Data, 1)
	require.NotNil(t, resp.Data[0].StockData)
	assert.Equal(t, float64(180), resp.Data[0].StockData.LatestPrice)
}

func TestGetTrends_QuoteFailureDegrades(t *testing.T) {
	store := &serviceStore{
		submissions: []contracts.Submission{
			{ID: "a", Subreddit: "stocks", Title: "GME", CreatedUTC: at("2021-03-01")},
		},
	}
	svc := newService(t, store, &serviceQuotes{err: errors.New("iex down")})

	resp, err := svc.GetTrends(context.Background(), day("2021-03-01"), day("2021-03-01"), true)
	require.NoError(t, err, "quote failures never fail the response")
	require.Len(t, resp.Data, 1)
	assert.Nil(t, resp.Data[0].StockData)
}

func TestGetSubmissions_ReturnsViews(t *testing.T) {
	store := &serviceStore{}
	svc := newService(t, store, nil)

	views, err := svc.GetSubmissions(context.Background(), contracts.SubmissionQuery{Ticker: "GME"})
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.NotNil(t, views, "empty page encodes as [] not null")
}
