package trends

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpulse/backend/internal/contracts"
	"github.com/stockpulse/backend/internal/extract"
	"github.com/stockpulse/backend/pkg/logger"
)

type stubCatalog struct {
	real map[string]bool
}

func (c *stubCatalog) Lookup(symbol string) contracts.TickerInfo {
	if c.real[symbol] {
		return contracts.TickerInfo{CompanyName: symbol + " Inc."}
	}
	return contracts.TickerInfo{IsFake: true}
}

func (c *stubCatalog) IsReal(symbol string) bool {
	return c.real[symbol]
}

func newTestGrouper(t *testing.T) *Grouper {
	t.Helper()
	cat := &stubCatalog{real: map[string]bool{"GME": true, "AAPL": true, "TSLA": true}}
	ex, err := extract.New(1, 6, cat)
	require.NoError(t, err)
	return NewGrouper(ex, logger.NewNop())
}

func TestGroupByTicker(t *testing.T) {
	g := newTestGrouper(t)

	submissions := []contracts.Submission{
		{ID: "1", Subreddit: "stocks", CreatedUTC: 1000, Title: "GME to the moon"},
		{ID: "2", Subreddit: "stocks", CreatedUTC: 1001, Title: "AAPL earnings", Selftext: "also holding GME"},
		{ID: "3", Subreddit: "stocks", CreatedUTC: 1002, Title: "no symbols here"},
	}

	groups := g.GroupByTicker(submissions)

	require.Len(t, groups, 2)
	assert.Len(t, groups["GME"], 2)
	assert.Len(t, groups["AAPL"], 1)
}

func TestGroupByTicker_TitleAndBodyCountOnce(t *testing.T) {
	g := newTestGrouper(t)

	submissions := []contracts.Submission{
		{ID: "1", Subreddit: "stocks", CreatedUTC: 1000, Title: "GME GME GME", Selftext: "GME again"},
	}

	groups := g.GroupByTicker(submissions)

	require.Len(t, groups["GME"], 1)
}

func TestGroupByTicker_SkipsMalformed(t *testing.T) {
	g := newTestGrouper(t)

	submissions := []contracts.Submission{
		{ID: "", Subreddit: "stocks", CreatedUTC: 1000, Title: "GME"},
		{ID: "2", Subreddit: "", CreatedUTC: 1000, Title: "GME"},
		{ID: "3", Subreddit: "stocks", CreatedUTC: 0, Title: "GME"},
		{ID: "4", Subreddit: "stocks", CreatedUTC: 1000, Title: "GME"},
	}

	groups := g.GroupByTicker(submissions)

	require.Len(t, groups["GME"], 1)
	assert.Equal(t, "4", groups["GME"][0].ID)
}

func TestGroupByTicker_Empty(t *testing.T) {
	g := newTestGrouper(t)
	assert.Empty(t, g.GroupByTicker(nil))
}

func TestTickers_Union(t *testing.T) {
	g := newTestGrouper(t)

	sub := contracts.Submission{Title: "TSLA vs AAPL", Selftext: "AAPL all the way"}
	tickers := g.Tickers(sub)

	require.Len(t, tickers, 2)
	assert.Contains(t, tickers, "TSLA")
	assert.Contains(t, tickers, "AAPL")
}
