package trends

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpulse/backend/internal/contracts"
)

func day(isoDate string) time.Time {
	d, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		panic(err)
	}
	return d
}

// at returns a unix timestamp at noon UTC on the given day
func at(isoDate string) int64 {
	return day(isoDate).Add(12 * time.Hour).Unix()
}

func sub(id, subreddit string, createdUTC int64) contracts.Submission {
	return contracts.Submission{
		ID:         id,
		Subreddit:  subreddit,
		Title:      "title",
		CreatedUTC: createdUTC,
	}
}

func TestBuildGrid_CompletenessInvariant(t *testing.T) {
	groups := map[string][]contracts.Submission{
		"GME": {sub("a", "stocks", at("2021-03-03"))},
	}
	tracked := []string{"stocks", "wallstreetbets", "investing"}

	result := BuildGrid(groups, day("2021-03-01"), day("2021-03-07"), tracked)

	require.Len(t, result, 1)
	require.Len(t, result[0].Days, 7, "every day in range present despite sparse input")

	for _, d := range result[0].Days {
		require.Len(t, d.Subreddits, 3)
		assert.Equal(t, "investing", d.Subreddits[0].Subreddit)
		assert.Equal(t, "stocks", d.Subreddits[1].Subreddit)
		assert.Equal(t, "wallstreetbets", d.Subreddits[2].Subreddit)
	}
}

func TestBuildGrid_DaysDescending(t *testing.T) {
	groups := map[string][]contracts.Submission{
		"GME": {sub("a", "stocks", at("2021-03-02"))},
	}

	result := BuildGrid(groups, day("2021-03-01"), day("2021-03-03"), []string{"stocks"})

	require.Len(t, result, 1)
	dates := []string{result[0].Days[0].Date, result[0].Days[1].Date, result[0].Days[2].Date}
	assert.Equal(t, []string{"2021-03-03", "2021-03-02", "2021-03-01"}, dates)
}

func TestBuildGrid_TickersSortedAscending(t *testing.T) {
	groups := map[string][]contracts.Submission{
		"TSLA": {sub("a", "stocks", at("2021-03-01"))},
		"AAPL": {sub("b", "stocks", at("2021-03-01"))},
		"GME":  {sub("c", "stocks", at("2021-03-01"))},
	}

	result := BuildGrid(groups, day("2021-03-01"), day("2021-03-01"), []string{"stocks"})

	require.Len(t, result, 3)
	assert.Equal(t, "AAPL", result[0].Ticker)
	assert.Equal(t, "GME", result[1].Ticker)
	assert.Equal(t, "TSLA", result[2].Ticker)
}

func TestBuildGrid_UntrackedSubredditExcluded(t *testing.T) {
	groups := map[string][]contracts.Submission{
		"GME": {
			sub("a", "stocks", at("2021-03-01")),
			sub("b", "pennystocks", at("2021-03-01")),
		},
	}

	result := BuildGrid(groups, day("2021-03-01"), day("2021-03-01"), []string{"stocks"})

	require.Len(t, result, 1)
	require.Len(t, result[0].Days, 1)
	require.Len(t, result[0].Days[0].Subreddits, 1)
	assert.Equal(t, "stocks", result[0].Days[0].Subreddits[0].Subreddit)
	assert.Equal(t, 1, result[0].Days[0].TotalCount, "untracked mention not counted")
}

func TestBuildGrid_EmptyTrackedList(t *testing.T) {
	groups := map[string][]contracts.Submission{
		"GME": {sub("a", "stocks", at("2021-03-01"))},
	}

	result := BuildGrid(groups, day("2021-03-01"), day("2021-03-02"), nil)

	require.Len(t, result, 1)
	for _, d := range result[0].Days {
		assert.Empty(t, d.Subreddits)
		assert.Equal(t, 0, d.TotalCount)
	}
}

func TestBuildGrid_InvertedRange(t *testing.T) {
	groups := map[string][]contracts.Submission{
		"GME": {sub("a", "stocks", at("2021-03-01"))},
	}

	result := BuildGrid(groups, day("2021-03-05"), day("2021-03-01"), []string{"stocks"})

	require.Len(t, result, 1)
	assert.Empty(t, result[0].Days)
}

func TestBuildGrid_Idempotent(t *testing.T) {
	groups := map[string][]contracts.Submission{
		"GME": {
			sub("a", "stocks", at("2021-03-01")),
			sub("b", "wallstreetbets", at("2021-03-02")),
		},
		"AAPL": {sub("c", "stocks", at("2021-03-02"))},
	}
	tracked := []string{"stocks", "wallstreetbets"}

	first := BuildGrid(groups, day("2021-03-01"), day("2021-03-03"), tracked)
	second := BuildGrid(groups, day("2021-03-01"), day("2021-03-03"), tracked)

	assert.Equal(t, first, second)
}

func TestBuildGrid_SubredditNamesLowercased(t *testing.T) {
	groups := map[string][]contracts.Submission{
		"GME": {sub("a", "WallStreetBets", at("2021-03-01"))},
	}

	result := BuildGrid(groups, day("2021-03-01"), day("2021-03-01"), []string{"wallstreetbets"})

	require.Len(t, result, 1)
	cell := result[0].Days[0].Subreddits[0]
	assert.Equal(t, "wallstreetbets", cell.Subreddit)
	assert.Equal(t, []string{"a"}, cell.SubmissionIDs)
}

func TestBuildGrid_CellIDsNewestFirst(t *testing.T) {
	groups := map[string][]contracts.Submission{
		"GME": {
			sub("older", "stocks", at("2021-03-01")),
			sub("newer", "stocks", at("2021-03-01")+3600),
		},
	}

	result := BuildGrid(groups, day("2021-03-01"), day("2021-03-01"), []string{"stocks"})

	require.Len(t, result, 1)
	assert.Equal(t, []string{"newer", "older"}, result[0].Days[0].Subreddits[0].SubmissionIDs)
}

func TestBuildGrid_OldestDayChangeConvention(t *testing.T) {
	groups := map[string][]contracts.Submission{
		"GME": {sub("a", "stocks", at("2021-03-01"))},
	}

	result := BuildGrid(groups, day("2021-03-01"), day("2021-03-02"), []string{"stocks"})

	require.Len(t, result, 1)
	oldest := result[0].Days[len(result[0].Days)-1]
	assert.Equal(t, float64(0), oldest.TotalChange)
	assert.True(t, oldest.IsChangeFinite)
	assert.Equal(t, float64(0), oldest.Subreddits[0].Change)
	assert.True(t, oldest.Subreddits[0].IsChangeFinite)
}

// The three-post scenario: posts A and B mention GME on day 1 in
// stocks and wallstreetbets, post C mentions GME on day 2 in stocks.
func TestBuildGrid_EndToEndScenario(t *testing.T) {
	groups := map[string][]contracts.Submission{
		"GME": {
			sub("a", "stocks", at("2021-03-01")),
			sub("b", "wallstreetbets", at("2021-03-01")),
			sub("c", "stocks", at("2021-03-02")),
		},
	}
	tracked := []string{"stocks", "wallstreetbets"}

	result := BuildGrid(groups, day("2021-03-01"), day("2021-03-02"), tracked)

	require.Len(t, result, 1)
	require.Len(t, result[0].Days, 2)

	latest := result[0].Days[0]
	require.Equal(t, "2021-03-02", latest.Date)

	stocks := latest.Subreddits[0]
	require.Equal(t, "stocks", stocks.Subreddit)
	assert.Equal(t, 1, stocks.Count())
	assert.Equal(t, float64(0), stocks.Change, "1 vs 1 mention")
	assert.True(t, stocks.IsChangeFinite)

	wsb := latest.Subreddits[1]
	require.Equal(t, "wallstreetbets", wsb.Subreddit)
	assert.Equal(t, 0, wsb.Count())
	assert.Equal(t, float64(-1), wsb.Change, "dropped to zero")
	assert.False(t, wsb.IsChangeFinite)

	assert.Equal(t, 1, latest.TotalCount)
	assert.Equal(t, float64(-1), latest.TotalChange, "-2/1 + 1")
	assert.True(t, latest.IsChangeFinite, "total change is a real ratio, not a sentinel")
}

func TestDayKeysDesc(t *testing.T) {
	days := DayKeysDesc(day("2021-03-01"), day("2021-03-03"))
	assert.Equal(t, []string{"2021-03-03", "2021-03-02", "2021-03-01"}, days)
}
