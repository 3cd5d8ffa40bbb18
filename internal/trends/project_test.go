package trends

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpulse/backend/internal/contracts"
)

func projectFixture() []contracts.TickerTrend {
	groups := map[string][]contracts.Submission{
		"GME": {
			sub("a", "stocks", at("2021-03-01")),
			sub("b", "wallstreetbets", at("2021-03-01")),
			sub("c", "stocks", at("2021-03-02")),
		},
	}
	return BuildGrid(groups, day("2021-03-01"), day("2021-03-02"), []string{"stocks", "wallstreetbets"})
}

func TestProjectSubreddits_RestrictsColumns(t *testing.T) {
	trends := projectFixture()

	projected := ProjectSubreddits(trends, map[string]struct{}{"stocks": {}})

	require.Len(t, projected, 1)
	for _, d := range projected[0].Days {
		require.Len(t, d.Subreddits, 1)
		assert.Equal(t, "stocks", d.Subreddits[0].Subreddit)
	}
}

func TestProjectSubreddits_RecomputesChanges(t *testing.T) {
	trends := projectFixture()

	// Full grid: day 2 total 1 vs day 1 total 2. Restricted to stocks
	// only, both days have one mention and the change becomes zero.
	full := trends[0].Days[0]
	require.Equal(t, float64(-1), full.TotalChange)

	projected := ProjectSubreddits(trends, map[string]struct{}{"stocks": {}})

	latest := projected[0].Days[0]
	assert.Equal(t, 1, latest.TotalCount)
	assert.Equal(t, float64(0), latest.TotalChange)
	assert.True(t, latest.IsChangeFinite)
}

func TestProjectSubreddits_DoesNotMutateInput(t *testing.T) {
	trends := projectFixture()
	before := trends[0].Days[0].Subreddits[0].SubmissionIDs

	projected := ProjectSubreddits(trends, map[string]struct{}{"wallstreetbets": {}})
	projected[0].Days[0].Subreddits = nil

	assert.Equal(t, before, trends[0].Days[0].Subreddits[0].SubmissionIDs)
	require.Len(t, trends[0].Days[0].Subreddits, 2)
}

func TestProjectSubreddits_UnknownSelectionIgnored(t *testing.T) {
	trends := projectFixture()

	projected := ProjectSubreddits(trends, map[string]struct{}{"cryptocurrency": {}})

	require.Len(t, projected, 1)
	for _, d := range projected[0].Days {
		assert.Empty(t, d.Subreddits)
		assert.Equal(t, 0, d.TotalCount)
	}
}
