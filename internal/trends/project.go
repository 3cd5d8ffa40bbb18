package trends

import (
	"github.com/stockpulse/backend/internal/contracts"
)

// ProjectSubreddits returns a copy of the trends restricted to the
// selected subreddits. The input is never mutated. Day totals and all
// change values are recomputed on the projected grid, because removing
// a column changes the counts the day-over-day comparison runs on.
//
// Selection is an intersection: selected names not present in the grid
// are ignored, and the surviving columns keep their sorted order.
func ProjectSubreddits(tickerTrends []contracts.TickerTrend, selected map[string]struct{}) []contracts.TickerTrend {
	result := make([]contracts.TickerTrend, 0, len(tickerTrends))

	for _, trend := range tickerTrends {
		projected := contracts.TickerTrend{
			Ticker:     trend.Ticker,
			TickerName: trend.TickerName,
			StockData:  trend.StockData,
			Days:       make([]contracts.DayMentions, 0, len(trend.Days)),
		}

		for _, day := range trend.Days {
			cells := make([]contracts.SubredditMentions, 0, len(day.Subreddits))
			total := 0

			for _, cell := range day.Subreddits {
				if _, ok := selected[cell.Subreddit]; !ok {
					continue
				}
				ids := make([]string, len(cell.SubmissionIDs))
				copy(ids, cell.SubmissionIDs)
				cells = append(cells, contracts.SubredditMentions{
					Subreddit:     cell.Subreddit,
					SubmissionIDs: ids,
				})
				total += len(ids)
			}

			projected.Days = append(projected.Days, contracts.DayMentions{
				Date:       day.Date,
				Subreddits: cells,
				TotalCount: total,
			})
		}

		annotateChanges(&projected)
		result = append(result, projected)
	}

	return result
}
