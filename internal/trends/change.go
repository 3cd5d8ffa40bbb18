package trends

import "github.com/stockpulse/backend/internal/contracts"

// Change computes the relative day-over-day change between a current
// and the adjacent older mention count.
//
//	current>0, previous>0, current>previous  ->  current/previous - 1, finite
//	current>0, previous>0, current<=previous -> -previous/current + 1, finite
//	current=0, previous=0                    ->  0, finite
//	current>0, previous=0                    -> +1 sentinel ("new"), infinite
//	current=0, previous>0                    -> -1 sentinel ("gone"), infinite
//
// Division by zero is impossible: both zero cases are handled before
// any ratio is taken.
func Change(current, previous int) (float64, bool) {
	switch {
	case current > 0 && previous > 0:
		if current > previous {
			return float64(current)/float64(previous) - 1, true
		}
		return -float64(previous)/float64(current) + 1, true
	case current == 0 && previous == 0:
		return 0, true
	case current > previous:
		return 1, false
	default:
		return -1, false
	}
}

// annotateChanges fills change and finiteness on every subreddit cell
// and day total of a trend. Days must be ordered descending; the
// previous value for day i is day i+1. The oldest day has no older
// neighbor and is marked (0, finite) by convention: no prior data is a
// non-event, not "new".
//
// Day totals are computed from their own counts, independently of the
// per-subreddit changes.
func annotateChanges(trend *contracts.TickerTrend) {
	for i := range trend.Days {
		day := &trend.Days[i]

		if i == len(trend.Days)-1 {
			for j := range day.Subreddits {
				day.Subreddits[j].Change = 0
				day.Subreddits[j].IsChangeFinite = true
			}
			day.TotalChange = 0
			day.IsChangeFinite = true
			continue
		}

		prev := &trend.Days[i+1]

		// Both cell lists hold every tracked subreddit in the same
		// sorted order, so cells align by index.
		for j := range day.Subreddits {
			current := day.Subreddits[j].Count()
			previous := prev.Subreddits[j].Count()
			day.Subreddits[j].Change, day.Subreddits[j].IsChangeFinite = Change(current, previous)
		}

		day.TotalChange, day.IsChangeFinite = Change(day.TotalCount, prev.TotalCount)
	}
}
