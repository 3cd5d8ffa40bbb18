package trends

import (
	"sort"
	"strings"
	"time"

	"github.com/stockpulse/backend/internal/contracts"
)

const dayFormat = "2006-01-02"

// BuildGrid turns the inverted ticker index into a complete
// [ticker x day x subreddit] grid for the inclusive date range
// [from, to], bucketing by UTC calendar day.
//
// Completeness does not depend on the input: the day list is generated
// fresh from the range, every day cell carries every tracked subreddit
// exactly once in ascending name order, and untracked subreddits never
// appear. Days are built ascending and reversed once, so consumers
// always see most recent first. Tickers come back sorted ascending by
// symbol. Changes are annotated on the finished grid.
//
// An inverted range (from after to) yields empty day lists; an empty
// tracked list yields days with zero subreddit cells. Neither is an
// error.
func BuildGrid(groups map[string][]contracts.Submission, from, to time.Time, subreddits []string) []contracts.TickerTrend {
	days := dayKeysAsc(from, to)
	tracked := normalizeSubreddits(subreddits)

	tickers := make([]string, 0, len(groups))
	for ticker := range groups {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	result := make([]contracts.TickerTrend, 0, len(tickers))
	for _, ticker := range tickers {
		trend := contracts.TickerTrend{
			Ticker: ticker,
			Days:   buildDays(groups[ticker], days, tracked),
		}
		reverseDays(trend.Days)
		annotateChanges(&trend)
		result = append(result, trend)
	}

	return result
}

// DayKeysDesc returns the ISO day labels for a range, most recent
// first, matching the day ordering of the grid itself.
func DayKeysDesc(from, to time.Time) []string {
	days := dayKeysAsc(from, to)
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
	return days
}

// dayKeysAsc generates every UTC calendar day in [from, to] ascending.
// An inverted range yields an empty list.
func dayKeysAsc(from, to time.Time) []string {
	first := from.UTC().Truncate(24 * time.Hour)
	last := to.UTC().Truncate(24 * time.Hour)

	var days []string
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dayFormat))
	}
	return days
}

// normalizeSubreddits lowercases and sorts a copy of the tracked list
func normalizeSubreddits(subreddits []string) []string {
	normalized := make([]string, 0, len(subreddits))
	for _, name := range subreddits {
		normalized = append(normalized, strings.ToLower(name))
	}
	sort.Strings(normalized)
	return normalized
}

// buildDays buckets one ticker's submissions by UTC day and subreddit,
// then fills the complete ascending day list with a full subreddit
// cell set per day.
func buildDays(submissions []contracts.Submission, days []string, tracked []string) []contracts.DayMentions {
	buckets := bucketByDayAndSubreddit(submissions)

	result := make([]contracts.DayMentions, 0, len(days))
	for _, day := range days {
		cells := make([]contracts.SubredditMentions, 0, len(tracked))
		total := 0

		for _, subreddit := range tracked {
			ids := buckets[day][subreddit]
			if ids == nil {
				ids = []string{}
			}
			cells = append(cells, contracts.SubredditMentions{
				Subreddit:     subreddit,
				SubmissionIDs: ids,
			})
			total += len(ids)
		}

		result = append(result, contracts.DayMentions{
			Date:       day,
			Subreddits: cells,
			TotalCount: total,
		})
	}
	return result
}

// bucketByDayAndSubreddit groups submission ids by ISO day and
// lowercased subreddit. Ids within a bucket are ordered newest first.
func bucketByDayAndSubreddit(submissions []contracts.Submission) map[string]map[string][]string {
	ordered := make([]contracts.Submission, len(submissions))
	copy(ordered, submissions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedUTC > ordered[j].CreatedUTC
	})

	buckets := make(map[string]map[string][]string)
	for _, sub := range ordered {
		day := sub.CreatedAt().Format(dayFormat)
		subreddit := strings.ToLower(sub.Subreddit)

		if buckets[day] == nil {
			buckets[day] = make(map[string][]string)
		}
		buckets[day][subreddit] = append(buckets[day][subreddit], sub.ID)
	}
	return buckets
}

func reverseDays(days []contracts.DayMentions) {
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
}
