package contracts

// SubredditMentions is one subreddit's mention cell for one ticker on
// one day. Change compares against the same subreddit on the next
// older day; IsChangeFinite is false when the change is the ±1
// appeared/disappeared sentinel.
type SubredditMentions struct {
	Subreddit      string   `json:"subreddit"`
	SubmissionIDs  []string `json:"submissionIds"`
	Change         float64  `json:"change"`
	IsChangeFinite bool     `json:"isChangeFinite"`
}

// Count returns the mention count for this cell
func (s SubredditMentions) Count() int {
	return len(s.SubmissionIDs)
}

// DayMentions is one calendar day (UTC, ISO date) of mention cells for
// one ticker. Subreddits always holds every tracked subreddit exactly
// once, sorted ascending by name.
type DayMentions struct {
	Date           string              `json:"date"`
	Subreddits     []SubredditMentions `json:"subreddits"`
	TotalCount     int                 `json:"totalCount"`
	TotalChange    float64             `json:"totalChange"`
	IsChangeFinite bool                `json:"isChangeFinite"`
}

// TickerTrend is the full mention series for one ticker. Days covers
// the whole requested range with no gaps, most recent day first.
type TickerTrend struct {
	Ticker     string        `json:"ticker"`
	TickerName string        `json:"tickerName,omitempty"`
	StockData  *Quote        `json:"stockData,omitempty"`
	Days       []DayMentions `json:"days"`
}

// TrendsResponse is the aggregation API payload
type TrendsResponse struct {
	Data               []TickerTrend `json:"data"`
	DaysDesc           []string      `json:"daysDesc"`
	Subreddits         []string      `json:"subreddits"`
	LastSubmissionTime string        `json:"lastSubmissionTime"`
	SubmissionsUpdated string        `json:"submissionsUpdated"`
	GeneratedAt        string        `json:"generatedAt"`
}
