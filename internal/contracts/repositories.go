package contracts

import "context"

// SubmissionStore is the content store the aggregation pipeline reads
// from. Implementations return complete, materialized slices for the
// requested window; no streaming.
type SubmissionStore interface {
	// GetRange returns all submissions with created_utc in [from, to),
	// restricted to the given lowercased subreddit names.
	GetRange(ctx context.Context, from, to int64, subreddits []string) ([]Submission, error)

	// GetByTicker returns one page of a ticker's submissions.
	GetByTicker(ctx context.Context, q SubmissionQuery) ([]Submission, error)

	// LastSubmissionTime returns the created_utc of the newest stored
	// submission, or 0 when the store is empty.
	LastSubmissionTime(ctx context.Context) (int64, error)

	// SubmissionsUpdated returns the unix time of the last score refresh.
	SubmissionsUpdated(ctx context.Context) (int64, error)
}

// SubmissionQuery describes a paged, sorted per-ticker listing
type SubmissionQuery struct {
	Ticker     string
	From       int64
	To         int64
	Subreddits []string
	SortBy     string // created_utc | score
	Ascending  bool
	Skip       int
	Limit      int
}

// TickerCatalog answers whether a candidate symbol is a real ticker
// and supplies its reference metadata. Loaded once, read-only after.
type TickerCatalog interface {
	Lookup(ticker string) TickerInfo
	IsReal(ticker string) bool
}

// QuoteProvider returns live quotes per ticker. A nil map entry means
// the quote was unavailable for that symbol.
type QuoteProvider interface {
	GetQuotes(ctx context.Context, tickers []string) (map[string]*Quote, error)
}
