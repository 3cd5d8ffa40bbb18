package contracts

import "time"

// RemovedBodySentinel is the body text Reddit substitutes when a
// submission's selftext has been deleted by moderators.
const RemovedBodySentinel = "[removed]"

// Submission is one scraped Reddit post. Immutable except for Score,
// which the rescraper refreshes periodically.
type Submission struct {
	ID         string `json:"id"`
	Subreddit  string `json:"subreddit"`
	Title      string `json:"title"`
	Selftext   string `json:"selftext,omitempty"`
	CreatedUTC int64  `json:"created_utc"`
	Score      int    `json:"score"`
	Author     string `json:"author"`
	URL        string `json:"url"`
}

// CreatedAt returns the creation time in UTC
func (s Submission) CreatedAt() time.Time {
	return time.Unix(s.CreatedUTC, 0).UTC()
}

// IsRemoved reports whether the submission body was deleted
func (s Submission) IsRemoved() bool {
	return s.Selftext == RemovedBodySentinel
}

// SubmissionView is the API representation of a submission
type SubmissionView struct {
	ID         string `json:"id"`
	Subreddit  string `json:"subreddit"`
	Title      string `json:"title"`
	CreatedUTC int64  `json:"created_utc"`
	Score      int    `json:"score"`
	URL        string `json:"url"`
	Author     string `json:"author"`
	IsRemoved  bool   `json:"is_removed"`
}

// View converts a Submission to its API representation
func (s Submission) View() SubmissionView {
	return SubmissionView{
		ID:         s.ID,
		Subreddit:  s.Subreddit,
		Title:      s.Title,
		CreatedUTC: s.CreatedUTC,
		Score:      s.Score,
		URL:        s.URL,
		Author:     s.Author,
		IsRemoved:  s.IsRemoved(),
	}
}
