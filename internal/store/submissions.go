package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockpulse/backend/internal/contracts"
)

// SubmissionRepository implements contracts.SubmissionStore on Postgres.
type SubmissionRepository struct {
	pool *pgxpool.Pool
	meta *MetaRepository
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{
		pool: pool,
		meta: NewMetaRepository(pool),
	}
}

const submissionColumns = "id, subreddit, title, selftext, created_utc, score, author, url"

func scanSubmission(row pgx.Row) (contracts.Submission, error) {
	var s contracts.Submission
	err := row.Scan(&s.ID, &s.Subreddit, &s.Title, &s.Selftext, &s.CreatedUTC, &s.Score, &s.Author, &s.URL)
	return s, err
}

// GetRange returns all submissions with created_utc in [from, to) for
// the given subreddits, newest first. Subreddit matching is
// case-insensitive.
func (r *SubmissionRepository) GetRange(ctx context.Context, from, to int64, subreddits []string) ([]contracts.Submission, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM submissions
		WHERE created_utc >= $1 AND created_utc < $2
		  AND lower(subreddit) = ANY($3)
		ORDER BY created_utc DESC
	`, submissionColumns)

	rows, err := r.pool.Query(ctx, query, from, to, lowered(subreddits))
	if err != nil {
		return nil, fmt.Errorf("query submissions range: %w", err)
	}
	defer rows.Close()

	return collectSubmissions(rows)
}

// GetByTicker returns one page of a ticker's submissions
func (r *SubmissionRepository) GetByTicker(ctx context.Context, q contracts.SubmissionQuery) ([]contracts.Submission, error) {
	sortCol := "created_utc"
	if q.SortBy == "score" {
		sortCol = "score"
	}
	dir := "DESC"
	if q.Ascending {
		dir = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT s.id, s.subreddit, s.title, s.selftext, s.created_utc, s.score, s.author, s.url
		FROM submissions s
		JOIN submission_tickers st ON st.submission_id = s.id
		WHERE st.symbol = $1
		  AND s.created_utc >= $2 AND s.created_utc < $3
		  AND lower(s.subreddit) = ANY($4)
		ORDER BY s.%s %s
		OFFSET $5 LIMIT $6
	`, sortCol, dir)

	rows, err := r.pool.Query(ctx, query,
		strings.ToUpper(q.Ticker), q.From, q.To, lowered(q.Subreddits), q.Skip, q.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query submissions by ticker: %w", err)
	}
	defer rows.Close()

	return collectSubmissions(rows)
}

// LastSubmissionTime returns the created_utc of the newest stored
// submission, or 0 when the table is empty.
func (r *SubmissionRepository) LastSubmissionTime(ctx context.Context) (int64, error) {
	var last int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(created_utc), 0) FROM submissions`,
	).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("query last submission time: %w", err)
	}
	return last, nil
}

// SubmissionsUpdated returns the unix time of the last score refresh
func (r *SubmissionRepository) SubmissionsUpdated(ctx context.Context) (int64, error) {
	return r.meta.GetInt64(ctx, MetaSubmissionsUpdated)
}

// SaveBatch inserts submissions, skipping ids already stored
func (r *SubmissionRepository) SaveBatch(ctx context.Context, submissions []contracts.Submission) error {
	if len(submissions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO submissions (id, subreddit, title, selftext, created_utc, score, author, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`
	for _, s := range submissions {
		batch.Queue(query, s.ID, s.Subreddit, s.Title, s.Selftext, s.CreatedUTC, s.Score, s.Author, s.URL)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range submissions {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert submission: %w", err)
		}
	}
	return nil
}

// GetIDsSince returns ids of submissions created at or after the given
// unix time, oldest first.
func (r *SubmissionRepository) GetIDsSince(ctx context.Context, since int64) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM submissions WHERE created_utc >= $1 ORDER BY created_utc ASC`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("query submission ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateScores refreshes scores and bodies for rescraped submissions
func (r *SubmissionRepository) UpdateScores(ctx context.Context, submissions []contracts.Submission) error {
	if len(submissions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, s := range submissions {
		batch.Queue(
			`UPDATE submissions SET score = $2, selftext = $3 WHERE id = $1`,
			s.ID, s.Score, s.Selftext,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range submissions {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("update submission score: %w", err)
		}
	}
	return nil
}

// StampSubmissionsUpdated records the time of a completed score refresh
func (r *SubmissionRepository) StampSubmissionsUpdated(ctx context.Context, unix int64) error {
	return r.meta.SetInt64(ctx, MetaSubmissionsUpdated, unix)
}

func collectSubmissions(rows pgx.Rows) ([]contracts.Submission, error) {
	var submissions []contracts.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

func lowered(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	return out
}
