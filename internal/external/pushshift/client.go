package pushshift

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/stockpulse/backend/internal/contracts"
	"github.com/stockpulse/backend/pkg/config"
	"github.com/stockpulse/backend/pkg/httputil"
	"github.com/stockpulse/backend/pkg/logger"
)

// Client handles communication with the Pushshift submission archive.
// All Pushshift calls go through this client so the rate limit is
// enforced in one place.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	limiter    *rate.Limiter
	baseURL    string
	pageSize   int
}

// NewClient creates a new Pushshift client
func NewClient(cfg config.PushshiftConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 1
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("module", "pushshift"),
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		baseURL:    cfg.BaseURL,
		pageSize:   pageSize,
	}
}

type searchResponse struct {
	Data []submission `json:"data"`
}

type submission struct {
	ID         string  `json:"id"`
	Subreddit  string  `json:"subreddit"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	CreatedUTC float64 `json:"created_utc"`
	Score      int     `json:"score"`
	Author     string  `json:"author"`
	URL        string  `json:"url"`
}

// GetSubmissions returns all submissions for a subreddit created in
// [after, before). Pushshift caps each page at 100 results; when a
// page comes back full the client repeats the query from the newest
// created_utc seen so far until a short page arrives.
func (c *Client) GetSubmissions(ctx context.Context, subreddit string, after, before int64) ([]contracts.Submission, error) {
	var all []contracts.Submission
	seen := make(map[string]struct{})
	cursor := after

	for {
		page, err := c.fetchPage(ctx, subreddit, cursor, before)
		if err != nil {
			return nil, err
		}

		for _, raw := range page {
			if _, dup := seen[raw.ID]; dup {
				continue
			}
			seen[raw.ID] = struct{}{}
			all = append(all, contracts.Submission{
				ID:         raw.ID,
				Subreddit:  raw.Subreddit,
				Title:      raw.Title,
				Selftext:   raw.Selftext,
				CreatedUTC: int64(raw.CreatedUTC),
				Score:      raw.Score,
				Author:     raw.Author,
				URL:        raw.URL,
			})
		}

		if len(page) < c.pageSize {
			return all, nil
		}

		// Full page: continue from the newest timestamp in it.
		next := cursor
		for _, raw := range page {
			if ts := int64(raw.CreatedUTC); ts > next {
				next = ts
			}
		}
		if next == cursor {
			// Every result shares one timestamp; advancing would loop.
			return all, nil
		}
		cursor = next
	}
}

func (c *Client) fetchPage(ctx context.Context, subreddit string, after, before int64) ([]submission, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("subreddit", subreddit)
	params.Set("after", strconv.FormatInt(after, 10))
	params.Set("before", strconv.FormatInt(before, 10))
	params.Set("size", strconv.Itoa(c.pageSize))
	params.Set("fields", "id,subreddit,title,selftext,created_utc,score,author,url")

	endpoint := fmt.Sprintf("%s/reddit/search/submission?%s", c.baseURL, params.Encode())

	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("pushshift request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("pushshift returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode pushshift response: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"subreddit": subreddit,
		"after":     after,
		"before":    before,
		"count":     len(parsed.Data),
	}).Debug("Fetched pushshift page")

	return parsed.Data, nil
}
