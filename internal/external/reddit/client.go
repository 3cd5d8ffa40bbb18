package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/stockpulse/backend/internal/contracts"
	"github.com/stockpulse/backend/pkg/config"
	"github.com/stockpulse/backend/pkg/httputil"
	"github.com/stockpulse/backend/pkg/logger"
)

const (
	tokenURL  = "https://www.reddit.com/api/access_token"
	userAgent = "stockpulse/1.0"

	// Reddit's /api/info endpoint accepts at most 100 fullnames.
	infoBatchSize = 100
)

// Client handles communication with the Reddit OAuth API. It is used
// to refresh scores and bodies of recently scraped submissions.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.RedditConfig

	accessToken string
	tokenExpiry time.Time
	tokenMu     sync.RWMutex
}

// NewClient creates a new Reddit API client
func NewClient(cfg config.RedditConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("module", "reddit"),
		cfg:        cfg,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// getToken returns a valid access token, refreshing via the password
// grant when the cached one has expired.
func (c *Client) getToken(ctx context.Context) (string, error) {
	c.tokenMu.RLock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		token := c.accessToken
		c.tokenMu.RUnlock()
		return token, nil
	}
	c.tokenMu.RUnlock()

	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.cfg.Username)
	form.Set("password", c.cfg.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token request returned status %d: %s", resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token response contained no access token")
	}

	c.accessToken = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn-60) * time.Second)

	c.logger.Debug("Refreshed reddit access token")
	return c.accessToken, nil
}

type infoListing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID         string  `json:"id"`
				Subreddit  string  `json:"subreddit"`
				Title      string  `json:"title"`
				Selftext   string  `json:"selftext"`
				CreatedUTC float64 `json:"created_utc"`
				Score      int     `json:"score"`
				Author     string  `json:"author"`
				URL        string  `json:"url"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// GetSubmissionsByID fetches current submission state for the given
// ids, batching requests per Reddit's 100-fullname limit. Ids Reddit
// no longer knows are silently absent from the result.
func (c *Client) GetSubmissionsByID(ctx context.Context, ids []string) ([]contracts.Submission, error) {
	var all []contracts.Submission

	for start := 0; start < len(ids); start += infoBatchSize {
		end := start + infoBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		batch, err := c.fetchInfo(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
	}

	return all, nil
}

func (c *Client) fetchInfo(ctx context.Context, ids []string) ([]contracts.Submission, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, err
	}

	fullnames := make([]string, len(ids))
	for i, id := range ids {
		fullnames[i] = "t3_" + id
	}

	endpoint := fmt.Sprintf("%s/api/info?id=%s", c.cfg.BaseURL, strings.Join(fullnames, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("info request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("info request returned status %d: %s", resp.StatusCode, string(body))
	}

	var listing infoListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode info response: %w", err)
	}

	submissions := make([]contracts.Submission, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		d := child.Data
		submissions = append(submissions, contracts.Submission{
			ID:         d.ID,
			Subreddit:  d.Subreddit,
			Title:      d.Title,
			Selftext:   d.Selftext,
			CreatedUTC: int64(d.CreatedUTC),
			Score:      d.Score,
			Author:     d.Author,
			URL:        d.URL,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"requested": len(ids),
		"returned":  len(submissions),
	}).Debug("Fetched submission info batch")

	return submissions, nil
}
