package iex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/stockpulse/backend/internal/contracts"
	"github.com/stockpulse/backend/pkg/config"
	"github.com/stockpulse/backend/pkg/httputil"
	"github.com/stockpulse/backend/pkg/logger"
)

const defaultBatchSize = 10

// Client fetches live quotes from IEX Cloud. Implements
// contracts.QuoteProvider.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	token      string
	batchSize  int
}

// NewClient creates a new IEX Cloud client
func NewClient(cfg config.IEXConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("module", "iex"),
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		batchSize:  batchSize,
	}
}

type batchQuoteEntry struct {
	Quote *quotePayload `json:"quote"`
}

type quotePayload struct {
	CompanyName   string  `json:"companyName"`
	LatestPrice   float64 `json:"latestPrice"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Low           float64 `json:"low"`
	High          float64 `json:"high"`
	Open          float64 `json:"open"`
	Close         float64 `json:"close"`
}

// GetQuotes returns quotes for the given tickers. Symbols IEX does not
// recognize map to nil; a failed batch fails the whole call.
func (c *Client) GetQuotes(ctx context.Context, tickers []string) (map[string]*contracts.Quote, error) {
	quotes := make(map[string]*contracts.Quote, len(tickers))
	if len(tickers) == 0 {
		return quotes, nil
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	errs := make(chan error, (len(tickers)+c.batchSize-1)/c.batchSize)

	for start := 0; start < len(tickers); start += c.batchSize {
		end := start + c.batchSize
		if end > len(tickers) {
			end = len(tickers)
		}

		wg.Add(1)
		go func(batch []string) {
			defer wg.Done()

			result, err := c.fetchBatch(ctx, batch)
			if err != nil {
				errs <- err
				return
			}

			mu.Lock()
			for symbol, quote := range result {
				quotes[symbol] = quote
			}
			mu.Unlock()
		}(tickers[start:end])
	}

	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return nil, err
	}

	for _, ticker := range tickers {
		if _, ok := quotes[strings.ToUpper(ticker)]; !ok {
			quotes[strings.ToUpper(ticker)] = nil
		}
	}

	return quotes, nil
}

func (c *Client) fetchBatch(ctx context.Context, tickers []string) (map[string]*contracts.Quote, error) {
	params := url.Values{}
	params.Set("symbols", strings.Join(tickers, ","))
	params.Set("types", "quote")
	params.Set("token", c.token)

	endpoint := fmt.Sprintf("%s/stock/market/batch?%s", c.baseURL, params.Encode())

	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("iex request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("iex returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed map[string]batchQuoteEntry
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode iex response: %w", err)
	}

	quotes := make(map[string]*contracts.Quote, len(parsed))
	for symbol, entry := range parsed {
		if entry.Quote == nil {
			continue
		}
		quotes[strings.ToUpper(symbol)] = &contracts.Quote{
			CompanyName:   entry.Quote.CompanyName,
			LatestPrice:   entry.Quote.LatestPrice,
			Change:        entry.Quote.Change,
			ChangePercent: entry.Quote.ChangePercent,
			Low:           entry.Quote.Low,
			High:          entry.Quote.High,
			Open:          entry.Quote.Open,
			Close:         entry.Quote.Close,
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"requested": len(tickers),
		"returned":  len(quotes),
	}).Debug("Fetched quote batch")

	return quotes, nil
}
