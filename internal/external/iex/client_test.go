package iex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpulse/backend/pkg/config"
	"github.com/stockpulse/backend/pkg/httputil"
	"github.com/stockpulse/backend/pkg/logger"
)

func newTestClient(t *testing.T, baseURL string, batchSize int) *Client {
	t.Helper()
	return NewClient(config.IEXConfig{
		BaseURL:   baseURL,
		Token:     "test-token",
		BatchSize: batchSize,
	}, httputil.New(&config.Config{}, logger.NewNop()).DisableRetry(), logger.NewNop())
}

func quoteBody(symbols ...string) []byte {
	out := make(map[string]interface{}, len(symbols))
	for i, s := range symbols {
		out[s] = map[string]interface{}{
			"quote": map[string]interface{}{
				"companyName": s + " Inc.",
				"latestPrice": float64(100 + i),
			},
		}
	}
	b, _ := json.Marshal(out)
	return b
}

func TestGetQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock/market/batch", r.URL.Path)
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))
		assert.Equal(t, "quote", r.URL.Query().Get("types"))
		w.Write(quoteBody("AAPL", "GME"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 10)

	quotes, err := c.GetQuotes(context.Background(), []string{"AAPL", "GME"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	require.NotNil(t, quotes["AAPL"])
	assert.Equal(t, "AAPL Inc.", quotes["AAPL"].CompanyName)
}

func TestGetQuotes_SplitsIntoBatches(t *testing.T) {
	var mu sync.Mutex
	var batches [][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbols := strings.Split(r.URL.Query().Get("symbols"), ",")
		mu.Lock()
		batches = append(batches, symbols)
		mu.Unlock()
		w.Write(quoteBody(symbols...))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 2)

	quotes, err := c.GetQuotes(context.Background(), []string{"A", "B", "C", "D", "E"})
	require.NoError(t, err)
	assert.Len(t, quotes, 5)
	assert.Len(t, batches, 3)
}

func TestGetQuotes_UnknownSymbolIsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(quoteBody("AAPL"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 10)

	quotes, err := c.GetQuotes(context.Background(), []string{"AAPL", "NOPE"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.NotNil(t, quotes["AAPL"])
	assert.Nil(t, quotes["NOPE"])
}

func TestGetQuotes_Empty(t *testing.T) {
	c := newTestClient(t, "http://unused.invalid", 10)

	quotes, err := c.GetQuotes(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestGetQuotes_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 10)

	_, err := c.GetQuotes(context.Background(), []string{"AAPL"})
	require.Error(t, err)
}
