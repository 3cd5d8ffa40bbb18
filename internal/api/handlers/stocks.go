package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/stockpulse/backend/internal/contracts"
	"github.com/stockpulse/backend/pkg/logger"
	"github.com/stockpulse/backend/pkg/redis"
)

// StockHandler serves live quote lookups
type StockHandler struct {
	quotes contracts.QuoteProvider
	cache  *redis.Cache
	logger *logger.Logger
}

// NewStockHandler creates a new stock handler. cache may be nil.
func NewStockHandler(quotes contracts.QuoteProvider, cache *redis.Cache, log *logger.Logger) *StockHandler {
	return &StockHandler{
		quotes: quotes,
		cache:  cache,
		logger: log,
	}
}

// GetQuotes returns live quotes for a comma-separated ticker list
// GET /api/stocks/{tickers}
func (h *StockHandler) GetQuotes(w http.ResponseWriter, r *http.Request) {
	if h.quotes == nil {
		respondError(w, http.StatusServiceUnavailable, "Quote provider not configured")
		return
	}

	raw := mux.Vars(r)["tickers"]
	tickers := parseTickers(raw)
	if len(tickers) == 0 {
		respondError(w, http.StatusBadRequest, "At least one ticker is required")
		return
	}

	result := make(map[string]*contracts.Quote, len(tickers))
	missing := make([]string, 0, len(tickers))

	for _, ticker := range tickers {
		var cached contracts.Quote
		if h.cache != nil {
			if found, err := h.cache.Get(r.Context(), redis.QuoteKey(ticker), &cached); err == nil && found {
				quote := cached
				result[ticker] = &quote
				continue
			}
		}
		missing = append(missing, ticker)
	}

	if len(missing) > 0 {
		fetched, err := h.quotes.GetQuotes(r.Context(), missing)
		if err != nil {
			h.logger.WithError(err).Error("Failed to fetch quotes")
			respondError(w, http.StatusBadGateway, "Failed to retrieve quotes")
			return
		}

		for ticker, quote := range fetched {
			result[ticker] = quote
			if h.cache != nil && quote != nil {
				if err := h.cache.Set(r.Context(), redis.QuoteKey(ticker), quote, redis.TTLShort); err != nil {
					h.logger.WithError(err).Warn("Failed to cache quote")
				}
			}
		}
	}

	respondJSON(w, http.StatusOK, result)
}

func parseTickers(raw string) []string {
	var tickers []string
	seen := make(map[string]struct{})
	for _, t := range strings.Split(raw, ",") {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		tickers = append(tickers, t)
	}
	return tickers
}
