package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/stockpulse/backend/internal/contracts"
	"github.com/stockpulse/backend/internal/trends"
	"github.com/stockpulse/backend/pkg/logger"
)

const (
	dateFormat       = "2006-01-02"
	defaultRangeDays = 7
	defaultPageLimit = 25
	maxPageLimit     = 100
)

// DataHandler serves the mention trend endpoints
type DataHandler struct {
	service *trends.Service
	logger  *logger.Logger
}

// NewDataHandler creates a new data handler
func NewDataHandler(service *trends.Service, log *logger.Logger) *DataHandler {
	return &DataHandler{
		service: service,
		logger:  log,
	}
}

// GetTrends returns the mention grid for a day range
// GET /api/data?from=YYYY-MM-DD&to=YYYY-MM-DD&quotes=true
func (h *DataHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDayRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	withQuotes := r.URL.Query().Get("quotes") == "true"

	resp, err := h.service.GetTrends(r.Context(), from, to, withQuotes)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build trends")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve trends")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetTrendsForSubreddits returns the mention grid restricted to a
// subreddit selection
// GET /api/data/subreddits?from=...&to=...&subreddits=a,b
func (h *DataHandler) GetTrendsForSubreddits(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDayRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	selected := parseSubreddits(r.URL.Query().Get("subreddits"))
	if len(selected) == 0 {
		respondError(w, http.StatusBadRequest, "subreddits parameter is required")
		return
	}

	resp, err := h.service.GetTrends(r.Context(), from, to, false)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build trends")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve trends")
		return
	}

	projected := *resp
	projected.Data = trends.ProjectSubreddits(resp.Data, selected)
	projected.Subreddits = sortedKeys(selected)

	respondJSON(w, http.StatusOK, &projected)
}

// GetSubmissions returns one page of a ticker's submissions
// GET /api/submissions?ticker=GME&from=...&to=...&sort=score&order=desc&skip=0&limit=25
func (h *DataHandler) GetSubmissions(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker parameter is required")
		return
	}

	from, to, err := parseDayRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := contracts.SubmissionQuery{
		Ticker:     ticker,
		From:       from.Unix(),
		To:         to.AddDate(0, 0, 1).Unix(),
		Subreddits: h.service.Subreddits(),
		SortBy:     r.URL.Query().Get("sort"),
		Ascending:  r.URL.Query().Get("order") == "asc",
		Skip:       parseIntParam(r, "skip", 0),
		Limit:      parseIntParam(r, "limit", defaultPageLimit),
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
	if selected := parseSubreddits(r.URL.Query().Get("subreddits")); len(selected) > 0 {
		q.Subreddits = sortedKeys(selected)
	}

	views, err := h.service.GetSubmissions(r.Context(), q)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get submissions")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve submissions")
		return
	}

	respondJSON(w, http.StatusOK, views)
}

// parseDayRange reads from/to query parameters as UTC days. When both
// are absent the range defaults to the last week ending today.
func parseDayRange(r *http.Request) (time.Time, time.Time, error) {
	fromParam := r.URL.Query().Get("from")
	toParam := r.URL.Query().Get("to")

	if fromParam == "" && toParam == "" {
		to := time.Now().UTC().Truncate(24 * time.Hour)
		return to.AddDate(0, 0, -(defaultRangeDays - 1)), to, nil
	}

	from, err := time.Parse(dateFormat, fromParam)
	if err != nil {
		return time.Time{}, time.Time{}, errInvalidDate("from")
	}
	to, err := time.Parse(dateFormat, toParam)
	if err != nil {
		return time.Time{}, time.Time{}, errInvalidDate("to")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errRange
	}
	return from, to, nil
}

func parseSubreddits(raw string) map[string]struct{} {
	selected := make(map[string]struct{})
	for _, name := range strings.Split(raw, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			selected[name] = struct{}{}
		}
	}
	return selected
}

func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
