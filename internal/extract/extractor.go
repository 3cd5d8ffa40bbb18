package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/stockpulse/backend/internal/contracts"
)

// Extractor finds ticker candidates in free text: maximal word-bounded
// runs of uppercase A-Z within the configured length bounds. Candidates
// are only candidates; validation against the catalog happens in
// IsReal.
type Extractor struct {
	pattern *regexp.Regexp
	catalog contracts.TickerCatalog
}

// New creates an extractor with the given length bounds. The bounds are
// configurable because the strictness trade-off is genuinely unclear:
// short bounds miss one-letter tickers like F, long loose bounds rely
// on catalog validation to weed out shouting.
func New(minLen, maxLen int, cat contracts.TickerCatalog) (*Extractor, error) {
	if minLen < 1 || maxLen < minLen {
		return nil, fmt.Errorf("invalid ticker length bounds: min=%d max=%d", minLen, maxLen)
	}

	pattern, err := regexp.Compile(fmt.Sprintf(`\b[A-Z]{%d,%d}\b`, minLen, maxLen))
	if err != nil {
		return nil, fmt.Errorf("compile ticker pattern: %w", err)
	}

	return &Extractor{
		pattern: pattern,
		catalog: cat,
	}, nil
}

// Extract returns the deduplicated set of ticker candidates in text.
// Empty or missing text yields an empty set; there is no error path.
func (e *Extractor) Extract(text string) map[string]struct{} {
	candidates := make(map[string]struct{})
	if text == "" {
		return candidates
	}

	if looksLikeHTML(text) {
		text = stripHTML(text)
	}

	for _, match := range e.pattern.FindAllString(text, -1) {
		candidates[match] = struct{}{}
	}
	return candidates
}

// ExtractReal returns only candidates that pass catalog validation
func (e *Extractor) ExtractReal(text string) map[string]struct{} {
	real := make(map[string]struct{})
	for candidate := range e.Extract(text) {
		if e.IsReal(candidate) {
			real[candidate] = struct{}{}
		}
	}
	return real
}

// IsReal reports whether a candidate is a validated ticker: not
// blacklisted and present in at least one positive reference dataset.
func (e *Extractor) IsReal(candidate string) bool {
	if candidate == "" {
		return false
	}
	return e.catalog.IsReal(candidate)
}

// looksLikeHTML is a cheap guard so plain-text posts skip the parser
func looksLikeHTML(text string) bool {
	return strings.Contains(text, "</") || strings.Contains(text, "/>") || strings.Contains(text, "<p>")
}

// stripHTML reduces an HTML-formatted body to its text content so
// markup cannot glue adjacent letter runs together or hide word
// boundaries.
func stripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return doc.Text()
}
