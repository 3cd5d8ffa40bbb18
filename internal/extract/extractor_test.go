package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpulse/backend/internal/contracts"
)

// fakeCatalog validates against a fixed symbol set
type fakeCatalog struct {
	real map[string]bool
}

func (f *fakeCatalog) IsReal(ticker string) bool {
	return f.real[ticker]
}

func (f *fakeCatalog) Lookup(ticker string) contracts.TickerInfo {
	return contracts.TickerInfo{IsFake: !f.real[ticker]}
}

func newTestExtractor(t *testing.T, minLen, maxLen int) *Extractor {
	t.Helper()
	cat := &fakeCatalog{real: map[string]bool{
		"AAPL": true, "GME": true, "TSLA": true, "GOOGL": true, "F": true,
	}}
	e, err := New(minLen, maxLen, cat)
	require.NoError(t, err)
	return e
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func TestExtract_BasicCandidates(t *testing.T) {
	e := newTestExtractor(t, 1, 6)

	got := e.Extract("I like AAPL and BANANA")
	assert.ElementsMatch(t, []string{"I", "AAPL", "BANANA"}, keys(got))
}

func TestExtractReal_FiltersFakes(t *testing.T) {
	e := newTestExtractor(t, 1, 6)

	got := e.ExtractReal("I like AAPL and BANANA")
	assert.ElementsMatch(t, []string{"AAPL"}, keys(got))
}

func TestExtract_WordBoundaryNotSubstring(t *testing.T) {
	e := newTestExtractor(t, 1, 6)

	// GOOGLEIT is an eight-letter run; GOOGL buried inside it must not
	// match.
	got := e.Extract("GOOGLEIT")
	assert.Empty(t, got)
}

func TestExtract_EmbeddedUppercaseInMixedCaseWord(t *testing.T) {
	e := newTestExtractor(t, 1, 6)

	got := e.Extract("xAAPLx should not match, nor should GameSTOP")
	assert.Empty(t, got)
}

func TestExtract_EmptyText(t *testing.T) {
	e := newTestExtractor(t, 1, 6)

	assert.Empty(t, e.Extract(""))
}

func TestExtract_Deduplicates(t *testing.T) {
	e := newTestExtractor(t, 1, 6)

	got := e.Extract("GME GME GME to the moon, GME")
	assert.ElementsMatch(t, []string{"GME"}, keys(got))
}

func TestExtract_RespectsLengthBounds(t *testing.T) {
	e := newTestExtractor(t, 2, 4)

	got := e.Extract("F GME GOOGL AAPL")
	// F is below the minimum, GOOGL above the maximum.
	assert.ElementsMatch(t, []string{"GME", "AAPL"}, keys(got))
}

func TestExtract_PunctuationBoundaries(t *testing.T) {
	e := newTestExtractor(t, 1, 6)

	got := e.Extract("Buy $GME! (also TSLA, maybe AAPL...)")
	assert.Subset(t, keys(got), []string{"GME", "TSLA", "AAPL"})
}

func TestExtract_HTMLBody(t *testing.T) {
	e := newTestExtractor(t, 1, 6)

	got := e.ExtractReal("<div><p>Thoughts on <strong>GME</strong> and AAPL?</p></div>")
	assert.ElementsMatch(t, []string{"GME", "AAPL"}, keys(got))
}

func TestNew_InvalidBounds(t *testing.T) {
	cat := &fakeCatalog{real: map[string]bool{}}

	_, err := New(0, 6, cat)
	assert.Error(t, err)

	_, err = New(4, 2, cat)
	assert.Error(t, err)
}

func TestIsReal_EmptyCandidate(t *testing.T) {
	e := newTestExtractor(t, 1, 6)
	assert.False(t, e.IsReal(""))
}
