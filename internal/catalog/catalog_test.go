package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load(DefaultPaths("testdata"))
	require.NoError(t, err)
	return c
}

func TestLoad_MissingFileIsError(t *testing.T) {
	paths := DefaultPaths("testdata")
	paths.FakeTickers = "testdata/does-not-exist.json"

	_, err := Load(paths)
	require.Error(t, err)
}

func TestLookup_NasdaqListedWinsPrecedence(t *testing.T) {
	c := loadTestCatalog(t)

	// GME is in both nasdaqlisted.txt and stocks.json; the exchange
	// listing wins for display fields.
	info := c.Lookup("GME")
	assert.False(t, info.IsFake)
	assert.Equal(t, "GameStop Corp. - Class A", info.CompanyName)
	assert.Equal(t, "NASDAQ", info.Exchange)
	assert.Equal(t, "USD", info.Currency)
}

func TestLookup_OtherListed(t *testing.T) {
	c := loadTestCatalog(t)

	info := c.Lookup("GE")
	assert.False(t, info.IsFake)
	assert.Equal(t, "General Electric Company", info.CompanyName)
	assert.Equal(t, "N", info.Exchange)
	assert.Equal(t, "USD", info.Currency)
}

func TestLookup_TwelveDataStockFallback(t *testing.T) {
	c := loadTestCatalog(t)

	info := c.Lookup("BMW")
	assert.False(t, info.IsFake)
	assert.Equal(t, "Bayerische Motoren Werke AG", info.CompanyName)
	assert.Equal(t, "XETR", info.Exchange)
	assert.Equal(t, "EUR", info.Currency)
}

func TestLookup_ETFFallback(t *testing.T) {
	c := loadTestCatalog(t)

	info := c.Lookup("ARKK")
	assert.False(t, info.IsFake)
	assert.Equal(t, "ARK Innovation ETF", info.CompanyName)
	assert.Equal(t, "USD", info.Currency)
}

func TestLookup_UnknownSymbolIsFake(t *testing.T) {
	c := loadTestCatalog(t)

	info := c.Lookup("ZZZZZ")
	assert.True(t, info.IsFake)
	assert.Empty(t, info.CompanyName)
}

func TestLookup_BlacklistOverridesPositiveDatasets(t *testing.T) {
	c := loadTestCatalog(t)

	// AAPLX appears in stocks.json but is blacklisted; the blacklist wins.
	info := c.Lookup("AAPLX")
	assert.True(t, info.IsFake)

	assert.False(t, c.IsReal("AAPLX"))
	assert.False(t, c.IsReal("YOLO"))
	assert.False(t, c.IsReal("DD"))
}

func TestIsReal(t *testing.T) {
	c := loadTestCatalog(t)

	assert.True(t, c.IsReal("AAPL"))
	assert.True(t, c.IsReal("SPY"))
	assert.True(t, c.IsReal("VTI"))
	assert.False(t, c.IsReal("BANANA"))
	assert.False(t, c.IsReal("QQQQQQ"))
}

func TestLookup_CaseInsensitive(t *testing.T) {
	c := loadTestCatalog(t)

	assert.False(t, c.Lookup("aapl").IsFake)
}

func TestSize_CountsDistinctSymbols(t *testing.T) {
	c := loadTestCatalog(t)

	// GME appears twice across datasets but counts once.
	assert.Equal(t, 9, c.Size())
}
