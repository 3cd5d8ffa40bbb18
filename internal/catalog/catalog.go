package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/stockpulse/backend/internal/contracts"
)

// Catalog holds the reference ticker universes: a blacklist of symbols
// that look like tickers but are not, plus four positive datasets
// (TwelveData stocks and ETFs, Nasdaq-listed and other-listed
// securities). Loaded once at startup and read-only afterwards.
type Catalog struct {
	fake         map[string]struct{}
	stocks       map[string]twelveDataStock
	etfs         map[string]twelveDataETF
	nasdaqListed map[string]nasdaqListing
	otherListed  map[string]otherListing
}

// Paths locates the five reference dataset files
type Paths struct {
	FakeTickers  string
	Stocks       string
	ETFs         string
	NasdaqListed string
	OtherListed  string
}

// DefaultPaths returns the conventional file names under dir
func DefaultPaths(dir string) Paths {
	return Paths{
		FakeTickers:  filepath.Join(dir, "fake-tickers.json"),
		Stocks:       filepath.Join(dir, "stocks.json"),
		ETFs:         filepath.Join(dir, "etf.json"),
		NasdaqListed: filepath.Join(dir, "nasdaqlisted.txt"),
		OtherListed:  filepath.Join(dir, "otherlisted.txt"),
	}
}

// Load reads all reference datasets. Any missing or unparseable file is
// an error: the catalog cannot decide IsFake half-initialized, so
// callers must treat a failure here as fatal at startup.
func Load(paths Paths) (*Catalog, error) {
	fake, err := loadFakeTickers(paths.FakeTickers)
	if err != nil {
		return nil, fmt.Errorf("load fake tickers: %w", err)
	}

	stocks, err := loadTwelveDataStocks(paths.Stocks)
	if err != nil {
		return nil, fmt.Errorf("load stocks: %w", err)
	}

	etfs, err := loadTwelveDataETFs(paths.ETFs)
	if err != nil {
		return nil, fmt.Errorf("load ETFs: %w", err)
	}

	nasdaqListed, err := loadNasdaqListed(paths.NasdaqListed)
	if err != nil {
		return nil, fmt.Errorf("load nasdaq-listed: %w", err)
	}

	otherListed, err := loadOtherListed(paths.OtherListed)
	if err != nil {
		return nil, fmt.Errorf("load other-listed: %w", err)
	}

	return &Catalog{
		fake:         fake,
		stocks:       stocks,
		etfs:         etfs,
		nasdaqListed: nasdaqListed,
		otherListed:  otherListed,
	}, nil
}

// Lookup returns the reference info for a symbol. Precedence for the
// display fields is fixed: nasdaq-listed, then other-listed, then
// TwelveData stock, then TwelveData ETF. Nasdaq-listed securities are
// always reported as NASDAQ/USD.
func (c *Catalog) Lookup(ticker string) contracts.TickerInfo {
	ticker = strings.ToUpper(ticker)

	_, blacklisted := c.fake[ticker]
	stock, hasStock := c.stocks[ticker]
	etf, hasETF := c.etfs[ticker]
	nasdaq, hasNasdaq := c.nasdaqListed[ticker]
	other, hasOther := c.otherListed[ticker]

	info := contracts.TickerInfo{
		IsFake: blacklisted || (!hasStock && !hasETF && !hasNasdaq && !hasOther),
	}

	switch {
	case hasNasdaq:
		info.CompanyName = nasdaq.SecurityName
		info.Exchange = "NASDAQ"
		info.Currency = "USD"
	case hasOther:
		info.CompanyName = other.SecurityName
		info.Exchange = other.Exchange
		info.Currency = "USD"
	case hasStock:
		info.CompanyName = stock.Name
		info.Exchange = stock.Exchange
		info.Currency = stock.Currency
	case hasETF:
		info.CompanyName = etf.Name
		info.Currency = etf.Currency
	}

	return info
}

// IsReal reports whether a candidate passes validation: not
// blacklisted and present in at least one positive dataset.
func (c *Catalog) IsReal(ticker string) bool {
	return !c.Lookup(ticker).IsFake
}

// Size returns the number of distinct known symbols across the
// positive datasets
func (c *Catalog) Size() int {
	seen := make(map[string]struct{}, len(c.stocks)+len(c.etfs)+len(c.nasdaqListed)+len(c.otherListed))
	for s := range c.stocks {
		seen[s] = struct{}{}
	}
	for s := range c.etfs {
		seen[s] = struct{}{}
	}
	for s := range c.nasdaqListed {
		seen[s] = struct{}{}
	}
	for s := range c.otherListed {
		seen[s] = struct{}{}
	}
	return len(seen)
}
