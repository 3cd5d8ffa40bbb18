package contracts

// TickerInfo is the catalog's answer for one candidate symbol.
// IsFake is true when the symbol is blacklisted or unknown to every
// positive reference dataset.
type TickerInfo struct {
	IsFake      bool   `json:"is_fake"`
	CompanyName string `json:"company_name,omitempty"`
	Exchange    string `json:"exchange,omitempty"`
	Currency    string `json:"currency,omitempty"`
}

// Ticker is a persisted reference ticker row
type Ticker struct {
	Symbol      string `json:"ticker"`
	IsFake      bool   `json:"is_fake"`
	CompanyName string `json:"name,omitempty"`
	Exchange    string `json:"exchange,omitempty"`
	Currency    string `json:"currency,omitempty"`
}
