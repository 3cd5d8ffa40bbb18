package contracts

// Quote is live price data for one ticker. Enrichment only: a missing
// quote never fails an aggregation.
type Quote struct {
	CompanyName   string  `json:"companyName"`
	LatestPrice   float64 `json:"latestPrice"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Low           float64 `json:"low"`
	High          float64 `json:"high"`
	Open          float64 `json:"open"`
	Close         float64 `json:"close"`
}
