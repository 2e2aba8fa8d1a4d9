package models

// IndexValue is the latest level of one market index.
type IndexValue struct {
	Name   string   `json:"name"`
	Value  float64  `json:"value"`
	Change *float64 `json:"change"`
	Pct    *float64 `json:"pct"`
	Source string   `json:"source"`
}

// Indices is the market overview header.
type Indices struct {
	Indices    []IndexValue `json:"indices"`
	MarketOpen bool         `json:"market_open"`
	Error      string       `json:"error,omitempty"`
}

// Mover is one row of a top-movers table.
type Mover struct {
	Symbol   string  `json:"symbol"`
	Price    float64 `json:"price"`
	Change   float64 `json:"change"`
	PChange  float64 `json:"pchange"`
	Volume   int64   `json:"volume"`
	Turnover float64 `json:"turnover"`
}

// Movers is the payload for one movers kind.
type Movers struct {
	Kind   string  `json:"kind"`
	Movers []Mover `json:"movers"`
	Source string  `json:"source"`
	Error  string  `json:"error,omitempty"`
}

// FXRate is one currency quoted against INR.
type FXRate struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Symbol     string  `json:"symbol"`
	INRPerUnit float64 `json:"inr_per_unit"`
	UnitPerINR float64 `json:"unit_per_inr"`
}

// FXTable is the currency board.
type FXTable struct {
	Rates  []FXRate `json:"rates"`
	Base   string   `json:"base"`
	Date   string   `json:"date"`
	Source string   `json:"source"`
}

// MetalRate is a precious-metal price converted to INR per unit.
type MetalRate struct {
	Name       string   `json:"name"`
	PriceINR   float64  `json:"price_inr"`
	PrevINR    *float64 `json:"prev_inr"`
	Change     *float64 `json:"change"`
	ChangePct  *float64 `json:"change_pct"`
	PriceUSDOz float64  `json:"price_usd_oz"`
	Unit       string   `json:"unit"`
}

// Metals is the gold/silver board.
type Metals struct {
	Gold   *MetalRate `json:"gold"`
	Silver *MetalRate `json:"silver"`
	USDINR float64    `json:"usd_inr"`
	Source string     `json:"source"`
}

// Headline is a market-wide news item from a feed.
type Headline struct {
	Title     string `json:"title"`
	Source    string `json:"source"`
	Link      string `json:"link"`
	Published int64  `json:"published"`
	Summary   string `json:"summary,omitempty"`
}

// Headlines is the market news payload.
type Headlines struct {
	Items []Headline `json:"items"`
	Count int        `json:"count"`
	Error string     `json:"error,omitempty"`
}

// FundSummary is a mutual-fund search hit.
type FundSummary struct {
	SchemeCode int    `json:"scheme_code"`
	SchemeName string `json:"scheme_name"`
}

// FundDetail is a scheme's latest NAV and trailing returns.
type FundDetail struct {
	SchemeCode     int      `json:"scheme_code"`
	SchemeName     string   `json:"scheme_name"`
	FundHouse      string   `json:"fund_house"`
	SchemeType     string   `json:"scheme_type"`
	SchemeCategory string   `json:"scheme_category"`
	LatestNAV      *float64 `json:"latest_nav"`
	NAVDate        string   `json:"nav_date"`
	Return1Y       *float64 `json:"return_1y"`
	Return3Y       *float64 `json:"return_3y"`
	Return5Y       *float64 `json:"return_5y"`
}

// StockSummary is the lookup payload: a live quote plus a weekly summary.
type StockSummary struct {
	Query      string   `json:"query"`
	Symbol     string   `json:"symbol"`
	Ticker     string   `json:"ticker"`
	Current    *float64 `json:"current"`
	Open       *float64 `json:"open"`
	PrevClose  *float64 `json:"prev_close"`
	DayHigh    *float64 `json:"day_high"`
	DayLow     *float64 `json:"day_low"`
	Change     *float64 `json:"change"`
	ChangePct  *float64 `json:"change_pct"`
	WeekOpen   *float64 `json:"week_open"`
	WeekClose  *float64 `json:"week_close"`
	WeekHigh   *float64 `json:"week_high"`
	WeekLow    *float64 `json:"week_low"`
	WeekChange *float64 `json:"week_change"`
	WeekPct    *float64 `json:"week_pct"`
	Currency   string   `json:"currency"`
	Error      string   `json:"error,omitempty"`
}
