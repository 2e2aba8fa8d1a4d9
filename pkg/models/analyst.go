package models

// Rating is a single broker action as reported by a provider.
type Rating struct {
	Firm   string `json:"firm"`
	Rating string `json:"rating"`
	Action string `json:"action,omitempty"`
	Date   string `json:"date,omitempty"`
}

// AnalystRatings is the raw analyst payload an adapter returns. Targets
// holds individual price targets; the Target* fields hold a provider
// summary when individual targets are not available.
type AnalystRatings struct {
	Ratings           []Rating  `json:"ratings"`
	Targets           []float64 `json:"targets,omitempty"`
	TargetMean        *float64  `json:"target_mean,omitempty"`
	TargetHigh        *float64  `json:"target_high,omitempty"`
	TargetLow         *float64  `json:"target_low,omitempty"`
	RecommendationKey string    `json:"recommendation_key,omitempty"`
	AnalystCount      int       `json:"analyst_count,omitempty"`
}

// HasData reports whether the payload has anything to aggregate.
func (r *AnalystRatings) HasData() bool {
	if r == nil {
		return false
	}
	return len(r.Ratings) > 0 || len(r.Targets) > 0 || r.TargetMean != nil ||
		(r.RecommendationKey != "" && r.RecommendationKey != "none")
}

// Analyst is the aggregated consensus view served to clients.
type Analyst struct {
	Symbol       string   `json:"symbol"`
	Consensus    string   `json:"consensus"`
	StrongBuy    int      `json:"strong_buy"`
	Buy          int      `json:"buy"`
	Hold         int      `json:"hold"`
	Sell         int      `json:"sell"`
	StrongSell   int      `json:"strong_sell"`
	Total        int      `json:"total"`
	TargetMean   *float64 `json:"target_mean"`
	TargetHigh   *float64 `json:"target_high"`
	TargetLow    *float64 `json:"target_low"`
	AnalystCount int      `json:"analyst_count"`
	Source       string   `json:"source,omitempty"`
	Error        string   `json:"error,omitempty"`
	Detail       string   `json:"detail,omitempty"`
}
