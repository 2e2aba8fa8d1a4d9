package models

// News limits.
const (
	MaxNewsArticles     = 12
	MaxNewsSummaryRunes = 200
)

// NewsArticle is one headline with a short summary.
type NewsArticle struct {
	Headline string `json:"headline"`
	Source   string `json:"source"`
	URL      string `json:"url"`
	Datetime int64  `json:"datetime"`
	Summary  string `json:"summary"`
}

// News is the per-symbol news payload.
type News struct {
	Symbol   string        `json:"symbol"`
	Articles []NewsArticle `json:"articles"`
	Count    int           `json:"count"`
	Source   string        `json:"source,omitempty"`
	Error    string        `json:"error,omitempty"`
	Detail   string        `json:"detail,omitempty"`
}

// Dashboard bundles the per-symbol views fetched together.
type Dashboard struct {
	Symbol    string   `json:"symbol"`
	Profile   *Profile `json:"profile,omitempty"`
	Quote     *Quote   `json:"quote"`
	Metrics   *Metrics `json:"metrics,omitempty"`
	Analyst   *Analyst `json:"analyst,omitempty"`
	FetchedAt string   `json:"fetched_at,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// CacheKeyInfo describes one live cache entry.
type CacheKeyInfo struct {
	Key    string  `json:"key"`
	AgeSec float64 `json:"age_sec"`
	TTL    float64 `json:"ttl"`
}

// CacheStats is the cache introspection payload.
type CacheStats struct {
	Entries int            `json:"entries"`
	Keys    []CacheKeyInfo `json:"keys"`
}
