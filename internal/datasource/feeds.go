package datasource

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/seenimoa/finassist/internal/fanout"
	"github.com/seenimoa/finassist/pkg/models"
	"github.com/seenimoa/finassist/pkg/utils"
)

// FeedSource is one RSS feed and the publisher name shown for its items.
type FeedSource struct {
	Name string `mapstructure:"name" json:"name"`
	URL  string `mapstructure:"url" json:"url"`
}

// DefaultFeedSources lists the Indian market news feeds.
var DefaultFeedSources = []FeedSource{
	{Name: "Economic Times", URL: "https://economictimes.indiatimes.com/markets/stocks/rss.cms"},
	{Name: "Economic Times", URL: "https://economictimes.indiatimes.com/markets/rss.cms"},
	{Name: "MoneyControl", URL: "https://www.moneycontrol.com/rss/MCtopnews.xml"},
	{Name: "MoneyControl", URL: "https://www.moneycontrol.com/rss/marketreports.xml"},
	{Name: "MoneyControl", URL: "https://www.moneycontrol.com/rss/latestnews.xml"},
	{Name: "Mint", URL: "https://www.livemint.com/rss/markets"},
	{Name: "Business Standard", URL: "https://www.business-standard.com/rss/markets-106.rss"},
	{Name: "Financial Express", URL: "https://www.financialexpress.com/market/feed/"},
	{Name: "NDTV Profit", URL: "https://feeds.feedburner.com/ndtvprofit-latest"},
	{Name: "Reuters", URL: "https://feeds.reuters.com/reuters/INbusinessNews"},
}

var (
	rejectKeywords = []string{
		"ramadan", "eid", "bollywood", "cricket", "ipl", "movie", "weather",
		"horoscope", "celebrity", "fashion", "covid", "vaccine", "election",
	}
	financeKeywords = []string{
		"stock", "share", "market", "nifty", "sensex", "bse", "nse", "rupee",
		"rbi", "sebi", "ipo", "fund", "equity", "invest", "earning", "profit",
		"revenue", "quarter", "budget", "economy", "gdp", "inflation", "rate",
		"bank", "crore", "lakh", "billion", "dividend", "gold", "silver",
		"crude", "forex",
	}
)

const dedupeRunes = 60

// FeedsConfig tunes the headline fan-out.
type FeedsConfig struct {
	Sources []FeedSource
	Workers int
	Timeout time.Duration
	MaxAge  time.Duration
	Limit   int
}

// Feeds reads market headlines from RSS feeds. As a Provider it only
// serves News, by filtering headlines on ticker keywords.
type Feeds struct {
	c   *client
	cfg FeedsConfig
	now func() time.Time
}

// NewFeeds creates the headlines adapter. Zero config fields take defaults:
// DefaultFeedSources, 6 workers, a 12s budget, 24h max age, 50 items.
func NewFeeds(cfg FeedsConfig, opts ...Option) *Feeds {
	if len(cfg.Sources) == 0 {
		cfg.Sources = DefaultFeedSources
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 6
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 12 * time.Second
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 24 * time.Hour
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 50
	}
	base := []Option{WithRateLimit(rate.Limit(cfg.Workers), cfg.Workers)}
	return &Feeds{
		c:   newClient("", 7*time.Second, append(base, opts...)),
		cfg: cfg,
		now: time.Now,
	}
}

// Name returns the data source name.
func (f *Feeds) Name() string { return "feeds" }

// Headlines fetches every feed concurrently and returns filtered, deduped
// headlines, newest first. Feeds that fail or miss the budget are skipped.
func (f *Feeds) Headlines(ctx context.Context) ([]models.Headline, error) {
	cutoff := f.now().Add(-f.cfg.MaxAge)

	tasks := make([]fanout.Task[[]models.Headline], 0, len(f.cfg.Sources))
	for _, src := range f.cfg.Sources {
		tasks = append(tasks, func(ctx context.Context) ([]models.Headline, error) {
			return f.fetchFeed(ctx, src, cutoff)
		})
	}

	batches, err := fanout.Gather(ctx, f.cfg.Workers, f.cfg.Timeout, tasks)
	if err != nil && len(batches) == 0 {
		return nil, fmt.Errorf("headlines: %w", err)
	}

	var all []models.Headline
	for _, batch := range batches {
		all = append(all, batch...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Published > all[j].Published })

	// Newest copy of a story wins.
	seen := make(map[string]bool)
	out := make([]models.Headline, 0, len(all))
	for _, h := range all {
		key := utils.Truncate(strings.ToLower(h.Title), dedupeRunes)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}

	if len(out) > f.cfg.Limit {
		out = out[:f.cfg.Limit]
	}
	return out, nil
}

// --- Provider interface (partial) ---

// News returns headlines that mention the ticker or its company name.
func (f *Feeds) News(ctx context.Context, id string, limit int) ([]models.NewsArticle, error) {
	if limit <= 0 {
		limit = models.MaxNewsArticles
	}
	items, err := f.Headlines(ctx)
	if err != nil {
		return nil, err
	}

	keywords := tickerKeywords(utils.BaseSymbol(id))
	var out []models.NewsArticle
	for _, h := range items {
		if !matchesAny(h.Title+" "+h.Summary, keywords) {
			continue
		}
		out = append(out, models.NewsArticle{
			Headline: h.Title,
			Source:   h.Source,
			URL:      h.Link,
			Datetime: h.Published,
			Summary:  utils.Truncate(h.Summary, models.MaxNewsSummaryRunes),
		})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// Quote is not supported by the news source.
func (f *Feeds) Quote(context.Context, string) (*models.Quote, error) { return nil, ErrNotSupported }

// Profile is not supported by the news source.
func (f *Feeds) Profile(context.Context, string) (*models.Profile, error) {
	return nil, ErrNotSupported
}

// Metrics is not supported by the news source.
func (f *Feeds) Metrics(context.Context, string) (*models.Metrics, error) {
	return nil, ErrNotSupported
}

// Candles is not supported by the news source.
func (f *Feeds) Candles(context.Context, string, models.Window) ([]models.Candle, error) {
	return nil, ErrNotSupported
}

// Analyst is not supported by the news source.
func (f *Feeds) Analyst(context.Context, string) (*models.AnalystRatings, error) {
	return nil, ErrNotSupported
}

// --- Internal helpers ---

// fetchFeed parses one feed and applies the title filters.
func (f *Feeds) fetchFeed(ctx context.Context, src FeedSource, cutoff time.Time) ([]models.Headline, error) {
	if f.c.limiter != nil {
		if err := f.c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	// gofeed.Parser keeps per-format state; one per fetch.
	parser := gofeed.NewParser()
	parser.Client = f.c.http
	parser.UserAgent = DefaultUserAgent

	feed, err := parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse RSS %s: %w", src.Name, err)
	}

	out := make([]models.Headline, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" || !keepTitle(title) {
			continue
		}

		var published int64
		if at := item.PublishedParsed; at != nil {
			if at.Before(cutoff) {
				continue
			}
			published = at.Unix()
		}

		link := strings.TrimSpace(item.Link)
		if !strings.HasPrefix(link, "http") && strings.HasPrefix(item.GUID, "http") {
			link = strings.TrimSpace(item.GUID)
		}

		out = append(out, models.Headline{
			Title:     title,
			Source:    src.Name,
			Link:      link,
			Published: published,
			Summary:   utils.Truncate(cleanHTML(item.Description), models.MaxNewsSummaryRunes),
		})
	}
	return out, nil
}

// keepTitle drops off-topic titles and keeps those with a finance keyword.
func keepTitle(title string) bool {
	lower := strings.ToLower(title)
	if matchesAny(lower, rejectKeywords) {
		return false
	}
	return matchesAny(lower, financeKeywords)
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// tickerKeywords returns search keywords for a base symbol.
// For example, "RELIANCE" → ["reliance", "reliance industries", "ril"].
func tickerKeywords(ticker string) []string {
	t := strings.ToLower(ticker)
	keywords := []string{t}

	nameMap := map[string][]string{
		"reliance":   {"reliance industries", "ril", "mukesh ambani"},
		"tcs":        {"tata consultancy"},
		"hdfcbank":   {"hdfc bank"},
		"infy":       {"infosys"},
		"icicibank":  {"icici bank"},
		"hindunilvr": {"hindustan unilever", "hul"},
		"sbin":       {"sbi", "state bank"},
		"bhartiartl": {"bharti airtel", "airtel"},
		"kotakbank":  {"kotak mahindra", "kotak bank"},
		"lt":         {"larsen", "l&t"},
		"bajfinance": {"bajaj finance"},
		"axisbank":   {"axis bank"},
		"maruti":     {"maruti suzuki"},
		"tatamotors": {"tata motors"},
		"tatasteel":  {"tata steel"},
		"hcltech":    {"hcl tech", "hcl technologies"},
		"asianpaint": {"asian paints"},
		"sunpharma":  {"sun pharma", "sun pharmaceutical"},
		"ongc":       {"oil and natural gas"},
		"aapl":       {"apple"},
		"msft":       {"microsoft"},
		"googl":      {"google", "alphabet"},
		"amzn":       {"amazon"},
		"tsla":       {"tesla"},
		"nvda":       {"nvidia"},
	}

	if extra, ok := nameMap[t]; ok {
		keywords = append(keywords, extra...)
	}
	return keywords
}

// matchesAny checks if text contains any of the keywords (case-insensitive).
func matchesAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
