package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/seenimoa/finassist/pkg/models"
	"github.com/seenimoa/finassist/pkg/utils"
)

const (
	nseBaseURL     = "https://www.nseindia.com"
	nseCookieTTL   = 5 * time.Minute
	nseDefaultRate = 3 // max requests per second
	nseTimeout     = 10 * time.Second
)

// NSE scrapes the public NSE India JSON API. It only serves domestic
// identifiers and needs a warmed cookie session.
type NSE struct {
	c            *client
	cookieTTL    time.Duration
	mu           sync.Mutex
	cookieExpiry time.Time
}

// NewNSE creates a new NSE India data source.
func NewNSE(cookieTTL time.Duration, opts ...Option) *NSE {
	base := []Option{WithRateLimit(rate.Limit(nseDefaultRate), nseDefaultRate)}
	c := newClient(nseBaseURL, nseTimeout, append(base, opts...))
	if c.http.Jar == nil {
		jar, _ := cookiejar.New(nil)
		hc := *c.http
		hc.Jar = jar
		c.http = &hc
	}
	c.headers["Referer"] = nseBaseURL + "/"
	c.headers["X-Requested-With"] = "XMLHttpRequest"
	c.headers["Accept"] = "application/json, text/plain, */*"

	if cookieTTL <= 0 {
		cookieTTL = nseCookieTTL
	}
	return &NSE{c: c, cookieTTL: cookieTTL}
}

// Name returns the data source name.
func (n *NSE) Name() string { return "nse" }

// --- NSE JSON response types ---

type nseQuoteResponse struct {
	Info         nseStockInfo    `json:"info"`
	Metadata     nseMetadata     `json:"metadata"`
	IndustryInfo nseIndustryInfo `json:"industryInfo"`
	PriceInfo    nsePriceInfo    `json:"priceInfo"`
}

type nseStockInfo struct {
	Symbol      string `json:"symbol"`
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
}

type nseMetadata struct {
	Symbol     string    `json:"symbol"`
	Industry   string    `json:"industry"`
	PdSymbolPe flexFloat `json:"pdSymbolPe"`
}

type nseIndustryInfo struct {
	Macro         string `json:"macro"`
	Sector        string `json:"sector"`
	Industry      string `json:"industry"`
	BasicIndustry string `json:"basicIndustry"`
}

type nsePriceInfo struct {
	LastPrice         flexFloat  `json:"lastPrice"`
	Change            flexFloat  `json:"change"`
	PChange           flexFloat  `json:"pChange"`
	Open              flexFloat  `json:"open"`
	PreviousClose     flexFloat  `json:"previousClose"`
	IntraDayHighLow   nseHighLow `json:"intraDayHighLow"`
	PdHighLow         nseHighLow `json:"pdHighLow"`
	WeekHighLow       nseHighLow `json:"weekHighLow"`
	TotalTradedVolume flexFloat  `json:"totalTradedVolume"`

	// Present on the trade_info section.
	PE        flexFloat `json:"pe"`
	EPS       flexFloat `json:"eps"`
	PB        flexFloat `json:"pb"`
	DivYield  flexFloat `json:"divYield"`
	BookValue flexFloat `json:"bookValue"`
}

type nseHighLow struct {
	Min flexFloat `json:"min"`
	Max flexFloat `json:"max"`
}

type nseTradeInfoResponse struct {
	PriceInfo           nsePriceInfo `json:"priceInfo"`
	MarketDeptOrderBook struct {
		TradeInfo struct {
			TotalTradedVolume flexFloat `json:"totalTradedVolume"`
			TotalMarketCap    flexFloat `json:"totalMarketCap"` // ₹ crore
		} `json:"tradeInfo"`
	} `json:"marketDeptOrderBook"`
}

// nseHistEntry represents a single historical data row from NSE.
type nseHistEntry struct {
	Timestamp  string    `json:"CH_TIMESTAMP"`
	MTimestamp string    `json:"mTIMESTAMP"`
	Open       flexFloat `json:"CH_OPENING_PRICE"`
	High       flexFloat `json:"CH_TRADE_HIGH_PRICE"`
	Low        flexFloat `json:"CH_TRADE_LOW_PRICE"`
	Close      flexFloat `json:"CH_CLOSING_PRICE"`
	Volume     flexFloat `json:"CH_TOT_TRADED_QTY"`
}

type nseIndexRow struct {
	Index         string    `json:"index"`
	IndexSymbol   string    `json:"indexSymbol"`
	Last          flexFloat `json:"last"`
	Variation     flexFloat `json:"variation"`
	PercentChange flexFloat `json:"percentChange"`
}

type nseConstituentRow struct {
	Symbol            string    `json:"symbol"`
	LastPrice         flexFloat `json:"lastPrice"`
	Change            flexFloat `json:"change"`
	PChange           flexFloat `json:"pChange"`
	TotalTradedVolume flexFloat `json:"totalTradedVolume"`
}

// --- Provider methods ---

// Quote returns the live NSE quote.
func (n *NSE) Quote(ctx context.Context, id string) (*models.Quote, error) {
	resp, err := n.quoteEquity(ctx, id)
	if err != nil {
		return nil, err
	}
	pi := resp.PriceInfo
	if pi.LastPrice.Positive() == nil {
		return nil, fmt.Errorf("nse quote %s: %w", id, ErrEmpty)
	}

	high, low := pi.IntraDayHighLow.Max, pi.IntraDayHighLow.Min
	if !high.Valid || high.Val == 0 {
		high = pi.PdHighLow.Max
	}
	if !low.Valid || low.Val == 0 {
		low = pi.PdHighLow.Min
	}

	return &models.Quote{
		Symbol:    id,
		Current:   pi.LastPrice.Ptr(),
		Change:    pi.Change.Ptr(),
		ChangePct: pi.PChange.Ptr(),
		Open:      pi.Open.Ptr(),
		High:      high.Ptr(),
		Low:       low.Ptr(),
		PrevClose: pi.PreviousClose.Ptr(),
		Volume:    pi.TotalTradedVolume.Int64(),
		Currency:  "INR",
		Source:    n.Name(),
	}, nil
}

// Profile returns company name and classification from NSE.
func (n *NSE) Profile(ctx context.Context, id string) (*models.Profile, error) {
	resp, err := n.quoteEquity(ctx, id)
	if err != nil {
		return nil, err
	}
	if resp.Info.CompanyName == "" {
		return nil, fmt.Errorf("nse profile %s: %w", id, ErrEmpty)
	}
	return &models.Profile{
		Symbol:   id,
		Name:     resp.Info.CompanyName,
		Exchange: "NSE",
		Sector:   resp.IndustryInfo.Sector,
		Industry: firstNonEmpty(resp.IndustryInfo.Industry, resp.IndustryInfo.BasicIndustry, resp.Info.Industry),
		Country:  "India",
		Currency: "INR",
		Source:   n.Name(),
	}, nil
}

// Metrics combines the quote page (52-week range, symbol P/E) with the
// trade_info section (P/E, EPS, P/B, yield, book value, market cap).
func (n *NSE) Metrics(ctx context.Context, id string) (*models.Metrics, error) {
	resp, err := n.quoteEquity(ctx, id)
	if err != nil {
		return nil, err
	}

	m := &models.Metrics{
		Symbol:     id,
		PERatio:    resp.Metadata.PdSymbolPe.Ptr(),
		Week52High: resp.PriceInfo.WeekHighLow.Max.Positive(),
		Week52Low:  resp.PriceInfo.WeekHighLow.Min.Positive(),
	}

	var ti nseTradeInfoResponse
	q := url.Values{"symbol": {utils.BaseSymbol(id)}, "section": {"trade_info"}}
	if err := n.nseGet(ctx, "/api/quote-equity", q, &ti); err == nil {
		m.Overlay(&models.Metrics{
			PERatio:       ti.PriceInfo.PE.Ptr(),
			EPSTTM:        ti.PriceInfo.EPS.Ptr(),
			PriceToBook:   ti.PriceInfo.PB.Ptr(),
			DividendYield: ti.PriceInfo.DivYield.Ptr(),
			BookValue:     ti.PriceInfo.BookValue.Ptr(),
		})
		if mc := ti.MarketDeptOrderBook.TradeInfo.TotalMarketCap.Positive(); mc != nil {
			v := *mc * 1e7
			m.MarketCap = &v
		}
	}

	if m.IsEmpty() {
		return nil, fmt.Errorf("nse metrics %s: %w", id, ErrEmpty)
	}
	m.AddSource(n.Name())
	return m, nil
}

// Candles returns daily bars from the NSE historical endpoint. Other
// intervals and full-history windows are not supported.
func (n *NSE) Candles(ctx context.Context, id string, w models.Window) ([]models.Candle, error) {
	if w.Full || w.Interval != models.Interval1Day {
		return nil, ErrNotSupported
	}
	if !utils.IsDomestic(id) {
		return nil, ErrNotSupported
	}

	q := url.Values{
		"symbol": {utils.BaseSymbol(id)},
		"series": {`["EQ"]`},
		"from":   {w.Start.In(utils.IST).Format("02-01-2006")},
		"to":     {w.End.In(utils.IST).Format("02-01-2006")},
	}
	var resp struct {
		Data []nseHistEntry `json:"data"`
	}
	if err := n.nseGet(ctx, "/api/historical/cm/equity", q, &resp); err != nil {
		return nil, fmt.Errorf("nse historical %s: %w", id, err)
	}

	candles := make([]models.Candle, 0, len(resp.Data))
	for _, e := range resp.Data {
		ts, ok := parseNSEDate(e.Timestamp, e.MTimestamp)
		if !ok || !e.Close.Valid {
			continue
		}
		candles = append(candles, models.Candle{
			Time:   ts.Unix(),
			Open:   utils.Round(e.Open.Val, 2),
			High:   utils.Round(e.High.Val, 2),
			Low:    utils.Round(e.Low.Val, 2),
			Close:  utils.Round(e.Close.Val, 2),
			Volume: int64(e.Volume.Val),
		})
	}
	return candles, nil
}

// News is not served by NSE.
func (n *NSE) News(context.Context, string, int) ([]models.NewsArticle, error) {
	return nil, ErrNotSupported
}

// Analyst is not served by NSE.
func (n *NSE) Analyst(context.Context, string) (*models.AnalystRatings, error) {
	return nil, ErrNotSupported
}

// --- Additional NSE-specific methods (not part of Provider interface) ---

// Indices returns every index from /api/allIndices keyed by upper-cased name.
func (n *NSE) Indices(ctx context.Context) (map[string]models.IndexValue, error) {
	var resp struct {
		Data []nseIndexRow `json:"data"`
	}
	if err := n.nseGet(ctx, "/api/allIndices", nil, &resp); err != nil {
		return nil, fmt.Errorf("nse allIndices: %w", err)
	}

	out := make(map[string]models.IndexValue, len(resp.Data))
	for _, row := range resp.Data {
		name := strings.ToUpper(firstNonEmpty(row.IndexSymbol, row.Index))
		if name == "" || row.Last.Positive() == nil {
			continue
		}
		out[name] = models.IndexValue{
			Name:   name,
			Value:  utils.Round(row.Last.Val, 2),
			Change: utils.RoundPtr(row.Variation.Ptr(), 2),
			Pct:    utils.RoundPtr(row.PercentChange.Ptr(), 2),
			Source: n.Name(),
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("nse allIndices: %w", ErrEmpty)
	}
	return out, nil
}

// IndexConstituents returns per-stock rows for an index such as "NIFTY 50".
// The first row is the index itself and is skipped.
func (n *NSE) IndexConstituents(ctx context.Context, index string) ([]models.Mover, error) {
	var resp struct {
		Data []nseConstituentRow `json:"data"`
	}
	if err := n.nseGet(ctx, "/api/equity-stockIndices", url.Values{"index": {index}}, &resp); err != nil {
		return nil, fmt.Errorf("nse constituents %s: %w", index, err)
	}
	if len(resp.Data) < 2 {
		return nil, fmt.Errorf("nse constituents %s: %w", index, ErrEmpty)
	}

	out := make([]models.Mover, 0, len(resp.Data)-1)
	for _, row := range resp.Data[1:] {
		if row.Symbol == "" {
			continue
		}
		out = append(out, models.Mover{
			Symbol:  row.Symbol,
			Price:   utils.Round(row.LastPrice.Val, 2),
			Change:  utils.Round(row.Change.Val, 2),
			PChange: utils.Round(row.PChange.Val, 2),
			Volume:  int64(row.TotalTradedVolume.Val),
		})
	}
	return out, nil
}

// --- Internal helpers ---

func (n *NSE) quoteEquity(ctx context.Context, id string) (*nseQuoteResponse, error) {
	if !utils.IsDomestic(id) {
		return nil, ErrNotSupported
	}
	var resp nseQuoteResponse
	q := url.Values{"symbol": {utils.BaseSymbol(id)}}
	if err := n.nseGet(ctx, "/api/quote-equity", q, &resp); err != nil {
		return nil, fmt.Errorf("nse quote-equity %s: %w", id, err)
	}
	return &resp, nil
}

// ensureCookies visits the NSE homepage to get session cookies.
// NSE requires valid cookies for API access.
func (n *NSE) ensureCookies(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if time.Now().Before(n.cookieExpiry) {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := n.c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch NSE homepage for cookies: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody)) //nolint:errcheck // drain body

	if resp.StatusCode >= 400 {
		return &ErrHTTP{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode), Body: "homepage"}
	}
	n.cookieExpiry = time.Now().Add(n.cookieTTL)
	return nil
}

// invalidateCookies forces the next request to warm a fresh session.
func (n *NSE) invalidateCookies() {
	n.mu.Lock()
	n.cookieExpiry = time.Time{}
	n.mu.Unlock()
}

// nseGet performs a GET request to the NSE API with a warmed session.
func (n *NSE) nseGet(ctx context.Context, path string, query url.Values, v any) error {
	if err := n.ensureCookies(ctx); err != nil {
		return fmt.Errorf("NSE cookie refresh: %w", err)
	}
	err := n.c.getJSON(ctx, path, query, nil, v)
	var httpErr *ErrHTTP
	if errors.As(err, &httpErr) &&
		(httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden) {
		n.invalidateCookies()
	}
	return err
}

// parseNSEDate accepts "2006-01-02" (CH_TIMESTAMP) or "02-Jan-2006" (mTIMESTAMP).
func parseNSEDate(vals ...string) (time.Time, bool) {
	for _, v := range vals {
		for _, layout := range []string{"2006-01-02", "02-Jan-2006"} {
			if t, err := time.ParseInLocation(layout, strings.TrimSpace(v), utils.IST); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
