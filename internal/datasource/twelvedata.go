package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // exchange_timezone needs the IANA database on minimal images

	"github.com/seenimoa/finassist/pkg/models"
	"github.com/seenimoa/finassist/pkg/utils"
)

const (
	twelveDataBaseURL = "https://api.twelvedata.com"
	twelveDataTimeout = 10 * time.Second

	// Free tier allows 8 requests per minute.
	twelveDataDefaultRPM = 8
)

// TwelveData is the licensed market-data API adapter. It serves domestic
// and foreign identifiers. Without an API key every call fails fast with
// ErrMissingAPIKey.
type TwelveData struct {
	c      *client
	apiKey string
}

// NewTwelveData creates a Twelve Data adapter.
func NewTwelveData(apiKey string, opts ...Option) *TwelveData {
	base := []Option{WithRateLimit(PerMinute(twelveDataDefaultRPM), twelveDataDefaultRPM)}
	return &TwelveData{
		c:      newClient(twelveDataBaseURL, twelveDataTimeout, append(base, opts...)),
		apiKey: strings.TrimSpace(apiKey),
	}
}

// Name returns the data source name.
func (t *TwelveData) Name() string { return "twelvedata" }

// --- Twelve Data response types ---

type tdEnvelope struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type tdQuote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Exchange      string    `json:"exchange"`
	Currency      string    `json:"currency"`
	Open          flexFloat `json:"open"`
	High          flexFloat `json:"high"`
	Low           flexFloat `json:"low"`
	Close         flexFloat `json:"close"`
	Volume        flexFloat `json:"volume"`
	PreviousClose flexFloat `json:"previous_close"`
	Change        flexFloat `json:"change"`
	PercentChange flexFloat `json:"percent_change"`
	AverageVolume flexFloat `json:"average_volume"`
}

type tdProfile struct {
	Symbol      string    `json:"symbol"`
	Name        string    `json:"name"`
	Exchange    string    `json:"exchange"`
	Sector      string    `json:"sector"`
	Industry    string    `json:"industry"`
	Employees   flexFloat `json:"employees"`
	Website     string    `json:"website"`
	Description string    `json:"description"`
	Country     string    `json:"country"`
	Currency    string    `json:"currency"`
}

type tdStatistics struct {
	Meta struct {
		Currency string `json:"currency"`
	} `json:"meta"`
	Statistics struct {
		ValuationsMetrics struct {
			MarketCapitalization flexFloat `json:"market_capitalization"`
			TrailingPE           flexFloat `json:"trailing_pe"`
			ForwardPE            flexFloat `json:"forward_pe"`
			PriceToBookMRQ       flexFloat `json:"price_to_book_mrq"`
			EnterpriseToEBITDA   flexFloat `json:"enterprise_to_ebitda"`
		} `json:"valuations_metrics"`
		Financials struct {
			GrossMargin       flexFloat `json:"gross_margin"`
			OperatingMargin   flexFloat `json:"operating_margin"`
			ProfitMargin      flexFloat `json:"profit_margin"`
			ReturnOnAssetsTTM flexFloat `json:"return_on_assets_ttm"`
			ReturnOnEquityTTM flexFloat `json:"return_on_equity_ttm"`
			IncomeStatement   struct {
				DilutedEPSTTM        flexFloat `json:"diluted_eps_ttm"`
				NetIncomeToCommonTTM flexFloat `json:"net_income_to_common_ttm"`
			} `json:"income_statement"`
			BalanceSheet struct {
				TotalCashMRQ         flexFloat `json:"total_cash_mrq"`
				TotalDebtMRQ         flexFloat `json:"total_debt_mrq"`
				TotalDebtToEquityMRQ flexFloat `json:"total_debt_to_equity_mrq"`
				CurrentRatioMRQ      flexFloat `json:"current_ratio_mrq"`
				BookValuePerShareMRQ flexFloat `json:"book_value_per_share_mrq"`
			} `json:"balance_sheet"`
			CashFlow struct {
				LeveredFreeCashFlowTTM flexFloat `json:"levered_free_cash_flow_ttm"`
			} `json:"cash_flow"`
		} `json:"financials"`
		StockPriceSummary struct {
			FiftyTwoWeekHigh flexFloat `json:"fifty_two_week_high"`
			FiftyTwoWeekLow  flexFloat `json:"fifty_two_week_low"`
			Beta             flexFloat `json:"beta"`
		} `json:"stock_price_summary"`
		DividendsAndSplits struct {
			ForwardAnnualDividendYield flexFloat `json:"forward_annual_dividend_yield"`
		} `json:"dividends_and_splits"`
	} `json:"statistics"`
}

type tdRating struct {
	Date          string `json:"date"`
	Firm          string `json:"firm"`
	RatingCurrent string `json:"rating_current"`
	Rating        string `json:"rating"`
	Action        string `json:"action"`
}

type tdRatingsResponse struct {
	Ratings []tdRating `json:"ratings"`
	Data    []tdRating `json:"data"`
}

type tdPriceTargetResponse struct {
	PriceTarget *struct {
		High    flexFloat `json:"high"`
		Median  flexFloat `json:"median"`
		Low     flexFloat `json:"low"`
		Average flexFloat `json:"average"`
	} `json:"price_target"`
	Data []struct {
		PriceTarget flexFloat `json:"price_target"`
	} `json:"data"`
}

type tdNewsItem struct {
	Title        string          `json:"title"`
	Source       string          `json:"source"`
	URL          string          `json:"url"`
	Datetime     json.RawMessage `json:"datetime"`
	PublishedUTC json.RawMessage `json:"published_utc"`
	Summary      string          `json:"summary"`
	Description  string          `json:"description"`
}

type tdTimeSeries struct {
	Meta struct {
		Symbol           string `json:"symbol"`
		Interval         string `json:"interval"`
		ExchangeTimezone string `json:"exchange_timezone"`
	} `json:"meta"`
	Values []struct {
		Datetime string    `json:"datetime"`
		Open     flexFloat `json:"open"`
		High     flexFloat `json:"high"`
		Low      flexFloat `json:"low"`
		Close    flexFloat `json:"close"`
		Volume   flexFloat `json:"volume"`
	} `json:"values"`
}

// --- Provider methods ---

// Quote returns a real-time quote.
func (t *TwelveData) Quote(ctx context.Context, id string) (*models.Quote, error) {
	var q tdQuote
	if err := t.get(ctx, "quote", id, nil, &q); err != nil {
		return nil, err
	}
	if q.Close.Positive() == nil {
		return nil, fmt.Errorf("twelvedata quote %s: %w", id, ErrEmpty)
	}
	return &models.Quote{
		Symbol:    id,
		Current:   q.Close.Ptr(),
		Change:    q.Change.Ptr(),
		ChangePct: q.PercentChange.Ptr(),
		Open:      q.Open.Ptr(),
		High:      q.High.Ptr(),
		Low:       q.Low.Ptr(),
		PrevClose: q.PreviousClose.Ptr(),
		Volume:    q.Volume.Int64(),
		AvgVolume: q.AverageVolume.Int64(),
		Currency:  firstNonEmpty(q.Currency, "USD"),
		Source:    t.Name(),
	}, nil
}

// Profile returns the company profile including a description.
func (t *TwelveData) Profile(ctx context.Context, id string) (*models.Profile, error) {
	var p tdProfile
	if err := t.get(ctx, "profile", id, nil, &p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("twelvedata profile %s: %w", id, ErrEmpty)
	}
	out := &models.Profile{
		Symbol:      id,
		Name:        p.Name,
		Exchange:    p.Exchange,
		Sector:      p.Sector,
		Industry:    p.Industry,
		Country:     p.Country,
		Currency:    p.Currency,
		Website:     p.Website,
		Description: cleanHTML(p.Description),
		Employees:   p.Employees.Int64(),
		Source:      t.Name(),
	}
	out.Finish()
	return out, nil
}

// Metrics maps the statistics endpoint onto Metrics. Margins and returns
// arrive as fractions and are converted to percent.
func (t *TwelveData) Metrics(ctx context.Context, id string) (*models.Metrics, error) {
	var s tdStatistics
	if err := t.get(ctx, "statistics", id, nil, &s); err != nil {
		return nil, err
	}
	st := s.Statistics
	fin := st.Financials
	m := &models.Metrics{
		Symbol:           id,
		PERatio:          st.ValuationsMetrics.TrailingPE.Ptr(),
		PEForward:        st.ValuationsMetrics.ForwardPE.Ptr(),
		PriceToBook:      st.ValuationsMetrics.PriceToBookMRQ.Ptr(),
		EVEBITDA:         st.ValuationsMetrics.EnterpriseToEBITDA.Ptr(),
		MarketCap:        st.ValuationsMetrics.MarketCapitalization.Positive(),
		EPSTTM:           fin.IncomeStatement.DilutedEPSTTM.Ptr(),
		BookValue:        fin.BalanceSheet.BookValuePerShareMRQ.Ptr(),
		DividendYield:    st.DividendsAndSplits.ForwardAnnualDividendYield.Percent(),
		GrossMargins:     fin.GrossMargin.Percent(),
		OperatingMargins: fin.OperatingMargin.Percent(),
		ProfitMargins:    fin.ProfitMargin.Percent(),
		ROE:              fin.ReturnOnEquityTTM.Percent(),
		ROA:              fin.ReturnOnAssetsTTM.Percent(),
		DebtEquity:       fin.BalanceSheet.TotalDebtToEquityMRQ.Ptr(),
		CurrentRatio:     fin.BalanceSheet.CurrentRatioMRQ.Ptr(),
		Week52High:       st.StockPriceSummary.FiftyTwoWeekHigh.Positive(),
		Week52Low:        st.StockPriceSummary.FiftyTwoWeekLow.Positive(),
		Beta:             st.StockPriceSummary.Beta.Ptr(),
		FreeCashflow:     fin.CashFlow.LeveredFreeCashFlowTTM.Ptr(),
		TotalCash:        fin.BalanceSheet.TotalCashMRQ.Ptr(),
		TotalDebt:        fin.BalanceSheet.TotalDebtMRQ.Ptr(),
		NetIncome:        fin.IncomeStatement.NetIncomeToCommonTTM.Ptr(),
	}
	for _, p := range []**float64{&m.DividendYield, &m.GrossMargins, &m.OperatingMargins, &m.ProfitMargins, &m.ROE, &m.ROA} {
		*p = utils.RoundPtr(*p, 2)
	}
	if m.IsEmpty() {
		return nil, fmt.Errorf("twelvedata statistics %s: %w", id, ErrEmpty)
	}
	m.AddSource(t.Name())
	return m, nil
}

// Candles returns bars from time_series in ascending order.
func (t *TwelveData) Candles(ctx context.Context, id string, w models.Window) ([]models.Candle, error) {
	q := url.Values{
		"interval":   {w.Interval},
		"outputsize": {"5000"},
		"order":      {"ASC"},
	}
	if !w.Full {
		q.Set("start_date", w.Start.Format("2006-01-02"))
		q.Set("end_date", w.End.Format("2006-01-02"))
	}

	var ts tdTimeSeries
	if err := t.get(ctx, "time_series", id, q, &ts); err != nil {
		return nil, err
	}

	loc := time.UTC
	if tz := ts.Meta.ExchangeTimezone; tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	candles := make([]models.Candle, 0, len(ts.Values))
	for _, v := range ts.Values {
		at, ok := parseTDDatetime(v.Datetime, loc)
		if !ok || !v.Close.Valid {
			continue
		}
		candles = append(candles, models.Candle{
			Time:   at.Unix(),
			Open:   utils.Round(v.Open.Val, 2),
			High:   utils.Round(v.High.Val, 2),
			Low:    utils.Round(v.Low.Val, 2),
			Close:  utils.Round(v.Close.Val, 2),
			Volume: int64(v.Volume.Val),
		})
	}
	return candles, nil
}

// News returns recent articles for the symbol.
func (t *TwelveData) News(ctx context.Context, id string, limit int) ([]models.NewsArticle, error) {
	if limit <= 0 {
		limit = models.MaxNewsArticles
	}
	q := url.Values{"outputsize": {strconv.Itoa(limit)}}

	var raw json.RawMessage
	if err := t.get(ctx, "news", id, q, &raw); err != nil {
		return nil, err
	}

	var items []tdNewsItem
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode news: %w", err)
		}
	} else {
		var wrapped struct {
			Data []tdNewsItem `json:"data"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("decode news: %w", err)
		}
		items = wrapped.Data
	}

	out := make([]models.NewsArticle, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Title) == "" {
			continue
		}
		ts := parseFlexTime(it.Datetime)
		if ts == 0 {
			ts = parseFlexTime(it.PublishedUTC)
		}
		out = append(out, models.NewsArticle{
			Headline: strings.TrimSpace(it.Title),
			Source:   it.Source,
			URL:      it.URL,
			Datetime: ts,
			Summary:  utils.Truncate(cleanHTML(firstNonEmpty(it.Summary, it.Description)), models.MaxNewsSummaryRunes),
		})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// Analyst merges the light ratings list with the price-target summary.
// Either half may fail on its own.
func (t *TwelveData) Analyst(ctx context.Context, id string) (*models.AnalystRatings, error) {
	out := &models.AnalystRatings{}

	var rr tdRatingsResponse
	ratingsErr := t.get(ctx, "analyst_ratings/light", id, url.Values{"outputsize": {"10"}}, &rr)
	if ratingsErr == nil {
		rows := rr.Ratings
		if len(rows) == 0 {
			rows = rr.Data
		}
		for _, r := range rows {
			rating := firstNonEmpty(r.RatingCurrent, r.Rating, r.Action)
			if rating == "" {
				continue
			}
			out.Ratings = append(out.Ratings, models.Rating{
				Firm:   r.Firm,
				Rating: rating,
				Action: r.Action,
				Date:   r.Date,
			})
		}
	}

	var pt tdPriceTargetResponse
	targetErr := t.get(ctx, "price_target", id, nil, &pt)
	if targetErr == nil {
		for _, d := range pt.Data {
			if v := d.PriceTarget.Positive(); v != nil {
				out.Targets = append(out.Targets, *v)
			}
		}
		if s := pt.PriceTarget; s != nil {
			out.TargetMean = s.Average.Positive()
			if out.TargetMean == nil {
				out.TargetMean = s.Median.Positive()
			}
			out.TargetHigh = s.High.Positive()
			out.TargetLow = s.Low.Positive()
		}
	}

	if ratingsErr != nil && targetErr != nil {
		return nil, ratingsErr
	}
	if !out.HasData() {
		return nil, fmt.Errorf("twelvedata analyst %s: %w", id, ErrEmpty)
	}
	return out, nil
}

// --- Internal helpers ---

// get calls endpoint for id and decodes into v, translating the vendor's
// in-band error envelope.
func (t *TwelveData) get(ctx context.Context, endpoint, id string, extra url.Values, v any) error {
	if t.apiKey == "" {
		return fmt.Errorf("twelvedata: TWELVE_DATA_KEY: %w", ErrMissingAPIKey)
	}

	q := url.Values{}
	for k, vals := range extra {
		q[k] = vals
	}
	q.Set("symbol", utils.ToTwelveData(id))
	q.Set("apikey", t.apiKey)

	data, err := t.c.get(ctx, endpoint, q, nil)
	if err != nil {
		return fmt.Errorf("twelvedata %s %s: %w", endpoint, id, err)
	}
	if err := tdCheckEnvelope(data); err != nil {
		return fmt.Errorf("twelvedata %s %s: %w", endpoint, id, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("twelvedata %s %s: decode: %w", endpoint, id, err)
	}
	return nil
}

// tdCheckEnvelope reports an error for {"status":"error",...} bodies, which
// Twelve Data sends with HTTP 200.
func tdCheckEnvelope(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var env tdEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil || env.Status != "error" {
		return nil
	}
	switch env.Code {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, env.Message)
	case http.StatusNotFound, http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrSymbolNotFound, env.Message)
	}
	return &ErrHTTP{StatusCode: env.Code, Status: "error", Body: env.Message}
}

func parseTDDatetime(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(s), loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseFlexTime accepts unix seconds (number or string) or an ISO-8601
// timestamp and returns unix seconds, or 0.
func parseFlexTime(raw json.RawMessage) int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
	} else {
		s = string(raw)
	}
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(n)
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix()
		}
	}
	return 0
}
