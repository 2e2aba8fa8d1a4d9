package datasource

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/seenimoa/finassist/pkg/models"
	"github.com/seenimoa/finassist/pkg/utils"
)

const (
	yahooBaseURL     = "https://query1.finance.yahoo.com"
	yahooTimeout     = 10 * time.Second
	yahooDefaultRate = 5 // max requests per second

	troyOunceGrams = 31.1035
)

// YFinance is the key-less Yahoo Finance fallback adapter. Identifiers are
// already in Yahoo notation (RELIANCE.NS, AAPL, ^NSEI, GC=F).
type YFinance struct {
	c *client
}

// NewYFinance creates a new Yahoo Finance data source.
func NewYFinance(opts ...Option) *YFinance {
	base := []Option{WithRateLimit(rate.Limit(yahooDefaultRate), yahooDefaultRate)}
	return &YFinance{c: newClient(yahooBaseURL, yahooTimeout, append(base, opts...))}
}

// Name returns the data source name.
func (y *YFinance) Name() string { return "yahoo" }

// --- Yahoo Finance API types ---

type yfChartResponse struct {
	Chart struct {
		Result []yfChartResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"chart"`
}

type yfChartResult struct {
	Meta       yfChartMeta  `json:"meta"`
	Timestamp  []int64      `json:"timestamp"`
	Indicators yfIndicators `json:"indicators"`
}

type yfChartMeta struct {
	Symbol               string    `json:"symbol"`
	Currency             string    `json:"currency"`
	RegularMarketPrice   flexFloat `json:"regularMarketPrice"`
	ChartPreviousClose   flexFloat `json:"chartPreviousClose"`
	PreviousClose        flexFloat `json:"previousClose"`
	RegularMarketDayHigh flexFloat `json:"regularMarketDayHigh"`
	RegularMarketDayLow  flexFloat `json:"regularMarketDayLow"`
	RegularMarketVolume  flexFloat `json:"regularMarketVolume"`
}

type yfIndicators struct {
	Quote []yfOHLCV `json:"quote"`
}

type yfOHLCV struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

type yfSummaryResponse struct {
	QuoteSummary struct {
		Result []yfSummaryResult `json:"result"`
		Error  *yfError          `json:"error"`
	} `json:"quoteSummary"`
}

type yfSummaryResult struct {
	AssetProfile *struct {
		Sector              string    `json:"sector"`
		Industry            string    `json:"industry"`
		Country             string    `json:"country"`
		Website             string    `json:"website"`
		LongBusinessSummary string    `json:"longBusinessSummary"`
		FullTimeEmployees   flexFloat `json:"fullTimeEmployees"`
	} `json:"assetProfile"`
	Price *struct {
		LongName     string    `json:"longName"`
		ShortName    string    `json:"shortName"`
		ExchangeName string    `json:"exchangeName"`
		Currency     string    `json:"currency"`
		MarketCap    flexFloat `json:"marketCap"`
	} `json:"price"`
	FinancialData *struct {
		TargetHighPrice         flexFloat `json:"targetHighPrice"`
		TargetLowPrice          flexFloat `json:"targetLowPrice"`
		TargetMeanPrice         flexFloat `json:"targetMeanPrice"`
		RecommendationKey       string    `json:"recommendationKey"`
		NumberOfAnalystOpinions flexFloat `json:"numberOfAnalystOpinions"`
		TotalCash               flexFloat `json:"totalCash"`
		TotalDebt               flexFloat `json:"totalDebt"`
		DebtToEquity            flexFloat `json:"debtToEquity"`
		CurrentRatio            flexFloat `json:"currentRatio"`
		QuickRatio              flexFloat `json:"quickRatio"`
		ReturnOnAssets          flexFloat `json:"returnOnAssets"`
		ReturnOnEquity          flexFloat `json:"returnOnEquity"`
		GrossMargins            flexFloat `json:"grossMargins"`
		OperatingMargins        flexFloat `json:"operatingMargins"`
		ProfitMargins           flexFloat `json:"profitMargins"`
		FreeCashflow            flexFloat `json:"freeCashflow"`
	} `json:"financialData"`
	DefaultKeyStatistics *struct {
		ForwardPE          flexFloat `json:"forwardPE"`
		TrailingEps        flexFloat `json:"trailingEps"`
		ForwardEps         flexFloat `json:"forwardEps"`
		PriceToBook        flexFloat `json:"priceToBook"`
		BookValue          flexFloat `json:"bookValue"`
		Beta               flexFloat `json:"beta"`
		EnterpriseToEbitda flexFloat `json:"enterpriseToEbitda"`
	} `json:"defaultKeyStatistics"`
	SummaryDetail *struct {
		TrailingPE       flexFloat `json:"trailingPE"`
		DividendYield    flexFloat `json:"dividendYield"`
		MarketCap        flexFloat `json:"marketCap"`
		FiftyTwoWeekHigh flexFloat `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow  flexFloat `json:"fiftyTwoWeekLow"`
		Beta             flexFloat `json:"beta"`
	} `json:"summaryDetail"`
	IncomeStatementHistory *struct {
		Statements []struct {
			NetIncome flexFloat `json:"netIncome"`
		} `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`
	BalanceSheetHistory *struct {
		Statements []struct {
			TotalStockholderEquity flexFloat `json:"totalStockholderEquity"`
		} `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistory"`
	UpgradeDowngradeHistory *struct {
		History []struct {
			EpochGradeDate int64  `json:"epochGradeDate"`
			Firm           string `json:"firm"`
			ToGrade        string `json:"toGrade"`
			FromGrade      string `json:"fromGrade"`
			Action         string `json:"action"`
		} `json:"history"`
	} `json:"upgradeDowngradeHistory"`
}

type yfSearchResponse struct {
	News []struct {
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// --- Provider methods ---

// Quote returns the latest price from the 5-day daily chart.
func (y *YFinance) Quote(ctx context.Context, id string) (*models.Quote, error) {
	res, err := y.chart(ctx, id, url.Values{"range": {"5d"}, "interval": {"1d"}})
	if err != nil {
		return nil, err
	}
	meta := res.Meta
	if meta.RegularMarketPrice.Positive() == nil {
		return nil, fmt.Errorf("yfinance quote %s: %w", id, ErrEmpty)
	}

	// chartPreviousClose is the close before the first bar of the range,
	// so it only means yesterday when the chart holds a single bar.
	candles := parseYFCandles(res)
	var prev *float64
	if n := len(candles); n >= 2 {
		prev = utils.PositiveFloat(candles[n-2].Close)
	}
	if prev == nil {
		prev = meta.PreviousClose.Positive()
	}
	if prev == nil && len(candles) <= 1 {
		prev = meta.ChartPreviousClose.Positive()
	}

	q := &models.Quote{
		Symbol:    id,
		Current:   meta.RegularMarketPrice.Ptr(),
		High:      meta.RegularMarketDayHigh.Positive(),
		Low:       meta.RegularMarketDayLow.Positive(),
		PrevClose: prev,
		Volume:    meta.RegularMarketVolume.Int64(),
		Currency:  firstNonEmpty(meta.Currency, "USD"),
		Source:    y.Name(),
	}
	if n := len(candles); n > 0 {
		q.Open = utils.PositiveFloat(candles[n-1].Open)
	}
	return q, nil
}

// Profile returns name, classification and business summary.
func (y *YFinance) Profile(ctx context.Context, id string) (*models.Profile, error) {
	res, err := y.summary(ctx, id, "assetProfile,price")
	if err != nil {
		return nil, err
	}

	p := &models.Profile{Symbol: id, Source: y.Name()}
	if pr := res.Price; pr != nil {
		p.Name = firstNonEmpty(pr.LongName, pr.ShortName)
		p.Exchange = pr.ExchangeName
		p.Currency = pr.Currency
		p.MarketCap = pr.MarketCap.Positive()
	}
	if ap := res.AssetProfile; ap != nil {
		p.Sector = ap.Sector
		p.Industry = ap.Industry
		p.Country = ap.Country
		p.Website = ap.Website
		p.Description = ap.LongBusinessSummary
		p.Employees = ap.FullTimeEmployees.Int64()
	}
	if !p.Usable() {
		return nil, fmt.Errorf("yfinance profile %s: %w", id, ErrEmpty)
	}
	p.Finish()
	return p, nil
}

// Metrics maps the financial summary modules onto Metrics, including the
// latest statement inputs used for ROE derivation.
func (y *YFinance) Metrics(ctx context.Context, id string) (*models.Metrics, error) {
	res, err := y.summary(ctx, id, "financialData,defaultKeyStatistics,summaryDetail,incomeStatementHistory,balanceSheetHistory")
	if err != nil {
		return nil, err
	}

	m := &models.Metrics{Symbol: id}
	if sd := res.SummaryDetail; sd != nil {
		m.PERatio = sd.TrailingPE.Ptr()
		m.DividendYield = utils.RoundPtr(sd.DividendYield.Percent(), 2)
		m.MarketCap = sd.MarketCap.Positive()
		m.Week52High = sd.FiftyTwoWeekHigh.Positive()
		m.Week52Low = sd.FiftyTwoWeekLow.Positive()
		m.Beta = sd.Beta.Ptr()
	}
	if ks := res.DefaultKeyStatistics; ks != nil {
		m.PEForward = ks.ForwardPE.Ptr()
		m.EPSTTM = ks.TrailingEps.Ptr()
		m.EPSForward = ks.ForwardEps.Ptr()
		m.PriceToBook = ks.PriceToBook.Ptr()
		m.BookValue = ks.BookValue.Ptr()
		m.EVEBITDA = ks.EnterpriseToEbitda.Ptr()
		if m.Beta == nil {
			m.Beta = ks.Beta.Ptr()
		}
	}
	if fd := res.FinancialData; fd != nil {
		m.GrossMargins = utils.RoundPtr(fd.GrossMargins.Percent(), 2)
		m.OperatingMargins = utils.RoundPtr(fd.OperatingMargins.Percent(), 2)
		m.ProfitMargins = utils.RoundPtr(fd.ProfitMargins.Percent(), 2)
		m.ROE = utils.RoundPtr(fd.ReturnOnEquity.Percent(), 2)
		m.ROA = utils.RoundPtr(fd.ReturnOnAssets.Percent(), 2)
		m.DebtEquity = fd.DebtToEquity.Ptr()
		m.CurrentRatio = fd.CurrentRatio.Ptr()
		m.QuickRatio = fd.QuickRatio.Ptr()
		m.FreeCashflow = fd.FreeCashflow.Ptr()
		m.TotalCash = fd.TotalCash.Ptr()
		m.TotalDebt = fd.TotalDebt.Ptr()
	}
	if is := res.IncomeStatementHistory; is != nil && len(is.Statements) > 0 {
		m.NetIncome = is.Statements[0].NetIncome.Ptr()
	}
	if bs := res.BalanceSheetHistory; bs != nil && len(bs.Statements) > 0 {
		m.ShareholderEquity = bs.Statements[0].TotalStockholderEquity.Ptr()
	}

	if m.IsEmpty() && (m.NetIncome == nil || m.ShareholderEquity == nil) {
		return nil, fmt.Errorf("yfinance metrics %s: %w", id, ErrEmpty)
	}
	m.AddSource(y.Name())
	return m, nil
}

// Candles returns chart bars for the window. Null bars are skipped.
func (y *YFinance) Candles(ctx context.Context, id string, w models.Window) ([]models.Candle, error) {
	q := url.Values{"interval": {yfInterval(w.Interval)}}
	if w.Full {
		q.Set("range", "max")
	} else {
		q.Set("period1", strconv.FormatInt(w.Start.Unix(), 10))
		q.Set("period2", strconv.FormatInt(w.End.Unix(), 10))
	}
	res, err := y.chart(ctx, id, q)
	if err != nil {
		return nil, err
	}
	return parseYFCandles(res), nil
}

// News returns recent articles from the search endpoint.
func (y *YFinance) News(ctx context.Context, id string, limit int) ([]models.NewsArticle, error) {
	if limit <= 0 {
		limit = models.MaxNewsArticles
	}
	q := url.Values{
		"q":           {id},
		"newsCount":   {strconv.Itoa(limit)},
		"quotesCount": {"0"},
	}
	var resp yfSearchResponse
	if err := y.c.getJSON(ctx, "/v1/finance/search", q, nil, &resp); err != nil {
		return nil, fmt.Errorf("yfinance news %s: %w", id, err)
	}

	out := make([]models.NewsArticle, 0, len(resp.News))
	for _, n := range resp.News {
		if strings.TrimSpace(n.Title) == "" {
			continue
		}
		out = append(out, models.NewsArticle{
			Headline: strings.TrimSpace(n.Title),
			Source:   n.Publisher,
			URL:      n.Link,
			Datetime: n.ProviderPublishTime,
		})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// Analyst returns the latest broker actions plus the target summary.
func (y *YFinance) Analyst(ctx context.Context, id string) (*models.AnalystRatings, error) {
	res, err := y.summary(ctx, id, "upgradeDowngradeHistory,financialData")
	if err != nil {
		return nil, err
	}

	out := &models.AnalystRatings{}
	if h := res.UpgradeDowngradeHistory; h != nil {
		for _, e := range h.History {
			if e.ToGrade == "" {
				continue
			}
			r := models.Rating{Firm: e.Firm, Rating: e.ToGrade, Action: e.Action}
			if e.EpochGradeDate > 0 {
				r.Date = time.Unix(e.EpochGradeDate, 0).UTC().Format("2006-01-02")
			}
			out.Ratings = append(out.Ratings, r)
			if len(out.Ratings) == 10 {
				break
			}
		}
	}
	if fd := res.FinancialData; fd != nil {
		out.RecommendationKey = fd.RecommendationKey
		out.TargetMean = fd.TargetMeanPrice.Positive()
		out.TargetHigh = fd.TargetHighPrice.Positive()
		out.TargetLow = fd.TargetLowPrice.Positive()
		if n := fd.NumberOfAnalystOpinions.Int64(); n != nil {
			out.AnalystCount = int(*n)
		}
	}
	if !out.HasData() {
		return nil, fmt.Errorf("yfinance analyst %s: %w", id, ErrEmpty)
	}
	return out, nil
}

// --- Additional Yahoo-specific methods (not part of Provider interface) ---

// Series returns daily bars for ticker over a Yahoo range such as "5d".
func (y *YFinance) Series(ctx context.Context, ticker, rangeStr string) ([]models.Candle, error) {
	res, err := y.chart(ctx, ticker, url.Values{"range": {rangeStr}, "interval": {"1d"}})
	if err != nil {
		return nil, err
	}
	candles := parseYFCandles(res)
	if len(candles) == 0 {
		return nil, fmt.Errorf("yfinance series %s: %w", ticker, ErrEmpty)
	}
	return candles, nil
}

// Commodity describes a USD-per-troy-ounce future and how to express it in INR.
type Commodity struct {
	Name   string
	Ticker string
	Unit   string
	Grams  float64 // grams per quoted INR unit
}

// Gold and Silver are the MCX-style boards: gold per 10 g, silver per kg.
var (
	Gold   = Commodity{Name: "Gold", Ticker: "GC=F", Unit: "per 10g", Grams: 10}
	Silver = Commodity{Name: "Silver", Ticker: "SI=F", Unit: "per kg", Grams: 1000}
)

// Commodity prices c in INR per unit using usdINR.
func (y *YFinance) Commodity(ctx context.Context, c Commodity, usdINR float64) (*models.MetalRate, error) {
	res, err := y.chart(ctx, c.Ticker, url.Values{"range": {"5d"}, "interval": {"1d"}})
	if err != nil {
		return nil, err
	}
	candles := parseYFCandles(res)

	usd := res.Meta.RegularMarketPrice.Val
	if usd <= 0 && len(candles) > 0 {
		usd = candles[len(candles)-1].Close
	}
	if usd <= 0 {
		return nil, fmt.Errorf("yfinance commodity %s: %w", c.Ticker, ErrEmpty)
	}
	prevUSD := usd
	if len(candles) >= 2 {
		prevUSD = candles[len(candles)-2].Close
	}

	toINR := func(v float64) float64 { return v / troyOunceGrams * usdINR * c.Grams }
	price := utils.Round(toINR(usd), 2)
	prev := utils.Round(toINR(prevUSD), 2)
	change := utils.Round(price-prev, 2)

	m := &models.MetalRate{
		Name:       c.Name,
		PriceINR:   price,
		PrevINR:    &prev,
		Change:     &change,
		PriceUSDOz: utils.Round(usd, 2),
		Unit:       c.Unit,
	}
	if prev != 0 {
		m.ChangePct = utils.Float(utils.Round(change/prev*100, 4))
	}
	return m, nil
}

// --- Helpers ---

func (y *YFinance) chart(ctx context.Context, ticker string, q url.Values) (yfChartResult, error) {
	var resp yfChartResponse
	path := "/v8/finance/chart/" + url.PathEscape(ticker)
	if err := y.c.getJSON(ctx, path, q, nil, &resp); err != nil {
		return yfChartResult{}, fmt.Errorf("yfinance chart %s: %w", ticker, err)
	}
	if e := resp.Chart.Error; e != nil {
		return yfChartResult{}, fmt.Errorf("yfinance chart %s: %w: %s", ticker, ErrSymbolNotFound, e.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return yfChartResult{}, fmt.Errorf("yfinance chart %s: %w", ticker, ErrSymbolNotFound)
	}
	return resp.Chart.Result[0], nil
}

func (y *YFinance) summary(ctx context.Context, ticker, modules string) (*yfSummaryResult, error) {
	var resp yfSummaryResponse
	path := "/v10/finance/quoteSummary/" + url.PathEscape(ticker)
	if err := y.c.getJSON(ctx, path, url.Values{"modules": {modules}}, nil, &resp); err != nil {
		return nil, fmt.Errorf("yfinance quoteSummary %s: %w", ticker, err)
	}
	if e := resp.QuoteSummary.Error; e != nil {
		return nil, fmt.Errorf("yfinance quoteSummary %s: %w: %s", ticker, ErrSymbolNotFound, e.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yfinance quoteSummary %s: %w", ticker, ErrSymbolNotFound)
	}
	return &resp.QuoteSummary.Result[0], nil
}

func parseYFCandles(result yfChartResult) []models.Candle {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}

	q := result.Indicators.Quote[0]
	at := func(s []*float64, i int) (float64, bool) {
		if i < len(s) && s[i] != nil {
			return *s[i], true
		}
		return 0, false
	}

	candles := make([]models.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		cl, ok := at(q.Close, i)
		if !ok {
			continue
		}
		op, _ := at(q.Open, i)
		hi, _ := at(q.High, i)
		lo, _ := at(q.Low, i)
		vol, _ := at(q.Volume, i)
		candles = append(candles, models.Candle{
			Time:   ts,
			Open:   utils.Round(op, 2),
			High:   utils.Round(hi, 2),
			Low:    utils.Round(lo, 2),
			Close:  utils.Round(cl, 2),
			Volume: int64(vol),
		})
	}
	return candles
}

func yfInterval(interval string) string {
	switch interval {
	case models.Interval5Min:
		return "5m"
	case models.Interval15Min:
		return "15m"
	case models.Interval1Hour:
		return "60m"
	case models.Interval1Week:
		return "1wk"
	case models.Interval1Month:
		return "1mo"
	default:
		return "1d"
	}
}
