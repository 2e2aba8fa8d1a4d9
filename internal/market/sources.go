package market

import (
	"context"

	"github.com/seenimoa/finassist/internal/datasource"
	"github.com/seenimoa/finassist/pkg/models"
)

//go:generate mockgen -package=market_test -destination=mock_sources_test.go -source=sources.go

// Provider is the per-symbol data contract the orchestrator chains over.
// Every datasource adapter satisfies it.
type Provider interface {
	Name() string
	Quote(ctx context.Context, id string) (*models.Quote, error)
	Profile(ctx context.Context, id string) (*models.Profile, error)
	Metrics(ctx context.Context, id string) (*models.Metrics, error)
	Candles(ctx context.Context, id string, w models.Window) ([]models.Candle, error)
	News(ctx context.Context, id string, limit int) ([]models.NewsArticle, error)
	Analyst(ctx context.Context, id string) (*models.AnalystRatings, error)
}

// DomesticSource is the exchange scraper: a Provider that also lists
// index levels and index constituents.
type DomesticSource interface {
	Provider
	Indices(ctx context.Context) (map[string]models.IndexValue, error)
	IndexConstituents(ctx context.Context, index string) ([]models.Mover, error)
}

// FallbackSource is the key-less provider used last in every chain. It
// also serves raw daily series and metal prices.
type FallbackSource interface {
	Provider
	Series(ctx context.Context, ticker, rangeStr string) ([]models.Candle, error)
	Commodity(ctx context.Context, c datasource.Commodity, usdINR float64) (*models.MetalRate, error)
}

// FXSource serves currency rates against INR.
type FXSource interface {
	Rates(ctx context.Context, currencies []datasource.Currency) (*models.FXTable, error)
	USDINR(ctx context.Context) (float64, error)
}

// FundSource serves mutual-fund search and scheme details.
type FundSource interface {
	Search(ctx context.Context, q string) ([]models.FundSummary, error)
	Scheme(ctx context.Context, code int) (*models.FundDetail, error)
}

// HeadlineSource serves market-wide headlines.
type HeadlineSource interface {
	Headlines(ctx context.Context) ([]models.Headline, error)
}

var (
	_ DomesticSource = (*datasource.NSE)(nil)
	_ Provider       = (*datasource.TwelveData)(nil)
	_ FallbackSource = (*datasource.Timeboxed)(nil)
	_ Provider       = (*datasource.Feeds)(nil)
	_ HeadlineSource = (*datasource.Feeds)(nil)
	_ FXSource       = (*datasource.Frankfurter)(nil)
	_ FundSource     = (*datasource.MFAPI)(nil)
)
