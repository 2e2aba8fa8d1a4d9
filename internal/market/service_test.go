package market_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/seenimoa/finassist/internal/cache"
	"github.com/seenimoa/finassist/internal/datasource"
	"github.com/seenimoa/finassist/internal/fanout"
	"github.com/seenimoa/finassist/internal/market"
	"github.com/seenimoa/finassist/internal/resolver"
	"github.com/seenimoa/finassist/pkg/models"
	"github.com/seenimoa/finassist/pkg/utils"
)

// 11:30 IST on a Wednesday: NSE is open, NYSE is closed.
var testNow = time.Date(2026, 2, 18, 6, 0, 0, 0, time.UTC)

type fixture struct {
	clock    time.Time
	cache    *cache.Cache
	domestic *MockDomesticSource
	licensed *MockProvider
	fallback *MockFallbackSource
	svc      *market.Service
}

func newFixture(t *testing.T, mutate ...func(*market.Config)) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		clock:    testNow,
		domestic: NewMockDomesticSource(ctrl),
		licensed: NewMockProvider(ctrl),
		fallback: NewMockFallbackSource(ctrl),
	}
	f.domestic.EXPECT().Name().Return("nse").AnyTimes()
	f.licensed.EXPECT().Name().Return("twelvedata").AnyTimes()
	f.fallback.EXPECT().Name().Return("yahoo").AnyTimes()

	now := func() time.Time { return f.clock }
	f.cache = cache.New(cache.WithClock(now))

	cfg := market.Config{
		Resolver: resolver.New(
			resolver.WithAliases(map[string]string{"reliance": "RELIANCE.NS", "infosys": "INFY.NS"}),
			resolver.WithForeignSymbols("AAPL", "MSFT"),
		),
		Cache:    f.cache,
		Domestic: f.domestic,
		Licensed: f.licensed,
		Fallback: f.fallback,
		Now:      now,
		Logger:   zerolog.Nop(),
	}
	for _, m := range mutate {
		m(&cfg)
	}
	f.svc = market.New(cfg)
	return f
}

func quoteAt(current, prev float64) *models.Quote {
	return &models.Quote{Current: &current, PrevClose: &prev, Currency: "INR"}
}

func TestGetQuoteCachesResult(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	f.domestic.EXPECT().Quote(gomock.Any(), "RELIANCE.NS").Return(quoteAt(2500, 2450), nil).Times(1)

	first := f.svc.GetQuote(ctx, "reliance")
	second := f.svc.GetQuote(ctx, " Reliance ")

	require.Empty(t, first.Error)
	assert.Same(t, first, second)
	assert.Equal(t, "RELIANCE.NS", first.Symbol)
	assert.Equal(t, "nse", first.Source)
	assert.Equal(t, 50.0, *first.Change)
	assert.Equal(t, 2.04, *first.ChangePct)
}

func TestGetQuoteExpiresAfterTTL(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	f.domestic.EXPECT().Quote(gomock.Any(), "RELIANCE.NS").Return(quoteAt(2500, 2450), nil).Times(2)

	f.svc.GetQuote(ctx, "reliance")
	f.clock = f.clock.Add(29 * time.Second)
	f.svc.GetQuote(ctx, "reliance")
	f.clock = f.clock.Add(2 * time.Second)
	f.svc.GetQuote(ctx, "reliance")
}

func TestGetQuoteFallbackOrdering(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.domestic.EXPECT().Quote(gomock.Any(), "RELIANCE.NS").Return(nil, &datasource.ErrHTTP{StatusCode: 403, Status: "Forbidden"})
	f.licensed.EXPECT().Quote(gomock.Any(), "RELIANCE.NS").Return(quoteAt(2500, 2500), nil)
	f.fallback.EXPECT().Quote(gomock.Any(), gomock.Any()).Times(0)

	q := f.svc.GetQuote(context.Background(), "RELIANCE")
	require.Empty(t, q.Error)
	assert.Equal(t, "twelvedata", q.Source)
	assert.Equal(t, 0.0, *q.Change)
}

func TestGetQuoteUnusablePriceFallsThrough(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.domestic.EXPECT().Quote(gomock.Any(), "RELIANCE.NS").Return(quoteAt(0, 2450), nil)
	f.licensed.EXPECT().Quote(gomock.Any(), "RELIANCE.NS").Return(nil, datasource.ErrRateLimited)
	f.fallback.EXPECT().Quote(gomock.Any(), "RELIANCE.NS").Return(quoteAt(2460, 2450), nil)

	q := f.svc.GetQuote(context.Background(), "reliance")
	assert.Equal(t, "yahoo", q.Source)
	assert.Equal(t, 2460.0, *q.Current)
}

func TestGetQuoteForeignSkipsDomestic(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.domestic.EXPECT().Quote(gomock.Any(), gomock.Any()).Times(0)
	f.licensed.EXPECT().Quote(gomock.Any(), "AAPL").Return(&models.Quote{Current: utils.Float(190)}, nil)

	q := f.svc.GetQuote(context.Background(), "$aapl")
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, "USD", q.Currency)
	assert.Nil(t, q.Change, "no prev_close means change stays null")
}

func TestGetQuoteChainExhaustedIsNotCached(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.domestic.EXPECT().Quote(gomock.Any(), "RELIANCE.NS").Return(nil, datasource.ErrSymbolNotFound).Times(2)
	f.licensed.EXPECT().Quote(gomock.Any(), "RELIANCE.NS").Return(nil, datasource.ErrMissingAPIKey).Times(2)
	f.fallback.EXPECT().Quote(gomock.Any(), "RELIANCE.NS").Return(nil, errors.New("boom")).Times(2)

	for range 2 {
		q := f.svc.GetQuote(context.Background(), "reliance")
		assert.Equal(t, "could not fetch quote for RELIANCE.NS", q.Error)
		assert.Nil(t, q.Current)
		assert.Contains(t, q.Detail, "nse: symbol not found")
		assert.Contains(t, q.Detail, "yahoo: boom")
	}
	assert.Zero(t, f.cache.Len())
}

func TestGetQuoteFallbackTimeout(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	f := newFixture(t, func(cfg *market.Config) {
		cfg.Fallback = datasource.NewTimeboxed(cfg.Fallback.(*MockFallbackSource), 100*time.Millisecond)
	})

	f.licensed.EXPECT().Quote(gomock.Any(), "AAPL").Return(nil, datasource.ErrRateLimited)
	f.fallback.EXPECT().Quote(gomock.Any(), "AAPL").DoAndReturn(func(context.Context, string) (*models.Quote, error) {
		<-release
		return quoteAt(1, 1), nil
	})

	start := time.Now()
	q := f.svc.GetQuote(context.Background(), "AAPL")
	elapsed := time.Since(start)

	assert.Less(t, elapsed, time.Second)
	assert.Equal(t, "could not fetch quote for AAPL", q.Error)
	assert.Contains(t, q.Detail, "deadline exceeded")
}

func TestGetQuoteDetailOmitsAPIKey(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	closed := srv.URL
	srv.Close()

	f := newFixture(t, func(cfg *market.Config) {
		cfg.Licensed = datasource.NewTwelveData("SECRETKEY123",
			datasource.WithBaseURL(closed), datasource.WithRateLimit(0, 0))
	})
	f.fallback.EXPECT().Quote(gomock.Any(), "AAPL").Return(nil, datasource.ErrEmpty)

	q := f.svc.GetQuote(context.Background(), "AAPL")
	require.Nil(t, q.Current)
	assert.Contains(t, q.Detail, "twelvedata:")
	assert.NotContains(t, q.Detail, "SECRETKEY123")
	assert.NotContains(t, q.Error, "SECRETKEY123")
}

func TestGetQuoteUnknownSymbol(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	q := f.svc.GetQuote(context.Background(), "  ")
	assert.Contains(t, q.Error, "symbol not found")
}

func TestResolveProbe(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	f.fallback.EXPECT().Candles(gomock.Any(), "ZQWV", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, w models.Window) ([]models.Candle, error) {
			assert.Equal(t, models.Interval1Day, w.Interval)
			assert.Equal(t, 6*24*time.Hour, w.End.Sub(w.Start))
			return []models.Candle{{Time: 1, Close: 0}, {Time: 2, Close: 12.5}}, nil
		}).Times(1)
	f.fallback.EXPECT().Candles(gomock.Any(), "ZQWX", gomock.Any()).Return(nil, datasource.ErrSymbolNotFound).Times(1)

	id, err := f.svc.Resolve(ctx, "zqwv")
	require.NoError(t, err)
	assert.Equal(t, "ZQWV", id)

	id, err = f.svc.Resolve(ctx, "zqwv")
	require.NoError(t, err)
	assert.Equal(t, "ZQWV", id, "second lookup is served from the cache")

	id, err = f.svc.Resolve(ctx, "ZQWX")
	require.NoError(t, err)
	assert.Equal(t, "ZQWX.NS", id)

	_, err = f.svc.Resolve(ctx, "")
	assert.ErrorIs(t, err, market.ErrSymbolNotFound)
}

func TestResolveTransientFailureIsRetried(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	gomock.InOrder(
		f.fallback.EXPECT().Candles(gomock.Any(), "PLTR", gomock.Any()).Return(nil, fanout.ErrDeadline),
		f.fallback.EXPECT().Candles(gomock.Any(), "PLTR", gomock.Any()).Return(nil, datasource.ErrRateLimited),
		f.fallback.EXPECT().Candles(gomock.Any(), "PLTR", gomock.Any()).Return(nil, context.Canceled),
		f.fallback.EXPECT().Candles(gomock.Any(), "PLTR", gomock.Any()).Return([]models.Candle{{Time: 1, Close: 24.1}}, nil),
	)

	for i := range 3 {
		id, err := f.svc.Resolve(ctx, "pltr")
		require.NoError(t, err)
		assert.Equal(t, "PLTR.NS", id, "attempt %d", i)
		assert.Zero(t, f.cache.Len(), "a failed lookup is not cached")
	}

	id, err := f.svc.Resolve(ctx, "pltr")
	require.NoError(t, err)
	assert.Equal(t, "PLTR", id)

	id, err = f.svc.Resolve(ctx, "pltr")
	require.NoError(t, err)
	assert.Equal(t, "PLTR", id, "a confirmed symbol is cached")
}

func TestResolveCleanMissIsCached(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	f.fallback.EXPECT().Candles(gomock.Any(), "ZQWY", gomock.Any()).
		Return(nil, &datasource.ErrHTTP{StatusCode: 404, Status: "Not Found"}).Times(1)

	for range 2 {
		id, err := f.svc.Resolve(ctx, "zqwy")
		require.NoError(t, err)
		assert.Equal(t, "ZQWY.NS", id)
	}
}

func TestGuessedSymbolNotFoundNamesQuery(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	f.fallback.EXPECT().Candles(gomock.Any(), "ZZQQ", gomock.Any()).Return(nil, datasource.ErrSymbolNotFound)
	f.domestic.EXPECT().Quote(gomock.Any(), "ZZQQ.NS").Return(nil, datasource.ErrSymbolNotFound).Times(2)
	f.licensed.EXPECT().Quote(gomock.Any(), "ZZQQ.NS").Return(nil, datasource.ErrMissingAPIKey).Times(2)
	f.fallback.EXPECT().Quote(gomock.Any(), "ZZQQ.NS").Return(nil, datasource.ErrSymbolNotFound).Times(2)
	f.licensed.EXPECT().Candles(gomock.Any(), "ZZQQ.NS", gomock.Any()).Return(nil, datasource.ErrEmpty)
	f.fallback.EXPECT().Candles(gomock.Any(), "ZZQQ.NS", gomock.Any()).Return(nil, datasource.ErrEmpty)
	f.domestic.EXPECT().Candles(gomock.Any(), "ZZQQ.NS", gomock.Any()).Return(nil, datasource.ErrEmpty)

	q := f.svc.GetQuote(ctx, "zzqq")
	assert.Nil(t, q.Current)
	assert.Equal(t, "symbol not found: zzqq", q.Error)
	assert.Contains(t, q.Detail, "nse: symbol not found")
	assert.NotContains(t, q.Error, "ZZQQ.NS")

	s := f.svc.GetCandles(ctx, "zzqq", models.Timeframe1W)
	assert.Equal(t, "symbol not found: zzqq", s.Error)
	assert.NotNil(t, s.Candles)

	f.fallback.EXPECT().Series(gomock.Any(), "ZZQQ.NS", "5d").Return(nil, datasource.ErrEmpty)
	sum := f.svc.Lookup(ctx, "zzqq")
	assert.Equal(t, "symbol not found: zzqq", sum.Error)
	assert.Nil(t, sum.Current)
}

func TestGetProfileLicensedFirst(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.licensed.EXPECT().Profile(gomock.Any(), "INFY.NS").Return(&models.Profile{
		Name:        "Infosys Ltd",
		Website:     "https://www.infosys.com",
		Description: "IT services.",
	}, nil)
	f.domestic.EXPECT().Profile(gomock.Any(), gomock.Any()).Times(0)

	p := f.svc.GetProfile(context.Background(), "infosys")
	assert.Equal(t, "Infosys Ltd", p.Name)
	assert.Equal(t, "twelvedata", p.Source)
	assert.Equal(t, "N/A", p.Sector)
	assert.Equal(t, "INR", p.Currency)
	assert.Contains(t, p.Logo, "domain_url=https://infosys.com")
}

func TestGetProfilePlaceholderOnFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.licensed.EXPECT().Profile(gomock.Any(), "INFY.NS").Return(&models.Profile{}, nil)
	f.domestic.EXPECT().Profile(gomock.Any(), "INFY.NS").Return(nil, datasource.ErrEmpty)
	f.fallback.EXPECT().Profile(gomock.Any(), "INFY.NS").Return(nil, datasource.ErrSymbolNotFound)

	p := f.svc.GetProfile(context.Background(), "infosys")
	assert.Equal(t, "INFY", p.Name)
	assert.Equal(t, "N/A", p.Industry)
	assert.Equal(t, "could not fetch profile for INFY.NS", p.Error)
	assert.Zero(t, f.cache.Len())
}

func TestGetMetricsOverlay(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.domestic.EXPECT().Metrics(gomock.Any(), "RELIANCE.NS").Return(&models.Metrics{
		PERatio:   utils.Float(20),
		MarketCap: utils.Float(1.9e13),
	}, nil)
	f.licensed.EXPECT().Metrics(gomock.Any(), "RELIANCE.NS").Return(&models.Metrics{
		PERatio:           utils.Float(22.5),
		Beta:              utils.Float(1.1),
		NetIncome:         utils.Float(100),
		ShareholderEquity: utils.Float(400),
	}, nil)
	f.fallback.EXPECT().Metrics(gomock.Any(), gomock.Any()).Times(0)

	m := f.svc.GetMetrics(context.Background(), "reliance")
	require.Empty(t, m.Error)
	assert.Equal(t, 22.5, *m.PERatio, "licensed overlays the exchange value")
	assert.Equal(t, 1.9e13, *m.MarketCap)
	assert.Equal(t, 25.0, *m.ROE)
	assert.Equal(t, []string{"nse", "twelvedata"}, m.Sources)
}

func TestGetMetricsFallbackWhenEmpty(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.licensed.EXPECT().Metrics(gomock.Any(), "AAPL").Return(nil, datasource.ErrMissingAPIKey)
	f.fallback.EXPECT().Metrics(gomock.Any(), "AAPL").Return(&models.Metrics{ROE: utils.Float(150)}, nil)

	m := f.svc.GetMetrics(context.Background(), "AAPL")
	assert.Equal(t, []string{"yahoo"}, m.Sources)
	assert.Equal(t, 150.0, *m.ROE)
}

func TestGetMetricsAllEmpty(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.licensed.EXPECT().Metrics(gomock.Any(), "AAPL").Return(&models.Metrics{}, nil)
	f.fallback.EXPECT().Metrics(gomock.Any(), "AAPL").Return(nil, datasource.ErrEmpty)

	m := f.svc.GetMetrics(context.Background(), "AAPL")
	assert.Equal(t, "no metrics available for AAPL", m.Error)
	assert.NotNil(t, m.Sources)
	assert.Contains(t, m.Detail, "twelvedata: no usable data")
	assert.Zero(t, f.cache.Len())
}

func TestGetCandlesWeek(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	day := int64(24 * 60 * 60)
	base := testNow.Unix() - 7*day
	f.licensed.EXPECT().Candles(gomock.Any(), "AAPL", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, w models.Window) ([]models.Candle, error) {
			assert.Equal(t, models.Interval15Min, w.Interval)
			assert.False(t, w.Full)
			assert.Equal(t, 8*24*time.Hour, w.End.Sub(w.Start))
			return []models.Candle{
				{Time: base + 3*day, Close: 3},
				{Time: base, Close: 1},
				{Time: base + 3*day, Close: 4},
				{Time: base + day, Close: 2},
			}, nil
		})

	s := f.svc.GetCandles(context.Background(), "AAPL", models.Timeframe1W)
	require.Empty(t, s.Error)
	require.Equal(t, 3, s.Count)
	assert.Equal(t, "15min", s.Interval)
	for i := 1; i < len(s.Candles); i++ {
		assert.Less(t, s.Candles[i-1].Time, s.Candles[i].Time)
	}
	assert.Equal(t, 4.0, s.Candles[2].Close, "last bar for a timestamp wins")
	assert.LessOrEqual(t, s.Candles[2].Time-s.Candles[0].Time, 7*day)

	_, ok := f.cache.Get("candle:AAPL:1W")
	assert.True(t, ok)
}

func TestGetCandlesChainOrder(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	gomock.InOrder(
		f.licensed.EXPECT().Candles(gomock.Any(), "RELIANCE.NS", gomock.Any()).Return(nil, datasource.ErrRateLimited),
		f.fallback.EXPECT().Candles(gomock.Any(), "RELIANCE.NS", gomock.Any()).Return([]models.Candle{}, nil),
		f.domestic.EXPECT().Candles(gomock.Any(), "RELIANCE.NS", gomock.Any()).Return([]models.Candle{{Time: 1, Close: 10}}, nil),
	)

	s := f.svc.GetCandles(context.Background(), "reliance", "")
	assert.Equal(t, models.Timeframe3M, s.Timeframe)
	assert.Equal(t, "nse", s.Source)
	assert.Equal(t, 1, s.Count)
}

func TestGetCandlesNoData(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.licensed.EXPECT().Candles(gomock.Any(), "AAPL", gomock.Any()).Return(nil, datasource.ErrEmpty)
	f.fallback.EXPECT().Candles(gomock.Any(), "AAPL", gomock.Any()).Return(nil, datasource.ErrEmpty)

	s := f.svc.GetCandles(context.Background(), "AAPL", models.TimeframeMax)
	assert.Equal(t, "no chart data for AAPL", s.Error)
	assert.NotNil(t, s.Candles)
	assert.Zero(t, s.Count)
}

func TestGetAnalyst(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.licensed.EXPECT().Analyst(gomock.Any(), "AAPL").Return(&models.AnalystRatings{}, nil)
	f.fallback.EXPECT().Analyst(gomock.Any(), "AAPL").Return(&models.AnalystRatings{
		Ratings: []models.Rating{{Firm: "A", Rating: "Buy"}, {Firm: "B", Rating: "Hold"}},
	}, nil)

	a := f.svc.GetAnalyst(context.Background(), "AAPL")
	assert.Equal(t, "yahoo", a.Source)
	assert.Equal(t, "Buy", a.Consensus)
	assert.Equal(t, 2, a.AnalystCount)
}

func TestGetNews(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	feeds := NewMockProvider(ctrl)
	feeds.EXPECT().Name().Return("feeds").AnyTimes()

	f := newFixture(t, func(cfg *market.Config) { cfg.News = feeds })

	f.licensed.EXPECT().News(gomock.Any(), "INFY.NS", models.MaxNewsArticles).Return(nil, datasource.ErrNotSupported)
	f.fallback.EXPECT().News(gomock.Any(), "INFY.NS", models.MaxNewsArticles).Return([]models.NewsArticle{{Headline: ""}}, nil)

	var many []models.NewsArticle
	for range 15 {
		many = append(many, models.NewsArticle{Headline: "Infosys wins deal", Summary: string(make([]rune, 300))})
	}
	feeds.EXPECT().News(gomock.Any(), "INFY.NS", models.MaxNewsArticles).Return(many, nil)

	n := f.svc.GetNews(context.Background(), "infosys")
	assert.Equal(t, "feeds", n.Source)
	assert.Equal(t, models.MaxNewsArticles, n.Count)
	assert.LessOrEqual(t, len([]rune(n.Articles[0].Summary)), models.MaxNewsSummaryRunes)
}

func TestGetNewsEmpty(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.licensed.EXPECT().News(gomock.Any(), "AAPL", gomock.Any()).Return(nil, nil)
	f.fallback.EXPECT().News(gomock.Any(), "AAPL", gomock.Any()).Return(nil, datasource.ErrEmpty)

	n := f.svc.GetNews(context.Background(), "AAPL")
	assert.NotEmpty(t, n.Error)
	assert.Zero(t, n.Count)
	assert.NotNil(t, n.Articles)
}

func TestCacheClearScopedToSymbol(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.domestic.EXPECT().Quote(gomock.Any(), "RELIANCE.NS").Return(quoteAt(2500, 2450), nil)
	f.licensed.EXPECT().Quote(gomock.Any(), "AAPL").Return(quoteAt(190, 189), nil)

	f.svc.GetQuote(context.Background(), "reliance")
	f.svc.GetQuote(context.Background(), "AAPL")

	assert.Equal(t, []string{"quote:RELIANCE.NS"}, f.svc.ClearCache("RELIANCE"))
	assert.Equal(t, 1, f.svc.CacheStats().Entries)
	assert.Equal(t, 1, f.svc.FlushCache())
}
