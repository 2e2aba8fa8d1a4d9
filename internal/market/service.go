// Package market is the fetch orchestrator. It resolves loosely typed
// queries to identifiers, walks provider chains until one answers, and
// serves the reconciled results through a short-TTL cache.
//
// Every per-symbol operation returns a well-formed result: upstream
// failures are reported in the result's error field, never as a Go error.
package market

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/seenimoa/finassist/internal/cache"
	"github.com/seenimoa/finassist/internal/datasource"
	"github.com/seenimoa/finassist/internal/resolver"
	"github.com/seenimoa/finassist/pkg/models"
	"github.com/seenimoa/finassist/pkg/utils"
)

var (
	// ErrSymbolNotFound is returned when a query resolves to no identifier.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrInvalidArgument marks caller mistakes such as an unknown movers kind.
	ErrInvalidArgument = errors.New("invalid argument")

	errNoData      = errors.New("no usable data")
	errNoProviders = errors.New("no provider configured")
)

// Config wires a Service. Resolver and Cache are required; any source may
// be nil, in which case it is skipped in every chain.
type Config struct {
	Resolver *resolver.Resolver
	Cache    *cache.Cache

	Domestic  DomesticSource
	Licensed  Provider
	Fallback  FallbackSource
	News      Provider
	Headlines HeadlineSource
	FX        FXSource
	Funds     FundSource

	TTL    TTLPolicy
	Now    func() time.Time
	Logger zerolog.Logger
}

// Service is the fetch orchestrator. It is safe for concurrent use.
type Service struct {
	resolver *resolver.Resolver
	cache    *cache.Cache

	domestic  DomesticSource
	licensed  Provider
	fallback  FallbackSource
	news      Provider
	headlines HeadlineSource
	fx        FXSource
	funds     FundSource

	ttl   TTLPolicy
	now   func() time.Time
	log   zerolog.Logger
	group singleflight.Group
}

// New creates a Service. Zero TTL entries take DefaultTTLPolicy values.
func New(cfg Config) *Service {
	if cfg.Resolver == nil {
		cfg.Resolver = resolver.New()
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.New()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		resolver:  cfg.Resolver,
		cache:     cfg.Cache,
		domestic:  cfg.Domestic,
		licensed:  cfg.Licensed,
		fallback:  cfg.Fallback,
		news:      cfg.News,
		headlines: cfg.Headlines,
		fx:        cfg.FX,
		funds:     cfg.Funds,
		ttl:       cfg.TTL.withDefaults(),
		now:       cfg.Now,
		log:       cfg.Logger.With().Str("component", "market").Logger(),
	}
}

// Resolve maps a query to an identifier, running the live probe when the
// resolver rules cannot decide the exchange.
func (s *Service) Resolve(ctx context.Context, query string) (string, error) {
	t, err := s.resolve(ctx, query)
	return t.id, err
}

// target is a resolved identifier. guessed marks the domestic default
// chosen after the probe could not confirm the symbol anywhere.
type target struct {
	id      string
	guessed bool
}

func (s *Service) resolve(ctx context.Context, query string) (target, error) {
	res := s.resolver.Resolve(query)
	if res.Symbol == "" {
		return target{}, fmt.Errorf("%w: %s", ErrSymbolNotFound, query)
	}
	if res.Resolved {
		return target{id: res.Symbol}, nil
	}

	key := cache.Key("resolve", res.Symbol)
	if v, ok := s.cache.Get(key); ok {
		if t, ok := v.(target); ok {
			return t, nil
		}
	}

	v, _, _ := s.group.Do(key, func() (any, error) {
		t := target{id: res.Symbol + ".NS", guessed: true}
		if s.fallback == nil {
			return t, nil
		}
		// Five calendar days always include a trading session.
		bars, err := s.fallback.Candles(ctx, res.Symbol, models.DailyWindow(5, s.now()))
		switch {
		case err == nil && hasPositiveClose(bars):
			t = target{id: res.Symbol}
		case err != nil && !isCleanMiss(err):
			// Transient failures are retried on the next request.
			s.log.Debug().Err(err).Str("symbol", res.Symbol).Msg("resolve probe failed")
			return t, nil
		}
		s.cache.Set(key, t, s.ttl.Resolve)
		return t, nil
	})
	return v.(target), nil
}

// isCleanMiss reports whether err is an upstream answer that the symbol
// does not exist, as opposed to a transport, timeout or rate-limit failure.
func isCleanMiss(err error) bool {
	if errors.Is(err, datasource.ErrSymbolNotFound) || errors.Is(err, datasource.ErrEmpty) {
		return true
	}
	var httpErr *datasource.ErrHTTP
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

// notFound is the error for a guessed identifier that no provider knows.
// It names the caller's query rather than the guess.
func notFound(query string) string {
	return fmt.Errorf("%w: %s", ErrSymbolNotFound, strings.TrimSpace(query)).Error()
}

func hasPositiveClose(bars []models.Candle) bool {
	for _, b := range bars {
		if b.Close > 0 {
			return true
		}
	}
	return false
}

// --- Cache plumbing ---

// load serves key from the cache or runs fetch once across concurrent
// callers. fetch returns the lifetime; zero means the result is not cached.
func load[T any](s *Service, key string, fetch func() (T, time.Duration)) T {
	if v, ok := s.cache.Get(key); ok {
		if out, ok := v.(T); ok {
			return out
		}
	}
	v, _, _ := s.group.Do(key, func() (any, error) {
		out, ttl := fetch()
		if ttl > 0 {
			s.cache.Set(key, out, ttl)
		}
		return out, nil
	})
	return v.(T)
}

// CacheStats reports the live cache entries.
func (s *Service) CacheStats() models.CacheStats { return s.cache.Stats() }

// ClearCache drops every entry for symbol and returns the removed keys.
func (s *Service) ClearCache(symbol string) []string { return s.cache.Clear(symbol) }

// FlushCache drops every entry and returns how many there were.
func (s *Service) FlushCache() int { return s.cache.Flush() }

// --- Provider chains ---

// chain drops unconfigured providers.
func chain(order ...Provider) []Provider {
	out := make([]Provider, 0, len(order))
	for _, p := range order {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// domesticFor returns the exchange scraper when id trades on NSE or BSE.
func (s *Service) domesticFor(id string) Provider {
	if s.domestic == nil || !utils.IsDomestic(id) {
		return nil
	}
	return s.domestic
}

// fallbackProvider returns the fallback as a Provider, nil when unset.
func (s *Service) fallbackProvider() Provider {
	if s.fallback == nil {
		return nil
	}
	return s.fallback
}

// firstUsable walks providers and returns the first result usable accepts,
// with the name of the provider that produced it. When every provider
// fails the errors are joined.
func firstUsable[T any](ctx context.Context, s *Service, op, id string, providers []Provider,
	fetch func(context.Context, Provider) (T, error), usable func(T) bool) (T, string, error) {
	var errs []error
	for _, p := range providers {
		v, err := fetch(ctx, p)
		if err == nil && usable(v) {
			return v, p.Name(), nil
		}
		if err == nil {
			err = errNoData
		}
		s.log.Debug().Err(err).Str("provider", p.Name()).Str("op", op).Str("symbol", id).Msg("provider fell through")
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
	}

	var zero T
	err := errors.Join(errs...)
	if err == nil {
		err = errNoProviders
	}
	s.log.Warn().Err(err).Str("op", op).Str("symbol", id).Msg("provider chain exhausted")
	return zero, "", err
}

// --- Quote ---

// GetQuote returns the live quote for query.
func (s *Service) GetQuote(ctx context.Context, query string) *models.Quote {
	t, err := s.resolve(ctx, query)
	if err != nil {
		return &models.Quote{Symbol: utils.NormalizeSymbol(query), Error: err.Error()}
	}
	q := s.quote(ctx, t.id)
	if t.guessed && q.Current == nil {
		out := *q
		out.Error = notFound(query)
		return &out
	}
	return q
}

func (s *Service) quote(ctx context.Context, id string) *models.Quote {
	return load(s, cache.Key("quote", id), func() (*models.Quote, time.Duration) {
		q, src, err := firstUsable(ctx, s, "quote", id,
			chain(s.domesticFor(id), s.licensed, s.fallbackProvider()),
			func(ctx context.Context, p Provider) (*models.Quote, error) { return p.Quote(ctx, id) },
			(*models.Quote).Usable)
		if err != nil {
			return &models.Quote{
				Symbol: id,
				Error:  "could not fetch quote for " + id,
				Detail: err.Error(),
			}, 0
		}
		q.Symbol = id
		q.Source = src
		if q.Currency == "" {
			q.Currency = defaultCurrency(id)
		}
		q.Normalize()
		return q, s.ttl.Quote.For(id, s.now())
	})
}

func defaultCurrency(id string) string {
	if utils.IsDomestic(id) {
		return "INR"
	}
	return "USD"
}

// --- Profile ---

// GetProfile returns company details for query. When no provider knows
// the symbol the placeholder profile is returned with an error.
func (s *Service) GetProfile(ctx context.Context, query string) *models.Profile {
	t, err := s.resolve(ctx, query)
	if err != nil {
		p := models.NewProfile(utils.NormalizeSymbol(query))
		p.Error = err.Error()
		return p
	}
	p := s.profile(ctx, t.id)
	if t.guessed && p.Error != "" {
		out := *p
		out.Error = notFound(query)
		return &out
	}
	return p
}

func (s *Service) profile(ctx context.Context, id string) *models.Profile {
	return load(s, cache.Key("profile", id), func() (*models.Profile, time.Duration) {
		// Licensed first: it is the only source with descriptions.
		p, src, err := firstUsable(ctx, s, "profile", id,
			chain(s.licensed, s.domesticFor(id), s.fallbackProvider()),
			func(ctx context.Context, p Provider) (*models.Profile, error) { return p.Profile(ctx, id) },
			(*models.Profile).Usable)
		if err != nil {
			out := models.NewProfile(id)
			out.Currency = defaultCurrency(id)
			out.Error = "could not fetch profile for " + id
			return out, 0
		}
		p.Symbol = id
		p.Source = src
		if p.Currency == "" {
			p.Currency = defaultCurrency(id)
		}
		p.Finish()
		return p, s.ttl.Profile
	})
}

// --- Metrics ---

// GetMetrics returns valuation ratios for query, merged across providers.
func (s *Service) GetMetrics(ctx context.Context, query string) *models.Metrics {
	t, err := s.resolve(ctx, query)
	if err != nil {
		return &models.Metrics{Symbol: utils.NormalizeSymbol(query), Sources: []string{}, Error: err.Error()}
	}
	m := s.metrics(ctx, t.id)
	if t.guessed && m.Error != "" {
		out := *m
		out.Error = notFound(query)
		return &out
	}
	return m
}

func (s *Service) metrics(ctx context.Context, id string) *models.Metrics {
	return load(s, cache.Key("metrics", id), func() (*models.Metrics, time.Duration) {
		m := &models.Metrics{Symbol: id, Sources: []string{}}
		var errs []error

		overlay := func(p Provider) {
			got, err := p.Metrics(ctx, id)
			if err == nil && !m.Overlay(got) {
				err = errNoData
			}
			if err != nil {
				s.log.Debug().Err(err).Str("provider", p.Name()).Str("op", "metrics").Str("symbol", id).Msg("provider fell through")
				errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
				return
			}
			m.AddSource(p.Name())
		}

		// NSE is the base for domestic names; the licensed API fills gaps
		// and wins where both report a field.
		for _, p := range chain(s.domesticFor(id), s.licensed) {
			overlay(p)
		}
		if m.IsEmpty() && s.fallback != nil {
			overlay(s.fallback)
		}
		m.DeriveROE()

		if m.IsEmpty() {
			s.log.Warn().Str("op", "metrics").Str("symbol", id).Msg("provider chain exhausted")
			m.Error = "no metrics available for " + id
			if err := errors.Join(errs...); err != nil {
				m.Detail = err.Error()
			}
			return m, 0
		}
		return m, s.ttl.Metrics.For(id, s.now())
	})
}

// --- Candles ---

// GetCandles returns chart bars for query over tf. An empty tf means the
// default timeframe.
func (s *Service) GetCandles(ctx context.Context, query string, tf models.Timeframe) *models.CandleSeries {
	if tf == "" {
		tf = models.DefaultTimeframe
	}
	t, err := s.resolve(ctx, query)
	if err != nil {
		return &models.CandleSeries{
			Symbol:    utils.NormalizeSymbol(query),
			Timeframe: tf,
			Interval:  tf.Interval(),
			Candles:   []models.Candle{},
			Error:     err.Error(),
		}
	}
	series := s.candles(ctx, t.id, tf)
	if t.guessed && len(series.Candles) == 0 {
		out := *series
		out.Error = notFound(query)
		return &out
	}
	return series
}

func (s *Service) candles(ctx context.Context, id string, tf models.Timeframe) *models.CandleSeries {
	return load(s, cache.Key("candle", id, string(tf)), func() (*models.CandleSeries, time.Duration) {
		w := models.WindowFor(tf, s.now())
		bars, src, err := firstUsable(ctx, s, "candles", id,
			chain(s.licensed, s.fallbackProvider(), s.domesticFor(id)),
			func(ctx context.Context, p Provider) ([]models.Candle, error) { return p.Candles(ctx, id, w) },
			func(c []models.Candle) bool { return len(c) > 0 })

		series := &models.CandleSeries{Symbol: id, Timeframe: tf, Interval: w.Interval}
		if err != nil {
			series.Candles = []models.Candle{}
			series.Error = "no chart data for " + id
			series.Detail = err.Error()
			return series, 0
		}
		series.Candles = models.SortDedup(bars)
		series.Count = len(series.Candles)
		series.Source = src
		return series, s.ttl.Candles.For(id, s.now())
	})
}

// --- Analyst ---

// GetAnalyst returns the consensus view for query.
func (s *Service) GetAnalyst(ctx context.Context, query string) *models.Analyst {
	t, err := s.resolve(ctx, query)
	if err != nil {
		return &models.Analyst{Symbol: utils.NormalizeSymbol(query), Consensus: consensusNA, Error: err.Error()}
	}
	a := s.analyst(ctx, t.id)
	if t.guessed && a.Error != "" {
		out := *a
		out.Error = notFound(query)
		return &out
	}
	return a
}

func (s *Service) analyst(ctx context.Context, id string) *models.Analyst {
	return load(s, cache.Key("analyst", id), func() (*models.Analyst, time.Duration) {
		raw, src, err := firstUsable(ctx, s, "analyst", id,
			chain(s.licensed, s.fallbackProvider()),
			func(ctx context.Context, p Provider) (*models.AnalystRatings, error) { return p.Analyst(ctx, id) },
			(*models.AnalystRatings).HasData)
		if err != nil {
			return &models.Analyst{
				Symbol:    id,
				Consensus: consensusNA,
				Error:     "no analyst data for " + id,
				Detail:    err.Error(),
			}, 0
		}
		return Aggregate(id, src, raw), s.ttl.Analyst
	})
}

// --- News ---

// GetNews returns recent articles about query.
func (s *Service) GetNews(ctx context.Context, query string) *models.News {
	t, err := s.resolve(ctx, query)
	if err != nil {
		return &models.News{Symbol: utils.NormalizeSymbol(query), Articles: []models.NewsArticle{}, Error: err.Error()}
	}
	n := s.newsFor(ctx, t.id)
	if t.guessed && n.Error != "" {
		out := *n
		out.Error = notFound(query)
		return &out
	}
	return n
}

func (s *Service) newsFor(ctx context.Context, id string) *models.News {
	return load(s, cache.Key("news", id), func() (*models.News, time.Duration) {
		articles, src, err := firstUsable(ctx, s, "news", id,
			chain(s.licensed, s.fallbackProvider(), s.news),
			func(ctx context.Context, p Provider) ([]models.NewsArticle, error) {
				got, err := p.News(ctx, id, models.MaxNewsArticles)
				return cleanArticles(got), err
			},
			func(a []models.NewsArticle) bool { return len(a) > 0 })
		if err != nil {
			return &models.News{
				Symbol:   id,
				Articles: []models.NewsArticle{},
				Error:    "no news found for " + id,
				Detail:   err.Error(),
			}, 0
		}
		return &models.News{Symbol: id, Articles: articles, Count: len(articles), Source: src}, s.ttl.News
	})
}

// cleanArticles drops headline-less items and applies the size bounds.
func cleanArticles(in []models.NewsArticle) []models.NewsArticle {
	out := make([]models.NewsArticle, 0, len(in))
	for _, a := range in {
		if a.Headline == "" {
			continue
		}
		a.Summary = utils.Truncate(a.Summary, models.MaxNewsSummaryRunes)
		out = append(out, a)
		if len(out) == models.MaxNewsArticles {
			break
		}
	}
	return out
}
