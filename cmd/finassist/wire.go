package main

import (
	"golang.org/x/time/rate"

	"github.com/seenimoa/finassist/internal/assistant"
	"github.com/seenimoa/finassist/internal/cache"
	"github.com/seenimoa/finassist/internal/config"
	"github.com/seenimoa/finassist/internal/datasource"
	"github.com/seenimoa/finassist/internal/market"
	"github.com/seenimoa/finassist/internal/resolver"
)

// app holds the long-lived collaborators built from config.
type app struct {
	resolver *resolver.Resolver
	cache    *cache.Cache
	market   *market.Service
	chat     *assistant.Assistant
}

func endpoint(base string, extra ...datasource.Option) []datasource.Option {
	opts := extra
	if base != "" {
		opts = append(opts, datasource.WithBaseURL(base))
	}
	return opts
}

func perSecond(n int) []datasource.Option {
	if n <= 0 {
		return nil
	}
	return []datasource.Option{datasource.WithRateLimit(rate.Limit(n), n)}
}

func buildApp(cfg *config.Config) *app {
	p := cfg.Providers
	res := resolver.New()
	c := cache.New()

	nse := datasource.NewNSE(p.NSE.CookieTTL,
		endpoint(p.NSE.BaseURL, append(perSecond(p.NSE.RequestsPerSecond), datasource.WithTimeout(p.NSE.Timeout))...)...)

	tdOpts := []datasource.Option{datasource.WithTimeout(p.TwelveData.Timeout)}
	if n := p.TwelveData.RequestsPerMinute; n > 0 {
		tdOpts = append(tdOpts, datasource.WithRateLimit(datasource.PerMinute(n), n))
	}
	td := datasource.NewTwelveData(p.TwelveData.APIKey, endpoint(p.TwelveData.BaseURL, tdOpts...)...)

	yahoo := datasource.NewTimeboxed(
		datasource.NewYFinance(endpoint(p.Yahoo.BaseURL, perSecond(p.Yahoo.RequestsPerSecond)...)...),
		p.Yahoo.HardTimeout,
	)

	feeds := datasource.NewFeeds(datasource.FeedsConfig{
		Sources: cfg.News.Feeds,
		Workers: cfg.News.Workers,
		Timeout: cfg.News.Timeout,
		MaxAge:  cfg.News.MaxAge,
		Limit:   cfg.News.Limit,
	})

	svc := market.New(market.Config{
		Resolver:  res,
		Cache:     c,
		Domestic:  nse,
		Licensed:  td,
		Fallback:  yahoo,
		News:      feeds,
		Headlines: feeds,
		FX:        datasource.NewFrankfurter(endpoint(p.Frankfurter.BaseURL)...),
		Funds:     datasource.NewMFAPI(endpoint(p.MFAPI.BaseURL)...),
		TTL:       cfg.Cache.TTL,
		Logger:    log,
	})

	gen := assistant.NewGemini(cfg.Assistant.GeminiAPIKey,
		assistant.WithGeminiModel(cfg.Assistant.Model),
		assistant.WithGeminiLogger(log.With().Str("component", "gemini").Logger()),
	)
	chat := assistant.New(svc, res, gen, assistant.WithLogger(log.With().Str("component", "assistant").Logger()))

	return &app{resolver: res, cache: c, market: svc, chat: chat}
}
