// Package api provides the HTTP REST API server for FinAssist.
//
// It exposes endpoints for quotes, candles, fundamentals, the market
// overview, mutual funds, chat and a WebSocket quote stream.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/seenimoa/finassist/internal/assistant"
	"github.com/seenimoa/finassist/internal/config"
	"github.com/seenimoa/finassist/pkg/models"
)

// MarketService is the data surface the handlers need.
type MarketService interface {
	GetQuote(ctx context.Context, query string) *models.Quote
	GetProfile(ctx context.Context, query string) *models.Profile
	GetMetrics(ctx context.Context, query string) *models.Metrics
	GetCandles(ctx context.Context, query string, tf models.Timeframe) *models.CandleSeries
	GetAnalyst(ctx context.Context, query string) *models.Analyst
	GetNews(ctx context.Context, query string) *models.News
	GetDashboard(ctx context.Context, query string) *models.Dashboard
	Lookup(ctx context.Context, query string) *models.StockSummary

	Indices(ctx context.Context) *models.Indices
	Movers(ctx context.Context, kind string) (*models.Movers, error)
	Currency(ctx context.Context) (*models.FXTable, error)
	Metals(ctx context.Context) (*models.Metals, error)
	Headlines(ctx context.Context) *models.Headlines
	FundSearch(ctx context.Context, q string) ([]models.FundSummary, error)
	FundDetail(ctx context.Context, code int) (*models.FundDetail, error)

	CacheStats() models.CacheStats
	ClearCache(symbol string) []string
	FlushCache() int
}

// Chatter answers chat messages.
type Chatter interface {
	Reply(ctx context.Context, message string) (*assistant.Reply, error)
}

// Deps are the collaborators of a Server.
type Deps struct {
	Config  *config.Config
	Market  MarketService
	Chat    Chatter
	Hub     *QuoteHub
	Logger  zerolog.Logger
	Version string
	Now     func() time.Time
}

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	svc     MarketService
	chat    Chatter
	hub     *QuoteHub
	log     zerolog.Logger
	version string
	now     func() time.Time
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(d Deps) *Server {
	if d.Config == nil {
		d.Config = &config.Config{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Version == "" {
		d.Version = "dev"
	}
	log := d.Logger.With().Str("component", "api").Logger()
	if d.Hub == nil {
		d.Hub = NewQuoteHub(log)
	}
	s := &Server{
		cfg:     d.Config,
		svc:     d.Market,
		chat:    d.Chat,
		hub:     d.Hub,
		log:     log,
		version: d.Version,
		now:     d.Now,
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// Hub returns the WebSocket quote hub.
func (s *Server) Hub() *QuoteHub {
	return s.hub
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("starting HTTP server")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down HTTP server")
	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	timeout := s.cfg.API.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Group(s.mountRoutes)
	r.Route("/api/v1", s.mountRoutes)
	return r
}

func (s *Server) mountRoutes(r chi.Router) {
	r.Get("/health", s.handleHealth)

	// Per-symbol views
	r.Get("/quote", s.handleQuote)
	r.Get("/profile", s.handleProfile)
	r.Get("/metrics", s.handleMetrics)
	r.Get("/candles", s.handleCandles)
	r.Get("/analyst", s.handleAnalyst)
	r.Get("/news", s.handleNews)
	r.Get("/dashboard", s.handleDashboard)
	r.Get("/stock", s.handleStock)

	// Cache
	r.Get("/cache/stats", s.handleCacheStats)
	r.Get("/cache/clear", s.handleCacheClear)

	// Market overview
	r.Get("/market/indices", s.handleIndices)
	r.Get("/market/movers", s.handleMovers)
	r.Get("/market/news", s.handleHeadlines)
	r.Get("/currency", s.handleCurrency)
	r.Get("/metals", s.handleMetals)

	// Mutual funds
	r.Get("/mf/search", s.handleFundSearch)
	r.Get("/mf/{code}", s.handleFundDetail)

	r.Post("/chat", s.handleChat)
	r.Get("/ws/quotes", s.handleWebSocket)
	r.Get("/config/keys", s.handleGetConfigKeys)
}

// loggingMiddleware logs one line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		ev := s.log.Info()
		if ww.Status() >= http.StatusInternalServerError {
			ev = s.log.Warn()
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("failed to write JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
