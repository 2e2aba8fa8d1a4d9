package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/seenimoa/finassist/internal/assistant"
	"github.com/seenimoa/finassist/internal/datasource"
	"github.com/seenimoa/finassist/internal/market"
	"github.com/seenimoa/finassist/pkg/models"
	"github.com/seenimoa/finassist/pkg/utils"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// symbolParam reads ?symbol=, writing a 400 when it is missing.
func (s *Server) symbolParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	sym := utils.NormalizeSymbol(r.URL.Query().Get("symbol"))
	if sym == "" {
		s.writeError(w, http.StatusBadRequest, "Missing symbol")
		return "", false
	}
	return sym, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"market":  utils.MarketStatus(now),
		"time":    utils.FormatDateTimeIST(now),
		"version": s.version,
	})
}

// ── Per-symbol views ──

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	sym, ok := s.symbolParam(w, r)
	if !ok {
		return
	}
	q := s.svc.GetQuote(r.Context(), sym)
	status := http.StatusOK
	if q.Current == nil {
		status = http.StatusBadGateway
	}
	s.writeJSON(w, status, q)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if sym, ok := s.symbolParam(w, r); ok {
		s.writeJSON(w, http.StatusOK, s.svc.GetProfile(r.Context(), sym))
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if sym, ok := s.symbolParam(w, r); ok {
		s.writeJSON(w, http.StatusOK, s.svc.GetMetrics(r.Context(), sym))
	}
}

func (s *Server) handleAnalyst(w http.ResponseWriter, r *http.Request) {
	if sym, ok := s.symbolParam(w, r); ok {
		s.writeJSON(w, http.StatusOK, s.svc.GetAnalyst(r.Context(), sym))
	}
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if sym, ok := s.symbolParam(w, r); ok {
		s.writeJSON(w, http.StatusOK, s.svc.GetNews(r.Context(), sym))
	}
}

func (s *Server) handleCandles(w http.ResponseWriter, r *http.Request) {
	sym, ok := s.symbolParam(w, r)
	if !ok {
		return
	}
	tf, err := models.ParseTimeframe(r.URL.Query().Get("timeframe"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid timeframe")
		return
	}
	series := s.svc.GetCandles(r.Context(), sym, tf)
	status := http.StatusOK
	if len(series.Candles) == 0 {
		status = http.StatusBadGateway
	}
	s.writeJSON(w, status, series)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sym, ok := s.symbolParam(w, r)
	if !ok {
		return
	}
	d := s.svc.GetDashboard(r.Context(), sym)
	if d.Error != "" && (d.Quote == nil || d.Quote.Current == nil) {
		s.writeError(w, http.StatusBadGateway, d.Error)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		q = strings.TrimSpace(r.URL.Query().Get("symbol"))
	}
	if q == "" {
		s.writeError(w, http.StatusBadRequest, "Missing symbol")
		return
	}
	sum := s.svc.Lookup(r.Context(), q)
	status := http.StatusOK
	if sum.Current == nil {
		status = http.StatusBadGateway
	}
	s.writeJSON(w, status, sum)
}

// ── Cache ──

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.CacheStats())
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	sym := utils.NormalizeSymbol(r.URL.Query().Get("symbol"))
	if sym == "" {
		n := s.svc.FlushCache()
		s.writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "cleared_all": n})
		return
	}
	cleared := s.svc.ClearCache(sym)
	if cleared == nil {
		cleared = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "cleared": cleared})
}

// ── Market overview ──

func (s *Server) handleIndices(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Indices(r.Context()))
}

func (s *Server) handleMovers(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if strings.TrimSpace(kind) == "" {
		kind = market.MoversKinds[0]
	}
	m, err := s.svc.Movers(r.Context(), kind)
	if err != nil {
		if errors.Is(err, market.ErrInvalidArgument) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleHeadlines(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Headlines(r.Context()))
}

func (s *Server) handleCurrency(w http.ResponseWriter, r *http.Request) {
	fx, err := s.svc.Currency(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, fx)
}

func (s *Server) handleMetals(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.Metals(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

// ── Mutual funds ──

func (s *Server) handleFundSearch(w http.ResponseWriter, r *http.Request) {
	hits, err := s.svc.FundSearch(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, fundStatus(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, hits)
}

func (s *Server) handleFundDetail(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid scheme code")
		return
	}
	d, err := s.svc.FundDetail(r.Context(), code)
	if err != nil {
		s.writeError(w, fundStatus(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func fundStatus(err error) int {
	var httpErr *datasource.ErrHTTP
	switch {
	case errors.Is(err, market.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, datasource.ErrEmpty):
		return http.StatusNotFound
	case errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound:
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// ── Chat ──

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if s.chat == nil {
		s.writeError(w, http.StatusServiceUnavailable, assistant.ErrMissingAPIKey.Error())
		return
	}

	reply, err := s.chat.Reply(r.Context(), req.Message)
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, reply)
	case errors.Is(err, assistant.ErrEmptyMessage):
		s.writeError(w, http.StatusBadRequest, "message is required")
	case errors.Is(err, assistant.ErrMissingAPIKey):
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.writeError(w, http.StatusBadGateway, err.Error())
	}
}
