package market

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/finassist/internal/cache"
	"github.com/seenimoa/finassist/internal/datasource"
	"github.com/seenimoa/finassist/internal/fanout"
	"github.com/seenimoa/finassist/pkg/models"
	"github.com/seenimoa/finassist/pkg/utils"
)

const (
	overviewWorkers = 6
	overviewTimeout = 12 * time.Second

	yahooSource  = "Yahoo Finance"
	metalsSource = "MCX Futures via Yahoo Finance"

	defaultUSDINR = 84.0
	moversTop     = 5
	moversIndex   = "NIFTY 50"
)

// trackedIndices is the overview header order. Yahoo is the fallback for
// every NSE index; SENSEX only exists there.
var trackedIndices = []struct {
	name  string
	yahoo string
	nse   bool
}{
	{"NIFTY 50", "^NSEI", true},
	{"SENSEX", "^BSESN", false},
	{"NIFTY BANK", "^NSEBANK", true},
	{"NIFTY IT", "^CNXIT", true},
	{"NIFTY AUTO", "^CNXAUTO", true},
	{"NIFTY MIDCAP 100", "^CNXMDCP100", true},
	{"NIFTY SMALLCAP 250", "NIFTY_SMALLCAP_250.NS", true},
}

// nifty50 is the movers universe used when the NSE index endpoint fails.
var nifty50 = []string{
	"RELIANCE", "TCS", "HDFCBANK", "INFY", "ICICIBANK", "HINDUNILVR", "ITC",
	"SBIN", "BHARTIARTL", "BAJFINANCE", "ASIANPAINT", "MARUTI", "KOTAKBANK",
	"LT", "AXISBANK", "TITAN", "SUNPHARMA", "ULTRACEMCO", "NESTLEIND", "WIPRO",
	"HCLTECH", "TATAMOTORS", "ONGC", "NTPC", "M&M", "POWERGRID", "JSWSTEEL",
	"BAJAJFINSV", "ADANIENT", "ADANIPORTS", "COALINDIA", "TECHM", "INDUSINDBK",
	"TATASTEEL", "GRASIM", "HINDALCO", "CIPLA", "DRREDDY", "EICHERMOT",
	"DIVISLAB", "BRITANNIA", "BAJAJ-AUTO", "APOLLOHOSP", "SBILIFE",
	"HEROMOTOCO", "BPCL", "TATACONSUM", "LTIM", "SHREECEM", "UPL",
}

// MoversKinds lists the accepted Movers kinds.
var MoversKinds = []string{"gainers", "losers", "volume", "turnover"}

// --- Indices ---

// Indices returns the market overview header. NSE indices come from the
// exchange; anything it misses, and SENSEX, is read from Yahoo.
func (s *Service) Indices(ctx context.Context) *models.Indices {
	out := load(s, cache.Key("market", "indices"), func() (*models.Indices, time.Duration) {
		var live map[string]models.IndexValue
		if s.domestic != nil {
			var err error
			if live, err = s.domestic.Indices(ctx); err != nil {
				s.log.Debug().Err(err).Msg("nse indices unavailable, using yahoo")
			}
		}

		found := make(map[string]models.IndexValue, len(trackedIndices))
		var tasks []fanout.Task[models.IndexValue]
		for _, idx := range trackedIndices {
			if v, ok := live[idx.name]; ok && idx.nse {
				v.Name = idx.name
				found[idx.name] = v
				continue
			}
			if s.fallback == nil {
				continue
			}
			tasks = append(tasks, func(ctx context.Context) (models.IndexValue, error) {
				return s.yahooIndex(ctx, idx.name, idx.yahoo)
			})
		}
		if len(tasks) > 0 {
			got, err := fanout.Gather(ctx, overviewWorkers, overviewTimeout, tasks)
			if err != nil {
				s.log.Debug().Err(err).Int("fetched", len(got)).Msg("index fallback incomplete")
			}
			for _, v := range got {
				found[v.Name] = v
			}
		}

		res := &models.Indices{Indices: []models.IndexValue{}, MarketOpen: utils.IsMarketOpenAt(s.now())}
		for _, idx := range trackedIndices {
			if v, ok := found[idx.name]; ok {
				res.Indices = append(res.Indices, v)
			}
		}
		if len(res.Indices) == 0 {
			res.Error = "could not fetch market indices"
			return res, 0
		}
		return res, s.ttl.Overview
	})

	// market_open tracks the clock, not the cached snapshot.
	snap := *out
	snap.MarketOpen = utils.IsMarketOpenAt(s.now())
	return &snap
}

// yahooIndex reads an index level from the last two daily closes.
func (s *Service) yahooIndex(ctx context.Context, name, ticker string) (models.IndexValue, error) {
	bars, err := s.fallback.Series(ctx, ticker, "5d")
	if err != nil {
		return models.IndexValue{}, fmt.Errorf("%s: %w", name, err)
	}
	if len(bars) == 0 {
		return models.IndexValue{}, fmt.Errorf("%s: %w", name, errNoData)
	}
	last := bars[len(bars)-1].Close
	if last <= 0 {
		return models.IndexValue{}, fmt.Errorf("%s: %w", name, errNoData)
	}
	v := models.IndexValue{Name: name, Value: utils.Round(last, 2), Source: yahooSource}
	if len(bars) >= 2 {
		if prev := bars[len(bars)-2].Close; prev > 0 {
			change := utils.Round(last-prev, 2)
			v.Change = &change
			v.Pct = utils.Float(utils.Round((last-prev)/prev*100, 2))
		}
	}
	return v, nil
}

// --- Movers ---

// Movers returns the top five NIFTY 50 constituents for kind, one of
// MoversKinds. An unknown kind is an ErrInvalidArgument.
func (s *Service) Movers(ctx context.Context, kind string) (*models.Movers, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	valid := false
	for _, k := range MoversKinds {
		valid = valid || k == kind
	}
	if !valid {
		return nil, fmt.Errorf("%w: movers kind %q (want one of %s)",
			ErrInvalidArgument, kind, strings.Join(MoversKinds, ", "))
	}

	board := load(s, cache.Key("market", "movers"), func() (*models.Movers, time.Duration) {
		rows, src := s.constituents(ctx)
		if len(rows) == 0 {
			return &models.Movers{Movers: []models.Mover{}, Error: "could not fetch market movers"}, 0
		}
		return &models.Movers{Movers: rows, Source: src}, s.ttl.Overview
	})

	return &models.Movers{
		Kind:   kind,
		Movers: rankMovers(kind, board.Movers),
		Source: board.Source,
		Error:  board.Error,
	}, nil
}

// constituents reads NIFTY 50 rows from NSE, or from Yahoo per symbol.
func (s *Service) constituents(ctx context.Context) ([]models.Mover, string) {
	if s.domestic != nil {
		rows, err := s.domestic.IndexConstituents(ctx, moversIndex)
		if err == nil && len(rows) > 0 {
			return rows, s.domestic.Name()
		}
		s.log.Debug().Err(err).Msg("nse constituents unavailable, using yahoo")
	}
	if s.fallback == nil {
		return nil, ""
	}

	tasks := make([]fanout.Task[models.Mover], 0, len(nifty50))
	for _, sym := range nifty50 {
		tasks = append(tasks, func(ctx context.Context) (models.Mover, error) {
			return s.yahooMover(ctx, sym)
		})
	}
	rows, err := fanout.Gather(ctx, overviewWorkers, overviewTimeout, tasks)
	if err != nil {
		s.log.Debug().Err(err).Int("fetched", len(rows)).Msg("movers fallback incomplete")
	}
	return rows, yahooSource
}

func (s *Service) yahooMover(ctx context.Context, sym string) (models.Mover, error) {
	bars, err := s.fallback.Series(ctx, sym+".NS", "5d")
	if err != nil {
		return models.Mover{}, err
	}
	if len(bars) < 2 {
		return models.Mover{}, fmt.Errorf("%s: %w", sym, errNoData)
	}
	last, prev := bars[len(bars)-1], bars[len(bars)-2]
	if last.Close <= 0 || prev.Close <= 0 {
		return models.Mover{}, fmt.Errorf("%s: %w", sym, errNoData)
	}
	return models.Mover{
		Symbol:   sym,
		Price:    utils.Round(last.Close, 2),
		Change:   utils.Round(last.Close-prev.Close, 2),
		PChange:  utils.Round((last.Close-prev.Close)/prev.Close*100, 2),
		Volume:   last.Volume,
		Turnover: utils.Round(last.Close*float64(last.Volume), 2),
	}, nil
}

// rankMovers filters and orders a copy of rows for kind and keeps the top five.
func rankMovers(kind string, rows []models.Mover) []models.Mover {
	out := make([]models.Mover, 0, len(rows))
	for _, m := range rows {
		if m.Turnover == 0 {
			m.Turnover = utils.Round(m.Price*float64(m.Volume), 2)
		}
		switch kind {
		case "gainers":
			if m.PChange <= 0 {
				continue
			}
		case "losers":
			if m.PChange >= 0 {
				continue
			}
		case "volume":
			if m.Volume <= 0 {
				continue
			}
		case "turnover":
			if m.Turnover <= 0 {
				continue
			}
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch kind {
		case "gainers":
			return out[i].PChange > out[j].PChange
		case "losers":
			return out[i].PChange < out[j].PChange
		case "volume":
			return out[i].Volume > out[j].Volume
		default:
			return out[i].Turnover > out[j].Turnover
		}
	})
	if len(out) > moversTop {
		out = out[:moversTop]
	}
	return out
}

// --- Currency and metals ---

// Currency returns the INR currency board.
func (s *Service) Currency(ctx context.Context) (*models.FXTable, error) {
	if s.fx == nil {
		return nil, errNoProviders
	}
	var fetchErr error
	table := load(s, cache.Key("market", "currency"), func() (*models.FXTable, time.Duration) {
		t, err := s.fx.Rates(ctx, datasource.DefaultCurrencies)
		if err != nil {
			fetchErr = err
			return nil, 0
		}
		return t, s.ttl.Currency
	})
	if table == nil {
		if fetchErr == nil {
			fetchErr = errNoData
		}
		return nil, fmt.Errorf("currency rates: %w", fetchErr)
	}
	return table, nil
}

// Metals returns gold and silver in INR. USD/INR falls back to a fixed
// rate when the FX source is down.
func (s *Service) Metals(ctx context.Context) (*models.Metals, error) {
	if s.fallback == nil {
		return nil, errNoProviders
	}
	var fetchErr error
	board := load(s, cache.Key("market", "metals"), func() (*models.Metals, time.Duration) {
		usdINR := defaultUSDINR
		if s.fx != nil {
			if r, err := s.fx.USDINR(ctx); err == nil && r > 0 {
				usdINR = r
			} else {
				s.log.Debug().Err(err).Float64("default", defaultUSDINR).Msg("usd/inr unavailable")
			}
		}

		m := &models.Metals{USDINR: utils.Round(usdINR, 4), Source: metalsSource}
		var gold, silver error
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			m.Gold, gold = s.fallback.Commodity(gctx, datasource.Gold, usdINR)
			return nil
		})
		g.Go(func() error {
			m.Silver, silver = s.fallback.Commodity(gctx, datasource.Silver, usdINR)
			return nil
		})
		_ = g.Wait()

		if m.Gold == nil && m.Silver == nil {
			fetchErr = errors.Join(gold, silver)
			return nil, 0
		}
		return m, s.ttl.Metals
	})
	if board == nil {
		if fetchErr == nil {
			fetchErr = errNoData
		}
		return nil, fmt.Errorf("metal rates: %w", fetchErr)
	}
	return board, nil
}

// --- Headlines ---

// Headlines returns market-wide headlines, newest first.
func (s *Service) Headlines(ctx context.Context) *models.Headlines {
	if s.headlines == nil {
		return &models.Headlines{Items: []models.Headline{}, Error: errNoProviders.Error()}
	}
	return load(s, cache.Key("market", "headlines"), func() (*models.Headlines, time.Duration) {
		items, err := s.headlines.Headlines(ctx)
		if err != nil || len(items) == 0 {
			s.log.Warn().Err(err).Msg("no market headlines")
			return &models.Headlines{Items: []models.Headline{}, Error: "could not fetch market news"}, 0
		}
		return &models.Headlines{Items: items, Count: len(items)}, s.ttl.Headline
	})
}
