package market

import (
	"context"
	"time"

	"github.com/seenimoa/finassist/internal/cache"
	"github.com/seenimoa/finassist/pkg/models"
	"github.com/seenimoa/finassist/pkg/utils"
)

// Lookup resolves a free-form query and returns the live quote with a
// five-session summary. A weekly failure leaves the week fields null.
func (s *Service) Lookup(ctx context.Context, query string) *models.StockSummary {
	out := &models.StockSummary{Query: query}
	t, err := s.resolve(ctx, query)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	id := t.id
	out.Symbol = id
	out.Ticker = utils.BaseSymbol(id)
	out.Currency = defaultCurrency(id)

	q := s.quote(ctx, id)
	switch {
	case q.Error != "" && t.guessed:
		out.Error = notFound(query)
	case q.Error != "":
		out.Error = q.Error
	default:
		out.Current = q.Current
		out.Open = q.Open
		out.PrevClose = q.PrevClose
		out.DayHigh = q.High
		out.DayLow = q.Low
		out.Change = q.Change
		out.ChangePct = q.ChangePct
		out.Currency = q.Currency
	}

	if bars := s.week(ctx, id); len(bars) > 0 {
		applyWeek(out, bars)
	}
	return out
}

func (s *Service) week(ctx context.Context, id string) []models.Candle {
	if s.fallback == nil {
		return nil
	}
	return load(s, cache.Key("week", id), func() ([]models.Candle, time.Duration) {
		bars, err := s.fallback.Series(ctx, id, "5d")
		if err != nil {
			s.log.Debug().Err(err).Str("symbol", id).Msg("weekly series unavailable")
			return nil, 0
		}
		return bars, s.ttl.Candles.For(id, s.now())
	})
}

func applyWeek(out *models.StockSummary, bars []models.Candle) {
	open := bars[0].Open
	last := bars[len(bars)-1].Close
	high, low := bars[0].High, bars[0].Low
	for _, b := range bars[1:] {
		high = max(high, b.High)
		low = min(low, b.Low)
	}

	change := utils.Round(last-open, 2)
	out.WeekOpen = utils.Float(utils.Round(open, 2))
	out.WeekClose = utils.Float(utils.Round(last, 2))
	out.WeekHigh = utils.Float(utils.Round(high, 2))
	out.WeekLow = utils.Float(utils.Round(low, 2))
	out.WeekChange = &change
	if open != 0 {
		out.WeekPct = utils.Float(utils.Round(change/open*100, 2))
	}
}
