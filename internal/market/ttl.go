package market

import (
	"time"

	"github.com/seenimoa/finassist/pkg/utils"
)

// SessionTTL pairs the TTL used while the instrument's exchange is in session
// with the one used outside it.
type SessionTTL struct {
	Open   time.Duration `mapstructure:"open"`
	Closed time.Duration `mapstructure:"closed"`
}

// TTLPolicy is the per-operation cache lifetime table.
type TTLPolicy struct {
	Quote    SessionTTL    `mapstructure:"quote"`
	Profile  time.Duration `mapstructure:"profile"`
	Metrics  SessionTTL    `mapstructure:"metrics"`
	Candles  SessionTTL    `mapstructure:"candles"`
	Analyst  time.Duration `mapstructure:"analyst"`
	News     time.Duration `mapstructure:"news"`
	Resolve  time.Duration `mapstructure:"resolve"`
	Overview time.Duration `mapstructure:"overview"`
	Currency time.Duration `mapstructure:"currency"`
	Metals   time.Duration `mapstructure:"metals"`
	Headline time.Duration `mapstructure:"headlines"`
	FundList time.Duration `mapstructure:"fund_search"`
	Fund     time.Duration `mapstructure:"fund_detail"`
}

// DefaultTTLPolicy returns the stock lifetimes.
func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		Quote:    SessionTTL{Open: 30 * time.Second, Closed: 5 * time.Minute},
		Profile:  24 * time.Hour,
		Metrics:  SessionTTL{Open: time.Hour, Closed: 6 * time.Hour},
		Candles:  SessionTTL{Open: time.Minute, Closed: 30 * time.Minute},
		Analyst:  time.Hour,
		News:     5 * time.Minute,
		Resolve:  24 * time.Hour,
		Overview: time.Minute,
		Currency: time.Hour,
		Metals:   5 * time.Minute,
		Headline: 5 * time.Minute,
		FundList: 6 * time.Hour,
		Fund:     time.Hour,
	}
}

// withDefaults fills zero entries from DefaultTTLPolicy.
func (p TTLPolicy) withDefaults() TTLPolicy {
	d := DefaultTTLPolicy()
	fillWindow(&p.Quote, d.Quote)
	fillWindow(&p.Metrics, d.Metrics)
	fillWindow(&p.Candles, d.Candles)
	for _, f := range []struct{ dst, def *time.Duration }{
		{&p.Profile, &d.Profile},
		{&p.Analyst, &d.Analyst},
		{&p.News, &d.News},
		{&p.Resolve, &d.Resolve},
		{&p.Overview, &d.Overview},
		{&p.Currency, &d.Currency},
		{&p.Metals, &d.Metals},
		{&p.Headline, &d.Headline},
		{&p.FundList, &d.FundList},
		{&p.Fund, &d.Fund},
	} {
		if *f.dst <= 0 {
			*f.dst = *f.def
		}
	}
	return p
}

func fillWindow(w *SessionTTL, def SessionTTL) {
	if w.Open <= 0 {
		w.Open = def.Open
	}
	if w.Closed <= 0 {
		w.Closed = def.Closed
	}
}

// For picks the lifetime for id at now, by the session of id's exchange.
func (w SessionTTL) For(id string, now time.Time) time.Duration {
	if utils.SessionFor(id).IsOpenAt(now) {
		return w.Open
	}
	return w.Closed
}
