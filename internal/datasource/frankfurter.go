package datasource

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/seenimoa/finassist/pkg/models"
	"github.com/seenimoa/finassist/pkg/utils"
)

const (
	frankfurterBaseURL = "https://api.frankfurter.app"
	frankfurterTimeout = 8 * time.Second
)

// Currency is display metadata for one quoted currency.
type Currency struct {
	Code   string
	Name   string
	Symbol string
}

// DefaultCurrencies is the currency board order.
var DefaultCurrencies = []Currency{
	{"USD", "US Dollar", "$"},
	{"EUR", "Euro", "€"},
	{"GBP", "British Pound", "£"},
	{"AED", "UAE Dirham", "د.إ"},
	{"SGD", "Singapore Dollar", "S$"},
	{"JPY", "Japanese Yen", "¥"},
	{"CAD", "Canadian Dollar", "C$"},
	{"AUD", "Australian Dollar", "A$"},
	{"CHF", "Swiss Franc", "Fr"},
	{"CNY", "Chinese Yuan", "¥"},
}

// Frankfurter reads ECB reference rates.
type Frankfurter struct {
	c *client
}

// NewFrankfurter creates the FX adapter.
func NewFrankfurter(opts ...Option) *Frankfurter {
	return &Frankfurter{c: newClient(frankfurterBaseURL, frankfurterTimeout, opts)}
}

// Name returns the data source name.
func (f *Frankfurter) Name() string { return "ECB via Frankfurter" }

type frankfurterLatest struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Rates quotes each currency against INR. Currencies without a positive
// rate are left out.
func (f *Frankfurter) Rates(ctx context.Context, currencies []Currency) (*models.FXTable, error) {
	codes := make([]string, 0, len(currencies))
	for _, c := range currencies {
		codes = append(codes, c.Code)
	}

	resp, err := f.latest(ctx, "INR", codes)
	if err != nil {
		return nil, err
	}

	table := &models.FXTable{Base: "INR", Date: resp.Date, Source: f.Name()}
	for _, c := range currencies {
		r, ok := resp.Rates[c.Code]
		if !ok || r <= 0 {
			continue
		}
		table.Rates = append(table.Rates, models.FXRate{
			Code:       c.Code,
			Name:       c.Name,
			Symbol:     c.Symbol,
			INRPerUnit: utils.Round(1/r, 4),
			UnitPerINR: utils.Round(r, 6),
		})
	}
	if len(table.Rates) == 0 {
		return nil, fmt.Errorf("frankfurter rates: %w", ErrEmpty)
	}
	return table, nil
}

// USDINR returns the rupee price of one US dollar.
func (f *Frankfurter) USDINR(ctx context.Context) (float64, error) {
	resp, err := f.latest(ctx, "USD", []string{"INR"})
	if err != nil {
		return 0, err
	}
	r := resp.Rates["INR"]
	if r <= 0 {
		return 0, fmt.Errorf("frankfurter USD/INR: %w", ErrEmpty)
	}
	return r, nil
}

func (f *Frankfurter) latest(ctx context.Context, from string, to []string) (*frankfurterLatest, error) {
	q := url.Values{"from": {from}, "to": {strings.Join(to, ",")}}
	var resp frankfurterLatest
	if err := f.c.getJSON(ctx, "/latest", q, nil, &resp); err != nil {
		return nil, fmt.Errorf("frankfurter latest %s: %w", from, err)
	}
	return &resp, nil
}
