// Package assistant answers free-form finance questions. Questions about a
// stock get a line of live market data prepended before they reach the
// language model.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/seenimoa/finassist/internal/resolver"
	"github.com/seenimoa/finassist/pkg/models"
	"github.com/seenimoa/finassist/pkg/utils"
)

// SystemPrompt is the default instruction sent with every request.
const SystemPrompt = "You are FinAssist, a smart Virtual Finance Assistant for Indian AND US markets. " +
	"You specialise in NSE/BSE Indian stocks, US stocks (NYSE/NASDAQ), personal finance, mutual funds, " +
	"banking, taxes, SIP, EMI, FD, and general economics. Be concise."

// ErrEmptyMessage is returned by Reply for a blank message.
var ErrEmptyMessage = errors.New("empty message")

var stockKeywords = []string{
	"price", "stock", "share", "weekly", "week", "today",
	"nse", "bse", "nasdaq", "nyse",
}

// Generator produces a model reply for a prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Lookup fetches a live quote with its weekly summary.
type Lookup interface {
	Lookup(ctx context.Context, query string) *models.StockSummary
}

// Reply is the chat response payload.
type Reply struct {
	Reply  string `json:"reply"`
	Symbol string `json:"symbol,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Assistant wires a lookup and a generator together.
type Assistant struct {
	lookup   Lookup
	resolver *resolver.Resolver
	gen      Generator
	system   string
	log      zerolog.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(a *Assistant) { a.log = log }
}

// WithSystemPrompt overrides SystemPrompt.
func WithSystemPrompt(p string) Option {
	return func(a *Assistant) {
		if strings.TrimSpace(p) != "" {
			a.system = p
		}
	}
}

// New creates an Assistant. A nil resolver uses the built-in tables.
func New(lookup Lookup, res *resolver.Resolver, gen Generator, opts ...Option) *Assistant {
	if res == nil {
		res = resolver.New()
	}
	a := &Assistant{
		lookup:   lookup,
		resolver: res,
		gen:      gen,
		system:   SystemPrompt,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Reply answers message. ErrEmptyMessage and generator errors are returned
// as is; ErrMissingAPIKey in particular passes through unwrapped.
func (a *Assistant) Reply(ctx context.Context, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	out := &Reply{}
	prompt := message
	if query, ok := a.stockQuery(message); ok && a.lookup != nil {
		sum := a.lookup.Lookup(ctx, query)
		if line := contextLine(sum); line != "" {
			out.Symbol = sum.Symbol
			prompt = "LIVE MARKET DATA (fetched right now): " + line + "\n\n" +
				"User question: " + message + "\n" +
				"Present data in a clear structured format."
		} else if sum != nil && sum.Error != "" {
			a.log.Debug().Str("query", query).Str("error", sum.Error).Msg("no live data for chat")
		}
	}

	if a.gen == nil {
		return nil, ErrMissingAPIKey
	}
	text, err := a.gen.Generate(ctx, a.system, prompt)
	if err != nil {
		a.log.Warn().Err(err).Str("symbol", out.Symbol).Msg("chat generation failed")
		return nil, err
	}
	out.Reply = text
	return out, nil
}

// stockQuery reports whether message asks about a stock and returns the text
// to resolve. A named alias or a known foreign ticker is preferred over the
// whole message.
func (a *Assistant) stockQuery(message string) (string, bool) {
	alias, mentioned := a.resolver.Mentions(message)
	if mentioned {
		return alias, true
	}
	for _, w := range strings.FieldsFunc(message, func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '$' && c != '.'
	}) {
		w = strings.TrimPrefix(w, "$")
		if a.resolver.IsForeign(w) {
			return strings.ToUpper(w), true
		}
	}
	lower := strings.ToLower(message)
	for _, k := range stockKeywords {
		if strings.Contains(lower, k) {
			return message, true
		}
	}
	return "", false
}

func contextLine(s *models.StockSummary) string {
	if s == nil || s.Current == nil {
		return ""
	}
	venue := "US"
	if utils.IsDomestic(s.Symbol) {
		venue = "NSE India"
		if utils.Exchange(s.Symbol) == "BSE" {
			venue = "BSE India"
		}
	}
	name := s.Ticker
	if name == "" {
		name = s.Symbol
	}
	price := func(v *float64) string {
		if v == nil {
			return "N/A"
		}
		return utils.FormatPrice(*v, s.Currency)
	}
	num := func(v *float64) float64 {
		if v == nil {
			return 0
		}
		return *v
	}

	line := fmt.Sprintf("[Live data for %s (%s)] Price: %s, Change: %.2f (%s), Open: %s, High: %s, Low: %s, Prev Close: %s",
		name, venue, price(s.Current), num(s.Change), utils.FormatPct(num(s.ChangePct)),
		price(s.Open), price(s.DayHigh), price(s.DayLow), price(s.PrevClose))
	if s.WeekClose != nil {
		line += fmt.Sprintf(", Week High: %s, Week Low: %s, Week Change: %s",
			price(s.WeekHigh), price(s.WeekLow), utils.FormatPct(num(s.WeekPct)))
	}
	return line
}
