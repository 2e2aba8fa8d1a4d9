// Package resolver maps loosely typed tickers and company names to
// canonical instrument identifiers such as "RELIANCE.NS" or "AAPL".
package resolver

import (
	"sort"
	"strings"
	"unicode"
)

// Result is the outcome of Resolve. When Resolved is false, Symbol holds
// the upper-cased query and the caller decides the exchange.
type Result struct {
	Symbol   string
	Resolved bool
}

// Resolver holds the alias table and the set of known foreign tickers.
// It is immutable after construction and safe for concurrent use.
type Resolver struct {
	aliases map[string]string
	foreign map[string]struct{}
	// alias keys sorted by length desc, then lexicographically
	byLength []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithAliases replaces the built-in alias table. Keys are matched case-insensitively.
func WithAliases(aliases map[string]string) Option {
	return func(r *Resolver) {
		r.aliases = make(map[string]string, len(aliases))
		for k, v := range aliases {
			r.aliases[strings.ToLower(k)] = v
		}
	}
}

// WithForeignSymbols replaces the built-in foreign ticker set.
func WithForeignSymbols(symbols ...string) Option {
	return func(r *Resolver) {
		r.foreign = make(map[string]struct{}, len(symbols))
		for _, s := range symbols {
			r.foreign[strings.ToUpper(s)] = struct{}{}
		}
	}
}

// New creates a resolver with the built-in tables unless overridden.
func New(opts ...Option) *Resolver {
	r := &Resolver{aliases: defaultAliases, foreign: foreignSymbols}
	for _, opt := range opts {
		opt(r)
	}
	r.byLength = make([]string, 0, len(r.aliases))
	for k := range r.aliases {
		r.byLength = append(r.byLength, k)
	}
	sort.Slice(r.byLength, func(i, j int) bool {
		a, b := r.byLength[i], r.byLength[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	return r
}

// Resolve applies, in order: exact alias, explicit suffix, known foreign
// ticker, longest contained alias, shortest containing alias.
func (r *Resolver) Resolve(query string) Result {
	q := strings.TrimPrefix(strings.TrimSpace(query), "$")
	q = strings.TrimSpace(q)
	if q == "" {
		return Result{}
	}
	lower := strings.ToLower(q)
	upper := strings.ToUpper(q)

	if v, ok := r.aliases[lower]; ok {
		return Result{Symbol: v, Resolved: true}
	}
	if strings.Contains(upper, ".") {
		return Result{Symbol: upper, Resolved: true}
	}
	if _, ok := r.foreign[upper]; ok {
		return Result{Symbol: upper, Resolved: true}
	}

	// byLength is longest-first, so the first contained key wins.
	for _, k := range r.byLength {
		if strings.Contains(lower, k) {
			return Result{Symbol: r.aliases[k], Resolved: true}
		}
	}

	// Reverse containment prefers the tightest key. Walk shortest-first.
	for i := len(r.byLength) - 1; i >= 0; i-- {
		k := r.byLength[i]
		if strings.Contains(k, lower) {
			return Result{Symbol: r.reverseWinner(i, lower), Resolved: true}
		}
	}

	return Result{Symbol: upper}
}

// reverseWinner picks, among keys of the same length as byLength[i] that
// contain q, the lexicographically smallest.
func (r *Resolver) reverseWinner(i int, q string) string {
	n := len(r.byLength[i])
	best := r.byLength[i]
	for j := i - 1; j >= 0 && len(r.byLength[j]) == n; j-- {
		if k := r.byLength[j]; strings.Contains(k, q) && k < best {
			best = k
		}
	}
	return r.aliases[best]
}

// IsForeign reports whether sym is a known foreign ticker.
func (r *Resolver) IsForeign(sym string) bool {
	_, ok := r.foreign[strings.ToUpper(sym)]
	return ok
}

// Aliases returns a copy of the alias table.
func (r *Resolver) Aliases() map[string]string {
	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}

// Mentions reports whether text names a known alias as a whole word.
// Returns the first alias found in reading order.
func (r *Resolver) Mentions(text string) (string, bool) {
	words := strings.FieldsFunc(strings.ToLower(text), func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '&'
	})
	for _, w := range words {
		if _, ok := r.aliases[w]; ok {
			return w, true
		}
	}
	return "", false
}
