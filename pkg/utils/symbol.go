package utils

import (
	"strings"
	"unicode/utf8"
)

// Exchange suffixes used by domestic identifiers.
const (
	SuffixNSE = ".NS"
	SuffixBSE = ".BO"
)

// NormalizeSymbol trims, upper-cases and strips a leading "$" from user input.
func NormalizeSymbol(s string) string {
	s = strings.TrimSpace(strings.ToUpper(s))
	s = strings.TrimPrefix(s, "$")
	return strings.TrimSpace(s)
}

// IsDomestic reports whether the identifier is listed on NSE or BSE.
func IsDomestic(id string) bool {
	id = strings.ToUpper(id)
	return strings.HasSuffix(id, SuffixNSE) || strings.HasSuffix(id, SuffixBSE)
}

// BaseSymbol strips the domestic exchange suffix: "RELIANCE.NS" → "RELIANCE".
func BaseSymbol(id string) string {
	id = strings.ToUpper(id)
	id = strings.TrimSuffix(id, SuffixNSE)
	return strings.TrimSuffix(id, SuffixBSE)
}

// Exchange returns "NSE", "BSE" or "" for foreign identifiers.
func Exchange(id string) string {
	id = strings.ToUpper(id)
	switch {
	case strings.HasSuffix(id, SuffixNSE):
		return "NSE"
	case strings.HasSuffix(id, SuffixBSE):
		return "BSE"
	}
	return ""
}

// ToTwelveData converts an identifier to Twelve Data's exchange notation:
// "RELIANCE.NS" → "RELIANCE:NSE", "AAPL" → "AAPL".
func ToTwelveData(id string) string {
	if ex := Exchange(id); ex != "" {
		return BaseSymbol(id) + ":" + ex
	}
	return strings.ToUpper(id)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
