// Package utils provides symbol, session-clock and number formatting helpers.
package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Round rounds v half away from zero to places decimals.
// NaN and ±Inf are returned unchanged.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// RoundPtr rounds *v, passing nil (and NaN/Inf, as nil) through.
func RoundPtr(v *float64, places int32) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	r := Round(*v, places)
	return &r
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// PositiveFloat returns a pointer to v, or nil when v is not strictly positive.
func PositiveFloat(v float64) *float64 {
	if v > 0 && !math.IsInf(v, 0) {
		return &v
	}
	return nil
}

// FormatINR formats a number in Indian Rupee format (₹12,34,567.89).
// Uses the Indian numbering system: last 3 digits, then groups of 2.
func FormatINR(amount float64) string {
	d := decimal.NewFromFloat(math.Abs(amount)).Round(2)
	intPart := d.IntPart()
	frac := d.Sub(decimal.NewFromInt(intPart)).StringFixed(2)

	formatted := formatIndianNumber(intPart) + strings.TrimPrefix(frac, "0")
	if amount < 0 && !d.IsZero() {
		return "-₹" + formatted
	}
	return "₹" + formatted
}

// FormatINRCompact formats a number in compact Indian notation.
// e.g., 1927345 → "₹19.27 L", 192734500000 → "₹19273.45 Cr"
func FormatINRCompact(amount float64) string {
	prefix := "₹"
	if amount < 0 {
		prefix = "-₹"
	}
	amount = math.Abs(amount)

	switch {
	case amount >= 1e12:
		return fmt.Sprintf("%s%s L Cr", prefix, formatWithDecimals(amount/1e12))
	case amount >= 1e7:
		return fmt.Sprintf("%s%s Cr", prefix, formatWithDecimals(amount/1e7))
	case amount >= 1e5:
		return fmt.Sprintf("%s%s L", prefix, formatWithDecimals(amount/1e5))
	default:
		return fmt.Sprintf("%s%.2f", prefix, amount)
	}
}

// FormatPrice renders a price in its currency. INR uses Indian grouping;
// other ISO codes known to go-money use their own grapheme and grouping.
func FormatPrice(amount float64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" || currency == "INR" {
		return FormatINR(amount)
	}
	if money.GetCurrency(currency) == nil {
		return fmt.Sprintf("%s %.2f", currency, Round(amount, 2))
	}
	return money.NewFromFloat(amount, currency).Display()
}

// FormatPct formats a percentage value with sign and suffix.
// e.g., 2.45 → "+2.45%", -1.23 → "-1.23%"
func FormatPct(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.2f%%", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// formatIndianNumber formats an integer with Indian grouping (last 3, then 2s).
func formatIndianNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	result := s[len(s)-3:]
	remaining := s[:len(s)-3]
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	return remaining + "," + result
}

// formatWithDecimals formats a number with up to 2 decimal places,
// removing trailing zeros.
func formatWithDecimals(n float64) string {
	s := fmt.Sprintf("%.2f", n)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
