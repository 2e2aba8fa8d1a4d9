package models

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Candle is a single OHLCV bar. Time is unix seconds.
type Candle struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// CandleSeries is the chart payload for one symbol and timeframe.
type CandleSeries struct {
	Symbol    string    `json:"symbol"`
	Timeframe Timeframe `json:"timeframe"`
	Interval  string    `json:"interval"`
	Candles   []Candle  `json:"candles"`
	Count     int       `json:"count"`
	Source    string    `json:"source,omitempty"`
	Error     string    `json:"error,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// SortDedup orders bars by ascending time and drops duplicate timestamps,
// keeping the last bar seen for each.
func SortDedup(in []Candle) []Candle {
	if len(in) == 0 {
		return in
	}
	byTime := make(map[int64]Candle, len(in))
	for _, c := range in {
		byTime[c.Time] = c
	}
	out := make([]Candle, 0, len(byTime))
	for _, c := range byTime {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// Timeframe is a chart range selector.
type Timeframe string

const (
	Timeframe1D  Timeframe = "1D"
	Timeframe1W  Timeframe = "1W"
	Timeframe1M  Timeframe = "1M"
	Timeframe3M  Timeframe = "3M"
	Timeframe6M  Timeframe = "6M"
	Timeframe1Y  Timeframe = "1Y"
	Timeframe5Y  Timeframe = "5Y"
	TimeframeMax Timeframe = "MAX"
)

// DefaultTimeframe is used when the caller does not pick one.
const DefaultTimeframe = Timeframe3M

// Bar intervals, in Twelve Data notation.
const (
	Interval5Min   = "5min"
	Interval15Min  = "15min"
	Interval1Hour  = "1h"
	Interval1Day   = "1day"
	Interval1Week  = "1week"
	Interval1Month = "1month"
)

// ErrInvalidTimeframe is returned by ParseTimeframe for unknown values.
var ErrInvalidTimeframe = errors.New("invalid timeframe")

type timeframeDef struct {
	interval string
	days     int
}

var timeframes = map[Timeframe]timeframeDef{
	Timeframe1D:  {Interval5Min, 2},
	Timeframe1W:  {Interval15Min, 7},
	Timeframe1M:  {Interval1Hour, 31},
	Timeframe3M:  {Interval1Day, 92},
	Timeframe6M:  {Interval1Day, 183},
	Timeframe1Y:  {Interval1Day, 366},
	Timeframe5Y:  {Interval1Week, 1825},
	TimeframeMax: {Interval1Month, 0},
}

// Timeframes lists the accepted values in ascending range order.
func Timeframes() []Timeframe {
	return []Timeframe{
		Timeframe1D, Timeframe1W, Timeframe1M, Timeframe3M,
		Timeframe6M, Timeframe1Y, Timeframe5Y, TimeframeMax,
	}
}

// ParseTimeframe parses s case-insensitively. Empty input yields DefaultTimeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DefaultTimeframe, nil
	}
	tf := Timeframe(s)
	if _, ok := timeframes[tf]; !ok {
		return "", ErrInvalidTimeframe
	}
	return tf, nil
}

// Interval returns the bar interval for the timeframe.
func (tf Timeframe) Interval() string {
	return timeframes[tf].interval
}

// Lookback returns how far back the timeframe reaches. MAX returns 0.
func (tf Timeframe) Lookback() time.Duration {
	return time.Duration(timeframes[tf].days) * 24 * time.Hour
}

// Window is a concrete request range handed to providers.
// Full means the entire history and leaves Start/End unset.
type Window struct {
	Interval string
	Start    time.Time
	End      time.Time
	Full     bool
}

// WindowFor builds the request window for tf as of now:
// [today - lookback, today + 1 day].
func WindowFor(tf Timeframe, now time.Time) Window {
	def := timeframes[tf]
	if tf == TimeframeMax {
		return Window{Interval: def.interval, Full: true}
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return Window{
		Interval: def.interval,
		Start:    today.AddDate(0, 0, -def.days),
		End:      today.AddDate(0, 0, 1),
	}
}

// DailyWindow is a daily-bar window over the last days calendar days.
func DailyWindow(days int, now time.Time) Window {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return Window{
		Interval: Interval1Day,
		Start:    today.AddDate(0, 0, -days),
		End:      today.AddDate(0, 0, 1),
	}
}

// IsIntraday reports whether the window uses sub-daily bars.
func (w Window) IsIntraday() bool {
	switch w.Interval {
	case Interval5Min, Interval15Min, Interval1Hour:
		return true
	}
	return false
}
