// Package models defines the core data structures used throughout FinAssist.
//
// Numeric fields are pointers: nil marshals as JSON null and means the
// upstream did not report the value.
package models

import "github.com/seenimoa/finassist/pkg/utils"

// Quote is a point-in-time price snapshot for one instrument.
type Quote struct {
	Symbol    string   `json:"symbol"`
	Current   *float64 `json:"current"`
	Change    *float64 `json:"change"`
	ChangePct *float64 `json:"change_pct"`
	Open      *float64 `json:"open"`
	High      *float64 `json:"high"`
	Low       *float64 `json:"low"`
	PrevClose *float64 `json:"prev_close"`
	Volume    *int64   `json:"volume"`
	AvgVolume *int64   `json:"avg_volume"`
	Currency  string   `json:"currency"`
	Source    string   `json:"source,omitempty"`
	Error     string   `json:"error,omitempty"`
	Detail    string   `json:"detail,omitempty"`
}

// Usable reports whether the quote carries a strictly positive current price.
func (q *Quote) Usable() bool {
	return q != nil && q.Current != nil && *q.Current > 0
}

// Normalize rounds prices to 2 places and recomputes change and change_pct
// from current and prev_close whenever both are present.
func (q *Quote) Normalize() {
	q.Current = utils.RoundPtr(q.Current, 2)
	q.Open = utils.RoundPtr(q.Open, 2)
	q.High = utils.RoundPtr(q.High, 2)
	q.Low = utils.RoundPtr(q.Low, 2)
	q.PrevClose = utils.RoundPtr(q.PrevClose, 2)

	if q.Current == nil || q.PrevClose == nil {
		q.Change = utils.RoundPtr(q.Change, 2)
		q.ChangePct = utils.RoundPtr(q.ChangePct, 2)
		return
	}

	change := utils.Round(*q.Current-*q.PrevClose, 2)
	q.Change = &change
	if *q.PrevClose == 0 {
		q.ChangePct = nil
		return
	}
	pct := utils.Round(change / *q.PrevClose * 100, 2)
	q.ChangePct = &pct
}
