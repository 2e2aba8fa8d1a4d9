package models

import "github.com/seenimoa/finassist/pkg/utils"

// Metrics holds valuation and fundamental ratios. Percent-style fields
// (margins, roe, roa, dividend_yield) are expressed in percent.
type Metrics struct {
	Symbol string `json:"symbol"`

	PERatio       *float64 `json:"pe_ratio"`
	PEForward     *float64 `json:"pe_forward"`
	EPSTTM        *float64 `json:"eps_ttm"`
	EPSForward    *float64 `json:"eps_forward"`
	PriceToBook   *float64 `json:"price_to_book"`
	BookValue     *float64 `json:"book_value"`
	DividendYield *float64 `json:"dividend_yield"`
	EVEBITDA      *float64 `json:"ev_ebitda"`
	MarketCap     *float64 `json:"market_cap"`

	GrossMargins     *float64 `json:"gross_margins"`
	OperatingMargins *float64 `json:"operating_margins"`
	ProfitMargins    *float64 `json:"profit_margins"`

	ROE *float64 `json:"roe"`
	ROA *float64 `json:"roa"`

	DebtEquity   *float64 `json:"debt_equity"`
	CurrentRatio *float64 `json:"current_ratio"`
	QuickRatio   *float64 `json:"quick_ratio"`

	Week52High *float64 `json:"week52_high"`
	Week52Low  *float64 `json:"week52_low"`
	Beta       *float64 `json:"beta"`

	FreeCashflow *float64 `json:"free_cashflow"`
	TotalCash    *float64 `json:"total_cash"`
	TotalDebt    *float64 `json:"total_debt"`

	// Statement inputs for the derived ROE; never serialized.
	NetIncome         *float64 `json:"-"`
	ShareholderEquity *float64 `json:"-"`

	Sources []string `json:"sources"`
	Error   string   `json:"error,omitempty"`
	Detail  string   `json:"detail,omitempty"`
}

func (m *Metrics) fields() []**float64 {
	return []**float64{
		&m.PERatio, &m.PEForward, &m.EPSTTM, &m.EPSForward, &m.PriceToBook,
		&m.BookValue, &m.DividendYield, &m.EVEBITDA, &m.MarketCap,
		&m.GrossMargins, &m.OperatingMargins, &m.ProfitMargins,
		&m.ROE, &m.ROA,
		&m.DebtEquity, &m.CurrentRatio, &m.QuickRatio,
		&m.Week52High, &m.Week52Low, &m.Beta,
		&m.FreeCashflow, &m.TotalCash, &m.TotalDebt,
		&m.NetIncome, &m.ShareholderEquity,
	}
}

// Overlay copies every non-nil numeric field of other over m.
// It reports whether any field was copied.
func (m *Metrics) Overlay(other *Metrics) bool {
	if other == nil {
		return false
	}
	dst, src := m.fields(), other.fields()
	copied := false
	for i := range dst {
		if *src[i] != nil {
			v := **src[i]
			*dst[i] = &v
			copied = true
		}
	}
	return copied
}

// IsEmpty reports whether no public numeric field is set.
func (m *Metrics) IsEmpty() bool {
	for _, f := range m.fields() {
		if f == &m.NetIncome || f == &m.ShareholderEquity {
			continue
		}
		if *f != nil {
			return false
		}
	}
	return true
}

// DeriveROE computes roe from the statement inputs when no provider
// reported it directly and equity is positive.
func (m *Metrics) DeriveROE() {
	if m.ROE != nil || m.NetIncome == nil || m.ShareholderEquity == nil {
		return
	}
	if *m.ShareholderEquity <= 0 {
		return
	}
	roe := utils.Round(*m.NetIncome / *m.ShareholderEquity * 100, 2)
	m.ROE = &roe
}

// AddSource records a contributing provider once.
func (m *Metrics) AddSource(name string) {
	for _, s := range m.Sources {
		if s == name {
			return
		}
	}
	m.Sources = append(m.Sources, name)
}
