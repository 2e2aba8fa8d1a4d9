package datasource

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/seenimoa/finassist/pkg/models"
	"github.com/seenimoa/finassist/pkg/utils"
)

const (
	mfapiBaseURL = "https://api.mfapi.in"
	mfapiTimeout = 10 * time.Second

	mfDateLayout = "02-01-2006"
)

// Trailing return horizons in calendar days.
const (
	days1Y = 365
	days3Y = 1095
	days5Y = 1825
)

// MFAPI reads Indian mutual fund NAV history from api.mfapi.in.
type MFAPI struct {
	c *client
}

// NewMFAPI creates the mutual fund adapter.
func NewMFAPI(opts ...Option) *MFAPI {
	return &MFAPI{c: newClient(mfapiBaseURL, mfapiTimeout, opts)}
}

// Name returns the data source name.
func (m *MFAPI) Name() string { return "mfapi" }

type mfSearchHit struct {
	SchemeCode int    `json:"schemeCode"`
	SchemeName string `json:"schemeName"`
}

type mfScheme struct {
	Meta struct {
		FundHouse      string `json:"fund_house"`
		SchemeType     string `json:"scheme_type"`
		SchemeCategory string `json:"scheme_category"`
		SchemeCode     int    `json:"scheme_code"`
		SchemeName     string `json:"scheme_name"`
	} `json:"meta"`
	Data []struct {
		Date string    `json:"date"`
		NAV  flexFloat `json:"nav"`
	} `json:"data"`
	Status string `json:"status"`
}

type navPoint struct {
	date time.Time
	nav  float64
}

// Search returns schemes whose name matches q.
func (m *MFAPI) Search(ctx context.Context, q string) ([]models.FundSummary, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	var hits []mfSearchHit
	if err := m.c.getJSON(ctx, "/mf/search", url.Values{"q": {q}}, nil, &hits); err != nil {
		return nil, fmt.Errorf("mfapi search %q: %w", q, err)
	}
	out := make([]models.FundSummary, 0, len(hits))
	for _, h := range hits {
		out = append(out, models.FundSummary{SchemeCode: h.SchemeCode, SchemeName: h.SchemeName})
	}
	return out, nil
}

// Scheme returns the latest NAV and the 1/3/5-year trailing returns.
func (m *MFAPI) Scheme(ctx context.Context, code int) (*models.FundDetail, error) {
	var s mfScheme
	if err := m.c.getJSON(ctx, "/mf/"+strconv.Itoa(code), nil, nil, &s); err != nil {
		return nil, fmt.Errorf("mfapi scheme %d: %w", code, err)
	}

	// History is newest first.
	points := make([]navPoint, 0, len(s.Data))
	for _, d := range s.Data {
		t, err := time.Parse(mfDateLayout, strings.TrimSpace(d.Date))
		if err != nil || d.NAV.Positive() == nil {
			continue
		}
		points = append(points, navPoint{date: t, nav: d.NAV.Val})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("mfapi scheme %d: no NAV data: %w", code, ErrEmpty)
	}

	latest := points[0]
	return &models.FundDetail{
		SchemeCode:     code,
		SchemeName:     s.Meta.SchemeName,
		FundHouse:      s.Meta.FundHouse,
		SchemeType:     s.Meta.SchemeType,
		SchemeCategory: s.Meta.SchemeCategory,
		LatestNAV:      utils.Float(latest.nav),
		NAVDate:        latest.date.Format(mfDateLayout),
		Return1Y:       trailingReturn(points, days1Y),
		Return3Y:       trailingReturn(points, days3Y),
		Return5Y:       trailingReturn(points, days5Y),
	}, nil
}

// trailingReturn compares the latest NAV with the newest NAV dated on or
// before latest - days. It returns nil when history is too short.
func trailingReturn(points []navPoint, days int) *float64 {
	latest := points[0]
	target := latest.date.AddDate(0, 0, -days)
	for _, p := range points[1:] {
		if !p.date.After(target) {
			v := utils.Round((latest.nav-p.nav)/p.nav*100, 2)
			return &v
		}
	}
	return nil
}
