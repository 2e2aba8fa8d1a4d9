package market

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/seenimoa/finassist/internal/cache"
	"github.com/seenimoa/finassist/pkg/models"
)

// FundSearch finds mutual-fund schemes by name.
func (s *Service) FundSearch(ctx context.Context, q string) ([]models.FundSummary, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("%w: empty fund query", ErrInvalidArgument)
	}
	if s.funds == nil {
		return nil, errNoProviders
	}

	type result struct {
		hits []models.FundSummary
		err  error
	}
	r := load(s, cache.Key("mfsearch", strings.ToLower(q)), func() (result, time.Duration) {
		hits, err := s.funds.Search(ctx, q)
		if err != nil {
			return result{err: err}, 0
		}
		if hits == nil {
			hits = []models.FundSummary{}
		}
		return result{hits: hits}, s.ttl.FundList
	})
	if r.err != nil {
		return nil, fmt.Errorf("fund search: %w", r.err)
	}
	return r.hits, nil
}

// FundDetail returns a scheme's NAV and trailing returns.
func (s *Service) FundDetail(ctx context.Context, code int) (*models.FundDetail, error) {
	if code <= 0 {
		return nil, fmt.Errorf("%w: scheme code %d", ErrInvalidArgument, code)
	}
	if s.funds == nil {
		return nil, errNoProviders
	}

	type result struct {
		detail *models.FundDetail
		err    error
	}
	r := load(s, cache.Key("mf", strconv.Itoa(code)), func() (result, time.Duration) {
		d, err := s.funds.Scheme(ctx, code)
		if err != nil {
			return result{err: err}, 0
		}
		return result{detail: d}, s.ttl.Fund
	})
	if r.err != nil {
		return nil, fmt.Errorf("fund %d: %w", code, r.err)
	}
	return r.detail, nil
}
