package market

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/finassist/pkg/models"
	"github.com/seenimoa/finassist/pkg/utils"
)

// GetDashboard fetches quote, profile, metrics and analyst views for query
// concurrently. Each part is cached and fails on its own; the dashboard
// only fails when no quote could be fetched.
func (s *Service) GetDashboard(ctx context.Context, query string) *models.Dashboard {
	t, err := s.resolve(ctx, query)
	if err != nil {
		return &models.Dashboard{Symbol: utils.NormalizeSymbol(query), Error: err.Error()}
	}
	id := t.id

	d := &models.Dashboard{Symbol: id}

	// Each goroutine owns one field; sub-failures are carried in the
	// results, so no goroutine returns an error.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d.Quote = s.quote(gctx, id)
		return nil
	})
	g.Go(func() error {
		d.Profile = s.profile(gctx, id)
		return nil
	})
	g.Go(func() error {
		d.Metrics = s.metrics(gctx, id)
		return nil
	})
	g.Go(func() error {
		d.Analyst = s.analyst(gctx, id)
		return nil
	})
	_ = g.Wait()

	if d.Quote.Error != "" && d.Quote.Current == nil {
		msg := d.Quote.Error
		if t.guessed {
			msg = notFound(query)
		}
		return &models.Dashboard{Symbol: id, Error: msg, Quote: d.Quote}
	}
	d.FetchedAt = s.now().UTC().Format(time.RFC3339)
	return d
}
