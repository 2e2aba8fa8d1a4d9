package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/finassist/pkg/models"
)

const (
	defaultStreamTimeout = 10 * time.Second
	streamWorkers        = 4
)

// QuoteSource returns a cache-backed quote for a symbol.
type QuoteSource interface {
	GetQuote(ctx context.Context, query string) *models.Quote
}

// Publisher exposes the symbols with live subscribers and delivers quotes to them.
type Publisher interface {
	Symbols() []string
	Publish(symbol string, q *models.Quote) int
}

// QuoteStreamJob refreshes quotes for subscribed symbols and pushes them to
// their subscribers.
type QuoteStreamJob struct {
	quotes  QuoteSource
	hub     Publisher
	timeout time.Duration
	log     zerolog.Logger
}

// NewQuoteStreamJob creates a stream job. A non-positive timeout uses 10s.
func NewQuoteStreamJob(quotes QuoteSource, hub Publisher, timeout time.Duration, log zerolog.Logger) *QuoteStreamJob {
	if timeout <= 0 {
		timeout = defaultStreamTimeout
	}
	return &QuoteStreamJob{
		quotes:  quotes,
		hub:     hub,
		timeout: timeout,
		log:     log.With().Str("job", "quote_stream").Logger(),
	}
}

// Name returns the job name.
func (j *QuoteStreamJob) Name() string { return "quote_stream" }

// Run publishes one quote per subscribed symbol. Quotes that carry an error
// are still published so clients can show the failure. Run fails only when
// no symbol produced a usable price.
func (j *QuoteStreamJob) Run() error {
	symbols := j.hub.Symbols()
	if len(symbols) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	results := make([]*models.Quote, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(streamWorkers)
	for i, sym := range symbols {
		g.Go(func() error {
			results[i] = j.quotes.GetQuote(gctx, sym)
			return nil
		})
	}
	_ = g.Wait()

	usable, delivered := 0, 0
	for i, q := range results {
		if q == nil {
			continue
		}
		if q.Usable() {
			usable++
		}
		delivered += j.hub.Publish(symbols[i], q)
	}
	j.log.Debug().Int("symbols", len(symbols)).Int("usable", usable).Int("delivered", delivered).Msg("quotes streamed")

	if usable == 0 {
		return fmt.Errorf("no usable quotes for %d symbols", len(symbols))
	}
	return nil
}
