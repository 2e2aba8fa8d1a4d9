package datasource

import (
	"context"
	"time"

	"github.com/seenimoa/finassist/internal/fanout"
	"github.com/seenimoa/finassist/pkg/models"
)

// DefaultHardTimeout bounds every fallback call.
const DefaultHardTimeout = 8 * time.Second

// Fallback is a Provider that also serves raw daily series and commodity
// boards. YFinance implements it.
type Fallback interface {
	Provider
	Series(ctx context.Context, ticker, rangeStr string) ([]models.Candle, error)
	Commodity(ctx context.Context, c Commodity, usdINR float64) (*models.MetalRate, error)
}

// Timeboxed wraps a Fallback so that no call blocks longer than its hard
// timeout. An expired call returns fanout.ErrDeadline at once; the
// abandoned request is cancelled through its context.
type Timeboxed struct {
	inner   Fallback
	timeout time.Duration
}

// NewTimeboxed wraps inner. A non-positive timeout uses DefaultHardTimeout.
func NewTimeboxed(inner Fallback, timeout time.Duration) *Timeboxed {
	if timeout <= 0 {
		timeout = DefaultHardTimeout
	}
	return &Timeboxed{inner: inner, timeout: timeout}
}

func (t *Timeboxed) Name() string { return t.inner.Name() }

func (t *Timeboxed) Quote(ctx context.Context, id string) (*models.Quote, error) {
	return fanout.Deadline(ctx, t.timeout, func(ctx context.Context) (*models.Quote, error) {
		return t.inner.Quote(ctx, id)
	})
}

func (t *Timeboxed) Profile(ctx context.Context, id string) (*models.Profile, error) {
	return fanout.Deadline(ctx, t.timeout, func(ctx context.Context) (*models.Profile, error) {
		return t.inner.Profile(ctx, id)
	})
}

func (t *Timeboxed) Metrics(ctx context.Context, id string) (*models.Metrics, error) {
	return fanout.Deadline(ctx, t.timeout, func(ctx context.Context) (*models.Metrics, error) {
		return t.inner.Metrics(ctx, id)
	})
}

func (t *Timeboxed) Candles(ctx context.Context, id string, w models.Window) ([]models.Candle, error) {
	return fanout.Deadline(ctx, t.timeout, func(ctx context.Context) ([]models.Candle, error) {
		return t.inner.Candles(ctx, id, w)
	})
}

func (t *Timeboxed) News(ctx context.Context, id string, limit int) ([]models.NewsArticle, error) {
	return fanout.Deadline(ctx, t.timeout, func(ctx context.Context) ([]models.NewsArticle, error) {
		return t.inner.News(ctx, id, limit)
	})
}

func (t *Timeboxed) Analyst(ctx context.Context, id string) (*models.AnalystRatings, error) {
	return fanout.Deadline(ctx, t.timeout, func(ctx context.Context) (*models.AnalystRatings, error) {
		return t.inner.Analyst(ctx, id)
	})
}

func (t *Timeboxed) Series(ctx context.Context, ticker, rangeStr string) ([]models.Candle, error) {
	return fanout.Deadline(ctx, t.timeout, func(ctx context.Context) ([]models.Candle, error) {
		return t.inner.Series(ctx, ticker, rangeStr)
	})
}

func (t *Timeboxed) Commodity(ctx context.Context, c Commodity, usdINR float64) (*models.MetalRate, error) {
	return fanout.Deadline(ctx, t.timeout, func(ctx context.Context) (*models.MetalRate, error) {
		return t.inner.Commodity(ctx, c, usdINR)
	})
}

var (
	_ Fallback = (*YFinance)(nil)
	_ Fallback = (*Timeboxed)(nil)
	_ Provider = (*NSE)(nil)
	_ Provider = (*TwelveData)(nil)
	_ Provider = (*Feeds)(nil)
)
