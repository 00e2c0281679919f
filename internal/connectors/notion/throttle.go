package notion

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/wim-web/bookin/internal/core/domain"
	"github.com/wim-web/bookin/internal/core/ports/driven"
)

// Ensure Throttle implements the driven.Throttle interface.
var _ driven.Throttle = (*Throttle)(nil)

// Throttle spaces calls a fixed interval apart. The first call is immediate.
type Throttle struct {
	limiter  *rate.Limiter
	interval time.Duration
}

// NewThrottle creates a throttle. A non-positive interval uses
// domain.DefaultWriteInterval.
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = domain.DefaultWriteInterval
	}
	return &Throttle{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		interval: interval,
	}
}

// Wait blocks until the next call may proceed or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

// Interval returns the spacing between calls.
func (t *Throttle) Interval() time.Duration {
	return t.interval
}
