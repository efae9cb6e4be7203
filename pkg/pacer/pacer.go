package pacer

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out successive units of work. Batch drivers call Wait before
// each chunk; the implementation decides how long to block.
type Pacer interface {
	Wait(ctx context.Context) error
}

// IntervalPacer blocks each Wait until the interval has elapsed since the
// previous one, so every call is one full inter-chunk delay.
type IntervalPacer struct {
	limiter *rate.Limiter
}

// NewIntervalPacer creates a pacer with the given spacing. A zero or
// negative interval yields a pacer that never blocks.
func NewIntervalPacer(interval time.Duration) *IntervalPacer {
	if interval <= 0 {
		return &IntervalPacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	// Drain the initial token so the first Wait blocks a full interval.
	limiter.Allow()
	return &IntervalPacer{limiter: limiter}
}

// Wait blocks until the pacer permits the next event or ctx is done.
func (p *IntervalPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Nop is a pacer that never blocks, for tests and dry runs.
type Nop struct{}

// Wait returns immediately.
func (Nop) Wait(ctx context.Context) error {
	return ctx.Err()
}
