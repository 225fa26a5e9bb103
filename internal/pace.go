package internal

import (
	"context"
	"time"
)

// DefaultPaceInterval is the minimum spacing between data requests, derived
// from Reddit's published 100-requests-per-minute allowance.
const DefaultPaceInterval = 600 * time.Millisecond

// Pacer enforces a fixed minimum interval between consecutive API calls.
// It is an unconditional delay after every request completes, not an
// adaptive token bucket: there is no pre-filled burst allowance for a fresh
// process and no credit accrues while the process is idle, so two requests
// can never fire back-to-back. The pacer does not inspect rate-limit
// headers and does not back off on 429; it only prevents self-inflicted
// rate violations.
type Pacer struct {
	interval time.Duration
}

// NewPacer creates a pacer with the given minimum interval. A non-positive
// interval falls back to DefaultPaceInterval.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = DefaultPaceInterval
	}
	return &Pacer{interval: interval}
}

// Pace blocks for the full interval, or until the context is done. It is
// invoked once per data request, after the response is received, so pacing
// happens even when the caller issues no further calls.
func (p *Pacer) Pace(ctx context.Context) error {
	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
