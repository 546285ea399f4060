// Package timeutil hosts internal timing helpers shared across packages.
//
// Example:
//
//	timeutil.Sleep(ctx, 10*time.Millisecond)
package timeutil

import (
	"context"
	"time"
)

// Sleep waits for the provided duration or until the context is done. It
// returns true when the full duration elapsed, or false when the context was
// canceled. A nil ctx waits the full duration.
//
// Example:
//
//	if !Sleep(ctx, cfg.Delay) {
//		return ctx.Err()
//	}
func Sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	if ctx == nil {
		ctx = context.Background()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Clock returns now when it is set, time.Now otherwise.
func Clock(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}

// Stopwatch measures the time between its creation and each Elapsed call.
type Stopwatch struct {
	now   func() time.Time
	start time.Time
}

// Start begins a Stopwatch reading from now (time.Now when nil).
func Start(now func() time.Time) Stopwatch {
	clock := Clock(now)
	return Stopwatch{now: clock, start: clock()}
}

// Elapsed returns the time since Start, never negative.
func (s Stopwatch) Elapsed() time.Duration {
	d := s.now().Sub(s.start)
	if d < 0 {
		return 0
	}
	return d
}
