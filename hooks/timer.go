package hooks

import (
	"fmt"
	"io"
	"time"

	"github.com/charmingruby/decor/decor"
	"github.com/charmingruby/decor/outcome"
)

// DefaultTimerFormat receives the function name and the elapsed seconds.
const DefaultTimerFormat = "Finished %q in %.4f secs\n"

type timerConfig struct {
	now    func() time.Time
	format string
}

// TimerOption customises Timer.
type TimerOption func(*timerConfig)

// WithClock replaces time.Now as the timer's clock.
func WithClock(now func() time.Time) TimerOption {
	return func(c *timerConfig) {
		c.now = now
	}
}

// WithFormat replaces DefaultTimerFormat.
func WithFormat(format string) TimerOption {
	return func(c *timerConfig) {
		if format != "" {
			c.format = format
		}
	}
}

// Timer reports how long each call took, failed calls included.
//
// Example:
//
//	timed := decor.Chain[int, int](decor.Func[int, int](sumOfEvenNumbers), hooks.Timer[int, int](os.Stdout))
//	timed.Call(100 * 100) // Finished "sumOfEvenNumbers" in 0.0001 secs
func Timer[A any, R any](w io.Writer, opts ...TimerOption) decor.Decorator[A, R] {
	cfg := timerConfig{format: DefaultTimerFormat}
	for _, opt := range opts {
		opt(&cfg)
	}
	return decor.Decorate(decor.Hooks[A, R]{
		Now: cfg.now,
		After: func(call decor.Call[A], out outcome.Outcome[R]) {
			fmt.Fprintf(w, cfg.format, call.Meta.Name, out.Elapsed().Seconds())
		},
	})
}
