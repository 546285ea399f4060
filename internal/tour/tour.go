package tour

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/charmingruby/decor/decor"
	"github.com/charmingruby/decor/hooks"
	"github.com/charmingruby/decor/internal/config"
	"github.com/charmingruby/decor/outcome"
	"github.com/charmingruby/decor/text"
)

// Tour runs the scenarios against one writer. Optional observers (a logger and
// a metrics collector) are layered under every decorator the tour builds.
type Tour struct {
	out       io.Writer
	cfg       config.Config
	logger    *zerolog.Logger
	collector *hooks.Collector
	now       func() time.Time
}

// Option customises a Tour.
type Option func(*Tour)

// WithLogger logs every decorated call.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Tour) {
		t.logger = &logger
	}
}

// WithCollector records every decorated call on c.
func WithCollector(c *hooks.Collector) Option {
	return func(t *Tour) {
		t.collector = c
	}
}

// WithClock replaces time.Now for the timing scenario.
func WithClock(now func() time.Time) Option {
	return func(t *Tour) {
		t.now = now
	}
}

// New prepares a Tour writing to w.
func New(w io.Writer, cfg config.Config, opts ...Option) *Tour {
	t := &Tour{out: w, cfg: cfg}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Scenario is one named step of the tour.
type Scenario struct {
	Name  string
	Short string
	Run   func(*Tour) error
}

// Scenarios lists the steps in the order they are told.
func Scenarios() []Scenario {
	return []Scenario{
		{"greeting", "call a plain function", (*Tour).Greeting},
		{"higher-order", "pass a function as an argument", (*Tour).HigherOrder},
		{"meeting", "define and return inner functions", (*Tour).Meeting},
		{"basic", "wrap a function with before/after steps", (*Tour).Basic},
		{"args", "forward arbitrary arguments through a wrapper", (*Tour).WithArgs},
		{"party", "decorate a function that takes a guest", (*Tour).Party},
		{"timing", "time a function", (*Tour).Timing},
		{"text", "stack two text decorators", (*Tour).Text},
		{"add", "announce start and end of an addition", (*Tour).Add},
	}
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, bool) {
	i := slices.IndexFunc(Scenarios(), func(s Scenario) bool { return s.Name == name })
	if i < 0 {
		return Scenario{}, false
	}
	return Scenarios()[i], true
}

// All runs every scenario, stopping at the first error.
func (t *Tour) All() error {
	for _, s := range Scenarios() {
		fmt.Fprintf(t.out, "== %s\n", s.Name)
		if err := s.Run(t); err != nil {
			return fmt.Errorf("tour: %s: %w", s.Name, err)
		}
	}
	return nil
}

// observers returns the logging and metrics layers configured on t, to sit
// innermost in every chain.
func observers[A any, R any](t *Tour) []decor.Decorator[A, R] {
	var ds []decor.Decorator[A, R]
	if t.logger != nil {
		ds = append(ds, hooks.Log[A, R](*t.logger))
	}
	if t.collector != nil {
		ds = append(ds, hooks.Metrics[A, R](t.collector))
	}
	return ds
}

func chain[A any, R any](t *Tour, target decor.Callable[A, R], outer ...decor.Decorator[A, R]) decor.Callable[A, R] {
	return decor.Chain(target, append(outer, observers[A, R](t)...)...)
}

// Greeting calls SayHi directly.
func (t *Tour) Greeting() error {
	fmt.Fprintln(t.out, SayHi(t.cfg.Name))
	return nil
}

// HigherOrder hands SayHi to SayHello.
func (t *Tour) HigherOrder() error {
	fmt.Fprintln(t.out, SayHello(SayHi))
	return nil
}

// Meeting keeps one of the returned inner functions and calls it again.
func (t *Tour) Meeting() error {
	hiFromJohn, _ := Meeting(t.out)
	hiFromJohn()
	return nil
}

// Basic wraps a no-argument greeting and shows its name survived.
func (t *Tour) Basic() error {
	sayHi := decor.Named(decor.Meta{Name: "say_hi", Package: "tour"}, func(struct{}) (struct{}, error) {
		fmt.Fprintln(t.out, "Hello")
		return struct{}{}, nil
	})
	wrapped := chain(t, sayHi, hooks.Announce[struct{}, struct{}](t.out,
		"Do something before the function call.",
		"Do something after the function call.",
	))
	if _, err := wrapped.Call(struct{}{}); err != nil {
		return err
	}
	fmt.Fprintf(t.out, "name: %s\n", wrapped.Meta().Name)
	return nil
}

// WithArgs forwards positional arguments through a signature-preserving
// wrapper.
func (t *Tour) WithArgs() error {
	greet := func(name string) {
		fmt.Fprintf(t.out, "Hello %s\n", name)
	}
	wrapped, _ := decor.WrapFunc(greet, decor.Hooks[decor.Args, []any]{
		Before: func(decor.Call[decor.Args]) { fmt.Fprintln(t.out, "Do something before the function call.") },
		After: func(decor.Call[decor.Args], outcome.Outcome[[]any]) {
			fmt.Fprintln(t.out, "Do something after the function call.")
		},
	})
	wrapped(t.cfg.Name)
	return nil
}

// Party decorates a function of one argument.
func (t *Tour) Party() error {
	bora := decor.Named(decor.Meta{Name: "bora", Package: "tour"}, func(withWho string) (struct{}, error) {
		fmt.Fprintf(t.out, "I am eating, drinking, dancing with my friends %s!\n", withWho)
		return struct{}{}, nil
	})
	partyBoy := hooks.Announce[string, struct{}](t.out, "Welcome to party!", "Goodbye!")
	_, err := chain(t, bora, partyBoy).Call(t.cfg.Guest)
	return err
}

// Timing reports how long SumOfEvenNumbers takes.
func (t *Tour) Timing() error {
	sum := decor.Named(decor.Meta{Name: "sum_of_even_numbers", Package: "tour"}, func(n int) (int, error) {
		return SumOfEvenNumbers(n), nil
	})
	timed := chain(t, sum, hooks.Timer[int, int](t.out, hooks.WithClock(t.now)))
	total, err := timed.Call(t.cfg.SumLimit)
	if err != nil {
		return err
	}
	fmt.Fprintf(t.out, "sum of even numbers below %d: %d\n", t.cfg.SumLimit, total)
	return nil
}

// Text stacks Split over Uppercase.
func (t *Tour) Text() error {
	makeText := chain[string, string](t, decor.Func[string, string](MakeText))
	words, err := text.Split(text.Uppercase(makeText)).Call(t.cfg.Text)
	if err != nil {
		return err
	}
	fmt.Fprintln(t.out, words)
	return nil
}

// Add announces the start and end of an addition.
func (t *Tour) Add() error {
	add := chain[Pair, int](t, decor.Func[Pair, int](Add), hooks.Announce[Pair, int](t.out, "start", "end {result}"))
	result, err := add.Call(Pair{A: 2, B: 3})
	if err != nil {
		return err
	}
	fmt.Fprintf(t.out, "%s returned %d\n", add.Meta().Name, result)
	return nil
}
