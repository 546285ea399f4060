// Package decor builds wrappers around functions: a wrapper forwards every call
// to one captured target, may run side effects before and after it, returns
// the target's results untouched and reports the target's identity as its own.
//
// Example:
//
//	add := decor.Func[Pair, int](func(p Pair) (int, error) { return p.A + p.B, nil })
//	logged := decor.Wrap(add, decor.Hooks[Pair, int]{
//		Before: func(decor.Call[Pair]) { fmt.Println("start") },
//		After: func(_ decor.Call[Pair], o outcome.Outcome[int]) {
//			fmt.Println("end", o.Value())
//		},
//	})
//	sum, _ := logged.Call(Pair{2, 3}) // prints "start", "end 5"; sum == 5
//	fmt.Println(logged.Meta().Name)   // the name of add, not of the wrapper
package decor

import (
	"time"

	"github.com/charmingruby/decor/internal/timeutil"
	"github.com/charmingruby/decor/outcome"
)

// Callable is anything that can be invoked with arguments A and reports an
// identity. Targets and wrappers share this shape, which is what makes
// wrapping stackable.
type Callable[A any, R any] interface {
	Call(args A) (R, error)
	Meta() Meta
}

// Func adapts an ordinary function into a Callable whose identity is the
// function's runtime symbol.
//
// Example:
//
//	var greet decor.Func[string, string] = sayHi
//	fmt.Println(greet.Meta().Name) // sayHi
type Func[A any, R any] func(args A) (R, error)

// Call invokes f.
func (f Func[A, R]) Call(args A) (R, error) {
	return f(args)
}

// Meta reports the runtime identity of f.
func (f Func[A, R]) Meta() Meta {
	return MetaOf(f)
}

// Named attaches an explicit identity to fn, for closures and method values
// whose runtime symbol is not meaningful.
//
// Example:
//
//	hi := decor.Named(decor.Meta{Name: "say_hi"}, func(name string) (string, error) {
//		return "Hello " + name, nil
//	})
func Named[A any, R any](meta Meta, fn func(A) (R, error)) Callable[A, R] {
	return named[A, R]{meta: meta, fn: fn}
}

type named[A any, R any] struct {
	meta Meta
	fn   func(A) (R, error)
}

func (n named[A, R]) Call(args A) (R, error) { return n.fn(args) }
func (n named[A, R]) Meta() Meta             { return n.meta }

// Call is what hooks observe about an invocation: who was called and with
// what. Args is the value received by the wrapper, passed on as-is.
type Call[A any] struct {
	Meta Meta
	Args A
}

// Hooks are the optional side effects of a Wrapper. Nil hooks are skipped, so
// the zero Hooks yields a wrapper indistinguishable from its target.
//
// Now is the clock used to measure the elapsed time reported to After; it
// defaults to time.Now.
type Hooks[A any, R any] struct {
	Before func(call Call[A])
	After  func(call Call[A], out outcome.Outcome[R])
	Now    func() time.Time
}

// Wrapper is a Callable that delegates to exactly one target captured at
// construction. It holds no per-call state, so it is safe for concurrent use
// whenever its target and hooks are.
type Wrapper[A any, R any] struct {
	meta   Meta
	target Callable[A, R]
	hooks  Hooks[A, R]
	around func(call Call[A], next Func[A, R]) (R, error)
}

// Wrap builds a Wrapper around target. Nothing runs at construction time; the
// target's identity is copied into the wrapper right away.
//
// Wrap panics when target is nil.
//
// Example:
//
//	w := decor.Wrap(target, decor.Hooks[string, string]{
//		Before: func(decor.Call[string]) { fmt.Println("Do something before the function call.") },
//	})
func Wrap[A any, R any](target Callable[A, R], hooks Hooks[A, R]) *Wrapper[A, R] {
	if target == nil {
		panic("decor: Wrap on nil target")
	}
	return &Wrapper[A, R]{meta: target.Meta(), target: target, hooks: hooks}
}

// Around builds a Wrapper whose body is fn. fn receives the call and next,
// which is bound to target; fn decides whether, when and how often next runs.
// Use it for behavior that a before/after pair cannot express, such as retries.
//
// Example:
//
//	twice := decor.Around(target, func(call decor.Call[int], next decor.Func[int, int]) (int, error) {
//		if _, err := next(call.Args); err != nil {
//			return 0, err
//		}
//		return next(call.Args)
//	})
func Around[A any, R any](target Callable[A, R], fn func(call Call[A], next Func[A, R]) (R, error)) *Wrapper[A, R] {
	w := Wrap(target, Hooks[A, R]{})
	w.around = fn
	return w
}

// WithHooks returns a copy of w that additionally runs hooks around its body.
// The receiver is left untouched.
func (w *Wrapper[A, R]) WithHooks(hooks Hooks[A, R]) *Wrapper[A, R] {
	clone := *w
	clone.hooks = hooks
	return &clone
}

// Call runs the before hook, delegates to the target with args unchanged,
// runs the after hook with the outcome and returns the target's results.
// Panics raised by the target are not recovered; the after hook does not run
// for them.
func (w *Wrapper[A, R]) Call(args A) (R, error) {
	call := Call[A]{Meta: w.meta, Args: args}
	if w.hooks.Before != nil {
		w.hooks.Before(call)
	}
	if w.hooks.After == nil {
		return w.invoke(call)
	}
	sw := timeutil.Start(w.hooks.Now)
	value, err := w.invoke(call)
	w.hooks.After(call, outcome.New(value, err, sw.Elapsed()))
	return value, err
}

// withTarget returns a copy of w delegating to target instead.
func (w *Wrapper[A, R]) withTarget(target Callable[A, R]) *Wrapper[A, R] {
	clone := *w
	clone.target = target
	return &clone
}

func (w *Wrapper[A, R]) invoke(call Call[A]) (R, error) {
	if w.around != nil {
		return w.around(call, w.target.Call)
	}
	return w.target.Call(call.Args)
}

// Meta returns the identity copied from the target.
func (w *Wrapper[A, R]) Meta() Meta {
	return w.meta
}

// Name is shorthand for Meta().Name.
func (w *Wrapper[A, R]) Name() string {
	return w.meta.Name
}

// Unwrap returns the captured target.
func (w *Wrapper[A, R]) Unwrap() Callable[A, R] {
	return w.target
}

// Func exposes w as a plain function value. The function value itself has no
// useful runtime symbol; keep the Wrapper around when identity matters.
func (w *Wrapper[A, R]) Func() Func[A, R] {
	return w.Call
}

// Innermost follows Unwrap links down to the original target.
//
// Example:
//
//	original := decor.Innermost(decor.Wrap(decor.Wrap(target, h1), h2))
func Innermost[A any, R any](c Callable[A, R]) Callable[A, R] {
	for {
		u, ok := c.(interface{ Unwrap() Callable[A, R] })
		if !ok {
			return c
		}
		next := u.Unwrap()
		if next == nil {
			return c
		}
		c = next
	}
}
