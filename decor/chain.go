package decor

// Decorator turns one Callable into another. Decorators built by this package
// keep the identity of the Callable they receive.
type Decorator[A any, R any] func(Callable[A, R]) Callable[A, R]

// Decorate returns a Decorator that wraps its input with hooks.
//
// Example:
//
//	partyBoy := decor.Decorate(decor.Hooks[string, struct{}]{
//		Before: func(decor.Call[string]) { fmt.Println("Welcome to party!") },
//		After:  func(decor.Call[string], outcome.Outcome[struct{}]) { fmt.Println("Goodbye!") },
//	})
func Decorate[A any, R any](hooks Hooks[A, R]) Decorator[A, R] {
	return func(target Callable[A, R]) Callable[A, R] {
		return Wrap(target, hooks)
	}
}

// Chain applies decorators to target right to left, so the first decorator
// listed becomes the outermost layer. Before hooks then fire in list order and
// after hooks in reverse list order. Nil decorators are skipped.
//
// Example:
//
//	// same layering as stacking @split over @uppercase
//	fn := decor.Chain(makeText, split, uppercase)
func Chain[A any, R any](target Callable[A, R], decorators ...Decorator[A, R]) Callable[A, R] {
	result := target
	for i := len(decorators) - 1; i >= 0; i-- {
		if decorators[i] == nil {
			continue
		}
		result = decorators[i](result)
	}
	return result
}

// Compose merges decorators into a single Decorator with the layering of Chain.
//
// Example:
//
//	observed := decor.Compose(logDecorator, timerDecorator)
//	fn := observed(target)
func Compose[A any, R any](decorators ...Decorator[A, R]) Decorator[A, R] {
	return func(target Callable[A, R]) Callable[A, R] {
		return Chain(target, decorators...)
	}
}

// Then wraps target so that its successful result is passed through fn. The
// returned Callable keeps target's identity. Target errors are returned as-is
// and fn is not called for them.
//
// Example:
//
//	words := decor.Then(makeText, func(s string) ([]string, error) {
//		return strings.Fields(s), nil
//	})
func Then[A any, R any, S any](target Callable[A, R], fn func(R) (S, error)) Callable[A, S] {
	if target == nil {
		panic("decor: Then on nil target")
	}
	return &mapped[A, R, S]{meta: target.Meta(), target: target, fn: fn}
}

type mapped[A any, R any, S any] struct {
	meta   Meta
	target Callable[A, R]
	fn     func(R) (S, error)
}

func (m *mapped[A, R, S]) Call(args A) (S, error) {
	value, err := m.target.Call(args)
	if err != nil {
		var zero S
		return zero, err
	}
	return m.fn(value)
}

func (m *mapped[A, R, S]) Meta() Meta {
	return m.meta
}
