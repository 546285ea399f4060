// Package validated accumulates every failure of a set of independent checks
// instead of stopping at the first one.
//
// Use it for configuration and argument validation, where all issues should be
// reported together.
package validated

import (
	"errors"

	"github.com/charmingruby/decor/outcome"
)

// Validated holds either a value or the errors collected while producing it.
type Validated[E any, T any] struct {
	value  T
	errors []E
}

// Valid constructs a successful Validated value.
func Valid[E any, T any](value T) Validated[E, T] {
	return Validated[E, T]{value: value}
}

// Invalid constructs a failed Validated holding errs. With no errs it is
// indistinguishable from the zero Valid.
func Invalid[E any, T any](errs ...E) Validated[E, T] {
	return Validated[E, T]{errors: appendErrors(nil, errs)}
}

// IsValid reports whether no error was collected.
func (v Validated[E, T]) IsValid() bool {
	return len(v.errors) == 0
}

// Errors returns a copy of the collected errors.
func (v Validated[E, T]) Errors() []E {
	return appendErrors([]E{}, v.errors)
}

// Value returns the stored value, meaningful only when valid.
func (v Validated[E, T]) Value() T {
	return v.value
}

// Map transforms the stored value when valid.
func Map[E any, A any, B any](v Validated[E, A], fn func(A) B) Validated[E, B] {
	if !v.IsValid() {
		return Validated[E, B]{errors: v.errors}
	}
	return Valid[E](fn(v.value))
}

// Sequence collects the values of items, or every error they carry.
func Sequence[E any, T any](items []Validated[E, T]) Validated[E, []T] {
	return Traverse(items, func(v Validated[E, T]) Validated[E, T] { return v })
}

// Traverse applies fn to every item and keeps going after failures, so the
// result carries all errors in input order.
//
// Example:
//
//	checked := validated.Traverse(fields, func(f field) validated.Validated[error, field] {
//		return validated.Check(f, f.validate)
//	})
//	if err := validated.Join(checked); err != nil {
//		return err
//	}
func Traverse[E any, A any, B any](items []A, fn func(A) Validated[E, B]) Validated[E, []B] {
	values := make([]B, 0, len(items))
	var errs []E
	for _, item := range items {
		res := fn(item)
		if !res.IsValid() {
			errs = appendErrors(errs, res.errors)
			continue
		}
		values = append(values, res.value)
	}
	if len(errs) > 0 {
		return Validated[E, []B]{errors: errs}
	}
	return Valid[E](values)
}

// Check runs check against value and records its error, if any.
func Check[T any](value T, check func(T) error) Validated[error, T] {
	if err := check(value); err != nil {
		return Invalid[error, T](err)
	}
	return Valid[error](value)
}

// FromOutcome lifts a call outcome into a Validated.
func FromOutcome[T any](o outcome.Outcome[T]) Validated[error, T] {
	if o.IsErr() {
		return Invalid[error, T](o.Err())
	}
	return Valid[error](o.Value())
}

// Join reports the collected errors as one error, nil when v is valid. The
// result matches every collected error under errors.Is.
func Join[T any](v Validated[error, T]) error {
	if v.IsValid() {
		return nil
	}
	return errors.Join(v.errors...)
}

func appendErrors[E any](dst []E, src []E) []E {
	if len(src) == 0 {
		return dst
	}
	return append(dst, src...)
}
