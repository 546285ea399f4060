// Package outcome describes how a single wrapped call ended: the value it
// produced, the error it returned and how long it took.
//
// Example:
//
//	o := outcome.New(5, nil, 120*time.Microsecond)
//	fmt.Println(o) // Ok(5) in 120µs
//
// Outcomes are handed to post-call hooks so they can observe a call without
// being able to change what the caller receives.
package outcome

import (
	"errors"
	"fmt"
	"time"
)

// Outcome is the immutable record of one call. The zero value is a successful
// call returning the zero value of R in zero time.
//
// Example:
//
//	o := outcome.Ok("hello")
//	value, err := o.Unwrap()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(value)
type Outcome[R any] struct {
	value   R
	err     error
	elapsed time.Duration
}

// New records a call result as returned by the target, untouched. A nil err
// means success.
//
// Example:
//
//	start := time.Now()
//	v, err := target(args)
//	o := outcome.New(v, err, time.Since(start))
func New[R any](value R, err error, elapsed time.Duration) Outcome[R] {
	if elapsed < 0 {
		elapsed = 0
	}
	return Outcome[R]{value: value, err: err, elapsed: elapsed}
}

// Ok constructs a successful Outcome carrying value.
//
// Example:
//
//	o := outcome.Ok(200)
//	fmt.Println(o.IsOk()) // true
func Ok[R any](value R) Outcome[R] {
	return Outcome[R]{value: value}
}

// Err constructs a failed Outcome. Passing a nil error converts it into a
// descriptive placeholder so a failure is never reported as success.
//
// Example:
//
//	o := outcome.Err[int](errors.New("boom"))
//	fmt.Println(o.Err())
func Err[R any](err error) Outcome[R] {
	if err == nil {
		err = errors.New("outcome: nil error")
	}
	return Outcome[R]{err: err}
}

// IsOk reports whether the call returned without error.
func (o Outcome[R]) IsOk() bool {
	return o.err == nil
}

// IsErr reports whether the call returned an error.
func (o Outcome[R]) IsErr() bool {
	return o.err != nil
}

// Value returns the value produced by the call. On failure it is whatever the
// target returned alongside its error.
func (o Outcome[R]) Value() R {
	return o.value
}

// Err returns the error returned by the call, if any.
func (o Outcome[R]) Err() error {
	return o.err
}

// Elapsed returns the wall time spent inside the target.
func (o Outcome[R]) Elapsed() time.Duration {
	return o.elapsed
}

// Unwrap returns value and error, mirroring standard Go call semantics.
//
// Example:
//
//	value, err := o.Unwrap()
//	if err != nil {
//		return err
//	}
func (o Outcome[R]) Unwrap() (R, error) {
	return o.value, o.err
}

// WithElapsed returns a copy of o reporting d as its duration.
func (o Outcome[R]) WithElapsed(d time.Duration) Outcome[R] {
	return New(o.value, o.err, d)
}

// Fold collapses the Outcome into a single value.
//
// Example:
//
//	line := outcome.Fold(o,
//		func(err error) string { return "failed: " + err.Error() },
//		func(v int) string { return fmt.Sprintf("end %d", v) },
//	)
func Fold[R any, U any](o Outcome[R], onErr func(error) U, onOk func(R) U) U {
	if o.err == nil {
		return onOk(o.value)
	}
	return onErr(o.err)
}

// String implements fmt.Stringer for debugging and log lines.
func (o Outcome[R]) String() string {
	if o.err != nil {
		return fmt.Sprintf("Err(%v) in %s", o.err, o.elapsed)
	}
	return fmt.Sprintf("Ok(%v) in %s", o.value, o.elapsed)
}
