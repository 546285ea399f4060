// Package text holds decorators for functions that produce text.
//
// Example:
//
//	makeText := decor.Func[string, string](func(s string) (string, error) { return s, nil })
//	words := text.Split(text.Uppercase(makeText))
//	out, _ := words.Call("Bora Tutumluer") // [BORA TUTUMLUER]
package text

import (
	"strings"

	"github.com/charmingruby/decor/decor"
)

// Uppercase upper-cases the text returned by target.
func Uppercase[A any](target decor.Callable[A, string]) decor.Callable[A, string] {
	return decor.Around(target, func(call decor.Call[A], next decor.Func[A, string]) (string, error) {
		s, err := next(call.Args)
		if err != nil {
			return s, err
		}
		return strings.ToUpper(s), nil
	})
}

// Lowercase lower-cases the text returned by target.
func Lowercase[A any](target decor.Callable[A, string]) decor.Callable[A, string] {
	return decor.Around(target, func(call decor.Call[A], next decor.Func[A, string]) (string, error) {
		s, err := next(call.Args)
		if err != nil {
			return s, err
		}
		return strings.ToLower(s), nil
	})
}

// Split turns the text returned by target into its whitespace-separated
// fields.
func Split[A any](target decor.Callable[A, string]) decor.Callable[A, []string] {
	return decor.Then(target, func(s string) ([]string, error) {
		return strings.Fields(s), nil
	})
}

// Join is the inverse of Split: it joins the fields returned by target with
// sep.
func Join[A any](sep string) func(decor.Callable[A, []string]) decor.Callable[A, string] {
	return func(target decor.Callable[A, []string]) decor.Callable[A, string] {
		return decor.Then(target, func(fields []string) (string, error) {
			return strings.Join(fields, sep), nil
		})
	}
}
