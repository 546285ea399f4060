package decor

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Args is an untyped argument list: ordered positional values plus named
// values. It is the argument type of dynamic wrappers built with Reflect and
// WrapFunc.
//
// Example:
//
//	args := decor.Positional(2, 3).With("sep", ",")
type Args struct {
	Positional []any
	Named      map[string]any
}

// Positional builds Args from positional values only.
func Positional(values ...any) Args {
	return Args{Positional: values}
}

// With returns a copy of a with name bound to value. The receiver's map is
// never written to.
func (a Args) With(name string, value any) Args {
	named := make(map[string]any, len(a.Named)+1)
	maps.Copy(named, a.Named)
	named[name] = value
	return Args{Positional: a.Positional, Named: named}
}

// Len returns the total number of arguments, positional and named.
func (a Args) Len() int {
	return len(a.Positional) + len(a.Named)
}

// At returns the positional argument at index i.
func (a Args) At(i int) (any, bool) {
	if i < 0 || i >= len(a.Positional) {
		return nil, false
	}
	return a.Positional[i], true
}

// Lookup returns the named argument called name.
func (a Args) Lookup(name string) (any, bool) {
	v, ok := a.Named[name]
	return v, ok
}

// String renders the arguments as a call list, named values sorted by name.
//
// Example:
//
//	decor.Positional(2, "x").With("n", 1).String() // (2, "x", n=1)
func (a Args) String() string {
	parts := make([]string, 0, a.Len())
	for _, v := range a.Positional {
		parts = append(parts, fmt.Sprintf("%#v", v))
	}
	for _, k := range slices.Sorted(maps.Keys(a.Named)) {
		parts = append(parts, fmt.Sprintf("%s=%#v", k, a.Named[k]))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
