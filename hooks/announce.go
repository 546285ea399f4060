// Package hooks provides ready-made decorators built on decor: printed
// announcements, a timer, structured logging, prometheus metrics and retries.
//
// Example:
//
//	sayHi := decor.Chain[string, string](decor.Func[string, string](hi),
//		hooks.Announce[string, string](os.Stdout, "Do something before the function call.", "Do something after the function call."),
//		hooks.Timer[string, string](os.Stdout),
//	)
package hooks

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmingruby/decor/decor"
	"github.com/charmingruby/decor/outcome"
)

// Announce prints before ahead of each call and after once it returns. Empty
// lines are skipped. Both lines may reference {name}, the wrapped function's
// name; after may also reference {result}, the result of the call or its error.
//
// Example:
//
//	partyBoy := hooks.Announce[string, struct{}](os.Stdout, "Welcome to party!", "Goodbye!")
//	start := hooks.Announce[pair, int](os.Stdout, "start", "end {result}")
func Announce[A any, R any](w io.Writer, before, after string) decor.Decorator[A, R] {
	return decor.Decorate(decor.Hooks[A, R]{
		Before: func(call decor.Call[A]) {
			if before == "" {
				return
			}
			fmt.Fprintln(w, strings.ReplaceAll(before, "{name}", call.Meta.Name))
		},
		After: func(call decor.Call[A], out outcome.Outcome[R]) {
			if after == "" {
				return
			}
			line := strings.ReplaceAll(after, "{name}", call.Meta.Name)
			if strings.Contains(line, "{result}") {
				line = strings.ReplaceAll(line, "{result}", describe(out))
			}
			fmt.Fprintln(w, line)
		},
	})
}

func describe[R any](out outcome.Outcome[R]) string {
	return outcome.Fold(out,
		func(err error) string { return err.Error() },
		func(v R) string { return fmt.Sprint(v) },
	)
}
