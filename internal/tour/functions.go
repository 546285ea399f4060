// Package tour walks through functions as values, closures and decorators,
// one small scenario at a time. Every scenario writes to the Tour's writer.
package tour

import (
	"fmt"
	"io"
)

// SayHi builds a greeting.
func SayHi(name string) string {
	return "Hello " + name
}

// SayHello receives a function and calls it with a fixed name.
func SayHello(greet func(string) string) string {
	return greet("Bora")
}

// Meeting defines two inner functions, calls both and hands them back so they
// outlive the call that created them.
func Meeting(w io.Writer) (hiFromJohn, hiFromErik func()) {
	fmt.Fprintln(w, "Hi guys!, I am host")
	hiFromJohn = func() { fmt.Fprintln(w, "Hello") }
	hiFromErik = func() { fmt.Fprintln(w, "Hey Hey") }
	hiFromJohn()
	hiFromErik()
	return hiFromJohn, hiFromErik
}

// SumOfEvenNumbers adds the even numbers in [0, n).
func SumOfEvenNumbers(n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			sum += i
		}
	}
	return sum
}

// Pair is the argument list of Add.
type Pair struct {
	A, B int
}

// Add sums a pair.
func Add(p Pair) (int, error) {
	return p.A + p.B, nil
}

// MakeText returns its input, to be decorated.
func MakeText(text string) (string, error) {
	return text, nil
}
