package decor

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

var (
	// ErrArity reports a call whose positional argument count does not fit
	// the target's parameters.
	ErrArity = errors.New("decor: wrong number of arguments")
	// ErrNamedArgs reports named arguments passed to a target that has no
	// trailing map[string]any parameter to receive them.
	ErrNamedArgs = errors.New("decor: unexpected named arguments")
	// ErrArgType reports an argument that cannot be assigned to its parameter.
	ErrArgType = errors.New("decor: argument type mismatch")
)

// ArityError details an ErrArity failure.
type ArityError struct {
	Name     string
	Want     int
	Got      int
	Variadic bool
}

func (e *ArityError) Error() string {
	if e.Variadic {
		return fmt.Sprintf("decor: %s takes at least %d positional arguments, got %d", e.Name, e.Want, e.Got)
	}
	return fmt.Sprintf("decor: %s takes %d positional arguments, got %d", e.Name, e.Want, e.Got)
}

// Unwrap makes errors.Is(err, ErrArity) hold.
func (e *ArityError) Unwrap() error {
	return ErrArity
}

var (
	errorType  = reflect.TypeFor[error]()
	kwargsType = reflect.TypeFor[map[string]any]()
)

// Reflect turns any Go function into a Callable over Args. Positional values
// fill the parameters in order, a variadic tail absorbs the rest, and named
// values are handed to a trailing map[string]any parameter when the function
// declares one. A trailing error result becomes the call error; the remaining
// results are returned in order.
//
// Argument mismatches are detected when the Callable is invoked, never when it
// is built. Reflect panics when fn is not a non-nil function.
//
// Example:
//
//	greet := decor.Reflect(func(name string, opts map[string]any) string {
//		return fmt.Sprintf("%v %s", opts["greeting"], name)
//	})
//	out, _ := greet.Call(decor.Positional("Bora").With("greeting", "Hey"))
//	fmt.Println(out[0]) // Hey Bora
func Reflect(fn any) Callable[Args, []any] {
	return newReflected(fn)
}

type reflected struct {
	meta   Meta
	fn     reflect.Value
	typ    reflect.Type
	kwargs bool
	errOut bool
}

func newReflected(fn any) *reflected {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		panic(fmt.Sprintf("decor: need a function, got %T", fn))
	}
	typ := v.Type()
	r := &reflected{meta: MetaOf(fn), fn: v, typ: typ}
	if n := typ.NumIn(); n > 0 && !typ.IsVariadic() && typ.In(n-1) == kwargsType {
		r.kwargs = true
	}
	if n := typ.NumOut(); n > 0 && typ.Out(n-1) == errorType {
		r.errOut = true
	}
	return r
}

func (r *reflected) Meta() Meta {
	return r.meta
}

// positional returns the number of fixed positional parameters.
func (r *reflected) positional() int {
	n := r.typ.NumIn()
	if r.kwargs || r.typ.IsVariadic() {
		n--
	}
	return n
}

func (r *reflected) paramType(i int) reflect.Type {
	if r.typ.IsVariadic() && i >= r.positional() {
		return r.typ.In(r.typ.NumIn() - 1).Elem()
	}
	return r.typ.In(i)
}

func (r *reflected) Call(args Args) ([]any, error) {
	fixed := r.positional()
	got := len(args.Positional)
	if got < fixed || (!r.typ.IsVariadic() && got > fixed) {
		return nil, &ArityError{Name: r.meta.Name, Want: fixed, Got: got, Variadic: r.typ.IsVariadic()}
	}
	if len(args.Named) > 0 && !r.kwargs {
		keys := slices.Sorted(maps.Keys(args.Named))
		return nil, fmt.Errorf("%w: %s got %s", ErrNamedArgs, r.meta.Name, strings.Join(keys, ", "))
	}
	in := make([]reflect.Value, 0, got+1)
	for i, a := range args.Positional {
		v, err := argValue(a, r.paramType(i))
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d of %s: %w", ErrArgType, i, r.meta.Name, err)
		}
		in = append(in, v)
	}
	if r.kwargs {
		in = append(in, reflect.ValueOf(args.Named))
	}
	return r.results(r.fn.Call(in))
}

func (r *reflected) results(out []reflect.Value) ([]any, error) {
	var err error
	if r.errOut {
		last := out[len(out)-1]
		if !last.IsNil() {
			err = last.Interface().(error) //nolint:forcetypeassert // checked against errorType
		}
		out = out[:len(out)-1]
	}
	values := make([]any, len(out))
	for i, v := range out {
		values[i] = v.Interface()
	}
	return values, err
}

func argValue(a any, want reflect.Type) (reflect.Value, error) {
	if a == nil {
		if nillable(want.Kind()) {
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not a %s", want)
	}
	v := reflect.ValueOf(a)
	if !v.Type().AssignableTo(want) {
		return reflect.Value{}, fmt.Errorf("have %s, want %s", v.Type(), want)
	}
	return v, nil
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	default:
		return false
	}
}

// WrapFunc wraps fn with hooks and returns a function of exactly the same type,
// along with the identity of fn. The hooks observe the call as Args and its
// results as []any, the trailing error excluded.
//
// The received parameters reach fn untouched: a variadic slice is passed on as
// the same slice and a nil kwargs map stays nil. The returned function has no
// runtime symbol of its own; the returned Meta is its identity. WrapFunc panics
// when fn is not a non-nil function.
//
// Example:
//
//	timed, meta := decor.WrapFunc(sumOfEvenNumbers, decor.Hooks[decor.Args, []any]{
//		After: func(c decor.Call[decor.Args], o outcome.Outcome[[]any]) {
//			fmt.Printf("Finished %q in %.4f secs\n", c.Meta.Name, o.Elapsed().Seconds())
//		},
//	})
//	total := timed(10000)
func WrapFunc[F any](fn F, hooks Hooks[Args, []any]) (F, Meta) {
	target := newReflected(fn)
	w := Wrap[Args, []any](target, hooks)
	wrapped := reflect.MakeFunc(target.typ, func(in []reflect.Value) []reflect.Value {
		direct := named[Args, []any]{meta: target.meta, fn: func(Args) ([]any, error) {
			return target.forward(in)
		}}
		values, err := w.withTarget(direct).Call(target.argsOf(in))
		return target.outValues(values, err)
	})
	return wrapped.Interface().(F), w.Meta() //nolint:forcetypeassert // MakeFunc returns target.typ
}

// forward calls fn with the parameter values a MakeFunc body received.
func (r *reflected) forward(in []reflect.Value) ([]any, error) {
	if r.typ.IsVariadic() {
		return r.results(r.fn.CallSlice(in))
	}
	return r.results(r.fn.Call(in))
}

// argsOf converts parameters received by a MakeFunc body back into Args,
// spreading a variadic slice and lifting a kwargs map into Named.
func (r *reflected) argsOf(in []reflect.Value) Args {
	var args Args
	fixed := r.positional()
	for i := range fixed {
		args.Positional = append(args.Positional, in[i].Interface())
	}
	switch {
	case r.typ.IsVariadic():
		tail := in[len(in)-1]
		for i := range tail.Len() {
			args.Positional = append(args.Positional, tail.Index(i).Interface())
		}
	case r.kwargs:
		args.Named, _ = in[len(in)-1].Interface().(map[string]any)
	}
	return args
}

// outValues rebuilds the typed results of r from values and err.
func (r *reflected) outValues(values []any, err error) []reflect.Value {
	n := r.typ.NumOut()
	out := make([]reflect.Value, n)
	last := n
	if r.errOut {
		last = n - 1
		if err != nil {
			out[last] = reflect.ValueOf(&err).Elem()
		} else {
			out[last] = reflect.Zero(errorType)
		}
	} else if err != nil {
		panic(err)
	}
	for i := range last {
		t := r.typ.Out(i)
		if i >= len(values) || values[i] == nil {
			out[i] = reflect.Zero(t)
			continue
		}
		v := reflect.ValueOf(values[i])
		if v.Type() != t {
			typed := reflect.New(t).Elem()
			typed.Set(v)
			v = typed
		}
		out[i] = v
	}
	return out
}
