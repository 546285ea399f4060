package decor

import (
	"reflect"
	"runtime"
	"strings"
)

// Meta is the identity a callable exposes for introspection. Wrappers copy it
// from their target when they are built, so asking a wrapper who it is yields
// the original function's answer.
//
// Example:
//
//	m := decor.MetaOf(strings.ToUpper)
//	fmt.Println(m.Name)    // ToUpper
//	fmt.Println(m.Package) // strings
type Meta struct {
	Name    string
	Package string
	Doc     string
}

// IsZero reports whether m carries no identity at all.
func (m Meta) IsZero() bool {
	return m == Meta{}
}

// Qualified returns the package-qualified name, or the bare name when the
// package is unknown.
func (m Meta) Qualified() string {
	if m.Package == "" {
		return m.Name
	}
	return m.Package + "." + m.Name
}

// String implements fmt.Stringer.
func (m Meta) String() string {
	return m.Qualified()
}

// MetaOf derives identity from the runtime symbol of fn. It returns the zero
// Meta when fn is not a non-nil function.
//
// Method values lose the "-fm" suffix the compiler appends, and generic
// instantiations lose their "[...]" marker. Closures keep the compiler's
// "Outer.funcN" naming.
//
// Example:
//
//	func add(a, b int) int { return a + b }
//	decor.MetaOf(add).Name // "add"
func MetaOf(fn any) Meta {
	if fn == nil {
		return Meta{}
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return Meta{}
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return Meta{}
	}
	return splitSymbol(rf.Name())
}

func splitSymbol(symbol string) Meta {
	symbol = strings.TrimSuffix(symbol, "-fm")
	symbol = strings.ReplaceAll(symbol, "[...]", "")
	// dots before the last slash belong to the import path.
	slash := strings.LastIndex(symbol, "/")
	dot := strings.Index(symbol[slash+1:], ".")
	if dot < 0 {
		return Meta{Name: symbol}
	}
	dot += slash + 1
	// the runtime escapes dots in the last path element
	pkg := strings.ReplaceAll(symbol[:dot], "%2e", ".")
	return Meta{Package: pkg, Name: symbol[dot+1:]}
}
