// Package builtins implements the closed built-in function registry
// spec.md §4.B names, grounded on original_source/src/eval/builtins/mod.rs's
// declarative `ctx.declare_func(name, FuncDef)` pattern, adapted to a Go
// map literal built once at package init (the teacher's equivalent
// one-function-per-kind dispatch lives in psl/validation's per-attribute
// validators; this is the same "small pure function per named
// operation" shape, applied to the evaluator's call expressions instead
// of Prisma attribute validation).
package builtins

// Value is builtins' own minimal tagged union, kept free of any
// dependency on package eval so eval can depend on builtins without a
// cycle; eval.go converts to/from eval.Value at the call boundary.
type Value struct {
	Kind   Kind
	Str    string
	Num    float64
	Bool   bool
	Arr    []Value
	Keys   []string
	Object map[string]Value
}

type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
	KindArray
	KindObject
)

func String(s string) Value  { return Value{Kind: KindString, Str: s} }
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }
func Bool(b bool) Value      { return Value{Kind: KindBool, Bool: b} }
func Null() Value            { return Value{Kind: KindNull} }
func Array(vs []Value) Value { return Value{Kind: KindArray, Arr: vs} }

func Object(keys []string, values []Value) Value {
	m := make(map[string]Value, len(keys))
	for i, k := range keys {
		m[k] = values[i]
	}
	return Value{Kind: KindObject, Keys: append([]string{}, keys...), Object: m}
}

func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}
	val, ok := v.Object[key]
	return val, ok
}
