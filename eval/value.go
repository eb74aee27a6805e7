// Package eval evaluates lang/ast expressions against an Env, and
// drives module loading and variable validation. Grounded on
// original_source/src/eval/core.rs's value model and evaluation rules,
// in the teacher's hand-rolled-interpreter idiom (psl/parsing's
// AST-walking style, generalized from "resolve a Prisma model
// attribute" to "evaluate an arbitrary expression tree").
package eval

import (
	"fmt"
	"sort"
)

// Kind identifies the dynamic type of a Value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the tagged union every expression evaluates to. Object
// preserves declaration/insertion order via Keys, since map iteration
// order in Go is randomized and JSON/Prisma emission plus {for...}
// grouping must be deterministic.
type Value struct {
	Kind   Kind
	Str    string
	Num    float64
	Bool   bool
	Arr    []Value
	Keys   []string
	Object map[string]Value
}

func String(s string) Value { return Value{Kind: KindString, Str: s} }
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }
func Bool(b bool) Value     { return Value{Kind: KindBool, Bool: b} }
func Null() Value           { return Value{Kind: KindNull} }
func Array(vs []Value) Value { return Value{Kind: KindArray, Arr: vs} }

// Object builds an object value from ordered keys and parallel values.
func Object(keys []string, values []Value) Value {
	m := make(map[string]Value, len(keys))
	for i, k := range keys {
		m[k] = values[i]
	}
	return Value{Kind: KindObject, Keys: append([]string{}, keys...), Object: m}
}

// Get looks up a key on an object value.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}
	val, ok := v.Object[key]
	return val, ok
}

// Index looks up a numeric array index, or an object key coerced to
// string, mirroring the traversal `[expr]` operator's dual use.
func (v Value) Index(idx Value) (Value, error) {
	switch v.Kind {
	case KindArray:
		if idx.Kind != KindNumber {
			return Value{}, fmt.Errorf("array index must be a number, got %s", idx.Kind)
		}
		i := int(idx.Num)
		if i < 0 || i >= len(v.Arr) {
			return Value{}, fmt.Errorf("array index %d out of range (length %d)", i, len(v.Arr))
		}
		return v.Arr[i], nil
	case KindObject:
		key := idx.Str
		if idx.Kind != KindString {
			key = idx.String()
		}
		val, ok := v.Get(key)
		if !ok {
			return Value{}, fmt.Errorf("object has no key %q", key)
		}
		return val, nil
	default:
		return Value{}, fmt.Errorf("cannot index into %s value", v.Kind)
	}
}

// AsBool returns the bool held by a KindBool Value. Only KindBool
// participates in strict boolean operators; this helper backs the
// conditional predicate check and is strict (any other kind returns an
// error), matching
// spec.md §4.B's "predicate must be boolean" rule.
func (v Value) AsBool() (bool, error) {
	if v.Kind != KindBool {
		return false, fmt.Errorf("expected bool, got %s", v.Kind)
	}
	return v.Bool, nil
}

func (v Value) AsNumber() (float64, error) {
	if v.Kind != KindNumber {
		return 0, fmt.Errorf("expected number, got %s", v.Kind)
	}
	return v.Num, nil
}

// String renders a Value as its interpolation/tostring representation.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		if v.Num == float64(int64(v.Num)) {
			return fmt.Sprintf("%d", int64(v.Num))
		}
		return fmt.Sprintf("%g", v.Num)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNull:
		return ""
	case KindArray:
		parts := make([]string, len(v.Arr))
		for i, e := range v.Arr {
			parts[i] = e.String()
		}
		return "[" + joinStrings(parts, ", ") + "]"
	case KindObject:
		parts := make([]string, len(v.Keys))
		for i, k := range v.Keys {
			val, _ := v.Get(k)
			parts[i] = k + " = " + val.String()
		}
		return "{" + joinStrings(parts, ", ") + "}"
	default:
		return ""
	}
}

func joinStrings(parts []string, sep string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}

// Equal implements the deep structural equality `==`/`!=` require.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindString:
		return a.Str == b.Str
	case KindNumber:
		return a.Num == b.Num
	case KindBool:
		return a.Bool == b.Bool
	case KindNull:
		return true
	case KindArray:
		if len(a.Arr) != len(b.Arr) {
			return false
		}
		for i := range a.Arr {
			if !Equal(a.Arr[i], b.Arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.Keys) != len(b.Keys) {
			return false
		}
		for _, k := range a.Keys {
			av, ok := a.Get(k)
			if !ok {
				return false
			}
			bv, ok := b.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// SortedKeys returns an object's keys sorted lexically, used only
// where spec.md explicitly calls for "key-sorted order" traversal of an
// object driving a for_each/for-comprehension (see §8 property 3).
func SortedKeys(v Value) []string {
	keys := append([]string{}, v.Keys...)
	sort.Strings(keys)
	return keys
}
