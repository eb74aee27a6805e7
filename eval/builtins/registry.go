package builtins

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FuncSpec is one entry in the closed built-in registry: a pure
// function over already-evaluated argument values.
type FuncSpec struct {
	Name     string
	Variadic bool
	Call     func(args []Value) (Value, error)
}

var registry map[string]FuncSpec

func init() {
	registry = map[string]FuncSpec{}
	register := func(name string, variadic bool, fn func([]Value) (Value, error)) {
		registry[name] = FuncSpec{Name: name, Variadic: variadic, Call: fn}
	}

	// string
	register("upper", false, func(a []Value) (Value, error) {
		s, err := str(a, "upper", 0)
		if err != nil {
			return Value{}, err
		}
		return String(strings.ToUpper(s)), nil
	})
	register("lower", false, func(a []Value) (Value, error) {
		s, err := str(a, "lower", 0)
		if err != nil {
			return Value{}, err
		}
		return String(strings.ToLower(s)), nil
	})
	register("length", false, func(a []Value) (Value, error) {
		if err := arity(a, "length", 1); err != nil {
			return Value{}, err
		}
		switch a[0].Kind {
		case KindString:
			return Number(float64(len(a[0].Str))), nil
		case KindArray:
			return Number(float64(len(a[0].Arr))), nil
		case KindObject:
			return Number(float64(len(a[0].Keys))), nil
		default:
			return Value{}, fmt.Errorf("length: unsupported argument kind %v", a[0].Kind)
		}
	})
	register("substr", false, func(a []Value) (Value, error) {
		if err := arity(a, "substr", 3); err != nil {
			return Value{}, err
		}
		s, start, length, err := substrArgs(a)
		if err != nil {
			return Value{}, err
		}
		if start < 0 || start > len(s) {
			return Value{}, fmt.Errorf("substr: start index %d out of range", start)
		}
		end := start + length
		if length < 0 || end > len(s) {
			end = len(s)
		}
		return String(s[start:end]), nil
	})
	register("contains", false, func(a []Value) (Value, error) {
		s1, s2, err := strPair(a, "contains")
		if err != nil {
			return Value{}, err
		}
		return Bool(strings.Contains(s1, s2)), nil
	})
	register("startswith", false, func(a []Value) (Value, error) {
		s1, s2, err := strPair(a, "startswith")
		if err != nil {
			return Value{}, err
		}
		return Bool(strings.HasPrefix(s1, s2)), nil
	})
	register("endswith", false, func(a []Value) (Value, error) {
		s1, s2, err := strPair(a, "endswith")
		if err != nil {
			return Value{}, err
		}
		return Bool(strings.HasSuffix(s1, s2)), nil
	})
	register("trim", false, func(a []Value) (Value, error) {
		s, err := str(a, "trim", 0)
		if err != nil {
			return Value{}, err
		}
		return String(strings.TrimSpace(s)), nil
	})
	register("replace", false, func(a []Value) (Value, error) {
		if err := arity(a, "replace", 3); err != nil {
			return Value{}, err
		}
		s, old, new, err := replaceArgs(a)
		if err != nil {
			return Value{}, err
		}
		return String(strings.ReplaceAll(s, old, new)), nil
	})

	// numeric (variadic-or-single per original_source)
	register("min", true, numReduce("min", func(acc, v float64) float64 {
		if v < acc {
			return v
		}
		return acc
	}))
	register("max", true, numReduce("max", func(acc, v float64) float64 {
		if v > acc {
			return v
		}
		return acc
	}))
	register("abs", false, func(a []Value) (Value, error) {
		n, err := num(a, "abs", 0)
		if err != nil {
			return Value{}, err
		}
		if n < 0 {
			n = -n
		}
		return Number(n), nil
	})

	// collection
	register("concat", true, func(a []Value) (Value, error) {
		var out []Value
		for _, v := range a {
			if v.Kind != KindArray {
				return Value{}, fmt.Errorf("concat: all arguments must be arrays")
			}
			out = append(out, v.Arr...)
		}
		return Array(out), nil
	})
	register("flatten", false, func(a []Value) (Value, error) {
		if err := arity(a, "flatten", 1); err != nil {
			return Value{}, err
		}
		if a[0].Kind != KindArray {
			return Value{}, fmt.Errorf("flatten: argument must be an array")
		}
		var out []Value
		for _, v := range a[0].Arr {
			if v.Kind == KindArray {
				out = append(out, v.Arr...)
			} else {
				out = append(out, v)
			}
		}
		return Array(out), nil
	})
	register("distinct", false, func(a []Value) (Value, error) {
		if err := arity(a, "distinct", 1); err != nil {
			return Value{}, err
		}
		if a[0].Kind != KindArray {
			return Value{}, fmt.Errorf("distinct: argument must be an array")
		}
		var out []Value
		for _, v := range a[0].Arr {
			dup := false
			for _, o := range out {
				if v.equal(o) {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, v)
			}
		}
		return Array(out), nil
	})
	register("slice", false, func(a []Value) (Value, error) {
		if err := arity(a, "slice", 3); err != nil {
			return Value{}, err
		}
		if a[0].Kind != KindArray {
			return Value{}, fmt.Errorf("slice: first argument must be an array")
		}
		start, end := int(a[1].Num), int(a[2].Num)
		if start < 0 || end > len(a[0].Arr) || start > end {
			return Value{}, fmt.Errorf("slice: range [%d:%d] out of bounds for length %d", start, end, len(a[0].Arr))
		}
		return Array(append([]Value{}, a[0].Arr[start:end]...)), nil
	})
	register("sort", false, func(a []Value) (Value, error) {
		if err := arity(a, "sort", 1); err != nil {
			return Value{}, err
		}
		if a[0].Kind != KindArray {
			return Value{}, fmt.Errorf("sort: argument must be an array")
		}
		out := append([]Value{}, a[0].Arr...)
		sort.Slice(out, func(i, j int) bool {
			return out[i].String() < out[j].String()
		})
		return Array(out), nil
	})
	register("reverse", false, func(a []Value) (Value, error) {
		if err := arity(a, "reverse", 1); err != nil {
			return Value{}, err
		}
		if a[0].Kind != KindArray {
			return Value{}, fmt.Errorf("reverse: argument must be an array")
		}
		n := len(a[0].Arr)
		out := make([]Value, n)
		for i, v := range a[0].Arr {
			out[n-1-i] = v
		}
		return Array(out), nil
	})
	register("index", false, func(a []Value) (Value, error) {
		if err := arity(a, "index", 2); err != nil {
			return Value{}, err
		}
		if a[0].Kind != KindArray {
			return Value{}, fmt.Errorf("index: first argument must be an array")
		}
		for i, v := range a[0].Arr {
			if v.equal(a[1]) {
				return Number(float64(i)), nil
			}
		}
		return Value{}, fmt.Errorf("index: value not found in array")
	})

	// conversion
	register("tostring", false, func(a []Value) (Value, error) {
		if err := arity(a, "tostring", 1); err != nil {
			return Value{}, err
		}
		return String(a[0].String()), nil
	})
	register("tonumber", false, func(a []Value) (Value, error) {
		if err := arity(a, "tonumber", 1); err != nil {
			return Value{}, err
		}
		switch a[0].Kind {
		case KindNumber:
			return a[0], nil
		case KindString:
			n, err := strconv.ParseFloat(a[0].Str, 64)
			if err != nil {
				return Value{}, fmt.Errorf("tonumber: cannot parse %q as a number", a[0].Str)
			}
			return Number(n), nil
		default:
			return Value{}, fmt.Errorf("tonumber: unsupported argument kind %v", a[0].Kind)
		}
	})
	register("tobool", false, func(a []Value) (Value, error) {
		if err := arity(a, "tobool", 1); err != nil {
			return Value{}, err
		}
		switch a[0].Kind {
		case KindBool:
			return a[0], nil
		case KindString:
			switch strings.ToLower(a[0].Str) {
			case "true", "t":
				return Bool(true), nil
			case "false", "f":
				return Bool(false), nil
			}
			return Value{}, fmt.Errorf("tobool: cannot parse %q as a bool", a[0].Str)
		default:
			return Value{}, fmt.Errorf("tobool: unsupported argument kind %v", a[0].Kind)
		}
	})
	register("tolist", false, func(a []Value) (Value, error) {
		if err := arity(a, "tolist", 1); err != nil {
			return Value{}, err
		}
		if a[0].Kind == KindArray {
			return a[0], nil
		}
		if a[0].Kind == KindObject {
			var out []Value
			for _, k := range a[0].Keys {
				v, _ := a[0].Get(k)
				out = append(out, v)
			}
			return Array(out), nil
		}
		return Value{}, fmt.Errorf("tolist: unsupported argument kind %v", a[0].Kind)
	})
	register("tomap", false, func(a []Value) (Value, error) {
		if err := arity(a, "tomap", 1); err != nil {
			return Value{}, err
		}
		if a[0].Kind != KindObject {
			return Value{}, fmt.Errorf("tomap: argument must be an object")
		}
		return a[0], nil
	})

	// crypto — Go's stdlib crypto/md5, crypto/sha256, crypto/sha512
	// produce the identical hex digest as original_source's md5/sha2
	// Rust crates; no third-party hashing library in the pack does
	// anything the stdlib doesn't, so this is a deliberate stdlib use.
	register("md5", false, hashFunc("md5", func(b []byte) []byte { h := md5.Sum(b); return h[:] }))
	register("sha256", false, hashFunc("sha256", func(b []byte) []byte { h := sha256.Sum256(b); return h[:] }))
	register("sha512", false, hashFunc("sha512", func(b []byte) []byte { h := sha512.Sum512(b); return h[:] }))

	// base64 — stdlib encoding/base64, same reasoning as crypto above.
	register("base64encode", false, func(a []Value) (Value, error) {
		s, err := str(a, "base64encode", 0)
		if err != nil {
			return Value{}, err
		}
		return String(base64.StdEncoding.EncodeToString([]byte(s))), nil
	})
	register("base64decode", false, func(a []Value) (Value, error) {
		s, err := str(a, "base64decode", 0)
		if err != nil {
			return Value{}, err
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return Value{}, fmt.Errorf("base64decode: %v", err)
		}
		return String(string(b)), nil
	})

	// date/time — stdlib time package is the idiomatic match; Rust's
	// chrono crate is only needed because Rust's stdlib lacks this.
	register("timestamp", false, func(a []Value) (Value, error) {
		if len(a) != 0 {
			return Value{}, fmt.Errorf("timestamp: takes no arguments")
		}
		return String(nowFunc().UTC().Format(time.RFC3339)), nil
	})
	register("formatdate", false, func(a []Value) (Value, error) {
		if err := arity(a, "formatdate", 2); err != nil {
			return Value{}, err
		}
		layout, ts, err := strPair(a, "formatdate")
		if err != nil {
			return Value{}, err
		}
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return Value{}, fmt.Errorf("formatdate: %v", err)
		}
		return String(t.Format(goLayout(layout))), nil
	})
	register("timeadd", false, func(a []Value) (Value, error) {
		if err := arity(a, "timeadd", 2); err != nil {
			return Value{}, err
		}
		ts, dur, err := strPair(a, "timeadd")
		if err != nil {
			return Value{}, err
		}
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return Value{}, fmt.Errorf("timeadd: %v", err)
		}
		d, err := time.ParseDuration(dur)
		if err != nil {
			return Value{}, fmt.Errorf("timeadd: %v", err)
		}
		return String(t.Add(d).Format(time.RFC3339)), nil
	})
	register("timecmp", false, func(a []Value) (Value, error) {
		if err := arity(a, "timecmp", 2); err != nil {
			return Value{}, err
		}
		s1, s2, err := strPair(a, "timecmp")
		if err != nil {
			return Value{}, err
		}
		t1, err := time.Parse(time.RFC3339, s1)
		if err != nil {
			return Value{}, fmt.Errorf("timecmp: %v", err)
		}
		t2, err := time.Parse(time.RFC3339, s2)
		if err != nil {
			return Value{}, fmt.Errorf("timecmp: %v", err)
		}
		switch {
		case t1.Before(t2):
			return Number(-1), nil
		case t1.After(t2):
			return Number(1), nil
		default:
			return Number(0), nil
		}
	})

	// utility
	register("coalesce", true, func(a []Value) (Value, error) {
		for _, v := range a {
			if v.Kind != KindNull {
				return v, nil
			}
		}
		return Null(), nil
	})
	register("join", false, func(a []Value) (Value, error) {
		if err := arity(a, "join", 2); err != nil {
			return Value{}, err
		}
		sep, ok := a[0], a[1]
		if sep.Kind != KindString || ok.Kind != KindArray {
			return Value{}, fmt.Errorf("join: expected (string, array)")
		}
		parts := make([]string, len(ok.Arr))
		for i, v := range ok.Arr {
			parts[i] = v.String()
		}
		return String(strings.Join(parts, sep.Str)), nil
	})
	register("split", false, func(a []Value) (Value, error) {
		s1, s2, err := strPair(a, "split")
		if err != nil {
			return Value{}, err
		}
		parts := strings.Split(s2, s1)
		out := make([]Value, len(parts))
		for i, p := range parts {
			out[i] = String(p)
		}
		return Array(out), nil
	})
}

// nowFunc is overridden in tests for deterministic output; production
// code always uses time.Now.
var nowFunc = time.Now

// Lookup returns the FuncSpec for name, or false if it is not part of
// the closed registry.
func Lookup(name string) (FuncSpec, bool) {
	spec, ok := registry[name]
	return spec, ok
}

func arity(a []Value, name string, n int) error {
	if len(a) != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d", name, n, len(a))
	}
	return nil
}

func str(a []Value, name string, i int) (string, error) {
	if i >= len(a) || a[i].Kind != KindString {
		return "", fmt.Errorf("%s: expected string argument", name)
	}
	return a[i].Str, nil
}

func num(a []Value, name string, i int) (float64, error) {
	if i >= len(a) || a[i].Kind != KindNumber {
		return 0, fmt.Errorf("%s: expected number argument", name)
	}
	return a[i].Num, nil
}

func strPair(a []Value, name string) (string, string, error) {
	if err := arity(a, name, 2); err != nil {
		return "", "", err
	}
	s1, err := str(a, name, 0)
	if err != nil {
		return "", "", err
	}
	s2, err := str(a, name, 1)
	if err != nil {
		return "", "", err
	}
	return s1, s2, nil
}

func replaceArgs(a []Value) (string, string, string, error) {
	s, err := str(a, "replace", 0)
	if err != nil {
		return "", "", "", err
	}
	old, err := str(a, "replace", 1)
	if err != nil {
		return "", "", "", err
	}
	new, err := str(a, "replace", 2)
	if err != nil {
		return "", "", "", err
	}
	return s, old, new, nil
}

func substrArgs(a []Value) (string, int, int, error) {
	s, err := str(a, "substr", 0)
	if err != nil {
		return "", 0, 0, err
	}
	start, err := num(a, "substr", 1)
	if err != nil {
		return "", 0, 0, err
	}
	length, err := num(a, "substr", 2)
	if err != nil {
		return "", 0, 0, err
	}
	return s, int(start), int(length), nil
}

func numReduce(name string, combine func(acc, v float64) float64) func([]Value) (Value, error) {
	return func(a []Value) (Value, error) {
		if len(a) == 0 {
			return Value{}, fmt.Errorf("%s: expects at least one argument", name)
		}
		acc, err := num(a, name, 0)
		if err != nil {
			return Value{}, err
		}
		for i := 1; i < len(a); i++ {
			v, err := num(a, name, i)
			if err != nil {
				return Value{}, err
			}
			acc = combine(acc, v)
		}
		return Number(acc), nil
	}
}

func hashFunc(name string, sum func([]byte) []byte) func([]Value) (Value, error) {
	return func(a []Value) (Value, error) {
		s, err := str(a, name, 0)
		if err != nil {
			return Value{}, err
		}
		return String(hex.EncodeToString(sum([]byte(s)))), nil
	}
}

// goLayout maps a small set of strftime-ish tokens original_source's
// formatdate built-in supports onto Go's reference-time layout string.
func goLayout(layout string) string {
	r := strings.NewReplacer(
		"YYYY", "2006", "MM", "01", "DD", "02",
		"hh", "15", "mm", "04", "ss", "05",
	)
	return r.Replace(layout)
}
