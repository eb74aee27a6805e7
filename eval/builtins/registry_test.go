package builtins

import (
	"testing"
	"time"
)

func call(t *testing.T, name string, args ...Value) Value {
	t.Helper()
	spec, ok := Lookup(name)
	if !ok {
		t.Fatalf("function %q not registered", name)
	}
	v, err := spec.Call(args)
	if err != nil {
		t.Fatalf("%s(...): %v", name, err)
	}
	return v
}

func TestStringBuiltins(t *testing.T) {
	if v := call(t, "upper", String("ab")); v.Str != "AB" {
		t.Fatalf("upper: %+v", v)
	}
	if v := call(t, "contains", String("hello"), String("ell")); !v.Bool {
		t.Fatalf("contains: %+v", v)
	}
	if v := call(t, "substr", String("hello"), Number(1), Number(3)); v.Str != "ell" {
		t.Fatalf("substr: %+v", v)
	}
}

func TestNumericBuiltinsVariadic(t *testing.T) {
	if v := call(t, "min", Number(3), Number(1), Number(2)); v.Num != 1 {
		t.Fatalf("min: %+v", v)
	}
	if v := call(t, "max", Number(3), Number(1), Number(2)); v.Num != 3 {
		t.Fatalf("max: %+v", v)
	}
	if v := call(t, "abs", Number(-5)); v.Num != 5 {
		t.Fatalf("abs: %+v", v)
	}
}

func TestCollectionBuiltins(t *testing.T) {
	arr := Array([]Value{Number(1), Number(2)})
	arr2 := Array([]Value{Number(3)})
	if v := call(t, "concat", arr, arr2); len(v.Arr) != 3 {
		t.Fatalf("concat: %+v", v)
	}
	dup := Array([]Value{Number(1), Number(1), Number(2)})
	if v := call(t, "distinct", dup); len(v.Arr) != 2 {
		t.Fatalf("distinct: %+v", v)
	}
	if v := call(t, "reverse", arr); v.Arr[0].Num != 2 {
		t.Fatalf("reverse: %+v", v)
	}
	if v := call(t, "index", arr, Number(2)); v.Num != 1 {
		t.Fatalf("index: %+v", v)
	}
}

func TestConversionBuiltins(t *testing.T) {
	if v := call(t, "tonumber", String("42")); v.Num != 42 {
		t.Fatalf("tonumber: %+v", v)
	}
	if v := call(t, "tobool", String("TRUE")); !v.Bool {
		t.Fatalf("tobool: %+v", v)
	}
	if v := call(t, "tostring", Number(3)); v.Str != "3" {
		t.Fatalf("tostring: %+v", v)
	}
}

func TestCryptoAndBase64Builtins(t *testing.T) {
	if v := call(t, "md5", String("abc")); v.Str != "900150983cd24fb0d6963f7d28e17f72" {
		t.Fatalf("md5: %+v", v)
	}
	if v := call(t, "sha256", String("abc")); len(v.Str) != 64 {
		t.Fatalf("sha256 length: %+v", v)
	}
	enc := call(t, "base64encode", String("hi"))
	if dec := call(t, "base64decode", enc); dec.Str != "hi" {
		t.Fatalf("base64 round-trip: %+v", dec)
	}
}

func TestDateTimeBuiltins(t *testing.T) {
	restore := nowFunc
	nowFunc = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	defer func() { nowFunc = restore }()

	ts := call(t, "timestamp")
	if ts.Str != "2026-01-02T03:04:05Z" {
		t.Fatalf("timestamp: %+v", ts)
	}
	cmp := call(t, "timecmp", String("2026-01-01T00:00:00Z"), String("2026-01-02T00:00:00Z"))
	if cmp.Num != -1 {
		t.Fatalf("timecmp: %+v", cmp)
	}
}

func TestUtilityBuiltins(t *testing.T) {
	if v := call(t, "coalesce", Null(), Null(), String("x")); v.Str != "x" {
		t.Fatalf("coalesce: %+v", v)
	}
	joined := call(t, "join", String(","), Array([]Value{String("a"), String("b")}))
	if joined.Str != "a,b" {
		t.Fatalf("join: %+v", joined)
	}
	split := call(t, "split", String(","), String("a,b,c"))
	if len(split.Arr) != 3 {
		t.Fatalf("split: %+v", split)
	}
}

func TestUnknownFunctionNotRegistered(t *testing.T) {
	if _, ok := Lookup("does_not_exist"); ok {
		t.Fatal("expected unregistered function to be absent")
	}
}
