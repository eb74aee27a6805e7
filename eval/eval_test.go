package eval

import (
	"testing"

	"github.com/dbschema-go/dbschema/lang/ast"
	"github.com/dbschema-go/dbschema/lang/parser"
)

func evalString(t *testing.T, src string, env *Env) Value {
	t.Helper()
	expr, err := parser.ParseExpressionString("t.hcl", src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	v, err := Eval(expr, env)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return v
}

func TestEvalLiteralsAndVarTraversal(t *testing.T) {
	env := NewEnv()
	env.Vars["name"] = String("users")
	if v := evalString(t, `var.name`, env); v.Str != "users" {
		t.Fatalf("var.name = %+v", v)
	}
	if v := evalString(t, `name`, env); v.Str != "users" {
		t.Fatalf("bare-ident sugar: %+v", v)
	}
}

func TestEvalConditionalAndLogical(t *testing.T) {
	env := NewEnv()
	env.Vars["a"] = Bool(true)
	env.Vars["b"] = Bool(false)
	if v := evalString(t, `a && !b ? 1 : 2`, env); v.Num != 1 {
		t.Fatalf("conditional: %+v", v)
	}
}

func TestEvalTemplateInterpolation(t *testing.T) {
	env := NewEnv()
	env.Vars["name"] = String("users")
	expr, err := parser.ParseExpressionString("t.hcl", `"table ${var.name}!"`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	v, err := Eval(expr, env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v.Str != "table users!" {
		t.Fatalf("template = %q", v.Str)
	}
}

func TestEvalForComprehensionArrayAndMap(t *testing.T) {
	env := NewEnv()
	env.Vars["names"] = Array([]Value{String("a"), String("b")})
	arr := evalString(t, `[for n in var.names : upper(n)]`, env)
	if len(arr.Arr) != 2 || arr.Arr[0].Str != "A" || arr.Arr[1].Str != "B" {
		t.Fatalf("for-array: %+v", arr)
	}

	env.Vars["m"] = Object([]string{"x", "y"}, []Value{Number(1), Number(2)})
	obj := evalString(t, `{for k, v in var.m : k => v if v > 1}`, env)
	if len(obj.Keys) != 1 || obj.Keys[0] != "y" {
		t.Fatalf("for-map filtered: %+v", obj)
	}
}

func TestEvalEachBindingsPerIteration(t *testing.T) {
	base := NewEnv()
	base.Vars["names"] = Array([]Value{String("a"), String("b")})
	iter1 := base.WithEach(nil, String("a"))
	iter2 := base.WithEach(nil, String("b"))
	v1 := evalString(t, `each.value`, iter1)
	v2 := evalString(t, `each.value`, iter2)
	if v1.Str != "a" || v2.Str != "b" {
		t.Fatalf("sibling each bindings leaked: %+v %+v", v1, v2)
	}
}

func TestEvalBuiltinFunctionCall(t *testing.T) {
	env := NewEnv()
	v := evalString(t, `concat([1,2],[3])`, env)
	if len(v.Arr) != 3 {
		t.Fatalf("concat call: %+v", v)
	}
}

func TestEvalUndefinedReferenceFails(t *testing.T) {
	env := NewEnv()
	_, err := Eval(mustParseExpr(t, `var.missing`), env)
	if err == nil {
		t.Fatal("expected undefined reference error")
	}
}

func mustParseExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	expr, err := parser.ParseExpressionString("t.hcl", src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return expr
}
