package parser

import (
	"testing"

	"github.com/dbschema-go/dbschema/lang/ast"
)

func mustParse(t *testing.T, src string) *ast.Body {
	t.Helper()
	body, err := Parse("t.hcl", src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return body
}

func TestParseAttributeAndBlock(t *testing.T) {
	body := mustParse(t, `
		name = "users"
		table "users" {
			column "id" {
				type = "uuid"
			}
		}
	`)
	if len(body.Attributes()) != 1 || body.Attribute("name") == nil {
		t.Fatalf("expected one top-level attribute, got %+v", body.Attributes())
	}
	tables := body.BlocksOfType("table")
	if len(tables) != 1 || tables[0].Label(0) != "users" {
		t.Fatalf("expected one table block labeled users, got %+v", tables)
	}
	cols := tables[0].Body.BlocksOfType("column")
	if len(cols) != 1 || cols[0].Label(0) != "id" {
		t.Fatalf("expected one column block labeled id, got %+v", cols)
	}
}

func TestParseForEachExtractedFromBody(t *testing.T) {
	body := mustParse(t, `
		table "t" {
			for_each = var.names
			name = each.value
		}
	`)
	blk := body.BlocksOfType("table")[0]
	if blk.ForEach == nil {
		t.Fatal("expected ForEach to be populated")
	}
	if blk.Count != nil {
		t.Fatal("expected Count to remain nil")
	}
	if blk.Body.Attribute("for_each") != nil {
		t.Fatal("for_each attribute should have been pulled out of the body")
	}
	if blk.Body.Attribute("name") == nil {
		t.Fatal("expected remaining name attribute to survive")
	}
}

func TestParseForEachAndCountMutuallyExclusive(t *testing.T) {
	_, err := Parse("t.hcl", `
		table "t" {
			for_each = var.names
			count = 3
		}
	`)
	if err == nil {
		t.Fatal("expected error for for_each+count on the same block")
	}
}

func TestParseConditionalAndLogical(t *testing.T) {
	body := mustParse(t, `x = a == b && (c || !d) ? 1 : 2`)
	attr := body.Attribute("x")
	cond, ok := attr.Value.(*ast.Conditional)
	if !ok {
		t.Fatalf("expected *ast.Conditional, got %T", attr.Value)
	}
	and, ok := cond.Cond.(*ast.BinaryExpr)
	if !ok || and.Op != ast.BinAnd {
		t.Fatalf("expected top-level && expression, got %#v", cond.Cond)
	}
}

func TestParseArrayLiteralAndForComprehension(t *testing.T) {
	body := mustParse(t, `
		a = [1, 2, 3]
		b = [for x in var.names : upper(x)]
		c = {for k, v in var.m : k => v if v != null}
	`)
	if _, ok := body.Attribute("a").Value.(*ast.ArrayExpr); !ok {
		t.Fatalf("expected array literal, got %T", body.Attribute("a").Value)
	}
	forArr, ok := body.Attribute("b").Value.(*ast.ForExpr)
	if !ok || forArr.IsMap {
		t.Fatalf("expected array for-comprehension, got %#v", body.Attribute("b").Value)
	}
	if forArr.ValVar != "x" {
		t.Fatalf("expected ValVar x, got %q", forArr.ValVar)
	}
	forMap, ok := body.Attribute("c").Value.(*ast.ForExpr)
	if !ok || !forMap.IsMap {
		t.Fatalf("expected map for-comprehension, got %#v", body.Attribute("c").Value)
	}
	if forMap.KeyVar != "k" || forMap.ValVar != "v" || forMap.Cond == nil {
		t.Fatalf("unexpected map comprehension fields: %#v", forMap)
	}
}

func TestParseObjectLiteral(t *testing.T) {
	body := mustParse(t, `o = { a = 1, "b" = 2 }`)
	obj, ok := body.Attribute("o").Value.(*ast.ObjectExpr)
	if !ok {
		t.Fatalf("expected object literal, got %T", body.Attribute("o").Value)
	}
	if len(obj.Keys) != 2 || obj.Keys[0] != "a" || obj.Keys[1] != "b" {
		t.Fatalf("unexpected keys: %v", obj.Keys)
	}
}

func TestParseFunctionCallAndTraversal(t *testing.T) {
	body := mustParse(t, `x = upper(var.name.first[0])`)
	call, ok := body.Attribute("x").Value.(*ast.FuncCall)
	if !ok || call.Name != "upper" {
		t.Fatalf("expected call to upper, got %#v", body.Attribute("x").Value)
	}
	trav, ok := call.Args[0].(*ast.Traversal)
	if !ok || trav.Root.Name != "var" {
		t.Fatalf("expected traversal rooted at var, got %#v", call.Args[0])
	}
	if len(trav.Ops) != 3 || trav.Ops[0].Attr != "name" || trav.Ops[1].Attr != "first" || trav.Ops[2].Index == nil {
		t.Fatalf("unexpected traversal ops: %#v", trav.Ops)
	}
}

func TestParseTemplateInterpolationSimple(t *testing.T) {
	body := mustParse(t, `x = "hello ${var.name}!"`)
	tmpl, ok := body.Attribute("x").Value.(*ast.Template)
	if !ok {
		t.Fatalf("expected template, got %T", body.Attribute("x").Value)
	}
	if len(tmpl.Parts) != 3 {
		t.Fatalf("expected 3 parts (lit, interp, lit), got %d: %#v", len(tmpl.Parts), tmpl.Parts)
	}
	if tmpl.Parts[0].Literal != "hello " || tmpl.Parts[2].Literal != "!" {
		t.Fatalf("unexpected literal parts: %#v", tmpl.Parts)
	}
	trav, ok := tmpl.Parts[1].Interp.(*ast.Traversal)
	if !ok || trav.Root.Name != "var" {
		t.Fatalf("expected interpolated traversal, got %#v", tmpl.Parts[1].Interp)
	}
}

func TestParseUnaryMinusAndNot(t *testing.T) {
	body := mustParse(t, `x = -5
y = !enabled`)
	neg, ok := body.Attribute("x").Value.(*ast.UnaryExpr)
	if !ok || neg.Op != ast.UnaryNeg {
		t.Fatalf("expected unary negation, got %#v", body.Attribute("x").Value)
	}
	not, ok := body.Attribute("y").Value.(*ast.UnaryExpr)
	if !ok || not.Op != ast.UnaryNot {
		t.Fatalf("expected unary not, got %#v", body.Attribute("y").Value)
	}
}

func TestParseExpressionStringHelper(t *testing.T) {
	expr, err := ParseExpressionString("t.hcl", "1 == 1")
	if err != nil {
		t.Fatalf("ParseExpressionString: %v", err)
	}
	if _, ok := expr.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected binary expression, got %T", expr)
	}
}
