package eval

import (
	"github.com/dbschema-go/dbschema/eval/builtins"
	"github.com/dbschema-go/dbschema/internal/diagnostics"
	"github.com/dbschema-go/dbschema/lang/ast"
)

// Eval evaluates an expression against env, applying the rules of
// spec.md §4.B.
func Eval(expr ast.Expression, env *Env) (Value, error) {
	switch e := expr.(type) {
	case *ast.StringLit:
		return String(e.Value), nil
	case *ast.NumberLit:
		return Number(e.Value), nil
	case *ast.BoolLit:
		return Bool(e.Value), nil
	case *ast.NullLit:
		return Null(), nil
	case *ast.Ident:
		return evalIdent(e, env)
	case *ast.Template:
		return evalTemplate(e, env)
	case *ast.ArrayExpr:
		return evalArray(e, env)
	case *ast.ObjectExpr:
		return evalObject(e, env)
	case *ast.Conditional:
		return evalConditional(e, env)
	case *ast.ForExpr:
		return evalFor(e, env)
	case *ast.UnaryExpr:
		return evalUnary(e, env)
	case *ast.BinaryExpr:
		return evalBinary(e, env)
	case *ast.FuncCall:
		return evalFuncCall(e, env)
	case *ast.Traversal:
		return evalTraversal(e, env)
	default:
		return Value{}, diagnostics.Runtime("unsupported expression type %T", expr)
	}
}

// evalIdent resolves a bare identifier: either a namespace root used
// with no further traversal ops (handled structurally by the parser,
// which only ever produces a bare *ast.Ident when there are zero
// traversal operators), or sugar for var.<name> when the name matches a
// bound variable, per spec.md §4.B: "A root equal to a bound variable
// name is allowed (sugar for var.x)."
func evalIdent(id *ast.Ident, env *Env) (Value, error) {
	if v, ok := env.Vars[id.Name]; ok {
		return v, nil
	}
	if v, ok := env.Locals[id.Name]; ok {
		return v, nil
	}
	return Value{}, diagnostics.UndefinedReference(id.Sp, "variable", id.Name)
}

func evalTemplate(t *ast.Template, env *Env) (Value, error) {
	out := ""
	for _, part := range t.Parts {
		if part.Interp == nil {
			out += part.Literal
			continue
		}
		v, err := Eval(part.Interp, env)
		if err != nil {
			return Value{}, err
		}
		out += v.String()
	}
	return String(out), nil
}

func evalArray(a *ast.ArrayExpr, env *Env) (Value, error) {
	out := make([]Value, len(a.Elems))
	for i, e := range a.Elems {
		v, err := Eval(e, env)
		if err != nil {
			return Value{}, err
		}
		out[i] = v
	}
	return Array(out), nil
}

func evalObject(o *ast.ObjectExpr, env *Env) (Value, error) {
	values := make([]Value, len(o.Values))
	for i, e := range o.Values {
		v, err := Eval(e, env)
		if err != nil {
			return Value{}, err
		}
		values[i] = v
	}
	return Object(o.Keys, values), nil
}

func evalConditional(c *ast.Conditional, env *Env) (Value, error) {
	cond, err := Eval(c.Cond, env)
	if err != nil {
		return Value{}, err
	}
	b, err := cond.AsBool()
	if err != nil {
		return Value{}, diagnostics.TypeMismatch(c.Cond.Span(), "conditional predicate", "bool", cond.Kind.String())
	}
	if b {
		return Eval(c.Then, env)
	}
	return Eval(c.Else, env)
}

// evalFor implements both comprehension forms over either an array
// (binding value, and index as key when two variables are given) or an
// object (binding key, value), per spec.md §4.B. Object traversal order
// is key-sorted, per §8 property 3.
func evalFor(f *ast.ForExpr, env *Env) (Value, error) {
	coll, err := Eval(f.Collection, env)
	if err != nil {
		return Value{}, err
	}
	type binding struct {
		key Value
		val Value
	}
	var items []binding
	switch coll.Kind {
	case KindArray:
		for i, v := range coll.Arr {
			items = append(items, binding{key: Number(float64(i)), val: v})
		}
	case KindObject:
		for _, k := range SortedKeys(coll) {
			v, _ := coll.Get(k)
			items = append(items, binding{key: String(k), val: v})
		}
	default:
		return Value{}, diagnostics.TypeMismatch(f.Collection.Span(), "for-comprehension collection", "array or object", coll.Kind.String())
	}

	if f.IsMap {
		keys := []string{}
		values := []Value{}
		grouped := map[string][]Value{}
		var order []string
		for _, it := range items {
			child := bindForVars(env, f, it.key, it.val)
			if f.Cond != nil {
				ok, err := evalForCond(f.Cond, child)
				if err != nil {
					return Value{}, err
				}
				if !ok {
					continue
				}
			}
			kv, err := Eval(f.KeyExpr, child)
			if err != nil {
				return Value{}, err
			}
			vv, err := Eval(f.ValueExpr, child)
			if err != nil {
				return Value{}, err
			}
			key := kv.String()
			if f.Group {
				if _, seen := grouped[key]; !seen {
					order = append(order, key)
				}
				grouped[key] = append(grouped[key], vv)
				continue
			}
			keys = append(keys, key)
			values = append(values, vv)
		}
		if f.Group {
			for _, k := range order {
				keys = append(keys, k)
				values = append(values, Array(grouped[k]))
			}
		}
		return Object(keys, values), nil
	}

	var out []Value
	for _, it := range items {
		child := bindForVars(env, f, it.key, it.val)
		if f.Cond != nil {
			ok, err := evalForCond(f.Cond, child)
			if err != nil {
				return Value{}, err
			}
			if !ok {
				continue
			}
		}
		v, err := Eval(f.ValueExpr, child)
		if err != nil {
			return Value{}, err
		}
		out = append(out, v)
	}
	return Array(out), nil
}

func evalForCond(cond ast.Expression, env *Env) (bool, error) {
	v, err := Eval(cond, env)
	if err != nil {
		return false, err
	}
	return v.AsBool()
}

// bindForVars binds the comprehension's loop variables as ordinary
// locals in a child scope, rather than the each/count namespace: these
// are lexical to the comprehension expression, not a for_each/count
// block iteration.
func bindForVars(env *Env, f *ast.ForExpr, key, val Value) *Env {
	child := env.Child()
	if f.KeyVar != "" {
		child.Locals[f.KeyVar] = key
		child.Locals[f.ValVar] = val
	} else {
		child.Locals[f.ValVar] = val
	}
	return child
}

func evalUnary(u *ast.UnaryExpr, env *Env) (Value, error) {
	x, err := Eval(u.X, env)
	if err != nil {
		return Value{}, err
	}
	switch u.Op {
	case ast.UnaryNot:
		b, err := x.AsBool()
		if err != nil {
			return Value{}, diagnostics.TypeMismatch(u.Sp, "unary !", "bool", x.Kind.String())
		}
		return Bool(!b), nil
	case ast.UnaryNeg:
		n, err := x.AsNumber()
		if err != nil {
			return Value{}, diagnostics.TypeMismatch(u.Sp, "unary -", "number", x.Kind.String())
		}
		return Number(-n), nil
	default:
		return Value{}, diagnostics.Runtime("unknown unary operator")
	}
}

func evalBinary(b *ast.BinaryExpr, env *Env) (Value, error) {
	l, err := Eval(b.L, env)
	if err != nil {
		return Value{}, err
	}
	switch b.Op {
	case ast.BinEq:
		r, err := Eval(b.R, env)
		if err != nil {
			return Value{}, err
		}
		return Bool(Equal(l, r)), nil
	case ast.BinNotEq:
		r, err := Eval(b.R, env)
		if err != nil {
			return Value{}, err
		}
		return Bool(!Equal(l, r)), nil
	case ast.BinAnd:
		lb, err := l.AsBool()
		if err != nil {
			return Value{}, diagnostics.TypeMismatch(b.L.Span(), "&&", "bool", l.Kind.String())
		}
		if !lb {
			return Bool(false), nil
		}
		r, err := Eval(b.R, env)
		if err != nil {
			return Value{}, err
		}
		rb, err := r.AsBool()
		if err != nil {
			return Value{}, diagnostics.TypeMismatch(b.R.Span(), "&&", "bool", r.Kind.String())
		}
		return Bool(rb), nil
	case ast.BinOr:
		lb, err := l.AsBool()
		if err != nil {
			return Value{}, diagnostics.TypeMismatch(b.L.Span(), "||", "bool", l.Kind.String())
		}
		if lb {
			return Bool(true), nil
		}
		r, err := Eval(b.R, env)
		if err != nil {
			return Value{}, err
		}
		rb, err := r.AsBool()
		if err != nil {
			return Value{}, diagnostics.TypeMismatch(b.R.Span(), "||", "bool", r.Kind.String())
		}
		return Bool(rb), nil
	case ast.BinLt, ast.BinLtEq, ast.BinGt, ast.BinGtEq:
		r, err := Eval(b.R, env)
		if err != nil {
			return Value{}, err
		}
		ln, err := l.AsNumber()
		if err != nil {
			return Value{}, diagnostics.TypeMismatch(b.L.Span(), "relational operator", "number", l.Kind.String())
		}
		rn, err := r.AsNumber()
		if err != nil {
			return Value{}, diagnostics.TypeMismatch(b.R.Span(), "relational operator", "number", r.Kind.String())
		}
		switch b.Op {
		case ast.BinLt:
			return Bool(ln < rn), nil
		case ast.BinLtEq:
			return Bool(ln <= rn), nil
		case ast.BinGt:
			return Bool(ln > rn), nil
		default:
			return Bool(ln >= rn), nil
		}
	default:
		return Value{}, diagnostics.Runtime("unknown binary operator")
	}
}

func evalFuncCall(c *ast.FuncCall, env *Env) (Value, error) {
	spec, ok := builtins.Lookup(c.Name)
	if !ok {
		return Value{}, diagnostics.Reference(c.Sp, "undefined function %q", c.Name)
	}
	args := make([]builtins.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := Eval(a, env)
		if err != nil {
			return Value{}, err
		}
		args[i] = toBuiltinValue(v)
	}
	result, err := spec.Call(args)
	if err != nil {
		return Value{}, diagnostics.TypeMismatch(c.Sp, "call to "+c.Name, "valid arguments", err.Error())
	}
	return fromBuiltinValue(result), nil
}

// evalTraversal resolves a namespace-rooted traversal: `var`, `local`/
// `locals`, `each`, `count`, `module`, or `data`, followed by attribute
// or index operators walking into object/array values.
func evalTraversal(tr *ast.Traversal, env *Env) (Value, error) {
	root, consumed, err := resolveNamespaceRoot(tr, env)
	if err != nil {
		return Value{}, err
	}
	cur := root
	for _, op := range tr.Ops[consumed:] {
		if op.Attr != "" {
			v, ok := cur.Get(op.Attr)
			if !ok {
				return Value{}, diagnostics.UndefinedReference(tr.Sp, tr.Root.Name, op.Attr)
			}
			cur = v
			continue
		}
		idx, err := Eval(op.Index, env)
		if err != nil {
			return Value{}, err
		}
		v, err := cur.Index(idx)
		if err != nil {
			return Value{}, diagnostics.Runtime("%v", err)
		}
		cur = v
	}
	return cur, nil
}

// resolveNamespaceRoot resolves the root identifier plus however many
// leading traversal ops name the namespace member (one op, in every
// case: the var/local/module/data lookup key, or the each/count
// sub-field name), returning that value and the op count it consumed
// so the caller can continue walking from there.
func resolveNamespaceRoot(tr *ast.Traversal, env *Env) (Value, int, error) {
	switch tr.Root.Name {
	case "var":
		v, err := firstOp(tr, env.Vars, "var")
		return v, 1, err
	case "local", "locals":
		v, err := firstOp(tr, env.Locals, tr.Root.Name)
		return v, 1, err
	case "module":
		v, err := firstOp(tr, env.Modules, "module")
		return v, 1, err
	case "data":
		v, err := firstOp(tr, env.Data, "data")
		return v, 1, err
	case "each":
		if len(tr.Ops) == 0 {
			return Value{}, 0, diagnostics.UndefinedReference(tr.Sp, "each", "")
		}
		switch tr.Ops[0].Attr {
		case "value":
			if env.Each == nil {
				return Value{}, 0, diagnostics.Reference(tr.Sp, "each.value referenced outside a for_each iteration")
			}
			return *env.Each, 1, nil
		case "key":
			if env.EachKey == nil {
				return Value{}, 0, diagnostics.Reference(tr.Sp, "each.key referenced outside an object-driven for_each iteration")
			}
			return *env.EachKey, 1, nil
		default:
			return Value{}, 0, diagnostics.UndefinedReference(tr.Sp, "each", tr.Ops[0].Attr)
		}
	case "count":
		if len(tr.Ops) == 0 || tr.Ops[0].Attr != "index" {
			return Value{}, 0, diagnostics.UndefinedReference(tr.Sp, "count", "index")
		}
		if env.Count == nil {
			return Value{}, 0, diagnostics.Reference(tr.Sp, "count.index referenced outside a count iteration")
		}
		return Number(float64(*env.Count)), 1, nil
	default:
		// Sugar: a bare variable-name root with further traversal ops,
		// e.g. `mytable.columns[0]` where `mytable` is a declared var.
		if v, ok := env.Vars[tr.Root.Name]; ok {
			return v, 0, nil
		}
		if v, ok := env.Locals[tr.Root.Name]; ok {
			return v, 0, nil
		}
		return Value{}, 0, diagnostics.UndefinedReference(tr.Sp, "variable", tr.Root.Name)
	}
}

// firstOp resolves `<namespace>.<first-attr>` against a namespace map.
// Namespaces with zero further ops are an error: `var` alone names
// nothing.
func firstOp(tr *ast.Traversal, ns map[string]Value, nsName string) (Value, error) {
	if len(tr.Ops) == 0 || tr.Ops[0].Attr == "" {
		return Value{}, diagnostics.UndefinedReference(tr.Sp, nsName, "")
	}
	name := tr.Ops[0].Attr
	v, ok := ns[name]
	if !ok {
		return Value{}, diagnostics.UndefinedReference(tr.Sp, nsName, name)
	}
	return v, nil
}
