package extract

import (
	"github.com/dbschema-go/dbschema/eval"
	"github.com/dbschema-go/dbschema/internal/diagnostics"
	"github.com/dbschema-go/dbschema/lang/ast"
)

// reqString evaluates a required string attribute, failing if absent or
// not a string.
func reqString(body *ast.Body, env *eval.Env, block, name string) (string, error) {
	a := body.Attribute(name)
	if a == nil {
		return "", diagnostics.Structural(diagnostics.EmptySpan(), block, "missing required %s attribute", name)
	}
	v, err := eval.Eval(a.Value, env)
	if err != nil {
		return "", err
	}
	if v.Kind != eval.KindString {
		return "", diagnostics.TypeMismatch(a.Sp, block+"."+name, "string", v.Kind.String())
	}
	return v.Str, nil
}

// optString evaluates an optional string attribute, returning nil when
// absent.
func optString(body *ast.Body, env *eval.Env, block, name string) (*string, error) {
	a := body.Attribute(name)
	if a == nil {
		return nil, nil
	}
	v, err := eval.Eval(a.Value, env)
	if err != nil {
		return nil, err
	}
	if v.Kind != eval.KindString {
		return nil, diagnostics.TypeMismatch(a.Sp, block+"."+name, "string", v.Kind.String())
	}
	s := v.Str
	return &s, nil
}

func optBool(body *ast.Body, env *eval.Env, block, name string, def bool) (bool, error) {
	a := body.Attribute(name)
	if a == nil {
		return def, nil
	}
	v, err := eval.Eval(a.Value, env)
	if err != nil {
		return false, err
	}
	b, err := v.AsBool()
	if err != nil {
		return false, diagnostics.TypeMismatch(a.Sp, block+"."+name, "bool", v.Kind.String())
	}
	return b, nil
}

func optFloat(body *ast.Body, env *eval.Env, block, name string) (*float64, error) {
	a := body.Attribute(name)
	if a == nil {
		return nil, nil
	}
	v, err := eval.Eval(a.Value, env)
	if err != nil {
		return nil, err
	}
	n, err := v.AsNumber()
	if err != nil {
		return nil, diagnostics.TypeMismatch(a.Sp, block+"."+name, "number", v.Kind.String())
	}
	return &n, nil
}

func optInt(body *ast.Body, env *eval.Env, block, name string) (*int64, error) {
	f, err := optFloat(body, env, block, name)
	if err != nil || f == nil {
		return nil, err
	}
	i := int64(*f)
	return &i, nil
}

func reqInt(body *ast.Body, env *eval.Env, block, name string, def int) (int, error) {
	f, err := optFloat(body, env, block, name)
	if err != nil {
		return 0, err
	}
	if f == nil {
		return def, nil
	}
	return int(*f), nil
}

// stringDefault evaluates an optional string attribute, substituting
// def when it's absent.
func stringDefault(body *ast.Body, env *eval.Env, block, name, def string) (string, error) {
	s, err := optString(body, env, block, name)
	if err != nil {
		return "", err
	}
	if s == nil {
		return def, nil
	}
	return *s, nil
}

// stringListDefault evaluates an optional array-of-string attribute,
// substituting def when it's absent.
func stringListDefault(body *ast.Body, env *eval.Env, block, name string, def []string) ([]string, error) {
	list, err := stringList(body, env, block, name)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return def, nil
	}
	return list, nil
}

// stringList evaluates an optional array-of-string attribute, returning
// nil when it is absent.
func stringList(body *ast.Body, env *eval.Env, block, name string) ([]string, error) {
	a := body.Attribute(name)
	if a == nil {
		return nil, nil
	}
	return evalStringArray(env, a, block, name)
}

func evalStringArray(env *eval.Env, a *ast.Attribute, block, name string) ([]string, error) {
	v, err := eval.Eval(a.Value, env)
	if err != nil {
		return nil, err
	}
	if v.Kind != eval.KindArray {
		return nil, diagnostics.TypeMismatch(a.Sp, block+"."+name, "array", v.Kind.String())
	}
	out := make([]string, len(v.Arr))
	for i, e := range v.Arr {
		if e.Kind != eval.KindString {
			return nil, diagnostics.TypeMismatch(a.Sp, block+"."+name, "string", e.Kind.String())
		}
		out[i] = e.Str
	}
	return out, nil
}

// stringOrStringList implements the extractor's preserved coercion bug:
// attributes like a test's `assert` accept either a single string or an
// array of strings. Array is tried first; on failure, single string; if
// both fail, the single-string error is returned (it names the attribute).
func stringOrStringList(body *ast.Body, env *eval.Env, block, name string) ([]string, error) {
	a := body.Attribute(name)
	if a == nil {
		return nil, nil
	}
	if list, err := evalStringArray(env, a, block, name); err == nil {
		return list, nil
	}
	s, err := reqString(body, env, block, name)
	if err != nil {
		return nil, err
	}
	return []string{s}, nil
}
