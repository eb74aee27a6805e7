package eval

import "github.com/dbschema-go/dbschema/eval/builtins"

// toBuiltinValue/fromBuiltinValue cross the eval/builtins package
// boundary: builtins cannot import eval (eval already imports
// builtins), so the two packages carry structurally identical Value
// types and convert at the call site in evalFuncCall.
func toBuiltinValue(v Value) builtins.Value {
	switch v.Kind {
	case KindString:
		return builtins.String(v.Str)
	case KindNumber:
		return builtins.Number(v.Num)
	case KindBool:
		return builtins.Bool(v.Bool)
	case KindNull:
		return builtins.Null()
	case KindArray:
		out := make([]builtins.Value, len(v.Arr))
		for i, e := range v.Arr {
			out[i] = toBuiltinValue(e)
		}
		return builtins.Array(out)
	case KindObject:
		values := make([]builtins.Value, len(v.Keys))
		for i, k := range v.Keys {
			ev, _ := v.Get(k)
			values[i] = toBuiltinValue(ev)
		}
		return builtins.Object(v.Keys, values)
	default:
		return builtins.Null()
	}
}

func fromBuiltinValue(v builtins.Value) Value {
	switch v.Kind {
	case builtins.KindString:
		return String(v.Str)
	case builtins.KindNumber:
		return Number(v.Num)
	case builtins.KindBool:
		return Bool(v.Bool)
	case builtins.KindNull:
		return Null()
	case builtins.KindArray:
		out := make([]Value, len(v.Arr))
		for i, e := range v.Arr {
			out[i] = fromBuiltinValue(e)
		}
		return Array(out)
	case builtins.KindObject:
		values := make([]Value, len(v.Keys))
		for i, k := range v.Keys {
			ev, _ := v.Get(k)
			values[i] = fromBuiltinValue(ev)
		}
		return Object(v.Keys, values)
	default:
		return Null()
	}
}
