package builtins

import "fmt"

// String renders a Value the same way eval.Value.String() does; kept
// in sync deliberately since both represent the same interpolation
// semantics, just on two sides of the eval/builtins package boundary.
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
		out := "["
		for i, e := range v.Arr {
			if i > 0 {
				out += ", "
			}
			out += e.String()
		}
		return out + "]"
	case KindObject:
		out := "{"
		for i, k := range v.Keys {
			if i > 0 {
				out += ", "
			}
			val, _ := v.Get(k)
			out += k + " = " + val.String()
		}
		return out + "}"
	default:
		return ""
	}
}

func (v Value) equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindNumber:
		return v.Num == o.Num
	case KindBool:
		return v.Bool == o.Bool
	case KindNull:
		return true
	case KindArray:
		if len(v.Arr) != len(o.Arr) {
			return false
		}
		for i := range v.Arr {
			if !v.Arr[i].equal(o.Arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.Keys) != len(o.Keys) {
			return false
		}
		for _, k := range v.Keys {
			a, ok := v.Get(k)
			if !ok {
				return false
			}
			b, ok := o.Get(k)
			if !ok || !a.equal(b) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
