package eval

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON renders a Value as JSON, writing object keys in
// declaration order rather than Go's randomized map order or the
// alphabetical order encoding/json would otherwise impose on a plain
// map[string]any -- required for the JSON backend's output to be
// deterministic across runs on the same input (spec.md §4.E, §5).
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindNull:
		return []byte("null"), nil
	case KindArray:
		return json.Marshal(v.Arr)
	case KindObject:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range v.Keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := json.Marshal(v.Object[k])
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return []byte("null"), nil
	}
}
