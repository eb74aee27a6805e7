// Package json emits the structured JSON description backend
// (spec.md §4.E): a direct serialization of the lowered Config plus
// the evaluation-time variable bindings, for tooling that wants the
// compiler's output as data rather than as generated code.
package json

import (
	"bytes"
	"encoding/json"

	"github.com/dbschema-go/dbschema/eval"
	"github.com/dbschema-go/dbschema/ir"
)

// Emit marshals cfg and the resolved top-level variable bindings into
// indented JSON: {"backend":"json","config":<cfg>,"vars":<vars>}
// (spec.md §4.E). vars uses eval.Value's order-preserving MarshalJSON
// so the object's keys appear in the Value's own key order instead of
// Go's randomized map order. strict is accepted only to keep this
// backend's signature uniform with postgres.Emit and prisma.Emit — the
// JSON backend has no strict-only behavior of its own.
func Emit(cfg *ir.Config, vars eval.Value, strict bool) (string, error) {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	varsJSON, err := json.Marshal(vars)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"backend":"json","config":`)
	buf.Write(cfgJSON)
	buf.WriteString(`,"vars":`)
	buf.Write(varsJSON)
	buf.WriteByte('}')

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf.Bytes(), "", "  "); err != nil {
		return "", err
	}
	pretty.WriteByte('\n')
	return pretty.String(), nil
}
