package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/dbschema-go/dbschema/eval"
	"github.com/dbschema-go/dbschema/internal/diagnostics"
	"github.com/dbschema-go/dbschema/lang/parser"
	"github.com/dbschema-go/dbschema/loader"
)

// parseVarFlags turns repeated --var key=value flags into a binding map
// usable as eval.LoadFile's args parameter.
func parseVarFlags(assignments []string) (map[string]eval.Value, error) {
	out := map[string]eval.Value{}
	for _, a := range assignments {
		key, val, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --var %q: expected key=value", a)
		}
		out[key] = eval.String(val)
	}
	return out, nil
}

// parseVarFile reads an HCL var-assignment file (one `key = "value"`
// attribute per top-level variable) and merges it under vars, letting
// --var override entries it shares a key with.
func parseVarFile(path string, vars map[string]eval.Value) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read var file: %w", err)
	}
	body, err := parser.Parse(path, string(content))
	if err != nil {
		return fmt.Errorf("failed to parse var file: %w", err)
	}
	env := eval.NewEnv()
	for _, attr := range body.Attributes() {
		if _, exists := vars[attr.Name]; exists {
			continue
		}
		v, err := eval.Eval(attr.Value, env)
		if err != nil {
			return fmt.Errorf("failed to evaluate %q in var file: %w", attr.Name, err)
		}
		vars[attr.Name] = v
	}
	return nil
}

// printDiagnostic re-reads the file named in err's span (if any) through
// ld and renders a pointer-into-source diagnostic; it falls back to the
// bare error message when the span names no file or the re-read fails.
func printDiagnostic(ld loader.Loader, err error) {
	diagErr, ok := err.(*diagnostics.Error)
	if !ok || diagErr.Span.File == "" {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	source, readErr := ld.Load(diagErr.Span.File)
	if readErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	fmt.Fprint(os.Stderr, diagErr.Pretty(source))
}

// nameFilterSet turns a repeatable --name list of exact test names into
// the set Run expects; an empty list means "run everything".
func nameFilterSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}
