package commands

import (
	"sort"

	"github.com/dbschema-go/dbschema/eval"
	"github.com/dbschema-go/dbschema/extract"
	"github.com/dbschema-go/dbschema/ir"
	"github.com/dbschema-go/dbschema/loader"
)

// compileResult is every intermediate product of the pipeline a
// command might want to report on.
type compileResult struct {
	loaded  *eval.LoadedFile
	extract *extract.Config
	cfg     *ir.Config
}

// compile runs the full loader -> evaluator -> extractor -> IR pipeline
// (spec.md §2's pipeline) against path, seeding top-level variables
// from vars. strict gates ir.Validate's strict-only checks; it does not
// affect a later backend.Emit call, which takes its own strict flag.
// ld is reused by the caller to re-read source for diagnostic printing
// on failure.
func compile(ld loader.Loader, path string, vars map[string]eval.Value, strict bool) (*compileResult, error) {
	stack := loader.NewStack()

	loaded, err := eval.LoadFile(ld, stack, path, vars)
	if err != nil {
		return nil, err
	}

	extracted, err := extract.ExtractAll(loaded)
	if err != nil {
		return nil, err
	}

	cfg := ir.Lower(extracted)
	if err := ir.Validate(cfg, strict); err != nil {
		return nil, err
	}

	return &compileResult{loaded: loaded, extract: extracted, cfg: cfg}, nil
}

// topLevelVarsValue builds the object the JSON backend's "vars" field
// reports: every var.* binding the root file ended up with, key-sorted
// for determinism.
func topLevelVarsValue(result *compileResult) eval.Value {
	keys := make([]string, 0, len(result.loaded.Env.Vars))
	for k := range result.loaded.Env.Vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([]eval.Value, len(keys))
	for i, k := range keys {
		values[i] = result.loaded.Env.Vars[k]
	}
	return eval.Object(keys, values)
}

// rootVars merges --var and --var-file flags into one binding map,
// --var taking precedence over the file per parseVarFile's contract.
func rootVars(varFlags []string, varFile string) (map[string]eval.Value, error) {
	vars, err := parseVarFlags(varFlags)
	if err != nil {
		return nil, err
	}
	if varFile != "" {
		if err := parseVarFile(varFile, vars); err != nil {
			return nil, err
		}
	}
	return vars, nil
}
