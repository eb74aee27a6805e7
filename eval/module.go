package eval

import (
	"github.com/dbschema-go/dbschema/internal/diagnostics"
	"github.com/dbschema-go/dbschema/lang/ast"
	"github.com/dbschema-go/dbschema/lang/parser"
	"github.com/dbschema-go/dbschema/loader"
)

// LoadedFile is one parsed, module-processed source file: the
// remaining structures the resource extractor still needs to walk
// (everything but `variable`/`locals`/`module`/`output`, which this
// package consumes directly), plus the environment those structures
// should be extracted against.
type LoadedFile struct {
	Body       *ast.Body
	Env        *Env
	Outputs    map[string]Value
	OutputKeys []string // declaration order, for deterministic module.<name> object keys

	// Submodules lists every module file reachable from this one,
	// flattened depth-first in load order (spec.md §4.C: "extraction
	// order across files follows the module graph in load order"). A
	// for_each/count module contributes one entry per iteration.
	Submodules []*LoadedFile
}

// LoadFile parses the file at path, processes its variable/locals/
// module/output declarations (recursing into referenced modules as
// needed), and returns the remainder of the body for extraction. args
// seeds the file's variable namespace (empty for the root file; a
// module's call-site attributes when loaded as a sub-module).
func LoadFile(ld loader.Loader, stack *loader.Stack, path string, args map[string]Value) (*LoadedFile, error) {
	entryPath := loader.ResolveEntryPath(path)
	if err := stack.Enter(entryPath); err != nil {
		return nil, err
	}
	defer stack.Leave()

	source, err := ld.Load(entryPath)
	if err != nil {
		return nil, err
	}
	body, err := parser.Parse(entryPath, source)
	if err != nil {
		return nil, err
	}

	env := Fresh(args)
	var rest []ast.Structure
	var outputBlocks []*ast.Block
	var submodules []*LoadedFile

	for _, s := range body.Structures {
		blk, ok := s.(*ast.Block)
		if !ok {
			rest = append(rest, s)
			continue
		}
		switch blk.Kind {
		case "variable":
			if err := processVariable(blk, env); err != nil {
				return nil, err
			}
		case "locals":
			if err := processLocals(blk, env); err != nil {
				return nil, err
			}
		case "module":
			if err := processModule(ld, stack, entryPath, blk, env, &submodules); err != nil {
				return nil, err
			}
		case "output":
			outputBlocks = append(outputBlocks, blk)
		default:
			rest = append(rest, blk)
		}
	}

	outputs := map[string]Value{}
	var outputKeys []string
	for _, ob := range outputBlocks {
		valueAttr := ob.Body.Attribute("value")
		if valueAttr == nil {
			return nil, diagnostics.Structural(ob.Sp, "output", "missing required value attribute")
		}
		v, err := Eval(valueAttr.Value, env)
		if err != nil {
			return nil, err
		}
		outputs[ob.Label(0)] = v
		outputKeys = append(outputKeys, ob.Label(0))
	}

	return &LoadedFile{Body: &ast.Body{Structures: rest}, Env: env, Outputs: outputs, OutputKeys: outputKeys, Submodules: submodules}, nil
}

// processVariable implements spec.md §4.B's variable-entry rule: if a
// value exists in the environment (passed in via args, already seeded
// into env.Vars by Fresh), type-check it; then evaluate validation.
// Otherwise fall back to the declared default.
func processVariable(blk *ast.Block, env *Env) error {
	name := blk.Label(0)
	if name == "" {
		return diagnostics.Structural(blk.Sp, "variable", "missing name label")
	}
	existing, hasValue := env.Vars[name]

	if !hasValue {
		if defAttr := blk.Body.Attribute("default"); defAttr != nil {
			v, err := Eval(defAttr.Value, env)
			if err != nil {
				return err
			}
			existing = v
			hasValue = true
			env.Vars[name] = v
		}
	}

	if hasValue {
		if typeAttr := blk.Body.Attribute("type"); typeAttr != nil {
			typeName, err := Eval(typeAttr.Value, env)
			if err != nil {
				return err
			}
			if err := checkType(typeName.Str, existing, blk.Sp); err != nil {
				return err
			}
		}
	}

	if validationBlocks := blk.Body.BlocksOfType("validation"); len(validationBlocks) > 0 {
		for _, vb := range validationBlocks {
			condAttr := vb.Body.Attribute("condition")
			msgAttr := vb.Body.Attribute("error_message")
			if condAttr == nil {
				return diagnostics.Structural(vb.Sp, "validation", "missing required condition attribute")
			}
			cond, err := Eval(condAttr.Value, env)
			if err != nil {
				return err
			}
			ok, err := cond.AsBool()
			if err != nil {
				return diagnostics.TypeMismatch(condAttr.Sp, "validation condition", "bool", cond.Kind.String())
			}
			if !ok {
				msg := "validation failed for variable " + name
				if msgAttr != nil {
					msgVal, err := Eval(msgAttr.Value, env)
					if err != nil {
						return err
					}
					msg = msgVal.String()
				}
				return diagnostics.Runtime("%s", msg)
			}
		}
	}
	return nil
}

// checkType recursively validates a value's shape against a declared
// type name, supporting the list(T)/map(T) composite forms spec.md
// §4.B names alongside the scalar primitives.
func checkType(typeName string, v Value, sp diagnostics.Span) error {
	switch {
	case typeName == "string":
		if v.Kind != KindString {
			return diagnostics.TypeMismatch(sp, "variable", "string", v.Kind.String())
		}
	case typeName == "number":
		if v.Kind != KindNumber {
			return diagnostics.TypeMismatch(sp, "variable", "number", v.Kind.String())
		}
	case typeName == "bool":
		if v.Kind != KindBool {
			return diagnostics.TypeMismatch(sp, "variable", "bool", v.Kind.String())
		}
	case len(typeName) > 5 && typeName[:5] == "list(" && typeName[len(typeName)-1] == ')':
		if v.Kind != KindArray {
			return diagnostics.TypeMismatch(sp, "variable", "list", v.Kind.String())
		}
		inner := typeName[5 : len(typeName)-1]
		for _, e := range v.Arr {
			if err := checkType(inner, e, sp); err != nil {
				return err
			}
		}
	case len(typeName) > 4 && typeName[:4] == "map(" && typeName[len(typeName)-1] == ')':
		if v.Kind != KindObject {
			return diagnostics.TypeMismatch(sp, "variable", "map", v.Kind.String())
		}
		inner := typeName[4 : len(typeName)-1]
		for _, k := range v.Keys {
			ev, _ := v.Get(k)
			if err := checkType(inner, ev, sp); err != nil {
				return err
			}
		}
	default:
		return diagnostics.Structural(sp, "variable", "unknown type %q", typeName)
	}
	return nil
}

// processLocals evaluates each `locals { name = expr }` attribute in
// declaration order, storing each result before evaluating the next so
// later locals may reference earlier ones.
func processLocals(blk *ast.Block, env *Env) error {
	for _, a := range blk.Body.Attributes() {
		v, err := Eval(a.Value, env)
		if err != nil {
			return err
		}
		env.Locals[a.Name] = v
	}
	return nil
}

// processModule resolves a `module "<name>" { source = ...; ... }`
// call site, expanding for_each/count per spec.md §4.B, and stores the
// captured sub-module output(s) into the caller's env.Modules under
// module.<name>.
func processModule(ld loader.Loader, stack *loader.Stack, callerFile string, blk *ast.Block, env *Env, collector *[]*LoadedFile) error {
	name := blk.Label(0)
	if name == "" {
		return diagnostics.Structural(blk.Sp, "module", "missing name label")
	}
	sourceAttr := blk.Body.Attribute("source")
	if sourceAttr == nil {
		return diagnostics.Structural(blk.Sp, "module", "missing required source attribute")
	}
	sourceVal, err := Eval(sourceAttr.Value, env)
	if err != nil {
		return err
	}
	modulePath := loader.Resolve(callerFile, sourceVal.Str)

	callArgs := func(callEnv *Env) (map[string]Value, error) {
		args := map[string]Value{}
		for _, a := range blk.Body.Attributes() {
			if a.Name == "source" || a.Name == "for_each" || a.Name == "count" {
				continue
			}
			v, err := Eval(a.Value, callEnv)
			if err != nil {
				return nil, err
			}
			args[a.Name] = v
		}
		return args, nil
	}

	switch {
	case blk.ForEach != nil && blk.Count != nil:
		return diagnostics.Structural(blk.Sp, "module", "cannot use both for_each and count")
	case blk.ForEach != nil:
		collection, err := Eval(blk.ForEach, env)
		if err != nil {
			return err
		}
		merged := map[string]Value{}
		var keys []string
		switch collection.Kind {
		case KindArray:
			for i, v := range collection.Arr {
				childEnv := env.WithEach(nil, v)
				args, err := callArgs(childEnv)
				if err != nil {
					return err
				}
				loaded, err := loadAndCapture(ld, stack, modulePath, args, collector)
				if err != nil {
					return err
				}
				k := itoaIndex(i)
				keys = append(keys, k)
				merged[k] = Object(loaded.OutputKeys, valuesOf(loaded.Outputs, loaded.OutputKeys))
			}
		case KindObject:
			for _, k := range SortedKeys(collection) {
				v, _ := collection.Get(k)
				keyVal := String(k)
				childEnv := env.WithEach(&keyVal, v)
				args, err := callArgs(childEnv)
				if err != nil {
					return err
				}
				loaded, err := loadAndCapture(ld, stack, modulePath, args, collector)
				if err != nil {
					return err
				}
				keys = append(keys, k)
				merged[k] = Object(loaded.OutputKeys, valuesOf(loaded.Outputs, loaded.OutputKeys))
			}
		default:
			return diagnostics.TypeMismatch(blk.ForEach.Span(), "module for_each", "array or object", collection.Kind.String())
		}
		env.Modules[name] = Object(keys, valuesOf(merged, keys))
		return nil
	case blk.Count != nil:
		countVal, err := Eval(blk.Count, env)
		if err != nil {
			return err
		}
		n, err := countVal.AsNumber()
		if err != nil {
			return diagnostics.TypeMismatch(blk.Count.Span(), "module count", "number", countVal.Kind.String())
		}
		merged := map[string]Value{}
		var keys []string
		for i := 0; i < int(n); i++ {
			childEnv := env.WithCount(i)
			args, err := callArgs(childEnv)
			if err != nil {
				return err
			}
			loaded, err := loadAndCapture(ld, stack, modulePath, args, collector)
			if err != nil {
				return err
			}
			k := itoaIndex(i)
			keys = append(keys, k)
			merged[k] = Object(loaded.OutputKeys, valuesOf(loaded.Outputs, loaded.OutputKeys))
		}
		env.Modules[name] = Object(keys, valuesOf(merged, keys))
		return nil
	default:
		args, err := callArgs(env)
		if err != nil {
			return err
		}
		loaded, err := loadAndCapture(ld, stack, modulePath, args, collector)
		if err != nil {
			return err
		}
		env.Modules[name] = Object(loaded.OutputKeys, valuesOf(loaded.Outputs, loaded.OutputKeys))
		return nil
	}
}

// loadAndCapture loads a submodule and appends it (plus everything it
// in turn loaded) to collector, flattened depth-first so the caller
// ends up with the full module graph in load order.
func loadAndCapture(ld loader.Loader, stack *loader.Stack, path string, args map[string]Value, collector *[]*LoadedFile) (*LoadedFile, error) {
	loaded, err := LoadFile(ld, stack, path, args)
	if err != nil {
		return nil, err
	}
	*collector = append(*collector, loaded)
	*collector = append(*collector, loaded.Submodules...)
	return loaded, nil
}

func itoaIndex(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}
