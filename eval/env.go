package eval

// Env is the five-namespace scope object spec.md §3 describes: ordinary
// variables (var.*), computed locals (local.*/locals.*), per-iteration
// bindings (each.*/count.index), sub-module output bindings
// (module.<name>.<output>), and a data-source namespace. It is a small
// value object copied on iteration (Child/WithEach/WithCount) rather
// than shared by pointer, so sibling for_each iterations never observe
// each other's `each` binding — see SPEC_FULL.md §3's "cloneable
// environments" note.
type Env struct {
	Vars    map[string]Value
	Locals  map[string]Value
	Each    *Value // current each.value, nil outside an each-bound iteration
	EachKey *Value // current each.key, nil for array-driven for_each
	Count   *int   // current count.index, nil outside a count-bound iteration
	Modules map[string]Value // module.<name> -> object of outputs
	Data    map[string]Value
}

// NewEnv builds an empty root environment.
func NewEnv() *Env {
	return &Env{
		Vars:    map[string]Value{},
		Locals:  map[string]Value{},
		Modules: map[string]Value{},
		Data:    map[string]Value{},
	}
}

// clone returns a shallow copy of e whose namespace maps are
// independent (but whose Values are immutable and safely shared).
func (e *Env) clone() *Env {
	n := &Env{
		Vars:    make(map[string]Value, len(e.Vars)),
		Locals:  make(map[string]Value, len(e.Locals)),
		Modules: make(map[string]Value, len(e.Modules)),
		Data:    make(map[string]Value, len(e.Data)),
		Each:    e.Each,
		EachKey: e.EachKey,
		Count:   e.Count,
	}
	for k, v := range e.Vars {
		n.Vars[k] = v
	}
	for k, v := range e.Locals {
		n.Locals[k] = v
	}
	for k, v := range e.Modules {
		n.Modules[k] = v
	}
	for k, v := range e.Data {
		n.Data[k] = v
	}
	return n
}

// Child returns a copy of e suitable for a nested scope that inherits
// the parent's variables (e.g. a nested block body).
func (e *Env) Child() *Env {
	return e.clone()
}

// WithEach returns a copy of e with each.value (and optionally
// each.key) bound, for one for_each iteration over an array or object.
func (e *Env) WithEach(key *Value, value Value) *Env {
	n := e.clone()
	n.Each = &value
	n.EachKey = key
	n.Count = nil
	return n
}

// WithCount returns a copy of e with count.index bound, for one count
// iteration.
func (e *Env) WithCount(index int) *Env {
	n := e.clone()
	n.Count = &index
	n.Each = nil
	n.EachKey = nil
	return n
}

// Fresh returns a new, empty-variable scope for a module invocation,
// seeded only with the given call-site arguments — module scopes do
// not inherit the caller's variables (spec.md §3: "module invocations
// start from an empty scope populated by arguments on the call site").
func Fresh(args map[string]Value) *Env {
	n := NewEnv()
	for k, v := range args {
		n.Vars[k] = v
	}
	return n
}

// SetModuleOutputs records a sub-module's captured outputs under
// module.<name>.
func (e *Env) SetModuleOutputs(name string, outputs map[string]Value, keys []string) {
	e.Modules[name] = Object(keys, valuesOf(outputs, keys))
}

func valuesOf(m map[string]Value, keys []string) []Value {
	out := make([]Value, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}
