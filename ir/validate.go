package ir

import "github.com/dbschema-go/dbschema/internal/diagnostics"

// Validate runs the single linear pass over a lowered Config spec.md
// §4.D describes, in the order original_source/src/passes/validate.rs
// and src/frontend/resource_impls.rs check them, supplemented with the
// additional resolution checks a complete validator needs beyond the
// two relations spec.md calls out by name (those two remain exactly as
// specified; the rest are additions, see SPEC_FULL.md §4.D).
func Validate(cfg *Config, strict bool) error {
	if err := validateTriggerFunctions(cfg); err != nil {
		return err
	}
	if err := validateForeignKeys(cfg); err != nil {
		return err
	}
	if strict {
		if err := validateStrictEnums(cfg); err != nil {
			return err
		}
	}
	if err := validateTableReferences(cfg); err != nil {
		return err
	}
	if err := validateGrants(cfg); err != nil {
		return err
	}
	if strict {
		if err := validateSubscriptionPublications(cfg); err != nil {
			return err
		}
	}
	return nil
}

func functionExists(cfg *Config, name string, schema *string) bool {
	effectiveSchema := EffectiveSchema(schema)
	for _, f := range cfg.Functions {
		fs := EffectiveSchema(f.Schema)
		effectiveName := EffectiveName(f.Name, f.AltName)
		if effectiveName == name && fs == effectiveSchema {
			return true
		}
	}
	return false
}

// validateTriggerFunctions asserts that every trigger's and every
// event trigger's `function` resolves to a declared function at the
// same (effective-name, effective-schema) pair, defaulting the
// trigger's own schema when function_schema is absent (spec.md §4.D).
func validateTriggerFunctions(cfg *Config) error {
	for _, t := range cfg.Triggers {
		schema := t.FunctionSchema
		if schema == nil {
			schema = t.Schema
		}
		if !functionExists(cfg, t.Function, schema) {
			return diagnostics.Reference(diagnostics.EmptySpan(),
				"trigger %q references missing function %q: ensure the function exists or set function_schema", t.Name, t.Function)
		}
	}
	for _, t := range cfg.EventTriggers {
		if !functionExists(cfg, t.Function, t.FunctionSchema) {
			return diagnostics.Reference(diagnostics.EmptySpan(),
				"event trigger %q references missing function %q: ensure the function exists or set function_schema", t.Name, t.Function)
		}
	}
	return nil
}

func tableExists(cfg *Config, name string) bool {
	for _, t := range cfg.Tables {
		if t.Name == name || (t.AltName != nil && *t.AltName == name) {
			return true
		}
	}
	return false
}

func serverExists(cfg *Config, name string) bool {
	for _, s := range cfg.ForeignServers {
		if s.Name == name || (s.AltName != nil && *s.AltName == name) {
			return true
		}
	}
	return false
}

// validateForeignKeys asserts that every table foreign key's ref_table
// resolves to a declared table, and that every foreign table's implicit
// dependency on its declared server resolves too (SPEC_FULL.md §4.D
// item 1 -- spec.md's invariant plus the foreign_table addition).
func validateForeignKeys(cfg *Config) error {
	for _, t := range cfg.Tables {
		for _, fk := range t.ForeignKeys {
			if !tableExists(cfg, fk.RefTable) {
				return diagnostics.Reference(diagnostics.EmptySpan(),
					"table %q declares a foreign key to undeclared table %q", t.Name, fk.RefTable)
			}
		}
	}
	for _, ft := range cfg.ForeignTables {
		if !serverExists(cfg, ft.Server) {
			return diagnostics.Reference(diagnostics.EmptySpan(),
				"foreign table %q references undeclared server %q", ft.Name, ft.Server)
		}
	}
	return nil
}

// validateStrictEnums implements the fragile, deliberately preserved
// enum heuristic (spec.md §4.D, §9): a column type "looks like" an
// enum reference if it starts with an uppercase ASCII letter and is
// otherwise all ASCII alphanumerics. In strict mode, such a type must
// resolve to a declared enum in the table's schema (or any schema when
// the table has none), matched case-insensitively.
func validateStrictEnums(cfg *Config) error {
	for _, t := range cfg.Tables {
		for _, c := range t.Columns {
			if !looksLikeEnum(c.Type) {
				continue
			}
			if findEnum(cfg.Enums, c.Type, t.Schema) == nil {
				return diagnostics.Structural(diagnostics.EmptySpan(), "table",
					"strict mode: enum type %q referenced in table %q column %q is not defined", c.Type, t.Name, c.Name)
			}
		}
	}
	return nil
}

func looksLikeEnum(s string) bool {
	if s == "" {
		return false
	}
	first := s[0]
	if !(first >= 'A' && first <= 'Z') {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		alnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !alnum {
			return false
		}
	}
	return true
}

func findEnum(enums []Enum, colType string, tableSchema *string) *Enum {
	t := toLowerASCII(colType)
	schema, nameOnly := "", t
	if idx := indexByte(t, '.'); idx >= 0 {
		schema, nameOnly = t[:idx], t[idx+1:]
	}
	for i := range enums {
		e := &enums[i]
		en := toLowerASCII(e.Name)
		es := toLowerASCII(EffectiveSchema(e.Schema))
		if en != nameOnly {
			continue
		}
		if schema != "" {
			if es == schema {
				return e
			}
			continue
		}
		if tableSchema != nil {
			if es == toLowerASCII(*tableSchema) {
				return e
			}
			continue
		}
		return e
	}
	return nil
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// validateTableReferences asserts that every policy's and every
// index's/statistic's `table` resolves to a declared table
// (SPEC_FULL.md §4.D item 4).
func validateTableReferences(cfg *Config) error {
	for _, p := range cfg.Policies {
		if !tableExists(cfg, p.Table) {
			return diagnostics.Reference(diagnostics.EmptySpan(),
				"policy %q references undeclared table %q", p.Name, p.Table)
		}
	}
	for _, idx := range cfg.Indexes {
		if !tableExists(cfg, idx.Table) {
			return diagnostics.Reference(diagnostics.EmptySpan(),
				"index %q references undeclared table %q", idx.Name, idx.Table)
		}
	}
	for _, s := range cfg.Statistics {
		if !tableExists(cfg, s.Table) {
			return diagnostics.Reference(diagnostics.EmptySpan(),
				"statistics %q references undeclared table %q", s.Name, s.Table)
		}
	}
	return nil
}

func sequenceExists(cfg *Config, name string) bool {
	for _, s := range cfg.Sequences {
		if s.Name == name || (s.AltName != nil && *s.AltName == name) {
			return true
		}
	}
	return false
}

// validateGrants resolves every grant's table/function/sequence target
// to a declared resource of that kind; schema and database grants are
// exempt since schemas/databases may live outside this config
// (SPEC_FULL.md §4.D item 5).
func validateGrants(cfg *Config) error {
	for _, g := range cfg.Grants {
		switch {
		case g.Table != nil:
			if !tableExists(cfg, *g.Table) {
				return diagnostics.Reference(diagnostics.EmptySpan(),
					"grant %q references undeclared table %q", g.Name, *g.Table)
			}
		case g.Function != nil:
			if !functionExists(cfg, *g.Function, nil) {
				return diagnostics.Reference(diagnostics.EmptySpan(),
					"grant %q references undeclared function %q", g.Name, *g.Function)
			}
		case g.Sequence != nil:
			if !sequenceExists(cfg, *g.Sequence) {
				return diagnostics.Reference(diagnostics.EmptySpan(),
					"grant %q references undeclared sequence %q", g.Name, *g.Sequence)
			}
		}
	}
	return nil
}

func publicationExists(cfg *Config, name string) bool {
	for _, p := range cfg.Publications {
		if p.Name == name || (p.AltName != nil && *p.AltName == name) {
			return true
		}
	}
	return false
}

// validateSubscriptionPublications weak-checks, in strict mode only,
// that every subscription's publications resolve to a publication
// declared in this config. This is deliberately weak even in strict
// mode: a subscription's publications may legitimately live on the
// publishing side of a connection this config never declares
// (SPEC_FULL.md §4.D item 6, decided as an Open Question in
// DESIGN.md).
func validateSubscriptionPublications(cfg *Config) error {
	for _, s := range cfg.Subscriptions {
		for _, pub := range s.Publications {
			if !publicationExists(cfg, pub) {
				return diagnostics.Reference(diagnostics.EmptySpan(),
					"strict mode: subscription %q references undeclared publication %q", s.Name, pub)
			}
		}
	}
	return nil
}
