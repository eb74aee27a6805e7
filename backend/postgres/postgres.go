package postgres

import (
	"fmt"
	"strings"

	"github.com/dbschema-go/dbschema/ir"
)

const header = "-- Generated by dbschema. Do not edit by hand.\n-- Backend: postgres\n\n"

// Emit renders a lowered, validated Config as PostgreSQL DDL, in the
// section order original_source/src/backends/postgres.rs's to_sql
// assembles: roles, tablespaces, schemas, extensions, collations, text
// search objects, foreign data wrappers/servers, sequences, enums,
// domains, composite types, tables (with their indexes/checks/
// comments), foreign tables, deferred sequence ownership, standalone
// indexes, statistics, policies, functions/procedures/aggregates/
// operators, views, materialized views, event triggers/triggers/rules,
// grants, publications, subscriptions. strict is threaded through only
// to keep the signature uniform with the other backends — Postgres
// emission itself has no strict-only section (validation, not
// emission, is where strict mode changes behavior).
func Emit(cfg *ir.Config, strict bool) (string, error) {
	var w strings.Builder
	w.WriteString(header)

	for _, r := range cfg.Roles {
		emitRole(&w, r)
		commentOn(&w, "ROLE", "", ir.EffectiveName(r.Name, r.AltName), r.Comment)
	}
	for _, t := range cfg.Tablespaces {
		emitTablespace(&w, t)
		commentOn(&w, "TABLESPACE", "", ir.EffectiveName(t.Name, t.AltName), t.Comment)
	}
	for _, s := range cfg.Schemas {
		emitSchema(&w, s)
		commentOn(&w, "SCHEMA", "", ir.EffectiveName(s.Name, s.AltName), s.Comment)
	}
	for _, e := range cfg.Extensions {
		emitExtension(&w, e)
		commentOn(&w, "EXTENSION", "", ir.EffectiveName(e.Name, e.AltName), e.Comment)
	}
	for _, c := range cfg.Collations {
		emitCollation(&w, c)
		commentOnQualified(&w, "COLLATION", ir.EffectiveSchema(c.Schema), ir.EffectiveName(c.Name, c.AltName), c.Comment)
	}
	for _, d := range cfg.TextSearchDictionaries {
		emitTextSearchDictionary(&w, d)
		commentOnQualified(&w, "TEXT SEARCH DICTIONARY", ir.EffectiveSchema(d.Schema), ir.EffectiveName(d.Name, d.AltName), d.Comment)
	}
	for _, t := range cfg.TextSearchTemplates {
		emitTextSearchTemplate(&w, t)
		commentOnQualified(&w, "TEXT SEARCH TEMPLATE", ir.EffectiveSchema(t.Schema), ir.EffectiveName(t.Name, t.AltName), t.Comment)
	}
	for _, p := range cfg.TextSearchParsers {
		emitTextSearchParser(&w, p)
		commentOnQualified(&w, "TEXT SEARCH PARSER", ir.EffectiveSchema(p.Schema), ir.EffectiveName(p.Name, p.AltName), p.Comment)
	}
	for _, c := range cfg.TextSearchConfigs {
		emitTextSearchConfiguration(&w, c)
		commentOnQualified(&w, "TEXT SEARCH CONFIGURATION", ir.EffectiveSchema(c.Schema), ir.EffectiveName(c.Name, c.AltName), c.Comment)
	}

	for _, fw := range cfg.ForeignDataWrappers {
		emitForeignDataWrapper(&w, fw)
		commentOn(&w, "FOREIGN DATA WRAPPER", "", ir.EffectiveName(fw.Name, fw.AltName), fw.Comment)
	}
	for _, s := range cfg.ForeignServers {
		emitForeignServer(&w, s)
		commentOn(&w, "SERVER", "", ir.EffectiveName(s.Name, s.AltName), s.Comment)
	}

	for _, s := range cfg.Sequences {
		emitSequence(&w, s)
		commentOnQualified(&w, "SEQUENCE", ir.EffectiveSchema(s.Schema), ir.EffectiveName(s.Name, s.AltName), s.Comment)
	}

	for _, e := range cfg.Enums {
		emitEnum(&w, e)
		commentOnQualified(&w, "TYPE", ir.EffectiveSchema(e.Schema), ir.EffectiveName(e.Name, e.AltName), e.Comment)
	}
	for _, d := range cfg.Domains {
		emitDomain(&w, d)
		commentOnQualified(&w, "DOMAIN", ir.EffectiveSchema(d.Schema), ir.EffectiveName(d.Name, d.AltName), d.Comment)
	}
	for _, t := range cfg.Types {
		emitCompositeType(&w, t)
		commentOnQualified(&w, "TYPE", ir.EffectiveSchema(t.Schema), ir.EffectiveName(t.Name, t.AltName), t.Comment)
	}

	for _, t := range cfg.Tables {
		emitTable(&w, t)
	}
	for _, ft := range cfg.ForeignTables {
		emitForeignTable(&w, ft)
		commentOnQualified(&w, "FOREIGN TABLE", ir.EffectiveSchema(ft.Schema), ir.EffectiveName(ft.Name, ft.AltName), ft.Comment)
	}

	// Sequence ownership runs after tables exist (avoids forward
	// references to not-yet-created columns).
	for _, s := range cfg.Sequences {
		emitSequenceOwnership(&w, s)
	}

	for _, idx := range cfg.Indexes {
		emitStandaloneIndex(&w, idx)
	}
	for _, s := range cfg.Statistics {
		emitStatistics(&w, s)
		commentOnQualified(&w, "STATISTICS", ir.EffectiveSchema(s.Schema), ir.EffectiveName(s.Name, s.AltName), s.Comment)
	}

	for _, p := range cfg.Policies {
		emitPolicy(&w, p)
		if p.Comment != nil {
			schema := ir.EffectiveSchema(p.Schema)
			name := ir.EffectiveName(p.Name, p.AltName)
			fmt.Fprintf(&w, "COMMENT ON POLICY %s ON %s IS %s;\n\n", ident(name), qualify(schema, p.Table), literal(*p.Comment))
		}
	}

	for _, f := range cfg.Functions {
		emitFunction(&w, f)
		if f.Comment != nil {
			schema := ir.EffectiveSchema(f.Schema)
			name := ir.EffectiveName(f.Name, f.AltName)
			fmt.Fprintf(&w, "COMMENT ON FUNCTION %s() IS %s;\n\n", qualify(schema, name), literal(*f.Comment))
		}
	}
	for _, p := range cfg.Procedures {
		emitProcedure(&w, p)
		if p.Comment != nil {
			schema := ir.EffectiveSchema(p.Schema)
			name := ir.EffectiveName(p.Name, p.AltName)
			fmt.Fprintf(&w, "COMMENT ON PROCEDURE %s() IS %s;\n\n", qualify(schema, name), literal(*p.Comment))
		}
	}
	for _, a := range cfg.Aggregates {
		emitAggregate(&w, a)
		if a.Comment != nil {
			schema := ir.EffectiveSchema(a.Schema)
			name := ir.EffectiveName(a.Name, a.AltName)
			fmt.Fprintf(&w, "COMMENT ON AGGREGATE %s(%s) IS %s;\n\n", qualify(schema, name), strings.Join(a.Inputs, ", "), literal(*a.Comment))
		}
	}
	for _, o := range cfg.Operators {
		emitOperator(&w, o)
		if o.Comment != nil {
			schema := ir.EffectiveSchema(o.Schema)
			name := ir.EffectiveName(o.Name, o.AltName)
			left, right := "NONE", "NONE"
			if o.Left != nil {
				left = *o.Left
			}
			if o.Right != nil {
				right = *o.Right
			}
			operatorComment(&w, schema, name, left, right, *o.Comment)
		}
	}

	for _, v := range cfg.Views {
		emitView(&w, v)
		commentOnQualified(&w, "VIEW", ir.EffectiveSchema(v.Schema), ir.EffectiveName(v.Name, v.AltName), v.Comment)
	}
	for _, mv := range cfg.Materialized {
		emitMaterializedView(&w, mv)
		commentOnQualified(&w, "MATERIALIZED VIEW", ir.EffectiveSchema(mv.Schema), ir.EffectiveName(mv.Name, mv.AltName), mv.Comment)
	}

	for _, e := range cfg.EventTriggers {
		emitEventTrigger(&w, e)
		commentOn(&w, "EVENT TRIGGER", "", ir.EffectiveName(e.Name, e.AltName), e.Comment)
	}
	for _, t := range cfg.Triggers {
		emitTrigger(&w, t)
		if t.Comment != nil {
			schema := ir.EffectiveSchema(t.Schema)
			name := ir.EffectiveName(t.Name, t.AltName)
			fmt.Fprintf(&w, "COMMENT ON TRIGGER %s ON %s IS %s;\n\n", ident(name), qualify(schema, t.Table), literal(*t.Comment))
		}
	}
	for _, r := range cfg.Rules {
		emitRule(&w, r)
		if r.Comment != nil {
			schema := ir.EffectiveSchema(r.Schema)
			name := ir.EffectiveName(r.Name, r.AltName)
			fmt.Fprintf(&w, "COMMENT ON RULE %s ON %s IS %s;\n\n", ident(name), qualify(schema, r.Table), literal(*r.Comment))
		}
	}

	for _, g := range cfg.Grants {
		emitGrant(&w, g)
	}

	for _, p := range cfg.Publications {
		emitPublication(&w, p)
		commentOn(&w, "PUBLICATION", "", ir.EffectiveName(p.Name, p.AltName), p.Comment)
	}
	for _, s := range cfg.Subscriptions {
		emitSubscription(&w, s)
		commentOn(&w, "SUBSCRIPTION", "", ir.EffectiveName(s.Name, s.AltName), s.Comment)
	}

	return w.String(), nil
}

// commentOn emits COMMENT ON <kind> <name> IS '...' for an unschemaed
// resource (roles, tablespaces, schemas, extensions, event triggers,
// publications, subscriptions, foreign data wrappers/servers).
func commentOn(w *strings.Builder, kind, _ignoredSchema, name string, comment *string) {
	if comment == nil {
		return
	}
	fmt.Fprintf(w, "COMMENT ON %s %s IS %s;\n\n", kind, ident(name), literal(*comment))
}

// commentOnQualified emits COMMENT ON <kind> <schema>.<name> IS '...'
// for a schema-qualified resource.
func commentOnQualified(w *strings.Builder, kind, schema, name string, comment *string) {
	if comment == nil {
		return
	}
	fmt.Fprintf(w, "COMMENT ON %s %s IS %s;\n\n", kind, qualify(schema, name), literal(*comment))
}
