package postgres

import (
	"fmt"
	"strings"

	"github.com/dbschema-go/dbschema/ir"
)

func emitEnum(w *strings.Builder, e ir.Enum) {
	schema := ir.EffectiveSchema(e.Schema)
	name := ir.EffectiveName(e.Name, e.AltName)
	values := make([]string, len(e.Values))
	for i, v := range e.Values {
		values[i] = literal(v)
	}
	fmt.Fprintf(w,
		"DO $$\nBEGIN\n  IF NOT EXISTS (\n    SELECT 1 FROM pg_type t\n    JOIN pg_namespace n ON n.oid = t.typnamespace\n    WHERE t.typname = %s\n      AND n.nspname = %s\n  ) THEN\n    CREATE TYPE %s AS ENUM (%s);\n  END IF;\nEND$$;\n\n",
		literal(name), literal(schema), qualify(schema, name), strings.Join(values, ", "))
}

func emitDomain(w *strings.Builder, d ir.Domain) {
	schema := ir.EffectiveSchema(d.Schema)
	name := ir.EffectiveName(d.Name, d.AltName)
	var body strings.Builder
	fmt.Fprintf(&body, "CREATE DOMAIN %s AS %s", qualify(schema, name), d.Type)
	if d.Default != nil {
		fmt.Fprintf(&body, " DEFAULT %s", *d.Default)
	}
	if d.NotNull {
		body.WriteString(" NOT NULL")
	}
	if d.Check != nil {
		if d.Constraint != nil {
			fmt.Fprintf(&body, " CONSTRAINT %s CHECK (%s)", ident(*d.Constraint), *d.Check)
		} else {
			fmt.Fprintf(&body, " CHECK (%s)", *d.Check)
		}
	}
	fmt.Fprintf(w,
		"DO $$\nBEGIN\n  IF NOT EXISTS (\n    SELECT 1 FROM pg_type t\n    JOIN pg_namespace n ON n.oid = t.typnamespace\n  WHERE t.typname = %s\n      AND n.nspname = %s\n  ) THEN\n    %s;\n  END IF;\nEND$$;\n\n",
		literal(name), literal(schema), body.String())
}

func emitCompositeType(w *strings.Builder, t ir.CompositeType) {
	schema := ir.EffectiveSchema(t.Schema)
	name := ir.EffectiveName(t.Name, t.AltName)
	fields := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		fields[i] = ident(f.Name) + " " + f.Type
	}
	fmt.Fprintf(w,
		"DO $$\nBEGIN\n  IF NOT EXISTS (\n    SELECT 1 FROM pg_type t\n    JOIN pg_namespace n ON n.oid = t.typnamespace\n  WHERE t.typname = %s\n      AND n.nspname = %s\n  ) THEN\n    CREATE TYPE %s AS (%s);\n  END IF;\nEND$$;\n\n",
		literal(name), literal(schema), qualify(schema, name), strings.Join(fields, ", "))
}
