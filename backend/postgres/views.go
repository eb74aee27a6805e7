package postgres

import (
	"fmt"
	"strings"

	"github.com/dbschema-go/dbschema/ir"
)

func emitView(w *strings.Builder, v ir.View) {
	schema := ir.EffectiveSchema(v.Schema)
	name := ir.EffectiveName(v.Name, v.AltName)
	orReplace := ""
	if v.Replace {
		orReplace = "OR REPLACE "
	}
	fmt.Fprintf(w, "CREATE %sVIEW %s AS\n%s;\n\n", orReplace, qualify(schema, name), v.SQL)
}

func emitMaterializedView(w *strings.Builder, mv ir.MaterializedView) {
	schema := ir.EffectiveSchema(mv.Schema)
	name := ir.EffectiveName(mv.Name, mv.AltName)
	with := "WITH NO DATA"
	if mv.WithData {
		with = "WITH DATA"
	}
	fmt.Fprintf(w,
		"DO $$\nBEGIN\n  IF NOT EXISTS (\n    SELECT 1 FROM pg_matviews WHERE schemaname = %s AND matviewname = %s\n  ) THEN\n    CREATE MATERIALIZED VIEW %s AS\n%s\n    %s;\n  END IF;\nEND$$;\n\n",
		literal(schema), literal(name), qualify(schema, name), mv.SQL, with)
}
