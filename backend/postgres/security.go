package postgres

import (
	"fmt"
	"strings"

	"github.com/dbschema-go/dbschema/ir"
)

func emitPolicy(w *strings.Builder, p ir.Policy) {
	schema := ir.EffectiveSchema(p.Schema)
	name := ir.EffectiveName(p.Name, p.AltName)
	cmd := strings.ToUpper(p.Command)
	asClause := ""
	if p.As != nil {
		if k := strings.ToUpper(*p.As); k == "PERMISSIVE" || k == "RESTRICTIVE" {
			asClause = " AS " + k
		}
	}
	forClause := ""
	if cmd != "ALL" {
		forClause = " FOR " + cmd
	}
	toClause := ""
	if len(p.Roles) > 0 {
		roles := make([]string, len(p.Roles))
		for i, r := range p.Roles {
			roles[i] = ident(r)
		}
		toClause = " TO " + strings.Join(roles, ", ")
	}
	using := ""
	if p.Using != nil {
		using = fmt.Sprintf("\n    USING (%s)", *p.Using)
	}
	check := ""
	if p.Check != nil {
		check = fmt.Sprintf("\n    WITH CHECK (%s)", *p.Check)
	}
	fmt.Fprintf(w,
		"DO $$\nBEGIN\n  IF NOT EXISTS (\n    SELECT 1 FROM pg_policies\n    WHERE policyname = %s\n      AND schemaname = %s\n      AND tablename = %s\n  ) THEN\n    CREATE POLICY %s ON %s%s%s%s%s%s;\n  END IF;\nEND$$;\n\n",
		literal(name), literal(schema), literal(p.Table),
		ident(name), qualify(schema, p.Table), asClause, forClause, toClause, using, check)
}

func emitGrant(w *strings.Builder, g ir.Grant) {
	privs := make([]string, len(g.Privileges))
	for i, p := range g.Privileges {
		privs[i] = strings.ToUpper(p)
	}
	privClause := strings.Join(privs, ", ")
	role := ident(g.Role)
	switch {
	case g.Table != nil:
		schema := ir.EffectiveSchema(g.Schema)
		fmt.Fprintf(w, "GRANT %s ON TABLE %s TO %s;\n\n", privClause, qualify(schema, *g.Table), role)
	case g.Function != nil:
		schema := ir.EffectiveSchema(g.Schema)
		fmt.Fprintf(w, "GRANT %s ON FUNCTION %s() TO %s;\n\n", privClause, qualify(schema, *g.Function), role)
	case g.Sequence != nil:
		schema := ir.EffectiveSchema(g.Schema)
		fmt.Fprintf(w, "GRANT %s ON SEQUENCE %s TO %s;\n\n", privClause, qualify(schema, *g.Sequence), role)
	case g.Database != nil:
		fmt.Fprintf(w, "GRANT %s ON DATABASE %s TO %s;\n\n", privClause, ident(*g.Database), role)
	case g.Schema != nil:
		fmt.Fprintf(w, "GRANT %s ON SCHEMA %s TO %s;\n\n", privClause, ident(*g.Schema), role)
	}
}
