package postgres

import (
	"fmt"
	"strings"

	"github.com/dbschema-go/dbschema/ir"
)

func emitTrigger(w *strings.Builder, t ir.Trigger) {
	schema := ir.EffectiveSchema(t.Schema)
	table := t.Table
	name := ir.EffectiveName(t.Name, t.AltName)
	fnSchema := schema
	if t.FunctionSchema != nil {
		fnSchema = *t.FunctionSchema
	}
	events := make([]string, len(t.Events))
	for i, e := range t.Events {
		events[i] = strings.ToUpper(e)
	}
	when := ""
	if t.When != nil {
		when = fmt.Sprintf("\n    WHEN (%s)", *t.When)
	}
	fmt.Fprintf(w,
		"DO $$\nBEGIN\n  IF NOT EXISTS (\n    SELECT 1 FROM pg_trigger tg\n    JOIN pg_class c ON c.oid = tg.tgrelid\n    JOIN pg_namespace n ON n.oid = c.relnamespace\n    WHERE tg.tgname = %s\n      AND n.nspname = %s\n      AND c.relname = %s\n  ) THEN\n    CREATE TRIGGER %s\n    %s %s ON %s\n    FOR EACH %s%s\n    EXECUTE FUNCTION %s.%s();\n  END IF;\nEND$$;\n\n",
		literal(name), literal(schema), literal(table),
		ident(name), strings.ToUpper(t.Timing), strings.Join(events, " OR "), qualify(schema, table),
		strings.ToUpper(t.Level), when, ident(fnSchema), ident(t.Function))
}

func emitEventTrigger(w *strings.Builder, e ir.EventTrigger) {
	name := ir.EffectiveName(e.Name, e.AltName)
	fnSchema := "public"
	if e.FunctionSchema != nil {
		fnSchema = *e.FunctionSchema
	}
	var tagClause string
	if len(e.Tags) > 0 {
		quoted := make([]string, len(e.Tags))
		for i, t := range e.Tags {
			quoted[i] = literal(t)
		}
		tagClause = fmt.Sprintf(" WHEN TAG IN (%s)", strings.Join(quoted, ", "))
	}
	fmt.Fprintf(w,
		"DO $$\nBEGIN\n  IF NOT EXISTS (SELECT 1 FROM pg_event_trigger WHERE evtname = %s) THEN\n    CREATE EVENT TRIGGER %s ON %s%s\n    EXECUTE FUNCTION %s.%s();\n  END IF;\nEND$$;\n\n",
		literal(name), ident(name), e.Event, tagClause, ident(fnSchema), ident(e.Function))
}

func emitRule(w *strings.Builder, r ir.Rule) {
	schema := ir.EffectiveSchema(r.Schema)
	name := ir.EffectiveName(r.Name, r.AltName)
	instead := ""
	if r.Instead {
		instead = "INSTEAD "
	}
	where := ""
	if r.Where != nil {
		where = fmt.Sprintf(" WHERE %s", *r.Where)
	}
	fmt.Fprintf(w, "CREATE OR REPLACE RULE %s AS ON %s TO %s%s\n  DO %s%s;\n\n",
		ident(name), strings.ToUpper(r.Event), qualify(schema, r.Table), where, instead, r.Command)
}
