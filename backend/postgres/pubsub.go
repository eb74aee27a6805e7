package postgres

import (
	"fmt"
	"strings"

	"github.com/dbschema-go/dbschema/ir"
)

func emitForeignDataWrapper(w *strings.Builder, fw ir.ForeignDataWrapper) {
	name := ir.EffectiveName(fw.Name, fw.AltName)
	fmt.Fprintf(w, "CREATE FOREIGN DATA WRAPPER %s", ident(name))
	if fw.Handler != nil {
		fmt.Fprintf(w, " HANDLER %s", *fw.Handler)
	}
	if fw.Validator != nil {
		fmt.Fprintf(w, " VALIDATOR %s", *fw.Validator)
	}
	if len(fw.Options) > 0 {
		fmt.Fprintf(w, " OPTIONS (%s)", strings.Join(fw.Options, ", "))
	}
	w.WriteString(";\n\n")
}

func emitForeignServer(w *strings.Builder, s ir.ForeignServer) {
	name := ir.EffectiveName(s.Name, s.AltName)
	fmt.Fprintf(w, "CREATE SERVER %s", ident(name))
	if s.Type != nil {
		fmt.Fprintf(w, " TYPE %s", literal(*s.Type))
	}
	if s.Version != nil {
		fmt.Fprintf(w, " VERSION %s", literal(*s.Version))
	}
	fmt.Fprintf(w, " FOREIGN DATA WRAPPER %s", ident(s.Wrapper))
	if len(s.Options) > 0 {
		fmt.Fprintf(w, " OPTIONS (%s)", strings.Join(s.Options, ", "))
	}
	w.WriteString(";\n\n")
}

func emitForeignTable(w *strings.Builder, ft ir.ForeignTable) {
	schema := ir.EffectiveSchema(ft.Schema)
	name := ir.EffectiveName(ft.Name, ft.AltName)
	cols := make([]string, len(ft.Columns))
	for i, c := range ft.Columns {
		cols[i] = columnLine(c)
	}
	fmt.Fprintf(w, "CREATE FOREIGN TABLE %s (\n  %s\n) SERVER %s", qualify(schema, name), strings.Join(cols, ",\n  "), ident(ft.Server))
	if len(ft.Options) > 0 {
		fmt.Fprintf(w, " OPTIONS (%s)", strings.Join(ft.Options, ", "))
	}
	w.WriteString(";\n\n")
}

func emitPublication(w *strings.Builder, p ir.Publication) {
	name := ir.EffectiveName(p.Name, p.AltName)
	fmt.Fprintf(w, "CREATE PUBLICATION %s", ident(name))
	switch {
	case p.AllTables:
		w.WriteString(" FOR ALL TABLES")
	case len(p.Tables) > 0:
		tables := make([]string, len(p.Tables))
		for i, t := range p.Tables {
			schema := ir.EffectiveSchema(t.Schema)
			tables[i] = qualify(schema, t.Table)
		}
		fmt.Fprintf(w, " FOR TABLE %s", strings.Join(tables, ", "))
	}
	if len(p.Publish) > 0 {
		actions := make([]string, len(p.Publish))
		for i, a := range p.Publish {
			actions[i] = strings.ToLower(a)
		}
		fmt.Fprintf(w, " WITH (publish = %s)", literal(strings.Join(actions, ",")))
	}
	w.WriteString(";\n\n")
}

func emitSubscription(w *strings.Builder, s ir.Subscription) {
	name := ir.EffectiveName(s.Name, s.AltName)
	pubs := make([]string, len(s.Publications))
	for i, p := range s.Publications {
		pubs[i] = ident(p)
	}
	fmt.Fprintf(w, "CREATE SUBSCRIPTION %s CONNECTION %s PUBLICATION %s;\n\n",
		ident(name), literal(s.Connection), strings.Join(pubs, ", "))
}
