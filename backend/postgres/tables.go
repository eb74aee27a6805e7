package postgres

import (
	"fmt"
	"strings"

	"github.com/dbschema-go/dbschema/ir"
)

func columnLine(c ir.Column) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", ident(c.Name), c.Type)
	if !c.Nullable {
		b.WriteString(" NOT NULL")
	}
	if c.Default != nil {
		fmt.Fprintf(&b, " DEFAULT %s", *c.Default)
	}
	return b.String()
}

func primaryKeyLine(pk ir.PrimaryKey) string {
	cols := quoteIdents(pk.Columns)
	if pk.Name != nil {
		return fmt.Sprintf("CONSTRAINT %s PRIMARY KEY (%s)", ident(*pk.Name), cols)
	}
	return fmt.Sprintf("PRIMARY KEY (%s)", cols)
}

func foreignKeyLine(fk ir.ForeignKey) string {
	var b strings.Builder
	if fk.Name != nil {
		fmt.Fprintf(&b, "CONSTRAINT %s ", ident(*fk.Name))
	}
	refSchema := ir.EffectiveSchema(fk.RefSchema)
	fmt.Fprintf(&b, "FOREIGN KEY (%s) REFERENCES %s (%s)",
		quoteIdents(fk.Columns), qualify(refSchema, fk.RefTable), quoteIdents(fk.RefColumns))
	if fk.OnDelete != nil {
		fmt.Fprintf(&b, " ON DELETE %s", *fk.OnDelete)
	}
	if fk.OnUpdate != nil {
		fmt.Fprintf(&b, " ON UPDATE %s", *fk.OnUpdate)
	}
	return b.String()
}

func quoteIdents(cols []string) string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = ident(c)
	}
	return strings.Join(out, ", ")
}

func emitTable(w *strings.Builder, t ir.Table) {
	schema := ir.EffectiveSchema(t.Schema)
	name := ir.EffectiveName(t.Name, t.AltName)
	var lines []string
	for _, c := range t.Columns {
		lines = append(lines, columnLine(c))
	}
	if t.PrimaryKey != nil {
		lines = append(lines, primaryKeyLine(*t.PrimaryKey))
	}
	for _, fk := range t.ForeignKeys {
		lines = append(lines, foreignKeyLine(fk))
	}
	body := make([]string, len(lines))
	for i, l := range lines {
		body[i] = "  " + l
	}
	ine := ""
	if t.IfNotExists {
		ine = " IF NOT EXISTS"
	}
	fmt.Fprintf(w, "CREATE TABLE%s %s (\n%s\n);\n\n", ine, qualify(schema, name), strings.Join(body, ",\n"))

	for _, idx := range t.Indexes {
		emitTableIndex(w, schema, name, idx)
	}
	for _, chk := range t.Checks {
		constraint := ""
		if chk.Name != nil {
			constraint = fmt.Sprintf("CONSTRAINT %s ", ident(*chk.Name))
		}
		fmt.Fprintf(w, "ALTER TABLE %s ADD %sCHECK (%s);\n\n", qualify(schema, name), constraint, chk.Expression)
	}
	if t.Comment != nil {
		fmt.Fprintf(w, "COMMENT ON TABLE %s IS %s;\n\n", qualify(schema, name), literal(*t.Comment))
	}
	for _, c := range t.Columns {
		if c.Comment != nil {
			fmt.Fprintf(w, "COMMENT ON COLUMN %s.%s IS %s;\n\n", qualify(schema, name), ident(c.Name), literal(*c.Comment))
		}
	}
}

// defaultIndexName mirrors original_source/src/postgres/mod.rs's Index
// Display impl: "{table}_{col1_col2}_{idx|uniq}", with dots replaced
// by underscores so a schema-qualified column list can't split the
// synthesized name across an extra identifier boundary.
func defaultIndexName(table string, columns []string, unique bool) string {
	suffix := "idx"
	if unique {
		suffix = "uniq"
	}
	n := fmt.Sprintf("%s_%s_%s", table, strings.Join(columns, "_"), suffix)
	return strings.ReplaceAll(n, ".", "_")
}

// indexColumns renders an index's key list, pairing each column or
// expression with its corresponding order/operator-class override by
// position when one was declared (fewer orders/opclasses than columns
// is fine; unpaired trailing columns get no suffix).
func indexColumns(columns, expressions, orders, opClasses []string) string {
	keys := expressions
	quoteKey := false
	if len(keys) == 0 {
		keys = columns
		quoteKey = true
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		if quoteKey {
			k = ident(k)
		}
		if i < len(opClasses) && opClasses[i] != "" {
			k += " " + opClasses[i]
		}
		if i < len(orders) && orders[i] != "" {
			k += " " + strings.ToUpper(orders[i])
		}
		parts[i] = k
	}
	return strings.Join(parts, ", ")
}

func emitTableIndex(w *strings.Builder, schema, table string, idx ir.Index) {
	unique := ""
	if idx.Unique {
		unique = "UNIQUE "
	}
	var name string
	if idx.Name != nil {
		name = ident(*idx.Name)
	} else {
		name = ident(defaultIndexName(table, idx.Columns, idx.Unique))
	}
	cols := indexColumns(idx.Columns, idx.Expressions, idx.Orders, idx.OperatorClasses)
	fmt.Fprintf(w, "CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)", unique, name, qualify(schema, table), cols)
	if idx.Where != nil {
		fmt.Fprintf(w, " WHERE %s", *idx.Where)
	}
	w.WriteString(";\n\n")
}

func emitStandaloneIndex(w *strings.Builder, idx ir.StandaloneIndex) {
	schema := ir.EffectiveSchema(idx.Schema)
	unique := ""
	if idx.Unique {
		unique = "UNIQUE "
	}
	cols := indexColumns(idx.Columns, idx.Expressions, idx.Orders, idx.OperatorClasses)
	fmt.Fprintf(w, "CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)", unique, ident(idx.Name), qualify(schema, idx.Table), cols)
	if idx.Where != nil {
		fmt.Fprintf(w, " WHERE %s", *idx.Where)
	}
	w.WriteString(";\n\n")
}

func emitStatistics(w *strings.Builder, s ir.Statistics) {
	schema := ir.EffectiveSchema(s.Schema)
	name := ir.EffectiveName(s.Name, s.AltName)
	var kindClause string
	if len(s.Kinds) > 0 {
		kindClause = fmt.Sprintf(" (%s)", strings.Join(s.Kinds, ", "))
	}
	fmt.Fprintf(w, "CREATE STATISTICS IF NOT EXISTS %s%s ON %s FROM %s;\n\n",
		qualify(schema, name), kindClause, quoteIdents(s.Columns), ident(s.Table))
}
