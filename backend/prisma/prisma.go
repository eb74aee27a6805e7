package prisma

import (
	"fmt"
	"strings"

	"github.com/dbschema-go/dbschema/ir"
)

// Emit renders a lowered Config as a Prisma schema: one enum block per
// ir.Enum, then one model block per ir.Table, in declaration order
// (spec.md §4.E). strict enables the check that a column's type must
// resolve to either a mapped scalar or a declared enum.
func Emit(cfg *ir.Config, strict bool) (string, error) {
	var w strings.Builder

	for _, e := range cfg.Enums {
		emitEnum(&w, e)
	}
	for _, t := range cfg.Tables {
		if err := emitModel(&w, cfg, t, strict); err != nil {
			return "", err
		}
	}
	return w.String(), nil
}

func emitEnum(w *strings.Builder, e ir.Enum) {
	name := ir.EffectiveName(e.Name, e.AltName)
	fmt.Fprintf(w, "enum %s {\n", pascalCase(name))
	for _, v := range e.Values {
		if isValidIdentifier(v) {
			fmt.Fprintf(w, "  %s\n", v)
		} else {
			fmt.Fprintf(w, "  %s @map(%q)\n", safeEnumValueIdent(v), v)
		}
	}
	w.WriteString("}\n\n")
}

func findEnum(cfg *ir.Config, colType string) (ir.Enum, bool) {
	t := strings.ToLower(strings.TrimSpace(colType))
	for _, e := range cfg.Enums {
		if strings.ToLower(ir.EffectiveName(e.Name, e.AltName)) == t {
			return e, true
		}
	}
	return ir.Enum{}, false
}

func emitModel(w *strings.Builder, cfg *ir.Config, t ir.Table, strict bool) error {
	name := ir.EffectiveName(t.Name, t.AltName)
	fmt.Fprintf(w, "model %s {\n", pascalCase(name))

	pkSingle := t.PrimaryKey != nil && len(t.PrimaryKey.Columns) == 1
	pkCol := ""
	if pkSingle {
		pkCol = t.PrimaryKey.Columns[0]
	}
	uniqueSingle := map[string]bool{}
	for _, idx := range t.Indexes {
		if idx.Unique && len(idx.Columns) == 1 {
			uniqueSingle[idx.Columns[0]] = true
		}
	}

	for _, c := range t.Columns {
		if err := emitField(w, cfg, c, c.Name == pkCol, uniqueSingle[c.Name], strict); err != nil {
			return err
		}
	}

	for _, fk := range t.ForeignKeys {
		emitRelationField(w, fk)
	}
	for _, br := range t.BackReferences {
		name := br.Name
		if br.RelationName != nil && *br.RelationName != "" {
			name = *br.RelationName
		}
		fmt.Fprintf(w, "  %s %s[]\n", name, pascalCase(br.Table))
	}

	if t.PrimaryKey != nil && len(t.PrimaryKey.Columns) > 1 {
		fmt.Fprintf(w, "\n  @@id([%s])\n", strings.Join(t.PrimaryKey.Columns, ", "))
	}
	for _, idx := range t.Indexes {
		if len(idx.Columns) <= 1 {
			continue
		}
		if idx.Unique {
			fmt.Fprintf(w, "  @@unique([%s])\n", strings.Join(idx.Columns, ", "))
		} else {
			fmt.Fprintf(w, "  @@index([%s])\n", strings.Join(idx.Columns, ", "))
		}
	}
	fmt.Fprintf(w, "  @@map(%q)\n", name)
	w.WriteString("}\n\n")
	return nil
}

func emitField(w *strings.Builder, cfg *ir.Config, c ir.Column, isID, isUnique, strict bool) error {
	mapping, ok := mapScalar(c.Type)
	var scalar, native string
	if ok {
		scalar, native = mapping.scalar, mapping.native
	} else if e, found := findEnum(cfg, c.Type); found {
		scalar = pascalCase(ir.EffectiveName(e.Name, e.AltName))
	} else if strict {
		return fmt.Errorf("column %q has unmapped type %q with no matching enum", c.Name, c.Type)
	} else {
		scalar = "String"
	}

	optional := ""
	if c.Nullable {
		optional = "?"
	}
	fmt.Fprintf(w, "  %s %s%s", c.Name, scalar, optional)
	if isID {
		w.WriteString(" @id")
	}
	if isUnique && !isID {
		w.WriteString(" @unique")
	}
	if c.Default != nil {
		fmt.Fprintf(w, " %s", mapDefault(*c.Default))
	}
	if native != "" {
		fmt.Fprintf(w, " %s", native)
	}
	w.WriteString("\n")
	return nil
}

func emitRelationField(w *strings.Builder, fk ir.ForeignKey) {
	fieldName := camelCase(fk.RefTable)
	actions := ""
	if fk.OnDelete != nil {
		actions += ", onDelete: " + referenceActionName(*fk.OnDelete)
	}
	if fk.OnUpdate != nil {
		actions += ", onUpdate: " + referenceActionName(*fk.OnUpdate)
	}
	fmt.Fprintf(w, "  %s %s @relation(fields: [%s], references: [%s]%s)\n",
		fieldName, pascalCase(fk.RefTable), strings.Join(fk.Columns, ", "), strings.Join(fk.RefColumns, ", "), actions)
}

func camelCase(s string) string {
	p := pascalCase(s)
	if p == "" {
		return p
	}
	return strings.ToLower(p[:1]) + p[1:]
}
