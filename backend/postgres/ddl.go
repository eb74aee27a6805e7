package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dbschema-go/dbschema/ir"
)

func emitRole(w *strings.Builder, r ir.Role) {
	name := ir.EffectiveName(r.Name, r.AltName)
	login := ""
	if r.Login {
		login = " LOGIN"
	}
	fmt.Fprintf(w,
		"DO $$\nBEGIN\n  IF NOT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = %s) THEN\n    CREATE ROLE %s%s;\n  END IF;\nEND$$;\n\n",
		literal(name), ident(name), login)
}

func emitTablespace(w *strings.Builder, t ir.Tablespace) {
	name := ir.EffectiveName(t.Name, t.AltName)
	fmt.Fprintf(w, "CREATE TABLESPACE %s", ident(name))
	if t.Owner != nil {
		fmt.Fprintf(w, " OWNER %s", ident(*t.Owner))
	}
	fmt.Fprintf(w, " LOCATION %s", literal(t.Location))
	w.WriteString(";\n\n")
}

func emitExtension(w *strings.Builder, e ir.Extension) {
	name := ir.EffectiveName(e.Name, e.AltName)
	w.WriteString("CREATE EXTENSION ")
	if e.IfNotExists {
		w.WriteString("IF NOT EXISTS ")
	}
	w.WriteString(ident(name))
	var with []string
	if e.Schema != nil {
		with = append(with, "SCHEMA "+ident(*e.Schema))
	}
	if e.Version != nil {
		with = append(with, "VERSION "+literal(*e.Version))
	}
	if len(with) > 0 {
		fmt.Fprintf(w, " WITH %s", strings.Join(with, " "))
	}
	w.WriteString(";\n\n")
}

func emitSchema(w *strings.Builder, s ir.Schema) {
	name := ir.EffectiveName(s.Name, s.AltName)
	if s.IfNotExists {
		fmt.Fprintf(w, "CREATE SCHEMA IF NOT EXISTS %s", ident(name))
	} else {
		fmt.Fprintf(w, "CREATE SCHEMA %s", ident(name))
	}
	if s.Authorization != nil {
		fmt.Fprintf(w, " AUTHORIZATION %s", ident(*s.Authorization))
	}
	w.WriteString(";\n\n")
}

func emitCollation(w *strings.Builder, c ir.Collation) {
	schema := ir.EffectiveSchema(c.Schema)
	name := ir.EffectiveName(c.Name, c.AltName)
	w.WriteString("CREATE COLLATION")
	if c.IfNotExists {
		w.WriteString(" IF NOT EXISTS")
	}
	fmt.Fprintf(w, " %s", qualify(schema, name))
	if c.From != nil {
		fmt.Fprintf(w, " FROM %s", *c.From)
	} else {
		var parts []string
		if c.Locale != nil {
			parts = append(parts, "LOCALE = "+literal(*c.Locale))
		}
		if c.LCCollate != nil {
			parts = append(parts, "LC_COLLATE = "+literal(*c.LCCollate))
		}
		if c.LCType != nil {
			parts = append(parts, "LC_CTYPE = "+literal(*c.LCType))
		}
		if c.Provider != nil {
			parts = append(parts, "PROVIDER = "+strings.ToUpper(*c.Provider))
		}
		if c.Deterministic != nil {
			v := "false"
			if *c.Deterministic {
				v = "true"
			}
			parts = append(parts, "DETERMINISTIC = "+v)
		}
		if c.Version != nil {
			parts = append(parts, "VERSION = "+literal(*c.Version))
		}
		if len(parts) > 0 {
			fmt.Fprintf(w, " (%s)", strings.Join(parts, ", "))
		}
	}
	w.WriteString(";\n\n")
}

func emitSequence(w *strings.Builder, s ir.Sequence) {
	schema := ir.EffectiveSchema(s.Schema)
	name := ir.EffectiveName(s.Name, s.AltName)
	w.WriteString("CREATE SEQUENCE")
	if s.IfNotExists {
		w.WriteString(" IF NOT EXISTS")
	}
	fmt.Fprintf(w, " %s", qualify(schema, name))
	if s.As != nil {
		fmt.Fprintf(w, " AS %s", *s.As)
	}
	if s.Increment != nil {
		fmt.Fprintf(w, " INCREMENT BY %s", strconv.FormatInt(*s.Increment, 10))
	}
	if s.MinValue != nil {
		fmt.Fprintf(w, " MINVALUE %s", strconv.FormatInt(*s.MinValue, 10))
	}
	if s.MaxValue != nil {
		fmt.Fprintf(w, " MAXVALUE %s", strconv.FormatInt(*s.MaxValue, 10))
	}
	if s.Start != nil {
		fmt.Fprintf(w, " START WITH %s", strconv.FormatInt(*s.Start, 10))
	}
	if s.Cache != nil {
		fmt.Fprintf(w, " CACHE %s", strconv.FormatInt(*s.Cache, 10))
	}
	if s.Cycle {
		w.WriteString(" CYCLE")
	}
	// ownership is deferred to emitSequenceOwnership, run after tables exist.
	w.WriteString(";\n\n")
}

// emitSequenceOwnership runs after tables have been emitted so that an
// OWNED BY target naming a not-yet-created column never appears before
// its table (original_source/src/backends/postgres.rs: "Apply sequence
// ownership after tables exist to avoid ordering issues").
func emitSequenceOwnership(w *strings.Builder, s ir.Sequence) {
	if s.OwnedBy == nil {
		return
	}
	schema := ir.EffectiveSchema(s.Schema)
	name := ir.EffectiveName(s.Name, s.AltName)
	ob := *s.OwnedBy
	var target string
	if strings.EqualFold(ob, "NONE") {
		target = "NONE"
	} else {
		parts := strings.Split(ob, ".")
		switch len(parts) {
		case 2:
			target = qualify(parts[0], parts[1])
		case 3:
			target = ident(parts[0]) + "." + ident(parts[1]) + "." + ident(parts[2])
		default:
			target = ob
		}
	}
	fmt.Fprintf(w, "ALTER SEQUENCE %s OWNED BY %s;\n\n", qualify(schema, name), target)
}
