// Package prisma emits a Prisma schema (enum and model blocks) from a
// lowered ir.Config. The Postgres-type-to-Prisma-scalar table is
// grounded on psl/validation/postgres_native_types.go's PostgresType
// enum, adapted from "parse a native type attribute already present in
// a .prisma file" (the teacher's direction) to "map a raw Postgres
// type string discovered during extraction onto a scalar" (this
// spec's direction); the field-mapping switch itself carries over
// almost verbatim with column kind swapped in for Go struct-field kind
// (SPEC_FULL.md §4.E).
package prisma

import "strings"

// scalarMapping is one row of spec.md §4.E's Postgres -> Prisma table.
type scalarMapping struct {
	scalar string
	native string // empty when no @db.* attribute applies
}

// mapScalar resolves a raw Postgres column type string to its Prisma
// scalar and optional native-type attribute. For varchar(n) and
// char(n) the parenthesized argument is copied onto the native
// attribute (via dbWithArg); other types' arguments are dropped.
func mapScalar(pgType string) (scalarMapping, bool) {
	t := strings.ToLower(strings.TrimSpace(pgType))
	base, _, _ := strings.Cut(t, "(")
	base = strings.TrimSpace(base)

	switch {
	case base == "int" || base == "integer" || base == "int4":
		return scalarMapping{"Int", "@db.Integer"}, true
	case base == "bigint" || base == "int8" || base == "bigserial":
		return scalarMapping{"BigInt", "@db.BigInt"}, true
	case base == "varchar" || base == "character varying":
		return scalarMapping{"String", dbWithArg("@db.VarChar", t)}, true
	case base == "char" || base == "character":
		return scalarMapping{"String", dbWithArg("@db.Char", t)}, true
	case base == "text" || base == "citext":
		return scalarMapping{"String", ""}, true
	case base == "uuid":
		return scalarMapping{"String", "@db.Uuid"}, true
	case base == "bool" || base == "boolean":
		return scalarMapping{"Boolean", ""}, true
	case strings.Contains(t, "timestamp") && (strings.Contains(t, "with time zone") || strings.Contains(t, "timestamptz")):
		return scalarMapping{"DateTime", "@db.Timestamptz"}, true
	case strings.HasPrefix(base, "timestamp"):
		return scalarMapping{"DateTime", "@db.Timestamp"}, true
	case base == "date":
		return scalarMapping{"DateTime", "@db.Date"}, true
	case strings.HasPrefix(base, "time"):
		return scalarMapping{"DateTime", "@db.Time"}, true
	case base == "bytea":
		return scalarMapping{"Bytes", "@db.Bytea"}, true
	case base == "jsonb" || base == "json":
		return scalarMapping{"Json", ""}, true
	case strings.HasPrefix(base, "numeric") || strings.HasPrefix(base, "decimal"):
		return scalarMapping{"Decimal", ""}, true
	case base == "float4" || base == "real" || base == "float8" || strings.HasPrefix(base, "double"):
		return scalarMapping{"Float", ""}, true
	case strings.Contains(base, "serial"):
		return scalarMapping{"Int", ""}, true
	default:
		return scalarMapping{}, false
	}
}

// dbWithArg reattaches a type's parenthesized argument (e.g. the "n"
// in varchar(n)) to a native attribute name, producing @db.VarChar(n).
func dbWithArg(attr, fullType string) string {
	_, arg, ok := strings.Cut(fullType, "(")
	if !ok {
		return attr
	}
	arg = strings.TrimSuffix(arg, ")")
	return attr + "(" + arg + ")"
}
