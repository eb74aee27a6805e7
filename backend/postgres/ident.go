// Package postgres emits PostgreSQL DDL from a lowered ir.Config. Every
// emit function below mirrors one original_source/src/postgres/mod.rs
// (and backends/postgres.rs) Display impl one-for-one: same guarded
// DO-block forms for anything that postgres lacks a native IF NOT
// EXISTS for, same plain CREATE forms for everything else.
package postgres

import "strings"

// ident quotes a SQL identifier, doubling any embedded double quote.
func ident(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// literal quotes a SQL string literal, doubling any embedded quote.
func literal(s string) string {
	return `'` + strings.ReplaceAll(s, `'`, `''`) + `'`
}

func qualify(schema, name string) string {
	return ident(schema) + "." + ident(name)
}
