// Package backend selects and drives one of the three output artifact
// emitters (Postgres DDL, Prisma schema, JSON), generalized from
// migrate/sqlgen.NewMigrationGenerator's provider-switch pattern: that
// function picks a dialect-specific SQL generator by provider name;
// this one picks an artifact-specific emitter by backend name.
package backend

import (
	"fmt"
	"strings"

	"github.com/dbschema-go/dbschema/backend/json"
	"github.com/dbschema-go/dbschema/backend/postgres"
	"github.com/dbschema-go/dbschema/backend/prisma"
	"github.com/dbschema-go/dbschema/eval"
	"github.com/dbschema-go/dbschema/ir"
)

// Kind is the closed set of artifacts this compiler can emit.
type Kind int

const (
	Postgres Kind = iota
	Prisma
	JSON
)

// Parse resolves a backend name (case-insensitive, "pg" as a Postgres
// alias per original_source/src/backends/mod.rs's get_backend) to a
// Kind.
func Parse(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "postgres", "pg":
		return Postgres, nil
	case "prisma":
		return Prisma, nil
	case "json":
		return JSON, nil
	default:
		return 0, fmt.Errorf("unsupported backend: %s", name)
	}
}

func (k Kind) String() string {
	switch k {
	case Postgres:
		return "postgres"
	case Prisma:
		return "prisma"
	case JSON:
		return "json"
	default:
		return "unknown"
	}
}

// FileExtension returns the conventional extension for a Kind's
// output, mirroring each Rust Backend impl's file_extension().
func (k Kind) FileExtension() string {
	switch k {
	case Postgres:
		return "sql"
	case Prisma:
		return "prisma"
	case JSON:
		return "json"
	default:
		return "txt"
	}
}

// Emit renders cfg through the chosen backend. vars carries the
// evaluator's resolved top-level variable bindings, consumed only by
// the JSON backend.
func Emit(cfg *ir.Config, k Kind, strict bool, vars eval.Value) (string, error) {
	switch k {
	case Postgres:
		return postgres.Emit(cfg, strict)
	case Prisma:
		return prisma.Emit(cfg, strict)
	case JSON:
		return json.Emit(cfg, vars, strict)
	default:
		return "", fmt.Errorf("unsupported backend: %d", k)
	}
}
