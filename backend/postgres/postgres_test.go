package postgres

import (
	"strings"
	"testing"

	"github.com/dbschema-go/dbschema/ir"
)

func strp(s string) *string { return &s }

func TestIdentDoublesEmbeddedQuote(t *testing.T) {
	if got := ident(`foo"bar`); got != `"foo""bar"` {
		t.Fatalf("ident did not double embedded quote: %q", got)
	}
}

func TestLiteralDoublesEmbeddedQuote(t *testing.T) {
	if got := literal(`it's`); got != `'it''s'` {
		t.Fatalf("literal did not double embedded quote: %q", got)
	}
}

func TestEmitCollationWithLocale(t *testing.T) {
	var w strings.Builder
	emitCollation(&w, ir.Collation{
		Name:        "c",
		IfNotExists: true,
		Locale:      strp("en_US"),
	})
	want := "CREATE COLLATION IF NOT EXISTS \"public\".\"c\" (LOCALE = 'en_US');\n\n"
	if w.String() != want {
		t.Fatalf("got %q want %q", w.String(), want)
	}
}

func TestEmitForeignServerBasic(t *testing.T) {
	var w strings.Builder
	emitForeignServer(&w, ir.ForeignServer{
		Name:    "srv",
		Wrapper: "fdw",
		Type:    strp("postgres"),
		Options: []string{"host 'localhost'"},
	})
	want := "CREATE SERVER \"srv\" TYPE 'postgres' FOREIGN DATA WRAPPER \"fdw\" OPTIONS (host 'localhost');\n\n"
	if w.String() != want {
		t.Fatalf("got %q want %q", w.String(), want)
	}
}

func TestEmitRoleGuardedAndLogin(t *testing.T) {
	var w strings.Builder
	emitRole(&w, ir.Role{Name: "app", Login: true})
	out := w.String()
	if !strings.Contains(out, "IF NOT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = 'app')") {
		t.Fatalf("role emission missing existence guard: %s", out)
	}
	if !strings.Contains(out, `CREATE ROLE "app" LOGIN;`) {
		t.Fatalf("role emission missing LOGIN clause: %s", out)
	}
}

func TestEmitTableColumnsPKAndFK(t *testing.T) {
	var w strings.Builder
	emitTable(&w, ir.Table{
		Name: "posts",
		Columns: []ir.Column{
			{Name: "id", Type: "uuid", Nullable: false},
			{Name: "user_id", Type: "uuid", Nullable: false},
		},
		PrimaryKey: &ir.PrimaryKey{Columns: []string{"id"}},
		ForeignKeys: []ir.ForeignKey{
			{Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}},
		},
	})
	out := w.String()
	for _, want := range []string{
		`CREATE TABLE "public"."posts" (`,
		`"id" uuid NOT NULL,`,
		`"user_id" uuid NOT NULL,`,
		`PRIMARY KEY ("id"),`,
		`FOREIGN KEY ("user_id") REFERENCES "public"."users" ("id")`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("table emission missing %q in:\n%s", want, out)
		}
	}
}

func TestDefaultIndexNameUniqueVsPlain(t *testing.T) {
	if got := defaultIndexName("posts", []string{"user_id"}, false); got != "posts_user_id_idx" {
		t.Fatalf("unexpected default index name: %s", got)
	}
	if got := defaultIndexName("posts", []string{"slug"}, true); got != "posts_slug_uniq" {
		t.Fatalf("unexpected default unique index name: %s", got)
	}
}

func TestEmitGrantVariants(t *testing.T) {
	var w strings.Builder
	emitGrant(&w, ir.Grant{Role: "app", Privileges: []string{"select", "insert"}, Table: strp("posts")})
	want := "GRANT SELECT, INSERT ON TABLE \"public\".\"posts\" TO \"app\";\n\n"
	if w.String() != want {
		t.Fatalf("got %q want %q", w.String(), want)
	}
}

func TestEmitEnumGuarded(t *testing.T) {
	var w strings.Builder
	emitEnum(&w, ir.Enum{Name: "status", Values: []string{"active", "inactive"}})
	out := w.String()
	if !strings.Contains(out, `CREATE TYPE "public"."status" AS ENUM ('active', 'inactive');`) {
		t.Fatalf("enum emission missing CREATE TYPE: %s", out)
	}
}

func TestEmitTriggerWithFunctionBeforeUpdateForEachRow(t *testing.T) {
	cfg := &ir.Config{
		Functions: []ir.Function{{
			Name:     "set_updated_at",
			Language: "plpgsql",
			Returns:  "trigger",
			Replace:  true,
			Body:     "BEGIN NEW.updated_at = now(); RETURN NEW; END;",
		}},
		Triggers: []ir.Trigger{{
			Name:     "users_upd",
			Table:    "users",
			Timing:   "BEFORE",
			Events:   []string{"UPDATE"},
			Level:    "ROW",
			Function: "set_updated_at",
		}},
	}
	out, err := Emit(cfg, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fnIdx := strings.Index(out, `CREATE OR REPLACE FUNCTION "public"."set_updated_at"`)
	trgIdx := strings.Index(out, `CREATE TRIGGER "users_upd"`)
	if fnIdx == -1 {
		t.Fatalf("missing function emission in:\n%s", out)
	}
	if trgIdx == -1 {
		t.Fatalf("missing trigger emission in:\n%s", out)
	}
	if !(fnIdx < trgIdx) {
		t.Fatalf("function must precede trigger: fn=%d trigger=%d", fnIdx, trgIdx)
	}
	for _, want := range []string{
		`BEFORE UPDATE ON "public"."users"`,
		`FOR EACH ROW`,
		`EXECUTE FUNCTION "public"."set_updated_at"();`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("trigger emission missing %q in:\n%s", want, out)
		}
	}
}

func TestEmitAssembliesInSectionOrder(t *testing.T) {
	cfg := &ir.Config{
		Roles:   []ir.Role{{Name: "app"}},
		Schemas: []ir.Schema{{Name: "billing"}},
		Tables:  []ir.Table{{Name: "users", Columns: []ir.Column{{Name: "id", Type: "uuid"}}}},
		Grants:  []ir.Grant{{Role: "app", Privileges: []string{"select"}, Table: strp("users")}},
	}
	out, err := Emit(cfg, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	roleIdx := strings.Index(out, "CREATE ROLE")
	schemaIdx := strings.Index(out, "CREATE SCHEMA")
	tableIdx := strings.Index(out, "CREATE TABLE")
	grantIdx := strings.Index(out, "GRANT")
	if !(roleIdx < schemaIdx && schemaIdx < tableIdx && tableIdx < grantIdx) {
		t.Fatalf("sections out of order: role=%d schema=%d table=%d grant=%d", roleIdx, schemaIdx, tableIdx, grantIdx)
	}
}
