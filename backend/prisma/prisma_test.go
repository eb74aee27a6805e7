package prisma

import (
	"strings"
	"testing"

	"github.com/dbschema-go/dbschema/ir"
)

func strp(s string) *string { return &s }

func TestPascalCaseUnderscoreSplit(t *testing.T) {
	if got := pascalCase("user_accounts"); got != "UserAccounts" {
		t.Fatalf("pascalCase = %q", got)
	}
}

func TestSafeEnumValueIdentSanitizesAndPrefixes(t *testing.T) {
	if got := safeEnumValueIdent("in-progress"); got != "in_progress" {
		t.Fatalf("safeEnumValueIdent = %q", got)
	}
	if got := safeEnumValueIdent("1x"); got != "_1x" {
		t.Fatalf("safeEnumValueIdent = %q", got)
	}
}

func TestMapScalarVarcharCarriesLength(t *testing.T) {
	m, ok := mapScalar("varchar(255)")
	if !ok || m.scalar != "String" || m.native != "@db.VarChar(255)" {
		t.Fatalf("mapScalar = %+v, %v", m, ok)
	}
}

func TestMapDefaultKnownExpressions(t *testing.T) {
	if mapDefault("now()") != "@default(now())" {
		t.Fatalf("now() default wrong")
	}
	if mapDefault("gen_random_uuid()") != "@default(uuid())" {
		t.Fatalf("uuid default wrong")
	}
	if got := mapDefault("'active'::text"); !strings.Contains(got, "dbgenerated") {
		t.Fatalf("fallback default wrong: %q", got)
	}
}

func TestReferenceActionNameDefaultsToNoAction(t *testing.T) {
	if referenceActionName("CASCADE") != "Cascade" {
		t.Fatalf("cascade mapping wrong")
	}
	if referenceActionName("garbage") != "NoAction" {
		t.Fatalf("default mapping wrong")
	}
}

func TestEmitEnumSanitizesInvalidValue(t *testing.T) {
	cfg := &ir.Config{
		Enums: []ir.Enum{{Name: "order_status", Values: []string{"pending", "in-progress"}}},
	}
	out, err := Emit(cfg, false)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(out, "enum OrderStatus {") {
		t.Fatalf("missing enum header: %s", out)
	}
	if !strings.Contains(out, `in_progress @map("in-progress")`) {
		t.Fatalf("missing sanitized value mapping: %s", out)
	}
}

func TestEmitModelPrimaryKeyAndForeignKey(t *testing.T) {
	cfg := &ir.Config{
		Tables: []ir.Table{
			{
				Name: "users",
				Columns: []ir.Column{
					{Name: "id", Type: "uuid"},
					{Name: "email", Type: "text"},
				},
				PrimaryKey: &ir.PrimaryKey{Columns: []string{"id"}},
			},
			{
				Name: "posts",
				Columns: []ir.Column{
					{Name: "id", Type: "uuid"},
					{Name: "user_id", Type: "uuid"},
				},
				PrimaryKey: &ir.PrimaryKey{Columns: []string{"id"}},
				ForeignKeys: []ir.ForeignKey{
					{Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}, OnDelete: strp("CASCADE")},
				},
			},
		},
	}
	out, err := Emit(cfg, false)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(out, "model Users {") || !strings.Contains(out, "id String @id @db.Uuid") {
		t.Fatalf("missing users model: %s", out)
	}
	if !strings.Contains(out, "@relation(fields: [user_id], references: [id], onDelete: Cascade)") {
		t.Fatalf("missing relation field: %s", out)
	}
	if !strings.Contains(out, `@@map("posts")`) {
		t.Fatalf("missing table map: %s", out)
	}
}

func TestEmitModelCompositeUniqueIndex(t *testing.T) {
	cfg := &ir.Config{
		Tables: []ir.Table{
			{
				Name: "memberships",
				Columns: []ir.Column{
					{Name: "org_id", Type: "uuid"},
					{Name: "user_id", Type: "uuid"},
				},
				Indexes: []ir.Index{
					{Columns: []string{"org_id", "user_id"}, Unique: true},
				},
			},
		},
	}
	out, err := Emit(cfg, false)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(out, "@@unique([org_id, user_id])") {
		t.Fatalf("missing composite unique: %s", out)
	}
}

func TestEmitModelStrictModeRejectsUnmappedType(t *testing.T) {
	cfg := &ir.Config{
		Tables: []ir.Table{
			{Name: "widgets", Columns: []ir.Column{{Name: "shape", Type: "geometry"}}},
		},
	}
	if _, err := Emit(cfg, true); err == nil {
		t.Fatal("expected strict mode error for unmapped column type")
	}
	if out, err := Emit(cfg, false); err != nil || !strings.Contains(out, "shape String") {
		t.Fatalf("lenient mode should fall back to String: %q, %v", out, err)
	}
}

func TestEmitModelBackReferenceField(t *testing.T) {
	cfg := &ir.Config{
		Tables: []ir.Table{
			{
				Name:           "users",
				Columns:        []ir.Column{{Name: "id", Type: "uuid"}},
				BackReferences: []ir.BackReference{{Name: "posts", Table: "posts"}},
			},
		},
	}
	out, err := Emit(cfg, false)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(out, "posts Posts[]") {
		t.Fatalf("missing back-reference field: %s", out)
	}
}
