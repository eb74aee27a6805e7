package ir

import (
	"testing"

	"github.com/dbschema-go/dbschema/extract"
)

func strp(s string) *string { return &s }

func TestLowerTablesAreOneToOne(t *testing.T) {
	cfg := &extract.Config{
		Tables: []extract.Table{
			{
				Name: "users",
				Columns: []extract.Column{
					{Name: "id", Type: "uuid", Nullable: false, Count: 1},
				},
				PrimaryKey: &extract.PrimaryKey{Columns: []string{"id"}},
			},
		},
	}
	out := Lower(cfg)
	if len(out.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(out.Tables))
	}
	users := out.Tables[0]
	if users.Name != "users" || len(users.Columns) != 1 || users.Columns[0].Name != "id" {
		t.Fatalf("table not lowered one-to-one: %+v", users)
	}
	if users.PrimaryKey == nil || len(users.PrimaryKey.Columns) != 1 {
		t.Fatalf("primary key not lowered: %+v", users.PrimaryKey)
	}
}

func TestInferBackReferencesMatchesByNameOrAltName(t *testing.T) {
	cfg := &extract.Config{
		Tables: []extract.Table{
			{Name: "users"},
			{Name: "posts", ForeignKeys: []extract.ForeignKey{
				{RefTable: "users", Columns: []string{"user_id"}},
			}},
		},
	}
	out := Lower(cfg)
	users := out.Tables[0]
	if len(users.BackReferences) != 1 {
		t.Fatalf("expected 1 back reference, got %d: %+v", len(users.BackReferences), users.BackReferences)
	}
	if users.BackReferences[0].Name != "postss" || users.BackReferences[0].Table != "posts" {
		t.Fatalf("unexpected back reference: %+v", users.BackReferences[0])
	}
}

func TestInferBackReferencesHonorsExplicitName(t *testing.T) {
	cfg := &extract.Config{
		Tables: []extract.Table{
			{Name: "users"},
			{Name: "posts", ForeignKeys: []extract.ForeignKey{
				{RefTable: "users", Columns: []string{"author_id"}, BackReferenceName: strp("authored_posts")},
			}},
		},
	}
	out := Lower(cfg)
	users := out.Tables[0]
	if len(users.BackReferences) != 1 || users.BackReferences[0].Name != "authored_posts" {
		t.Fatalf("explicit back_reference_name not honored: %+v", users.BackReferences)
	}
}

func TestInferBackReferencesMatchesByAltName(t *testing.T) {
	cfg := &extract.Config{
		Tables: []extract.Table{
			{Name: "user", AltName: strp("users")},
			{Name: "posts", ForeignKeys: []extract.ForeignKey{
				{RefTable: "users", Columns: []string{"user_id"}},
			}},
		},
	}
	out := Lower(cfg)
	target := out.Tables[0]
	if len(target.BackReferences) != 1 {
		t.Fatalf("expected a back reference matched via alt_name, got %+v", target.BackReferences)
	}
}

func TestLowerPreservesTestAsserts(t *testing.T) {
	cfg := &extract.Config{
		Tests: []extract.Test{
			{
				Name:    "t1",
				Asserts: []string{"select 1"},
				AssertEq: []extract.EqAssert{
					{Query: "select count(*) from users", Expected: "1"},
				},
			},
		},
	}
	out := Lower(cfg)
	if len(out.Tests) != 1 || len(out.Tests[0].AssertEq) != 1 {
		t.Fatalf("test not lowered: %+v", out.Tests)
	}
}
