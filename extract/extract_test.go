package extract

import (
	"testing"

	"github.com/dbschema-go/dbschema/eval"
	"github.com/dbschema-go/dbschema/lang/parser"
)

func mustExtract(t *testing.T, src string, env *eval.Env) *Config {
	t.Helper()
	if env == nil {
		env = eval.NewEnv()
	}
	body, err := parser.Parse("t.hcl", src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := &Config{}
	if err := Extract(body, env, cfg); err != nil {
		t.Fatalf("extract: %v", err)
	}
	return cfg
}

func TestExtractTableWithColumnsKeysAndForeignKey(t *testing.T) {
	cfg := mustExtract(t, `
table "users" {
  column "id" {
    type = "uuid"
    nullable = false
  }
  column "email" {
    type = "text"
  }
  primary_key {
    columns = ["id"]
  }
}

table "posts" {
  column "id" {
    type = "uuid"
    nullable = false
  }
  column "user_id" {
    type = "uuid"
  }
  foreign_key {
    columns = ["user_id"]
    ref_table = "users"
    ref_columns = ["id"]
  }
}
`, nil)

	if len(cfg.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(cfg.Tables))
	}
	users := cfg.Tables[0]
	if len(users.Columns) != 2 || users.Columns[0].Name != "id" || users.Columns[0].Nullable {
		t.Fatalf("users columns: %+v", users.Columns)
	}
	if users.PrimaryKey == nil || len(users.PrimaryKey.Columns) != 1 {
		t.Fatalf("primary key: %+v", users.PrimaryKey)
	}
	posts := cfg.Tables[1]
	if len(posts.ForeignKeys) != 1 || posts.ForeignKeys[0].RefTable != "users" {
		t.Fatalf("foreign key: %+v", posts.ForeignKeys)
	}
}

func TestExtractColumnCountExpansionPreservesSameName(t *testing.T) {
	cfg := mustExtract(t, `
table "grid" {
  column "cell" {
    type = "int"
    count = 3
  }
}
`, nil)
	cols := cfg.Tables[0].Columns
	if len(cols) != 3 {
		t.Fatalf("expected 3 expanded columns, got %d", len(cols))
	}
	for _, c := range cols {
		if c.Name != "cell" {
			t.Fatalf("count expansion must not rename columns, got %q", c.Name)
		}
	}
}

func TestExtractTriggerDefaultsTimingEventsAndLevel(t *testing.T) {
	cfg := mustExtract(t, `
function "set_updated_at" {
  language = "plpgsql"
  returns = "trigger"
  body = "BEGIN NEW.updated_at = now(); RETURN NEW; END;"
}

trigger "users_upd" {
  table = "users"
  function = "set_updated_at"
  events = ["UPDATE"]
}
`, nil)
	if len(cfg.Triggers) != 1 {
		t.Fatalf("expected 1 trigger, got %d", len(cfg.Triggers))
	}
	trg := cfg.Triggers[0]
	if trg.Timing != "BEFORE" {
		t.Fatalf("expected default timing BEFORE, got %q", trg.Timing)
	}
	if trg.Level != "ROW" {
		t.Fatalf("expected default level ROW, got %q", trg.Level)
	}
	if len(trg.Events) != 1 || trg.Events[0] != "UPDATE" {
		t.Fatalf("unexpected events: %+v", trg.Events)
	}
}

func TestExtractTriggerEventsDefaultsWhenAbsent(t *testing.T) {
	cfg := mustExtract(t, `
trigger "t" {
  table = "users"
  function = "f"
}
`, nil)
	trg := cfg.Triggers[0]
	if len(trg.Events) != 1 || trg.Events[0] != "UPDATE" {
		t.Fatalf("expected default events [UPDATE], got %+v", trg.Events)
	}
}

func TestExtractResourceForEachExpandsOneRecordPerElement(t *testing.T) {
	env := eval.NewEnv()
	env.Vars["names"] = eval.Array([]eval.Value{eval.String("read"), eval.String("write")})
	cfg := mustExtract(t, `
role "r" {
  for_each = var.names
  name = each.value
}
`, env)
	if len(cfg.Roles) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(cfg.Roles))
	}
	if *cfg.Roles[0].AltName != "read" || *cfg.Roles[1].AltName != "write" {
		t.Fatalf("each.value not bound per iteration: %+v", cfg.Roles)
	}
}

func TestExtractTestBlockAssertAcceptsStringOrArray(t *testing.T) {
	cfg := mustExtract(t, `
test "single_assert_as_scalar" {
  setup = "insert into t values (1)"
  assert = "select 1"
}

test "multi_assert_as_array" {
  assert = ["select 1", "select 2"]
}
`, nil)
	if len(cfg.Tests) != 2 {
		t.Fatalf("expected 2 tests, got %d", len(cfg.Tests))
	}
	if len(cfg.Tests[0].Setup) != 1 || cfg.Tests[0].Setup[0] != "insert into t values (1)" {
		t.Fatalf("scalar setup coercion: %+v", cfg.Tests[0].Setup)
	}
	if len(cfg.Tests[0].Asserts) != 1 {
		t.Fatalf("scalar assert coercion: %+v", cfg.Tests[0].Asserts)
	}
	if len(cfg.Tests[1].Asserts) != 2 {
		t.Fatalf("array assert: %+v", cfg.Tests[1].Asserts)
	}
}

func TestExtractTestAssertEqAndNotifyAndSnapshot(t *testing.T) {
	cfg := mustExtract(t, `
test "richer" {
  assert_eq {
    query = "select count(*) from users"
    expected = "1"
  }
  assert_notify {
    channel = "events"
    payload_contains = "created"
  }
  assert_snapshot {
    query = "select id, name from users order by id"
    rows = [["1", "a"], ["2", "b"]]
  }
  assert_error {
    sql = "insert into users (id) values (null)"
    message_contains = "not-null"
  }
}
`, nil)
	test := cfg.Tests[0]
	if len(test.AssertEq) != 1 || test.AssertEq[0].Expected != "1" {
		t.Fatalf("assert_eq: %+v", test.AssertEq)
	}
	if len(test.AssertNotify) != 1 || *test.AssertNotify[0].PayloadContains != "created" {
		t.Fatalf("assert_notify: %+v", test.AssertNotify)
	}
	if len(test.AssertSnapshot) != 1 || len(test.AssertSnapshot[0].Rows) != 2 {
		t.Fatalf("assert_snapshot: %+v", test.AssertSnapshot)
	}
	if len(test.AssertError) != 1 || test.AssertError[0].MessageContains != "not-null" {
		t.Fatalf("assert_error: %+v", test.AssertError)
	}
}

func TestExtractDynamicBlockExpansionBeforeDispatch(t *testing.T) {
	env := eval.NewEnv()
	env.Vars["grants"] = eval.Array([]eval.Value{eval.String("alice"), eval.String("bob")})
	cfg := mustExtract(t, `
dynamic "role" {
  for_each = var.grants
  labels = [each.value]
  content {
    login = true
  }
}
`, env)
	if len(cfg.Roles) != 2 {
		t.Fatalf("expected 2 roles from dynamic expansion, got %d", len(cfg.Roles))
	}
	if cfg.Roles[0].Name != "alice" || cfg.Roles[1].Name != "bob" {
		t.Fatalf("dynamic labels not applied: %+v", cfg.Roles)
	}
	if !cfg.Roles[0].Login {
		t.Fatalf("dynamic content not applied: %+v", cfg.Roles[0])
	}
}

func TestExtractUnknownBlockKindFails(t *testing.T) {
	body, err := parser.Parse("t.hcl", `bogus "x" {}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := Extract(body, eval.NewEnv(), &Config{}); err == nil {
		t.Fatal("expected unknown block kind error")
	}
}
