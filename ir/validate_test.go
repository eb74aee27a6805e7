package ir

import "testing"

func TestValidateTriggerFunctionMustExist(t *testing.T) {
	cfg := &Config{
		Triggers: []Trigger{{Name: "t1", Table: "users", Function: "missing_fn"}},
	}
	if err := Validate(cfg, false); err == nil {
		t.Fatal("expected error for dangling trigger function")
	}
	cfg.Functions = []Function{{Name: "missing_fn"}}
	if err := Validate(cfg, false); err != nil {
		t.Fatalf("unexpected error once function is declared: %v", err)
	}
}

func TestValidateForeignKeyMustResolve(t *testing.T) {
	cfg := &Config{
		Tables: []Table{
			{Name: "posts", ForeignKeys: []ForeignKey{{RefTable: "users"}}},
		},
	}
	if err := Validate(cfg, false); err == nil {
		t.Fatal("expected error for dangling foreign key")
	}
	cfg.Tables = append(cfg.Tables, Table{Name: "users"})
	if err := Validate(cfg, false); err != nil {
		t.Fatalf("unexpected error once users table is declared: %v", err)
	}
}

func TestValidateForeignTableServerMustResolve(t *testing.T) {
	cfg := &Config{
		ForeignTables: []ForeignTable{{Name: "ft", Server: "missing_server"}},
	}
	if err := Validate(cfg, false); err == nil {
		t.Fatal("expected error for dangling foreign server")
	}
}

func TestValidateStrictEnumHeuristic(t *testing.T) {
	cfg := &Config{
		Tables: []Table{
			{Name: "users", Columns: []Column{{Name: "status", Type: "Status"}}},
		},
	}
	if err := Validate(cfg, true); err == nil {
		t.Fatal("expected strict-mode error for undeclared enum type")
	}
	cfg.Enums = []Enum{{Name: "Status"}}
	if err := Validate(cfg, true); err != nil {
		t.Fatalf("unexpected error once enum is declared: %v", err)
	}
	// non-strict mode never checks this
	cfg2 := &Config{Tables: []Table{{Name: "users", Columns: []Column{{Name: "status", Type: "Status"}}}}}
	if err := Validate(cfg2, false); err != nil {
		t.Fatalf("non-strict mode must not check enum heuristic: %v", err)
	}
}

func TestValidateStrictEnumHeuristicIgnoresLowercaseTypes(t *testing.T) {
	cfg := &Config{
		Tables: []Table{
			{Name: "users", Columns: []Column{{Name: "id", Type: "uuid"}}},
		},
	}
	if err := Validate(cfg, true); err != nil {
		t.Fatalf("lowercase type must not trigger enum heuristic: %v", err)
	}
}

func TestValidatePolicyIndexStatisticsTableMustResolve(t *testing.T) {
	cfg := &Config{Policies: []Policy{{Name: "p", Table: "missing"}}}
	if err := Validate(cfg, false); err == nil {
		t.Fatal("expected error for policy referencing undeclared table")
	}
	cfg = &Config{Indexes: []StandaloneIndex{{Name: "ix", Table: "missing"}}}
	if err := Validate(cfg, false); err == nil {
		t.Fatal("expected error for index referencing undeclared table")
	}
	cfg = &Config{Statistics: []Statistics{{Name: "st", Table: "missing"}}}
	if err := Validate(cfg, false); err == nil {
		t.Fatal("expected error for statistics referencing undeclared table")
	}
}

func TestValidateGrantsResolveExceptSchemaAndDatabase(t *testing.T) {
	cfg := &Config{Grants: []Grant{{Name: "g", Table: strp("missing")}}}
	if err := Validate(cfg, false); err == nil {
		t.Fatal("expected error for grant on undeclared table")
	}
	schema := "public"
	cfg = &Config{Grants: []Grant{{Name: "g", Schema: &schema}}}
	if err := Validate(cfg, false); err != nil {
		t.Fatalf("schema grants must be exempt from existence checks: %v", err)
	}
	db := "app"
	cfg = &Config{Grants: []Grant{{Name: "g", Database: &db}}}
	if err := Validate(cfg, false); err != nil {
		t.Fatalf("database grants must be exempt from existence checks: %v", err)
	}
}

func TestValidateSubscriptionPublicationWeakCheckStrictOnly(t *testing.T) {
	cfg := &Config{
		Subscriptions: []Subscription{{Name: "s", Publications: []string{"missing_pub"}}},
	}
	if err := Validate(cfg, false); err != nil {
		t.Fatalf("non-strict mode must not check subscription publications: %v", err)
	}
	if err := Validate(cfg, true); err == nil {
		t.Fatal("expected strict-mode error for undeclared publication")
	}
}
