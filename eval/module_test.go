package eval

import (
	"testing"

	"github.com/dbschema-go/dbschema/loader"
)

func TestLoadFileVariableDefaultAndLocals(t *testing.T) {
	ld := loader.NewMapLoader(map[string]string{
		"root.hcl": `
variable "env_name" {
  default = "dev"
}
locals {
  full_name = "app-${var.env_name}"
}
table "t" {
  name = local.full_name
}
`,
	})
	loaded, err := LoadFile(ld, loader.NewStack(), "root.hcl", map[string]Value{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Env.Vars["env_name"].Str != "dev" {
		t.Fatalf("default not applied: %+v", loaded.Env.Vars["env_name"])
	}
	if loaded.Env.Locals["full_name"].Str != "app-dev" {
		t.Fatalf("local not evaluated: %+v", loaded.Env.Locals["full_name"])
	}
	if len(loaded.Body.BlocksOfType("table")) != 1 {
		t.Fatalf("expected table block to survive extraction handoff")
	}
}

func TestLoadFileVariableValidationFails(t *testing.T) {
	ld := loader.NewMapLoader(map[string]string{
		"root.hcl": `
variable "count_val" {
  default = -1
  validation {
    condition = var.count_val >= 0
    error_message = "count_val must be non-negative"
  }
}
`,
	})
	_, err := LoadFile(ld, loader.NewStack(), "root.hcl", map[string]Value{})
	if err == nil {
		t.Fatal("expected validation failure")
	}
}

func TestLoadFileModuleForEachCapturesOutputsPerIteration(t *testing.T) {
	ld := loader.NewMapLoader(map[string]string{
		"root.hcl": `
module "m" {
  source = "./mod"
  for_each = ["users", "orders"]
  table = each.value
}
`,
		"mod/main.hcl": `
output "table_name" {
  value = var.table
}
`,
	})
	loaded, err := LoadFile(ld, loader.NewStack(), "root.hcl", map[string]Value{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	m := loaded.Env.Modules["m"]
	if m.Kind != KindObject || len(m.Keys) != 2 {
		t.Fatalf("expected two module instances, got %+v", m)
	}
	first, _ := m.Get("0")
	tableName, _ := first.Get("table_name")
	if tableName.Str != "users" {
		t.Fatalf("expected first instance table_name=users, got %+v", tableName)
	}
}

func TestLoadFileModuleCycleFails(t *testing.T) {
	ld := loader.NewMapLoader(map[string]string{
		"a/main.hcl": `module "b" { source = "../b" }`,
		"b/main.hcl": `module "a" { source = "../a" }`,
	})
	_, err := LoadFile(ld, loader.NewStack(), "a", map[string]Value{})
	if err == nil {
		t.Fatal("expected cycle detection error")
	}
}
