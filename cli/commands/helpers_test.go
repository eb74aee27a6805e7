package commands

import "testing"

func TestParseVarFlagsSplitsOnFirstEquals(t *testing.T) {
	vars, err := parseVarFlags([]string{"name=acme", "dsn=postgres://a=b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vars["name"].Str != "acme" {
		t.Fatalf("name = %q", vars["name"].Str)
	}
	if vars["dsn"].Str != "postgres://a=b" {
		t.Fatalf("dsn = %q", vars["dsn"].Str)
	}
}

func TestParseVarFlagsRejectsMissingEquals(t *testing.T) {
	if _, err := parseVarFlags([]string{"justaname"}); err == nil {
		t.Fatal("expected an error for a flag with no '='")
	}
}

func TestNameFilterSetEmptyMeansRunEverything(t *testing.T) {
	if nameFilterSet(nil) != nil {
		t.Fatal("expected nil filter for an empty name list")
	}
}

func TestNameFilterSetBuildsLookupSet(t *testing.T) {
	set := nameFilterSet([]string{"a", "b"})
	if !set["a"] || !set["b"] || set["c"] {
		t.Fatalf("unexpected filter set: %+v", set)
	}
}
