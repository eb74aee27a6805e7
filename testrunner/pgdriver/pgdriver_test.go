package pgdriver

import "testing"

func TestMaintenanceDSNSwapsPathToPostgres(t *testing.T) {
	got, err := maintenanceDSN("postgres://user:pw@localhost:5432/myapp?sslmode=disable")
	if err != nil {
		t.Fatalf("maintenanceDSN: %v", err)
	}
	want := "postgres://user:pw@localhost:5432/postgres?sslmode=disable"
	if got != want {
		t.Fatalf("maintenanceDSN = %q, want %q", got, want)
	}
}

func TestMaintenanceDSNRejectsPathless(t *testing.T) {
	if _, err := maintenanceDSN("nope"); err == nil {
		t.Fatal("expected error for DSN with no path separator")
	}
}

func TestQuoteIdentifierDoublesEmbeddedQuote(t *testing.T) {
	if got := quoteIdentifier(`weird"name`); got != `"weird""name"` {
		t.Fatalf("quoteIdentifier = %q", got)
	}
}

func TestStringifyHandlesByteSliceAndNil(t *testing.T) {
	if got := stringify([]byte("hello")); got != "hello" {
		t.Fatalf("stringify([]byte) = %q", got)
	}
	if got := stringify(nil); got != "" {
		t.Fatalf("stringify(nil) = %q", got)
	}
	if got := stringify(int64(42)); got != "42" {
		t.Fatalf("stringify(int64) = %q", got)
	}
}
