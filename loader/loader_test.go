package loader

import "testing"

func TestMapLoaderDirectAndDirectoryResolution(t *testing.T) {
	l := NewMapLoader(map[string]string{
		"root.hcl":      "a = 1",
		"mod/main.hcl":  "b = 2",
	})
	if src, err := l.Load("root.hcl"); err != nil || src != "a = 1" {
		t.Fatalf("direct load: %q, %v", src, err)
	}
	if src, err := l.Load("mod"); err != nil || src != "b = 2" {
		t.Fatalf("directory load: %q, %v", src, err)
	}
	if _, err := l.Load("missing.hcl"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolveJoinsRelativeToIncludingFile(t *testing.T) {
	got := Resolve("a/b/main.hcl", "../c")
	want := "a/c"
	if got != want {
		t.Fatalf("Resolve() = %q, want %q", got, want)
	}
}

func TestStackDetectsCycle(t *testing.T) {
	s := NewStack()
	if err := s.Enter("a"); err != nil {
		t.Fatalf("unexpected error entering a: %v", err)
	}
	if err := s.Enter("b"); err != nil {
		t.Fatalf("unexpected error entering b: %v", err)
	}
	if err := s.Enter("a"); err == nil {
		t.Fatal("expected cycle error re-entering a")
	}
}

func TestStackAllowsSequentialReentry(t *testing.T) {
	s := NewStack()
	if err := s.Enter("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Leave()
	if err := s.Enter("a"); err != nil {
		t.Fatalf("expected re-entry after Leave to succeed, got %v", err)
	}
}
