package lexer

import (
	"testing"

	"github.com/dbschema-go/dbschema/lang/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizePunctuationAndOperators(t *testing.T) {
	src := `table "users" { count = 3 ? 1 : 2 a == b != c && d || e <= f >= g ... h => i }`
	toks, err := New("t.hcl", src).Tokenize()
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("expected trailing EOF token")
	}
	want := []token.Kind{token.Ident, token.String, token.LBrace, token.Ident, token.Equals, token.Number,
		token.Question, token.Number, token.Colon, token.Number, token.Ident, token.EqEq, token.Ident,
		token.NotEq, token.Ident, token.AndAnd, token.Ident, token.OrOr, token.Ident, token.LtEq, token.Ident,
		token.GtEq, token.Ident, token.Ellipsis, token.Ident, token.FatArrow, token.Ident, token.RBrace, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexStringEscapes(t *testing.T) {
	toks, err := New("t.hcl", `"a\"b\nA"`).Tokenize()
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if toks[0].Kind != token.String {
		t.Fatalf("expected string token, got %v", toks[0].Kind)
	}
	if toks[0].Value != `a\"b\nA` {
		t.Fatalf("unexpected raw string value: %q", toks[0].Value)
	}
}

func TestLexNegativeAndDecimalNumbers(t *testing.T) {
	toks, err := New("t.hcl", `-5 3.14`).Tokenize()
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if toks[0].Kind != token.Minus || toks[1].Kind != token.Number || toks[1].Value != "5" {
		t.Fatalf("unexpected tokens: %+v", toks[:2])
	}
	if toks[2].Kind != token.Number || toks[2].Value != "3.14" {
		t.Fatalf("unexpected decimal token: %+v", toks[2])
	}
}

func TestLexHeredocDedents(t *testing.T) {
	src := "<<-SQL\n  BEGIN\n    NEW.x = 1;\n  END\nSQL"
	toks, err := New("t.hcl", src).Tokenize()
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if toks[0].Kind != token.Heredoc {
		t.Fatalf("expected heredoc token, got %v", toks[0].Kind)
	}
	want := "BEGIN\n  NEW.x = 1;\nEND"
	if toks[0].Value != want {
		t.Fatalf("dedent mismatch: got %q want %q", toks[0].Value, want)
	}
}

func TestLexUnterminatedStringFails(t *testing.T) {
	if _, err := New("t.hcl", `"abc`).Tokenize(); err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestLexComments(t *testing.T) {
	toks, err := New("t.hcl", "a = 1 // comment\nb = 2 # also comment\n/* block */ c = 3").Tokenize()
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var idents []string
	for _, tk := range toks {
		if tk.Kind == token.Ident {
			idents = append(idents, tk.Value)
		}
	}
	if len(idents) != 3 || idents[0] != "a" || idents[1] != "b" || idents[2] != "c" {
		t.Fatalf("unexpected identifiers: %v", idents)
	}
}
