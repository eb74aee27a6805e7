// Package diagnostics provides span-tracked error reporting shared by the
// lexer, parser, evaluator, and validation passes.
package diagnostics

import "fmt"

// Span identifies a byte range in a source file, plus the line/column of
// its start, for pointer-into-source error rendering.
type Span struct {
	File   string
	Start  int
	End    int
	Line   int
	Column int
}

// EmptySpan returns a span with no location information.
func EmptySpan() Span {
	return Span{}
}

func (s Span) String() string {
	if s.File == "" {
		return fmt.Sprintf("%d:%d", s.Line, s.Column)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}
