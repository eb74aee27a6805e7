package diagnostics

import "fmt"

// Category classifies an Error into one of the error families spec.md §7
// names: a caller can switch on it without parsing the message.
type Category int

const (
	CategorySyntax Category = iota
	CategoryBinding
	CategoryType
	CategoryStructural
	CategoryCycle
	CategoryReference
	CategoryRuntime
)

func (c Category) String() string {
	switch c {
	case CategorySyntax:
		return "syntax"
	case CategoryBinding:
		return "binding"
	case CategoryType:
		return "type"
	case CategoryStructural:
		return "structural"
	case CategoryCycle:
		return "cycle"
	case CategoryReference:
		return "reference"
	case CategoryRuntime:
		return "runtime"
	default:
		return "error"
	}
}

// Error is the single error type returned by every stage of the
// compiler: lexer, parser, evaluator, extractor, IR validation, and
// backends all fail with one of these.
type Error struct {
	Category Category
	Message  string
	Span     Span
}

func (e *Error) Error() string {
	if e.Span.Line > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Category, e.Message, e.Span)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func newError(cat Category, span Span, format string, args ...any) *Error {
	return &Error{Category: cat, Message: fmt.Sprintf(format, args...), Span: span}
}

// Syntax reports an unparseable source construct.
func Syntax(span Span, format string, args ...any) *Error {
	return newError(CategorySyntax, span, format, args...)
}

// UndefinedReference reports a reference to an undeclared variable, local,
// each/count binding, module output, or data source.
func UndefinedReference(span Span, scope, name string) *Error {
	return newError(CategoryBinding, span, "undefined %s reference %q", scope, name)
}

// TypeMismatch reports a function argument, operator operand, or variable
// type violation.
func TypeMismatch(span Span, context string, expected, actual string) *Error {
	return newError(CategoryType, span, "%s: expected %s, got %s", context, expected, actual)
}

// Structural reports an illegal combination or a missing required
// attribute on a block.
func Structural(span Span, block, format string, args ...any) *Error {
	return newError(CategoryStructural, span, "block %q: %s", block, fmt.Sprintf(format, args...))
}

// Cycle reports a module import cycle, with the full cycle path.
func Cycle(path []string) *Error {
	return newError(CategoryCycle, EmptySpan(), "import cycle: %s", joinArrow(path))
}

// Reference reports a cross-resource validation failure (spec.md §4.D).
func Reference(span Span, format string, args ...any) *Error {
	return newError(CategoryReference, span, format, args...)
}

// Runtime reports a test-runner failure: driver I/O, assertion failure,
// or unexpected success of an assert_fail block.
func Runtime(format string, args ...any) *Error {
	return newError(CategoryRuntime, EmptySpan(), format, args...)
}

func joinArrow(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += " -> "
		}
		out += p
	}
	return out
}
