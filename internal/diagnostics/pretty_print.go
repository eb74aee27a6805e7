package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// colorer picks the color/title used to render a category of diagnostic.
type colorer struct {
	title   string
	primary *color.Color
}

var categoryColorer = map[Category]colorer{
	CategorySyntax:     {"syntax error", color.New(color.FgRed, color.Bold)},
	CategoryBinding:    {"binding error", color.New(color.FgRed, color.Bold)},
	CategoryType:       {"type error", color.New(color.FgRed, color.Bold)},
	CategoryStructural: {"structural error", color.New(color.FgRed, color.Bold)},
	CategoryCycle:      {"cycle error", color.New(color.FgMagenta, color.Bold)},
	CategoryReference:  {"reference error", color.New(color.FgRed, color.Bold)},
	CategoryRuntime:    {"runtime error", color.New(color.FgYellow, color.Bold)},
}

// Pretty renders a pointer-into-source diagnostic, in the style of the
// teacher's PSL pretty printer, for the given source text.
func (e *Error) Pretty(source string) string {
	var buf strings.Builder
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	col, ok := categoryColorer[e.Category]
	if !ok {
		col = colorer{"error", color.New(color.FgRed, color.Bold)}
	}

	span := e.Span
	if span.End > len(source) {
		span.End = len(source)
	}
	if span.Start > span.End {
		span.Start = span.End
	}

	startLine := strings.Count(source[:span.Start], "\n")
	endLine := strings.Count(source[:span.End], "\n")
	lines := strings.Split(source, "\n")

	bytesBefore := 0
	for i := 0; i < startLine && i < len(lines); i++ {
		bytesBefore += len(lines[i]) + 1
	}

	line := ""
	if startLine < len(lines) {
		line = lines[startLine]
	}
	startInLine := span.Start - bytesBefore
	if startInLine < 0 {
		startInLine = 0
	}
	endInLine := startInLine + (span.End - span.Start)
	if endInLine > len(line) {
		endInLine = len(line)
	}
	if startInLine > endInLine {
		startInLine = endInLine
	}

	prefix, offending, suffix := line[:startInLine], line[startInLine:endInLine], line[endInLine:]

	titleColor := color.New(color.Bold)
	arrowColor := color.New(color.FgCyan, color.Bold)
	lineNumColor := color.New(color.FgCyan, color.Bold)

	titleColor.Fprintf(&buf, "%s: ", col.title)
	titleColor.Fprintf(&buf, "%s\n", e.Message)
	arrowColor.Fprintf(&buf, "  --> ")
	fmt.Fprintf(&buf, "%s:%d\n", e.Span.File, startLine+1)
	lineNumColor.Fprintf(&buf, "   | \n")
	lineNumColor.Fprintf(&buf, "%2d | ", startLine+1)
	fmt.Fprintf(&buf, "%s%s%s\n", prefix, col.primary.Sprint(offending), suffix)
	if len(offending) == 0 {
		lineNumColor.Fprintf(&buf, "   | ")
		fmt.Fprintf(&buf, "%s%s\n", strings.Repeat(" ", startInLine), col.primary.Sprint("^"))
	}
	for ln := startLine + 2; ln <= endLine+2 && ln <= len(lines); ln++ {
		if ln-1 < len(lines) {
			lineNumColor.Fprintf(&buf, "%2d | ", ln)
			fmt.Fprintf(&buf, "%s\n", lines[ln-1])
		}
	}
	lineNumColor.Fprintf(&buf, "   | \n")
	return buf.String()
}

// Write renders the diagnostic directly to w.
func (e *Error) Write(w io.Writer, source string) {
	fmt.Fprint(w, e.Pretty(source))
}
