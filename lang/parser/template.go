package parser

import (
	"strconv"
	"strings"

	"github.com/dbschema-go/dbschema/internal/diagnostics"
	"github.com/dbschema-go/dbschema/lang/ast"
)

// unescape processes the standard backslash escapes the lexer leaves
// unprocessed in string/heredoc bodies, including \uXXXX.
func unescape(raw string, sp diagnostics.Span) (string, error) {
	var sb strings.Builder
	i := 0
	for i < len(raw) {
		c := raw[i]
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(raw) {
			return "", diagnostics.Syntax(sp, "trailing backslash in string literal")
		}
		switch raw[i+1] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case '$':
			sb.WriteString("$")
		case 'u':
			if i+6 > len(raw) {
				return "", diagnostics.Syntax(sp, "invalid \\u escape in string literal")
			}
			code, err := strconv.ParseUint(raw[i+2:i+6], 16, 32)
			if err != nil {
				return "", diagnostics.Syntax(sp, "invalid \\u escape %q", raw[i+2:i+6])
			}
			sb.WriteRune(rune(code))
			i += 4
		default:
			sb.WriteByte(raw[i+1])
		}
		i += 2
	}
	return sb.String(), nil
}

// buildTemplate splits a raw (unescaped) string body into literal and
// interpolation (`${...}`) parts, recursively lexing and parsing each
// interpolation expression. Directives (`%{ if ... }`, `%{ for ... }`)
// are rejected, per spec.md §4.B.
func (p *Parser) buildTemplate(raw string, sp diagnostics.Span) (ast.Expression, error) {
	if !strings.Contains(raw, "${") && !strings.Contains(raw, "%{") {
		lit, err := unescape(raw, sp)
		if err != nil {
			return nil, err
		}
		return &ast.StringLit{Value: lit, Sp: sp}, nil
	}
	if strings.Contains(raw, "%{") {
		return nil, diagnostics.Syntax(sp, "template directives are not supported")
	}

	var parts []ast.TemplatePart
	i := 0
	var litBuf strings.Builder
	flushLit := func() error {
		if litBuf.Len() == 0 {
			return nil
		}
		s, err := unescape(litBuf.String(), sp)
		if err != nil {
			return err
		}
		parts = append(parts, ast.TemplatePart{Literal: s})
		litBuf.Reset()
		return nil
	}
	for i < len(raw) {
		if raw[i] == '$' && i+1 < len(raw) && raw[i+1] == '{' {
			if err := flushLit(); err != nil {
				return nil, err
			}
			depth := 1
			j := i + 2
			for j < len(raw) && depth > 0 {
				switch raw[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				if depth == 0 {
					break
				}
				j++
			}
			if depth != 0 {
				return nil, diagnostics.Syntax(sp, "unterminated interpolation in template")
			}
			inner := raw[i+2 : j]
			expr, err := ParseExpressionString(p.file, inner)
			if err != nil {
				return nil, err
			}
			parts = append(parts, ast.TemplatePart{Interp: expr})
			i = j + 1
			continue
		}
		litBuf.WriteByte(raw[i])
		i++
	}
	if err := flushLit(); err != nil {
		return nil, err
	}
	if len(parts) == 1 && parts[0].Interp == nil {
		return &ast.StringLit{Value: parts[0].Literal, Sp: sp}, nil
	}
	return &ast.Template{Parts: parts, Sp: sp}, nil
}
