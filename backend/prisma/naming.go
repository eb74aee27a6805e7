package prisma

import "strings"

// pascalCase mirrors generator/codegen/model_generator.go's
// toPascalCase: split on underscores, upper-case each word's first
// rune and lower-case the rest, concatenated with no separator.
func pascalCase(s string) string {
	words := strings.Split(s, "_")
	var b strings.Builder
	for _, word := range words {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		if len(word) > 1 {
			b.WriteString(strings.ToLower(word[1:]))
		}
	}
	return b.String()
}

// isValidIdentifier reports whether s can be written as a Prisma
// identifier verbatim: starts with a letter or underscore, and every
// other rune is alphanumeric or underscore.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	first := s[0]
	if !(first == '_' || (first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z')) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		ok := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !ok {
			return false
		}
	}
	return true
}

// safeEnumValueIdent synthesizes a valid Prisma identifier for an enum
// value whose database name isn't one (spec.md §4.E): every
// non-identifier byte becomes an underscore, and a leading digit gets a `_`
// prefix so the result always starts with a letter or underscore.
func safeEnumValueIdent(raw string) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		} else {
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out == "" || (out[0] >= '0' && out[0] <= '9') {
		out = "_" + out
	}
	return out
}

// referenceActionName maps a Postgres ON DELETE/UPDATE action keyword
// to its Prisma ReferentialAction name, case-insensitively, defaulting
// to NoAction for anything unrecognized (spec.md §4.E).
func referenceActionName(action string) string {
	switch strings.ToUpper(strings.TrimSpace(action)) {
	case "CASCADE":
		return "Cascade"
	case "RESTRICT":
		return "Restrict"
	case "SET NULL":
		return "SetNull"
	case "SET DEFAULT":
		return "SetDefault"
	default:
		return "NoAction"
	}
}

// escapeDbGenerated escapes backslashes and double quotes for
// embedding inside a dbgenerated("...") string literal.
func escapeDbGenerated(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
