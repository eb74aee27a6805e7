package prisma

import "strings"

// mapDefault renders a column's raw SQL default expression as a
// Prisma @default(...) attribute, per spec.md §4.E's defaults map.
func mapDefault(expr string) string {
	trimmed := strings.TrimSpace(expr)
	lower := strings.ToLower(trimmed)
	switch {
	case lower == "now()":
		return "@default(now())"
	case lower == "uuid_generate_v4()" || lower == "gen_random_uuid()":
		return "@default(uuid())"
	case strings.HasPrefix(lower, "nextval(") || strings.Contains(lower, "autoincrement"):
		return "@default(autoincrement())"
	default:
		return `@default(dbgenerated("` + escapeDbGenerated(trimmed) + `"))`
	}
}
