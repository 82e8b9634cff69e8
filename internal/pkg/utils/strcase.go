package utils

import "strings"

// ToSnakeCase converts a camelCase field name to the snake_case column naming
// used by the storage layer. The mapping is deterministic: no locale rules, no
// special cases beyond consecutive capitals staying separate words.
func ToSnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
