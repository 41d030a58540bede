package resource

import (
	"strings"
	"unicode"
)

// toKebab converts an identifier to kebab-case using ASCII-aware rules.
// We keep this implementation local so we can aggressively strip
// punctuation (pointers, generic suffixes) that can show up in reflected
// type names; leaving those characters in would produce URL path segments
// and cache namespaces the backend and the prefix-based invalidation
// strategy both reject.
func toKebab(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(runes) + len(runes)/2)

	lastDash := false

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case unicode.IsUpper(r):
			if b.Len() > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if (unicode.IsLower(prev) || unicode.IsDigit(prev) || nextLower) && !lastDash {
					b.WriteByte('-')
					lastDash = true
				}
			}
			b.WriteRune(unicode.ToLower(r))
			lastDash = false

		case unicode.IsLower(r):
			b.WriteRune(r)
			lastDash = false

		case unicode.IsDigit(r):
			if b.Len() > 0 {
				prev := runes[i-1]
				if !unicode.IsDigit(prev) && prev != '-' && !lastDash {
					b.WriteByte('-')
				}
			}
			b.WriteRune(r)
			lastDash = false

		case r == '-' || r == '_' || unicode.IsSpace(r):
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}

		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
