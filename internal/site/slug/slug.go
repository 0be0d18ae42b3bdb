// Package slug derives URL-safe identifiers from post titles.
package slug

import (
	"strings"
	"unicode"
)

const maxLength = 80

// FromTitle lowercases the title and collapses every non-alphanumeric run
// into a single hyphen. The result is trimmed to a bounded length on a
// hyphen boundary when possible.
func FromTitle(title string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsLetter(r) && r < unicode.MaxASCII || unicode.IsDigit(r) && r < unicode.MaxASCII {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	value := b.String()
	if len(value) > maxLength {
		value = value[:maxLength]
		if idx := strings.LastIndexByte(value, '-'); idx > 0 {
			value = value[:idx]
		}
	}
	return value
}

// Valid reports whether value is a well-formed slug: non-empty, lowercase
// alphanumerics separated by single hyphens.
func Valid(value string) bool {
	if value == "" || len(value) > maxLength {
		return false
	}
	if strings.HasPrefix(value, "-") || strings.HasSuffix(value, "-") || strings.Contains(value, "--") {
		return false
	}
	for _, r := range value {
		if r == '-' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}
