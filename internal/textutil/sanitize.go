// Package textutil provides the text sanitization helpers used for mugshot
// filenames and tabular output.
package textutil

import "strings"

// NameSlug converts a full name into a filesystem-safe slug: characters other
// than letters, digits, spaces, hyphens, and underscores are dropped, the
// result is trimmed, and spaces become underscores. Returns "" for input
// that sanitizes to nothing.
func NameSlug(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimSpace(b.String())
	return strings.ReplaceAll(cleaned, " ", "_")
}

// Truncate shortens a string to at most max runes, appending an ellipsis when
// anything was cut. Used for table cells and caption previews.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
