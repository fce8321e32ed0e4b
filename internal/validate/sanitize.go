package validate

import (
	"html"
	"strings"
	"unicode"
)

// Sanitize escapes markup characters and trims surrounding whitespace.
// Input is unescaped first, so already sanitized text passes through
// unchanged: Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(raw string) string {
	s := html.UnescapeString(raw)
	s = strings.Map(controlToSpace, s)
	s = strings.TrimSpace(s)
	return html.EscapeString(s)
}

// controlToSpace folds line breaks and tabs into spaces and drops every
// other control character.
func controlToSpace(r rune) rune {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return ' '
	case unicode.IsControl(r):
		return -1
	}
	return r
}
