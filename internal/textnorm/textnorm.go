// Package textnorm folds free text into comparable search keys: lowercase,
// without diacritics, with surrounding space trimmed. "São Paulo" and
// "sao paulo" share the key "sao paulo".
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold returns the search key for s.
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Digits returns only the ASCII digits of s ("01310-100" -> "01310100").
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Segments splits a name token on the separators form authors put between
// words: "data_nascimento" -> [data nascimento].
func Segments(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '_', '-', '.', ' ', '[', ']':
			return true
		}
		return false
	})
}

// HasSegment reports whether word is a whole segment of token.
func HasSegment(token, word string) bool {
	if word == "" {
		return false
	}
	for _, segment := range Segments(token) {
		if segment == word {
			return true
		}
	}
	return false
}
