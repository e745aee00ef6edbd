package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Name folds a display name for case-insensitive lookups.
func Name(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Email brings an address to its stored form: trimmed and lowercased.
func Email(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}
