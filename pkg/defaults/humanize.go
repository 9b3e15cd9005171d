package defaults

import (
	"strings"
	"unicode"
)

// Humanize converts a property name into a sentence-cased label:
// "firstName" -> "First name", "is_active" -> "Is active", "ID" -> "Id",
// "HTMLParser" -> "Html parser".
//
// Words split on camelCase boundaries (lower or digit followed by upper, and
// the last capital of an acronym followed by a lower), underscores and
// whitespace. Runs of separators collapse into one space. Hyphens are kept,
// so "e-mail" stays "E-mail". A single trailing "s" stays with its acronym:
// "userIDs" -> "User ids".
func Humanize(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(len(runes) + 4)
	pendingSpace := false
	for i, r := range runes {
		if isSeparator(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if i > 0 && !pendingSpace && isWordBoundary(runes, i) {
			pendingSpace = true
		}
		if pendingSpace {
			b.WriteRune(' ')
			pendingSpace = false
		}
		b.WriteRune(unicode.ToLower(r))
	}

	out := []rune(b.String())
	if len(out) == 0 {
		return ""
	}
	out[0] = unicode.ToUpper(out[0])
	return string(out)
}

func isSeparator(r rune) bool {
	return r == '_' || unicode.IsSpace(r)
}

func isWordBoundary(runes []rune, i int) bool {
	r := runes[i]
	if !unicode.IsUpper(r) {
		return false
	}
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
		return !isPluralSuffix(runes, i+1)
	}
	return false
}

// isPluralSuffix reports whether runes[i] is an "s" that ends a word.
func isPluralSuffix(runes []rune, i int) bool {
	if runes[i] != 's' {
		return false
	}
	return i+1 == len(runes) || !unicode.IsLower(runes[i+1])
}
