// Package slugify turns note titles into URL-safe slugs.
package slugify

import (
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/text/unicode/norm"
)

// Russian transliteration applied before the generic unidecode pass, so that
// Cyrillic titles come out the way Russian readers expect (я -> ya, not ia).
var ruSub = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "yo", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "j", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "sch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
}

// Make returns the transliterated slug of s. The result contains only
// lowercase ASCII letters, digits, '-' and '_'. It may be empty.
func Make(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(s)
	s = slug.SubstituteRune(s, ruSub)

	return slug.Make(s)
}

// Truncate cuts s to at most n bytes.
func Truncate(s string, n int) string {
	if n < 0 || len(s) <= n {
		return s
	}

	return s[:n]
}

// IsValid reports whether s is a non-empty slug made of ASCII letters,
// digits, '-' and '_'.
func IsValid(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}

	return true
}
