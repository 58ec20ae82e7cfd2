// Package slug turns display names into URL-safe portfolio usernames.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	separatorRegex = regexp.MustCompile(`[^a-z0-9]+`)
	slugRegex      = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Make lowercases s, strips accents and joins the remaining words with
// single dashes: "José  Álvarez!" becomes "jose-alvarez".
func Make(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	plain = strings.ToLower(plain)
	plain = separatorRegex.ReplaceAllString(plain, "-")
	return strings.Trim(plain, "-")
}

// Valid reports whether s is already a canonical slug.
func Valid(s string) bool {
	return slugRegex.MatchString(s)
}
