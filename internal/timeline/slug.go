package timeline

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var latinize = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives the filesystem-safe identifier a match persists under.
// Accents are stripped, anything outside [a-z0-9.-] collapses to a single
// dash, and an empty result falls back to "match" so the slug is always a
// usable directory name.
func Slugify(title string) string {
	flat, _, err := transform.String(latinize, title)
	if err != nil {
		flat = title
	}

	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(flat) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "match"
	}
	return slug
}
