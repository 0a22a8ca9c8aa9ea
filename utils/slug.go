package utils

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

const maxSlugLen = 48

// Slugify turns arbitrary text into a lowercase ASCII slug suitable for file
// names and URLs. Non-ASCII characters are transliterated first.
func Slugify(s string) string {
	s = unidecode.Unidecode(s)
	s = strings.ToLower(s)

	var b strings.Builder
	lastDash := true // suppress leading dashes
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	out := strings.Trim(b.String(), "-")
	if len(out) > maxSlugLen {
		out = strings.Trim(out[:maxSlugLen], "-")
	}
	return out
}
