package domain

import (
	"strings"
	"unicode"
)

// Slugify lowercases, strips accents common in Spanish titles, and converts
// everything non-alphanumeric into single hyphens.
func Slugify(s string) string {
	replacer := strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
		"ü", "u", "ñ", "n",
	)
	s = replacer.Replace(strings.ToLower(strings.TrimSpace(s)))

	var b strings.Builder
	lastHyphen := true
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
