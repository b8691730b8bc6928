package ingest

import (
	"strings"
	"unicode"
)

// maxRawTextLength is the ceiling applied when sanitizing raw text for
// persistence.
const maxRawTextLength = 500000

// SanitizeText strips non-printable characters and truncates to the
// persistence ceiling. Newlines and tabs survive; other control
// characters do not.
func SanitizeText(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == '\r' {
			return r
		}
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, text)

	runes := []rune(cleaned)
	if len(runes) > maxRawTextLength {
		runes = runes[:maxRawTextLength]
	}
	return string(runes)
}
