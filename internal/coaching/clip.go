package coaching

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxCoachTextRunes is the longest coaching line shown to users.
const MaxCoachTextRunes = 180

// ClipCoachText NFC-normalizes s and, when it is longer than
// MaxCoachTextRunes, keeps the first MaxCoachTextRunes-3 runes plus "...".
func ClipCoachText(s string) string {
	s = norm.NFC.String(s)
	if utf8.RuneCountInString(s) <= MaxCoachTextRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxCoachTextRunes-3]) + "..."
}
