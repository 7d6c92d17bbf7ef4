package game

import (
	"strings"
	"unicode"
)

// sanitizeInput drops control and formatting runes from a client line and
// folds other whitespace into plain spaces.
func sanitizeInput(s string) string {
	if s == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return r
		case r == '\t' || r == '\v' || r == '\f' || r == 0x85 || r == 0xa0:
			return ' '
		case r == '\r' || r == '\n':
			return -1
		case unicode.IsControl(r), unicode.Is(unicode.Cf, r), unicode.In(r, unicode.Zl, unicode.Zp):
			return -1
		case unicode.IsSpace(r):
			return ' '
		case !unicode.IsPrint(r):
			return -1
		}
		return r
	}, s)
}
