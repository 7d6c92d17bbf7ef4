package game

import (
	"strings"
	"unicode/utf8"
)

const minWrapWidth = 20

// WrapText breaks text into lines no wider than width runes. Blank lines are
// kept as paragraph breaks and words longer than a line are split. Widths
// below a small minimum are raised so tiny client windows stay readable.
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	width = max(width, minWrapWidth)

	paragraphs := strings.Split(text, "\n")
	for i, para := range paragraphs {
		paragraphs[i] = strings.Join(wrapWords(strings.Fields(para), width), "\n")
	}
	return strings.Join(paragraphs, "\n")
}

func wrapWords(words []string, width int) []string {
	var lines []string
	var line strings.Builder
	lineLen := 0
	flush := func() {
		if lineLen > 0 {
			lines = append(lines, line.String())
			line.Reset()
			lineLen = 0
		}
	}
	for _, word := range words {
		for utf8.RuneCountInString(word) > width {
			flush()
			cut := runeOffset(word, width)
			lines = append(lines, word[:cut])
			word = word[cut:]
		}
		n := utf8.RuneCountInString(word)
		if n == 0 {
			continue
		}
		if lineLen > 0 && lineLen+1+n > width {
			flush()
		}
		if lineLen > 0 {
			line.WriteByte(' ')
			lineLen++
		}
		line.WriteString(word)
		lineLen += n
	}
	flush()
	return lines
}

func runeOffset(s string, runes int) int {
	for i := range s {
		if runes == 0 {
			return i
		}
		runes--
	}
	return len(s)
}
