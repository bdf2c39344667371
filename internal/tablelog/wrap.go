package tablelog

import (
	"strings"
	"unicode/utf8"
)

// wrapWords greedily wraps text at whitespace boundaries. Words are never
// split; a single word wider than width occupies its own line. Empty or
// all-whitespace input wraps to one empty line.
func wrapWords(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	lines := make([]string, 0, 1)
	current := words[0]
	for _, word := range words[1:] {
		if utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width {
			current += " " + word
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
