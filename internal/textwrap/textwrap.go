// Package textwrap wraps plain text to a display width.
package textwrap

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Wrap word-wraps plain text to the given display width. Words wider than
// the width are broken mid-word.
func Wrap(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	var out strings.Builder
	lineWidth := 0
	for i, word := range strings.Fields(s) {
		wordWidth := runewidth.StringWidth(word)
		switch {
		case i == 0:
		case lineWidth+1+wordWidth <= width:
			out.WriteByte(' ')
			lineWidth++
		default:
			out.WriteByte('\n')
			lineWidth = 0
		}
		if wordWidth <= width {
			out.WriteString(word)
			lineWidth += wordWidth
			continue
		}
		for _, r := range word {
			rw := runewidth.RuneWidth(r)
			if lineWidth+rw > width {
				out.WriteByte('\n')
				lineWidth = 0
			}
			out.WriteRune(r)
			lineWidth += rw
		}
	}
	return out.String()
}
