package renderer

import (
	"strings"
)

// wrapText breaks text into lines no wider than width, measured by measure. Newlines always
// break; runs of whitespace collapse to one space. A single word wider than width gets its own
// line. Markup is measured as plain text.
func wrapText(text string, width float64, measure func(string) float64) (lines []string) {
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return lines
	}

	for paragraph := range strings.SplitSeq(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if measure(candidate) > width {
				lines = append(lines, current)
				current = word
				continue
			}
			current = candidate
		}
		lines = append(lines, current)
	}

	return lines
}
