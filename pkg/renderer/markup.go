package renderer

import (
	"iter"
	"strings"
)

// BoldDelimiter opens and closes inline bold text.
const BoldDelimiter = "**"

// Segment is a run of text drawn in one weight.
type Segment struct {
	Text string
	Bold bool
}

// Segments splits a line on the bold delimiter. The first run is regular and every delimiter
// toggles the weight; an unmatched delimiter leaves the rest of the line in the toggled weight.
// Empty runs are skipped.
func Segments(line string) (seq iter.Seq[Segment]) {
	seq = func(yield func(Segment) bool) {
		bold := false
		for part := range strings.SplitSeq(line, BoldDelimiter) {
			if part != "" && !yield(Segment{Text: part, Bold: bold}) {
				return
			}
			bold = !bold
		}
	}
	return seq
}

// Balanced reports whether every bold delimiter in line has a partner.
func Balanced(line string) (balanced bool) {
	balanced = strings.Count(line, BoldDelimiter)%2 == 0
	return balanced
}
