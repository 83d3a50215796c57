package lint

import "sort"

// Position is a 1-based line and byte column
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Locator converts byte offsets of a text into line and column positions
type Locator struct {
	lineStarts []int
}

// NewLocator indexes the line starts of text
func NewLocator(text string) *Locator {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Locator{lineStarts: starts}
}

// Position returns the position of offset
func (l *Locator) Position(offset int) Position {
	line := sort.Search(len(l.lineStarts), func(i int) bool {
		return l.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	return Position{Line: line + 1, Column: offset - l.lineStarts[line] + 1}
}

// LineStart returns the offset of the first byte of the 0-based line
func (l *Locator) LineStart(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(l.lineStarts) {
		return l.lineStarts[len(l.lineStarts)-1]
	}
	return l.lineStarts[line]
}
