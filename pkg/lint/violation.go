package lint

import (
	"sort"
	"strings"

	"github.com/siyuan-infoblox/pretty-import/pkg/config"
)

// Edit replaces the byte range [Start, End) of the source with Text
type Edit struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Violation is one rule finding anchored at a byte range of the source
type Violation struct {
	Rule     string          `json:"rule"`
	ID       MessageID       `json:"messageId"`
	Severity config.Severity `json:"severity"`
	Start    int             `json:"start"`
	End      int             `json:"end"`
	Fix      *Edit           `json:"fix,omitempty"`
}

// Message returns the human readable text of the violation
func (v Violation) Message() string {
	return v.ID.Message()
}

// Apply applies edits to text. Edits are taken by start offset, wider first
// on ties; an edit overlapping an already applied one is skipped. It returns
// the new text and the number of edits applied.
func Apply(text string, fixes []Edit) (string, int) {
	sorted := append([]Edit{}, fixes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End > sorted[j].End
	})

	var b strings.Builder
	last, applied := 0, 0
	for _, fix := range sorted {
		if fix.Start < last || fix.Start > fix.End || fix.End > len(text) {
			continue
		}
		b.WriteString(text[last:fix.Start])
		b.WriteString(fix.Text)
		last = fix.End
		applied++
	}
	b.WriteString(text[last:])
	return b.String(), applied
}
