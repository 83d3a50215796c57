// Package lint checks the import block of a module against the canonical
// layout and computes the fixes that restore it.
package lint

import (
	"sort"
	"strings"

	"github.com/siyuan-infoblox/pretty-import/pkg/config"
	"github.com/siyuan-infoblox/pretty-import/pkg/imports"
	"github.com/siyuan-infoblox/pretty-import/pkg/parser"
)

// maxFixPasses bounds the fix loop
const maxFixPasses = 10

type file struct {
	text  string
	eol   string // line ending of the source, reused in fix text
	block *parser.Block
	cfg   config.Config
}

type rule struct {
	name  string
	check func(f *file) []Violation
}

var rules = []rule{
	{config.RuleSeparateTypeImports, checkTypeImports},
	{config.RuleSortImportNames, checkImportNames},
	{config.RuleSortImportGroups, checkImportGroups},
}

// Analyze reports the violations of every enabled rule, ordered by position
func Analyze(text string, cfg config.Config) ([]Violation, error) {
	block, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	imports.Prepare(block.Records, cfg)

	f := &file{text: text, eol: lineEnding(text), block: block, cfg: cfg}
	var violations []Violation
	for _, r := range rules {
		if !cfg.Enabled(r.name) {
			continue
		}
		for _, v := range r.check(f) {
			v.Rule = r.name
			v.Severity = cfg.Severity(r.name)
			violations = append(violations, v)
		}
	}

	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Start < violations[j].Start
	})
	return violations, nil
}

// Fix applies the fixes of all violations until none remain
func Fix(text string, cfg config.Config) (string, error) {
	for pass := 0; pass < maxFixPasses; pass++ {
		violations, err := Analyze(text, cfg)
		if err != nil {
			return "", err
		}

		var fixes []Edit
		for _, v := range violations {
			if v.Fix != nil {
				fixes = append(fixes, *v.Fix)
			}
		}

		var applied int
		text, applied = Apply(text, fixes)
		if applied == 0 {
			break
		}
	}
	return text, nil
}

func checkTypeImports(f *file) []Violation {
	var violations []Violation
	for _, r := range f.block.Records {
		if !imports.HasInlineTypes(r) {
			continue
		}

		typeRecord, valueRecord := imports.Split(r, f.cfg)
		id := SeparateTypeImport
		if imports.IsMixed(r) {
			id = MixedImport
		}
		replacement := imports.Format(typeRecord)
		if valueRecord != nil {
			replacement += f.eol + imports.Format(valueRecord)
		}
		violations = append(violations, Violation{
			ID:    id,
			Start: r.Span.Start,
			End:   r.Span.End,
			Fix:   &Edit{Start: r.Span.Start, End: r.Span.End, Text: replacement},
		})
	}
	return violations
}

func checkImportNames(f *file) []Violation {
	var violations []Violation
	for _, r := range f.block.Records {
		if len(r.Specifiers) < 2 || imports.HasInlineTypes(r) {
			continue
		}

		named := r.NamedSpecifiers()
		sorted := imports.SortSpecifiers(named)
		for i := range named {
			if named[i].SortKey != sorted[i].SortKey {
				violations = append(violations, Violation{
					ID:    ImportNamesNotSorted,
					Start: r.Span.Start,
					End:   r.Span.End,
					Fix:   &Edit{Start: r.Span.Start, End: r.Span.End, Text: imports.Format(r)},
				})
				break
			}
		}
	}
	return violations
}

func checkImportGroups(f *file) []Violation {
	records := f.block.Records
	if len(records) <= 1 {
		return nil
	}
	for _, r := range records {
		if imports.HasInlineTypes(r) {
			return nil
		}
	}

	sections := imports.Sectionize(records, f.cfg)
	lines := imports.Layout(sections)
	trailingBlank := f.block.Next >= 0 && !sections[len(sections)-1].IsSideEffectOnly()

	for i, r := range imports.Flatten(sections) {
		if r != records[i] {
			fix := &Edit{Start: f.block.Start, End: f.block.End, Text: imports.Render(sections)}
			if trailingBlank {
				fix.End = f.block.Next
				fix.Text += "\n\n"
			}
			fix.Text = f.lines(fix.Text)
			return []Violation{{
				ID:    ImportGroupsNotSorted,
				Start: records[i].Span.Start,
				End:   records[i].Span.End,
				Fix:   fix,
			}}
		}
	}

	var violations []Violation
	for i := 1; i < len(lines); i++ {
		prev, cur := records[i-1], records[i]
		want := 1
		if lines[i].BlankBefore {
			want = 2
		}
		gap := f.newlines(prev.Extent.End, cur.Extent.Start)
		if gap == want {
			continue
		}

		id := UnexpectedBlankLine
		if want == 2 && gap < 2 {
			id = MissingBlankLine
		}
		violations = append(violations, Violation{
			ID:    id,
			Start: cur.Span.Start,
			End:   cur.Span.End,
			Fix:   &Edit{Start: prev.Extent.End, End: cur.Extent.Start, Text: strings.Repeat(f.eol, want)},
		})
	}

	if last := records[len(records)-1]; trailingBlank && f.newlines(last.Extent.End, f.block.Next) < 2 {
		violations = append(violations, Violation{
			ID:    MissingBlankLine,
			Start: last.Span.Start,
			End:   last.Span.End,
			Fix:   &Edit{Start: last.Extent.End, End: f.block.Next, Text: f.eol + f.eol},
		})
	}
	return violations
}

// lines rewrites the line breaks of generated text to the source's line ending
func (f *file) lines(s string) string {
	if f.eol == "\n" {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\n", f.eol)
}

// lineEnding returns the line ending of the first line of text
func lineEnding(text string) string {
	if i := strings.IndexByte(text, '\n'); i > 0 && text[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// newlines counts the line breaks in text[start:end]
func (f *file) newlines(start, end int) int {
	return strings.Count(f.text[start:end], "\n")
}
