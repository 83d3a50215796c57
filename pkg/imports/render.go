package imports

import (
	"slices"
	"strings"
)

// SortSpecifiers returns a copy of specs ordered by sort key
func SortSpecifiers(specs []Specifier) []Specifier {
	sorted := slices.Clone(specs)
	slices.SortStableFunc(sorted, func(a, b Specifier) int {
		return strings.Compare(a.SortKey, b.SortKey)
	})
	return sorted
}

// FormatSpecifiers renders the binding list of a statement: default binding,
// namespace binding, then the sorted named bindings in braces.
func FormatSpecifiers(specs []Specifier) string {
	if len(specs) == 1 {
		spec := specs[0]
		switch {
		case spec.IsDefault():
			return spec.Local()
		case spec.IsNamespace():
			return "* as " + spec.Local()
		}
	}

	var defaultPart, namespacePart string
	var named []Specifier
	for _, spec := range specs {
		switch {
		case spec.IsDefault():
			if defaultPart == "" {
				defaultPart = spec.Local()
			}
		case spec.IsNamespace():
			namespacePart = "* as " + spec.Local()
		default:
			named = append(named, spec)
		}
	}

	var parts []string
	if defaultPart != "" {
		parts = append(parts, defaultPart)
	}
	if namespacePart != "" {
		parts = append(parts, namespacePart)
	}
	if len(named) > 0 {
		names := make([]string, 0, len(named))
		for _, spec := range SortSpecifiers(named) {
			names = append(names, formatNamed(spec))
		}
		parts = append(parts, "{ "+strings.Join(names, ", ")+" }")
	}
	return strings.Join(parts, ", ")
}

func formatNamed(spec Specifier) string {
	var b strings.Builder
	if spec.IsType {
		b.WriteString("type ")
	}
	b.WriteString(spec.Name)
	if spec.Alias != "" && spec.Alias != spec.Name {
		b.WriteString(" as ")
		b.WriteString(spec.Alias)
	}
	return b.String()
}

// Format renders a record as a single statement, without attached comments
func Format(r *Record) string {
	var b strings.Builder
	b.WriteString("import ")
	if len(r.Specifiers) > 0 || r.EmptyNamed {
		if r.IsTypeOnly {
			b.WriteString("type ")
		}
		if len(r.Specifiers) > 0 {
			b.WriteString(FormatSpecifiers(r.Specifiers))
		} else {
			b.WriteString("{}")
		}
		b.WriteString(" from ")
	}
	q := r.quote()
	b.WriteByte(q)
	b.WriteString(r.Source)
	b.WriteByte(q)
	if r.Attributes != "" {
		b.WriteByte(' ')
		b.WriteString(r.Attributes)
	}
	b.WriteByte(';')
	return b.String()
}

// FormatWithComments renders a record with its leading and trailing comments
func FormatWithComments(r *Record) string {
	var b strings.Builder
	for _, line := range r.Leading {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(Format(r))
	if r.Trailing != "" {
		b.WriteByte(' ')
		b.WriteString(r.Trailing)
	}
	return b.String()
}

// Line is one record of the canonical layout
type Line struct {
	Record      *Record
	BlankBefore bool // a blank line separates it from the previous record
}

// Layout flattens sections into lines. Groups and sections are separated by
// one blank line, except consecutive in-place side-effect imports which stay
// together.
func Layout(sections []*Section) []Line {
	var lines []Line
	for si, section := range sections {
		for gi, group := range section.Groups {
			for ri, r := range group.Records {
				blank := false
				if ri == 0 && len(lines) > 0 {
					switch {
					case gi > 0:
						blank = true
					case si > 0:
						blank = !(section.Kind == SideEffectSection && sections[si-1].Kind == SideEffectSection)
					}
				}
				lines = append(lines, Line{Record: r, BlankBefore: blank})
			}
		}
	}
	return lines
}

// Render returns the canonical text of the sections, without a final newline
func Render(sections []*Section) string {
	var b strings.Builder
	for i, line := range Layout(sections) {
		if i > 0 {
			b.WriteByte('\n')
			if line.BlankBefore {
				b.WriteByte('\n')
			}
		}
		b.WriteString(FormatWithComments(line.Record))
	}
	return b.String()
}
