package imports

import (
	"slices"
	"strings"

	"github.com/siyuan-infoblox/pretty-import/pkg/config"
)

// SectionKind tells how a section was formed
type SectionKind int

const (
	BodySection       SectionKind = iota // a run of value imports between side effects
	SideEffectSection                    // one side-effect import kept in place
	TypeSection                          // all type-only imports
	StyleSection                         // all style-sheet imports
)

// Group holds the records of one bucket, sorted
type Group struct {
	Bucket  Bucket
	Records []*Record
}

// Section is a blank-line delimited block of groups
type Section struct {
	Kind   SectionKind
	Groups []*Group
}

// Records returns the records of all groups in order
func (s *Section) Records() []*Record {
	var records []*Record
	for _, g := range s.Groups {
		records = append(records, g.Records...)
	}
	return records
}

// IsSideEffectOnly reports whether every record of the section is a side-effect import
func (s *Section) IsSideEffectOnly() bool {
	for _, g := range s.Groups {
		for _, r := range g.Records {
			if !r.IsSideEffect {
				return false
			}
		}
	}
	return true
}

// Sectionize partitions prepared records into their canonical sections.
// Mixed records are split first. Side-effect imports outside the style
// section stay where they are relative to the runs around them.
func Sectionize(records []*Record, cfg config.Config) []*Section {
	records = Normalize(records, cfg)

	var typeRecords, styleRecords, body []*Record
	for _, r := range records {
		switch {
		case r.IsTypeOnly:
			typeRecords = append(typeRecords, r)
		case cfg.GroupStyleImports && r.IsSideEffect && IsStyle(r, cfg):
			styleRecords = append(styleRecords, r)
		default:
			body = append(body, r)
		}
	}

	var sections []*Section
	var run []*Record
	flush := func() {
		if len(run) > 0 {
			sections = append(sections, &Section{Kind: BodySection, Groups: GroupRecords(run, cfg)})
			run = nil
		}
	}

	for _, r := range body {
		if r.IsSideEffect {
			flush()
			sections = append(sections, &Section{
				Kind:   SideEffectSection,
				Groups: []*Group{{Bucket: Positional, Records: []*Record{r}}},
			})
			continue
		}
		run = append(run, r)
	}
	flush()

	if len(typeRecords) > 0 {
		sections = append(sections, &Section{Kind: TypeSection, Groups: GroupRecords(typeRecords, cfg)})
	}

	if len(styleRecords) > 0 {
		sections = append(sections, &Section{Kind: StyleSection, Groups: GroupRecords(styleRecords, cfg)})
	}

	return sections
}

// GroupRecords distributes records into buckets and sorts each ranked bucket.
// Groups come out in bucket order.
func GroupRecords(records []*Record, cfg config.Config) []*Group {
	byBucket := make(map[Bucket]*Group)
	for _, r := range records {
		bucket := BucketOf(r, cfg)
		g, ok := byBucket[bucket]
		if !ok {
			g = &Group{Bucket: bucket}
			byBucket[bucket] = g
		}
		g.Records = append(g.Records, r)
	}

	var groups []*Group
	for _, bucket := range append([]Bucket{Positional}, Buckets...) {
		g, ok := byBucket[bucket]
		if !ok {
			continue
		}
		if bucket.IsRanked() {
			slices.SortStableFunc(g.Records, CompareRecords)
		}
		groups = append(groups, g)
	}
	return groups
}

// CompareRecords orders two records of the same group. Records without named
// bindings come first; records with named bindings are ordered by their
// number of names, more first, then by key.
func CompareRecords(a, b *Record) int {
	aNamed, bNamed := a.ImportType == Named, b.ImportType == Named
	if aNamed != bNamed {
		if bNamed {
			return -1
		}
		return 1
	}
	if aNamed {
		if diff := b.NamedCount() - a.NamedCount(); diff != 0 {
			return diff
		}
	}
	return strings.Compare(a.SortKey, b.SortKey)
}

// Flatten returns the records of all sections in rendering order
func Flatten(sections []*Section) []*Record {
	var records []*Record
	for _, s := range sections {
		records = append(records, s.Records()...)
	}
	return records
}
