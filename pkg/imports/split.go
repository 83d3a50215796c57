package imports

import "github.com/siyuan-infoblox/pretty-import/pkg/config"

// HasInlineTypes reports whether any specifier carries an inline `type` marker
func HasInlineTypes(r *Record) bool {
	if r.IsTypeOnly {
		return false
	}
	for _, spec := range r.Specifiers {
		if spec.IsType {
			return true
		}
	}
	return false
}

// IsMixed reports whether inline type specifiers sit next to value bindings
func IsMixed(r *Record) bool {
	if !HasInlineTypes(r) {
		return false
	}
	for _, spec := range r.Specifiers {
		if !spec.IsType {
			return true
		}
	}
	return false
}

// Split separates the inline type specifiers of a record into a type-only
// statement. The value statement is nil when every specifier was a type.
// Records without inline types are returned unchanged as the value statement.
func Split(r *Record, cfg config.Config) (typeRecord, valueRecord *Record) {
	if !HasInlineTypes(r) {
		return nil, r
	}

	var typeSpecs, valueSpecs []Specifier
	for _, spec := range r.Specifiers {
		if spec.IsType {
			spec.IsType = false
			typeSpecs = append(typeSpecs, spec)
		} else {
			valueSpecs = append(valueSpecs, spec)
		}
	}

	typeRecord = &Record{
		Source:     r.Source,
		Specifiers: typeSpecs,
		IsTypeOnly: true,
		Quote:      r.Quote,
		Attributes: r.Attributes,
		Leading:    r.Leading,
		Span:       r.Span,
		Extent:     r.Extent,
	}
	prepare(typeRecord, cfg)

	if len(valueSpecs) == 0 {
		typeRecord.Trailing = r.Trailing
		return typeRecord, nil
	}

	valueRecord = &Record{
		Source:     r.Source,
		Specifiers: valueSpecs,
		Quote:      r.Quote,
		Attributes: r.Attributes,
		Trailing:   r.Trailing,
		Span:       r.Span,
		Extent:     r.Extent,
	}
	prepare(valueRecord, cfg)
	return typeRecord, valueRecord
}

// Normalize replaces every record carrying inline type specifiers with its
// split form, type statement first. Other records are kept as is.
func Normalize(records []*Record, cfg config.Config) []*Record {
	normalized := make([]*Record, 0, len(records))
	for _, r := range records {
		typeRecord, valueRecord := Split(r, cfg)
		if typeRecord != nil {
			normalized = append(normalized, typeRecord)
		}
		if valueRecord != nil {
			normalized = append(normalized, valueRecord)
		}
	}
	return normalized
}
