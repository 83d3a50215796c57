package imports

import (
	"strings"

	"github.com/siyuan-infoblox/pretty-import/pkg/config"
	"github.com/siyuan-infoblox/pretty-import/pkg/std"
)

// Classify determines the module type and import type of a record.
// A type-only import with an empty clause is erased at compile time, so it is
// a named import rather than a side effect.
func Classify(r *Record, cfg config.Config) (ModuleType, ImportType) {
	importType := ClassifyImport(r.Specifiers)
	if importType == SideEffect && r.EmptyNamed && r.IsTypeOnly {
		importType = Named
	}
	return ClassifyModule(r.Source, cfg), importType
}

// ClassifyModule determines where a module path points to.
// Builtin prefixes win over local patterns, local patterns over relative paths.
func ClassifyModule(source string, cfg config.Config) ModuleType {
	for _, prefix := range cfg.BuiltinModulePrefixes {
		if strings.HasPrefix(source, prefix) {
			return Builtin
		}
	}
	if cfg.BareBuiltins && std.IsStandardPackage(source) {
		return Builtin
	}

	for _, pattern := range cfg.LocalPatterns {
		if strings.HasPrefix(source, pattern) {
			return LocalPattern
		}
	}

	if strings.HasPrefix(source, ".") || strings.HasPrefix(source, "/") {
		return Local
	}

	return External
}

// ClassifyImport determines the import type from the bound names.
// A default binding combined with named ones counts as Named.
func ClassifyImport(specs []Specifier) ImportType {
	if len(specs) == 0 {
		return SideEffect
	}

	hasDefault, hasNamed := false, false
	for _, spec := range specs {
		switch {
		case spec.IsNamespace():
			return Namespace
		case spec.IsDefault():
			hasDefault = true
		default:
			hasNamed = true
		}
	}

	if hasDefault && !hasNamed {
		return Default
	}
	return Named
}

// IsStyle reports whether a record is a style-sheet side-effect import
func IsStyle(r *Record, cfg config.Config) bool {
	if len(r.Specifiers) > 0 {
		return false
	}
	for _, ext := range cfg.StyleExtensions {
		if strings.HasSuffix(r.Source, ext) {
			return true
		}
	}
	return false
}

// Prepare derives the classification and sort keys of every record in place
func Prepare(records []*Record, cfg config.Config) {
	for _, r := range records {
		prepare(r, cfg)
	}
}

func prepare(r *Record, cfg config.Config) {
	r.ModuleType, r.ImportType = Classify(r, cfg)
	r.IsSideEffect = r.ImportType == SideEffect

	for i := range r.Specifiers {
		spec := &r.Specifiers[i]
		name := spec.Name
		if spec.IsDefault() && spec.Alias != "" {
			name = spec.Alias
		}
		spec.SortKey = BuildKey(name, cfg.CaseInsensitive)
	}

	r.SortKey = recordKey(r)
}

// recordKey is the key used to order records inside a group
func recordKey(r *Record) string {
	switch r.ImportType {
	case SideEffect:
		return BuildKey(r.Source, false)
	case Default, Namespace:
		for _, spec := range r.Specifiers {
			if (r.ImportType == Default && spec.IsDefault()) || (r.ImportType == Namespace && spec.IsNamespace()) {
				return BuildKey(spec.Local(), false)
			}
		}
	}

	named := SortSpecifiers(r.NamedSpecifiers())
	if len(named) > 0 {
		return BuildKey(named[0].Name, false)
	}
	return BuildKey(r.Source, false)
}
