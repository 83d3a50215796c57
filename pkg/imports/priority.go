package imports

import "github.com/siyuan-infoblox/pretty-import/pkg/config"

// Bucket is a priority group. Buckets are declared in rendering order.
type Bucket int

const (
	// Positional holds side-effect imports that keep their original place
	Positional Bucket = iota - 1

	BuiltinNamed
	BuiltinDefault
	BuiltinNamespace
	ExternalNamed
	ExternalDefault
	LocalPatternNamed
	LocalPatternDefault
	LocalNamed
	LocalDefault
	// Namespace imports of non-builtin modules share one block
	NamespaceGroup
	TypeExternal
	TypeLocalPattern
	TypeLocal
	TypeOther
	Style
)

// Buckets lists every ranked bucket in order
var Buckets = []Bucket{
	BuiltinNamed, BuiltinDefault, BuiltinNamespace,
	ExternalNamed, ExternalDefault,
	LocalPatternNamed, LocalPatternDefault,
	LocalNamed, LocalDefault,
	NamespaceGroup,
	TypeExternal, TypeLocalPattern, TypeLocal, TypeOther,
	Style,
}

var bucketNames = map[Bucket]string{
	Positional:          "positional",
	BuiltinNamed:        "builtin-named",
	BuiltinDefault:      "builtin-default",
	BuiltinNamespace:    "builtin-namespace",
	ExternalNamed:       "external-named",
	ExternalDefault:     "external-default",
	LocalPatternNamed:   "local-pattern-named",
	LocalPatternDefault: "local-pattern-default",
	LocalNamed:          "local-named",
	LocalDefault:        "local-default",
	NamespaceGroup:      "namespace",
	TypeExternal:        "type-external",
	TypeLocalPattern:    "type-local-pattern",
	TypeLocal:           "type-local",
	TypeOther:           "type-other",
	Style:               "style",
}

func (b Bucket) String() string {
	if name, ok := bucketNames[b]; ok {
		return name
	}
	return "unknown"
}

// IsRanked reports whether the bucket takes part in sorting
func (b Bucket) IsRanked() bool {
	return b != Positional
}

// BucketOf assigns a record to its priority bucket
func BucketOf(r *Record, cfg config.Config) Bucket {
	if r.IsSideEffect {
		if cfg.GroupStyleImports && IsStyle(r, cfg) {
			return Style
		}
		return Positional
	}

	if r.IsTypeOnly {
		switch r.ModuleType {
		case External:
			return TypeExternal
		case LocalPattern:
			return TypeLocalPattern
		case Local:
			return TypeLocal
		default:
			return TypeOther
		}
	}

	switch r.ModuleType {
	case Builtin:
		switch r.ImportType {
		case Named:
			return BuiltinNamed
		case Default:
			return BuiltinDefault
		default:
			return BuiltinNamespace
		}
	case External:
		return byImportType(r.ImportType, ExternalNamed, ExternalDefault)
	case LocalPattern:
		return byImportType(r.ImportType, LocalPatternNamed, LocalPatternDefault)
	default:
		return byImportType(r.ImportType, LocalNamed, LocalDefault)
	}
}

func byImportType(t ImportType, named, def Bucket) Bucket {
	switch t {
	case Named:
		return named
	case Default:
		return def
	default:
		return NamespaceGroup
	}
}

// Priority returns the rank of a record's bucket; lower sorts first.
// Positional side-effect imports have no rank and return -1.
func Priority(r *Record, cfg config.Config) int {
	return int(BucketOf(r, cfg))
}
