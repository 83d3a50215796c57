package imports

// Markers used as Specifier.Name for default and namespace bindings
const (
	DefaultName   = "default"
	NamespaceName = "*"
)

// Specifier represents one name bound by an import statement
type Specifier struct {
	Name    string // imported name, DefaultName or NamespaceName
	Alias   string // local name, empty if identical to Name
	IsType  bool   // marked inline with `type`
	SortKey string // derived by Prepare
}

// IsDefault reports whether the specifier binds the default export
func (s Specifier) IsDefault() bool { return s.Name == DefaultName }

// IsNamespace reports whether the specifier binds the whole module
func (s Specifier) IsNamespace() bool { return s.Name == NamespaceName }

// IsNamed reports whether the specifier appears inside braces
func (s Specifier) IsNamed() bool { return !s.IsDefault() && !s.IsNamespace() }

// Local returns the name bound in the importing module
func (s Specifier) Local() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Name
}

// Span is a half-open byte range of the source text
type Span struct {
	Start int
	End   int
}

// Record represents a single import statement
type Record struct {
	Source     string      // module path, without quotes
	Specifiers []Specifier // empty for side-effect imports
	IsTypeOnly bool        // `import type ...`
	Quote      byte        // quote used for the module path, ' if unset
	Attributes string      // import attributes clause, e.g. `with { type: 'json' }`
	EmptyNamed bool        // an empty braced clause, `import type {} from 'x'`
	Leading    []string    // comment lines attached above the statement
	Trailing   string      // comment following the statement on the same line
	Span       Span        // the statement itself
	Extent     Span        // the statement including attached comments

	// Derived by Prepare
	ModuleType   ModuleType
	ImportType   ImportType
	IsSideEffect bool
	SortKey      string
}

// ModuleType classifies where an imported module comes from
type ModuleType int

const (
	Builtin ModuleType = iota
	External
	LocalPattern
	Local
)

func (m ModuleType) String() string {
	switch m {
	case Builtin:
		return "builtin"
	case External:
		return "external"
	case LocalPattern:
		return "local-pattern"
	case Local:
		return "local"
	}
	return "unknown"
}

// ImportType classifies the shape of an import statement's bindings
type ImportType int

const (
	Named ImportType = iota
	Default
	Namespace
	SideEffect
)

func (t ImportType) String() string {
	switch t {
	case Named:
		return "named"
	case Default:
		return "default"
	case Namespace:
		return "namespace"
	case SideEffect:
		return "side-effect"
	}
	return "unknown"
}

// NamedSpecifiers returns the braced specifiers in statement order
func (r *Record) NamedSpecifiers() []Specifier {
	var named []Specifier
	for _, spec := range r.Specifiers {
		if spec.IsNamed() {
			named = append(named, spec)
		}
	}
	return named
}

// NamedCount returns the number of braced specifiers
func (r *Record) NamedCount() int {
	count := 0
	for _, spec := range r.Specifiers {
		if spec.IsNamed() {
			count++
		}
	}
	return count
}

func (r *Record) quote() byte {
	if r.Quote == 0 {
		return '\''
	}
	return r.Quote
}
