// Package config resolves the options used by one analysis pass.
//
// A Config is always fully resolved: Default() supplies every value and
// Resolve overlays caller supplied Overrides (from a config file, CLI flags or
// an editor) on top of it. Nothing in the analysis core reads global state.
package config

import (
	"sort"

	"github.com/pkg/errors"
)

// Severity of a rule
type Severity string

const (
	SeverityOff   Severity = "off"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Rule names
const (
	RuleSeparateTypeImports = "separate-type-imports"
	RuleSortImportNames     = "sort-import-names"
	RuleSortImportGroups    = "sort-import-groups"
)

// Rules lists all rule names in the order they are evaluated
var Rules = []string{RuleSeparateTypeImports, RuleSortImportNames, RuleSortImportGroups}

// Preset names. warn and error are the names the rules were first published
// under and alias recommended and strict.
const (
	PresetRecommended = "recommended"
	PresetStrict      = "strict"
	PresetWarn        = "warn"
	PresetError       = "error"
)

// Config is the fully resolved configuration for one analysis pass
type Config struct {
	LocalPatterns         []string            // path-alias prefixes classified as local patterns
	BuiltinModulePrefixes []string            // prefixes classified as builtin modules
	GroupStyleImports     bool                // collect style-sheet side-effect imports at the bottom
	CaseInsensitive       bool                // compare specifier names case-insensitively
	BareBuiltins          bool                // treat unprefixed Node.js core modules as builtin
	StyleExtensions       []string            // file extensions recognized as style sheets
	Rules                 map[string]Severity // severity per rule
}

// Overrides holds optional values overlaid on the defaults. Nil or empty
// fields leave the underlying value untouched.
type Overrides struct {
	Preset                string              `yaml:"preset" toml:"preset" json:"preset,omitempty"`
	LocalPatterns         []string            `yaml:"localPatterns" toml:"localPatterns" json:"localPatterns,omitempty"`
	BuiltinModulePrefixes []string            `yaml:"builtinModulePrefixes" toml:"builtinModulePrefixes" json:"builtinModulePrefixes,omitempty"`
	GroupStyleImports     *bool               `yaml:"groupStyleImports" toml:"groupStyleImports" json:"groupStyleImports,omitempty"`
	CaseInsensitive       *bool               `yaml:"caseInsensitive" toml:"caseInsensitive" json:"caseInsensitive,omitempty"`
	BareBuiltins          *bool               `yaml:"bareBuiltins" toml:"bareBuiltins" json:"bareBuiltins,omitempty"`
	StyleExtensions       []string            `yaml:"styleExtensions" toml:"styleExtensions" json:"styleExtensions,omitempty"`
	Rules                 map[string]Severity `yaml:"rules" toml:"rules" json:"rules,omitempty"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		LocalPatterns:         []string{},
		BuiltinModulePrefixes: []string{"node:", "bun:"},
		GroupStyleImports:     true,
		CaseInsensitive:       false,
		BareBuiltins:          false,
		StyleExtensions:       []string{".css", ".scss", ".sass", ".less"},
		Rules: map[string]Severity{
			RuleSeparateTypeImports: SeverityError,
			RuleSortImportNames:     SeverityWarn,
			RuleSortImportGroups:    SeverityWarn,
		},
	}
}

var (
	recommendedPreset = Overrides{
		LocalPatterns:         []string{"@/", "~/", "#/"},
		BuiltinModulePrefixes: []string{"node:", "bun:", "deno:"},
		GroupStyleImports:     boolPtr(true),
	}
	strictPreset = Overrides{
		LocalPatterns:         []string{"@/", "~/", "#/"},
		BuiltinModulePrefixes: []string{"node:", "bun:", "deno:"},
		GroupStyleImports:     boolPtr(true),
		CaseInsensitive:       boolPtr(false),
		Rules: map[string]Severity{
			RuleSeparateTypeImports: SeverityError,
			RuleSortImportNames:     SeverityError,
			RuleSortImportGroups:    SeverityError,
		},
	}
)

// presets mirror the shareable configurations published with the rules
var presets = map[string]Overrides{
	PresetRecommended: recommendedPreset,
	PresetWarn:        recommendedPreset,
	PresetStrict:      strictPreset,
	PresetError:       strictPreset,
}

// Presets returns the known preset names, sorted
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve overlays the overrides, in order, on top of Default()
func Resolve(overrides ...Overrides) (Config, error) {
	cfg := Default()
	for _, o := range overrides {
		if o.Preset != "" {
			preset, ok := presets[o.Preset]
			if !ok {
				return Config{}, errors.Errorf("unknown preset %q", o.Preset)
			}
			if err := cfg.apply(preset); err != nil {
				return Config{}, err
			}
		}
		if err := cfg.apply(o); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// MustResolve is Resolve for statically known overrides
func MustResolve(overrides ...Overrides) Config {
	cfg, err := Resolve(overrides...)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) apply(o Overrides) error {
	if o.LocalPatterns != nil {
		c.LocalPatterns = append([]string{}, o.LocalPatterns...)
	}
	if o.BuiltinModulePrefixes != nil {
		c.BuiltinModulePrefixes = append([]string{}, o.BuiltinModulePrefixes...)
	}
	if o.GroupStyleImports != nil {
		c.GroupStyleImports = *o.GroupStyleImports
	}
	if o.CaseInsensitive != nil {
		c.CaseInsensitive = *o.CaseInsensitive
	}
	if o.BareBuiltins != nil {
		c.BareBuiltins = *o.BareBuiltins
	}
	if o.StyleExtensions != nil {
		c.StyleExtensions = append([]string{}, o.StyleExtensions...)
	}
	if len(o.Rules) > 0 {
		rules := make(map[string]Severity, len(c.Rules))
		for name, severity := range c.Rules {
			rules[name] = severity
		}
		for name, severity := range o.Rules {
			if !isRule(name) {
				return errors.Errorf("unknown rule %q", name)
			}
			if !severity.valid() {
				return errors.Errorf("invalid severity %q for rule %q", severity, name)
			}
			rules[name] = severity
		}
		c.Rules = rules
	}
	return nil
}

// Severity returns the configured severity of a rule, off when unknown
func (c Config) Severity(rule string) Severity {
	if severity, ok := c.Rules[rule]; ok {
		return severity
	}
	return SeverityOff
}

// Enabled reports whether a rule runs at all
func (c Config) Enabled(rule string) bool {
	return c.Severity(rule) != SeverityOff
}

func (s Severity) valid() bool {
	switch s {
	case SeverityOff, SeverityWarn, SeverityError:
		return true
	}
	return false
}

func isRule(name string) bool {
	for _, rule := range Rules {
		if rule == name {
			return true
		}
	}
	return false
}

func boolPtr(b bool) *bool {
	return &b
}
