package imports

import (
	"github.com/siyuan-infoblox/pretty-import/pkg/config"
)

// named builds named specifiers; "type X" marks an inline type and "a:b" an alias
func named(names ...string) []Specifier {
	specs := make([]Specifier, 0, len(names))
	for _, name := range names {
		spec := Specifier{Name: name}
		if len(name) > 5 && name[:5] == "type " {
			spec.IsType = true
			spec.Name = name[5:]
		}
		for i := 0; i < len(spec.Name); i++ {
			if spec.Name[i] == ':' {
				spec.Alias = spec.Name[i+1:]
				spec.Name = spec.Name[:i]
				break
			}
		}
		specs = append(specs, spec)
	}
	return specs
}

func defaultSpec(local string) Specifier {
	return Specifier{Name: DefaultName, Alias: local}
}

func namespaceSpec(local string) Specifier {
	return Specifier{Name: NamespaceName, Alias: local}
}

func record(cfg config.Config, source string, specs ...Specifier) *Record {
	r := &Record{Source: source, Specifiers: specs}
	prepare(r, cfg)
	return r
}

func typeRecord(cfg config.Config, source string, specs ...Specifier) *Record {
	r := &Record{Source: source, Specifiers: specs, IsTypeOnly: true}
	prepare(r, cfg)
	return r
}

func sources(records []*Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Source)
	}
	return out
}
