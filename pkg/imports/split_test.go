package imports

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/pretty-import/pkg/config"
)

func TestIsMixed(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name        string
		record      *Record
		inlineTypes bool
		mixed       bool
	}{
		{"plain", record(cfg, "./a", named("a")...), false, false},
		{"all inline types", record(cfg, "./a", named("type A", "type B")...), true, false},
		{"mixed", record(cfg, "./a", named("type A", "b")...), true, true},
		{"type only statement", typeRecord(cfg, "./a", named("A")...), false, false},
		{"default with inline type", record(cfg, "./a", defaultSpec("D"), Specifier{Name: "T", IsType: true}), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			req.Equal(tt.inlineTypes, HasInlineTypes(tt.record))
			req.Equal(tt.mixed, IsMixed(tt.record))
		})
	}
}

func TestSplit(t *testing.T) {
	cfg := config.Default()

	t.Run("untouched without inline types", func(t *testing.T) {
		req := require.New(t)
		r := record(cfg, "./a", named("a")...)
		typeRec, valueRec := Split(r, cfg)
		req.Nil(typeRec)
		req.Same(r, valueRec)
	})

	t.Run("only inline types become a type statement", func(t *testing.T) {
		req := require.New(t)
		r := record(cfg, "./types", named("type B", "type A")...)
		r.Leading = []string{"// types"}
		r.Trailing = "// end"

		typeRec, valueRec := Split(r, cfg)
		req.Nil(valueRec)
		req.NotNil(typeRec)
		req.Equal("import type { A, B } from './types';", Format(typeRec))
		req.Equal([]string{"// types"}, typeRec.Leading)
		req.Equal("// end", typeRec.Trailing)
		req.Equal(TypeLocal, BucketOf(typeRec, cfg))
	})

	t.Run("mixed keeps comments on both sides", func(t *testing.T) {
		req := require.New(t)
		r := record(cfg, "./api", defaultSpec("api"), Specifier{Name: "User", IsType: true}, Specifier{Name: "get"})
		r.Leading = []string{"// api"}
		r.Trailing = "// end"

		typeRec, valueRec := Split(r, cfg)
		req.Equal("import type { User } from './api';", Format(typeRec))
		req.Equal("import api, { get } from './api';", Format(valueRec))
		req.Equal([]string{"// api"}, typeRec.Leading)
		req.Empty(valueRec.Leading)
		req.Equal("// end", valueRec.Trailing)
		req.Empty(typeRec.Trailing)
		req.Equal(Named, valueRec.ImportType)
	})

	t.Run("aliases survive", func(t *testing.T) {
		req := require.New(t)
		r := record(cfg, "./a", named("type A:B", "c:d")...)
		typeRec, valueRec := Split(r, cfg)
		req.Equal("import type { A as B } from './a';", Format(typeRec))
		req.Equal("import { c as d } from './a';", Format(valueRec))
	})
}

func TestNormalize(t *testing.T) {
	req := require.New(t)
	cfg := config.Default()

	plain := record(cfg, "react", defaultSpec("React"))
	mixed := record(cfg, "./a", named("type A", "b")...)
	out := Normalize([]*Record{plain, mixed}, cfg)
	req.Len(out, 3)
	req.Same(plain, out[0])
	req.True(out[1].IsTypeOnly)
	req.False(out[2].IsTypeOnly)
	for _, r := range out {
		req.False(HasInlineTypes(r))
	}
}
