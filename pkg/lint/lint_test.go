package lint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/pretty-import/pkg/config"
)

func recommended() config.Config {
	return config.MustResolve(config.Overrides{Preset: config.PresetRecommended})
}

func ids(violations []Violation) []MessageID {
	var out []MessageID
	for _, v := range violations {
		out = append(out, v.ID)
	}
	return out
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []MessageID
	}{
		{
			name:  "builtin after external",
			input: "import React from 'react';\nimport { readFile } from 'node:fs';\n",
			want:  []MessageID{ImportGroupsNotSorted},
		},
		{
			name:  "names out of order",
			input: "import { helper, Component, $special } from './utils';\n",
			want:  []MessageID{ImportNamesNotSorted},
		},
		{
			name:  "side effect needs a blank line",
			input: "import 'polyfill';\nimport React from 'react';\n",
			want:  []MessageID{MissingBlankLine},
		},
		{
			name:  "type imports after values",
			input: "import type { ReactNode } from 'react';\nimport { useState } from 'react';\nimport type { Config } from './config';\n",
			want:  []MessageID{ImportGroupsNotSorted},
		},
		{
			name:  "mixed statement",
			input: "import { type User, getName } from './utils';\n",
			want:  []MessageID{MixedImport},
		},
		{
			name:  "inline types only",
			input: "import { type User, type Role } from './utils';\n",
			want:  []MessageID{SeparateTypeImport},
		},
		{
			name:  "blank line inside a group",
			input: "import { a } from 'a';\n\nimport { b } from 'b';\n",
			want:  []MessageID{UnexpectedBlankLine},
		},
		{
			name:  "missing blank line before code",
			input: "import { readFile } from 'node:fs';\nimport { writeFile } from 'node:fs';\nreadFile('x');\n",
			want:  []MessageID{MissingBlankLine},
		},
		{
			name:  "side effect block may touch code",
			input: "import 'polyfill';\nimport 'reflect-metadata';\nrun();\n",
		},
		{
			name:  "sorted",
			input: "import { readFile } from 'node:fs';\n\nimport React, { useEffect, useState } from 'react';\n\nimport { cn } from '@/lib/utils';\n\nconst x = 1;\n",
		},
		{
			name:  "groups rule waits for type imports to be separated",
			input: "import { type A, b } from './b';\nimport React from 'react';\n",
			want:  []MessageID{MixedImport},
		},
		{
			name:  "every spacing problem is reported",
			input: "import { readFile } from 'node:fs';\nimport React from 'react';\n\n\nimport { cn } from '@/lib/utils';\n",
			want:  []MessageID{MissingBlankLine, UnexpectedBlankLine},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			violations, err := Analyze(tt.input, recommended())
			req.NoError(err)
			req.Equal(tt.want, ids(violations))
			for _, v := range violations {
				req.NotNil(v.Fix, "%s has no fix", v.ID)
				req.NotEmpty(v.Message())
			}
		})
	}
}

func TestAnalyze_severities(t *testing.T) {
	req := require.New(t)
	input := "import React from 'react';\nimport { b, a } from 'node:fs';\n"

	violations, err := Analyze(input, config.Default())
	req.NoError(err)
	req.Len(violations, 2)
	req.Equal(config.RuleSortImportGroups, violations[0].Rule)
	req.Equal(config.SeverityWarn, violations[0].Severity)
	req.Equal(config.RuleSortImportNames, violations[1].Rule)

	strict := config.MustResolve(config.Overrides{Preset: config.PresetStrict})
	violations, err = Analyze(input, strict)
	req.NoError(err)
	for _, v := range violations {
		req.Equal(config.SeverityError, v.Severity)
	}

	off := config.MustResolve(config.Overrides{Rules: map[string]config.Severity{
		config.RuleSortImportGroups: config.SeverityOff,
	}})
	violations, err = Analyze(input, off)
	req.NoError(err)
	req.Equal([]MessageID{ImportNamesNotSorted}, ids(violations))
}

func TestAnalyze_caseInsensitiveNames(t *testing.T) {
	req := require.New(t)
	input := "import { a, B, c } from 'x';\n"

	violations, err := Analyze(input, config.Default())
	req.NoError(err)
	req.Equal([]MessageID{ImportNamesNotSorted}, ids(violations))

	insensitive := config.MustResolve(config.Overrides{CaseInsensitive: boolPtr(true)})
	violations, err = Analyze(input, insensitive)
	req.NoError(err)
	req.Empty(violations)
}

func TestAnalyze_parseError(t *testing.T) {
	req := require.New(t)
	_, err := Analyze("import { a from 'a';\n", config.Default())
	req.Error(err)
}

func TestFix(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "builtin first",
			input: "import React from 'react';\nimport { readFile } from 'node:fs';\n",
			want:  "import { readFile } from 'node:fs';\n\nimport React from 'react';\n",
		},
		{
			name:  "names",
			input: "import { helper, Component, $special } from './utils';\n",
			want:  "import { $special, Component, helper } from './utils';\n",
		},
		{
			name:  "side effect spacing",
			input: "import 'polyfill';\nimport React from 'react';\n",
			want:  "import 'polyfill';\n\nimport React from 'react';\n",
		},
		{
			name:  "type imports last by origin",
			input: "import type { ReactNode } from 'react';\nimport { useState } from 'react';\nimport type { Config } from './config';\n",
			want:  "import { useState } from 'react';\n\nimport type { ReactNode } from 'react';\n\nimport type { Config } from './config';\n",
		},
		{
			name:  "mixed statement is split and ordered",
			input: "import { type User, getName } from './utils';\n",
			want:  "import { getName } from './utils';\n\nimport type { User } from './utils';\n",
		},
		{
			name:  "blank line before code",
			input: "import b from 'b';\nimport a from 'a';\nconsole.log(a, b);\n",
			want:  "import a from 'a';\nimport b from 'b';\n\nconsole.log(a, b);\n",
		},
		{
			name:  "blank line removed inside a group",
			input: "import { a } from 'a';\n\nimport { b } from 'b';\n",
			want:  "import { a } from 'a';\nimport { b } from 'b';\n",
		},
		{
			name:  "comments move with their import",
			input: "// header\nimport React from 'react';\n// fs helpers\nimport { readFile } from 'node:fs'; // read\n",
			want:  "// header\n// fs helpers\nimport { readFile } from 'node:fs'; // read\n\nimport React from 'react';\n",
		},
		{
			name:  "quotes and attributes are kept",
			input: "import data from \"./data.json\" with { type: 'json' };\nimport { readFile } from \"node:fs\";\n",
			want:  "import { readFile } from \"node:fs\";\n\nimport data from \"./data.json\" with { type: 'json' };\n",
		},
		{
			name:  "default binding named type",
			input: "import type from './type';\nimport b from 'b';\nimport { a } from 'a';\n\ntype(a, b);\n",
			want:  "import { a } from 'a';\n\nimport b from 'b';\n\nimport type from './type';\n\ntype(a, b);\n",
		},
		{
			name:  "empty type clause stays a type import",
			input: "import type {} from './types';\nimport React from 'react';\n\nrun();\n",
			want:  "import React from 'react';\n\nimport type {} from './types';\n\nrun();\n",
		},
		{
			name:  "crlf line endings are kept",
			input: "import React from 'react';\r\nimport { readFile } from 'node:fs';\r\n\r\nrun();\r\n",
			want:  "import { readFile } from 'node:fs';\r\n\r\nimport React from 'react';\r\n\r\nrun();\r\n",
		},
		{
			name:  "crlf spacing and trailing comments",
			input: "import b from 'b'; // bee\r\nimport { a } from 'a';\r\n",
			want:  "import { a } from 'a';\r\n\r\nimport b from 'b'; // bee\r\n",
		},
		{
			name:  "crlf blank line removed inside a group",
			input: "import { a } from 'a';\r\n\r\nimport { b } from 'b';\r\n",
			want:  "import { a } from 'a';\r\nimport { b } from 'b';\r\n",
		},
		{
			name:  "crlf mixed statement",
			input: "import { type User, getName } from './utils';\r\n",
			want:  "import { getName } from './utils';\r\n\r\nimport type { User } from './utils';\r\n",
		},
		{
			name:  "no imports",
			input: "export const a = 1;\n",
			want:  "export const a = 1;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			got, err := Fix(tt.input, recommended())
			req.NoError(err)
			req.Equal(tt.want, got)
		})
	}
}

func TestFix_spacingOnlyTouchesWhitespace(t *testing.T) {
	req := require.New(t)
	input := "import 'a';\nimport { readFile } from 'node:fs';\n\n\n\nimport { writeFile } from 'node:fs/promises';\n"

	violations, err := Analyze(input, recommended())
	req.NoError(err)
	req.NotEmpty(violations)
	for _, v := range violations {
		req.NotEqual(ImportGroupsNotSorted, v.ID)
		req.Empty(strings.TrimSpace(input[v.Fix.Start:v.Fix.End]), "fix %s replaces %q", v.ID, input[v.Fix.Start:v.Fix.End])
	}
}

func TestFix_golden(t *testing.T) {
	inputs, err := filepath.Glob(filepath.Join("testdata", "*.ts*"))
	require.NoError(t, err)

	for _, input := range inputs {
		if strings.HasSuffix(input, ".golden") {
			continue
		}
		t.Run(filepath.Base(input), func(t *testing.T) {
			req := require.New(t)
			src, err := os.ReadFile(input)
			req.NoError(err)
			want, err := os.ReadFile(input + ".golden")
			req.NoError(err)

			got, err := Fix(string(src), recommended())
			req.NoError(err)
			if diff := cmp.Diff(string(want), got); diff != "" {
				t.Errorf("Fix(%s) mismatch (-want +got):\n%s", input, diff)
			}

			again, err := Fix(got, recommended())
			req.NoError(err)
			req.Equal(got, again, "fixing twice must not change the output")

			violations, err := Analyze(got, recommended())
			req.NoError(err)
			req.Empty(violations)
		})
	}
}

func TestApply(t *testing.T) {
	req := require.New(t)

	got, applied := Apply("abcdef", []Edit{
		{Start: 4, End: 5, Text: "E"},
		{Start: 0, End: 3, Text: "X"},
		{Start: 1, End: 2, Text: "overlap"},
	})
	req.Equal("XdEf", got)
	req.Equal(2, applied)

	got, applied = Apply("abc", nil)
	req.Equal("abc", got)
	req.Zero(applied)
}

func TestLocator(t *testing.T) {
	req := require.New(t)
	l := NewLocator("ab\ncd\n\nef")

	req.Equal(Position{Line: 1, Column: 1}, l.Position(0))
	req.Equal(Position{Line: 1, Column: 3}, l.Position(2))
	req.Equal(Position{Line: 2, Column: 1}, l.Position(3))
	req.Equal(Position{Line: 3, Column: 1}, l.Position(6))
	req.Equal(Position{Line: 4, Column: 2}, l.Position(8))
	req.Equal(7, l.LineStart(3))
	req.Equal(7, l.LineStart(10))
}

func boolPtr(b bool) *bool {
	return &b
}
