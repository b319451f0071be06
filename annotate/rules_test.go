package annotate_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/oasnote/annotate"
	"go.jacobcolvin.com/oasnote/stringtest"
)

func TestDefaultRules(t *testing.T) {
	t.Parallel()

	table, err := annotate.DefaultRules()
	require.NoError(t, err)

	again, err := annotate.DefaultRules()
	require.NoError(t, err)
	assert.Same(t, table, again)

	assert.Equal(t, webcheckHeader, table.Header())
	assert.Equal(t, 253, table.Len())

	dups := table.Duplicates()
	assert.Len(t, dups, 34)
	assert.Contains(t, dups, "                    type: object")
	assert.Equal(t, 7, countString(dups, "                    items:"))

	f := table.File()
	require.Len(t, f.Rules, table.Len())
	assert.Equal(t, `openapi:\s*3\.0\.0`, f.Rules[0].Pattern)
	assert.Equal(t, "info:", f.Rules[1].Line)
	assert.Len(t, f.Header, 4)
	assert.Equal(t, "OpenAPI 规范文件", f.Header[0])

	rebuilt, err := annotate.NewRuleTable(f.Header, f.Rules)
	require.NoError(t, err)
	assert.Equal(t, table.Header(), rebuilt.Header())
	assert.Equal(t, table.Len(), rebuilt.Len())
	assert.Equal(t, dups, rebuilt.Duplicates())
}

func countString(ss []string, s string) int {
	n := 0

	for _, v := range ss {
		if v == s {
			n++
		}
	}

	return n
}

func TestParseRules(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		wantErr error
		check   func(*testing.T, *annotate.RuleTable)
	}{
		"minimal": {
			input: stringtest.JoinLF(
				"rules:",
				"  - line: \"info:\"",
				"    comments: [信息]",
			),
			check: func(t *testing.T, table *annotate.RuleTable) {
				t.Helper()

				assert.Empty(t, table.Header())
				assert.Equal(t, 1, table.Len())
			},
		},
		"header and pattern": {
			input: stringtest.JoinLF(
				"header:",
				"  - notes",
				"rules:",
				"  - pattern: '  - url: http://localhost:\\d+/api'",
				"    comments:",
				"      - 本地服务器",
				"      - second line",
			),
			check: func(t *testing.T, table *annotate.RuleTable) {
				t.Helper()

				assert.Equal(t, "# notes\n\n", table.Header())
				assert.Equal(t, []string{"本地服务器", "second line"}, table.File().Rules[0].Comments)
			},
		},
		"empty rule list": {
			input: "rules: []",
			check: func(t *testing.T, table *annotate.RuleTable) {
				t.Helper()

				assert.Zero(t, table.Len())
			},
		},
		"not yaml": {
			input:   "rules: [",
			wantErr: annotate.ErrInvalidRules,
		},
		"missing rules": {
			input:   "header: [a]",
			wantErr: annotate.ErrInvalidRules,
		},
		"unknown field": {
			input: stringtest.JoinLF(
				"rules:",
				"  - line: a",
				"    comment: [typo]",
			),
			wantErr: annotate.ErrInvalidRules,
		},
		"wrong type": {
			input: stringtest.JoinLF(
				"rules:",
				"  - line: a",
				"    comments: single",
			),
			wantErr: annotate.ErrInvalidRules,
		},
		"line and pattern": {
			input: stringtest.JoinLF(
				"rules:",
				"  - line: a",
				"    pattern: a",
				"    comments: [x]",
			),
			wantErr: annotate.ErrInvalidRules,
		},
		"neither line nor pattern": {
			input: stringtest.JoinLF(
				"rules:",
				"  - comments: [x]",
			),
			wantErr: annotate.ErrInvalidRules,
		},
		"invalid pattern": {
			input: stringtest.JoinLF(
				"rules:",
				"  - pattern: '(unclosed'",
				"    comments: [x]",
			),
			wantErr: annotate.ErrInvalidRules,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			table, err := annotate.ParseRules([]byte(tc.input))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, table)

				return
			}

			require.NoError(t, err)
			tc.check(t, table)
		})
	}
}

func TestNewRuleTable(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		header  []string
		rules   []annotate.Rule
		wantErr error
	}{
		"valid": {
			header: []string{"a", "b"},
			rules:  []annotate.Rule{{Line: "x:", Comments: []string{"x"}}},
		},
		"no comments": {
			rules:   []annotate.Rule{{Line: "x:"}},
			wantErr: annotate.ErrNoComments,
		},
		"both set": {
			rules:   []annotate.Rule{{Line: "x:", Pattern: "x:", Comments: []string{"x"}}},
			wantErr: annotate.ErrLineOrPattern,
		},
		"neither set": {
			rules:   []annotate.Rule{{Comments: []string{"x"}}},
			wantErr: annotate.ErrLineOrPattern,
		},
		"multi-line target": {
			rules:   []annotate.Rule{{Line: "a:\nb:", Comments: []string{"x"}}},
			wantErr: annotate.ErrInvalidRules,
		},
		"multi-line comment": {
			rules:   []annotate.Rule{{Line: "a:", Comments: []string{"x\ny"}}},
			wantErr: annotate.ErrInvalidRules,
		},
		"multi-line header": {
			header:  []string{"a\nb"},
			wantErr: annotate.ErrInvalidRules,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			table, err := annotate.NewRuleTable(tc.header, tc.rules)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.ErrorIs(t, err, annotate.ErrInvalidRules)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, len(tc.rules), table.Len())
		})
	}
}

func TestNewRuleTableDuplicates(t *testing.T) {
	t.Parallel()

	table, err := annotate.NewRuleTable(nil, []annotate.Rule{
		{Line: "type: object", Comments: []string{"first"}},
		{Line: "items:", Comments: []string{"items"}},
		{Line: "type: object", Comments: []string{"second"}},
		{Line: "type: object", Comments: []string{"third"}},
		{Pattern: "type: object", Comments: []string{"pattern"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, table.Len())
	assert.Equal(t, []string{"type: object", "type: object"}, table.Duplicates())

	f := table.File()
	require.Len(t, f.Rules, 5)
	assert.Equal(t, []string{"first"}, f.Rules[0].Comments)
	assert.Equal(t, "items:", f.Rules[1].Line)
	assert.Equal(t, []string{"second"}, f.Rules[2].Comments)
	assert.Equal(t, []string{"third"}, f.Rules[3].Comments)
	assert.Equal(t, "type: object", f.Rules[4].Pattern)

	a, err := annotate.NewAnnotator(annotate.WithRules(table))
	require.NoError(t, err)

	res := a.Annotate("type: object\nitems:")
	assert.Equal(t, stringtest.JoinLF(
		"# first",
		"# second",
		"# third",
		"# pattern",
		"type: object",
		"# items",
		"items:",
	), res.Content)
	assert.Equal(t, []int{1, 1, 1, 1, 1}, res.Matches)
}

func TestLoadRules(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - line: a\n    comments: [b]\n"), 0o644))

	table, err := annotate.LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	_, err = annotate.LoadRules(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, annotate.ErrReadRules)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, annotate.ErrInvalidRules)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rules: nope\n"), 0o644))

	_, err = annotate.LoadRules(bad)
	require.ErrorIs(t, err, annotate.ErrInvalidRules)
	assert.Contains(t, err.Error(), bad)
}

func TestRuleSchema(t *testing.T) {
	t.Parallel()

	s, err := annotate.RuleSchema()
	require.NoError(t, err)

	out, err := json.Marshal(s)
	require.NoError(t, err)

	var got map[string]any

	require.NoError(t, json.Unmarshal(out, &got))

	props, ok := got["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "header")
	assert.Contains(t, props, "rules")
	assert.Contains(t, got["required"], "rules")
	assert.Equal(t, "oasnote rules", got["title"])
}
