package linters

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofmeright/uxlint/src/lint"
)

func defaultRunner(t *testing.T) *lint.Runner {
	t.Helper()
	selected, err := Default().Select(lint.Selection{})
	require.NoError(t, err)
	return lint.NewRunner(selected...)
}

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{"eslint", "htmlhint", "polymer", "secrets"}, r.Names())

	selected, err := r.Select(lint.Selection{})
	require.NoError(t, err)
	names := make([]string, 0, len(selected))
	for _, l := range selected {
		names = append(names, l.Name())
	}
	assert.Equal(t, []string{"eslint", "htmlhint", "polymer"}, names)
}

func TestGoodComponentIsClean(t *testing.T) {
	res, err := defaultRunner(t).Check(context.Background(),
		[]string{filepath.Join("testdata", "good-component.html")}, lint.Options{})
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestCheckMergesAndSorts(t *testing.T) {
	res, err := defaultRunner(t).Check(context.Background(), []string{filepath.Join("testdata", "bad-*")}, lint.Options{})
	require.NoError(t, err)
	require.NotEmpty(t, res)

	plugins := map[string]bool{}
	for i, r := range res {
		require.NoError(t, r.Validate())
		plugins[r.Plugin] = true
		if i > 0 {
			assert.LessOrEqual(t, lint.Compare(res[i-1], r), 0)
		}
	}
	assert.True(t, plugins["eslint"])
	assert.True(t, plugins["polymer"])
}

func TestFixWritesAndReports(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "bad-javascript.js"))
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join("testdata", "bad-javascript.fixed.js"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bad-javascript.js")
	require.NoError(t, os.WriteFile(path, src, 0o644))

	res, err := defaultRunner(t).Fix(context.Background(), []string{path}, lint.Options{})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "no-console", res[0].Code)
	assert.Equal(t, lint.TypeWarning, res[0].Type)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestFixCodeFoldsThroughLinters(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "bad-javascript.js"))
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join("testdata", "bad-javascript.fixed.js"))
	require.NoError(t, err)

	out, err := defaultRunner(t).FixCode(context.Background(), string(src), lint.Options{Language: "javascript"})
	require.NoError(t, err)
	assert.Equal(t, string(want), out)
}

func TestCheckCodeLanguageGating(t *testing.T) {
	res, err := defaultRunner(t).CheckCode(context.Background(), "<DIV></DIV>", lint.Options{Language: "css"})
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.NotNil(t, res)
}
