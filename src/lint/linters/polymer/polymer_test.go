package polymer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofmeright/uxlint/src/lint"
)

var (
	badFile  = filepath.Join("testdata", "bad-component.html")
	goodFile = filepath.Join("testdata", "good-component.html")
)

func opts(lang string, settings map[string]any) lint.LinterOptions {
	if settings == nil {
		settings = map[string]any{}
	}
	return lint.LinterOptions{Language: lang, Settings: settings}
}

func codes(res []lint.Result) []string {
	out := make([]string, 0, len(res))
	for _, r := range res {
		out = append(out, r.Code)
	}
	return out
}

func checkCode(t *testing.T, code string) []lint.Result {
	t.Helper()
	res, err := New().CheckCode(context.Background(), code, opts("", nil))
	require.NoError(t, err)
	return res
}

func TestCheckBadComponent(t *testing.T) {
	res, err := New().Check(context.Background(), []string{badFile}, opts("", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"component-name-matches-filename", "style-inside-template", "icon-titles"}, codes(res))

	for _, r := range res {
		require.NoError(t, r.Validate())
		assert.Equal(t, lint.TypeError, r.Type)
		assert.Equal(t, badFile, r.File)
		assert.Empty(t, r.Evidence)
	}
	assert.Equal(t, "Component name other-name does not match filename bad-component", res[0].Description)
	assert.Equal(t, 4, res[0].Line)
	assert.Equal(t, 5, res[1].Line)
	assert.Equal(t, 2, res[1].Character)
	assert.Equal(t, "Icon has no title attribute: jha-icon-close", res[2].Description)
	assert.Equal(t, 9, res[2].Line)
	assert.Equal(t, 3, res[2].Character)
}

func TestCheckGoodComponents(t *testing.T) {
	res, err := New().Check(context.Background(), []string{filepath.Join("testdata", "good-*.html")}, opts("", nil))
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.NotNil(t, res)
}

func TestCheckIgnoresNonComponents(t *testing.T) {
	res, err := New().Check(context.Background(), []string{filepath.Join("testdata", "plain.html")}, opts("", nil))
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestCheckOnlyHTMLExtension(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(badFile)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad-component.htm"), data, 0o644))

	res, err := New().Check(context.Background(), []string{filepath.Join(dir, "*")}, opts("", nil))
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestRuleSelection(t *testing.T) {
	off := map[string]any{"rules": map[string]any{
		"component-name-matches-filename": false,
		"style-inside-template":           false,
	}}
	res, err := New().Check(context.Background(), []string{badFile}, opts("", off))
	require.NoError(t, err)
	assert.Empty(t, res)

	only := map[string]any{"rules": map[string]any{
		"component-name-matches-filename": false,
		"style-inside-template":           true,
	}}
	res, err = New().Check(context.Background(), []string{badFile}, opts("", only))
	require.NoError(t, err)
	assert.Equal(t, []string{"style-inside-template"}, codes(res))
}

func TestUnknownRule(t *testing.T) {
	_, err := New().CheckCode(context.Background(), "<dom-module></dom-module>",
		opts("", map[string]any{"rules": map[string]any{"no-such-rule": true}}))
	assert.ErrorContains(t, err, "no-such-rule")
}

func TestCheckCode(t *testing.T) {
	code, err := os.ReadFile(badFile)
	require.NoError(t, err)

	res := checkCode(t, string(code))
	assert.Equal(t, []string{"style-inside-template", "icon-titles"}, codes(res))
	for _, r := range res {
		assert.Empty(t, r.File)
	}

	res, err = New().CheckCode(context.Background(), string(code), opts("javascript", nil))
	require.NoError(t, err)
	assert.Empty(t, res)

	res, err = New().CheckCode(context.Background(), string(code), opts("html", nil))
	require.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestAutoBinding(t *testing.T) {
	code := "<dom-module id=\"x-a\">\n<template>\n<p title=\"{{tip}}\">{{name}}</p>\n</template>\n</dom-module>\n"
	res := checkCode(t, code)
	require.Len(t, res, 2)
	assert.Equal(t, "no-auto-binding", res[0].Code)
	assert.Equal(t, 4, res[0].Character)
	assert.Equal(t, "Auto binding {{name}} is not allowed; use one-way [[...]] binding", res[1].Description)
	assert.Equal(t, 20, res[1].Character)
}

func TestImports(t *testing.T) {
	code := "<link rel=\"import\" href=\"../x-unused/x-unused.html\">\n" +
		"<dom-module id=\"x-a\">\n<template>\n<x-missing></x-missing>\n<dom-repeat></dom-repeat>\n<x-a></x-a>\n</template>\n</dom-module>\n"
	res := checkCode(t, code)
	assert.Equal(t, []string{"no-unused-import", "no-missing-import"}, codes(res))
	assert.Equal(t, "Imported element x-unused is not used", res[0].Description)
	assert.Equal(t, "Custom element x-missing is used but not imported", res[1].Description)
	assert.Equal(t, 4, res[1].Line)
}

func TestOneComponent(t *testing.T) {
	res := checkCode(t, "<dom-module id=\"x-a\"></dom-module>\n<dom-module id=\"x-b\"></dom-module>\n")
	require.Len(t, res, 1)
	assert.Equal(t, "one-component", res[0].Code)
	assert.Equal(t, 2, res[0].Line)
}

func TestDisableDirectives(t *testing.T) {
	code := "<dom-module id=\"x-a\">\n" +
		"<!-- bplint-disable style-inside-template -->\n" +
		"<style></style>\n" +
		"<!-- bplint-enable style-inside-template -->\n" +
		"<style></style>\n" +
		"</dom-module>\n"
	res := checkCode(t, code)
	require.Len(t, res, 1)
	assert.Equal(t, 5, res[0].Line)

	res = checkCode(t, "<!-- bplint-disable -->\n<dom-module id=\"x-a\">\n<style></style>\n</dom-module>\n")
	assert.Empty(t, res)
}

func TestFixCodeIsIdentity(t *testing.T) {
	out, err := New().FixCode(context.Background(), "<dom-module>", opts("", nil))
	require.NoError(t, err)
	assert.Equal(t, "<dom-module>", out)
}
