package eslint

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofmeright/uxlint/src/lint"
)

func opts(lang string, settings map[string]any) lint.LinterOptions {
	if settings == nil {
		settings = map[string]any{}
	}
	return lint.LinterOptions{Language: lang, Settings: settings}
}

func TestCheckCodeTrailingSpaces(t *testing.T) {
	res, err := New().CheckCode(context.Background(), "var a = 1;   \n", opts("", nil))
	require.NoError(t, err)
	require.Len(t, res, 1)

	r := res[0]
	assert.Equal(t, Name, r.Plugin)
	assert.Equal(t, lint.TypeError, r.Type)
	assert.Equal(t, "no-trailing-spaces", r.Code)
	assert.Equal(t, 1, r.Line)
	assert.Equal(t, 11, r.Character)
	assert.Empty(t, r.File)
	assert.Empty(t, r.Evidence)
	assert.NoError(t, r.Validate())
}

func TestCheckCodeSkipsOtherLanguages(t *testing.T) {
	res, err := New().CheckCode(context.Background(), "var a = 1;   ", opts("css", nil))
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.NotNil(t, res)
}

func TestCheckCodeParseError(t *testing.T) {
	res, err := New().CheckCode(context.Background(), "var = ;\n", opts("javascript", nil))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, lint.NoRuleCode, res[0].Code)
	assert.Equal(t, lint.TypeError, res[0].Type)
	assert.True(t, strings.HasPrefix(res[0].Description, "Parsing error: "), res[0].Description)
	assert.Equal(t, 1, res[0].Line)
}

func TestCheckCodeSeverities(t *testing.T) {
	res, err := New().CheckCode(context.Background(), "debugger;\nconsole.log(1);\n", opts("", nil))
	require.NoError(t, err)
	require.Len(t, res, 2)

	assert.Equal(t, "no-debugger", res[0].Code)
	assert.Equal(t, lint.TypeError, res[0].Type)
	assert.Equal(t, 1, res[0].Character)

	assert.Equal(t, "no-console", res[1].Code)
	assert.Equal(t, lint.TypeWarning, res[1].Type)
	assert.Equal(t, 2, res[1].Line)
}

func TestCheckCodeRuleOverrides(t *testing.T) {
	settings := map[string]any{"rules": map[string]any{
		"no-console":  "off",
		"no-debugger": []any{"warn"},
	}}
	res, err := New().CheckCode(context.Background(), "debugger;\nconsole.log(1);\n", opts("", settings))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "no-debugger", res[0].Code)
	assert.Equal(t, lint.TypeWarning, res[0].Type)
}

func TestCheckCodeInvalidRuleSetting(t *testing.T) {
	settings := map[string]any{"rules": map[string]any{"no-console": 7}}
	_, err := New().CheckCode(context.Background(), "x;\n", opts("", settings))
	assert.Error(t, err)
}

func TestCheckCodeHTML(t *testing.T) {
	doc := "<script>\nvar a = 1;  \n</script>\n"
	res, err := New().CheckCode(context.Background(), doc, opts("html", nil))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "no-trailing-spaces", res[0].Code)
	assert.Equal(t, 2, res[0].Line)
	assert.Equal(t, 11, res[0].Character)
}

func TestFixCode(t *testing.T) {
	fixed, err := New().FixCode(context.Background(), "var a = 1;   ", opts("", nil))
	require.NoError(t, err)
	assert.Equal(t, "var a = 1;\n", fixed)
}

func TestFixCodeUnchanged(t *testing.T) {
	code := "var a = 1;\n"
	fixed, err := New().FixCode(context.Background(), code, opts("", nil))
	require.NoError(t, err)
	assert.Equal(t, code, fixed)

	fixed, err = New().FixCode(context.Background(), "var a = 1;   ", opts("css", nil))
	require.NoError(t, err)
	assert.Equal(t, "var a = 1;   ", fixed)
}

func TestFixCodeCollapsesBlankLines(t *testing.T) {
	fixed, err := New().FixCode(context.Background(), "a();\n\n\n\n\nb();\n", opts("", nil))
	require.NoError(t, err)
	assert.Equal(t, "a();\n\n\nb();\n", fixed)
}

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.js")
	require.NoError(t, os.WriteFile(bad, []byte("debugger;\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.js"), []byte("var a = 1;\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("debugger;   \n"), 0o644))

	res, err := New().Check(context.Background(), []string{filepath.Join(dir, "*")}, opts("", nil))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, bad, res[0].File)
	assert.Equal(t, "no-debugger", res[0].Code)
}

func TestCheckNoFiles(t *testing.T) {
	res, err := New().Check(context.Background(), []string{filepath.Join(t.TempDir(), "*.js")}, opts("", nil))
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestFixWritesFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fix.js")
	require.NoError(t, os.WriteFile(path, []byte("var a = 1;   \ndebugger;"), 0o600))

	res, err := New().Fix(context.Background(), []string{path}, opts("", nil))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "no-debugger", res[0].Code)
	assert.Equal(t, "var a = 1;\ndebugger;\n", res[0].Evidence)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "var a = 1;\ndebugger;\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

type stubEngine struct {
	text FileResult
}

func (s *stubEngine) LintFiles(_ context.Context, files []lint.FileInfo, _ map[string]any, _ bool) ([]FileResult, error) {
	out := make([]FileResult, 0, len(files))
	for _, f := range files {
		fr := s.text
		fr.FilePath = f.Path
		out = append(out, fr)
	}
	return out, nil
}

func (s *stubEngine) LintText(_ context.Context, _, filename string, _ map[string]any, _ bool) (FileResult, error) {
	fr := s.text
	fr.FilePath = filename
	return fr, nil
}

func TestEngineResultNormalization(t *testing.T) {
	out := "fixed"
	l := &Linter{Engine: &stubEngine{text: FileResult{
		Messages: []Message{
			{Severity: 1, Fatal: true, Message: "boom"},
			{RuleID: "semi", Severity: 1, Message: "Missing semicolon.", Line: 3, Column: 4},
		},
		Output: &out,
	}}}

	res, err := l.CheckCode(context.Background(), "x", opts("", nil))
	require.NoError(t, err)
	require.Len(t, res, 2)

	assert.Equal(t, lint.NoRuleCode, res[0].Code)
	assert.Equal(t, lint.TypeError, res[0].Type)
	assert.Equal(t, 1, res[0].Line)
	assert.Equal(t, 1, res[0].Character)
	assert.Equal(t, "fixed", res[0].Evidence)

	assert.Equal(t, "semi", res[1].Code)
	assert.Equal(t, lint.TypeWarning, res[1].Type)
	assert.Equal(t, 3, res[1].Line)
	assert.Equal(t, 4, res[1].Character)
}

func TestTextFilename(t *testing.T) {
	assert.Equal(t, placeholderHTML, textFilename(opts("html", nil)))
	assert.Empty(t, textFilename(opts("javascript", nil)))
}

func TestEngineSelection(t *testing.T) {
	l := New()
	assert.IsType(t, &Builtin{}, l.engine(opts("", nil)))

	e := l.engine(opts("", map[string]any{"command": "npx eslint", "args": []any{"--no-eslintrc"}}))
	require.IsType(t, &Exec{}, e)
	assert.Equal(t, []string{"npx", "eslint"}, e.(*Exec).Command)
	assert.Equal(t, []string{"--no-eslintrc"}, e.(*Exec).Args)

	stub := &stubEngine{}
	assert.Same(t, stub, (&Linter{Engine: stub}).engine(opts("", nil)))
}
