package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeConfig(t, ".uxlint.yml", `
language: html
verbose: true
requires: ">= 1.0.0"
exclude:
  - "vendor/**"
gitignore: true
linters:
  eslint:
    options:
      rules:
        no-console: "off"
  secrets:
    enabled: true
`)
	cfg, err := LoadFile(path, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "html", cfg.Language)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, ">= 1.0.0", cfg.Requires)
	assert.Equal(t, []string{"vendor/**"}, cfg.Exclude)
	assert.True(t, cfg.Gitignore)
	assert.Equal(t, map[string]any{"rules": map[string]any{"no-console": "off"}}, cfg.Linters["eslint"].Options)
	require.NotNil(t, cfg.Linters["secrets"].Enabled)
	assert.True(t, *cfg.Linters["secrets"].Enabled)
}

func TestLoadFileJSONFlatLayout(t *testing.T) {
	path := writeConfig(t, "opts.json", `{"htmlhint": {"tag-pair": false}, "polymer": {"rules": {"one-component": true}}, "colour": "red"}`)
	cfg, err := LoadFile(path, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"tag-pair": false}, cfg.Linters["htmlhint"].Options)
	assert.Equal(t, map[string]any{"rules": map[string]any{"one-component": true}}, cfg.Linters["polymer"].Options)
	assert.Equal(t, []string{"colour"}, cfg.Unknown)
}

func TestLoadFileHJSON(t *testing.T) {
	path := writeConfig(t, "eslint.hjson", `{
  // rule overrides
  language: javascript
  eslint:
  {
    rules:
    {
      no-console: 0
      eol-last: 2
    }
  }
  exclude: [
    "dist/**"
    "*.min.js"
  ]
}
`)
	cfg, err := LoadFile(path, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "javascript", cfg.Language)
	assert.Equal(t, []string{"dist/**", "*.min.js"}, cfg.Exclude)
	assert.Equal(t, map[string]any{
		"rules": map[string]any{"no-console": float64(0), "eol-last": float64(2)},
	}, cfg.Linters["eslint"].Options)
}

func TestLinterSectionWinsOverFlatLayout(t *testing.T) {
	path := writeConfig(t, "opts.yaml", "eslint:\n  syntax: false\nlinters:\n  eslint:\n    options:\n      syntax: true\n")
	cfg, err := LoadFile(path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"syntax": true}, cfg.Linters["eslint"].Options)
}

func TestLoadFileTOML(t *testing.T) {
	path := writeConfig(t, "uxlint.toml", `
language = "javascript"
exclude = ["dist/**"]

[linters.eslint]
enabled = false

[linters.htmlhint.options]
"doctype-first" = true
`)
	cfg, err := LoadFile(path, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "javascript", cfg.Language)
	assert.Equal(t, []string{"dist/**"}, cfg.Exclude)
	require.NotNil(t, cfg.Linters["eslint"].Enabled)
	assert.False(t, *cfg.Linters["eslint"].Enabled)
	assert.Equal(t, map[string]any{"doctype-first": true}, cfg.Linters["htmlhint"].Options)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"), LoadOptions{})
	assert.ErrorContains(t, err, "reading config")

	bad := writeConfig(t, "bad.yml", "language: [html\n")
	_, err = LoadFile(bad, LoadOptions{})
	assert.ErrorContains(t, err, "parsing config")

	wrong := writeConfig(t, "wrong.yml", "verbose: yes please\nlinters:\n  eslint: 3\n")
	_, err = LoadFile(wrong, LoadOptions{})
	assert.ErrorContains(t, err, "verbose: want a boolean")
	assert.ErrorContains(t, err, "linters.eslint")
}

func TestLoadFileIgnoreErrors(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"), LoadOptions{IgnoreErrors: true})
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestLoadLayersFiles(t *testing.T) {
	first := writeConfig(t, "a.yml", "language: javascript\nexclude: [a]\nlinters:\n  eslint:\n    options: {syntax: false}\n  htmlhint:\n    enabled: false\n")
	second := writeConfig(t, "b.yml", "exclude: [b]\ngitignore: true\nlinters:\n  eslint:\n    options: {command: eslint}\n")

	cfg, err := Load([]string{first, second}, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "javascript", cfg.Language)
	assert.Equal(t, []string{"a", "b"}, cfg.Exclude)
	assert.True(t, cfg.Gitignore)
	assert.Equal(t, map[string]any{"command": "eslint"}, cfg.Linters["eslint"].Options)

	opts := cfg.Options()
	assert.Equal(t, map[string]any{"command": "eslint"}, opts.Linters["eslint"])
	assert.NotContains(t, opts.Linters, "htmlhint")
	assert.True(t, opts.Collect.RespectGitignore)

	assert.Equal(t, map[string]bool{"htmlhint": false}, cfg.Selection().Enabled)
}

func TestLoadWithoutFiles(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(nil, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)

	require.NoError(t, os.WriteFile(DefaultFile, []byte("language: html\n"), 0o644))
	cfg, err = Load(nil, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "html", cfg.Language)
}

func TestValidate(t *testing.T) {
	known := []string{"eslint", "htmlhint", "polymer", "secrets"}

	cfg := New()
	cfg.Linters["jscs"] = LinterConfig{}
	cfg.Unknown = []string{"colour"}
	warnings, err := Validate(cfg, known, "1.2.0")
	require.NoError(t, err)
	assert.Len(t, warnings, 2)
	assert.Contains(t, warnings[1], `unknown linter "jscs"`)

	cfg = New()
	cfg.Requires = ">= 1.0, < 2"
	_, err = Validate(cfg, known, "1.4.2")
	assert.NoError(t, err)

	_, err = Validate(cfg, known, "2.0.0")
	assert.ErrorContains(t, err, "does not satisfy")

	warnings, err = Validate(cfg, known, "dev")
	assert.NoError(t, err)
	assert.Len(t, warnings, 1)

	cfg.Requires = "not a constraint"
	_, err = Validate(cfg, known, "1.0.0")
	assert.ErrorContains(t, err, "invalid constraint")
}
