// Package eslint adapts a JavaScript linter to the lint.Linter contract.
// The in-process Builtin engine is used unless the "command" setting names
// an external eslint binary.
package eslint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sofmeright/uxlint/src/lint"
)

// Name is the plugin name on every result.
const Name = "eslint"

// placeholderHTML is the filename used when inline HTML is linted, so the
// engine extracts <script> blocks.
const placeholderHTML = "[placeholder].html"

var (
	extensions = []string{".htm", ".html", ".js"}
	languages  = []string{"html", "javascript"}
)

// Linter is the eslint adapter.
type Linter struct {
	// Engine overrides the engine choice; nil means Builtin unless a
	// "command" setting is present.
	Engine Engine
}

// New returns an adapter using the default engine selection.
func New() *Linter { return &Linter{} }

func (l *Linter) Name() string         { return Name }
func (l *Linter) DefaultEnabled() bool { return true }

// engine picks the engine for one call.
func (l *Linter) engine(opts lint.LinterOptions) Engine {
	if cmd := opts.Strings("command"); len(cmd) > 0 {
		if len(cmd) == 1 {
			cmd = strings.Fields(cmd[0])
		}
		if len(cmd) > 0 {
			return &Exec{Command: cmd, Args: opts.Strings("args"), Dir: opts.String("cwd")}
		}
	}
	if l.Engine != nil {
		return l.Engine
	}
	return &Builtin{}
}

// Check lints .js and .html files.
func (l *Linter) Check(ctx context.Context, patterns []string, opts lint.LinterOptions) ([]lint.Result, error) {
	results, err := l.lintFiles(ctx, patterns, opts, false)
	if err != nil {
		return nil, err
	}
	return toResults(results, false), nil
}

// CheckCode lints inline JavaScript, or the scripts inside inline HTML.
func (l *Linter) CheckCode(ctx context.Context, code string, opts lint.LinterOptions) ([]lint.Result, error) {
	if !opts.AcceptsLanguage(languages...) {
		return []lint.Result{}, nil
	}
	fr, err := l.engine(opts).LintText(ctx, code, textFilename(opts), opts.Settings, false)
	if err != nil {
		return nil, err
	}
	return toResults([]FileResult{fr}, true), nil
}

// Fix writes corrected contents back to each changed file and returns the
// problems that remain.
func (l *Linter) Fix(ctx context.Context, patterns []string, opts lint.LinterOptions) ([]lint.Result, error) {
	results, err := l.lintFiles(ctx, patterns, opts, true)
	if err != nil {
		return nil, err
	}
	for _, fr := range results {
		if fr.Output == nil {
			continue
		}
		if err := writeFixed(fr.FilePath, *fr.Output); err != nil {
			return nil, err
		}
	}
	return toResults(results, false), nil
}

// FixCode returns code with fixes applied, or code unchanged when there
// was nothing to fix.
func (l *Linter) FixCode(ctx context.Context, code string, opts lint.LinterOptions) (string, error) {
	if !opts.AcceptsLanguage(languages...) {
		return code, nil
	}
	fr, err := l.engine(opts).LintText(ctx, code, textFilename(opts), opts.Settings, true)
	if err != nil {
		return "", err
	}
	if fr.Output != nil {
		return *fr.Output, nil
	}
	return code, nil
}

func (l *Linter) lintFiles(ctx context.Context, patterns []string, opts lint.LinterOptions, fix bool) ([]FileResult, error) {
	files, err := lint.ReadFiles(ctx, patterns, opts.Collect)
	if err != nil {
		return nil, err
	}
	kept := files[:0]
	for _, f := range files {
		if hasExtension(f.Path) {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return nil, nil
	}
	return l.engine(opts).LintFiles(ctx, kept, opts.Settings, fix)
}

func textFilename(opts lint.LinterOptions) string {
	if opts.Language == "html" {
		return placeholderHTML
	}
	return ""
}

func hasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// toResults flattens engine output. With inline set, results carry no
// file. Evidence is the engine's fixed output, when it produced one.
func toResults(files []FileResult, inline bool) []lint.Result {
	out := []lint.Result{}
	for _, fr := range files {
		file := fr.FilePath
		if inline {
			file = ""
		}
		evidence := ""
		if fr.Output != nil {
			evidence = *fr.Output
		}
		for _, m := range fr.Messages {
			code := m.RuleID
			if code == "" {
				code = lint.NoRuleCode
			}
			out = append(out, lint.Result{
				Plugin:      Name,
				Type:        lint.SeverityToType(m.Severity, m.Fatal),
				Code:        code,
				Description: m.Message,
				Evidence:    evidence,
				File:        file,
				Line:        lint.OneBased(m.Line),
				Character:   lint.OneBased(m.Column),
			})
		}
	}
	return out
}

func writeFixed(path, contents string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("writing fixes to %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing fixes to %s: %w", path, err)
	}
	return nil
}
