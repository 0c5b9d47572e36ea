// Package secrets reports credentials committed to source files using the
// gitleaks rule set. It is opt-in.
package secrets

import (
	"context"
	"slices"

	"github.com/zricethezav/gitleaks/v8/detect"
	"github.com/zricethezav/gitleaks/v8/report"

	"github.com/sofmeright/uxlint/src/lint"
)

// Name is the plugin name on every result.
const Name = "secrets"

// Linter is the secrets adapter. Findings never carry evidence, so the
// secret itself is not echoed into reports.
type Linter struct{}

// New returns the adapter.
func New() *Linter { return &Linter{} }

func (l *Linter) Name() string         { return Name }
func (l *Linter) DefaultEnabled() bool { return false }

// Check scans every matched file, whatever its type.
func (l *Linter) Check(ctx context.Context, patterns []string, opts lint.LinterOptions) ([]lint.Result, error) {
	files, err := lint.ReadFiles(ctx, patterns, opts.Collect)
	if err != nil {
		return nil, err
	}
	out := []lint.Result{}
	if len(files) == 0 {
		return out, nil
	}
	d, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return nil, err
	}
	ignore := opts.Strings("ignore-rules")
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, toResults(d.DetectBytes([]byte(f.Contents)), f.Path, ignore)...)
	}
	return out, nil
}

// CheckCode scans inline text in any language.
func (l *Linter) CheckCode(_ context.Context, code string, opts lint.LinterOptions) ([]lint.Result, error) {
	d, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return nil, err
	}
	return toResults(d.DetectBytes([]byte(code)), "", opts.Strings("ignore-rules")), nil
}

// Fix reports like Check; secrets have to be rotated, not rewritten.
func (l *Linter) Fix(ctx context.Context, patterns []string, opts lint.LinterOptions) ([]lint.Result, error) {
	return l.Check(ctx, patterns, opts)
}

// FixCode returns code unchanged.
func (l *Linter) FixCode(_ context.Context, code string, _ lint.LinterOptions) (string, error) {
	return code, nil
}

func toResults(hits []report.Finding, file string, ignore []string) []lint.Result {
	out := []lint.Result{}
	for _, h := range hits {
		if slices.Contains(ignore, h.RuleID) {
			continue
		}
		out = append(out, lint.Result{
			Plugin:      Name,
			Type:        lint.TypeError,
			Code:        h.RuleID,
			Description: h.Description,
			File:        file,
			Line:        h.StartLine + 1, // gitleaks lines are 0-indexed
			Character:   column(h),
		})
	}
	return out
}

// column converts a gitleaks start column to 1-based. gitleaks counts the
// preceding newline on every line after the first.
func column(h report.Finding) int {
	col := h.StartColumn
	if h.StartLine > 0 {
		col--
	}
	return lint.OneBased(col)
}
