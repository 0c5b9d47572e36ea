// Package polymer lints Polymer web components: HTML files that define a
// <dom-module>.
package polymer

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sofmeright/uxlint/src/lint"
	"github.com/sofmeright/uxlint/src/lint/markup"
)

// Name is the plugin name on every result.
const Name = "polymer"

var (
	componentFileRe = regexp.MustCompile(`\.html$`)
	domModuleRe     = regexp.MustCompile(`(?i)<dom-module`)
)

// Linter is the polymer adapter. It has no fix capability.
type Linter struct{}

// New returns the adapter.
func New() *Linter { return &Linter{} }

func (l *Linter) Name() string         { return Name }
func (l *Linter) DefaultEnabled() bool { return true }

// Check lints component files.
func (l *Linter) Check(ctx context.Context, patterns []string, opts lint.LinterOptions) ([]lint.Result, error) {
	rules, err := selectRules(opts.Map("rules"))
	if err != nil {
		return nil, err
	}
	files, err := lint.ReadFiles(ctx, patterns, opts.Collect)
	if err != nil {
		return nil, err
	}
	out := []lint.Result{}
	for _, f := range files {
		if !isComponent(f) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, lintComponent(f, rules)...)
	}
	return out, nil
}

// CheckCode lints inline HTML. The filename rule does not apply.
func (l *Linter) CheckCode(_ context.Context, code string, opts lint.LinterOptions) ([]lint.Result, error) {
	if !opts.AcceptsLanguage("html") {
		return []lint.Result{}, nil
	}
	rules, err := selectRules(opts.Map("rules"))
	if err != nil {
		return nil, err
	}
	return lintComponent(lint.FileInfo{Contents: code}, rules), nil
}

// Fix reports like Check; nothing is fixable.
func (l *Linter) Fix(ctx context.Context, patterns []string, opts lint.LinterOptions) ([]lint.Result, error) {
	return l.Check(ctx, patterns, opts)
}

// FixCode returns code unchanged.
func (l *Linter) FixCode(_ context.Context, code string, _ lint.LinterOptions) (string, error) {
	return code, nil
}

func isComponent(f lint.FileInfo) bool {
	return f.Path != "" && componentFileRe.MatchString(f.Path) && domModuleRe.MatchString(f.Contents)
}

// selectRules returns every rule when selection is nil, otherwise only
// the rules whose setting is truthy.
func selectRules(selection map[string]any) ([]rule, error) {
	if selection == nil {
		return allRules, nil
	}
	known := map[string]bool{}
	for _, r := range allRules {
		known[r.id] = true
	}
	for name := range selection {
		if !known[name] {
			return nil, fmt.Errorf("unknown rule %q", name)
		}
	}
	var out []rule
	for _, r := range allRules {
		if truthy(selection[r.id]) {
			out = append(out, r)
		}
	}
	return out, nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	case string:
		return t != "" && !strings.EqualFold(t, "off")
	}
	return true
}

func lintComponent(f lint.FileInfo, rules []rule) []lint.Result {
	out := []lint.Result{}
	if len(rules) == 0 {
		return out
	}
	c := &component{doc: markup.Parse(f.Contents), file: f.Path}
	directives := parseDirectives(c.doc)

	var findings []finding
	for _, r := range rules {
		for _, fd := range r.check(c) {
			if suppressed(directives, r.id, fd.offset) {
				continue
			}
			fd.rule = r.id
			findings = append(findings, fd)
		}
	}
	sort.SliceStable(findings, func(i, j int) bool { return findings[i].offset < findings[j].offset })

	for _, fd := range findings {
		line, col := c.doc.Position(fd.offset)
		out = append(out, lint.Result{
			Plugin:      Name,
			Type:        lint.TypeError,
			Code:        fd.rule,
			Description: fd.message,
			File:        f.Path,
			Line:        lint.OneBased(line),
			Character:   lint.OneBased(col),
		})
	}
	return out
}
