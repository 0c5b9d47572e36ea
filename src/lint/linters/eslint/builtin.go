package eslint

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/dop251/goja/parser"

	"github.com/sofmeright/uxlint/src/lint"
)

// Builtin is the in-process engine: goja's parser for syntax errors plus
// a small set of line-oriented rules.
type Builtin struct{}

// builtinConfig is the resolved engine configuration.
type builtinConfig struct {
	rules  map[string]ruleSetting
	syntax bool
}

func newBuiltinConfig(settings map[string]any) (builtinConfig, error) {
	cfg := builtinConfig{rules: map[string]ruleSetting{}, syntax: true}
	for _, r := range builtinRules {
		cfg.rules[r.id] = ruleSetting{Severity: r.severity}
	}
	if raw, ok := settings["rules"].(map[string]any); ok {
		overrides, err := parseRules(raw)
		if err != nil {
			return cfg, err
		}
		for name, rs := range overrides {
			cfg.rules[name] = rs
		}
	}
	if v, ok := settings["syntax"].(bool); ok {
		cfg.syntax = v
	}
	return cfg, nil
}

// LintFiles lints the given files.
func (b *Builtin) LintFiles(ctx context.Context, files []lint.FileInfo, settings map[string]any, fix bool) ([]FileResult, error) {
	cfg, err := newBuiltinConfig(settings)
	if err != nil {
		return nil, err
	}
	results := make([]FileResult, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fr := lintSource(f.Contents, isHTMLName(f.Path), cfg, fix)
		fr.FilePath = f.Path
		results = append(results, fr)
	}
	return results, nil
}

// LintText lints inline text.
func (b *Builtin) LintText(ctx context.Context, text, filename string, settings map[string]any, fix bool) (FileResult, error) {
	cfg, err := newBuiltinConfig(settings)
	if err != nil {
		return FileResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return FileResult{}, err
	}
	fr := lintSource(text, isHTMLName(filename), cfg, fix)
	fr.FilePath = filename
	return fr, nil
}

// lintSource verifies text, fixing it first when fix is set. Output is
// only set when fixes changed the text.
func lintSource(text string, isHTML bool, cfg builtinConfig, fix bool) FileResult {
	if !fix {
		fr := FileResult{Messages: verify(text, isHTML, cfg), Source: text}
		fr.tally()
		return fr
	}

	current := text
	for pass := 0; pass < maxFixPasses; pass++ {
		fixed, changed := applyFixes(current, verify(current, isHTML, cfg))
		if !changed {
			break
		}
		current = fixed
	}

	fr := FileResult{Messages: verify(current, isHTML, cfg)}
	if current != text {
		fr.Output = &current
	} else {
		fr.Source = text
	}
	fr.tally()
	return fr
}

// verify runs the parser and every enabled rule over text.
func verify(text string, isHTML bool, cfg builtinConfig) []Message {
	doc := lint.NewLineIndex(text)

	var messages []Message
	if isHTML {
		for _, s := range extractScripts(text) {
			messages = append(messages, verifyJS(s.text, s.offset, true, doc, cfg)...)
		}
	} else {
		messages = verifyJS(text, 0, false, doc, cfg)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].Line != messages[j].Line {
			return messages[i].Line < messages[j].Line
		}
		return messages[i].Column < messages[j].Column
	})
	return messages
}

// moduleSyntaxRe detects ES module syntax, which the parser does not accept.
var moduleSyntaxRe = regexp.MustCompile(`(?m)^\s*(import\s*[\w{*'"]|export\s)`)

// verifyJS lints one JavaScript body found at base in the document.
func verifyJS(code string, base int, embedded bool, doc *lint.LineIndex, cfg builtinConfig) []Message {
	src := &jsSource{text: code, lines: lint.NewLineIndex(code), embedded: embedded}

	if cfg.syntax && !moduleSyntaxRe.MatchString(code) {
		if off, msg, ok := parseError(src); ok {
			line, col := doc.Position(base + off)
			return []Message{{
				Severity: severityError,
				Fatal:    true,
				Message:  msg,
				Line:     line,
				Column:   col,
			}}
		}
	}

	var messages []Message
	for _, r := range builtinRules {
		rs := cfg.rules[r.id]
		if rs.Severity == severityOff {
			continue
		}
		for _, p := range r.check(src, rs.Options) {
			line, col := doc.Position(base + p.offset)
			m := Message{
				RuleID:   r.id,
				Severity: rs.Severity,
				Message:  p.message,
				Line:     line,
				Column:   col,
			}
			if p.fix != nil {
				m.Fix = &Fix{
					Range: [2]int{base + p.fix.Range[0], base + p.fix.Range[1]},
					Text:  p.fix.Text,
				}
			}
			messages = append(messages, m)
		}
	}
	return messages
}

// parseError parses src and returns the byte offset and message of the
// first syntax error.
func parseError(src *jsSource) (int, string, bool) {
	_, err := parser.ParseFile(nil, "", src.text, parser.IgnoreRegExpErrors)
	if err == nil {
		return 0, "", false
	}

	line, col, msg := 1, 1, err.Error()
	var list parser.ErrorList
	var single *parser.Error
	switch {
	case errors.As(err, &list) && len(list) > 0:
		line, col, msg = list[0].Position.Line, list[0].Position.Column, list[0].Message
	case errors.As(err, &single):
		line, col, msg = single.Position.Line, single.Position.Column, single.Message
	}
	start := src.lines.LineStart(line)
	off := start + max(col-1, 0)
	if limit := start + len(src.lines.Line(line)); off > limit {
		off = limit
	}
	return off, fmt.Sprintf("Parsing error: %s", msg), true
}
