// Package htmlhint adapts an HTMLHint-compatible rule engine to the
// lint.Linter contract.
package htmlhint

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
const Name = "htmlhint"

var htmlFileRe = regexp.MustCompile(`\.htm(l?)$`)

// Linter is the htmlhint adapter. It has no fix capability.
type Linter struct{}

// New returns the adapter.
func New() *Linter { return &Linter{} }

func (l *Linter) Name() string         { return Name }
func (l *Linter) DefaultEnabled() bool { return true }

// Check lints .htm and .html files.
func (l *Linter) Check(ctx context.Context, patterns []string, opts lint.LinterOptions) ([]lint.Result, error) {
	cfg, err := parseSettings(opts.Settings)
	if err != nil {
		return nil, err
	}
	files, err := lint.ReadFiles(ctx, patterns, opts.Collect)
	if err != nil {
		return nil, err
	}
	out := []lint.Result{}
	for _, f := range files {
		if !htmlFileRe.MatchString(f.Path) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, lintHTML(f, cfg)...)
	}
	return out, nil
}

// CheckCode lints inline HTML.
func (l *Linter) CheckCode(ctx context.Context, code string, opts lint.LinterOptions) ([]lint.Result, error) {
	if !opts.AcceptsLanguage("html") {
		return []lint.Result{}, nil
	}
	cfg, err := parseSettings(opts.Settings)
	if err != nil {
		return nil, err
	}
	return lintHTML(lint.FileInfo{Contents: code}, cfg), nil
}

// Fix reports like Check; nothing is fixable.
func (l *Linter) Fix(ctx context.Context, patterns []string, opts lint.LinterOptions) ([]lint.Result, error) {
	return l.Check(ctx, patterns, opts)
}

// FixCode returns code unchanged.
func (l *Linter) FixCode(_ context.Context, code string, _ lint.LinterOptions) (string, error) {
	return code, nil
}

// ruleConfig maps rule ids to the message type override, "" keeping the
// rule's own types. Rules absent from the map are off.
type ruleConfig map[string]msgType

// parseSettings reads rule toggles. A rule is set with a boolean, or with
// "error", "warning" or "info" to force the type of its messages. Keys
// that are not rule ids are ignored.
func parseSettings(settings map[string]any) (ruleConfig, error) {
	cfg := ruleConfig{}
	for _, r := range rules {
		if r.enabled {
			cfg[r.id] = ""
		}
	}
	for _, r := range rules {
		v, ok := settings[r.id]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case bool:
			if t {
				cfg[r.id] = ""
			} else {
				delete(cfg, r.id)
			}
		case string:
			switch msgType(strings.ToLower(t)) {
			case typeError, typeWarning, typeInfo:
				cfg[r.id] = msgType(strings.ToLower(t))
			case "off":
				delete(cfg, r.id)
			default:
				return nil, fmt.Errorf("rule %s: invalid setting %q", r.id, t)
			}
		case nil:
			delete(cfg, r.id)
		default:
			return nil, fmt.Errorf("rule %s: invalid setting %v", r.id, v)
		}
	}
	return cfg, nil
}

// verify runs every enabled rule and orders the messages by position.
func verify(doc *markup.Document, cfg ruleConfig) []message {
	var messages []message
	for _, r := range rules {
		override, ok := cfg[r.id]
		if !ok {
			continue
		}
		rep := &reporter{rule: r.id, override: override}
		r.check(doc, rep)
		messages = append(messages, rep.messages...)
	}
	sort.SliceStable(messages, func(i, j int) bool { return messages[i].offset < messages[j].offset })
	return messages
}

func lintHTML(f lint.FileInfo, cfg ruleConfig) []lint.Result {
	doc := markup.Parse(f.Contents)
	out := []lint.Result{}
	for _, m := range verify(doc, cfg) {
		line, col := doc.Position(m.offset)
		typ := lint.TypeWarning
		if m.typ == typeError {
			typ = lint.TypeError
		}
		out = append(out, lint.Result{
			Plugin:      Name,
			Type:        typ,
			Code:        m.rule,
			Description: m.text,
			Evidence:    doc.Lines.Line(line),
			File:        f.Path,
			Line:        lint.OneBased(line),
			Character:   lint.OneBased(col),
		})
	}
	return out
}
