package eslint

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sofmeright/uxlint/src/lint"
)

// Engine is the JavaScript linting engine the adapter drives. Results use
// ESLint's JSON formatter schema.
type Engine interface {
	// LintFiles lints each file. With fix set, FileResult.Output holds the
	// corrected text for files that changed; nothing is written to disk.
	LintFiles(ctx context.Context, files []lint.FileInfo, settings map[string]any, fix bool) ([]FileResult, error)
	// LintText lints inline text. filename, when set, selects the parser
	// (".html" lints inline <script> blocks).
	LintText(ctx context.Context, text, filename string, settings map[string]any, fix bool) (FileResult, error)
}

// FileResult is one file's report, as produced by `eslint --format json`.
type FileResult struct {
	FilePath            string    `json:"filePath"`
	Messages            []Message `json:"messages"`
	ErrorCount          int       `json:"errorCount"`
	WarningCount        int       `json:"warningCount"`
	FixableErrorCount   int       `json:"fixableErrorCount"`
	FixableWarningCount int       `json:"fixableWarningCount"`
	Output              *string   `json:"output,omitempty"`
	Source              string    `json:"source,omitempty"`
}

// Message is a single problem. RuleID is empty for fatal parse errors.
type Message struct {
	RuleID    string `json:"ruleId"`
	Severity  int    `json:"severity"`
	Fatal     bool   `json:"fatal,omitempty"`
	Message   string `json:"message"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"endLine,omitempty"`
	EndColumn int    `json:"endColumn,omitempty"`
	Fix       *Fix   `json:"fix,omitempty"`
}

// Fix replaces the byte range [Range[0], Range[1]) with Text.
type Fix struct {
	Range [2]int `json:"range"`
	Text  string `json:"text"`
}

// tally fills in the count fields from Messages.
func (r *FileResult) tally() {
	r.ErrorCount, r.WarningCount, r.FixableErrorCount, r.FixableWarningCount = 0, 0, 0, 0
	for _, m := range r.Messages {
		if m.Severity >= 2 || m.Fatal {
			r.ErrorCount++
			if m.Fix != nil {
				r.FixableErrorCount++
			}
		} else {
			r.WarningCount++
			if m.Fix != nil {
				r.FixableWarningCount++
			}
		}
	}
}

// Severity levels accepted in rule settings.
const (
	severityOff   = 0
	severityWarn  = 1
	severityError = 2
)

// ruleSetting is one entry of the "rules" option, e.g. `2`, `"warn"` or
// `["error", {"max": 1}]`.
type ruleSetting struct {
	Severity int
	Options  map[string]any
}

// parseRules reads the "rules" option. Unknown rule names are kept so
// that an external engine can receive them.
func parseRules(raw map[string]any) (map[string]ruleSetting, error) {
	out := make(map[string]ruleSetting, len(raw))
	for name, v := range raw {
		rs, err := parseRuleSetting(v)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", name, err)
		}
		out[name] = rs
	}
	return out, nil
}

func parseRuleSetting(v any) (ruleSetting, error) {
	switch t := v.(type) {
	case []any:
		if len(t) == 0 {
			return ruleSetting{}, fmt.Errorf("empty rule setting")
		}
		rs, err := parseRuleSetting(t[0])
		if err != nil {
			return rs, err
		}
		if len(t) > 1 {
			if opts, ok := t[1].(map[string]any); ok {
				rs.Options = opts
			}
		}
		return rs, nil
	case bool:
		if t {
			return ruleSetting{Severity: severityError}, nil
		}
		return ruleSetting{Severity: severityOff}, nil
	}
	sev, err := parseSeverity(v)
	return ruleSetting{Severity: sev}, err
}

func parseSeverity(v any) (int, error) {
	switch t := v.(type) {
	case int:
		return clampSeverity(t)
	case int64:
		return clampSeverity(int(t))
	case uint64:
		return clampSeverity(int(t))
	case float64:
		return clampSeverity(int(t))
	case string:
		switch strings.ToLower(t) {
		case "off":
			return severityOff, nil
		case "warn", "warning":
			return severityWarn, nil
		case "error":
			return severityError, nil
		}
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, fmt.Errorf("invalid severity %q", t)
		}
		return clampSeverity(n)
	}
	return 0, fmt.Errorf("invalid severity %v", v)
}

func clampSeverity(n int) (int, error) {
	if n < severityOff || n > severityError {
		return 0, fmt.Errorf("severity %d out of range 0-2", n)
	}
	return n, nil
}
