package lint

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Type is the normalized severity of a result.
type Type string

const (
	TypeError   Type = "error"
	TypeWarning Type = "warning"
)

// NoRuleCode is used for findings the engine reports without a rule id,
// such as fatal parse errors.
const NoRuleCode = "(error)"

// errorSeverity is the numeric severity at or above which a finding is an error.
const errorSeverity = 2

// SeverityToType collapses a graded engine severity onto Type.
// Fatal findings are always errors.
func SeverityToType(severity int, fatal bool) Type {
	if fatal || severity >= errorSeverity {
		return TypeError
	}
	return TypeWarning
}

// Result is the canonical finding shape every linter produces.
// An empty File means the input was inline text; an empty Evidence means
// the engine supplied none. Both encode as JSON null.
type Result struct {
	Plugin      string
	Type        Type
	Code        string
	Description string
	Evidence    string
	File        string
	Line        int
	Character   int
}

type resultJSON struct {
	Plugin      string  `json:"plugin"`
	Type        Type    `json:"type"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Evidence    *string `json:"evidence"`
	File        *string `json:"file"`
	Line        int     `json:"line"`
	Character   int     `json:"character"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// MarshalJSON encodes the result with its original field names.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Plugin:      r.Plugin,
		Type:        r.Type,
		Code:        r.Code,
		Description: r.Description,
		Evidence:    nullable(r.Evidence),
		File:        nullable(r.File),
		Line:        r.Line,
		Character:   r.Character,
	})
}

// UnmarshalJSON decodes a result, mapping null strings to "".
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Result{
		Plugin:      raw.Plugin,
		Type:        raw.Type,
		Code:        raw.Code,
		Description: raw.Description,
		Line:        raw.Line,
		Character:   raw.Character,
	}
	if raw.Evidence != nil {
		r.Evidence = *raw.Evidence
	}
	if raw.File != nil {
		r.File = *raw.File
	}
	return nil
}

// Validate reports every way r violates the record shape.
func (r Result) Validate() error {
	var errs []error
	if r.Plugin == "" {
		errs = append(errs, errors.New("plugin is empty"))
	}
	if r.Type != TypeError && r.Type != TypeWarning {
		errs = append(errs, fmt.Errorf("type %q is not error or warning", r.Type))
	}
	if r.Code == "" {
		errs = append(errs, errors.New("code is empty"))
	}
	if r.Description == "" {
		errs = append(errs, errors.New("description is empty"))
	}
	if r.Line < 1 {
		errs = append(errs, fmt.Errorf("line %d is not 1-based", r.Line))
	}
	if r.Character < 1 {
		errs = append(errs, fmt.Errorf("character %d is not 1-based", r.Character))
	}
	return errors.Join(errs...)
}

// FileInfo is one source file, or inline text when Path is empty.
type FileInfo struct {
	Path     string
	Contents string
}

// OneBased clamps a position that an engine reported as 0 (unknown) to 1.
func OneBased(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
