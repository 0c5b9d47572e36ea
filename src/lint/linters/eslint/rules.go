package eslint

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sofmeright/uxlint/src/lint"
)

// problem is a rule finding located by byte offset in the linted text.
type problem struct {
	offset  int
	message string
	fix     *Fix
}

// jsSource is the text a rule inspects.
type jsSource struct {
	text  string
	lines *lint.LineIndex
	// embedded is set for <script> blocks inside HTML, where the final
	// line holds the indentation of the closing tag.
	embedded bool
}

// lastLine returns the number of the last line that holds content.
func (s *jsSource) lastLine() int {
	n := s.lines.Lines()
	if n > 1 && s.lines.Line(n) == "" {
		n--
	}
	if s.embedded && n > 1 && strings.TrimSpace(s.lines.Line(n)) == "" {
		n--
	}
	return n
}

type rule struct {
	id       string
	severity int
	check    func(s *jsSource, opts map[string]any) []problem
}

// builtinRules is ordered; messages on the same position keep this order.
var builtinRules = []rule{
	{id: "no-trailing-spaces", severity: severityError, check: checkTrailingSpaces},
	{id: "eol-last", severity: severityError, check: checkEOLLast},
	{id: "no-multiple-empty-lines", severity: severityError, check: checkMultipleEmptyLines},
	{id: "no-mixed-spaces-and-tabs", severity: severityError, check: checkMixedSpacesAndTabs},
	{id: "no-debugger", severity: severityError, check: checkDebugger},
	{id: "no-console", severity: severityWarn, check: checkConsole},
	{id: "no-irregular-whitespace", severity: severityError, check: checkIrregularWhitespace},
	{id: "unicode-bidi", severity: severityError, check: checkBidi},
}

func checkTrailingSpaces(s *jsSource, _ map[string]any) []problem {
	var out []problem
	for n := 1; n <= s.lastLine(); n++ {
		line := s.lines.Line(n)
		trimmed := strings.TrimRight(line, " \t")
		if len(trimmed) == len(line) {
			continue
		}
		start := s.lines.LineStart(n) + len(trimmed)
		end := s.lines.LineStart(n) + len(line)
		out = append(out, problem{
			offset:  start,
			message: "Trailing spaces not allowed.",
			fix:     &Fix{Range: [2]int{start, end}, Text: ""},
		})
	}
	return out
}

func checkEOLLast(s *jsSource, _ map[string]any) []problem {
	if s.embedded || s.text == "" || strings.HasSuffix(s.text, "\n") {
		return nil
	}
	end := len(s.text)
	return []problem{{
		offset:  end,
		message: "Newline required at end of file but not found.",
		fix:     &Fix{Range: [2]int{end, end}, Text: "\n"},
	}}
}

func checkMultipleEmptyLines(s *jsSource, opts map[string]any) []problem {
	maxBlank := 2
	switch v := opts["max"].(type) {
	case int:
		maxBlank = v
	case float64:
		maxBlank = int(v)
	}

	var out []problem
	last := s.lastLine()
	run := 0
	for n := 1; n <= last+1; n++ {
		if n <= last && strings.TrimSpace(s.lines.Line(n)) == "" {
			run++
			continue
		}
		if run > maxBlank {
			first := n - run + maxBlank
			start := s.lines.LineStart(first)
			end := s.lines.LineStart(n)
			if n > last {
				end = s.lines.LineStart(last) + len(s.lines.Line(last))
				if end < start {
					end = start
				}
			}
			out = append(out, problem{
				offset:  start,
				message: fmt.Sprintf("More than %d blank lines not allowed.", maxBlank),
				fix:     &Fix{Range: [2]int{start, end}, Text: ""},
			})
		}
		run = 0
	}
	return out
}

func checkMixedSpacesAndTabs(s *jsSource, _ map[string]any) []problem {
	var out []problem
	for n := 1; n <= s.lastLine(); n++ {
		line := s.lines.Line(n)
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		rest := line[len(indent):]
		if !strings.Contains(indent, " ") || !strings.Contains(indent, "\t") {
			continue
		}
		// Tab indentation followed by a single space aligns JSDoc bodies.
		if strings.HasPrefix(rest, "*") && strings.HasSuffix(indent, "\t ") {
			continue
		}
		out = append(out, problem{
			offset:  s.lines.LineStart(n),
			message: "Mixed spaces and tabs.",
		})
	}
	return out
}

var (
	debuggerRe = regexp.MustCompile(`(^|[^\w$.])debugger\s*(;|$)`)
	consoleRe  = regexp.MustCompile(`(^|[^\w$.])console\s*\.\s*[\w$]+\s*\(`)
)

// codePart strips a trailing line comment, ignoring "//" inside quotes.
func codePart(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return line[:i]
		}
	}
	return line
}

func matchLines(s *jsSource, re *regexp.Regexp, message string) []problem {
	var out []problem
	for n := 1; n <= s.lastLine(); n++ {
		code := codePart(s.lines.Line(n))
		if strings.HasPrefix(strings.TrimSpace(code), "*") {
			continue
		}
		loc := re.FindStringSubmatchIndex(code)
		if loc == nil {
			continue
		}
		// Skip the leading boundary character, if any.
		out = append(out, problem{
			offset:  s.lines.LineStart(n) + loc[3],
			message: message,
		})
	}
	return out
}

func checkDebugger(s *jsSource, _ map[string]any) []problem {
	return matchLines(s, debuggerRe, "Unexpected 'debugger' statement.")
}

func checkConsole(s *jsSource, _ map[string]any) []problem {
	return matchLines(s, consoleRe, "Unexpected console statement.")
}

// irregularWhitespace lists the characters ESLint treats as irregular.
var irregularWhitespace = map[rune]string{
	'\u000B': "line tabulation",
	'\u000C': "form feed",
	'\u00A0': "no-break space",
	'\u0085': "next line",
	'\u1680': "ogham space mark",
	'\u180E': "mongolian vowel separator",
	'\u2000': "en quad",
	'\u2001': "em quad",
	'\u2002': "en space",
	'\u2003': "em space",
	'\u2004': "three-per-em space",
	'\u2005': "four-per-em space",
	'\u2006': "six-per-em space",
	'\u2007': "figure space",
	'\u2008': "punctuation space",
	'\u2009': "thin space",
	'\u200A': "hair space",
	'\u200B': "zero width space",
	'\u2028': "line separator",
	'\u2029': "paragraph separator",
	'\u202F': "narrow no-break space",
	'\u205F': "medium mathematical space",
	'\u3000': "ideographic space",
	'\uFEFF': "zero width no-break space",
}

func checkIrregularWhitespace(s *jsSource, _ map[string]any) []problem {
	var out []problem
	for i, r := range s.text {
		// A leading byte order mark is allowed.
		if i == 0 && r == '\uFEFF' {
			continue
		}
		if name, ok := irregularWhitespace[r]; ok {
			out = append(out, problem{
				offset:  i,
				message: fmt.Sprintf("Irregular whitespace not allowed: %s (U+%04X).", name, r),
			})
		}
	}
	return out
}

// checkBidi flags bidirectional control characters, which can make source
// render differently from how it parses.
func checkBidi(s *jsSource, _ map[string]any) []problem {
	var out []problem
	for i := 0; i < len(s.text); {
		r, size := utf8.DecodeRuneInString(s.text[i:])
		if name := bidiName(r); name != "" {
			out = append(out, problem{
				offset:  i,
				message: fmt.Sprintf("Bidirectional control character not allowed: %s (U+%04X).", name, r),
			})
		}
		i += size
	}
	return out
}

func bidiName(r rune) string {
	switch r {
	case '\u202A':
		return "left-to-right embedding"
	case '\u202B':
		return "right-to-left embedding"
	case '\u202C':
		return "pop directional formatting"
	case '\u202D':
		return "left-to-right override"
	case '\u202E':
		return "right-to-left override"
	case '\u2066':
		return "left-to-right isolate"
	case '\u2067':
		return "right-to-left isolate"
	case '\u2068':
		return "first strong isolate"
	case '\u2069':
		return "pop directional isolate"
	}
	return ""
}
