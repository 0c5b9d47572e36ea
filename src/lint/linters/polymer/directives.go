package polymer

import (
	"strings"

	"github.com/sofmeright/uxlint/src/lint/markup"
)

const (
	disableDirective = "bplint-disable"
	enableDirective  = "bplint-enable"
)

// directive is a bplint comment. An empty rules list applies to every rule.
type directive struct {
	offset  int
	disable bool
	rules   []string
}

func parseDirectives(doc *markup.Document) []directive {
	var out []directive
	for _, tok := range doc.Tokens {
		if tok.Kind != markup.Comment {
			continue
		}
		text := strings.TrimSpace(tok.CommentText())
		var d directive
		switch {
		case strings.HasPrefix(text, disableDirective):
			d.disable = true
			text = text[len(disableDirective):]
		case strings.HasPrefix(text, enableDirective):
			text = text[len(enableDirective):]
		default:
			continue
		}
		// Reject longer words such as "bplint-disabled".
		if text != "" && !strings.ContainsAny(text[:1], " \t\r\n") {
			continue
		}
		d.offset = tok.Offset
		d.rules = strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
		out = append(out, d)
	}
	return out
}

// suppressed reports whether rule is disabled at offset.
func suppressed(directives []directive, rule string, offset int) bool {
	off := false
	for _, d := range directives {
		if d.offset > offset {
			break
		}
		if len(d.rules) == 0 {
			off = d.disable
			continue
		}
		for _, r := range d.rules {
			if r == rule {
				off = d.disable
			}
		}
	}
	return off
}
