package htmlhint

import (
	"fmt"
	"strings"

	"github.com/sofmeright/uxlint/src/lint/markup"
)

// msgType is the engine's native message type.
type msgType string

const (
	typeError   msgType = "error"
	typeWarning msgType = "warning"
	typeInfo    msgType = "info"
)

// message is one engine finding.
type message struct {
	rule   string
	typ    msgType
	text   string
	offset int
}

// reporter collects messages for one rule.
type reporter struct {
	rule     string
	override msgType
	messages []message
}

func (r *reporter) report(typ msgType, offset int, format string, args ...any) {
	if r.override != "" {
		typ = r.override
	}
	r.messages = append(r.messages, message{
		rule:   r.rule,
		typ:    typ,
		text:   fmt.Sprintf(format, args...),
		offset: offset,
	})
}

func (r *reporter) error(offset int, format string, args ...any) {
	r.report(typeError, offset, format, args...)
}

func (r *reporter) warn(offset int, format string, args ...any) {
	r.report(typeWarning, offset, format, args...)
}

type rule struct {
	id      string
	enabled bool
	check   func(doc *markup.Document, r *reporter)
}

// rules is ordered; findings on the same position keep this order.
var rules = []rule{
	{id: "tagname-lowercase", enabled: true, check: checkTagnameLowercase},
	{id: "attr-lowercase", enabled: true, check: checkAttrLowercase},
	{id: "attr-value-double-quotes", enabled: true, check: checkAttrDoubleQuotes},
	{id: "attr-no-duplication", enabled: true, check: checkAttrNoDuplication},
	{id: "doctype-first", enabled: false, check: checkDoctypeFirst},
	{id: "tag-pair", enabled: true, check: checkTagPair},
	{id: "id-unique", enabled: true, check: checkIDUnique},
	{id: "src-not-empty", enabled: true, check: checkSrcNotEmpty},
	{id: "title-require", enabled: false, check: checkTitleRequire},
	{id: "banno/doc-lang", enabled: true, check: checkDocLang},
	{id: "banno/link-href", enabled: true, check: checkLinkHref},
	{id: "banno/meta-charset-utf8", enabled: true, check: checkMetaCharset},
}

// voidElements never take an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "basefont": true, "br": true, "col": true,
	"command": true, "embed": true, "frame": true, "hr": true, "img": true,
	"input": true, "isindex": true, "keygen": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

func startTags(doc *markup.Document) []markup.Token {
	var out []markup.Token
	for _, t := range doc.Tokens {
		if t.Kind == markup.StartTag {
			out = append(out, t)
		}
	}
	return out
}

func checkTagnameLowercase(doc *markup.Document, r *reporter) {
	for _, t := range doc.Tokens {
		if (t.Kind == markup.StartTag || t.Kind == markup.EndTag) && t.Name != t.LowerName() {
			r.error(t.Offset, "The html element name of [ %s ] must be in lowercase.", t.Name)
		}
	}
}

func checkAttrLowercase(doc *markup.Document, r *reporter) {
	for _, t := range startTags(doc) {
		for _, a := range t.Attrs {
			if a.Name != strings.ToLower(a.Name) {
				r.error(a.Offset, "The attribute name of [ %s ] must be in lowercase.", a.Name)
			}
		}
	}
}

func checkAttrDoubleQuotes(doc *markup.Document, r *reporter) {
	for _, t := range startTags(doc) {
		for _, a := range t.Attrs {
			if !a.HasValue {
				continue
			}
			if (a.Value != "" && a.Quote != '"') || (a.Value == "" && a.Quote == '\'') {
				r.error(a.Offset, "The value of attribute [ %s ] must be in double quotes.", a.Name)
			}
		}
	}
}

func checkAttrNoDuplication(doc *markup.Document, r *reporter) {
	for _, t := range startTags(doc) {
		seen := map[string]bool{}
		for _, a := range t.Attrs {
			name := strings.ToLower(a.Name)
			if seen[name] {
				r.error(a.Offset, "Duplicate of attribute name [ %s ] was found.", a.Name)
			}
			seen[name] = true
		}
	}
}

func checkDoctypeFirst(doc *markup.Document, r *reporter) {
	for _, t := range doc.Tokens {
		switch t.Kind {
		case markup.Doctype:
			return
		case markup.Comment:
			continue
		case markup.Text:
			if strings.TrimSpace(t.Raw) == "" {
				continue
			}
		}
		r.error(t.Offset, "Doctype must be declared first.")
		return
	}
}

func checkTagPair(doc *markup.Document, r *reporter) {
	var stack []markup.Token
	missing := func(from int) string {
		var b strings.Builder
		for i := len(stack) - 1; i >= from; i-- {
			b.WriteString("</" + stack[i].Name + ">")
		}
		return b.String()
	}
	for _, t := range doc.Tokens {
		switch t.Kind {
		case markup.StartTag:
			if !t.SelfClosing && !voidElements[t.LowerName()] {
				stack = append(stack, t)
			}
		case markup.EndTag:
			pos := -1
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].LowerName() == t.LowerName() {
					pos = i
					break
				}
			}
			if pos < 0 {
				r.error(t.Offset, "Tag must be paired, no start tag: [ %s ]", t.Raw)
				continue
			}
			if pos < len(stack)-1 {
				last := stack[len(stack)-1]
				line, _ := doc.Position(last.Offset)
				r.error(t.Offset, "Tag must be paired, missing: [ %s ], start tag match failed [ %s ] on line %d.",
					missing(pos+1), last.Raw, line)
			}
			stack = stack[:pos]
		}
	}
	if len(stack) > 0 {
		last := stack[len(stack)-1]
		line, _ := doc.Position(last.Offset)
		r.error(len(doc.Source), "Tag must be paired, missing: [ %s ], open tag match failed [ %s ] on line %d.",
			missing(0), last.Raw, line)
	}
}

func checkIDUnique(doc *markup.Document, r *reporter) {
	seen := map[string]bool{}
	for _, t := range startTags(doc) {
		a, ok := t.Attr("id")
		if !ok || a.Value == "" {
			continue
		}
		if seen[a.Value] {
			r.error(a.Offset, "The id value [ %s ] must be unique.", a.Value)
		}
		seen[a.Value] = true
	}
}

func checkSrcNotEmpty(doc *markup.Document, r *reporter) {
	for _, t := range startTags(doc) {
		tag := t.LowerName()
		for _, a := range t.Attrs {
			name := strings.ToLower(a.Name)
			wantsValue := (name == "src" && (tag == "img" || tag == "script" || tag == "embed" || tag == "bgsound" || tag == "iframe")) ||
				(tag == "link" && name == "href") ||
				(tag == "object" && name == "data")
			if wantsValue && a.Value == "" {
				r.error(a.Offset, "The attribute [ %s ] of the tag [ %s ] must have a value.", a.Name, t.Name)
			}
		}
	}
}

func checkTitleRequire(doc *markup.Document, r *reporter) {
	inHead, inTitle, hasTitle := false, false, false
	for _, t := range doc.Tokens {
		switch t.Kind {
		case markup.StartTag:
			switch t.LowerName() {
			case "head":
				inHead = true
			case "title":
				if inHead {
					hasTitle, inTitle = true, true
				}
			}
		case markup.Text:
			if inTitle && strings.TrimSpace(t.Raw) != "" {
				inTitle = false
			}
		case markup.EndTag:
			switch t.LowerName() {
			case "title":
				if inTitle {
					r.error(t.Offset, "<title></title> must not be empty.")
				}
				inTitle = false
			case "head":
				if !hasTitle {
					r.error(t.Offset, "<title></title> must be present in <head> tag.")
				}
				inHead = false
			}
		}
	}
}

func checkDocLang(doc *markup.Document, r *reporter) {
	for _, t := range startTags(doc) {
		if t.LowerName() != "html" {
			continue
		}
		found := false
		for _, a := range t.Attrs {
			if strings.EqualFold(a.Name, "lang") {
				found = true
				if a.Value == "" {
					r.error(a.Offset, `"lang" attribute must not be empty.`)
				}
			}
		}
		if !found {
			r.error(t.Offset+1+len(t.Name), `<html> tag must have a "lang" attribute`)
		}
	}
}

func checkLinkHref(doc *markup.Document, r *reporter) {
	for _, t := range startTags(doc) {
		if t.LowerName() != "a" {
			continue
		}
		found := false
		for _, a := range t.Attrs {
			if !strings.EqualFold(a.Name, "href") {
				continue
			}
			found = true
			if a.Value == "" && a.HasValue {
				r.error(a.Offset, "Link target must not be empty.")
			}
			if a.Value == "#" {
				r.error(a.Offset, `Link target must not be "#".`)
			}
			if strings.Contains(a.Value, "javascript:void(0)") {
				r.error(a.Offset, `Link target must not use "javascript:void(0)".`)
			}
		}
		if !found {
			r.error(t.Offset+1+len(t.Name), `Link must have an "href" attribute`)
		}
	}
}

func checkMetaCharset(doc *markup.Document, r *reporter) {
	startedHead := false
	for _, t := range startTags(doc) {
		if t.LowerName() == "meta" {
			if a, ok := t.Attr("charset"); ok && !strings.EqualFold(a.Value, "utf-8") {
				r.error(a.Offset, "<meta> charset must be UTF-8.")
			}
		}
		if t.LowerName() == "head" {
			startedHead = true
			continue
		}
		if startedHead {
			startedHead = false
			if _, ok := t.Attr("charset"); t.LowerName() != "meta" || !ok {
				r.warn(t.Offset, `<meta charset="utf-8"> should be the first tag in <head>.`)
			}
		}
	}
}
