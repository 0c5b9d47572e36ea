package polymer

import (
	"github.com/sofmeright/uxlint/src/lint/markup"
)

// voidElements never take an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// walk calls fn for every token with the start tags of the elements that
// enclose it, outermost first. Stray end tags are ignored.
func walk(doc *markup.Document, fn func(tok markup.Token, ancestors []markup.Token)) {
	var stack []markup.Token
	for _, tok := range doc.Tokens {
		switch tok.Kind {
		case markup.StartTag:
			fn(tok, stack)
			if !tok.SelfClosing && !voidElements[tok.LowerName()] {
				stack = append(stack, tok)
			}
		case markup.EndTag:
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].LowerName() == tok.LowerName() {
					stack = stack[:i]
					break
				}
			}
			fn(tok, stack)
		default:
			fn(tok, stack)
		}
	}
}

// within returns the innermost ancestor named name.
func within(ancestors []markup.Token, name string) (markup.Token, bool) {
	for i := len(ancestors) - 1; i >= 0; i-- {
		if ancestors[i].LowerName() == name {
			return ancestors[i], true
		}
	}
	return markup.Token{}, false
}
