package eslint

import (
	"strings"

	"github.com/sofmeright/uxlint/src/lint/markup"
)

// script is the body of one inline <script> element.
type script struct {
	offset int // byte offset of the body in the document
	text   string
}

var scriptTypes = map[string]bool{
	"":                       true,
	"text/javascript":        true,
	"application/javascript": true,
	"text/ecmascript":        true,
	"application/ecmascript": true,
	"module":                 true,
}

// extractScripts returns the JavaScript bodies of an HTML document.
func extractScripts(doc string) []script {
	var scripts []script
	inScript := false
	for _, tok := range markup.Parse(doc).Tokens {
		switch tok.Kind {
		case markup.StartTag:
			if tok.LowerName() != "script" {
				continue
			}
			typ := ""
			if a, ok := tok.Attr("type"); ok {
				typ = strings.ToLower(strings.TrimSpace(a.Value))
			}
			inScript = scriptTypes[typ] && !tok.SelfClosing
		case markup.Text:
			if inScript && strings.TrimSpace(tok.Raw) != "" {
				scripts = append(scripts, script{offset: tok.Offset, text: tok.Raw})
			}
		case markup.EndTag:
			inScript = false
		}
	}
	return scripts
}

func isHTMLName(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}
