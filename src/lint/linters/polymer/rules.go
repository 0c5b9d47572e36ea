package polymer

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sofmeright/uxlint/src/lint/markup"
)

// component is what rules inspect. File is empty for inline text.
type component struct {
	doc  *markup.Document
	file string
}

// finding is a rule violation at a byte offset.
type finding struct {
	rule    string
	message string
	offset  int
}

type rule struct {
	id    string
	check func(c *component) []finding
}

// allRules is ordered; findings on the same position keep this order.
var allRules = []rule{
	{id: "component-name-matches-filename", check: checkComponentName},
	{id: "no-auto-binding", check: checkAutoBinding},
	{id: "no-missing-import", check: checkMissingImport},
	{id: "no-unused-import", check: checkUnusedImport},
	{id: "one-component", check: checkOneComponent},
	{id: "style-inside-template", check: checkStyleInsideTemplate},
	{id: "icon-titles", check: checkIconTitles},
}

// builtinElements ship with Polymer itself and need no import.
var builtinElements = map[string]bool{
	"dom-module":     true,
	"dom-repeat":     true,
	"dom-if":         true,
	"dom-bind":       true,
	"array-selector": true,
	"custom-style":   true,
}

func isCustomElement(name string) bool { return strings.Contains(name, "-") }

// domModules returns the dom-module start tags of the document.
func domModules(doc *markup.Document) []markup.Token {
	var out []markup.Token
	for _, tok := range doc.Tokens {
		if tok.Kind == markup.StartTag && tok.LowerName() == "dom-module" {
			out = append(out, tok)
		}
	}
	return out
}

func moduleID(tok markup.Token) string {
	a, _ := tok.Attr("id")
	return strings.ToLower(a.Value)
}

// importedElement returns the element name an HTML import provides, taken
// from the imported file's base name.
func importedElement(tok markup.Token) (string, bool) {
	if tok.Kind != markup.StartTag || tok.LowerName() != "link" {
		return "", false
	}
	rel, _ := tok.Attr("rel")
	if !strings.EqualFold(rel.Value, "import") {
		return "", false
	}
	href, ok := tok.Attr("href")
	if !ok || href.Value == "" {
		return "", false
	}
	name := strings.ToLower(path.Base(href.Value))
	name = strings.TrimSuffix(name, ".html")
	return name, true
}

func checkComponentName(c *component) []finding {
	if c.file == "" {
		return nil
	}
	base := strings.TrimSuffix(filepath.Base(c.file), filepath.Ext(c.file))
	var out []finding
	for _, mod := range domModules(c.doc) {
		id := moduleID(mod)
		if id != "" && id != strings.ToLower(base) {
			out = append(out, finding{
				message: fmt.Sprintf("Component name %s does not match filename %s", id, base),
				offset:  mod.Offset,
			})
		}
	}
	return out
}

func checkAutoBinding(c *component) []finding {
	var out []finding
	walk(c.doc, func(tok markup.Token, ancestors []markup.Token) {
		if _, ok := within(ancestors, "template"); !ok {
			return
		}
		switch tok.Kind {
		case markup.Text:
			if _, ok := within(ancestors, "script"); ok {
				return
			}
			if _, ok := within(ancestors, "style"); ok {
				return
			}
			for _, loc := range autoBindingRe.FindAllStringIndex(tok.Raw, -1) {
				out = append(out, finding{
					message: fmt.Sprintf("Auto binding %s is not allowed; use one-way [[...]] binding", tok.Raw[loc[0]:loc[1]]),
					offset:  tok.Offset + loc[0],
				})
			}
		case markup.StartTag:
			for _, a := range tok.Attrs {
				if m := autoBindingRe.FindString(a.Value); m != "" {
					out = append(out, finding{
						message: fmt.Sprintf("Auto binding %s is not allowed; use one-way [[...]] binding", m),
						offset:  a.Offset,
					})
				}
			}
		}
	})
	return out
}

var autoBindingRe = regexp.MustCompile(`\{\{[^}]*\}\}`)

func checkMissingImport(c *component) []finding {
	provided := map[string]bool{}
	for _, mod := range domModules(c.doc) {
		provided[moduleID(mod)] = true
	}
	for _, tok := range c.doc.Tokens {
		if name, ok := importedElement(tok); ok {
			provided[name] = true
		}
	}

	var out []finding
	walk(c.doc, func(tok markup.Token, ancestors []markup.Token) {
		if tok.Kind != markup.StartTag {
			return
		}
		if _, ok := within(ancestors, "template"); !ok {
			return
		}
		name := tok.LowerName()
		if !isCustomElement(name) || builtinElements[name] || provided[name] {
			return
		}
		out = append(out, finding{
			message: fmt.Sprintf("Custom element %s is used but not imported", name),
			offset:  tok.Offset,
		})
	})
	return out
}

func checkUnusedImport(c *component) []finding {
	used := map[string]bool{}
	for _, tok := range c.doc.Tokens {
		if tok.Kind == markup.StartTag {
			used[tok.LowerName()] = true
		}
	}
	var out []finding
	for _, tok := range c.doc.Tokens {
		name, ok := importedElement(tok)
		if !ok || !isCustomElement(name) || used[name] {
			continue
		}
		out = append(out, finding{
			message: fmt.Sprintf("Imported element %s is not used", name),
			offset:  tok.Offset,
		})
	}
	return out
}

func checkOneComponent(c *component) []finding {
	mods := domModules(c.doc)
	var out []finding
	for i := 1; i < len(mods); i++ {
		out = append(out, finding{
			message: fmt.Sprintf("Only one component may be defined per file; found %s", moduleID(mods[i])),
			offset:  mods[i].Offset,
		})
	}
	return out
}

func checkStyleInsideTemplate(c *component) []finding {
	var out []finding
	walk(c.doc, func(tok markup.Token, ancestors []markup.Token) {
		if tok.Kind != markup.StartTag || tok.LowerName() != "style" {
			return
		}
		mod, ok := within(ancestors, "dom-module")
		if !ok {
			return
		}
		if _, ok := within(ancestors, "template"); ok {
			return
		}
		out = append(out, finding{
			message: fmt.Sprintf("Style in %s must be inside <template>", moduleID(mod)),
			offset:  tok.Offset,
		})
	})
	return out
}

var iconRe = regexp.MustCompile(`jha-icon-[\w-]+`)

func checkIconTitles(c *component) []finding {
	var out []finding
	for _, tok := range c.doc.Tokens {
		if tok.Kind != markup.StartTag || !iconRe.MatchString(tok.LowerName()) {
			continue
		}
		if _, ok := tok.Attr("title"); ok {
			continue
		}
		out = append(out, finding{
			message: fmt.Sprintf("Icon has no title attribute: %s", tok.LowerName()),
			offset:  tok.Offset,
		})
	}
	return out
}
