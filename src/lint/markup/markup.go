// Package markup tokenizes HTML while keeping what linters need and the
// standard tokenizer discards: byte offsets, the original case of tag and
// attribute names, and how each attribute value was quoted.
package markup

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/sofmeright/uxlint/src/lint"
)

// Kind classifies a token.
type Kind int

const (
	Text Kind = iota
	StartTag
	EndTag
	Comment
	Doctype
)

// Attr is one attribute as written in the source.
type Attr struct {
	Name  string
	Value string
	// Quote is '"', '\'' or 0 for unquoted or valueless attributes.
	Quote byte
	// HasValue is false for bare attributes such as `<input disabled>`.
	HasValue bool
	// Offset is the byte offset of the attribute name in the document.
	Offset int
	Raw    string
}

// Token is one lexical unit of a document.
type Token struct {
	Kind Kind
	// Name is the tag name in its original case.
	Name        string
	Attrs       []Attr
	Raw         string
	Offset      int
	SelfClosing bool
}

// LowerName returns the tag name in lower case.
func (t Token) LowerName() string { return strings.ToLower(t.Name) }

// Attr looks up an attribute by case-insensitive name.
func (t Token) Attr(name string) (Attr, bool) {
	for _, a := range t.Attrs {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return Attr{}, false
}

// CommentText returns the body of a comment token.
func (t Token) CommentText() string {
	s := strings.TrimPrefix(t.Raw, "<!--")
	return strings.TrimSuffix(s, "-->")
}

// Document is a tokenized source.
type Document struct {
	Source string
	Tokens []Token
	Lines  *lint.LineIndex
}

// Position returns the 1-based line and column of a byte offset.
func (d *Document) Position(offset int) (line, col int) {
	return d.Lines.Position(offset)
}

// Parse tokenizes src. It never fails; malformed markup yields text tokens.
func Parse(src string) *Document {
	doc := &Document{Source: src, Lines: lint.NewLineIndex(src)}
	z := html.NewTokenizer(strings.NewReader(src))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return doc
		}
		raw := string(z.Raw())
		tok := Token{Raw: raw, Offset: offset}
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			tok.Kind = StartTag
			tok.SelfClosing = tt == html.SelfClosingTagToken
			tok.Name, tok.Attrs = scanTag(raw, offset)
		case html.EndTagToken:
			tok.Kind = EndTag
			tok.Name, _ = scanTag(raw, offset)
		case html.CommentToken:
			tok.Kind = Comment
		case html.DoctypeToken:
			tok.Kind = Doctype
		default:
			tok.Kind = Text
		}
		doc.Tokens = append(doc.Tokens, tok)
		offset += len(raw)
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// scanTag reads the name and attributes of a raw start or end tag. base is
// the document offset of raw.
func scanTag(raw string, base int) (string, []Attr) {
	i := 1
	if i < len(raw) && raw[i] == '/' {
		i++
	}
	start := i
	for i < len(raw) && !isSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' {
		i++
	}
	name := raw[start:i]

	var attrs []Attr
	for i < len(raw) {
		for i < len(raw) && (isSpace(raw[i]) || raw[i] == '/') {
			i++
		}
		if i >= len(raw) || raw[i] == '>' {
			break
		}
		a := Attr{Offset: base + i}
		nameStart := i
		for i < len(raw) && !isSpace(raw[i]) && raw[i] != '=' && raw[i] != '>' &&
			!(raw[i] == '/' && i+1 < len(raw) && raw[i+1] == '>') {
			i++
		}
		a.Name = raw[nameStart:i]

		j := i
		for j < len(raw) && isSpace(raw[j]) {
			j++
		}
		if j < len(raw) && raw[j] == '=' {
			a.HasValue = true
			j++
			for j < len(raw) && isSpace(raw[j]) {
				j++
			}
			if j < len(raw) && (raw[j] == '"' || raw[j] == '\'') {
				a.Quote = raw[j]
				end := strings.IndexByte(raw[j+1:], a.Quote)
				if end < 0 {
					a.Value = raw[j+1:]
					j = len(raw)
				} else {
					a.Value = raw[j+1 : j+1+end]
					j += end + 2
				}
			} else {
				vs := j
				for j < len(raw) && !isSpace(raw[j]) && raw[j] != '>' {
					j++
				}
				a.Value = raw[vs:j]
			}
			i = j
		}
		a.Raw = raw[nameStart:i]
		if a.Name == "" {
			i++
			continue
		}
		attrs = append(attrs, a)
	}
	return name, attrs
}
