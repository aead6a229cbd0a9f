package html

import "github.com/dhamidi/marq/span"

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenText
	TokenStartTag
	TokenEndTag
	TokenComment
	TokenDoctype
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:      "EOF",
	TokenText:     "Text",
	TokenStartTag: "StartTag",
	TokenEndTag:   "EndTag",
	TokenComment:  "Comment",
	TokenDoctype:  "Doctype",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is one unit of the tokenizer's output. Tag tokens arrive fully
// assembled: the lexical attribute states are internal to the tokenizer and
// never surface as separate tokens.
type Token struct {
	Kind TokenKind
	Span span.Span

	// Name is the tag name for StartTag and EndTag, or the doctype name for
	// Doctype ("html" in `<!DOCTYPE html>`). It is a slice of the source and
	// keeps its original case; compare case-insensitively.
	Name     string
	NameSpan span.Span

	// Attributes is populated for StartTag tokens only.
	Attributes  []Attribute
	SelfClosing bool

	// Text is the payload of Text and Comment tokens, and the raw declaration
	// body for Doctype tokens. Always a slice of the source.
	Text string

	// Bogus marks comments that were not written with <!-- --> syntax,
	// such as `<! hello >`.
	Bogus bool
}
