// Package html parses HTML into an error-tolerant, arena-owned syntax tree.
// It plugs the HTML grammar into the generic framework in package parser: the
// tokenizer turns source text into tokens, the tree constructor assembles
// them into a Program, and anything malformed becomes a diagnostic instead of
// a failure.
package html

import (
	"strings"

	"github.com/dhamidi/marq/span"
)

// Node is the tagged variant over everything that can appear in a document.
// The concrete types are *Doctype, *Element, *Text, and *Comment. Nodes hold
// no parent pointers; ancestry during traversal is an explicit stack.
type Node interface {
	node()
}

// NodeSpan returns the source range covered by n.
func NodeSpan(n Node) span.Span {
	switch v := n.(type) {
	case *Doctype:
		return v.Span
	case *Element:
		return v.Span
	case *Text:
		return v.Span
	case *Comment:
		return v.Span
	}
	return span.Span{}
}

// Program is the parse result: the ordered top-level nodes of one document.
// It and everything under it is owned by the arena the parse ran in.
type Program struct {
	Nodes []Node
}

// Doctype is a `<!DOCTYPE ...>` declaration.
type Doctype struct {
	Span span.Span
	// Name is the declared document type, "html" for `<!DOCTYPE html>`.
	Name string
	// Raw is the declaration body between `<!DOCTYPE` and `>`, untrimmed.
	Raw string
}

func (*Doctype) node() {}

// Element is a tag with attributes and children. The parent exclusively owns
// Children; a node appears under exactly one parent.
type Element struct {
	Span span.Span
	// TagName is a slice of the source and keeps its original case.
	TagName    string
	Attributes []Attribute
	Children   []Node
	// SelfClosing records `/>` syntax or membership in the void-element set.
	SelfClosing bool
	// Embedded holds the foreign AST returned by a registered
	// embedded-language parser for this element's raw-text content, if any.
	Embedded any
}

func (*Element) node() {}

// Text is a run of character data.
type Text struct {
	Span  span.Span
	Value string
}

func (*Text) node() {}

// Comment is a `<!-- -->` comment, or any other `<!` construct when Bogus.
type Comment struct {
	Span span.Span
	// Value is the comment body without its delimiters.
	Value string
	Bogus bool
}

func (*Comment) node() {}

// Attribute is one name/value pair on an element, in source order.
type Attribute struct {
	Span     span.Span
	Name     string
	NameSpan span.Span
	// Value is the attribute value with quotes removed; empty when the
	// attribute was written without `=`.
	Value     string
	ValueSpan span.Span
	// Raw is the value as written, including quotes.
	Raw      string
	HasValue bool
}

// AttributeValue returns the value of the named attribute on el and whether
// it is present. Lookup is case-insensitive.
func (el *Element) AttributeValue(name string) (string, bool) {
	for i := range el.Attributes {
		if strings.EqualFold(el.Attributes[i].Name, name) {
			return el.Attributes[i].Value, true
		}
	}
	return "", false
}
