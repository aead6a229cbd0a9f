package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/marq/html"
	"github.com/dhamidi/marq/span"
)

type ASTJSONEncoder struct {
	w   io.Writer
	doc *Document
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(doc *Document) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText() ([]byte, error) {
	doc := astJSONDocument{
		Errors: make([]astJSONError, 0, len(e.doc.Errors)),
	}
	for _, n := range e.doc.Program.Nodes {
		doc.Nodes = append(doc.Nodes, e.nodeToJSON(n))
	}
	for _, d := range e.doc.Errors {
		doc.Errors = append(doc.Errors, astJSONError{
			Message:  d.Message,
			Severity: d.Severity.String(),
			Span:     e.spanToJSON(d.Span),
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

type astJSONDocument struct {
	Nodes  []*astJSONNode `json:"nodes"`
	Errors []astJSONError `json:"errors"`
}

type astJSONNode struct {
	Kind        string         `json:"kind"`
	Span        astJSONSpan    `json:"span"`
	Tag         string         `json:"tag,omitempty"`
	Attributes  []astJSONAttr  `json:"attributes,omitempty"`
	SelfClosing bool           `json:"selfClosing,omitempty"`
	Value       string         `json:"value,omitempty"`
	Bogus       bool           `json:"bogus,omitempty"`
	Name        string         `json:"name,omitempty"`
	Children    []*astJSONNode `json:"children,omitempty"`
}

type astJSONAttr struct {
	Name  string      `json:"name"`
	Value string      `json:"value,omitempty"`
	Bare  bool        `json:"bare,omitempty"`
	Span  astJSONSpan `json:"span"`
}

type astJSONSpan struct {
	Start astJSONPosition `json:"start"`
	End   astJSONPosition `json:"end"`
}

type astJSONPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

type astJSONError struct {
	Message  string      `json:"message"`
	Severity string      `json:"severity"`
	Span     astJSONSpan `json:"span"`
}

func (e *ASTJSONEncoder) nodeToJSON(n html.Node) *astJSONNode {
	jn := &astJSONNode{Span: e.spanToJSON(html.NodeSpan(n))}

	switch n := n.(type) {
	case *html.Doctype:
		jn.Kind = "doctype"
		jn.Name = n.Name
	case *html.Element:
		jn.Kind = "element"
		jn.Tag = n.TagName
		jn.SelfClosing = n.SelfClosing
		for _, a := range n.Attributes {
			jn.Attributes = append(jn.Attributes, astJSONAttr{
				Name:  a.Name,
				Value: a.Value,
				Bare:  !a.HasValue,
				Span:  e.spanToJSON(a.Span),
			})
		}
		for _, child := range n.Children {
			jn.Children = append(jn.Children, e.nodeToJSON(child))
		}
	case *html.Text:
		jn.Kind = "text"
		jn.Value = n.Value
	case *html.Comment:
		jn.Kind = "comment"
		jn.Value = n.Value
		jn.Bogus = n.Bogus
	}

	return jn
}

func (e *ASTJSONEncoder) spanToJSON(sp span.Span) astJSONSpan {
	return astJSONSpan{
		Start: e.positionToJSON(sp.Start),
		End:   e.positionToJSON(sp.End),
	}
}

func (e *ASTJSONEncoder) positionToJSON(offset int) astJSONPosition {
	pos := e.doc.Source.PositionAt(offset)
	return astJSONPosition{Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}
