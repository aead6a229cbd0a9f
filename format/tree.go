package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/marq/html"
)

// TreeEncoder writes an indented plain-text rendering of the tree, one node
// per line. Useful for eyeballing parser output.
type TreeEncoder struct {
	w   io.Writer
	doc *Document
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(doc *Document) error {
	e.doc = doc
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, n := range e.doc.Program.Nodes {
		e.writeNode(&sb, n, 0)
	}
	for _, d := range e.doc.Errors {
		pos := e.doc.Source.PositionAt(d.Span.Start)
		fmt.Fprintf(&sb, "%s %d:%d %s\n", d.Severity, pos.Line, pos.Column, d.Message)
	}
	return []byte(sb.String()), nil
}

func (e *TreeEncoder) writeNode(sb *strings.Builder, n html.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := n.(type) {
	case *html.Doctype:
		fmt.Fprintf(sb, "%sdoctype %s\n", indent, n.Name)
	case *html.Element:
		fmt.Fprintf(sb, "%selement %s%s\n", indent, n.TagName, e.attributesStr(n))
		for _, child := range n.Children {
			e.writeNode(sb, child, depth+1)
		}
	case *html.Text:
		if strings.TrimSpace(n.Value) == "" {
			return
		}
		fmt.Fprintf(sb, "%stext %q\n", indent, n.Value)
	case *html.Comment:
		kind := "comment"
		if n.Bogus {
			kind = "bogus-comment"
		}
		fmt.Fprintf(sb, "%s%s %q\n", indent, kind, n.Value)
	}
}

func (e *TreeEncoder) attributesStr(el *html.Element) string {
	var sb strings.Builder
	for _, a := range el.Attributes {
		if a.HasValue {
			fmt.Fprintf(&sb, " %s=%q", a.Name, a.Value)
		} else {
			fmt.Fprintf(&sb, " %s", a.Name)
		}
	}
	if el.SelfClosing {
		sb.WriteString(" /")
	}
	return sb.String()
}
