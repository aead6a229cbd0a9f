package html

import (
	"strings"

	"github.com/dhamidi/marq/diag"
	"github.com/dhamidi/marq/span"
)

// EmbeddedKey selects an embedded-language parser by tag name and the value
// of the element's `type` attribute. Both parts are matched
// case-insensitively; an empty Type is the fallback for elements without a
// type attribute or without a more specific registration.
type EmbeddedKey struct {
	Tag  string
	Type string
}

// EmbeddedResult is what an embedded-language parser returns. AST may be nil
// when the parser produced diagnostics only. Diagnostic spans are relative to
// the content passed in; the dispatcher translates them into outer-document
// coordinates.
type EmbeddedResult struct {
	AST         any
	Diagnostics []diag.Diagnostic
}

// EmbeddedParser parses the raw-text content of one element. baseOffset is
// the content's position in the outer document, available for parsers that
// want absolute positions in their own AST. The call is synchronous and must
// not retain references into the outer parse's arena after returning.
type EmbeddedParser func(content string, baseOffset int) EmbeddedResult

// dispatchEmbedded runs the registered parser for el's raw-text content, if
// any, attaching the foreign AST and collecting re-spanned diagnostics. A
// panicking parser is contained and surfaced as a diagnostic on the element.
func (t *treeBuilder) dispatchEmbedded(el *Element) {
	parse := t.lookupEmbedded(el)
	if parse == nil {
		return
	}

	content := ""
	base := t.rawContentStart
	if len(el.Children) == 1 {
		if text, ok := el.Children[0].(*Text); ok {
			content = text.Value
			base = text.Span.Start
		}
	}

	result := t.callEmbedded(el, parse, content, base)
	el.Embedded = result.AST
	t.errors = append(t.errors, diag.ShiftAll(result.Diagnostics, base)...)
}

func (t *treeBuilder) lookupEmbedded(el *Element) EmbeddedParser {
	tag := strings.ToLower(el.TagName)
	switch tag {
	case "script":
		if !t.options.EnableScriptParsing {
			return nil
		}
	case "style":
		if !t.options.EnableStyleParsing {
			return nil
		}
	}

	typeValue, _ := el.AttributeValue("type")
	if parse, ok := t.options.Embedded[EmbeddedKey{Tag: tag, Type: strings.ToLower(typeValue)}]; ok {
		return parse
	}
	if typeValue != "" {
		if parse, ok := t.options.Embedded[EmbeddedKey{Tag: tag}]; ok {
			return parse
		}
	}
	return nil
}

func (t *treeBuilder) callEmbedded(el *Element, parse EmbeddedParser, content string, base int) (result EmbeddedResult) {
	defer func() {
		if r := recover(); r != nil {
			result = EmbeddedResult{}
			t.errors = append(t.errors, diag.Errorf(
				span.Span{Start: base, End: base + len(content)},
				"embedded parser for <%s> failed: %v", el.TagName, r))
		}
	}()
	return parse(content, base)
}
