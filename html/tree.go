package html

import (
	"strings"

	"github.com/dhamidi/marq/arena"
	"github.com/dhamidi/marq/diag"
	"github.com/dhamidi/marq/span"
)

// insertionMode names the tree constructor's state. Each mode decides how the
// next token is interpreted.
type insertionMode int

const (
	modeInitial insertionMode = iota
	modeBeforeHTML
	modeBeforeHead
	modeInHead
	modeInBody
	modeText
	modeInTable
	modeAfterBody
)

// headTags are the start tags handled inside <head> without implicitly
// closing it.
var headTags = tagSet(
	"base", "basefont", "bgsound", "link", "meta", "noframes", "noscript",
	"script", "style", "template", "title",
)

// treeBuilder consumes the token sequence and assembles the Program. It owns
// the open-element stack; the top of the stack is the current insertion
// point. The only signal it sends back to the tokenizer is EnterRawText.
type treeBuilder struct {
	options Options
	lexer   *Lexer

	mode insertionMode
	// originalMode is the mode to return to when raw-text content ends.
	originalMode insertionMode
	// rawContentStart is the offset just past the raw-text element's start
	// tag. At most one raw-text element is ever open, so a single slot is
	// enough.
	rawContentStart int
	stack           []*Element
	program         *Program
	errors          []diag.Diagnostic

	elements *arena.Pool[Element]
	texts    *arena.Pool[Text]
	comments *arena.Pool[Comment]
	doctypes *arena.Pool[Doctype]
}

func newTreeBuilder(a *arena.Arena, options Options, lexer *Lexer) *treeBuilder {
	t := &treeBuilder{
		options:  options,
		lexer:    lexer,
		elements: arena.NewPool[Element](a),
		texts:    arena.NewPool[Text](a),
		comments: arena.NewPool[Comment](a),
		doctypes: arena.NewPool[Doctype](a),
	}
	t.program = &Program{}
	return t
}

func (t *treeBuilder) run() *Program {
	for {
		tok := t.lexer.Next()
		t.process(tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
	return t.program
}

// process feeds one token through the mode handlers. A handler returning true
// is the explicit "reprocess this token in the new mode" signal; there is no
// recursive re-tokenization.
func (t *treeBuilder) process(tok Token) {
	for {
		var again bool
		switch t.mode {
		case modeInitial:
			again = t.processInitial(tok)
		case modeBeforeHTML:
			again = t.processBeforeHTML(tok)
		case modeBeforeHead:
			again = t.processBeforeHead(tok)
		case modeInHead:
			again = t.processInHead(tok)
		case modeInBody:
			again = t.processInBody(tok)
		case modeText:
			again = t.processText(tok)
		case modeInTable:
			again = t.processInTable(tok)
		case modeAfterBody:
			again = t.processAfterBody(tok)
		}
		if !again {
			return
		}
	}
}

func (t *treeBuilder) processInitial(tok Token) bool {
	switch tok.Kind {
	case TokenDoctype:
		t.appendNode(t.newDoctype(tok))
		t.mode = modeBeforeHTML
		return false
	case TokenComment:
		t.appendNode(t.newComment(tok))
		return false
	case TokenText:
		if isAllWhitespace(tok.Text) {
			t.appendNode(t.newText(tok))
			return false
		}
	case TokenEOF:
		t.finish(tok)
		return false
	}
	t.mode = modeBeforeHTML
	return true
}

func (t *treeBuilder) processBeforeHTML(tok Token) bool {
	switch tok.Kind {
	case TokenDoctype:
		t.errors = append(t.errors, diag.Errorf(tok.Span, "Unexpected doctype declaration"))
		return false
	case TokenComment:
		t.appendNode(t.newComment(tok))
		return false
	case TokenText:
		if isAllWhitespace(tok.Text) {
			t.appendNode(t.newText(tok))
			return false
		}
	case TokenStartTag:
		if strings.EqualFold(tok.Name, "html") {
			t.handleStartTag(tok)
			t.mode = modeBeforeHead
			return false
		}
	case TokenEOF:
		t.finish(tok)
		return false
	}
	t.mode = modeInBody
	return true
}

func (t *treeBuilder) processBeforeHead(tok Token) bool {
	switch tok.Kind {
	case TokenDoctype:
		t.errors = append(t.errors, diag.Errorf(tok.Span, "Unexpected doctype declaration"))
		return false
	case TokenComment:
		t.appendNode(t.newComment(tok))
		return false
	case TokenText:
		if isAllWhitespace(tok.Text) {
			t.appendNode(t.newText(tok))
			return false
		}
	case TokenStartTag:
		if strings.EqualFold(tok.Name, "head") {
			t.handleStartTag(tok)
			t.mode = modeInHead
			return false
		}
	case TokenEOF:
		t.finish(tok)
		return false
	}
	t.mode = modeInBody
	return true
}

func (t *treeBuilder) processInHead(tok Token) bool {
	switch tok.Kind {
	case TokenDoctype:
		t.errors = append(t.errors, diag.Errorf(tok.Span, "Unexpected doctype declaration"))
		return false
	case TokenComment:
		t.appendNode(t.newComment(tok))
		return false
	case TokenText:
		if isAllWhitespace(tok.Text) {
			t.appendNode(t.newText(tok))
			return false
		}
	case TokenStartTag:
		if headTags[strings.ToLower(tok.Name)] {
			t.handleStartTag(tok)
			return false
		}
	case TokenEndTag:
		t.handleEndTag(tok)
		if t.mode == modeInHead && !t.hasOpen("head") {
			t.mode = modeInBody
		}
		return false
	case TokenEOF:
		t.finish(tok)
		return false
	}
	// Anything else ends the head implicitly; head is in the optional-close
	// set, so no diagnostic.
	t.closeThrough("head", tok.Span.Start, tok.Span)
	t.mode = modeInBody
	return true
}

func (t *treeBuilder) processInBody(tok Token) bool {
	switch tok.Kind {
	case TokenDoctype:
		t.errors = append(t.errors, diag.Errorf(tok.Span, "Unexpected doctype declaration"))
	case TokenComment:
		t.appendNode(t.newComment(tok))
	case TokenText:
		t.appendNode(t.newText(tok))
	case TokenStartTag:
		if strings.EqualFold(tok.Name, "html") && t.hasOpen("html") {
			t.errors = append(t.errors, diag.Errorf(tok.Span, "Unexpected start tag: <html>"))
			return false
		}
		t.handleStartTag(tok)
	case TokenEndTag:
		t.handleEndTag(tok)
	case TokenEOF:
		t.finish(tok)
	}
	return false
}

// processText handles raw-text element content. The tokenizer guarantees the
// only tokens here are the content itself and the matching end tag, or EOF
// when the close tag is missing.
func (t *treeBuilder) processText(tok Token) bool {
	switch tok.Kind {
	case TokenText:
		if !tok.Span.Empty() {
			t.appendNode(t.newText(tok))
		}
		return false
	case TokenEndTag:
		t.closeTop(tok.Span.End)
		t.mode = t.originalMode
		return false
	}
	t.mode = t.originalMode
	return true
}

func (t *treeBuilder) processInTable(tok Token) bool {
	switch tok.Kind {
	case TokenDoctype:
		t.errors = append(t.errors, diag.Errorf(tok.Span, "Unexpected doctype declaration"))
		return false
	case TokenComment:
		t.appendNode(t.newComment(tok))
		return false
	case TokenText:
		t.appendNode(t.newText(tok))
		return false
	case TokenStartTag:
		if strings.EqualFold(tok.Name, "table") && t.tableInScope() {
			t.errors = append(t.errors, diag.Errorf(tok.Span,
				"Implicitly closed element: <table>"))
			t.closeThrough("table", tok.Span.Start, tok.Span)
		}
		t.handleStartTag(tok)
		return false
	case TokenEndTag:
		t.handleEndTag(tok)
		if !t.hasOpen("table") && t.mode == modeInTable {
			t.mode = modeInBody
		}
		return false
	case TokenEOF:
		t.finish(tok)
		return false
	}
	return false
}

func (t *treeBuilder) processAfterBody(tok Token) bool {
	switch tok.Kind {
	case TokenComment:
		t.appendNode(t.newComment(tok))
		return false
	case TokenText:
		if isAllWhitespace(tok.Text) {
			t.appendNode(t.newText(tok))
			return false
		}
	case TokenDoctype:
		t.errors = append(t.errors, diag.Errorf(tok.Span, "Unexpected doctype declaration"))
		return false
	case TokenEOF:
		t.finish(tok)
		return false
	}
	t.errors = append(t.errors, diag.Warningf(tok.Span, "Content after closing </html>"))
	t.mode = modeInBody
	return true
}

// handleStartTag applies the auto-close policy, creates the element, and
// decides whether it enters the open-element stack.
func (t *treeBuilder) handleStartTag(tok Token) {
	t.applyAutoClose(tok)

	el := t.elements.New(Element{
		Span:        tok.Span,
		TagName:     tok.Name,
		Attributes:  tok.Attributes,
		SelfClosing: tok.SelfClosing,
	})
	t.appendNode(el)

	if tok.SelfClosing || t.options.Policy.isVoid(tok.Name) {
		el.SelfClosing = true
		return
	}
	t.stack = append(t.stack, el)

	if t.options.Policy.isRawText(tok.Name) {
		t.lexer.EnterRawText(tok.Name)
		t.rawContentStart = tok.Span.End
		t.originalMode = t.mode
		t.mode = modeText
		return
	}
	if strings.EqualFold(tok.Name, "table") {
		t.mode = modeInTable
	}
}

// handleEndTag closes the nearest matching open element, implicitly closing
// anything above it. An end tag with no matching open element is a
// structural error with no effect on the tree.
func (t *treeBuilder) handleEndTag(tok Token) {
	idx := t.find(tok.Name)
	if idx < 0 {
		t.errors = append(t.errors, diag.Errorf(tok.Span,
			"Unexpected closing tag: </%s>", tok.Name))
		return
	}
	for len(t.stack)-1 > idx {
		top := t.stack[len(t.stack)-1]
		if !t.options.Policy.optionalClose(top.TagName) {
			t.errors = append(t.errors, diag.Errorf(tok.Span,
				"Implicitly closed element: <%s>", top.TagName))
		}
		t.closeTop(tok.Span.Start)
	}
	closed := t.closeTop(tok.Span.End)
	if strings.EqualFold(closed.TagName, "html") && len(t.stack) == 0 {
		t.mode = modeAfterBody
	}
}

// applyAutoClose pops open elements that the incoming start tag implicitly
// closes according to the policy table.
func (t *treeBuilder) applyAutoClose(tok Token) {
	for len(t.stack) > 0 {
		top := t.stack[len(t.stack)-1]
		if !t.options.Policy.closes(tok.Name, top.TagName) {
			break
		}
		if !t.options.Policy.optionalClose(top.TagName) {
			t.errors = append(t.errors, diag.Errorf(tok.Span,
				"Implicitly closed element: <%s>", top.TagName))
		}
		t.closeTop(tok.Span.Start)
	}
}

// closeThrough closes open elements up to and including the nearest element
// named name. Elements above it close implicitly with a diagnostic unless
// they are optional-close.
func (t *treeBuilder) closeThrough(name string, end int, at span.Span) {
	idx := t.find(name)
	if idx < 0 {
		return
	}
	for len(t.stack)-1 > idx {
		top := t.stack[len(t.stack)-1]
		if !t.options.Policy.optionalClose(top.TagName) {
			t.errors = append(t.errors, diag.Errorf(at,
				"Implicitly closed element: <%s>", top.TagName))
		}
		t.closeTop(end)
	}
	t.closeTop(end)
}

// closeTop pops the current insertion point, finalizing its span and running
// embedded-language dispatch for raw-text elements.
func (t *treeBuilder) closeTop(end int) *Element {
	el := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	el.Span.End = end
	if t.options.Policy.isRawText(el.TagName) {
		t.dispatchEmbedded(el)
	}
	return el
}

// finish drains the open-element stack at end of input. Each forced closure
// is reported unless the element is in the optional-close set.
func (t *treeBuilder) finish(tok Token) {
	for len(t.stack) > 0 {
		top := t.stack[len(t.stack)-1]
		if !t.options.Policy.optionalClose(top.TagName) {
			t.errors = append(t.errors, diag.Errorf(
				span.Span{Start: top.Span.Start, End: tok.Span.End},
				"Unclosed element: <%s>", top.TagName))
		}
		t.closeTop(tok.Span.End)
	}
}

func (t *treeBuilder) find(name string) int {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if strings.EqualFold(t.stack[i].TagName, name) {
			return i
		}
	}
	return -1
}

func (t *treeBuilder) hasOpen(name string) bool {
	return t.find(name) >= 0
}

// tableInScope reports whether an incoming <table> would implicitly close an
// open one. A td or th between the stack top and the nearest open table starts
// a fresh nesting context, so a table opened inside a cell is valid nesting,
// not an implied close.
func (t *treeBuilder) tableInScope() bool {
	for i := len(t.stack) - 1; i >= 0; i-- {
		name := t.stack[i].TagName
		if strings.EqualFold(name, "table") {
			return true
		}
		if strings.EqualFold(name, "td") || strings.EqualFold(name, "th") {
			return false
		}
	}
	return false
}

func (t *treeBuilder) appendNode(n Node) {
	if len(t.stack) > 0 {
		top := t.stack[len(t.stack)-1]
		top.Children = append(top.Children, n)
		return
	}
	t.program.Nodes = append(t.program.Nodes, n)
}

func (t *treeBuilder) newText(tok Token) *Text {
	return t.texts.New(Text{Span: tok.Span, Value: tok.Text})
}

func (t *treeBuilder) newComment(tok Token) *Comment {
	return t.comments.New(Comment{Span: tok.Span, Value: tok.Text, Bogus: tok.Bogus})
}

func (t *treeBuilder) newDoctype(tok Token) *Doctype {
	return t.doctypes.New(Doctype{Span: tok.Span, Name: tok.Name, Raw: tok.Text})
}

func isAllWhitespace(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isWhitespace(s[i]) {
			return false
		}
	}
	return true
}
