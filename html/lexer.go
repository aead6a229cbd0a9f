package html

import (
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/marq/diag"
	"github.com/dhamidi/marq/span"
)

// lexState is the tokenizer's FSM tag. The states mirror the standard HTML
// lexical states; attribute states assemble the in-progress tag token rather
// than emitting tokens of their own.
type lexState int

const (
	stateData lexState = iota
	stateEndTagOpen
	stateTagName
	stateBeforeAttributeName
	stateAttributeName
	stateAfterAttributeName
	stateBeforeAttributeValue
	stateAttributeValueDoubleQuoted
	stateAttributeValueSingleQuoted
	stateAttributeValueUnquoted
	stateSelfClosingStartTag
	stateMarkupDeclaration
	stateComment
	stateBogusComment
	stateDoctype
	stateRawText
	stateDone
)

// lexStates dispatches one step of the state machine. A step consumes input
// and reports whether it produced a token.
var lexStates = [...]func(*Lexer) (Token, bool){
	stateData:                       (*Lexer).lexData,
	stateEndTagOpen:                 (*Lexer).lexEndTagOpen,
	stateTagName:                    (*Lexer).lexTagName,
	stateBeforeAttributeName:        (*Lexer).lexBeforeAttributeName,
	stateAttributeName:              (*Lexer).lexAttributeName,
	stateAfterAttributeName:         (*Lexer).lexAfterAttributeName,
	stateBeforeAttributeValue:       (*Lexer).lexBeforeAttributeValue,
	stateAttributeValueDoubleQuoted: (*Lexer).lexAttributeValueQuoted,
	stateAttributeValueSingleQuoted: (*Lexer).lexAttributeValueQuoted,
	stateAttributeValueUnquoted:     (*Lexer).lexAttributeValueUnquoted,
	stateSelfClosingStartTag:        (*Lexer).lexSelfClosingStartTag,
	stateMarkupDeclaration:          (*Lexer).lexMarkupDeclaration,
	stateComment:                    (*Lexer).lexComment,
	stateBogusComment:               (*Lexer).lexBogusComment,
	stateDoctype:                    (*Lexer).lexDoctype,
	stateRawText:                    (*Lexer).lexRawText,
	stateDone:                       (*Lexer).lexDone,
}

// Lexer turns HTML source into a lazy, finite, non-restartable token
// sequence. Malformed syntax produces a diagnostic and a treat-as-text
// fallback; Next never fails. After the EOF token has been produced, further
// calls keep returning it.
type Lexer struct {
	input string
	pos   int
	state lexState

	// markupStart is the offset of '<' for the construct being scanned.
	markupStart int
	// pending is the in-progress tag token, emitted when the tag closes.
	pending Token
	// attr is the in-progress attribute of the pending start tag.
	attr       Attribute
	attrActive bool
	valueStart int
	// rawTag is the tag whose raw-text content is being scanned. It is set
	// only through EnterRawText.
	rawTag string

	errors []diag.Diagnostic
}

// NewLexer creates a tokenizer over input starting at offset zero.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Next returns the next token. The sequence ends with a TokenEOF.
func (l *Lexer) Next() Token {
	for {
		if tok, ok := lexStates[l.state](l); ok {
			return tok
		}
	}
}

// EnterRawText switches the tokenizer into raw-text mode for the content of
// tag: everything up to the matching `</tag` comes back as a single Text
// token, with `<` treated as character data throughout. The tree constructor
// issues this command after it has opened a raw-text element; it takes effect
// before the next token request. This is the only coupling between the two
// state machines.
func (l *Lexer) EnterRawText(tag string) {
	l.rawTag = tag
	l.state = stateRawText
}

// Diagnostics returns the lexical diagnostics collected so far, in source
// order.
func (l *Lexer) Diagnostics() []diag.Diagnostic {
	return l.errors
}

func (l *Lexer) byteAt(i int) byte {
	if i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

func (l *Lexer) errorf(sp span.Span, format string, args ...any) {
	l.errors = append(l.errors, diag.Errorf(sp, format, args...))
}

func (l *Lexer) warningf(sp span.Span, format string, args ...any) {
	l.errors = append(l.errors, diag.Warningf(sp, format, args...))
}

func (l *Lexer) lexDone() (Token, bool) {
	return Token{Kind: TokenEOF, Span: span.Point(len(l.input))}, true
}

func (l *Lexer) emitEOF() (Token, bool) {
	l.state = stateDone
	return l.lexDone()
}

func (l *Lexer) lexData() (Token, bool) {
	if l.pos >= len(l.input) {
		return l.emitEOF()
	}
	if l.input[l.pos] == '<' {
		next := l.byteAt(l.pos + 1)
		switch {
		case isASCIILetter(next):
			l.pending = Token{Kind: TokenStartTag, Span: span.Span{Start: l.pos}}
			l.pos++
			l.state = stateTagName
			return Token{}, false
		case next == '/':
			l.pending = Token{Kind: TokenEndTag, Span: span.Span{Start: l.pos}}
			l.pos += 2
			l.state = stateEndTagOpen
			return Token{}, false
		case next == '!':
			l.markupStart = l.pos
			l.pos += 2
			l.state = stateMarkupDeclaration
			return Token{}, false
		}
	}
	return l.lexText()
}

// lexText scans a maximal run of character data. A `<` that does not open
// markup (not followed by a letter, '/', or '!') is plain text.
func (l *Lexer) lexText() (Token, bool) {
	start := l.pos
	i := start
	for i < len(l.input) {
		if l.input[i] == '<' {
			next := l.byteAt(i + 1)
			if isASCIILetter(next) || next == '/' || next == '!' {
				break
			}
		}
		i++
	}
	l.pos = i
	tok := Token{
		Kind: TokenText,
		Span: span.Span{Start: start, End: i},
		Text: l.input[start:i],
	}
	if !utf8.ValidString(tok.Text) {
		l.warningf(tok.Span, "invalid UTF-8 sequence treated as text")
	}
	return tok, true
}

func (l *Lexer) lexEndTagOpen() (Token, bool) {
	if l.pos >= len(l.input) {
		l.errorf(span.Point(l.pos), "expected tag name, found end of file")
		l.state = stateData
		return Token{
			Kind: TokenText,
			Span: span.Span{Start: l.pending.Span.Start, End: l.pos},
			Text: l.input[l.pending.Span.Start:l.pos],
		}, true
	}
	if isASCIILetter(l.input[l.pos]) {
		l.state = stateTagName
		return Token{}, false
	}
	// `</>` or `</` before a non-letter: not a tag. Recover as a bogus
	// comment, the way stray `<!` constructs are handled.
	l.errorf(span.Span{Start: l.pending.Span.Start, End: l.pos},
		"expected tag name after '</'")
	l.markupStart = l.pending.Span.Start
	l.state = stateBogusComment
	return Token{}, false
}

func (l *Lexer) lexTagName() (Token, bool) {
	start := l.pos
	for l.pos < len(l.input) && !isTagDelimiter(l.input[l.pos]) {
		l.pos++
	}
	l.pending.Name = l.input[start:l.pos]
	l.pending.NameSpan = span.Span{Start: start, End: l.pos}
	l.state = stateBeforeAttributeName
	return Token{}, false
}

func (l *Lexer) lexBeforeAttributeName() (Token, bool) {
	if l.pos >= len(l.input) {
		return l.finishTagAtEOF()
	}
	switch ch := l.input[l.pos]; {
	case isWhitespace(ch):
		l.pos++
		return Token{}, false
	case ch == '>':
		l.pos++
		return l.finishTag()
	case ch == '/':
		l.pos++
		l.state = stateSelfClosingStartTag
		return Token{}, false
	case ch == '=':
		l.warningf(span.Point(l.pos), "unexpected '=' before attribute name")
		l.pos++
		return Token{}, false
	default:
		l.attr = Attribute{
			Span:     span.Span{Start: l.pos},
			NameSpan: span.Span{Start: l.pos},
		}
		l.attrActive = true
		l.state = stateAttributeName
		return Token{}, false
	}
}

func (l *Lexer) lexAttributeName() (Token, bool) {
	start := l.pos
	for l.pos < len(l.input) && !isTagDelimiter(l.input[l.pos]) {
		l.pos++
	}
	l.attr.Name = l.input[start:l.pos]
	l.attr.NameSpan.End = l.pos
	l.attr.Span.End = l.pos
	l.state = stateAfterAttributeName
	return Token{}, false
}

func (l *Lexer) lexAfterAttributeName() (Token, bool) {
	if l.pos >= len(l.input) {
		l.flushAttribute()
		return l.finishTagAtEOF()
	}
	switch ch := l.input[l.pos]; {
	case isWhitespace(ch):
		l.pos++
		return Token{}, false
	case ch == '=':
		l.pos++
		l.state = stateBeforeAttributeValue
		return Token{}, false
	case ch == '>':
		l.flushAttribute()
		l.pos++
		return l.finishTag()
	case ch == '/':
		l.flushAttribute()
		l.pos++
		l.state = stateSelfClosingStartTag
		return Token{}, false
	default:
		l.flushAttribute()
		l.state = stateBeforeAttributeName
		return Token{}, false
	}
}

func (l *Lexer) lexBeforeAttributeValue() (Token, bool) {
	if l.pos >= len(l.input) {
		l.flushAttribute()
		return l.finishTagAtEOF()
	}
	switch ch := l.input[l.pos]; {
	case isWhitespace(ch):
		l.pos++
		return Token{}, false
	case ch == '"':
		l.pos++
		l.valueStart = l.pos
		l.state = stateAttributeValueDoubleQuoted
		return Token{}, false
	case ch == '\'':
		l.pos++
		l.valueStart = l.pos
		l.state = stateAttributeValueSingleQuoted
		return Token{}, false
	case ch == '>':
		l.warningf(span.Point(l.pos), "missing value for attribute %q", l.attr.Name)
		l.attr.HasValue = true
		l.flushAttribute()
		l.pos++
		return l.finishTag()
	default:
		l.valueStart = l.pos
		l.state = stateAttributeValueUnquoted
		return Token{}, false
	}
}

func (l *Lexer) lexAttributeValueQuoted() (Token, bool) {
	quote := byte('"')
	if l.state == stateAttributeValueSingleQuoted {
		quote = '\''
	}
	// HTML has no backslash escapes inside attribute values, so this is a
	// plain scan for the closing quote.
	rel := strings.IndexByte(l.input[l.valueStart:], quote)
	if rel < 0 {
		end := len(l.input)
		l.errorf(span.Point(end), "expected closing %q, found end of file", string(quote))
		l.setAttributeValue(l.valueStart, end, end)
		l.flushAttribute()
		l.pos = end
		return l.finishTagAtEOF()
	}
	end := l.valueStart + rel
	l.setAttributeValue(l.valueStart, end, end+1)
	l.flushAttribute()
	l.pos = end + 1
	l.state = stateBeforeAttributeName
	return Token{}, false
}

func (l *Lexer) lexAttributeValueUnquoted() (Token, bool) {
	start := l.valueStart
	for l.pos < len(l.input) && !isWhitespace(l.input[l.pos]) && l.input[l.pos] != '>' {
		l.pos++
	}
	l.setAttributeValue(start, l.pos, l.pos)
	l.flushAttribute()
	l.state = stateBeforeAttributeName
	return Token{}, false
}

func (l *Lexer) lexSelfClosingStartTag() (Token, bool) {
	if l.pos >= len(l.input) {
		return l.finishTagAtEOF()
	}
	if l.input[l.pos] == '>' {
		l.pending.SelfClosing = true
		l.pos++
		return l.finishTag()
	}
	l.warningf(span.Point(l.pos), "unexpected character after '/' in tag")
	l.state = stateBeforeAttributeName
	return Token{}, false
}

func (l *Lexer) lexMarkupDeclaration() (Token, bool) {
	rest := l.input[l.pos:]
	switch {
	case strings.HasPrefix(rest, "--"):
		l.state = stateComment
	case len(rest) >= 7 && strings.EqualFold(rest[:7], "doctype"):
		l.pos += 7
		l.state = stateDoctype
	default:
		l.state = stateBogusComment
	}
	return Token{}, false
}

// lexComment scans from the leading "--" of `<!--`. Searching from the
// dashes rather than past them makes `<!-->` close immediately, as an empty
// comment.
func (l *Lexer) lexComment() (Token, bool) {
	rel := strings.Index(l.input[l.pos:], "-->")
	valueStart := l.pos + 2
	if rel < 0 {
		end := len(l.input)
		l.errorf(span.Point(end), "expected '-->', found end of file")
		l.pos = end
		l.state = stateData
		return Token{
			Kind: TokenComment,
			Span: span.Span{Start: l.markupStart, End: end},
			Text: l.input[min(valueStart, end):end],
		}, true
	}
	valueEnd := l.pos + rel
	if valueEnd < valueStart {
		valueEnd = valueStart
	}
	end := l.pos + rel + 3
	l.pos = end
	l.state = stateData
	return Token{
		Kind: TokenComment,
		Span: span.Span{Start: l.markupStart, End: end},
		Text: l.input[valueStart:valueEnd],
	}, true
}

func (l *Lexer) lexBogusComment() (Token, bool) {
	valueStart := l.pos
	rel := strings.IndexByte(l.input[l.pos:], '>')
	if rel < 0 {
		end := len(l.input)
		l.errorf(span.Point(end), "expected '>', found end of file")
		l.pos = end
		l.state = stateData
		return Token{
			Kind:  TokenComment,
			Span:  span.Span{Start: l.markupStart, End: end},
			Text:  l.input[valueStart:end],
			Bogus: true,
		}, true
	}
	end := l.pos + rel + 1
	l.pos = end
	l.state = stateData
	return Token{
		Kind:  TokenComment,
		Span:  span.Span{Start: l.markupStart, End: end},
		Text:  l.input[valueStart : end-1],
		Bogus: true,
	}, true
}

func (l *Lexer) lexDoctype() (Token, bool) {
	rawStart := l.pos
	rel := strings.IndexByte(l.input[l.pos:], '>')
	end := len(l.input)
	if rel < 0 {
		l.errorf(span.Point(end), "expected '>', found end of file")
	} else {
		end = l.pos + rel + 1
	}
	rawEnd := end
	if rel >= 0 {
		rawEnd = end - 1
	}
	raw := l.input[rawStart:rawEnd]

	tok := Token{
		Kind: TokenDoctype,
		Span: span.Span{Start: l.markupStart, End: end},
		Text: raw,
	}
	// The doctype name is the first word of the declaration body.
	nameStart := rawStart
	for nameStart < rawEnd && isWhitespace(l.input[nameStart]) {
		nameStart++
	}
	nameEnd := nameStart
	for nameEnd < rawEnd && !isWhitespace(l.input[nameEnd]) {
		nameEnd++
	}
	tok.Name = l.input[nameStart:nameEnd]
	tok.NameSpan = span.Span{Start: nameStart, End: nameEnd}

	l.pos = end
	l.state = stateData
	return tok, true
}

// lexRawText consumes opaque content up to the matching close tag. Only
// EnterRawText puts the machine in this state.
func (l *Lexer) lexRawText() (Token, bool) {
	start := l.pos
	end := len(l.input)
	found := false
	for i := start; i+1 < len(l.input); i++ {
		if l.input[i] == '<' && l.input[i+1] == '/' && l.closeTagAt(i+2) {
			end = i
			found = true
			break
		}
	}
	if !found {
		l.errorf(span.Point(end), "expected '</%s>', found end of file", l.rawTag)
		end = len(l.input)
	}
	l.pos = end
	l.state = stateData
	l.rawTag = ""
	return Token{
		Kind: TokenText,
		Span: span.Span{Start: start, End: end},
		Text: l.input[start:end],
	}, true
}

// closeTagAt reports whether the raw-text closing tag name starts at offset
// i, followed by a tag-ending byte.
func (l *Lexer) closeTagAt(i int) bool {
	if i+len(l.rawTag) > len(l.input) {
		return false
	}
	if !strings.EqualFold(l.input[i:i+len(l.rawTag)], l.rawTag) {
		return false
	}
	next := l.byteAt(i + len(l.rawTag))
	return next == 0 || next == '>' || next == '/' || isWhitespace(next)
}

func (l *Lexer) setAttributeValue(valueStart, valueEnd, spanEnd int) {
	l.attr.Value = l.input[valueStart:valueEnd]
	l.attr.ValueSpan = span.Span{Start: valueStart, End: valueEnd}
	rawStart := valueStart
	if rawStart > 0 && (l.input[rawStart-1] == '"' || l.input[rawStart-1] == '\'') {
		rawStart--
	}
	l.attr.Raw = l.input[rawStart:spanEnd]
	l.attr.Span.End = spanEnd
	l.attr.HasValue = true
}

// flushAttribute appends the in-progress attribute to the pending tag,
// dropping duplicates by name with a warning.
func (l *Lexer) flushAttribute() {
	if !l.attrActive {
		return
	}
	l.attrActive = false
	for i := range l.pending.Attributes {
		if strings.EqualFold(l.pending.Attributes[i].Name, l.attr.Name) {
			l.warningf(l.attr.NameSpan, "duplicate attribute %q ignored", l.attr.Name)
			l.attr = Attribute{}
			return
		}
	}
	l.pending.Attributes = append(l.pending.Attributes, l.attr)
	l.attr = Attribute{}
}

func (l *Lexer) finishTag() (Token, bool) {
	l.pending.Span.End = l.pos
	l.state = stateData
	tok := l.pending
	l.pending = Token{}
	if tok.Kind == TokenEndTag {
		if len(tok.Attributes) > 0 {
			l.warningf(tok.Span, "attributes in end tag </%s> ignored", tok.Name)
			tok.Attributes = nil
		}
		if tok.SelfClosing {
			l.warningf(tok.Span, "'/' in end tag </%s> ignored", tok.Name)
			tok.SelfClosing = false
		}
	}
	return tok, true
}

func (l *Lexer) finishTagAtEOF() (Token, bool) {
	l.errorf(span.Point(len(l.input)), "expected '>', found end of file")
	return l.finishTag()
}

func isASCIILetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f'
}

func isTagDelimiter(ch byte) bool {
	return isWhitespace(ch) || ch == '>' || ch == '=' || ch == '/'
}
