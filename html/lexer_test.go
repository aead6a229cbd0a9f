package html

import (
	"testing"
)

func collectTokens(t *testing.T, input string) []Token {
	t.Helper()
	lexer := NewLexer(input)
	var tokens []Token
	for {
		tok := lexer.Next()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
		if len(tokens) > 1000 {
			t.Fatal("tokenizer did not terminate")
		}
	}
}

func TestLexerEmptyInput(t *testing.T) {
	tokens := collectTokens(t, "")
	if len(tokens) != 1 || tokens[0].Kind != TokenEOF {
		t.Errorf("tokens = %v, want a single EOF", tokens)
	}
}

func TestLexerEOFIsSticky(t *testing.T) {
	lexer := NewLexer("hi")
	lexer.Next() // text
	lexer.Next() // eof
	if tok := lexer.Next(); tok.Kind != TokenEOF {
		t.Errorf("Next after EOF = %v, want EOF again", tok.Kind)
	}
}

func TestLexerText(t *testing.T) {
	tokens := collectTokens(t, "hello world")
	if tokens[0].Kind != TokenText || tokens[0].Text != "hello world" {
		t.Errorf("token = %+v, want Text %q", tokens[0], "hello world")
	}
	if tokens[0].Span.Start != 0 || tokens[0].Span.End != 11 {
		t.Errorf("span = %v, want [0-11)", tokens[0].Span)
	}
}

func TestLexerStartTag(t *testing.T) {
	tokens := collectTokens(t, `<a href="x.html" disabled>`)
	tok := tokens[0]
	if tok.Kind != TokenStartTag || tok.Name != "a" {
		t.Fatalf("token = %+v, want StartTag a", tok)
	}
	if len(tok.Attributes) != 2 {
		t.Fatalf("attributes = %+v, want 2 entries", tok.Attributes)
	}
	href := tok.Attributes[0]
	if href.Name != "href" || href.Value != "x.html" || !href.HasValue {
		t.Errorf("attr[0] = %+v, want href=x.html", href)
	}
	if href.Raw != `"x.html"` {
		t.Errorf("attr[0].Raw = %q, want quoted raw text", href.Raw)
	}
	disabled := tok.Attributes[1]
	if disabled.Name != "disabled" || disabled.HasValue {
		t.Errorf("attr[1] = %+v, want bare disabled", disabled)
	}
	if tok.Span.End != len(`<a href="x.html" disabled>`) {
		t.Errorf("span = %v, want to cover the whole tag", tok.Span)
	}
}

func TestLexerAttributeForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value string
	}{
		{"double quoted", `<a x="1">`, "1"},
		{"single quoted", `<a x='1'>`, "1"},
		{"unquoted", `<a x=1>`, "1"},
		{"spaced equals", `<a x = "1">`, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := collectTokens(t, tt.input)[0]
			if len(tok.Attributes) != 1 {
				t.Fatalf("attributes = %+v, want 1 entry", tok.Attributes)
			}
			if got := tok.Attributes[0].Value; got != tt.value {
				t.Errorf("value = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestLexerDuplicateAttribute(t *testing.T) {
	lexer := NewLexer(`<a id="1" id="2">`)
	tok := lexer.Next()
	if len(tok.Attributes) != 1 || tok.Attributes[0].Value != "1" {
		t.Errorf("attributes = %+v, want only the first id", tok.Attributes)
	}
	if len(lexer.Diagnostics()) != 1 {
		t.Errorf("diagnostics = %v, want one duplicate warning", lexer.Diagnostics())
	}
}

func TestLexerSelfClosing(t *testing.T) {
	tok := collectTokens(t, `<br/>`)[0]
	if tok.Kind != TokenStartTag || !tok.SelfClosing {
		t.Errorf("token = %+v, want self-closing start tag", tok)
	}
}

func TestLexerEndTag(t *testing.T) {
	tok := collectTokens(t, `</div>`)[0]
	if tok.Kind != TokenEndTag || tok.Name != "div" {
		t.Errorf("token = %+v, want EndTag div", tok)
	}
}

func TestLexerComment(t *testing.T) {
	tokens := collectTokens(t, `<!-- hi -->after`)
	if tokens[0].Kind != TokenComment || tokens[0].Text != " hi " {
		t.Errorf("token = %+v, want Comment %q", tokens[0], " hi ")
	}
	if tokens[0].Bogus {
		t.Error("well-formed comment marked bogus")
	}
	if tokens[1].Kind != TokenText || tokens[1].Text != "after" {
		t.Errorf("token = %+v, want trailing text", tokens[1])
	}
}

func TestLexerEmptyComment(t *testing.T) {
	tok := collectTokens(t, `<!-->`)[0]
	if tok.Kind != TokenComment || tok.Text != "" {
		t.Errorf("token = %+v, want empty comment", tok)
	}
}

func TestLexerBogusComment(t *testing.T) {
	tok := collectTokens(t, `<! hello >`)[0]
	if tok.Kind != TokenComment || !tok.Bogus {
		t.Fatalf("token = %+v, want bogus comment", tok)
	}
	if tok.Text != " hello " {
		t.Errorf("value = %q, want %q", tok.Text, " hello ")
	}
}

func TestLexerUnterminatedComment(t *testing.T) {
	lexer := NewLexer(`<!-- never closed`)
	tok := lexer.Next()
	if tok.Kind != TokenComment {
		t.Fatalf("token = %+v, want comment to end of input", tok)
	}
	if len(lexer.Diagnostics()) == 0 {
		t.Error("no diagnostic for unterminated comment")
	}
	if eof := lexer.Next(); eof.Kind != TokenEOF {
		t.Errorf("next = %v, want EOF", eof.Kind)
	}
}

func TestLexerDoctype(t *testing.T) {
	tok := collectTokens(t, `<!DOCTYPE html>`)[0]
	if tok.Kind != TokenDoctype || tok.Name != "html" {
		t.Errorf("token = %+v, want Doctype html", tok)
	}
	if tok.Span.End != 15 {
		t.Errorf("span = %v, want [0-15)", tok.Span)
	}
}

func TestLexerDoctypeCaseInsensitive(t *testing.T) {
	tok := collectTokens(t, `<!doctype HTML>`)[0]
	if tok.Kind != TokenDoctype || tok.Name != "HTML" {
		t.Errorf("token = %+v, want Doctype with source-cased name", tok)
	}
}

func TestLexerLooseAngleBracketIsText(t *testing.T) {
	tokens := collectTokens(t, `1 < 2`)
	if len(tokens) != 2 || tokens[0].Kind != TokenText || tokens[0].Text != "1 < 2" {
		t.Errorf("tokens = %v, want a single text run", tokens)
	}
}

func TestLexerRawTextMode(t *testing.T) {
	input := `<script>if (1 < 2) { x("</notscript>"); }</script>`
	lexer := NewLexer(input)

	start := lexer.Next()
	if start.Kind != TokenStartTag || start.Name != "script" {
		t.Fatalf("token = %+v, want StartTag script", start)
	}
	lexer.EnterRawText("script")

	content := lexer.Next()
	want := `if (1 < 2) { x("</notscript>"); }`
	if content.Kind != TokenText || content.Text != want {
		t.Errorf("content = %+v, want Text %q", content, want)
	}

	end := lexer.Next()
	if end.Kind != TokenEndTag || end.Name != "script" {
		t.Errorf("token = %+v, want EndTag script", end)
	}
}

func TestLexerRawTextCaseInsensitiveClose(t *testing.T) {
	lexer := NewLexer(`<style>a{}</STYLE>`)
	lexer.Next()
	lexer.EnterRawText("style")
	content := lexer.Next()
	if content.Text != "a{}" {
		t.Errorf("content = %q, want %q", content.Text, "a{}")
	}
	end := lexer.Next()
	if end.Kind != TokenEndTag || end.Name != "STYLE" {
		t.Errorf("token = %+v, want EndTag STYLE", end)
	}
}

func TestLexerRawTextUnterminated(t *testing.T) {
	lexer := NewLexer(`<script>var x = 1;`)
	lexer.Next()
	lexer.EnterRawText("script")
	content := lexer.Next()
	if content.Kind != TokenText || content.Text != "var x = 1;" {
		t.Errorf("content = %+v, want text to end of input", content)
	}
	if len(lexer.Diagnostics()) == 0 {
		t.Error("no diagnostic for missing close tag")
	}
}

func TestLexerUnterminatedQuote(t *testing.T) {
	lexer := NewLexer(`<a href="oops`)
	tok := lexer.Next()
	if tok.Kind != TokenStartTag {
		t.Fatalf("token = %+v, want the partial start tag", tok)
	}
	if len(tok.Attributes) != 1 || tok.Attributes[0].Value != "oops" {
		t.Errorf("attributes = %+v, want href=oops", tok.Attributes)
	}
	if len(lexer.Diagnostics()) == 0 {
		t.Error("no diagnostic for unterminated quote")
	}
}

func TestLexerUnterminatedTag(t *testing.T) {
	lexer := NewLexer(`<a href`)
	tok := lexer.Next()
	if tok.Kind != TokenStartTag || tok.Name != "a" {
		t.Fatalf("token = %+v, want partial start tag", tok)
	}
	if len(lexer.Diagnostics()) == 0 {
		t.Error("no diagnostic for unterminated tag")
	}
}

func TestLexerEndTagAttributesDropped(t *testing.T) {
	lexer := NewLexer(`</div class="x">`)
	tok := lexer.Next()
	if tok.Kind != TokenEndTag || len(tok.Attributes) != 0 {
		t.Errorf("token = %+v, want attribute-free end tag", tok)
	}
	if len(lexer.Diagnostics()) == 0 {
		t.Error("no diagnostic for attributes in end tag")
	}
}

func TestLexerSpansCoverInput(t *testing.T) {
	input := `<!DOCTYPE html><p id="x">a<br>b</p><!-- c -->tail`
	tokens := collectTokens(t, input)
	offset := 0
	for _, tok := range tokens {
		if tok.Span.Start < offset {
			t.Errorf("token %v span %v starts before previous end %d", tok.Kind, tok.Span, offset)
		}
		if tok.Span.End > len(input) {
			t.Errorf("token %v span %v exceeds input length %d", tok.Kind, tok.Span, len(input))
		}
		offset = tok.Span.End
	}
	if offset != len(input) {
		t.Errorf("tokens end at %d, want full coverage of %d bytes", offset, len(input))
	}
}
