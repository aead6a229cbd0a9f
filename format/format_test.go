package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/marq/arena"
	"github.com/dhamidi/marq/html"
	"github.com/dhamidi/marq/span"
)

func parseDocument(t *testing.T, source string) *Document {
	t.Helper()
	result, err := html.NewParser(arena.New(), source).Parse()
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	return &Document{
		Source:  span.NewSourceText(source),
		Program: result.Program,
		Errors:  result.Errors,
	}
}

func TestASTJSONEncoder(t *testing.T) {
	doc := parseDocument(t, "<div id=\"x\">hi</div>\n</p>")

	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf).Encode(doc); err != nil {
		t.Fatalf("Encode error = %v", err)
	}

	var decoded struct {
		Nodes []struct {
			Kind       string `json:"kind"`
			Tag        string `json:"tag"`
			Attributes []struct {
				Name  string `json:"name"`
				Value string `json:"value"`
			} `json:"attributes"`
			Children []struct {
				Kind  string `json:"kind"`
				Value string `json:"value"`
			} `json:"children"`
			Span struct {
				Start struct {
					Offset int `json:"offset"`
					Line   int `json:"line"`
					Column int `json:"column"`
				} `json:"start"`
			} `json:"span"`
		} `json:"nodes"`
		Errors []struct {
			Message  string `json:"message"`
			Severity string `json:"severity"`
			Span     struct {
				Start struct {
					Line int `json:"line"`
				} `json:"start"`
			} `json:"span"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	div := decoded.Nodes[0]
	if div.Kind != "element" || div.Tag != "div" {
		t.Errorf("node = %+v, want element div", div)
	}
	if len(div.Attributes) != 1 || div.Attributes[0].Value != "x" {
		t.Errorf("attributes = %+v, want id=x", div.Attributes)
	}
	if len(div.Children) != 1 || div.Children[0].Value != "hi" {
		t.Errorf("children = %+v, want the text child", div.Children)
	}
	if div.Span.Start.Line != 1 || div.Span.Start.Column != 1 {
		t.Errorf("span start = %+v, want line 1 column 1", div.Span.Start)
	}

	if len(decoded.Errors) != 1 {
		t.Fatalf("errors = %+v, want the stray end tag", decoded.Errors)
	}
	if decoded.Errors[0].Span.Start.Line != 2 {
		t.Errorf("error line = %d, want 2", decoded.Errors[0].Span.Start.Line)
	}
}

func TestASTJSONEncoderEmptyDocument(t *testing.T) {
	doc := parseDocument(t, "")

	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf).Encode(doc); err != nil {
		t.Fatalf("Encode error = %v", err)
	}
	// nodes may be null, errors must be an array.
	if !strings.Contains(buf.String(), `"errors": []`) {
		t.Errorf("output = %s, want an empty errors array", buf.String())
	}
}

func TestTreeEncoder(t *testing.T) {
	doc := parseDocument(t, `<!DOCTYPE html><ul><li>a<li>b</ul><!-- done -->`)

	var buf bytes.Buffer
	if err := NewTreeEncoder(&buf).Encode(doc); err != nil {
		t.Fatalf("Encode error = %v", err)
	}

	want := strings.Join([]string{
		"doctype html",
		"element ul",
		"  element li",
		`    text "a"`,
		"  element li",
		`    text "b"`,
		`comment " done "`,
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestTreeEncoderDiagnostics(t *testing.T) {
	doc := parseDocument(t, "</div>")

	var buf bytes.Buffer
	if err := NewTreeEncoder(&buf).Encode(doc); err != nil {
		t.Fatalf("Encode error = %v", err)
	}
	if want := "error 1:1 Unexpected closing tag: </div>\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestTokenLineEncoder(t *testing.T) {
	lexer := html.NewLexer(`<a href="x">t</a>`)
	var tokens []html.Token
	for {
		tok := lexer.Next()
		tokens = append(tokens, tok)
		if tok.Kind == html.TokenEOF {
			break
		}
	}

	var buf bytes.Buffer
	if err := NewTokenLineEncoder(&buf).Encode(tokens); err != nil {
		t.Fatalf("Encode error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %v, want start tag, text, end tag, eof", lines)
	}
	if !strings.HasPrefix(lines[0], "StartTag\t") || !strings.Contains(lines[0], `href="x"`) {
		t.Errorf("line = %q, want the start tag with its attribute", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Text\t") || !strings.HasSuffix(lines[1], `"t"`) {
		t.Errorf("line = %q, want the text token", lines[1])
	}
}
