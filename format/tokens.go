package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/marq/html"
)

// TokenLineEncoder writes one tab-separated line per token: kind, span, and
// the token's payload. The line shape is stable so the output can be fed to
// cut and awk.
type TokenLineEncoder struct {
	w      io.Writer
	tokens []html.Token
}

func NewTokenLineEncoder(w io.Writer) *TokenLineEncoder {
	return &TokenLineEncoder{w: w}
}

func (e *TokenLineEncoder) Encode(tokens []html.Token) error {
	e.tokens = tokens
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TokenLineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, tok := range e.tokens {
		fmt.Fprintf(&sb, "%s\t%s\t%s\n", tok.Kind, tok.Span, e.payloadStr(tok))
	}
	return []byte(sb.String()), nil
}

func (e *TokenLineEncoder) payloadStr(tok html.Token) string {
	switch tok.Kind {
	case html.TokenStartTag:
		var parts []string
		parts = append(parts, tok.Name)
		for _, a := range tok.Attributes {
			if a.HasValue {
				parts = append(parts, fmt.Sprintf("%s=%q", a.Name, a.Value))
			} else {
				parts = append(parts, a.Name)
			}
		}
		if tok.SelfClosing {
			parts = append(parts, "/")
		}
		return strings.Join(parts, " ")
	case html.TokenEndTag, html.TokenDoctype:
		return tok.Name
	case html.TokenText, html.TokenComment:
		return fmt.Sprintf("%q", tok.Text)
	}
	return "-"
}
