package format

import (
	"github.com/dhamidi/marq/diag"
	"github.com/dhamidi/marq/html"
	"github.com/dhamidi/marq/span"
)

// Document bundles one parse result with its source text. Encoders need the
// source to resolve byte offsets into line and column positions.
type Document struct {
	Source  *span.SourceText
	Program *html.Program
	Errors  []diag.Diagnostic
}

type Encoder interface {
	MarshalText() ([]byte, error)
	Encode(doc *Document) error
}
