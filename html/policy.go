package html

import "strings"

// Policy is the error-tolerance configuration of the tree constructor. It is
// an enumerated table, not an implementation of the full HTML5
// adoption-agency algorithm: the pairs listed here are the only implied
// end-tag handling the constructor performs.
type Policy struct {
	// AutoClose maps an incoming start tag to the open tags it implicitly
	// closes when one of them is the current insertion point. For example
	// "li" closes an open "li", and any paragraph-closing block closes "p".
	AutoClose map[string][]string

	// OptionalClose lists tags whose implied or end-of-input closure is
	// expected HTML and produces no diagnostic.
	OptionalClose map[string]bool

	// Void lists tags that never take children and never enter the
	// open-element stack.
	Void map[string]bool

	// RawText lists tags whose content the tokenizer must treat as opaque
	// text. The tree constructor issues the raw-text command for these.
	RawText map[string]bool
}

// pClosers are the block-level start tags that implicitly close an open <p>.
var pClosers = []string{
	"address", "article", "aside", "blockquote", "details", "div", "dl",
	"fieldset", "figcaption", "figure", "footer", "form", "h1", "h2", "h3",
	"h4", "h5", "h6", "header", "hr", "main", "menu", "nav", "ol", "p",
	"pre", "section", "table", "ul",
}

// DefaultPolicy returns the documented auto-close table.
func DefaultPolicy() Policy {
	autoClose := map[string][]string{
		"li":       {"li"},
		"dd":       {"dd", "dt"},
		"dt":       {"dd", "dt"},
		"option":   {"option"},
		"optgroup": {"option", "optgroup"},
		"tr":       {"tr", "td", "th"},
		"td":       {"td", "th"},
		"th":       {"td", "th"},
		"thead":    {"thead", "tbody", "tfoot", "tr", "td", "th"},
		"tbody":    {"thead", "tbody", "tfoot", "tr", "td", "th"},
		"tfoot":    {"thead", "tbody", "tfoot", "tr", "td", "th"},
		"body":     {"head"},
	}
	for _, tag := range pClosers {
		autoClose[tag] = append(autoClose[tag], "p")
	}

	return Policy{
		AutoClose: autoClose,
		OptionalClose: tagSet(
			"p", "li", "dd", "dt", "option", "optgroup",
			"thead", "tbody", "tfoot", "tr", "td", "th",
			"head", "body", "html",
		),
		Void: tagSet(
			"area", "base", "br", "col", "embed", "hr", "img", "input",
			"link", "meta", "source", "track", "wbr",
		),
		RawText: tagSet("script", "style", "title", "textarea"),
	}
}

func tagSet(tags ...string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}

// closes reports whether an incoming start tag implicitly closes the given
// open tag. Both names may carry arbitrary case.
func (p Policy) closes(incoming, open string) bool {
	for _, t := range p.AutoClose[strings.ToLower(incoming)] {
		if strings.EqualFold(t, open) {
			return true
		}
	}
	return false
}

func (p Policy) optionalClose(tag string) bool {
	return p.OptionalClose[strings.ToLower(tag)]
}

func (p Policy) isVoid(tag string) bool {
	return p.Void[strings.ToLower(tag)]
}

func (p Policy) isRawText(tag string) bool {
	return p.RawText[strings.ToLower(tag)]
}
