package html

import (
	"github.com/dhamidi/marq/arena"
	"github.com/dhamidi/marq/diag"
	"github.com/dhamidi/marq/parser"
)

// HTML is the language marker binding the HTML grammar into the generic
// parser framework.
type HTML struct{}

func (HTML) DefaultOptions() Options {
	return DefaultOptions()
}

func (HTML) NewParser(a *arena.Arena, source string, options Options) parser.Impl[*Program] {
	return &htmlParser{arena: a, source: source, options: options.normalize()}
}

// NewParser returns the generic parser bound to HTML:
//
//	a := arena.New()
//	result, err := html.NewParser(a, source).Parse()
func NewParser(a *arena.Arena, source string) *parser.Parser[Options, *Program] {
	return parser.New[Options, *Program](HTML{}, a, source)
}

type htmlParser struct {
	arena   *arena.Arena
	source  string
	options Options
}

func (p *htmlParser) Parse() parser.Result[*Program] {
	lexer := NewLexer(p.source)
	builder := newTreeBuilder(p.arena, p.options, lexer)
	program := builder.run()

	errors := make([]diag.Diagnostic, 0, len(lexer.Diagnostics())+len(builder.errors))
	errors = append(errors, lexer.Diagnostics()...)
	errors = append(errors, builder.errors...)
	diag.SortBySpan(errors)

	return parser.Result[*Program]{Program: program, Errors: errors}
}
