// Package parser is the generic entry point shared by every markup grammar in
// this module. A language binds its options, result, and implementation types
// through the Language interface; Parser resolves the binding statically via
// generics, so adding a grammar means implementing Language and nothing else.
package parser

import (
	"errors"

	"github.com/dhamidi/marq/arena"
	"github.com/dhamidi/marq/diag"
)

// ErrAlreadyParsed is returned when Parse is called a second time on the same
// Parser. A Parser runs exactly once; reuse is an API-contract violation and
// is reported as a hard error, never as a diagnostic.
var ErrAlreadyParsed = errors.New("parser: Parse called twice on the same parser")

// ErrArenaReleased is returned when Parse is called with an arena that has
// already been released.
var ErrArenaReleased = errors.New("parser: arena released before Parse")

// Result is what every parse produces: the language's AST root plus the
// recoverable issues found along the way, in source order. Parsing always
// yields a usable Program, even for garbage input.
type Result[R any] struct {
	Program R
	Errors  []diag.Diagnostic
}

// Impl is a single-use parser instance for one language.
type Impl[R any] interface {
	Parse() Result[R]
}

// Language binds a grammar to its option type O and result type R. Language
// values are markers; implementations are typically zero-sized structs.
type Language[O, R any] interface {
	// DefaultOptions returns the options used when the caller sets none.
	DefaultOptions() O
	// NewParser creates the single-use implementation for one source text.
	// All nodes it produces must be owned by a.
	NewParser(a *arena.Arena, source string, options O) Impl[R]
}

// Parser drives one parse of one source text for one language.
type Parser[O, R any] struct {
	lang    Language[O, R]
	arena   *arena.Arena
	source  string
	options O
	parsed  bool
}

// New creates a parser for lang over source. All AST memory is allocated from
// a and freed together when a is released.
func New[O, R any](lang Language[O, R], a *arena.Arena, source string) *Parser[O, R] {
	return &Parser[O, R]{
		lang:    lang,
		arena:   a,
		source:  source,
		options: lang.DefaultOptions(),
	}
}

// WithOptions overrides the language options. It returns the parser for
// chaining and must be called before Parse.
func (p *Parser[O, R]) WithOptions(options O) *Parser[O, R] {
	p.options = options
	return p
}

// Parse runs the language implementation exactly once. The error return
// reports contract violations only (double parse, released arena); malformed
// input never fails Parse and surfaces in Result.Errors instead.
func (p *Parser[O, R]) Parse() (Result[R], error) {
	if p.parsed {
		return Result[R]{}, ErrAlreadyParsed
	}
	if p.arena.Released() {
		return Result[R]{}, ErrArenaReleased
	}
	p.parsed = true

	impl := p.lang.NewParser(p.arena, p.source, p.options)
	return impl.Parse(), nil
}
