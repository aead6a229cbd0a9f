package span

import "sort"

// Position is a human-oriented location within source text. Line and Column
// are 1-based; Offset is the byte offset the position was derived from.
type Position struct {
	Offset int
	Line   int
	Column int
}

// SourceText owns the immutable input for one parse session. Every span
// produced by the tokenizer and tree constructor indexes into it, and every
// string slice in the AST is a substring of Text.
type SourceText struct {
	text       string
	lineStarts []int
}

// NewSourceText wraps text and builds its line index.
func NewSourceText(text string) *SourceText {
	lineStarts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	return &SourceText{text: text, lineStarts: lineStarts}
}

// Text returns the full source text.
func (s *SourceText) Text() string {
	return s.text
}

// Len returns the source length in bytes.
func (s *SourceText) Len() int {
	return len(s.text)
}

// Slice returns the substring covered by sp, clamped to the source bounds.
func (s *SourceText) Slice(sp Span) string {
	start, end := sp.Start, sp.End
	if start < 0 {
		start = 0
	}
	if end > len(s.text) {
		end = len(s.text)
	}
	if start >= end {
		return ""
	}
	return s.text[start:end]
}

// PositionAt converts a byte offset into a 1-based line/column position.
// Offsets past the end of the text map to the final position.
func (s *SourceText) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.text) {
		offset = len(s.text)
	}
	line := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
	return Position{
		Offset: offset,
		Line:   line + 1,
		Column: offset - s.lineStarts[line] + 1,
	}
}
