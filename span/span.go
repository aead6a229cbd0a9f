// Package span provides byte-offset source ranges and the source text they
// index into. Every AST node and diagnostic carries a Span; all string data in
// the tree is a slice of the SourceText the span points at.
package span

import (
	"errors"
	"fmt"
)

// ErrInvalidSpan is returned by New when start > end.
var ErrInvalidSpan = errors.New("span: start offset is greater than end offset")

// Span is a half-open byte-offset range [Start, End) into source text.
type Span struct {
	Start int
	End   int
}

// New returns a span covering [start, end). It fails with ErrInvalidSpan when
// start > end.
func New(start, end int) (Span, error) {
	if start > end {
		return Span{}, fmt.Errorf("%w: [%d, %d)", ErrInvalidSpan, start, end)
	}
	return Span{Start: start, End: end}, nil
}

// Point returns an empty span at offset.
func Point(offset int) Span {
	return Span{Start: offset, End: offset}
}

// Size returns the number of bytes covered by the span.
func (s Span) Size() int {
	return s.End - s.Start
}

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Contains reports whether pos falls inside the span. The end offset is
// exclusive, so a span never contains its own End.
func (s Span) Contains(pos int) bool {
	return pos >= s.Start && pos < s.End
}

// Merge returns the union of a and b: the smallest span containing both.
func Merge(a, b Span) Span {
	out := a
	if b.Start < out.Start {
		out.Start = b.Start
	}
	if b.End > out.End {
		out.End = b.End
	}
	return out
}

// Shrink moves both edges inward by n bytes, clamping to a non-negative
// length. Shrinking past the middle yields an empty span at the midpoint of
// the collapse.
func (s Span) Shrink(n int) Span {
	start := s.Start + n
	end := s.End - n
	if start > end {
		mid := s.Start + s.Size()/2
		return Span{Start: mid, End: mid}
	}
	return Span{Start: start, End: end}
}

// Expand moves both edges outward by n bytes, clamping the start at zero.
func (s Span) Expand(n int) Span {
	start := s.Start - n
	if start < 0 {
		start = 0
	}
	return Span{Start: start, End: s.End + n}
}

// Shift returns the span translated by n bytes. Diagnostics produced by an
// embedded-language parser are shifted by the content's base offset before
// they join the outer diagnostic list.
func (s Span) Shift(n int) Span {
	return Span{Start: s.Start + n, End: s.End + n}
}

func (s Span) String() string {
	return fmt.Sprintf("[%d-%d)", s.Start, s.End)
}
