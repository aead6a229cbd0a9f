package span

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	s, err := New(2, 5)
	if err != nil {
		t.Fatalf("New(2, 5) error = %v", err)
	}
	if s.Start != 2 || s.End != 5 {
		t.Errorf("New(2, 5) = %v, want [2-5)", s)
	}
}

func TestNewInvalid(t *testing.T) {
	_, err := New(5, 2)
	if !errors.Is(err, ErrInvalidSpan) {
		t.Errorf("New(5, 2) error = %v, want ErrInvalidSpan", err)
	}
}

func TestMergeIdentity(t *testing.T) {
	spans := []Span{
		{Start: 0, End: 0},
		{Start: 3, End: 7},
		{Start: 100, End: 250},
	}
	for _, s := range spans {
		if got := Merge(s, s); got != s {
			t.Errorf("Merge(%v, %v) = %v, want %v", s, s, got, s)
		}
	}
}

func TestMergeContainsBoth(t *testing.T) {
	tests := []struct {
		a, b, want Span
	}{
		{Span{0, 5}, Span{3, 9}, Span{0, 9}},
		{Span{3, 9}, Span{0, 5}, Span{0, 9}},
		{Span{0, 2}, Span{8, 10}, Span{0, 10}},
		{Span{4, 6}, Span{0, 10}, Span{0, 10}},
	}
	for _, tt := range tests {
		got := Merge(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("Merge(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got.Start > tt.a.Start || got.End < tt.a.End {
			t.Errorf("Merge(%v, %v) = %v does not contain %v", tt.a, tt.b, got, tt.a)
		}
		if got.Start > tt.b.Start || got.End < tt.b.End {
			t.Errorf("Merge(%v, %v) = %v does not contain %v", tt.a, tt.b, got, tt.b)
		}
	}
}

func TestContains(t *testing.T) {
	s := Span{Start: 2, End: 5}
	tests := []struct {
		pos  int
		want bool
	}{
		{1, false},
		{2, true},
		{4, true},
		{5, false},
		{9, false},
	}
	for _, tt := range tests {
		if got := s.Contains(tt.pos); got != tt.want {
			t.Errorf("%v.Contains(%d) = %v, want %v", s, tt.pos, got, tt.want)
		}
	}
}

func TestShrinkClamps(t *testing.T) {
	s := Span{Start: 2, End: 6}
	if got := s.Shrink(1); got != (Span{3, 5}) {
		t.Errorf("Shrink(1) = %v, want [3-5)", got)
	}
	if got := s.Shrink(10); got.Size() != 0 {
		t.Errorf("Shrink(10) = %v, want empty span", got)
	}
}

func TestExpandClampsAtZero(t *testing.T) {
	s := Span{Start: 1, End: 4}
	if got := s.Expand(3); got != (Span{0, 7}) {
		t.Errorf("Expand(3) = %v, want [0-7)", got)
	}
}

func TestShift(t *testing.T) {
	s := Span{Start: 3, End: 7}
	if got := s.Shift(20); got != (Span{23, 27}) {
		t.Errorf("Shift(20) = %v, want [23-27)", got)
	}
}
