package diag

import (
	"testing"

	"github.com/dhamidi/marq/span"
)

func TestShift(t *testing.T) {
	d := Errorf(span.Span{Start: 3, End: 5}, "bad token")
	shifted := d.Shift(20)

	if shifted.Span != (span.Span{Start: 23, End: 25}) {
		t.Errorf("Shift(20).Span = %v, want [23-25)", shifted.Span)
	}
	if d.Span != (span.Span{Start: 3, End: 5}) {
		t.Errorf("Shift mutated the original: %v", d.Span)
	}
}

func TestSortBySpanStable(t *testing.T) {
	ds := []Diagnostic{
		Errorf(span.Span{Start: 9, End: 10}, "third"),
		Warningf(span.Span{Start: 2, End: 4}, "first"),
		Errorf(span.Span{Start: 2, End: 4}, "second"),
	}
	SortBySpan(ds)

	want := []string{"first", "second", "third"}
	for i, w := range want {
		if ds[i].Message != w {
			t.Errorf("ds[%d].Message = %q, want %q", i, ds[i].Message, w)
		}
	}
}

func TestHasErrors(t *testing.T) {
	warnOnly := []Diagnostic{Warningf(span.Point(0), "w")}
	if HasErrors(warnOnly) {
		t.Error("HasErrors = true for warnings only")
	}
	if !HasErrors(append(warnOnly, Errorf(span.Point(1), "e"))) {
		t.Error("HasErrors = false with an error present")
	}
}
