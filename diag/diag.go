// Package diag defines the diagnostics collected during parsing. Diagnostics
// are recoverable by construction: the parser records them and keeps going, so
// a caller always gets a tree plus a precisely-spanned issue list, never a
// hard failure.
package diag

import (
	"fmt"
	"sort"

	"github.com/dhamidi/marq/span"
)

// Severity classifies a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	}
	return "unknown"
}

// Diagnostic is one recoverable parse issue.
type Diagnostic struct {
	Message  string
	Span     span.Span
	Severity Severity
}

// Errorf builds an error-severity diagnostic at sp.
func Errorf(sp span.Span, format string, args ...any) Diagnostic {
	return Diagnostic{
		Message:  fmt.Sprintf(format, args...),
		Span:     sp,
		Severity: Error,
	}
}

// Warningf builds a warning-severity diagnostic at sp.
func Warningf(sp span.Span, format string, args ...any) Diagnostic {
	return Diagnostic{
		Message:  fmt.Sprintf(format, args...),
		Span:     sp,
		Severity: Warning,
	}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s %s", d.Severity, d.Span, d.Message)
}

// Shift returns a copy of d with its span translated by offset. Embedded
// parsers report spans relative to their content; shifting by the content's
// base offset places them in outer-document coordinates.
func (d Diagnostic) Shift(offset int) Diagnostic {
	d.Span = d.Span.Shift(offset)
	return d
}

// ShiftAll shifts every diagnostic in ds by offset.
func ShiftAll(ds []Diagnostic, offset int) []Diagnostic {
	out := make([]Diagnostic, len(ds))
	for i, d := range ds {
		out[i] = d.Shift(offset)
	}
	return out
}

// SortBySpan orders ds by start offset, then end offset. The relative order of
// diagnostics with identical spans is preserved.
func SortBySpan(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].Span.Start != ds[j].Span.Start {
			return ds[i].Span.Start < ds[j].Span.Start
		}
		return ds[i].Span.End < ds[j].Span.End
	})
}

// HasErrors reports whether ds contains at least one error-severity entry.
func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
