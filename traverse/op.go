// Package traverse defines the control signal shared by all tree walkers.
package traverse

// Op tells a walker what to do after a visitor hook returns.
type Op int

const (
	// Continue descends into the node's children, then moves to its siblings.
	Continue Op = iota
	// SkipChildren moves straight to the node's siblings without descending.
	SkipChildren
	// Stop aborts the entire traversal before the next hook is invoked.
	Stop
)

func (o Op) String() string {
	switch o {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	}
	return "Unknown"
}
