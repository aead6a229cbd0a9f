package html

import "github.com/dhamidi/marq/traverse"

// Visitor holds the read-only hooks for a pre-order walk. Nil hooks behave as
// traverse.Continue. Each hook receives the node and the stack of open
// ancestor elements, outermost first; the slice is reused between calls and
// must be copied if retained.
type Visitor struct {
	Doctype func(*Doctype, []*Element) traverse.Op
	Element func(*Element, []*Element) traverse.Op
	Text    func(*Text, []*Element) traverse.Op
	Comment func(*Comment, []*Element) traverse.Op
}

// Walk traverses program depth-first in pre-order. It returns when every node
// has been visited or as soon as a hook returns traverse.Stop: after Stop, no
// further hook is invoked. Multiple concurrent Walks over the same tree are
// safe as long as no mutating traversal runs at the same time.
func Walk(program *Program, v *Visitor) {
	w := &walker{
		doctype: v.Doctype,
		element: v.Element,
		text:    v.Text,
		comment: v.Comment,
	}
	w.nodes(program.Nodes, nil)
}

// MutVisitor holds the hooks for a mutating walk. The hooks may rewrite the
// nodes they receive, including their child lists; mutation requires
// exclusive access to the tree for the duration of the walk.
type MutVisitor struct {
	Doctype func(*Doctype, []*Element) traverse.Op
	Element func(*Element, []*Element) traverse.Op
	Text    func(*Text, []*Element) traverse.Op
	Comment func(*Comment, []*Element) traverse.Op
}

// WalkMut is Walk for visitors that mutate the tree. Each container's child
// sequence is snapshotted when traversal enters it, so inserting or removing
// children mid-walk never affects the sibling iteration already in progress:
// the edit is visible to later traversals, not to this one.
func WalkMut(program *Program, v *MutVisitor) {
	w := &walker{
		doctype: v.Doctype,
		element: v.Element,
		text:    v.Text,
		comment: v.Comment,
	}
	w.nodes(program.Nodes, nil)
}

type walker struct {
	doctype func(*Doctype, []*Element) traverse.Op
	element func(*Element, []*Element) traverse.Op
	text    func(*Text, []*Element) traverse.Op
	comment func(*Comment, []*Element) traverse.Op
	stopped bool
}

// nodes walks a snapshot of children. The copy pins this level's iteration
// against structural edits made by mutating hooks.
func (w *walker) nodes(children []Node, ancestors []*Element) {
	snapshot := make([]Node, len(children))
	copy(snapshot, children)
	for _, n := range snapshot {
		if w.stopped {
			return
		}
		w.node(n, ancestors)
	}
}

func (w *walker) node(n Node, ancestors []*Element) {
	switch v := n.(type) {
	case *Doctype:
		if w.doctype != nil && w.doctype(v, ancestors) == traverse.Stop {
			w.stopped = true
		}
	case *Text:
		if w.text != nil && w.text(v, ancestors) == traverse.Stop {
			w.stopped = true
		}
	case *Comment:
		if w.comment != nil && w.comment(v, ancestors) == traverse.Stop {
			w.stopped = true
		}
	case *Element:
		op := traverse.Continue
		if w.element != nil {
			op = w.element(v, ancestors)
		}
		switch op {
		case traverse.Stop:
			w.stopped = true
		case traverse.SkipChildren:
		case traverse.Continue:
			w.nodes(v.Children, append(ancestors, v))
		}
	}
}
