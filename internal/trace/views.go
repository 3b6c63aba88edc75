package trace

import (
	"calltrace/internal/calltree"
)

// ForFunction projects root onto the calls of fn. Outcome leaves stay
// attached to their call: a leaf without a record matches through its
// parent's record.
func ForFunction(root *calltree.Node, fn *Func) *calltree.Node {
	return root.Filter(func(n *calltree.Node) bool {
		rec, ok := recordFor(n)
		return ok && rec.fn == fn
	})
}

// ForObject projects root onto the calls received by owner, then
// clears the owner from every retained record: the view is already
// scoped to one object, so repeating its identity token on every line
// would be noise. Owners are compared by identity; method receivers
// are expected to be pointers.
func ForObject(root *calltree.Node, owner any) *calltree.Node {
	view := root.Filter(func(n *calltree.Node) bool {
		rec, ok := recordFor(n)
		return ok && sameOwner(rec.owner, owner)
	})
	for _, n := range view.Descendants() {
		if rec, ok := n.Value().(*Record); ok {
			n.SetValue(rec.withoutOwner())
		}
	}
	return view
}

// recordFor resolves the record governing a node: its own payload, or
// its parent's for outcome leaves.
func recordFor(n *calltree.Node) (*Record, bool) {
	if rec, ok := n.Value().(*Record); ok {
		return rec, true
	}
	p := n.Parent()
	if p == nil {
		return nil, false
	}
	rec, ok := p.Value().(*Record)
	return rec, ok
}

// ForFunction is the Tracer-level convenience over the package
// function of the same name.
func (t *Tracer) ForFunction(fn *Func) *calltree.Node {
	return ForFunction(t.tree, fn)
}

// ForObject is the Tracer-level convenience over the package function
// of the same name.
func (t *Tracer) ForObject(owner any) *calltree.Node {
	return ForObject(t.tree, owner)
}
