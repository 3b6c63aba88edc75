package calltree

import (
	"errors"
	"reflect"
)

// ErrNotChild is returned when removing a node that is not a direct child.
var ErrNotChild = errors.New("node is not a direct child")

// Value is a node payload. Payloads are one of three cases: absent
// (a nil Value, marking a structural node such as the tree root), a
// call record, or a plain display label.
type Value interface {
	// Display returns the single-line rendering of the payload.
	Display() string
}

// Label is a plain display-string payload, used for outcome leaves.
type Label string

// Display returns the label text.
func (l Label) Display() string { return string(l) }

// Node is one position in an ordered tree. A node owns its children
// (in insertion order, which reflects real call order) and holds a
// non-owning reference to its parent, nil at the root.
type Node struct {
	value    Value
	parent   *Node
	children []*Node
}

// New returns a fresh root node with no value and no children.
func New() *Node {
	return &Node{}
}

// Value returns the node's payload, nil for structural nodes.
func (n *Node) Value() Value {
	return n.value
}

// SetValue replaces the node's payload.
func (n *Node) SetValue(v Value) {
	n.value = v
}

// Parent returns the node's parent, nil at the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the live ordered child slice. Callers must not
// reorder it; use AddChild and RemoveChild to mutate.
func (n *Node) Children() []*Node {
	return n.children
}

// AddChild creates a node holding v, appends it to n's children and
// returns it.
func (n *Node) AddChild(v Value) *Node {
	child := &Node{value: v, parent: n}
	n.children = append(n.children, child)
	return child
}

// adopt appends an already-built subtree as the last child of n.
// The subtree must not already have a parent.
func (n *Node) adopt(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild removes child from n's child sequence. The child is
// matched by identity, not by value; ErrNotChild is returned when it
// is not a direct child of n.
func (n *Node) RemoveChild(child *Node) error {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return nil
		}
	}
	return ErrNotChild
}

// RemoveChildren detaches every child at once.
func (n *Node) RemoveChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// Root walks parent links until none remain.
func (n *Node) Root() *Node {
	a := n
	for a.parent != nil {
		a = a.parent
	}
	return a
}

// Depth returns the distance from the root, 0 at the root.
func (n *Node) Depth() int {
	d := 0
	for a := n; a.parent != nil; a = a.parent {
		d++
	}
	return d
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Ancestors returns the chain from n up to the root, inclusive of both.
func (n *Node) Ancestors() []*Node {
	ancestors := []*Node{n}
	for a := n; a.parent != nil; {
		a = a.parent
		ancestors = append(ancestors, a)
	}
	return ancestors
}

// Descendants returns the subtree rooted at n in pre-order, n first.
func (n *Node) Descendants() []*Node {
	descendants := []*Node{n}
	for _, c := range n.children {
		descendants = append(descendants, c.Descendants()...)
	}
	return descendants
}

// Values returns the payloads of all descendants carrying one, in
// pre-order.
func (n *Node) Values() []Value {
	var values []Value
	for _, d := range n.Descendants() {
		if d.value != nil {
			values = append(values, d.value)
		}
	}
	return values
}

// LeafNodes returns all leaf descendants in child order, including n
// itself when it is a leaf.
func (n *Node) LeafNodes() []*Node {
	if n.IsLeaf() {
		return []*Node{n}
	}
	var leaves []*Node
	for _, c := range n.children {
		leaves = append(leaves, c.LeafNodes()...)
	}
	return leaves
}

// Contains reports whether some node in the subtree holds a payload
// equal to v. Equality is structural, not identity.
func (n *Node) Contains(v Value) bool {
	for _, d := range n.Descendants() {
		if d.value != nil && reflect.DeepEqual(d.value, v) {
			return true
		}
	}
	return false
}
