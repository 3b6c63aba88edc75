package calltree

// Predicate decides whether a node is kept by Filter.
type Predicate func(*Node) bool

// Filter projects the subtree rooted at n onto the nodes matching
// pred, preserving ancestor/descendant order among them. The result is
// a new, independent tree: its root carries n's payload (the root is
// never tested), and its children are the shallowest matching
// descendants of n, each recursively projected by the same rule.
// Non-matching nodes between matches are elided; branches with no
// match contribute nothing.
func (n *Node) Filter(pred Predicate) *Node {
	root := &Node{value: n.value}
	for _, m := range n.shallowestMatches(pred) {
		root.adopt(m.Filter(pred))
	}
	return root
}

// shallowestMatches returns, in child order, the topmost node of every
// branch below n that satisfies pred. A matching node's own subtree is
// not searched further; it anchors a nested Filter pass instead.
func (n *Node) shallowestMatches(pred Predicate) []*Node {
	var matches []*Node
	var walk func(*Node)
	walk = func(m *Node) {
		if m != n && pred(m) {
			matches = append(matches, m)
			return
		}
		for _, c := range m.children {
			walk(c)
		}
	}
	walk(n)
	return matches
}
