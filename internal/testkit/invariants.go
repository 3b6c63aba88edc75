package testkit

import (
	"fmt"

	"calltrace/internal/calltree"
)

// CheckTreeInvariants runs a minimal set of structural invariants on a
// call tree:
// 1) every child's parent link points at the node that owns it
// 2) no node appears twice in the subtree (exclusive ownership, no cycles)
// 3) Depth, Ancestors and Root agree for every node
func CheckTreeInvariants(root *calltree.Node) error {
	if root == nil {
		return fmt.Errorf("nil root")
	}

	seen := make(map[*calltree.Node]bool)
	var walk func(n *calltree.Node) error
	walk = func(n *calltree.Node) error {
		if seen[n] {
			return fmt.Errorf("node %p appears twice in the tree", n)
		}
		seen[n] = true
		for _, c := range n.Children() {
			if c.Parent() != n {
				return fmt.Errorf("child %p has parent %p, want %p", c, c.Parent(), n)
			}
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return err
	}

	base := root.Depth()
	for _, n := range root.Descendants() {
		if n.Root() != root.Root() {
			return fmt.Errorf("node %p resolves a different root", n)
		}
		wantDepth := base + len(n.Ancestors()) - len(root.Ancestors())
		if n.Depth() != wantDepth {
			return fmt.Errorf("node %p depth=%d, want %d", n, n.Depth(), wantDepth)
		}
	}
	return nil
}
