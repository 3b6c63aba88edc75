package calltree

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// String renders the subtree rooted at n as a box-drawing diagram.
//
// A node's block starts with its payload's display form ("*" for
// structural nodes). The first child is attached to that line with
// " +-> "; later children are attached the same way under a margin as
// wide as the node's first line, with a " |" separator row between
// sibling blocks and a " |   " continuation prefix while more siblings
// follow.
func (n *Node) String() string {
	return strings.Join(n.renderRows(), "\n")
}

func (n *Node) renderRows() []string {
	first := "*"
	if n.value != nil {
		first = n.value.Display()
	}
	if len(n.children) == 0 {
		return []string{first}
	}
	// Margin width follows display width, so wide runes in payloads
	// keep later siblings aligned. For ASCII this equals len(first).
	margin := strings.Repeat(" ", runewidth.StringWidth(first))
	var rows []string
	last := len(n.children) - 1
	for i, c := range n.children {
		childRows := c.renderRows()
		if i == 0 {
			rows = append(rows, first+" +-> "+childRows[0])
		} else {
			rows = append(rows, margin+" +-> "+childRows[0])
		}
		prefix := "     "
		if i < last {
			prefix = " |   "
		}
		for _, cr := range childRows[1:] {
			rows = append(rows, margin+prefix+cr)
		}
		if i < last {
			rows = append(rows, margin+" |")
		}
	}
	return rows
}
