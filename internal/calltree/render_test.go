package calltree

import (
	"strings"
	"testing"
)

func TestRenderLeafAndEmpty(t *testing.T) {
	root := New()
	if got := root.String(); got != "*" {
		t.Fatalf("empty root renders %q, want *", got)
	}
	root.SetValue(Label("x"))
	if got := root.String(); got != "x" {
		t.Fatalf("leaf renders %q, want x", got)
	}
}

func TestRenderTwoLeafChildren(t *testing.T) {
	root := New()
	root.SetValue(Label("a"))
	root.AddChild(Label("b"))
	root.AddChild(Label("c"))

	want := strings.Join([]string{
		"a +-> b",
		"  |",
		"  +-> c",
	}, "\n")
	if got := root.String(); got != want {
		t.Fatalf("render mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderNestedBlocks(t *testing.T) {
	root := New()
	root.SetValue(Label("r"))
	c1 := root.AddChild(Label("c1"))
	c1.AddChild(Label("x"))
	c1.AddChild(Label("y"))
	root.AddChild(Label("z"))

	want := strings.Join([]string{
		"r +-> c1 +-> x",
		"  |      |",
		"  |      +-> y",
		"  |",
		"  +-> z",
	}, "\n")
	if got := root.String(); got != want {
		t.Fatalf("render mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderStructuralRootWithChild(t *testing.T) {
	root := New()
	root.AddChild(Label("only"))

	if got := root.String(); got != "* +-> only" {
		t.Fatalf("render mismatch: %q", got)
	}
}
