package calltrace

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func adder() *Func {
	return &Func{
		Name: "add",
		Fn: func(_ any, args []any, _ []KV) (any, error) {
			return args[0].(int) + args[1].(int), nil
		},
	}
}

func TestTracedFuncRecordsAndPassesThrough(t *testing.T) {
	tr := New()
	traced := TraceWith(tr, adder())

	out, err := traced.Call([]any{2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.(int) != 5 {
		t.Fatalf("out = %v, want 5", out)
	}

	view := traced.CallTree()
	if len(view.Children()) != 1 {
		t.Fatalf("function view children = %d, want 1", len(view.Children()))
	}
	if !strings.Contains(view.String(), "add(2, 3)") {
		t.Fatalf("view missing the call:\n%s", view.String())
	}
}

func TestProxyRoutesThroughTracer(t *testing.T) {
	type box struct{ n int }
	tr := New()
	set := &Func{
		Name: "set",
		Fn: func(owner any, args []any, _ []KV) (any, error) {
			owner.(*box).n = args[0].(int)
			return args[0], nil
		},
	}
	b := &box{}
	proxy := InstrumentWith(tr, b, set)

	if _, err := proxy.Call("set", []any{7}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.n != 7 {
		t.Fatalf("method did not run against the owner")
	}

	// Full log carries the identity token; the object view scrubs it.
	if !strings.Contains(tr.Tree().String(), "box@0x") {
		t.Fatalf("owner token missing from the full log:\n%s", tr.Tree().String())
	}
	if strings.Contains(proxy.CallTree().String(), "@0x") {
		t.Fatalf("owner token leaked into the object view:\n%s", proxy.CallTree().String())
	}
}

func TestProxyUnknownMethodIsMisuse(t *testing.T) {
	proxy := InstrumentWith(New(), &struct{}{})
	_, err := proxy.Call("nope", nil)
	if !errors.Is(err, ErrMisuse) {
		t.Fatalf("expected ErrMisuse, got %v", err)
	}
}

func TestPrintCallTreeAcceptedValues(t *testing.T) {
	tr := New()
	traced := TraceWith(tr, adder())
	_, _ = traced.Call([]any{1, 1})

	var buf bytes.Buffer
	if err := PrintCallTree(&buf, tr); err != nil {
		t.Fatalf("print tracer: %v", err)
	}
	if !strings.Contains(buf.String(), "add(1, 1)") {
		t.Fatalf("printed tree misses the call:\n%s", buf.String())
	}

	buf.Reset()
	if err := PrintCallTree(&buf, traced); err != nil {
		t.Fatalf("print traced func: %v", err)
	}

	if err := PrintCallTree(&buf, 42); !errors.Is(err, ErrMisuse) {
		t.Fatalf("expected ErrMisuse for a plain int, got %v", err)
	}
}

func TestClearCallTreeAcceptedValues(t *testing.T) {
	tr := New()
	traced := TraceWith(tr, adder())
	_, _ = traced.Call([]any{1, 1})

	if err := ClearCallTree(traced); err != nil {
		t.Fatalf("clear traced func: %v", err)
	}
	if len(tr.Tree().Children()) != 0 {
		t.Fatalf("clear did not empty the log")
	}

	if err := ClearCallTree("nope"); !errors.Is(err, ErrMisuse) {
		t.Fatalf("expected ErrMisuse, got %v", err)
	}
}

func TestDefaultTracerIsStable(t *testing.T) {
	if Default() != Default() {
		t.Fatalf("default tracer must be a process-wide singleton")
	}
	traced := Trace(adder())
	if traced.Tracer() != Default() {
		t.Fatalf("Trace must bind to the default tracer")
	}
	_, _ = traced.Call([]any{1, 2})
	defer Default().Clear()
	if len(Default().Tree().Children()) == 0 {
		t.Fatalf("default tracer did not record")
	}
}
