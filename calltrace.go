// Package calltrace records the nested call structure of a running
// program: each instrumented invocation becomes a node in a tree,
// children are the calls made during that invocation, and the result
// can be projected onto one function or one object and printed as a
// box-drawing diagram.
//
// The core lives in internal/trace and internal/calltree; this
// package is the public surface: aliases for the core types, a
// process-wide default Tracer, function wrappers, and explicit
// per-object instrumentation.
package calltrace

import (
	"errors"
	"fmt"
	"io"

	"calltrace/internal/calltree"
	"calltrace/internal/trace"
)

// Core types, re-exported for consumers.
type (
	Tracer = trace.Tracer
	Func   = trace.Func
	KV     = trace.KV
	Record = trace.Record
	Node   = calltree.Node
	Label  = calltree.Label
)

// ErrMisuse is returned when a call-tree helper is handed a value
// that is neither a Tracer nor a traced function or object.
var ErrMisuse = errors.New("not a tracer or traced value")

// defaultTracer is the ambient tracer used by Trace and Instrument.
// Prefer passing an explicit Tracer; the default exists only as a
// process-lifetime convenience.
var defaultTracer = trace.New()

// Default returns the process-wide default Tracer.
func Default() *Tracer {
	return defaultTracer
}

// New returns a fresh, empty Tracer.
func New() *Tracer {
	return trace.New()
}

// TracedFunc is an instrumented stand-in for a free function, bound
// to a Tracer. Calls through it are recorded; the wrapped function's
// result and error pass through unchanged.
type TracedFunc struct {
	tracer *Tracer
	fn     *Func
}

// Trace wraps fn so calls through the wrapper are recorded by the
// default Tracer.
func Trace(fn *Func) *TracedFunc {
	return TraceWith(defaultTracer, fn)
}

// TraceWith wraps fn so calls through the wrapper are recorded by t.
func TraceWith(t *Tracer, fn *Func) *TracedFunc {
	return &TracedFunc{tracer: t, fn: fn}
}

// Call invokes the wrapped function through the tracer.
func (f *TracedFunc) Call(args []any, kw ...KV) (any, error) {
	return f.tracer.LogCall(nil, f.fn, args, kw)
}

// Func returns the wrapped function's identity.
func (f *TracedFunc) Func() *Func {
	return f.fn
}

// Tracer returns the tracer recording this function's calls.
func (f *TracedFunc) Tracer() *Tracer {
	return f.tracer
}

// CallTree returns the trace projected onto this function's calls.
func (f *TracedFunc) CallTree() *Node {
	return f.tracer.ForFunction(f.fn)
}

// ClearCallTree discards the owning tracer's whole log.
func (f *TracedFunc) ClearCallTree() {
	f.tracer.Clear()
}

// Proxy routes method calls on one object through a Tracer. It is the
// explicit replacement for runtime universal interception: each
// member to trace is wrapped as a named Func up front.
type Proxy struct {
	owner   any
	tracer  *Tracer
	methods map[string]*Func
}

// Instrument builds a Proxy for owner on the default Tracer.
func Instrument(owner any, methods ...*Func) *Proxy {
	return InstrumentWith(defaultTracer, owner, methods...)
}

// InstrumentWith builds a Proxy for owner on t. Methods are keyed by
// their Func name.
func InstrumentWith(t *Tracer, owner any, methods ...*Func) *Proxy {
	byName := make(map[string]*Func, len(methods))
	for _, m := range methods {
		byName[m.Name] = m
	}
	return &Proxy{owner: owner, tracer: t, methods: byName}
}

// Call invokes the named instrumented method with the proxy's owner
// as receiver. An unknown name is a misuse, not a recorded call.
func (p *Proxy) Call(name string, args []any, kw ...KV) (any, error) {
	fn, ok := p.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: no instrumented method %q on %s", ErrMisuse, name, trace.ObjectToken(p.owner))
	}
	return p.tracer.LogCall(p.owner, fn, args, kw)
}

// Owner returns the instrumented object.
func (p *Proxy) Owner() any {
	return p.owner
}

// Tracer returns the tracer recording this object's calls.
func (p *Proxy) Tracer() *Tracer {
	return p.tracer
}

// CallTree returns the trace projected onto this object's calls, with
// the owner's identity token scrubbed from every line.
func (p *Proxy) CallTree() *Node {
	return p.tracer.ForObject(p.owner)
}

// ClearCallTree discards the owning tracer's whole log.
func (p *Proxy) ClearCallTree() {
	p.tracer.Clear()
}

// PrintCallTree writes v's call tree to w. v may be a *Tracer (the
// full log), a *TracedFunc (that function's view), or a *Proxy (that
// object's view); anything else is ErrMisuse.
func PrintCallTree(w io.Writer, v any) error {
	tree, err := callTreeOf(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, tree)
	return err
}

// ClearCallTree clears the tracer behind v, accepting the same values
// as PrintCallTree.
func ClearCallTree(v any) error {
	switch x := v.(type) {
	case *Tracer:
		x.Clear()
	case *TracedFunc:
		x.ClearCallTree()
	case *Proxy:
		x.ClearCallTree()
	default:
		return fmt.Errorf("%w: %T", ErrMisuse, v)
	}
	return nil
}

func callTreeOf(v any) (*Node, error) {
	switch x := v.(type) {
	case *Tracer:
		return x.Tree(), nil
	case *TracedFunc:
		return x.CallTree(), nil
	case *Proxy:
		return x.CallTree(), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrMisuse, v)
	}
}
