// Package trace builds call trees from instrumented invocations.
//
// A Tracer owns one call tree and a cursor into it. Instrumentation
// hooks drive the push/pop protocol through LogCall, which brackets
// the real invocation so entry and exit always pair up, whether the
// call returns, fails, or panics. The growing tree is queried with
// ForFunction and ForObject, thin projections over calltree.Filter.
//
// Alongside the tree, a Tracer can mirror activity into a Sink: a
// live stream of enter/return/raise events with ring, stream and
// fan-out implementations. The sink is ephemeral diagnostics only;
// trees are never persisted or reloaded through it.
//
// A Tracer models one logical call stack. Concurrent instrumented
// calls through a shared Tracer interleave incorrectly; use Suspended
// to keep reentrant internal operations out of the trace instead.
package trace
