package trace

import (
	"calltrace/internal/calltree"
)

// Tracer records instrumented calls into a call tree. It models one
// logical call stack: the cursor is a single shared position, so
// concurrent instrumented calls through one Tracer are unsupported and
// will interleave incorrectly.
type Tracer struct {
	tree         *calltree.Node
	cursor       *calltree.Node
	suspendDepth int
	sink         Sink
}

// New returns an empty Tracer: a valueless root, cursor at the root,
// not suspended, events discarded.
func New() *Tracer {
	root := calltree.New()
	return &Tracer{tree: root, cursor: root, sink: Nop}
}

// Tree returns the live call log. The root is a structural node; its
// children are the outermost recorded calls.
func (t *Tracer) Tree() *calltree.Node {
	return t.tree
}

// SetSink mirrors call enter/exit activity into s. Pass Nop to stop.
func (t *Tracer) SetSink(s Sink) {
	if s == nil {
		s = Nop
	}
	t.sink = s
}

// Suspend makes Push, Pop and LogCall recording no-ops until a
// matching Unsuspend. Suspensions nest; callers must balance every
// Suspend with exactly one Unsuspend on all exit paths.
func (t *Tracer) Suspend() {
	t.suspendDepth++
}

// Unsuspend undoes one Suspend. Extra calls drive the counter
// negative and leave the tracer suspended for good; that imbalance is
// a caller bug and is left visible rather than papered over.
func (t *Tracer) Unsuspend() {
	t.suspendDepth--
}

func (t *Tracer) suspended() bool {
	return t.suspendDepth != 0
}

// Suspended runs fn with the tracer suspended, restoring the counter
// even when fn panics. Internal operations that themselves trigger
// instrumented calls run under this guard so they stay out of the
// in-progress trace.
func (t *Tracer) Suspended(fn func()) {
	t.Suspend()
	defer t.Unsuspend()
	fn()
}

// Push enters a call: a child of the cursor holding rec becomes the
// new cursor. No-op while suspended.
func (t *Tracer) Push(rec *Record) {
	if t.suspended() {
		return
	}
	t.cursor = t.cursor.AddChild(rec)
	t.emit(KindEnter, rec.Display(), "")
}

// Pop exits a call with no recorded outcome: the cursor moves to its
// parent. No-op while suspended.
func (t *Tracer) Pop() {
	if t.suspended() {
		return
	}
	t.emit(KindReturn, t.cursorText(), "")
	t.up()
}

// PopReturned exits a call that returned v: the snapshot is stored in
// the current record, a display leaf with the snapshot's rendering is
// appended, and the cursor moves up. A nil v records no outcome, like
// Pop. No-op while suspended.
func (t *Tracer) PopReturned(v any) {
	if t.suspended() {
		return
	}
	if v != nil {
		snap := Clone(v)
		if rec, ok := t.cursor.Value().(*Record); ok {
			rec.setReturnedSnapshot(snap)
		}
		t.cursor.AddChild(calltree.Label(displayValue(snap)))
		t.emit(KindReturn, t.cursorText(), displayValue(snap))
	} else {
		t.emit(KindReturn, t.cursorText(), "")
	}
	t.up()
}

// PopRaised exits a call that failed with the given error kind: the
// kind is stored in the current record, a "raised <kind>" leaf is
// appended, and the cursor moves up. No-op while suspended.
func (t *Tracer) PopRaised(kind string) {
	if t.suspended() {
		return
	}
	if kind != "" {
		if rec, ok := t.cursor.Value().(*Record); ok {
			rec.SetRaised(kind)
		}
		t.cursor.AddChild(calltree.Label("raised " + kind))
	}
	t.emit(KindRaise, t.cursorText(), kind)
	t.up()
}

// up moves the cursor to its parent. An unbalanced pop at the root
// stays at the root.
func (t *Tracer) up() {
	if p := t.cursor.Parent(); p != nil {
		t.cursor = p
	}
}

func (t *Tracer) cursorText() string {
	if v := t.cursor.Value(); v != nil {
		return v.Display()
	}
	return "*"
}

func (t *Tracer) emit(kind Kind, call, detail string) {
	if !t.sink.Enabled() {
		return
	}
	t.sink.Emit(&Event{
		Kind:   kind,
		Depth:  t.cursor.Depth(),
		Call:   call,
		Detail: detail,
	})
}

// LogCall is the atomic instrumentation unit: it records entry into
// fn, invokes it with owner as the receiver (nil for free functions),
// records the outcome, and hands the result back untouched. Errors
// propagate unchanged and panics are re-raised after recording, so
// push and pop always pair up no matter how the call ends.
func (t *Tracer) LogCall(owner any, fn *Func, args []any, kw []KV) (out any, err error) {
	if !t.suspended() {
		t.Push(NewRecord(owner, fn, args, kw))
	}
	defer func() {
		if p := recover(); p != nil {
			t.PopRaised(PanicKind(p))
			panic(p)
		}
	}()
	out, err = fn.Call(owner, args, kw)
	if err != nil {
		t.PopRaised(ErrorKind(err))
		return out, err
	}
	t.PopReturned(out)
	return out, nil
}

// Clear discards every recorded call and resets the cursor to the
// root. The suspension counter is untouched.
func (t *Tracer) Clear() {
	t.tree.RemoveChildren()
	t.cursor = t.tree
}
