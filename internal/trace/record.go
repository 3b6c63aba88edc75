package trace

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// KV is one keyword argument. Keyword arguments keep their insertion
// order, so they are carried as a slice rather than a map.
type KV struct {
	Key   string
	Value any
}

// Func identifies an instrumented callable and knows how to invoke it.
// Identity is the *Func pointer: two calls belong to the same function
// exactly when they were logged against the same Func value.
type Func struct {
	// Name is the display name used in rendered call trees.
	Name string
	// Fn runs the real callable. owner is the receiver, nil for free
	// functions.
	Fn func(owner any, args []any, kw []KV) (any, error)
}

// Call invokes the underlying callable.
func (f *Func) Call(owner any, args []any, kw []KV) (any, error) {
	return f.Fn(owner, args, kw)
}

// Record captures one invocation: who was called, with what, and how
// the call ended. Arguments are snapshotted at construction and the
// outcome is set exactly once at completion; after that the record is
// immutable.
type Record struct {
	owner       any
	fn          *Func
	args        []any
	kwargs      []KV
	returned    any
	hasReturned bool
	raised      string
}

// NewRecord builds a record for a call entering now. The argument
// containers are deep-copied so later mutation by the caller does not
// leak into the trace.
func NewRecord(owner any, fn *Func, args []any, kwargs []KV) *Record {
	return &Record{
		owner:  owner,
		fn:     fn,
		args:   cloneSlice(args),
		kwargs: cloneKVs(kwargs),
	}
}

// Owner returns the receiving object, nil for free functions.
func (r *Record) Owner() any {
	return r.owner
}

// Func returns the callable's identity.
func (r *Record) Func() *Func {
	return r.fn
}

// Returned reports the deep-copied result and whether one was set.
func (r *Record) Returned() (any, bool) {
	return r.returned, r.hasReturned
}

// Raised returns the recorded error kind, "" while the call has not
// failed.
func (r *Record) Raised() string {
	return r.raised
}

// SetReturned stores a deep copy of the result.
func (r *Record) SetReturned(v any) {
	r.setReturnedSnapshot(Clone(v))
}

// setReturnedSnapshot stores an already-copied result.
func (r *Record) setReturnedSnapshot(snap any) {
	r.returned = snap
	r.hasReturned = true
}

// SetRaised records the kind of the error that ended the call.
func (r *Record) SetRaised(kind string) {
	r.raised = kind
}

// withoutOwner returns a fresh record equal to r with the owner
// cleared. The stored snapshots are shared, not re-copied; records are
// immutable once their outcome is set.
func (r *Record) withoutOwner() *Record {
	clone := *r
	clone.owner = nil
	return &clone
}

// Display renders the record as "owner-token name(args)".
func (r *Record) Display() string {
	return ObjectToken(r.owner) + r.fn.Name + "(" + r.DisplayArgs() + ")"
}

// DisplayArgs renders positional arguments, then key=value pairs in
// insertion order, all joined by ", ".
func (r *Record) DisplayArgs() string {
	parts := make([]string, 0, len(r.args)+len(r.kwargs))
	for _, a := range r.args {
		parts = append(parts, displayValue(a))
	}
	for _, kv := range r.kwargs {
		parts = append(parts, kv.Key+"="+displayValue(kv.Value))
	}
	return strings.Join(parts, ", ")
}

// displayValue renders one payload value. Strings are NFC-normalized
// and quoted so visually identical traces compare equal; everything
// else goes through fmt.
func displayValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(norm.NFC.String(x))
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Object identity registry for owners that are not pointer-shaped.
var (
	identityMu   sync.Mutex
	identityNext uint64
	identities   map[any]uint64
)

// ObjectToken returns the identity prefix for an owner:
// "<TypeName>@0x<8 uppercase hex digits>." — stable within the
// process — or "" when owner is nil. Method receivers are expected to
// be pointers; by-value aggregates without a stable address all share
// the zero token.
func ObjectToken(owner any) string {
	if owner == nil {
		return ""
	}
	t := reflect.TypeOf(owner)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" {
		name = t.String()
	}
	return fmt.Sprintf("%s@0x%08X.", name, uint32(objectID(owner)))
}

// objectID returns a process-stable identity for owner: the address
// for pointer-shaped values, otherwise a sequence number from a
// registry keyed by the value itself.
func objectID(owner any) uint64 {
	v := reflect.ValueOf(owner)
	switch v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
		return uint64(v.Pointer())
	}
	if !v.Type().Comparable() {
		// A by-value aggregate holding a slice cannot key the registry
		// and has no address of its own.
		return 0
	}
	identityMu.Lock()
	defer identityMu.Unlock()
	if identities == nil {
		identities = make(map[any]uint64)
	}
	id, ok := identities[owner]
	if !ok {
		identityNext++
		id = identityNext
		identities[owner] = id
	}
	return id
}

// sameOwner compares owners by identity. Interface equality panics on
// non-comparable dynamic types, so those fall back to objectID; the
// zero id never matches.
func sameOwner(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if !ta.Comparable() {
		id := objectID(a)
		return id != 0 && id == objectID(b)
	}
	return a == b
}
