package trace

import (
	"sync/atomic"
	"time"
)

var globalSeq uint64

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 {
	return atomic.AddUint64(&globalSeq, 1)
}

// Kind represents the type of call event.
type Kind uint8

const (
	// KindEnter marks an instrumented call starting.
	KindEnter Kind = iota + 1
	// KindReturn marks an instrumented call returning normally.
	KindReturn
	// KindRaise marks an instrumented call failing.
	KindRaise
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindEnter:
		return "enter"
	case KindReturn:
		return "return"
	case KindRaise:
		return "raise"
	default:
		return "unknown"
	}
}

// Event is one point in the live call stream: a call entering,
// returning, or failing. Events are ephemeral diagnostics emitted
// alongside the call tree, not a persisted form of it.
type Event struct {
	Time   time.Time // wall-clock timestamp, filled at emit time
	Seq    uint64    // global sequence number (monotonic)
	Kind   Kind      // enter, return or raise
	Depth  int       // nesting depth of the call, 1 for outermost
	Call   string    // rendered call, e.g. `fib(3)`
	Detail string    // returned display form or raised kind
}
