package trace

import (
	"io"
	"sync"
	"time"
)

// RingSink keeps the last N events in memory (circular buffer).
type RingSink struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	head     int  // next write position
	full     bool // has wrapped around
	level    Level
}

// NewRingSink creates a new RingSink with the given capacity.
func NewRingSink(capacity int, level Level) *RingSink {
	if capacity <= 0 {
		capacity = 1024
	}

	return &RingSink{
		events:   make([]Event, capacity),
		capacity: capacity,
		level:    level,
	}
}

// Emit adds an event to the ring buffer.
func (t *RingSink) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Kind) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	stored := *ev
	if stored.Seq == 0 {
		stored.Seq = NextSeq()
		stored.Time = time.Now()
	}
	t.events[t.head] = stored
	t.head = (t.head + 1) % t.capacity

	if t.head == 0 {
		t.full = true
	}
}

// Snapshot returns a copy of all stored events in chronological order.
func (t *RingSink) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.full {
		result := make([]Event, t.head)
		copy(result, t.events[:t.head])
		return result
	}

	// Wrapped: [head:capacity] then [0:head]
	result := make([]Event, t.capacity)
	copy(result, t.events[t.head:])
	copy(result[t.capacity-t.head:], t.events[:t.head])
	return result
}

// Dump writes all stored events to w in the given format.
func (t *RingSink) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

// Flush is a no-op for RingSink since everything is in memory.
func (t *RingSink) Flush() error {
	return nil
}

// Close is a no-op for RingSink.
func (t *RingSink) Close() error {
	return nil
}

// Level returns the sink's event level.
func (t *RingSink) Level() Level {
	return t.level
}

// Enabled returns true if the event stream is active.
func (t *RingSink) Enabled() bool {
	return t.level > LevelOff
}
