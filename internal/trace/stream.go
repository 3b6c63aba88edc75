package trace

import (
	"io"
	"sync"
	"time"
)

// StreamSink writes events immediately to an io.Writer.
type StreamSink struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
}

// NewStreamSink creates a new StreamSink.
func NewStreamSink(w io.Writer, level Level, format Format) *StreamSink {
	return &StreamSink{w: w, level: level, format: format}
}

// Emit writes an event to the output. Write errors are swallowed so a
// broken event stream never disturbs the traced program.
func (t *StreamSink) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Kind) {
		return
	}

	stamped := *ev
	if stamped.Seq == 0 {
		stamped.Seq = NextSeq()
		stamped.Time = time.Now()
	}

	data := FormatEvent(&stamped, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = t.w.Write(data) //nolint:errcheck
}

// Flush ensures all buffered data is written. StreamSink writes
// immediately, so this only forwards to a flushable writer.
func (t *StreamSink) Flush() error {
	if flusher, ok := t.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close flushes and closes the writer if it implements io.Closer.
func (t *StreamSink) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if closer, ok := t.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Level returns the sink's event level.
func (t *StreamSink) Level() Level {
	return t.level
}

// Enabled returns true if the event stream is active.
func (t *StreamSink) Enabled() bool {
	return t.level > LevelOff
}
