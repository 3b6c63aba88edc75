package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Sink receives the live call-event stream.
type Sink interface {
	// Emit records one event. Must be goroutine-safe.
	Emit(ev *Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error

	// Level returns the sink's event level.
	Level() Level

	// Enabled returns true if the sink keeps anything (Level > LevelOff).
	Enabled() bool
}

// StorageMode determines how events are stored.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // immediate write
	ModeRing                          // circular buffer
	ModeBoth                          // stream + ring
)

// String returns the string representation of StorageMode.
func (m StorageMode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	case ModeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// ParseMode converts a string to StorageMode.
func ParseMode(s string) (StorageMode, error) {
	switch strings.ToLower(s) {
	case "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	case "both":
		return ModeBoth, nil
	default:
		return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
	}
}

// SinkConfig holds event-sink configuration.
type SinkConfig struct {
	Level      Level       // event level
	Mode       StorageMode // storage mode
	Format     Format      // output format for stream mode
	Output     io.Writer   // for stream mode (if nil, use OutputPath)
	OutputPath string      // alternative: file path ("-" for stderr)
	RingSize   int         // for ring mode (default 1024)
}

// NewSink creates a Sink based on cfg.
func NewSink(cfg SinkConfig) (Sink, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}

	if cfg.RingSize <= 0 {
		cfg.RingSize = 1024
	}

	switch cfg.Mode {
	case ModeStream:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		return NewStreamSink(w, cfg.Level, cfg.Format), nil

	case ModeRing:
		return NewRingSink(cfg.RingSize, cfg.Level), nil

	case ModeBoth:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		stream := NewStreamSink(w, cfg.Level, cfg.Format)
		ring := NewRingSink(cfg.RingSize, cfg.Level)
		return NewMultiSink(cfg.Level, stream, ring), nil

	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
}

// openOutput opens the output writer from config.
func openOutput(cfg SinkConfig) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}

	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return os.Stderr, nil
	}

	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open event output: %w", err)
	}

	return f, nil
}

// nopSink is a no-op implementation for zero overhead when the event
// stream is disabled.
type nopSink struct{}

// Emit does nothing.
func (nopSink) Emit(*Event) {}

// Flush does nothing.
func (nopSink) Flush() error { return nil }

// Close does nothing.
func (nopSink) Close() error { return nil }

// Level returns LevelOff.
func (nopSink) Level() Level { return LevelOff }

// Enabled always returns false.
func (nopSink) Enabled() bool { return false }

// Nop is the package-level singleton nop sink.
var Nop Sink = nopSink{}

// MultiSink fans events out to several sinks.
type MultiSink struct {
	level Level
	sinks []Sink
}

// NewMultiSink creates a sink forwarding to every given sink.
func NewMultiSink(level Level, sinks ...Sink) *MultiSink {
	return &MultiSink{level: level, sinks: sinks}
}

// Emit forwards the event to every sink. The stamp is assigned here so
// every copy of the event carries the same sequence number.
func (m *MultiSink) Emit(ev *Event) {
	stamped := *ev
	if stamped.Seq == 0 {
		stamped.Seq = NextSeq()
		stamped.Time = time.Now()
	}
	for _, s := range m.sinks {
		s.Emit(&stamped)
	}
}

// Flush flushes every sink, returning the first error.
func (m *MultiSink) Flush() error {
	var first error
	for _, s := range m.sinks {
		if err := s.Flush(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Close closes every sink, returning the first error.
func (m *MultiSink) Close() error {
	var first error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Level returns the multi sink's level.
func (m *MultiSink) Level() Level { return m.level }

// Enabled returns true if the event stream is active.
func (m *MultiSink) Enabled() bool { return m.level > LevelOff }

// Ring returns the first RingSink among the fanned-out sinks, nil if
// none.
func (m *MultiSink) Ring() *RingSink {
	for _, s := range m.sinks {
		if r, ok := s.(*RingSink); ok {
			return r
		}
	}
	return nil
}
