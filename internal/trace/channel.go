package trace

import "time"

// ChannelSink forwards events into a channel for live consumers such
// as the TUI viewer. Sends block when the channel is full, so give it
// a buffered channel and drain promptly.
type ChannelSink struct {
	Ch  chan<- Event
	Lvl Level
}

// Emit stamps and forwards one event.
func (s ChannelSink) Emit(ev *Event) {
	if s.Ch == nil || !s.Lvl.ShouldEmit(ev.Kind) {
		return
	}
	stamped := *ev
	if stamped.Seq == 0 {
		stamped.Seq = NextSeq()
		stamped.Time = time.Now()
	}
	s.Ch <- stamped
}

// Flush does nothing; sends are immediate.
func (s ChannelSink) Flush() error { return nil }

// Close does nothing. The sender owns the channel and closes it when
// the workload finishes.
func (s ChannelSink) Close() error { return nil }

// Level returns the sink's event level.
func (s ChannelSink) Level() Level { return s.Lvl }

// Enabled returns true if the event stream is active.
func (s ChannelSink) Enabled() bool { return s.Ch != nil && s.Lvl > LevelOff }
