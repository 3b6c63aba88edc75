package trace

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	cases := []struct {
		level Level
		kind  Kind
		want  bool
	}{
		{LevelOff, KindEnter, false},
		{LevelOff, KindRaise, false},
		{LevelErrors, KindEnter, false},
		{LevelErrors, KindReturn, false},
		{LevelErrors, KindRaise, true},
		{LevelCalls, KindEnter, true},
		{LevelCalls, KindReturn, true},
		{LevelCalls, KindRaise, true},
	}
	for _, c := range cases {
		if got := c.level.ShouldEmit(c.kind); got != c.want {
			t.Fatalf("%v.ShouldEmit(%v) = %v, want %v", c.level, c.kind, got, c.want)
		}
	}
}

func TestParseLevelModeFormat(t *testing.T) {
	if lvl, err := ParseLevel("calls"); err != nil || lvl != LevelCalls {
		t.Fatalf("ParseLevel(calls) = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("bogus"); err == nil {
		t.Fatalf("ParseLevel must reject unknown levels")
	}
	if m, err := ParseMode("ring"); err != nil || m != ModeRing {
		t.Fatalf("ParseMode(ring) = %v, %v", m, err)
	}
	if _, err := ParseMode("bogus"); err == nil {
		t.Fatalf("ParseMode must reject unknown modes")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(ndjson) = %v, %v", f, err)
	}
	if _, err := ParseFormat("bogus"); err == nil {
		t.Fatalf("ParseFormat must reject unknown formats")
	}
}

func TestRingSinkWraps(t *testing.T) {
	ring := NewRingSink(3, LevelCalls)
	for i := 0; i < 5; i++ {
		ring.Emit(&Event{Kind: KindEnter, Call: string(rune('a' + i))})
	}
	events := ring.Snapshot()
	if len(events) != 3 {
		t.Fatalf("snapshot length = %d, want 3", len(events))
	}
	want := []string{"c", "d", "e"}
	for i, ev := range events {
		if ev.Call != want[i] {
			t.Fatalf("snapshot[%d].Call = %q, want %q", i, ev.Call, want[i])
		}
		if ev.Seq == 0 {
			t.Fatalf("event not stamped with a sequence number")
		}
	}
}

func TestRingSinkLevelGate(t *testing.T) {
	ring := NewRingSink(8, LevelErrors)
	ring.Emit(&Event{Kind: KindEnter, Call: "f()"})
	ring.Emit(&Event{Kind: KindRaise, Call: "f()", Detail: "ValueError"})
	events := ring.Snapshot()
	if len(events) != 1 || events[0].Kind != KindRaise {
		t.Fatalf("level gate kept %d events: %v", len(events), events)
	}
}

func TestRingSinkDump(t *testing.T) {
	ring := NewRingSink(8, LevelCalls)
	ring.Emit(&Event{Kind: KindEnter, Depth: 1, Call: "f(3)"})
	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if !strings.Contains(buf.String(), "f(3)") {
		t.Fatalf("dump output %q misses the call", buf.String())
	}
}

func TestStreamSinkTextAndIndent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStreamSink(&buf, LevelCalls, FormatText)
	sink.Emit(&Event{Kind: KindEnter, Depth: 1, Call: "f(1)"})
	sink.Emit(&Event{Kind: KindEnter, Depth: 2, Call: "g(1)"})
	sink.Emit(&Event{Kind: KindRaise, Depth: 2, Call: "g(1)", Detail: "ValueError"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("wrote %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "→ f(1)") {
		t.Fatalf("enter line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "  → g(1)") {
		t.Fatalf("nested enter not indented: %q", lines[1])
	}
	if !strings.Contains(lines[2], "✗ g(1) (ValueError)") {
		t.Fatalf("raise line = %q", lines[2])
	}
}

func TestStreamSinkNDJSON(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStreamSink(&buf, LevelCalls, FormatNDJSON)
	sink.Emit(&Event{Kind: KindReturn, Depth: 1, Call: "f(3)", Detail: "6"})

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid ndjson: %v", err)
	}
	if decoded["kind"] != "return" || decoded["call"] != "f(3)" || decoded["detail"] != "6" {
		t.Fatalf("decoded = %v", decoded)
	}
}

func TestMultiSinkFansOut(t *testing.T) {
	var buf bytes.Buffer
	stream := NewStreamSink(&buf, LevelCalls, FormatText)
	ring := NewRingSink(8, LevelCalls)
	multi := NewMultiSink(LevelCalls, stream, ring)

	multi.Emit(&Event{Kind: KindEnter, Call: "f()"})
	if buf.Len() == 0 {
		t.Fatalf("stream sink saw nothing")
	}
	if len(ring.Snapshot()) != 1 {
		t.Fatalf("ring sink saw nothing")
	}
	if multi.Ring() != ring {
		t.Fatalf("Ring() did not find the ring sink")
	}
}

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 4)
	sink := ChannelSink{Ch: ch, Lvl: LevelCalls}
	sink.Emit(&Event{Kind: KindEnter, Call: "f()"})
	select {
	case ev := <-ch:
		if ev.Call != "f()" || ev.Seq == 0 {
			t.Fatalf("forwarded event wrong: %+v", ev)
		}
	default:
		t.Fatalf("event not forwarded")
	}

	off := ChannelSink{Ch: ch, Lvl: LevelOff}
	if off.Enabled() {
		t.Fatalf("off channel sink must be disabled")
	}
}

func TestTracerMirrorsIntoSink(t *testing.T) {
	var buf bytes.Buffer
	tr := New()
	tr.SetSink(NewStreamSink(&buf, LevelCalls, FormatText))

	_, _ = tr.LogCall(nil, doubler(), []any{3}, nil)

	out := buf.String()
	if !strings.Contains(out, "→ f(3)") {
		t.Fatalf("enter event missing: %q", out)
	}
	if !strings.Contains(out, "← f(3) (6)") {
		t.Fatalf("return event missing: %q", out)
	}
}

func TestNewSinkModes(t *testing.T) {
	if s, err := NewSink(SinkConfig{Level: LevelOff}); err != nil || s != Nop {
		t.Fatalf("off config must yield the nop sink")
	}
	s, err := NewSink(SinkConfig{Level: LevelCalls, Mode: ModeRing, RingSize: 16})
	if err != nil {
		t.Fatalf("ring sink: %v", err)
	}
	if _, ok := s.(*RingSink); !ok {
		t.Fatalf("wrong sink type %T", s)
	}
	var buf bytes.Buffer
	s, err = NewSink(SinkConfig{Level: LevelCalls, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("both sink: %v", err)
	}
	multi, ok := s.(*MultiSink)
	if !ok {
		t.Fatalf("wrong sink type %T", s)
	}
	if multi.Ring() == nil {
		t.Fatalf("both mode must include a ring")
	}
}

func TestMultiSinkStampsOnce(t *testing.T) {
	var buf bytes.Buffer
	stream := NewStreamSink(&buf, LevelCalls, FormatNDJSON)
	ring := NewRingSink(8, LevelCalls)
	m := NewMultiSink(LevelCalls, stream, ring)

	m.Emit(&Event{Kind: KindEnter, Depth: 1, Call: "f(1)"})

	var line struct {
		Seq uint64 `json:"seq"`
	}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode stream copy: %v", err)
	}
	stored := ring.Snapshot()
	if len(stored) != 1 {
		t.Fatalf("ring stored %d events, want 1", len(stored))
	}
	if stored[0].Seq == 0 || stored[0].Seq != line.Seq {
		t.Fatalf("stream seq %d and ring seq %d differ", line.Seq, stored[0].Seq)
	}
}
