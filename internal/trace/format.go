package trace

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format represents the output format for call events.
type Format uint8

const (
	FormatText   Format = iota // human-readable text
	FormatNDJSON               // newline-delimited JSON
)

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text":
		return FormatText, nil
	case "ndjson":
		return FormatNDJSON, nil
	default:
		return FormatText, fmt.Errorf("invalid event format: %q (expected: text|ndjson)", s)
	}
}

// FormatEvent formats an event according to the specified format.
func FormatEvent(ev *Event, format Format) []byte {
	switch format {
	case FormatNDJSON:
		return formatNDJSON(ev)
	default:
		return formatText(ev)
	}
}

// formatNDJSON formats an event as newline-delimited JSON.
func formatNDJSON(ev *Event) []byte {
	type jsonEvent struct {
		Time   string `json:"time"`
		Seq    uint64 `json:"seq"`
		Kind   string `json:"kind"`
		Depth  int    `json:"depth"`
		Call   string `json:"call"`
		Detail string `json:"detail,omitempty"`
	}

	j := jsonEvent{
		Time:   ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:    ev.Seq,
		Kind:   ev.Kind.String(),
		Depth:  ev.Depth,
		Call:   ev.Call,
		Detail: ev.Detail,
	}

	data, _ := json.Marshal(j)
	data = append(data, '\n')
	return data
}

// formatText formats an event as human-readable text.
// Format: [seq] [indent]→/←/✗ call (detail)
func formatText(ev *Event) []byte {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%6d] ", ev.Seq))

	// Two spaces of indent per nesting level below the outermost call.
	if ev.Depth > 1 {
		sb.WriteString(strings.Repeat("  ", ev.Depth-1))
	}

	switch ev.Kind {
	case KindEnter:
		sb.WriteString("\u2192 ") // →
	case KindReturn:
		sb.WriteString("\u2190 ") // ←
	case KindRaise:
		sb.WriteString("\u2717 ") // ✗
	}

	sb.WriteString(ev.Call)

	if ev.Detail != "" {
		sb.WriteString(" (")
		sb.WriteString(ev.Detail)
		sb.WriteString(")")
	}

	sb.WriteString("\n")
	return []byte(sb.String())
}
