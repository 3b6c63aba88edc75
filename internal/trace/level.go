package trace

import "fmt"

// Level controls which call events a sink keeps.
type Level uint8

const (
	// LevelOff disables the event stream.
	LevelOff Level = iota
	// LevelErrors keeps only raise events.
	LevelErrors
	// LevelCalls keeps everything: enter, return and raise.
	LevelCalls
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelErrors:
		return "errors"
	case LevelCalls:
		return "calls"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "off", "OFF":
		return LevelOff, nil
	case "errors", "ERRORS":
		return LevelErrors, nil
	case "calls", "CALLS":
		return LevelCalls, nil
	default:
		return LevelOff, fmt.Errorf("invalid event level: %q (expected: off|errors|calls)", s)
	}
}

// ShouldEmit returns true if events of kind k pass this level.
func (l Level) ShouldEmit(k Kind) bool {
	switch l {
	case LevelOff:
		return false
	case LevelErrors:
		return k == KindRaise
	case LevelCalls:
		return true
	}
	return false
}
