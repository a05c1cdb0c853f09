package record

import (
	"fmt"
	"strings"
)

// Level is the severity of a log record.
//
// Levels are ordered from LevelDebug (lowest) to LevelEmergency (highest).
// A record passes a minimum-level filter when its level compares >= to the
// configured minimum.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelNotice
	LevelWarning
	LevelError
	LevelCritical
	LevelAlert
	LevelEmergency
)

var levelNames = map[Level]string{
	LevelDebug:     "DEBUG",
	LevelInfo:      "INFO",
	LevelNotice:    "NOTICE",
	LevelWarning:   "WARNING",
	LevelError:     "ERROR",
	LevelCritical:  "CRITICAL",
	LevelAlert:     "ALERT",
	LevelEmergency: "EMERGENCY",
}

// Valid reports whether l is one of the eight defined levels.
func (l Level) Valid() bool {
	return l >= LevelDebug && l <= LevelEmergency
}

// String returns the upper-case level name, e.g. "WARNING".
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// MarshalText implements encoding.TextMarshaler using the level name.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("record: cannot marshal unknown level %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel converts a level name to a Level. Matching is
// case-insensitive and "warn" is accepted as an alias for "warning".
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "NOTICE":
		return LevelNotice, nil
	case "WARN", "WARNING":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	case "CRITICAL":
		return LevelCritical, nil
	case "ALERT":
		return LevelAlert, nil
	case "EMERGENCY":
		return LevelEmergency, nil
	default:
		return LevelDebug, fmt.Errorf("record: unknown level %q", name)
	}
}
