package core

import (
	"fmt"
	"strings"
)

// Level represents the severity of a log record. Lower values are more
// severe; a gate configured at level L accepts every record whose level is
// less than or equal to L.
type Level int8

const (
	// EmergencyLevel means the system is unusable
	EmergencyLevel Level = iota
	// AlertLevel means action must be taken immediately
	AlertLevel
	// CriticalLevel for critical conditions
	CriticalLevel
	// ErrorLevel for error conditions
	ErrorLevel
	// WarningLevel for conditions that will become errors if left alone
	WarningLevel
	// NoticeLevel for unusual but not erroneous events
	NoticeLevel
	// InfoLevel for normal operational messages (default)
	InfoLevel
	// DebugLevel for detailed debugging information
	DebugLevel

	levelCount
)

var levelNames = [levelCount]string{
	EmergencyLevel: "EMERGENCY",
	AlertLevel:     "ALERT",
	CriticalLevel:  "CRITICAL",
	ErrorLevel:     "ERROR",
	WarningLevel:   "WARNING",
	NoticeLevel:    "NOTICE",
	InfoLevel:      "INFO",
	DebugLevel:     "DEBUG",
}

// pre-padded so every tag occupies the same column width
var levelTags = [levelCount]string{
	EmergencyLevel: "EMERGENCY",
	AlertLevel:     "ALERT    ",
	CriticalLevel:  "CRITICAL ",
	ErrorLevel:     "ERROR    ",
	WarningLevel:   "WARNING  ",
	NoticeLevel:    "NOTICE   ",
	InfoLevel:      "INFO     ",
	DebugLevel:     "DEBUG    ",
}

// String returns the string representation of the level
func (l Level) String() string {
	if l.Valid() {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// Tag returns the level name padded to a fixed width, as used in line prefixes.
func (l Level) Tag() string {
	if l.Valid() {
		return levelTags[l]
	}
	return "UNKNOWN  "
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= EmergencyLevel && l < levelCount
}

// Enabled reports whether a gate set to effective accepts a record at requested.
func Enabled(effective, requested Level) bool {
	return effective >= requested
}

// ParseLevel converts a level name to a Level. Matching is case-insensitive
// and accepts the common syslog abbreviations plus zap's dpanic, panic and
// fatal, mapped the way the zap bridge maps them.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "emergency", "emerg", "fatal":
		return EmergencyLevel, nil
	case "alert", "panic":
		return AlertLevel, nil
	case "critical", "crit", "dpanic":
		return CriticalLevel, nil
	case "error", "err":
		return ErrorLevel, nil
	case "warning", "warn":
		return WarningLevel, nil
	case "notice":
		return NoticeLevel, nil
	case "info":
		return InfoLevel, nil
	case "debug":
		return DebugLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid log level %d", l)
	}
	return []byte(strings.ToLower(levelNames[l])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	lvl, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = lvl
	return nil
}
