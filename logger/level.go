package logger

import (
	"github.com/philipp01105/drainlog/core"
	"github.com/philipp01105/drainlog/formatter"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	EmergencyLevel = core.EmergencyLevel
	AlertLevel     = core.AlertLevel
	CriticalLevel  = core.CriticalLevel
	ErrorLevel     = core.ErrorLevel
	WarningLevel   = core.WarningLevel
	NoticeLevel    = core.NoticeLevel
	InfoLevel      = core.InfoLevel
	DebugLevel     = core.DebugLevel
)

// ParseLevel converts a string to a Level
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}

// Option is a line prefix element
type Option = formatter.Option

const (
	OptionTime   = formatter.OptionTime
	OptionDate   = formatter.OptionDate
	OptionDay    = formatter.OptionDay
	OptionThread = formatter.OptionThread
	OptionLevel  = formatter.OptionLevel
)
