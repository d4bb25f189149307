package logger

import (
	"time"

	"github.com/philipp01105/drainlog/core"
)

// Argument helper functions for convenience

// String creates a string argument
func String(val string) core.Arg {
	return core.Str(val)
}

// Int creates an int argument
func Int(val int) core.Arg {
	return core.Int(val)
}

// Int64 creates an int64 argument
func Int64(val int64) core.Arg {
	return core.Int64(val)
}

// Uint64 creates an unsigned argument
func Uint64(val uint64) core.Arg {
	return core.Uint(val)
}

// Float64 creates a float64 argument
func Float64(val float64) core.Arg {
	return core.Float(val)
}

// Bool creates a bool argument
func Bool(val bool) core.Arg {
	return core.Bool(val)
}

// Char creates a character argument
func Char(val rune) core.Arg {
	return core.Char(val)
}

// Time creates a string argument in RFC 3339 form
func Time(val time.Time) core.Arg {
	return core.Str(val.Format(time.RFC3339))
}

// Duration creates a string argument such as "1.5s"
func Duration(val time.Duration) core.Arg {
	return core.Str(val.String())
}

// Err creates a string argument from an error
func Err(err error) core.Arg {
	if err == nil {
		return core.Str("<nil>")
	}
	return core.Str(err.Error())
}

// Custom creates an argument that renders itself
func Custom(val core.Appender) core.Arg {
	return core.Custom(val)
}

// Any creates an argument from any value
func Any(val interface{}) core.Arg {
	return core.Any(val)
}
