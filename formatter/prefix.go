package formatter

import (
	"strconv"
	"time"

	"github.com/philipp01105/drainlog/core"
)

// Option identifies one line-prefix element
type Option uint8

const (
	// OptionTime prefixes HH:MM:SS
	OptionTime Option = iota
	// OptionDate prefixes YYYY-MM-DD
	OptionDate
	// OptionDay prefixes the day of month; ignored when OptionDate is set
	OptionDay
	// OptionThread prefixes the OS thread id in hex
	OptionThread
	// OptionLevel prefixes the padded level tag in brackets
	OptionLevel

	optionCount
)

// String returns the option name
func (o Option) String() string {
	switch o {
	case OptionTime:
		return "time"
	case OptionDate:
		return "date"
	case OptionDay:
		return "day"
	case OptionThread:
		return "thread"
	case OptionLevel:
		return "level"
	default:
		return "unknown"
	}
}

// Valid reports whether o is a defined option
func (o Option) Valid() bool {
	return o < optionCount
}

// ParseOption converts an option name to an Option
func ParseOption(s string) (Option, bool) {
	for o := Option(0); o < optionCount; o++ {
		if o.String() == s {
			return o, true
		}
	}
	return 0, false
}

// OptionSet is a bit set of prefix options
type OptionSet uint32

// Has reports whether o is in the set
func (s OptionSet) Has(o Option) bool {
	return o.Valid() && s&(1<<o) != 0
}

// With returns the set with o added
func (s OptionSet) With(o Option) OptionSet {
	if !o.Valid() {
		return s
	}
	return s | 1<<o
}

// Without returns the set with o removed
func (s OptionSet) Without(o Option) OptionSet {
	if !o.Valid() {
		return s
	}
	return s &^ (1 << o)
}

// AppendPrefix appends the enabled prefix elements in their fixed order:
// date (or day of month), time, thread id, level tag. Each element is
// followed by a single space.
func AppendPrefix(dst []byte, set OptionSet, now time.Time, tid uint64, level core.Level) []byte {
	if set.Has(OptionDate) {
		dst = now.AppendFormat(dst, "2006-01-02 ")
	} else if set.Has(OptionDay) {
		dst = now.AppendFormat(dst, "02 ")
	}
	if set.Has(OptionTime) {
		dst = now.AppendFormat(dst, "15:04:05 ")
	}
	if set.Has(OptionThread) {
		dst = append(dst, "0x"...)
		dst = strconv.AppendUint(dst, tid, 16)
		dst = append(dst, ' ')
	}
	if set.Has(OptionLevel) && level.Valid() {
		dst = append(dst, '[')
		dst = append(dst, level.Tag()...)
		dst = append(dst, "] "...)
	}
	return dst
}

// NeedsClock reports whether any enabled element reads the time
func (s OptionSet) NeedsClock() bool {
	return s.Has(OptionDate) || s.Has(OptionDay) || s.Has(OptionTime)
}
