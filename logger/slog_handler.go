package logger

import (
	"context"
	"log/slog"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/philipp01105/drainlog/core"
	"github.com/philipp01105/drainlog/formatter"
)

// SlogHandler is an adapter that implements slog.Handler on top of a Manager.
// Records are rendered as "msg key=value ..." and emitted at the mapped
// level; the Manager adds the configured prefix.
type SlogHandler struct {
	m     *Manager
	attrs []byte // pre-rendered " key=value" pairs from WithAttrs
	group string
}

// NewSlogHandler creates a new slog.Handler adapter writing through m.
func NewSlogHandler(m *Manager) *SlogHandler {
	return &SlogHandler{m: m}
}

// Enabled reports whether the Manager's global level admits level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return core.Enabled(s.m.Level(), levelFromSlog(level))
}

// Handle renders the record and emits it.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	lb := formatter.GetBuffer()
	lb.B = append(lb.B, record.Message...)
	lb.B = append(lb.B, s.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		lb.B = appendAttr(lb.B, s.group, a)
		return true
	})
	lb.B = append(lb.B, '\n')

	s.m.Emit(levelFromSlog(record.Level), lb.B)
	formatter.PutBuffer(lb)
	return nil
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return s
	}
	newAttrs := make([]byte, len(s.attrs), len(s.attrs)+16*len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = appendAttr(newAttrs, s.group, a)
	}
	return &SlogHandler{
		m:     s.m,
		attrs: newAttrs,
		group: s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &SlogHandler{
		m:     s.m,
		attrs: s.attrs,
		group: newGroup,
	}
}

// levelFromSlog converts a slog.Level to a core.Level.
func levelFromSlog(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarningLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendAttr renders " key=value", prefixing the group and flattening
// nested groups.
func appendAttr(dst []byte, group string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			dst = appendAttr(dst, key, ga)
		}
		return dst
	}

	dst = append(dst, ' ')
	dst = append(dst, key...)
	dst = append(dst, '=')

	switch a.Value.Kind() {
	case slog.KindString:
		return appendValue(dst, a.Value.String())
	case slog.KindInt64:
		return strconv.AppendInt(dst, a.Value.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(dst, a.Value.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.AppendFloat(dst, a.Value.Float64(), 'g', -1, 64)
	case slog.KindBool:
		return strconv.AppendBool(dst, a.Value.Bool())
	case slog.KindDuration:
		return append(dst, a.Value.Duration().String()...)
	case slog.KindTime:
		return a.Value.Time().AppendFormat(dst, time.RFC3339)
	default:
		return appendValue(dst, a.Value.String())
	}
}

// appendValue quotes values that would otherwise be ambiguous
func appendValue(dst []byte, s string) []byte {
	if needsQuoting(s) {
		return strconv.AppendQuote(dst, s)
	}
	return append(dst, s...)
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for i := 0; i < len(s); {
		b := s[i]
		if b < utf8.RuneSelf {
			if b <= ' ' || b == '=' || b == '"' || b == 0x7f {
				return true
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError {
			return true
		}
		i += size
	}
	return false
}
