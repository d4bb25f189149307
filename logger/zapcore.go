package logger

import (
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/drainlog/core"
)

// zapCore routes zap entries through a Manager. The Manager supplies the
// time and level prefix, so the encoder only renders the logger name, the
// message and the fields.
type zapCore struct {
	m   *Manager
	enc zapcore.Encoder
}

// ZapEncoderConfig is the encoder configuration used by NewZapCore
func ZapEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "", // the Manager prefixes its own time
		LevelKey:         "", // and its own level tag
		NameKey:          "logger",
		CallerKey:        "caller",
		MessageKey:       "msg",
		StacktraceKey:    "stacktrace",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeTime:       zapcore.RFC3339TimeEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	}
}

// NewZapCore returns a zapcore.Core that writes through m. Use it with
// zap.New to give zap-based code the Manager's sinks:
//
//	log := zap.New(logger.NewZapCore(m))
func NewZapCore(m *Manager) zapcore.Core {
	return &zapCore{
		m:   m,
		enc: zapcore.NewConsoleEncoder(ZapEncoderConfig()),
	}
}

// Enabled defers to the Manager's global level
func (c *zapCore) Enabled(lvl zapcore.Level) bool {
	return core.Enabled(c.m.Level(), levelFromZap(lvl))
}

func (c *zapCore) With(fields []zapcore.Field) zapcore.Core {
	enc := c.enc.Clone()
	for i := range fields {
		fields[i].AddTo(enc)
	}
	return &zapCore{m: c.m, enc: enc}
}

func (c *zapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *zapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	c.m.Emit(levelFromZap(ent.Level), buf.Bytes())
	buf.Free()

	// zap panics or exits right after writing these
	if ent.Level > zapcore.ErrorLevel {
		c.m.Process()
	}
	return nil
}

// Sync drains the Manager's sinks
func (c *zapCore) Sync() error {
	c.m.Process()
	return nil
}

// levelFromZap maps zap's levels onto the syslog scale
func levelFromZap(lvl zapcore.Level) core.Level {
	switch {
	case lvl <= zapcore.DebugLevel:
		return core.DebugLevel
	case lvl == zapcore.InfoLevel:
		return core.InfoLevel
	case lvl == zapcore.WarnLevel:
		return core.WarningLevel
	case lvl == zapcore.ErrorLevel:
		return core.ErrorLevel
	case lvl == zapcore.DPanicLevel:
		return core.CriticalLevel
	case lvl == zapcore.PanicLevel:
		return core.AlertLevel
	default:
		return core.EmergencyLevel
	}
}
