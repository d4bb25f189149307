// Package logger is the public API of drainlog. Most users only need to
// import this package and one or more sinks.
//
// A Manager owns a set of named sinks, a global level and the line prefix
// options. Printf checks the global level, renders the prefix and the
// printf-style body once, and hands the finished line to every sink:
//
//	m := logger.Create(logger.DebugLevel)
//	m.Append("console", consolehandler.New(logger.NoticeLevel))
//	m.EnableOption(logger.OptionTime)
//	m.Printf(logger.NoticeLevel, "test : %s\n", logger.String("aaa"))
//
// Sinks only queue what they receive. Nothing reaches a device until
// Process runs, either called by the owner or from Run:
//
//	go m.Run(ctx, time.Second)
//	defer m.Close()
//
// Arguments are typed (core.Arg). The helpers String, Int, Float64 and
// friends build them; Custom wraps a value that renders itself.
//
// For code written against other logging APIs, NewZapCore adapts the
// Manager to zapcore.Core and NewSlogHandler adapts it to slog.Handler.
//
// Records above the global level cost a single comparison: no formatting,
// no clock read and no allocation.
package logger
