// Package consolehandler provides the console sink, which writes log lines
// to standard error (or any io.Writer given with WithWriter).
//
// Output only queues; nothing reaches the console until Process runs,
// unless the sink is switched to immediate mode with
// handler.WithImmediate or SetImmediate.
package consolehandler
