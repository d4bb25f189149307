package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/drainlog/core"
	"github.com/philipp01105/drainlog/handler/consolehandler"
	"github.com/philipp01105/drainlog/handler/debughandler"
	"github.com/philipp01105/drainlog/handler/filehandler"
	"github.com/philipp01105/drainlog/handler/rollinghandler"
	"github.com/philipp01105/drainlog/logger"
)

const sampleYAML = `
level: debug
options: [time, level]
max_line_size: 512
flush_interval: 2s
sinks:
  console:
    type: console
    level: notice
  debugger:
    type: debug
    level: debug
    immediate: true
  file:
    type: file
    level: info
    name: Test
    max_backups: 3
`

const sampleJSON = `{
  "level": "warning",
  "options": ["thread"],
  "sinks": {
    "out": {"type": "console", "level": "error", "block_size": 4096, "max_pending": 65536}
  }
}`

func TestParse_YAML(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, []string{"time", "level"}, cfg.Options)
	assert.Equal(t, 512, cfg.MaxLineSize)
	assert.Equal(t, 2*time.Second, cfg.FlushInterval)
	assert.Equal(t, []string{"console", "debugger", "file"}, cfg.SinkNames())

	file := cfg.Sinks["file"]
	assert.Equal(t, TypeFile, file.Type)
	assert.Equal(t, "Test", file.Name)
	assert.Equal(t, 3, file.MaxBackups)
	assert.True(t, cfg.Sinks["debugger"].Immediate)
}

func TestParse_JSON(t *testing.T) {
	cfg, err := Parse([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "warning", cfg.Level)
	out := cfg.Sinks["out"]
	assert.Equal(t, TypeConsole, out.Type)
	assert.Equal(t, "error", out.Level)
	assert.Equal(t, 4096, out.BlockSize)
	assert.Equal(t, 65536, out.MaxPending)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil, FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, cfg.Sinks)

	_, err = Parse(nil, Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"bad syntax", "level: [", ErrParseFailed},
		{"bad level", "level: loud", ErrInvalidLevel},
		{"bad option", "options: [colour]", ErrInvalidOption},
		{"bad sink level", "sinks:\n  a:\n    type: console\n    level: loud", ErrInvalidLevel},
		{"unknown type", "sinks:\n  a:\n    type: syslog", ErrUnknownSinkType},
		{"rolling without filename", "sinks:\n  a:\n    type: rolling", ErrInvalidSink},
		{"negative block size", "sinks:\n  a:\n    type: console\n    block_size: -1", ErrInvalidSink},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatYAML)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	_, err := Load("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = Load(filepath.Join(dir, "drainlog.toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, ErrLoadFailed)

	path := filepath.Join(dir, "drainlog.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warning", cfg.Level)

	path = filepath.Join(dir, "drainlog.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Sinks, 3)
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)
	file := cfg.Sinks["file"]
	file.Directory = dir
	cfg.Sinks["file"] = file
	cfg.Sinks["rolling"] = SinkConfig{
		Type:      TypeRolling,
		Level:     "warning",
		Filename:  filepath.Join(dir, "rolling", "app.log"),
		MaxSizeMB: 1,
	}

	m, err := cfg.Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	assert.Equal(t, core.DebugLevel, m.Level())
	assert.True(t, m.IsEnabledOption(logger.OptionTime))
	assert.True(t, m.IsEnabledOption(logger.OptionLevel))
	assert.False(t, m.IsEnabledOption(logger.OptionThread))
	assert.Equal(t, []string{"console", "debugger", "file", "rolling"}, m.Names())

	console, ok := m.Sink("console").(*consolehandler.Handler)
	require.True(t, ok)
	assert.Equal(t, core.NoticeLevel, console.Level())

	debugger, ok := m.Sink("debugger").(*debughandler.Handler)
	require.True(t, ok)
	assert.True(t, debugger.Immediate())

	fh, ok := m.Sink("file").(*filehandler.Handler)
	require.True(t, ok)
	assert.Equal(t, core.InfoLevel, fh.Level())
	assert.Equal(t, filepath.Join(dir, "Test.log"), fh.Path())

	rh, ok := m.Sink("rolling").(*rollinghandler.Handler)
	require.True(t, ok)
	assert.Equal(t, core.WarningLevel, rh.Level())
	assert.DirExists(t, filepath.Join(dir, "rolling"))
}

func TestBuild_FileNameDefaultsToSinkName(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Sinks: map[string]SinkConfig{
		"audit": {Type: TypeFile, Directory: dir},
	}}

	m, err := cfg.Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	assert.Equal(t, core.InfoLevel, m.Level())
	fh := m.Sink("audit").(*filehandler.Handler)
	assert.Equal(t, core.DebugLevel, fh.Level())
	assert.Equal(t, filepath.Join(dir, "audit.log"), fh.Path())
}

func TestBuild_InvalidRolling(t *testing.T) {
	cfg := &Config{Sinks: map[string]SinkConfig{
		"a": {Type: TypeConsole},
		"b": {Type: TypeRolling, Filename: filepath.Join(t.TempDir(), "b.log"), MaxSizeMB: 1 << 30},
	}}

	_, err := cfg.Build()
	assert.ErrorIs(t, err, ErrInvalidSink)
	assert.ErrorIs(t, err, rollinghandler.ErrInvalidMaxSize)
}

func TestApply(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)
	file := cfg.Sinks["file"]
	file.Directory = t.TempDir()
	cfg.Sinks["file"] = file

	m, err := cfg.Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	next, err := Parse([]byte(`
level: error
options: [thread]
sinks:
  console:
    type: console
    level: debug
    immediate: true
  other:
    type: console
`), FormatYAML)
	require.NoError(t, err)
	require.NoError(t, next.Apply(m))

	assert.Equal(t, core.ErrorLevel, m.Level())
	assert.True(t, m.IsEnabledOption(logger.OptionThread))
	assert.False(t, m.IsEnabledOption(logger.OptionTime))
	assert.False(t, m.IsEnabledOption(logger.OptionLevel))

	console := m.Sink("console").(*consolehandler.Handler)
	assert.Equal(t, core.DebugLevel, console.Level())
	assert.True(t, console.Immediate())

	// sinks absent from the new document keep their settings
	assert.Equal(t, core.InfoLevel, m.Sink("file").Level())
	assert.Nil(t, m.Sink("other"))
}

func TestApply_Invalid(t *testing.T) {
	m := logger.Create(core.InfoLevel)
	t.Cleanup(func() { _ = m.Close() })

	err := (&Config{Level: "loud"}).Apply(m)
	assert.ErrorIs(t, err, ErrInvalidLevel)
	assert.Equal(t, core.InfoLevel, m.Level())
}
