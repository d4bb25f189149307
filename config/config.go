package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/philipp01105/drainlog/core"
	"github.com/philipp01105/drainlog/formatter"
)

// Format is a configuration file format
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Sink types
const (
	TypeConsole = "console"
	TypeDebug   = "debug"
	TypeFile    = "file"
	TypeRolling = "rolling"
)

// Config describes a Manager and its sinks.
//
//	level: debug
//	options: [time, level]
//	flush_interval: 1s
//	sinks:
//	  console: {type: console, level: notice}
//	  file:    {type: file, level: info, name: Test, directory: ./logs}
type Config struct {
	Level         string                `koanf:"level"`
	Options       []string              `koanf:"options"`
	MaxLineSize   int                   `koanf:"max_line_size"`
	FlushInterval time.Duration         `koanf:"flush_interval"`
	Sinks         map[string]SinkConfig `koanf:"sinks"`
}

// SinkConfig describes one sink. Fields that do not apply to the sink's
// type are ignored.
type SinkConfig struct {
	Type       string `koanf:"type"`
	Level      string `koanf:"level"`
	Immediate  bool   `koanf:"immediate"`
	BlockSize  int    `koanf:"block_size"`
	MaxPending int    `koanf:"max_pending"`

	// file
	Name      string `koanf:"name"`
	Directory string `koanf:"directory"`

	// file and rolling
	MaxBackups int `koanf:"max_backups"`

	// rolling
	Filename   string `koanf:"filename"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
	LocalTime  bool   `koanf:"local_time"`
}

// Load reads a configuration file. The format follows the extension:
// .yaml, .yml or .json.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return Parse(data, format)
}

// Parse decodes and validates a configuration document
func Parse(data []byte, format Format) (*Config, error) {
	k := koanf.New(".")
	if len(data) > 0 {
		if err := loadData(k, data, format); err != nil {
			return nil, err
		}
	} else if !isValidFormat(format) {
		return nil, ErrUnsupportedFormat
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every level, option and sink
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Level, core.InfoLevel); err != nil {
		return err
	}
	if _, err := c.optionSet(); err != nil {
		return err
	}
	if c.MaxLineSize < 0 {
		return fmt.Errorf("%w: max_line_size %d", ErrParseFailed, c.MaxLineSize)
	}
	if c.FlushInterval < 0 {
		return fmt.Errorf("%w: flush_interval %s", ErrParseFailed, c.FlushInterval)
	}
	for _, name := range c.SinkNames() {
		if err := c.Sinks[name].validate(name); err != nil {
			return err
		}
	}
	return nil
}

// SinkNames returns the configured sink names in sorted order
func (c *Config) SinkNames() []string {
	names := make([]string, 0, len(c.Sinks))
	for name := range c.Sinks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s SinkConfig) validate(name string) error {
	if _, err := parseLevel(s.Level, core.DebugLevel); err != nil {
		return fmt.Errorf("sink %q: %w", name, err)
	}
	if s.BlockSize < 0 || s.MaxPending < 0 || s.MaxBackups < 0 {
		return fmt.Errorf("%w: %q: negative size", ErrInvalidSink, name)
	}

	switch strings.ToLower(s.Type) {
	case TypeConsole, TypeDebug, TypeFile:
		return nil
	case TypeRolling:
		if s.Filename == "" {
			return fmt.Errorf("%w: %q: rolling sink needs a filename", ErrInvalidSink, name)
		}
		if s.MaxSizeMB < 0 || s.MaxAgeDays < 0 {
			return fmt.Errorf("%w: %q: negative size", ErrInvalidSink, name)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q has type %q", ErrUnknownSinkType, name, s.Type)
	}
}

func (c *Config) optionSet() (formatter.OptionSet, error) {
	var set formatter.OptionSet
	for _, name := range c.Options {
		o, ok := formatter.ParseOption(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrInvalidOption, name)
		}
		set = set.With(o)
	}
	return set, nil
}

// parseLevel returns def for an empty name
func parseLevel(name string, def core.Level) (core.Level, error) {
	if name == "" {
		return def, nil
	}
	l, err := core.ParseLevel(name)
	if err != nil {
		return def, fmt.Errorf("%w: %w", ErrInvalidLevel, err)
	}
	return l, nil
}

func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %s", ErrUnsupportedFormat, ext)
	}
}

func isValidFormat(format Format) bool {
	switch format {
	case FormatYAML, FormatJSON:
		return true
	default:
		return false
	}
}

func loadData(k *koanf.Koanf, data []byte, format Format) error {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return ErrUnsupportedFormat
	}

	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return nil
}
