package config

import "errors"

// Configuration load and validation errors
var (
	// ErrEmptyPath means no configuration path was given
	ErrEmptyPath = errors.New("config: empty config path")

	// ErrUnsupportedFormat means the file extension or format is not YAML or JSON
	ErrUnsupportedFormat = errors.New("config: unsupported config format")

	// ErrLoadFailed means the configuration file could not be read
	ErrLoadFailed = errors.New("config: failed to load config")

	// ErrParseFailed means the configuration could not be parsed or decoded
	ErrParseFailed = errors.New("config: failed to parse config")

	// ErrInvalidLevel means a level name is not recognised
	ErrInvalidLevel = errors.New("config: invalid level")

	// ErrInvalidOption means a prefix option name is not recognised
	ErrInvalidOption = errors.New("config: invalid option")

	// ErrUnknownSinkType means a sink's type is not console, debug, file or rolling
	ErrUnknownSinkType = errors.New("config: unknown sink type")

	// ErrInvalidSink means a sink is missing a required setting or has a bad value
	ErrInvalidSink = errors.New("config: invalid sink")
)
