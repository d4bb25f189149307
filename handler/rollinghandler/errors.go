package rollinghandler

import "errors"

var (
	// ErrEmptyFilename is returned when no file name is given
	ErrEmptyFilename = errors.New("rollinghandler: filename is required")

	// ErrInvalidMaxSize is returned for a non-positive or excessive MaxSize
	ErrInvalidMaxSize = errors.New("rollinghandler: invalid max size")

	// ErrInvalidMaxBackups is returned for a negative or excessive backup count
	ErrInvalidMaxBackups = errors.New("rollinghandler: invalid max backups")

	// ErrInvalidMaxAge is returned for a negative or excessive backup age
	ErrInvalidMaxAge = errors.New("rollinghandler: invalid max age")
)
