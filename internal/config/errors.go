package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrUnknownCommand indicates a missing or unsupported sub-command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrNoInputs indicates that no image or URL was given.
	ErrNoInputs = errors.New("no inputs given")
	// ErrInvalidOutputConfigs indicates an unknown output mode or a
	// non-positive QR size or payload size.
	ErrInvalidOutputConfigs = errors.New("invalid output configuration")
	// ErrInvalidScannerConfigs indicates a non-positive worker count or a
	// negative timeout.
	ErrInvalidScannerConfigs = errors.New("invalid scanner configuration")
)
