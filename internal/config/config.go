// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Commands understood by the aotp binary.
const (
	CommandDump    = "dump"
	CommandEncode  = "encode"
	CommandCode    = "code"
	CommandVersion = "version"
)

// Output modes of the dump command.
const (
	ModePlain = "plain"
	ModeDebug = "debug"
	ModeURL   = "url"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "AOTP_"

// StructuredConfig is the top-level configuration container. It is
// populated by merging flags, environment variables, an optional JSON file
// and defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Log holds the logging level and destination.
	Log Log `envPrefix:"LOG_"`

	// Output holds what the commands print and write.
	Output Output `envPrefix:"OUTPUT_"`

	// Scanner holds image decoding settings.
	Scanner Scanner `envPrefix:"SCANNER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the AOTP_CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// Command is the sub-command to run. Only set from the command line.
	Command string

	// Inputs are image paths or otpauth/otpauth-migration URLs.
	// Only set from the command line.
	Inputs []string
}

// Log holds logger settings.
type Log struct {
	// Level is a zerolog level name.
	// Env: AOTP_LOG_LEVEL
	Level string `env:"LEVEL"`

	// File is an optional log file; standard error is used otherwise.
	// Env: AOTP_LOG_FILE
	File string `env:"FILE"`
}

// Output holds report and export settings.
type Output struct {
	// Mode is one of plain, debug or url.
	// Env: AOTP_OUTPUT_MODE
	Mode string `env:"MODE"`

	// Copy copies the emitted URLs to the system clipboard.
	// Env: AOTP_OUTPUT_COPY
	Copy bool `env:"COPY"`

	// QRFile is the PNG file the encode command writes the transfer URL to.
	// With several payloads a 1-based index is inserted before the extension.
	// Env: AOTP_OUTPUT_QR_FILE
	QRFile string `env:"QR_FILE"`

	// QRSize is the side of written QR images in pixels.
	// Env: AOTP_OUTPUT_QR_SIZE
	QRSize int `env:"QR_SIZE"`

	// PerPayload caps the number of credentials per encoded payload, so that
	// each payload fits into one scannable QR code.
	// Env: AOTP_OUTPUT_PER_PAYLOAD
	PerPayload int `env:"PER_PAYLOAD"`
}

// Scanner holds image decoding settings.
type Scanner struct {
	// Workers is the number of images decoded concurrently.
	// Env: AOTP_SCANNER_WORKERS
	Workers int `env:"WORKERS"`

	// Timeout bounds the decoding of a single image (e.g. "10s").
	// Env: AOTP_SCANNER_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// GetConfig loads, merges, and validates the configuration for the given
// command-line arguments (without the program name).
func GetConfig(args []string) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withFlags(args).
		withEnv().
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	if err = cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
