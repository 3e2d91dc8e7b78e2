// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// aotp command.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Standard output belongs to the command's report, so log entries go to
// standard error or to a log file.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger

	closer io.Closer
}

// Options controls where and how much the logger writes.
type Options struct {
	// Level is a zerolog level name ("debug", "info", "warn", ...).
	// Unknown or empty names fall back to "warn".
	Level string

	// File is an optional log file path, opened in append mode. When empty
	// or not writable, entries go to standard error; a file that cannot be
	// opened is reported there once.
	File string
}

// NewLogger constructs a *Logger for the given role label (e.g. "aotp").
//
// The logger is configured with:
//   - the level from opts;
//   - a "role" field set to role;
//   - a "time" timestamp field added to every log entry;
//   - a "func" caller field that records the fully-qualified function name
//     (instead of the default file:line format) for easier log navigation.
//
// Entries are JSON when written to a file and human readable on a terminal.
// A logger writing to a file must be closed with Close.
func NewLogger(role string, opts Options) *Logger {
	zerolog.SetGlobalLevel(parseLevel(opts.Level))
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name() // return function name
	}
	zerolog.CallerFieldName = "func"

	var (
		w      io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}
		closer io.Closer
	)
	if opts.File != "" {
		logFile, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open log file, logging to stderr: %v\n", err)
		} else {
			w, closer = logFile, logFile
		}
	}

	logger := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{Logger: logger, closer: closer}
}

// Close releases the log file, if any. Child loggers share the file and
// must not be used afterwards.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func parseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return lvl
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver and adds a "component" field. The child logger can be enriched
// with additional context fields without affecting the parent logger.
func (l *Logger) GetChildLogger(component string) *Logger {
	return &Logger{Logger: l.With().Str("component", component).Logger()}
}

// WithContext attaches the logger to ctx for retrieval with FromContext.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its default logger,
// so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{Logger: *log.Ctx(ctx)}
}
