// Package logging builds the zerolog logger used across wsync.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"

	timeFormat = "15:04:05"
)

type Options struct {
	Level  string
	Format string
	// File, when set, receives a JSON copy of every log line with rotation.
	File       string
	MaxSizeMB  int
	MaxBackups int
	Verbose    bool
	RunID      string
	Out        io.Writer
}

// New returns the logger and a closer for the optional log file.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := parseLevel(opts.Level, opts.Verbose)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	var console io.Writer
	switch strings.ToLower(opts.Format) {
	case "", FormatConsole:
		console = zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}
	case FormatJSON:
		console = out
	default:
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("unknown log format %q", opts.Format)
	}

	var closer io.Closer = nopCloser{}
	writer := console
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log directory: %w", err)
		}
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    withDefault(opts.MaxSizeMB, 10),
			MaxBackups: withDefault(opts.MaxBackups, 3),
		}
		closer = file
		writer = zerolog.MultiLevelWriter(console, file)
	}

	ctx := zerolog.New(writer).Level(level).With().Timestamp()
	if opts.RunID != "" {
		ctx = ctx.Str("run_id", opts.RunID)
	}

	return ctx.Logger(), closer, nil
}

func parseLevel(raw string, verbose bool) (zerolog.Level, error) {
	if verbose {
		return zerolog.DebugLevel, nil
	}
	if raw == "" {
		return zerolog.InfoLevel, nil
	}

	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}

func withDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
