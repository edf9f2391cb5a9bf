// Package logging builds the process logger: the slog API backed by a
// charmbracelet/log handler writing to a rotating file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	// Level is one of debug, info, warn, error.
	Level string
	// File is the rotating log file. Empty disables file output.
	File string
	// Debug also writes to stderr and reports callers.
	Debug bool
}

// New returns a logger and a closer for its file. The closer is never nil.
func New(cfg Config) (*slog.Logger, io.Closer, error) {
	level := log.WarnLevel
	if cfg.Level != "" {
		l, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing log level: %w", err)
		}
		level = l
	}
	if cfg.Debug {
		level = log.DebugLevel
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		writers = append(writers, rotating)
		closer = rotating
	}
	if cfg.Debug {
		writers = append(writers, os.Stderr)
	}

	var w io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "bluum",
	})
	return slog.New(handler), closer, nil
}

// NewWriter is New without the file, for tests and tools that want log
// lines in a buffer.
func NewWriter(w io.Writer, level string) (*slog.Logger, error) {
	l, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	return slog.New(log.NewWithOptions(w, log.Options{Level: l, Prefix: "bluum"})), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
