package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Config holds logger configuration
type Config struct {
	Level      slog.Level
	OutputFile string // Path to log file (empty = stderr only)
	JSONFormat bool   // JSON handler instead of text
	AddSource  bool   // Add source file and line number
}

// Setup configures the process-wide slog default. Returns a closer for the
// log file when one was opened.
func Setup(cfg Config) (func() error, error) {
	writers := []io.Writer{os.Stderr}
	closer := func() error { return nil }

	if cfg.OutputFile != "" {
		dir := filepath.Dir(cfg.OutputFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory %s: %w", dir, err)
		}
		file, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", cfg.OutputFile, err)
		}
		writers = append(writers, file)
		closer = file.Close
	}

	w := io.MultiWriter(writers...)
	opts := &slog.HandlerOptions{Level: cfg.Level, AddSource: cfg.AddSource}

	var handler slog.Handler
	if cfg.JSONFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))

	return closer, nil
}

// ForComponent returns the default logger tagged with a component name.
func ForComponent(name string) *slog.Logger {
	return slog.Default().With("component", name)
}
