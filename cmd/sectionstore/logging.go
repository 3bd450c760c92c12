package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	mainLogger *slog.Logger

	// Log level mapping
	logLevelMap = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

// initLogging initializes the logging system with a file handler and an
// optional stderr handler for verbose runs
func initLogging(logLevel string, verbose bool) error {
	level, ok := logLevelMap[strings.ToLower(logLevel)]
	if !ok {
		level = slog.LevelWarn // Default to WARN
	}

	logDir := getXDGCacheDir()
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "sectionstore.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	var handler slog.Handler = slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})

	// Verbose runs also log to stderr in text form, keeping stdout clean for
	// replay output
	if verbose {
		stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		handler = &multiHandler{handlers: []slog.Handler{handler, stderrHandler}}
	}

	mainLogger = slog.New(handler)
	slog.SetDefault(mainLogger)

	mainLogger.Debug("logging initialized",
		"level", level.String(),
		"log_file", logPath,
		"verbose", verbose)

	return nil
}

// getXDGCacheDir returns the XDG cache directory for sectionstore
func getXDGCacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "sectionstore")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "sectionstore")
	}

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Caches", "sectionstore")
	}
	return filepath.Join(home, ".cache", "sectionstore")
}

// multiHandler implements slog.Handler to write to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if err := handler.Handle(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}
