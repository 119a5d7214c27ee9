// Package logger provides a small slog-based diagnostic logger.
// While the chat TUI owns the terminal, records only go to the log file.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Config describes logger settings.
type Config struct {
	Enabled bool
	Level   string
	Stderr  bool
	File    string
}

var (
	mu      sync.RWMutex
	base    *slog.Logger
	enabled bool

	savedCfg  Config
	savedFile *os.File
	quiet     bool // stderr suppressed while a TUI is running
)

// Init initializes the logger. Relative file paths resolve against configDir.
func Init(cfg Config, configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	closeFile()
	savedCfg = cfg

	if !cfg.Enabled {
		enabled = false
		base = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}

	var initErr error
	if cfg.File != "" {
		path := expandPath(cfg.File, configDir)
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return fmt.Errorf("logger: create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			initErr = fmt.Errorf("logger: open log file: %w", err)
		} else {
			savedFile = f
		}
	}

	rebuild()
	return initErr
}

// SetOutput replaces every sink with w. Used by tests.
func SetOutput(w io.Writer, level string) {
	mu.Lock()
	defer mu.Unlock()

	closeFile()
	savedCfg = Config{Enabled: true, Level: level}
	base = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
	enabled = true
}

// Quiet stops writing to stderr until Restore is called.
func Quiet() {
	mu.Lock()
	defer mu.Unlock()
	quiet = true
	rebuild()
}

// Restore undoes Quiet.
func Restore() {
	mu.Lock()
	defer mu.Unlock()
	quiet = false
	rebuild()
}

// Close flushes and closes the log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	enabled = false
}

// rebuild reconstructs the handler from current state.
// Must be called with mu held.
func rebuild() {
	if !savedCfg.Enabled {
		return
	}

	var writers []io.Writer
	if savedCfg.Stderr && !quiet {
		writers = append(writers, os.Stderr)
	}
	if savedFile != nil {
		writers = append(writers, savedFile)
	}

	if len(writers) == 0 {
		base = slog.New(slog.NewTextHandler(io.Discard, nil))
		enabled = false
		return
	}

	opts := &slog.HandlerOptions{Level: parseLevel(savedCfg.Level)}
	base = slog.New(slog.NewTextHandler(io.MultiWriter(writers...), opts))
	enabled = true
}

func closeFile() {
	if savedFile != nil {
		_ = savedFile.Close()
		savedFile = nil
	}
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	log(slog.LevelDebug, msg, args...)
}

// Info logs an info message.
func Info(msg string, args ...any) {
	log(slog.LevelInfo, msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	log(slog.LevelWarn, msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	log(slog.LevelError, msg, args...)
}

func log(level slog.Level, msg string, args ...any) {
	mu.RLock()
	l := base
	on := enabled
	mu.RUnlock()

	if !on || l == nil {
		return
	}

	l.Log(context.Background(), level, msg, args...)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func expandPath(path, configDir string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	if configDir != "" {
		return filepath.Join(configDir, path)
	}
	return path
}
