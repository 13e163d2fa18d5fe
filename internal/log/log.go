// Package log writes structured JSON logs for commands, errors and info.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Bukisoo/d3-force-tree-app/internal/config"
)

// Fields carries structured attributes for one log record.
type Fields map[string]interface{}

func (f Fields) attrs() []any {
	args := make([]any, 0, len(f)*2)
	for k, v := range f {
		args = append(args, k, v)
	}
	return args
}

// Logger fans records out to the command, error and info streams.
type Logger struct {
	commandLogger *slog.Logger
	errorLogger   *slog.Logger
	infoLogger    *slog.Logger
	files         []*os.File
}

// NewLogger opens the log files named in cfg, creating the folder.
func NewLogger(cfg config.LogConfig) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Folder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	l := &Logger{}
	open := func(name string) (*os.File, error) {
		f, err := os.OpenFile(filepath.Join(cfg.Folder, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			l.Close()
			return nil, fmt.Errorf("failed to open log file %s: %w", name, err)
		}
		l.files = append(l.files, f)
		return f, nil
	}

	commandFile, err := open(cfg.CommandLog)
	if err != nil {
		return nil, err
	}
	errorFile, err := open(cfg.ErrorLog)
	if err != nil {
		return nil, err
	}
	infoFile, err := open(cfg.InfoLog)
	if err != nil {
		return nil, err
	}

	l.commandLogger = slog.New(slog.NewJSONHandler(commandFile, &slog.HandlerOptions{Level: slog.LevelInfo}))
	l.errorLogger = slog.New(slog.NewJSONHandler(errorFile, &slog.HandlerOptions{Level: slog.LevelWarn}))
	l.infoLogger = slog.New(slog.NewJSONHandler(infoFile, &slog.HandlerOptions{Level: level}))
	return l, nil
}

// NewWriterLogger sends every stream to w.
func NewWriterLogger(w io.Writer, level slog.Level) *Logger {
	h := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	return &Logger{commandLogger: h, errorLogger: h, infoLogger: h}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWriterLogger(io.Discard, slog.LevelError)
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", config.ErrInvalid, name)
}

// Command records one line the user typed.
func (l *Logger) Command(ctx context.Context, line string) {
	l.commandLogger.InfoContext(ctx, "command", "line", line)
}

// Error logs to the error stream.
func (l *Logger) Error(ctx context.Context, msg string, fields Fields) {
	l.errorLogger.ErrorContext(ctx, msg, fields.attrs()...)
}

// Warn logs to the error stream.
func (l *Logger) Warn(ctx context.Context, msg string, fields Fields) {
	l.errorLogger.WarnContext(ctx, msg, fields.attrs()...)
}

// Info logs to the info stream.
func (l *Logger) Info(ctx context.Context, msg string, fields Fields) {
	l.infoLogger.InfoContext(ctx, msg, fields.attrs()...)
}

// Debug logs to the info stream when the level allows.
func (l *Logger) Debug(ctx context.Context, msg string, fields Fields) {
	l.infoLogger.DebugContext(ctx, msg, fields.attrs()...)
}

// Close closes the log files.
func (l *Logger) Close() error {
	var first error
	for _, f := range l.files {
		if err := f.Close(); err != nil && first == nil {
			first = fmt.Errorf("failed to close log file: %w", err)
		}
	}
	l.files = nil
	return first
}
