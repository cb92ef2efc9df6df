package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFromString creates a logger from a level name such as "debug" or "warn".
func NewFromString(w io.Writer, level string) (*Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return NewWithLevel(w, lvl), nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.With(keyvals...)}
}

// RunStarted logs the start of a batch run
func (l *Logger) RunStarted(runID, job, scope string, files int) {
	l.Info("run started",
		"run", runID,
		"job", job,
		"scope", scope,
		"files", files)
}

// RunCompleted logs the end of a batch run
func (l *Logger) RunCompleted(runID string, changed, skipped, failed int, duration time.Duration) {
	l.Info("run completed",
		"run", runID,
		"changed", changed,
		"skipped", skipped,
		"failed", failed,
		"duration", duration.Round(time.Millisecond))
}

// FileRewritten logs a document whose links were rewritten
func (l *Logger) FileRewritten(file string, links int, dryRun bool) {
	l.Info("file rewritten",
		"file", file,
		"links", links,
		"dry_run", dryRun)
}

// FileSkipped logs a document left alone
func (l *Logger) FileSkipped(file, reason string) {
	l.Debug("file skipped",
		"file", file,
		"reason", reason)
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(sources []string, format string) {
	l.Debug("config loaded",
		"sources", sources,
		"final_link_format", format)
}
