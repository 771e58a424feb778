// Package logging assembles structured slog loggers and formatting helpers used
// across luqy.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so parser and batch code tag log
// lines with the same keys (file, line, entry_id). Warnings go through
// WarnWithContext so each carries an event type, a hint, and an impact. The
// package also provides a no-op logger for tests and for callers that pass a
// nil logger.
package logging
