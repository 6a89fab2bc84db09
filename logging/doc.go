// Package logging provides structured logging using Go's standard library
// log/slog, with JSON or text output selected by configuration.
package logging
