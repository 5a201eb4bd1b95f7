// Package logging assembles the slog loggers used by the CLI and the API
// client.
//
// Console output is a compact single-line format; JSON output uses ts, level
// and msg keys. Both go to stderr so stdout carries only the report. An
// optional log file always receives JSON. Context helpers tag lines with the
// entry, partner and run correlation id, and NewNop gives tests and wiring
// code a logger that cannot fail.
package logging
