// Package logging assembles structured slog loggers and formatting helpers
// used across scribe components.
//
// It owns the configurable console/JSON handlers, centralizes level and
// output plumbing, and exposes attribute helpers so pipeline code tags log
// lines with assets, containers, and batch numbers consistently. The
// package also provides a no-op logger for tests and wiring code that
// cannot fail, plus a retention sweep for old log files.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape and routing.
package logging
