// Package logging assembles structured slog loggers and formatting helpers used
// across daspub.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so traversal code can tag log
// lines with run IDs and the archive, course, and assignment being inspected.
// The package also provides a no-op logger for tests and for model code built
// without a logger.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits the same field names.
package logging
