// Package logging assembles structured slog loggers and formatting helpers used
// across demosongs.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and defines the standard attribute keys (component, run_id,
// event_type, ...) so every component emits the same shape. A no-op logger is
// provided for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup.
package logging
