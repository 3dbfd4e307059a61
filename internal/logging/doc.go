// Package logging assembles the structured slog loggers used across ytharvest.
//
// It owns the console and JSON handlers, routes output to stderr and the
// per-user log file, and exposes context-aware helpers so pipeline code can
// tag lines with the video ID, stage, and run ID it is working on. A no-op
// logger is provided for tests and for wiring code that cannot fail.
package logging
