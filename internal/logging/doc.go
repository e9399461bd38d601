// Package logging assembles the structured slog loggers used across
// rosterpost.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes shared attribute keys so every accept/reject,
// allow/deny, and publish decision lands in the log with the same shape.
// The no-op logger serves tests and wiring code that cannot fail.
package logging
