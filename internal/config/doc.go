// Package config loads, normalizes, and validates rosterpost configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// ROSTERPOST_ACCESS_TOKEN. The Config type centralizes every knob the CLI
// needs, so directories, publish credentials, and scheduling limits are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical strategies, and clear validation errors.
package config
