// Package logging assembles the structured slog loggers used across
// riftscope.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and standardizes field names (component, match, job_id, clock)
// so detector and store code emit lines with the same shape. A no-op logger
// is available for tests and wiring code that cannot fail.
package logging
