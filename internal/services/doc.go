// Package services defines shared utilities consumed by the harvest pipeline
// and the provider integrations.
//
// Key responsibilities:
//   - Context helpers that stamp video IDs, stage names, and run correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper that let callers separate
//     transient provider hiccups (recovered as partial harvests) from per-video
//     fatal failures.
//
// Use these helpers when wiring new pipeline logic so error handling and
// observability stay uniform across single-video and bulk runs.
package services
