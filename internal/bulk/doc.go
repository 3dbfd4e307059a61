// Package bulk fans the harvest pipeline out over a list of videos.
//
// Inputs are resolved and given deterministic output paths up front, so
// invalid identifiers and path collisions fail before any fetching. A fixed
// pool of workers then runs harvest, render, and write for one video at a
// time. Each worker reports its Outcome on a channel read by a single
// collector, which places it at the input's index; the Summary is therefore
// always in input order. A failure only ever fails its own slot.
//
// The output directory is guarded by an advisory file lock for the duration
// of a run so two invocations cannot interleave writes into it.
package bulk
