// Package harvest runs the per-video pipeline and assembles its result.
//
// A Harvester describes the video, downloads its transcript, builds the
// comment forest under the ingestion ceiling, orders and truncates the roots,
// computes the optional analysis, and hands everything to Assemble. The
// resulting VideoHarvest is the canonical record every output format
// projects from.
package harvest
