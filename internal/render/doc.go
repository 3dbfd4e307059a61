// Package render projects a harvest.VideoHarvest into its output formats.
//
// Three projections exist. The JSON projection mirrors the record exactly and
// is the only lossless one; ParseJSON reverses it. The text projection is a
// human-readable report, and the CSV projection flattens the comment forest
// into one row per comment. Rendering never mutates its input and never
// touches the filesystem; callers hand the returned bytes to
// fileutil.WriteAtomic.
package render
