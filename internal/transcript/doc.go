// Package transcript selects a caption track for a video, downloads it, and
// reduces the cue file to readable sentences.
//
// Supported caption formats are WebVTT and SRT. Cleaning drops headers, cue
// timings, counters, and style blocks, strips inline markup, and removes the
// rolling duplicates that automatic captions repeat from cue to cue. The
// remaining fragments are merged into sentences.
//
// A missing or undownloadable transcript is never fatal to a harvest; callers
// receive an empty slice and decide how to report it.
package transcript
