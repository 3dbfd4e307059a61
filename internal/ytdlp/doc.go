// Package ytdlp mediates access to the yt-dlp CLI, the only provider the
// harvester talks to.
//
// The Client probes video metadata and caption listings, and serves the
// comment dump as a paged comments.Source so the thread builder can enforce
// its ceiling while the stream is consumed. Invocations go through the
// Executor interface so tests never shell out, and a shared rate limiter keeps
// concurrent bulk workers polite. Failures are classified from yt-dlp's
// stderr into the transient and fatal markers of internal/services.
package ytdlp
