// Command ytharvest downloads a YouTube video's metadata, transcript, and
// threaded comments into a single text, JSON, or CSV document.
//
// Subcommands:
//
//	harvest <url|id>   process one video
//	bulk <file>        process a list of videos with a worker pool
//	render <file>      re-render a saved JSON harvest
//	history            list and inspect recorded runs
//	status             check yt-dlp and directory access
//	config             create or validate the configuration file
package main
