// Package preflight provides readiness checks for the external tool and
// filesystem paths ytharvest depends on.
//
// The CLI "ytharvest status" command renders every check; harvest and bulk
// runs call RunAll first and refuse to start when a required check fails, so
// a missing yt-dlp or an unwritable output directory is reported once rather
// than as a failure for every video.
package preflight
