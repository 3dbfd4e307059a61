// Package videoid extracts canonical 11-character video identifiers from the
// URL shapes users paste into the CLI and bulk input files.
package videoid

import (
	"net/url"
	"regexp"
	"strings"

	"ytharvest/internal/services"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// pathPrefixes are the youtube.com path forms that carry the id as the second segment.
var pathPrefixes = map[string]struct{}{
	"embed":  {},
	"shorts": {},
	"watch":  {},
	"live":   {},
	"v":      {},
}

// Valid reports whether value is a bare video identifier.
func Valid(value string) bool {
	return idPattern.MatchString(value)
}

// Parse resolves a bare id or a supported URL to its video identifier.
func Parse(value string) (string, error) {
	candidate := strings.TrimSpace(value)
	if candidate == "" {
		return "", services.Wrap(services.ErrInvalidInput, "parse", "video id", "no video identifier provided", nil)
	}
	if Valid(candidate) {
		return candidate, nil
	}

	if parsed, err := url.Parse(candidate); err == nil {
		host := strings.ToLower(parsed.Hostname())
		segments := splitPath(parsed.Path)
		switch {
		case host == "youtu.be" || host == "www.youtu.be":
			if len(segments) > 0 && Valid(segments[0]) {
				return segments[0], nil
			}
		case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com") || host == "youtube-nocookie.com" || strings.HasSuffix(host, ".youtube-nocookie.com"):
			if v := parsed.Query().Get("v"); Valid(v) {
				return v, nil
			}
			if len(segments) >= 2 {
				if _, ok := pathPrefixes[segments[0]]; ok && Valid(segments[1]) {
					return segments[1], nil
				}
			}
		}
	}

	if strings.Contains(candidate, "/") {
		tail := candidate[strings.LastIndex(candidate, "/")+1:]
		if Valid(tail) {
			return tail, nil
		}
	}
	return "", services.Wrap(services.ErrInvalidInput, "parse", "video id", "unable to extract a video id from "+quote(candidate), nil)
}

// WatchURL returns the canonical watch URL for id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

func splitPath(path string) []string {
	raw := strings.Split(path, "/")
	out := raw[:0]
	for _, segment := range raw {
		if segment != "" {
			out = append(out, segment)
		}
	}
	return out
}

func quote(value string) string {
	const limit = 80
	if len(value) > limit {
		value = value[:limit] + "..."
	}
	return "\"" + value + "\""
}
