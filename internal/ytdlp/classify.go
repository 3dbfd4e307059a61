package ytdlp

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"ytharvest/internal/services"
)

var fatalPatterns = []string{
	"video unavailable",
	"private video",
	"members-only",
	"members only",
	"comments are turned off",
	"comments are disabled",
	"not a valid url",
	"unsupported url",
	"sign in to confirm your age",
	"has been removed",
	"account associated with this video has been terminated",
}

var transientPatterns = []string{
	"http error 429",
	"too many requests",
	"http error 500",
	"http error 502",
	"http error 503",
	"http error 504",
	"timed out",
	"connection reset",
	"connection refused",
	"temporary failure in name resolution",
	"remote end closed connection",
	"incompleteread",
}

// classify turns a failed invocation into a marked error. Fatal patterns
// are checked first because yt-dlp often reports retries before giving up.
func classify(ctx context.Context, op string, out Output, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, exec.ErrNotFound) {
		return services.Wrap(services.ErrExternalTool, "fetching", op, "yt-dlp not found", err)
	}

	stderr := string(out.Stderr)
	lower := strings.ToLower(stderr)
	message := lastErrorLine(stderr)
	for _, pattern := range fatalPatterns {
		if strings.Contains(lower, pattern) {
			return services.Wrap(services.ErrProviderFatal, "fetching", op, message, err)
		}
	}
	for _, pattern := range transientPatterns {
		if strings.Contains(lower, pattern) {
			return services.Wrap(services.ErrProviderTransient, "fetching", op, message, err)
		}
	}
	return services.Wrap(services.ErrProviderFatal, "fetching", op, message, err)
}

// lastErrorLine returns the final "ERROR:" line, or the last non-empty line.
func lastErrorLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	last := ""
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if after, ok := strings.CutPrefix(line, "ERROR:"); ok {
			return strings.TrimSpace(after)
		}
		if last == "" {
			last = line
		}
	}
	if last == "" {
		return "yt-dlp failed"
	}
	return last
}
