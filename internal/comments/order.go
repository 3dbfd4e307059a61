package comments

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortMode selects how root comments are ranked.
type SortMode string

const (
	// SortPopularity ranks roots by like count, highest first.
	SortPopularity SortMode = "popularity"
	// SortChronological ranks roots by timestamp, newest first.
	SortChronological SortMode = "chronological"
)

// ParseSortMode normalizes user input into a SortMode.
func ParseSortMode(value string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "popularity", "by_popularity", "top", "popular":
		return SortPopularity, nil
	case "chronological", "newest", "new", "time":
		return SortChronological, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q (want popularity or chronological)", value)
	}
}

// Sorted returns a copy of threads with roots ordered by mode and each root's
// replies ordered newest first. Ties break on ID ascending in every ordering.
// The input is not modified.
func Sorted(threads []Thread, mode SortMode) []Thread {
	out := make([]Thread, len(threads))
	for i, thread := range threads {
		replies := make([]Comment, len(thread.Replies))
		copy(replies, thread.Replies)
		slices.SortFunc(replies, compareChronological)
		out[i] = Thread{Comment: thread.Comment, Replies: replies}
	}

	switch mode {
	case SortChronological:
		slices.SortFunc(out, func(a, b Thread) int {
			return compareChronological(a.Comment, b.Comment)
		})
	default:
		slices.SortFunc(out, func(a, b Thread) int {
			return comparePopularity(a.Comment, b.Comment)
		})
	}
	return out
}

// Top keeps the first n roots. n <= 0 keeps everything.
func Top(threads []Thread, n int) []Thread {
	if n <= 0 || len(threads) <= n {
		return threads
	}
	return threads[:n]
}

func comparePopularity(a, b Comment) int {
	if c := cmp.Compare(b.LikeCount, a.LikeCount); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Unknown timestamps are stored as 0 and therefore sort last.
func compareChronological(a, b Comment) int {
	if c := cmp.Compare(b.Timestamp, a.Timestamp); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
