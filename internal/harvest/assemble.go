package harvest

import (
	"strings"

	"ytharvest/internal/analysis"
	"ytharvest/internal/comments"
	"ytharvest/internal/services"
)

// Input carries the already-fetched pieces of a harvest.
type Input struct {
	VideoID    string
	Metadata   *Metadata
	Transcript []string
	Threads    []comments.Thread
	Analysis   *analysis.Summary
	Available  *int64
	Partial    bool
}

// Assemble merges the inputs into a VideoHarvest. It performs no I/O. A
// missing video id or metadata yields services.ErrIncompleteSource.
func Assemble(in Input) (VideoHarvest, error) {
	videoID := strings.TrimSpace(in.VideoID)
	if videoID == "" {
		return VideoHarvest{}, services.Wrap(services.ErrIncompleteSource, "assembling", "assemble", "video id missing", nil)
	}
	if in.Metadata == nil {
		return VideoHarvest{}, services.Wrap(services.ErrIncompleteSource, "assembling", "assemble", "metadata missing for "+videoID, nil)
	}

	meta := *in.Metadata
	meta.Tags = append([]string{}, meta.Tags...)

	transcript := append([]string{}, in.Transcript...)

	threads := make([]comments.Thread, len(in.Threads))
	counts := Counts{Available: in.Available}
	for i, thread := range in.Threads {
		replies := make([]comments.Comment, len(thread.Replies))
		copy(replies, thread.Replies)
		threads[i] = comments.Thread{Comment: thread.Comment, Replies: replies}
		counts.Roots++
		counts.Replies += len(replies)
	}
	counts.Total = counts.Roots + counts.Replies

	return VideoHarvest{
		VideoID:    videoID,
		Metadata:   meta,
		Transcript: transcript,
		Comments:   threads,
		Analysis:   in.Analysis,
		Counts:     counts,
		Partial:    in.Partial,
	}, nil
}
