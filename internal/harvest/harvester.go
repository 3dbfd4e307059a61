package harvest

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"ytharvest/internal/analysis"
	"ytharvest/internal/comments"
	"ytharvest/internal/logging"
	"ytharvest/internal/services"
	"ytharvest/internal/transcript"
)

// Stage names one step of a video's lifecycle.
type Stage string

const (
	StagePending    Stage = "pending"
	StageFetching   Stage = "fetching"
	StageAssembling Stage = "assembling"
	StageFormatting Stage = "formatting"
	StageWriting    Stage = "writing"
	StageDone       Stage = "done"
	StageFailed     Stage = "failed"
)

// Probe is what the metadata provider knows about a video before comments
// are fetched.
type Probe struct {
	Metadata  *Metadata
	Available *int64
	Captions  []transcript.Track
}

// MetadataSource describes a video.
type MetadataSource interface {
	Probe(ctx context.Context, videoID string) (Probe, error)
}

// TranscriptSource turns listed caption tracks into transcript sentences.
type TranscriptSource interface {
	Fetch(ctx context.Context, tracks []transcript.Track) ([]string, error)
}

// Options are the per-run knobs of the pipeline.
type Options struct {
	RootCount   int
	MaxComments int
	Sort        comments.SortMode
	Analysis    analysis.Options
}

// Harvester runs the fetch, build, order, and assemble steps for one video
// at a time. It is safe for concurrent use when its sources are.
type Harvester struct {
	meta        MetadataSource
	comments    comments.Source
	transcripts TranscriptSource
	opts        Options
	logger      *slog.Logger
}

// New constructs a Harvester. transcripts may be nil to skip transcripts.
func New(meta MetadataSource, src comments.Source, transcripts TranscriptSource, opts Options, logger *slog.Logger) *Harvester {
	return &Harvester{
		meta:        meta,
		comments:    src,
		transcripts: transcripts,
		opts:        opts,
		logger:      logging.NewComponentLogger(logger, "harvest"),
	}
}

// Harvest produces the VideoHarvest for videoID. onStage, when set, is told
// when the pipeline enters fetching and assembling.
func (h *Harvester) Harvest(ctx context.Context, videoID string, onStage func(Stage)) (VideoHarvest, error) {
	if h.meta == nil || h.comments == nil {
		return VideoHarvest{}, errors.New("harvester requires metadata and comment sources")
	}
	report := func(stage Stage) {
		if onStage != nil {
			onStage(stage)
		}
	}

	ctx = services.WithStage(services.WithVideoID(ctx, videoID), string(StageFetching))
	logger := logging.WithContext(ctx, h.logger)
	report(StageFetching)

	probe, err := h.meta.Probe(ctx, videoID)
	if err != nil {
		return VideoHarvest{}, err
	}

	lines := h.fetchTranscript(ctx, logger, probe.Captions)

	sampler := logging.NewProgressSampler(10)
	result, err := comments.Build(ctx, h.comments, videoID, comments.Options{
		MaxComments: h.opts.MaxComments,
		Progress: func(accepted int) {
			if percent, ok := sampler.Observe(accepted, h.opts.MaxComments); ok {
				logger.Debug("comment ingestion progress", logging.Int("accepted", accepted), logging.Float64("ceiling_percent", percent))
			}
		},
	})
	if err != nil {
		return VideoHarvest{}, err
	}
	if result.Partial {
		logging.WarnWithContext(logger, "comment stream interrupted; keeping partial forest", "comments_partial",
			logging.Error(result.Cause),
			logging.Int("roots", result.Roots),
			logging.Int("replies", result.Replies),
			logging.String(logging.FieldErrorHint, "retry later if the provider was rate limiting"),
			logging.String(logging.FieldImpact, "harvest marked partial"),
		)
	}
	if dropped := result.Orphans + result.OverCap + result.Malformed; dropped > 0 {
		logger.Debug("comments dropped during ingestion",
			logging.Int("orphans", result.Orphans),
			logging.Int("over_reply_cap", result.OverCap),
			logging.Int("malformed", result.Malformed),
		)
	}

	ordered := comments.Top(comments.Sorted(result.Threads, h.opts.Sort), h.opts.RootCount)
	summary := analysis.Analyze(strings.Join(lines, " "), h.opts.Analysis)

	report(StageAssembling)
	doc, err := Assemble(Input{
		VideoID:    videoID,
		Metadata:   probe.Metadata,
		Transcript: lines,
		Threads:    ordered,
		Analysis:   summary,
		Available:  probe.Available,
		Partial:    result.Partial,
	})
	if err != nil {
		return VideoHarvest{}, err
	}
	logger.Info("video harvested",
		logging.Int("roots", doc.Counts.Roots),
		logging.Int("replies", doc.Counts.Replies),
		logging.Int("total", doc.Counts.Total),
		logging.Bool("partial", doc.Partial),
		logging.Bool("capped", result.Capped),
	)
	return doc, nil
}

func (h *Harvester) fetchTranscript(ctx context.Context, logger *slog.Logger, tracks []transcript.Track) []string {
	if h.transcripts == nil {
		return nil
	}
	lines, err := h.transcripts.Fetch(ctx, tracks)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		logging.WarnWithContext(logger, "transcript unavailable", "transcript_missing",
			logging.Error(err),
			logging.String(logging.FieldImpact, "output written without transcript"),
		)
		return nil
	}
	if len(lines) == 0 {
		logger.Debug("no transcript listed for video")
	}
	return lines
}
