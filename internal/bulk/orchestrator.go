package bulk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"ytharvest/internal/fileutil"
	"ytharvest/internal/harvest"
	"ytharvest/internal/logging"
	"ytharvest/internal/render"
	"ytharvest/internal/services"
	"ytharvest/internal/textutil"
	"ytharvest/internal/videoid"
)

// LockFileName is created inside the output directory while a run holds it.
const LockFileName = ".ytharvest.lock"

const defaultWorkers = 5

// Harvester produces the document for one video.
type Harvester interface {
	Harvest(ctx context.Context, videoID string, onStage func(harvest.Stage)) (harvest.VideoHarvest, error)
}

// StageFunc observes per-input stage transitions. index is the input's
// position in the list.
type StageFunc func(index int, videoID string, stage harvest.Stage)

// Options configure a bulk run.
type Options struct {
	Workers   int
	Format    render.Format
	OutputDir string
	OnStage   StageFunc
	Logger    *slog.Logger
}

// Orchestrator runs the pipeline over many inputs with bounded concurrency.
type Orchestrator struct {
	harvester Harvester
	opts      Options
	logger    *slog.Logger
}

// New validates opts and constructs an Orchestrator.
func New(h Harvester, opts Options) (*Orchestrator, error) {
	if h == nil {
		return nil, errors.New("bulk orchestrator requires a harvester")
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Format == "" {
		opts.Format = render.FormatText
	}
	if _, err := render.ParseFormat(string(opts.Format)); err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	return &Orchestrator{
		harvester: h,
		opts:      opts,
		logger:    logging.NewComponentLogger(opts.Logger, "bulk"),
	}, nil
}

type job struct {
	index   int
	input   string
	videoID string
	path    string
}

type result struct {
	index   int
	outcome Outcome
}

// Run processes inputs and returns their summary. The returned error is
// reserved for run-level problems such as an unusable output directory;
// per-input failures are recorded in the summary.
func (o *Orchestrator) Run(ctx context.Context, inputs []string) (Summary, error) {
	summary := Summary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Format:    o.opts.Format,
		OutputDir: o.opts.OutputDir,
		Outcomes:  make([]Outcome, len(inputs)),
	}
	ctx = services.WithRunID(ctx, summary.RunID)
	logger := logging.WithContext(ctx, o.logger)

	if err := os.MkdirAll(o.opts.OutputDir, 0o755); err != nil {
		return summary, services.Wrap(services.ErrFormatWrite, string(harvest.StagePending), "prepare output dir", o.opts.OutputDir, err)
	}
	lock := flock.New(filepath.Join(o.opts.OutputDir, LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return summary, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return summary, services.Wrap(services.ErrOutputCollision, string(harvest.StagePending), "acquire output lock",
			"another run is writing to "+o.opts.OutputDir, nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release output lock", logging.Error(err))
		}
	}()

	jobs := o.plan(inputs, summary.Outcomes)
	logger.Info("bulk run started",
		logging.Int("inputs", len(inputs)),
		logging.Int("queued", len(jobs)),
		logging.Int("workers", o.opts.Workers),
		logging.String("format", string(o.opts.Format)),
		logging.String("output_dir", o.opts.OutputDir),
	)

	results := o.dispatch(ctx, jobs)
	done := 0
	for r := range results {
		summary.Outcomes[r.index] = r.outcome
		done++
		o.logOutcome(logger, r.outcome, done, len(jobs))
	}

	for i := range summary.Outcomes {
		if summary.Outcomes[i].Status == "" {
			summary.Outcomes[i] = failure(summary.Outcomes[i], context.Canceled)
		}
	}
	summary.FinishedAt = time.Now().UTC()

	succeeded, failed := summary.Tally()
	logger.Info("bulk run finished",
		logging.Int("succeeded", succeeded),
		logging.Int("failed", failed),
		logging.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	return summary, nil
}

// plan resolves every input, fills failures for invalid inputs and output
// collisions into outcomes, and returns the remaining work in input order.
// The first input to claim a path keeps it.
func (o *Orchestrator) plan(inputs []string, outcomes []Outcome) []job {
	claimed := make(map[string]int, len(inputs))
	jobs := make([]job, 0, len(inputs))
	for i, input := range inputs {
		outcomes[i] = Outcome{Input: input}
		id, err := videoid.Parse(input)
		if err != nil {
			outcomes[i] = failure(outcomes[i], err)
			continue
		}
		outcomes[i].VideoID = id
		path := OutputPath(o.opts.OutputDir, id, o.opts.Format)
		outcomes[i].OutputPath = path
		if first, taken := claimed[path]; taken {
			outcomes[i] = failure(outcomes[i], services.Wrap(services.ErrOutputCollision, string(harvest.StagePending), "claim output",
				fmt.Sprintf("%s already produced by input %d", filepath.Base(path), first+1), nil))
			outcomes[i].OutputPath = ""
			continue
		}
		claimed[path] = i
		jobs = append(jobs, job{index: i, input: input, videoID: id, path: path})
	}
	return jobs
}

// dispatch feeds jobs to a fixed worker pool and returns the channel the
// workers report on. The channel closes once every worker has exited.
func (o *Orchestrator) dispatch(ctx context.Context, jobs []job) <-chan result {
	workers := min(o.opts.Workers, len(jobs))
	queue := make(chan job)
	results := make(chan result, workers)

	go func() {
		defer close(queue)
		for _, j := range jobs {
			select {
			case queue <- j:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for j := range queue {
				results <- result{index: j.index, outcome: o.process(ctx, j)}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	return results
}

// process runs one input through harvest, render, and write.
func (o *Orchestrator) process(ctx context.Context, j job) Outcome {
	outcome := Outcome{Input: j.input, VideoID: j.videoID, OutputPath: j.path}
	start := time.Now()
	stage := func(s harvest.Stage) {
		if o.opts.OnStage != nil {
			o.opts.OnStage(j.index, j.videoID, s)
		}
	}
	fail := func(err error) Outcome {
		outcome.Elapsed = time.Since(start)
		stage(harvest.StageFailed)
		return failure(outcome, err)
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	doc, err := o.harvester.Harvest(ctx, j.videoID, stage)
	if err != nil {
		return fail(err)
	}

	stage(harvest.StageFormatting)
	data, err := render.Render(doc, o.opts.Format)
	if err != nil {
		return fail(err)
	}

	stage(harvest.StageWriting)
	if err := WriteOutput(j.path, data); err != nil {
		return fail(err)
	}

	stage(harvest.StageDone)
	outcome.Status = StatusSuccess
	outcome.Partial = doc.Partial
	outcome.Roots = doc.Counts.Roots
	outcome.Replies = doc.Counts.Replies
	outcome.Elapsed = time.Since(start)
	return outcome
}

func (o *Orchestrator) logOutcome(logger *slog.Logger, outcome Outcome, done, total int) {
	logger = logger.With(logging.String(logging.FieldVideoID, outcome.VideoID))
	if outcome.Success() {
		logger.Info("video written",
			logging.String("output_path", outcome.OutputPath),
			logging.Int("roots", outcome.Roots),
			logging.Int("replies", outcome.Replies),
			logging.Bool("partial", outcome.Partial),
			logging.String("progress", fmt.Sprintf("%d/%d", done, total)),
		)
		return
	}
	logging.WarnWithContext(logger, "video failed", "video_failed",
		logging.String("reason", outcome.Reason),
		logging.String("error_message", outcome.Message),
		logging.String("progress", fmt.Sprintf("%d/%d", done, total)),
		logging.String(logging.FieldImpact, "other videos continue"),
	)
}

// OutputPath is the deterministic output location for videoID.
func OutputPath(dir, videoID string, format render.Format) string {
	return filepath.Join(dir, textutil.FileToken(videoID)+"."+format.Extension())
}

// WriteOutput atomically writes rendered bytes to path. Failures wrap
// services.ErrFormatWrite.
func WriteOutput(path string, data []byte) error {
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return services.Wrap(services.ErrFormatWrite, string(harvest.StageWriting), "write output", path, err)
	}
	return nil
}

func failure(outcome Outcome, err error) Outcome {
	outcome.Status = StatusFailure
	outcome.Reason = services.Classify(err)
	outcome.Message = err.Error()
	return outcome
}
