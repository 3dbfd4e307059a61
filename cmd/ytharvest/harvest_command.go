package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ytharvest/internal/bulk"
	"ytharvest/internal/config"
	"ytharvest/internal/harvest"
	"ytharvest/internal/history"
	"ytharvest/internal/logging"
	"ytharvest/internal/render"
	"ytharvest/internal/services"
	"ytharvest/internal/videoid"
)

// stdoutTarget sends the rendered document to stdout instead of a file.
const stdoutTarget = "-"

type harvestFlags struct {
	format     string
	output     string
	content    contentFlags
	jsonOutput bool
}

// contentFlags shape each harvested document. harvest and bulk share them.
type contentFlags struct {
	sort        string
	rootCount   int
	maxComments int
	noSentiment bool
	noKeywords  bool
}

func (c *contentFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&c.rootCount, "comments", "n", 0, "Number of top-level comments to keep")
	cmd.Flags().IntVar(&c.maxComments, "max-comments", 0, "Maximum comments to download before building threads")
	cmd.Flags().StringVar(&c.sort, "sort", "", "Root ordering: popularity or chronological")
	cmd.Flags().BoolVar(&c.noSentiment, "no-sentiment", false, "Skip transcript sentiment")
	cmd.Flags().BoolVar(&c.noKeywords, "no-keywords", false, "Skip transcript keywords")
}

func (c contentFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if strings.TrimSpace(c.sort) != "" {
		cfg.Comments.Sort = c.sort
	}
	if cmd.Flags().Changed("comments") {
		cfg.Comments.RootCount = c.rootCount
	}
	if cmd.Flags().Changed("max-comments") {
		cfg.Comments.MaxComments = c.maxComments
	}
	if c.noSentiment {
		cfg.Analysis.Sentiment = false
	}
	if c.noKeywords {
		cfg.Analysis.Keywords = false
	}
}

func newHarvestCommand(ctx *commandContext) *cobra.Command {
	var flags harvestFlags

	cmd := &cobra.Command{
		Use:   "harvest <url|id>",
		Short: "Harvest one video into a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *base
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			return runHarvest(cmd, ctx, &cfg, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format: txt, json, or csv")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default <dir>/<id>.<ext>, - for stdout)")
	flags.content.register(cmd)
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Print the run outcome as JSON")
	return cmd
}

// apply layers the per-invocation flags over cfg and revalidates it.
func (f harvestFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if strings.TrimSpace(f.format) != "" {
		cfg.Output.Format = f.format
	}
	f.content.apply(cmd, cfg)
	return normalizeOverrides(cfg)
}

func normalizeOverrides(cfg *config.Config) error {
	if err := cfg.Normalize(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return services.Wrap(services.ErrConfiguration, string(harvest.StagePending), "apply flags", "", err)
	}
	return nil
}

func runHarvest(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, input string, flags harvestFlags) error {
	format, err := render.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	id, err := videoid.Parse(input)
	if err != nil {
		return err
	}
	target, err := harvestTarget(flags.output, cfg.Output.Dir, id, format)
	if err != nil {
		return err
	}

	logger, err := ctx.logger(cmd, cfg)
	if err != nil {
		return err
	}
	if err := requireProvider(cfg); err != nil {
		return err
	}
	harvester, err := newHarvester(cfg, logger)
	if err != nil {
		return err
	}

	summary := bulk.Summary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Format:    format,
		OutputDir: cfg.Output.Dir,
	}
	runCtx := services.WithRunID(cmd.Context(), summary.RunID)
	logger = logging.WithContext(runCtx, logger)

	outcome := bulk.Outcome{Input: input, VideoID: id}
	if target != stdoutTarget {
		outcome.OutputPath = target
		summary.OutputDir = filepath.Dir(target)
	}
	runErr := harvestOne(runCtx, harvester, id, format, target, cmd, logger, &outcome)
	outcome.Elapsed = time.Since(summary.StartedAt)
	summary.FinishedAt = time.Now().UTC()
	summary.Outcomes = []bulk.Outcome{outcome}
	recordRun(runCtx, cfg, history.ModeSingle, summary, logger)
	if runErr != nil {
		return runErr
	}

	if flags.jsonOutput {
		return writeJSON(cmd, outcome)
	}
	if target == stdoutTarget {
		return nil
	}
	line := fmt.Sprintf("%s -> %s (%d roots, %d replies)", id, target, outcome.Roots, outcome.Replies)
	if outcome.Partial {
		line += " [partial]"
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)
	return nil
}

// harvestOne runs the pipeline and fills outcome. On failure outcome carries
// the classified reason.
func harvestOne(ctx context.Context, h *harvest.Harvester, id string, format render.Format, target string, cmd *cobra.Command, logger *slog.Logger, outcome *bulk.Outcome) error {
	err := func() error {
		doc, err := h.Harvest(ctx, id, func(stage harvest.Stage) {
			logger.Debug("harvest stage", logging.String("stage", string(stage)))
		})
		if err != nil {
			return err
		}
		data, err := render.Render(doc, format)
		if err != nil {
			return err
		}
		if target == stdoutTarget {
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return services.Wrap(services.ErrFormatWrite, string(harvest.StageWriting), "write output", "stdout", err)
			}
		} else {
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return services.Wrap(services.ErrFormatWrite, string(harvest.StageWriting), "prepare output dir", filepath.Dir(target), err)
			}
			if err := bulk.WriteOutput(target, data); err != nil {
				return err
			}
		}
		outcome.Partial = doc.Partial
		outcome.Roots = doc.Counts.Roots
		outcome.Replies = doc.Counts.Replies
		return nil
	}()
	if err != nil {
		outcome.Status = bulk.StatusFailure
		outcome.Reason = services.Classify(err)
		outcome.Message = err.Error()
		return err
	}
	outcome.Status = bulk.StatusSuccess
	return nil
}

// harvestTarget resolves where a single harvest is written.
func harvestTarget(output, dir, id string, format render.Format) (string, error) {
	output = strings.TrimSpace(output)
	switch output {
	case "":
		return bulk.OutputPath(dir, id, format), nil
	case stdoutTarget:
		return stdoutTarget, nil
	default:
		return config.ExpandPath(output)
	}
}
