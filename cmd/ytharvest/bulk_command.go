package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ytharvest/internal/bulk"
	"ytharvest/internal/config"
	"ytharvest/internal/harvest"
	"ytharvest/internal/history"
	"ytharvest/internal/logging"
	"ytharvest/internal/render"
	"ytharvest/internal/services"
)

type bulkFlags struct {
	dir          string
	format       string
	workers      int
	allowPartial bool
	jsonOutput   bool
	content      contentFlags
}

func newBulkCommand(ctx *commandContext) *cobra.Command {
	var flags bulkFlags

	cmd := &cobra.Command{
		Use:   "bulk <file>",
		Short: "Harvest every video listed in a file",
		Long: "Reads one URL or video id per line (blank lines and # comments are skipped)\n" +
			"and harvests them with a fixed worker pool. Exits non-zero when any video fails\n" +
			"unless partial success is allowed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *base
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			return runBulk(cmd, ctx, &cfg, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.dir, "dir", "d", "", "Output directory (default from config)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format: txt, json, or csv")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "Concurrent videos")
	cmd.Flags().BoolVar(&flags.allowPartial, "allow-partial", false, "Exit zero even when some videos fail")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Print the run summary as JSON")
	flags.content.register(cmd)
	return cmd
}

func (f bulkFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if strings.TrimSpace(f.dir) != "" {
		cfg.Output.Dir = f.dir
	}
	if strings.TrimSpace(f.format) != "" {
		cfg.Output.Format = f.format
	}
	if cmd.Flags().Changed("workers") {
		cfg.Bulk.Workers = f.workers
	}
	if f.allowPartial {
		cfg.Bulk.AllowPartialSuccess = true
	}
	f.content.apply(cmd, cfg)
	return normalizeOverrides(cfg)
}

func runBulk(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, path string, flags bulkFlags) error {
	inputs, err := bulk.ReadInputFile(path)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return services.Wrap(services.ErrInvalidInput, string(harvest.StagePending), "read inputs", "no videos listed in "+path, nil)
	}
	format, err := render.ParseFormat(cfg.Output.Format)
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
	orchestrator, err := bulk.New(harvester, bulk.Options{
		Workers:   cfg.Bulk.Workers,
		Format:    format,
		OutputDir: cfg.Output.Dir,
		Logger:    logger,
		OnStage: func(index int, videoID string, stage harvest.Stage) {
			logger.Debug("bulk stage",
				logging.Int("position", index+1),
				logging.String(logging.FieldVideoID, videoID),
				logging.String("stage", string(stage)),
			)
		},
	})
	if err != nil {
		return err
	}

	summary, err := orchestrator.Run(cmd.Context(), inputs)
	if err != nil {
		return err
	}
	recordRun(cmd.Context(), cfg, history.ModeBulk, summary, logger)

	if flags.jsonOutput {
		if err := writeJSON(cmd, summary); err != nil {
			return err
		}
	} else {
		printBulkSummary(cmd, summary)
	}

	succeeded, failed := summary.Tally()
	if failed > 0 && !cfg.Bulk.AllowPartialSuccess {
		return fmt.Errorf("bulk run %s: %d of %d videos failed", summary.RunID, failed, succeeded+failed)
	}
	return nil
}

func printBulkSummary(cmd *cobra.Command, summary bulk.Summary) {
	out := cmd.OutOrStdout()
	columns := []column{
		rightColumn("#"),
		leftColumn("Input").trimmed(48),
		leftColumn("Status"),
		rightColumn("Comments"),
		leftColumn("Output / Reason"),
	}
	rows := make([][]string, 0, len(summary.Outcomes))
	for i, o := range summary.Outcomes {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			o.Input,
			outcomeStatus(o),
			outcomeComments(o),
			outcomeDetail(o),
		})
	}
	succeeded, failed := summary.Tally()
	footer := []string{"", "", fmt.Sprintf("%d/%d ok", succeeded, succeeded+failed)}
	fmt.Fprintln(out, renderTable(columns, rows, footer))

	elapsed := summary.FinishedAt.Sub(summary.StartedAt).Round(10 * time.Millisecond)
	fmt.Fprintln(out, renderStatusLine("Run "+shortRunID(summary.RunID), tallyKind(succeeded, failed),
		fmt.Sprintf("%d succeeded, %d failed in %s", succeeded, failed, elapsed),
		shouldColorize(out)))
}

func outcomeStatus(o bulk.Outcome) string {
	switch {
	case !o.Success():
		return "failed"
	case o.Partial:
		return "partial"
	default:
		return "ok"
	}
}

func outcomeComments(o bulk.Outcome) string {
	if !o.Success() {
		return "-"
	}
	return fmt.Sprintf("%d + %d", o.Roots, o.Replies)
}

func outcomeDetail(o bulk.Outcome) string {
	if o.Success() {
		return o.OutputPath
	}
	return o.Reason
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
