package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"ytharvest/internal/bulk"
	"ytharvest/internal/config"
	"ytharvest/internal/history"
)

const historyTimeLayout = "2006-01-02 15:04:05"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store *history.Store) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					if runs == nil {
						runs = []history.Run{}
					}
					return writeJSON(cmd, runs)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						shortRunID(run.ID),
						string(run.Mode),
						run.StartedAt.Local().Format(historyTimeLayout),
						run.Format,
						strconv.Itoa(run.Total),
						strconv.Itoa(run.Succeeded),
						strconv.Itoa(run.Failed),
						run.OutputDir,
					})
				}
				columns := []column{
					leftColumn("Run"),
					leftColumn("Mode"),
					leftColumn("Started"),
					leftColumn("Format"),
					rightColumn("Total"),
					rightColumn("OK"),
					rightColumn("Failed"),
					leftColumn("Output"),
				}
				fmt.Fprintln(out, renderTable(columns, rows, nil))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	cmd.AddCommand(newHistoryPruneCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the per-video outcomes of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store *history.Store) error {
				run, err := store.Get(cmd.Context(), args[0])
				switch {
				case errors.Is(err, history.ErrNotFound):
					return fmt.Errorf("no run matches %q", args[0])
				case errors.Is(err, history.ErrAmbiguous):
					return fmt.Errorf("%q matches more than one run; use more characters", args[0])
				case err != nil:
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, run)
				}
				printRun(cmd, run)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run as JSON")
	return cmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the most recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store *history.Store) error {
				removed, err := store.Prune(cmd.Context(), keep)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s)\n", removed)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&keep, "keep", 20, "Number of recent runs to keep")
	return cmd
}

func withHistory(ctx *commandContext, fn func(*history.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return errors.New("run history is disabled (history.enabled = false)")
	}
	store, err := history.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func printRun(cmd *cobra.Command, run *history.Run) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	for _, line := range renderSectionHeader("Run "+run.ID, colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "Mode:     %s\n", run.Mode)
	fmt.Fprintf(out, "Format:   %s\n", run.Format)
	fmt.Fprintf(out, "Output:   %s\n", run.OutputDir)
	fmt.Fprintf(out, "Started:  %s\n", run.StartedAt.Local().Format(historyTimeLayout))
	fmt.Fprintf(out, "Duration: %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	fmt.Fprintf(out, "Result:   %d succeeded, %d failed\n\n", run.Succeeded, run.Failed)

	rows := make([][]string, 0, len(run.Outcomes))
	for _, o := range run.Outcomes {
		detail := o.OutputPath
		if o.Status != string(bulk.StatusSuccess) {
			detail = o.Reason + ": " + o.Message
		} else if o.Partial {
			detail += " (partial)"
		}
		rows = append(rows, []string{
			strconv.Itoa(o.Position + 1),
			o.Input,
			o.Status,
			o.Elapsed.Round(time.Millisecond).String(),
			detail,
		})
	}
	columns := []column{
		rightColumn("#"),
		leftColumn("Input").trimmed(48),
		leftColumn("Status"),
		rightColumn("Elapsed"),
		leftColumn("Output / Error"),
	}
	fmt.Fprintln(out, renderTable(columns, rows, nil))
}

// historyPath is shown by status so users can find the database.
func historyPath(cfg *config.Config) string {
	if !cfg.History.Enabled {
		return "disabled"
	}
	return cfg.HistoryPath()
}
