package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ytharvest/internal/deps"
	"ytharvest/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check yt-dlp and directory access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var lines []string
			lines = append(lines, renderSectionHeader("Configuration", colorize)...)
			configDetail := ctx.configPath
			if !ctx.configExists {
				configDetail += " (not found, using defaults)"
			}
			lines = append(lines,
				renderStatusLine("Config file", statusInfo, configDetail, colorize),
				renderStatusLine("Format", statusInfo, cfg.Output.Format, colorize),
				renderStatusLine("Comments", statusInfo, fmt.Sprintf("top %d of up to %d, %s", cfg.Comments.RootCount, cfg.Comments.MaxComments, cfg.Comments.Sort), colorize),
				renderStatusLine("Bulk workers", statusInfo, strconv.Itoa(cfg.Bulk.Workers), colorize),
				renderStatusLine("History", statusInfo, historyPath(cfg), colorize),
				renderStatusLine("Log file", statusInfo, cfg.LogPath(), colorize),
			)

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			lines = append(lines, dependencyLines(preflight.CheckSystemDeps(cfg), colorize)...)

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Preflight", colorize)...)
			lines = append(lines, preflightLines(preflight.RunAll(cmd.Context(), cfg), colorize)...)

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	if len(statuses) == 0 {
		return []string{renderStatusLine("Dependencies", statusInfo, "None reported", colorize)}
	}
	lines := make([]string, 0, len(statuses)+1)
	var missing []string
	for _, dep := range statuses {
		kind := statusOK
		detail := "found"
		if dep.Path != "" {
			detail = "found at " + dep.Path
		}
		if !dep.Available {
			kind = statusError
			if dep.Optional {
				kind = statusWarn
			}
			detail = strings.TrimSpace(dep.Detail)
			if detail == "" {
				detail = "not available"
			}
			missing = append(missing, dep.Name)
		}
		lines = append(lines, renderStatusLine(dep.Name, kind, detail, colorize))
	}
	if len(missing) > 0 {
		lines = append(lines, renderStatusLine("Missing dependencies", statusError, strings.Join(missing, ", "), colorize))
	}
	return lines
}

func preflightLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, renderStatusLine(r.Name, passFail(r.Passed), r.Detail, colorize))
	}
	return lines
}
