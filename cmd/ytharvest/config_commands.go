package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ytharvest/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or scaffold the configuration file",
	}
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool
	var toStdout bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write an annotated sample configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if toStdout {
				_, err := io.WriteString(out, config.Sample())
				return err
			}

			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				_, statErr := os.Stat(target)
				switch {
				case statErr == nil:
					return fmt.Errorf("%s already exists; pass --overwrite to replace it", target)
				case !errors.Is(statErr, fs.ErrNotExist):
					return fmt.Errorf("inspect %s: %w", target, statErr)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}

			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "yt-dlp must be on PATH, or set provider.ytdlp_binary.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the sample instead of writing it")
	return cmd
}

func initTarget(flagValue string) (string, error) {
	if strings.TrimSpace(flagValue) == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("default config path: %w", err)
		}
		return path, nil
	}
	path, err := config.ExpandPath(flagValue)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", flagValue, err)
	}
	return path, nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and print the effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			source := ctx.configPath
			if !ctx.configExists {
				source += " (not found, defaults in effect)"
			}
			fmt.Fprintf(out, "Config path: %s\n", source)
			fmt.Fprint(out, renderTable(
				[]column{leftColumn("Setting"), leftColumn("Value").trimmed(60)},
				effectiveSettings(cfg),
				nil,
			))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func effectiveSettings(cfg *config.Config) [][]string {
	languages := strings.Join(cfg.Provider.TranscriptLanguages, ", ")
	return [][]string{
		{"output.format", cfg.Output.Format},
		{"output.dir", cfg.Output.Dir},
		{"comments.root_count", strconv.Itoa(cfg.Comments.RootCount)},
		{"comments.max_comments", strconv.Itoa(cfg.Comments.MaxComments)},
		{"comments.sort", cfg.Comments.Sort},
		{"bulk.workers", strconv.Itoa(cfg.Bulk.Workers)},
		{"analysis", fmt.Sprintf("sentiment=%s keywords=%s", yesNo(cfg.Analysis.Sentiment), yesNo(cfg.Analysis.Keywords))},
		{"provider.ytdlp_binary", cfg.Provider.YtDlpBinary},
		{"provider.requests_per_second", strconv.FormatFloat(cfg.Provider.RequestsPerSecond, 'g', -1, 64)},
		{"provider.transcript_languages", languages},
		{"history", historyPath(cfg)},
		{"logging", cfg.Logging.Format + " @ " + cfg.Logging.Level},
	}
}
