package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ytharvest/internal/bulk"
	"ytharvest/internal/config"
	"ytharvest/internal/render"
)

func newRenderCommand() *cobra.Command {
	var formatFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:         "render <harvest.json>",
		Short:       "Re-render a saved JSON harvest in another format",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read harvest: %w", err)
			}
			doc, err := render.ParseJSON(data)
			if err != nil {
				return err
			}
			format, err := render.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			rendered, err := render.Render(doc, format)
			if err != nil {
				return err
			}

			target := strings.TrimSpace(outputFlag)
			if target == "" || target == stdoutTarget {
				_, err := cmd.OutOrStdout().Write(rendered)
				return err
			}
			target, err = config.ExpandPath(target)
			if err != nil {
				return err
			}
			if err := bulk.WriteOutput(target, rendered); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(render.FormatText), "Output format: txt, json, or csv")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file (default stdout)")
	return cmd
}
