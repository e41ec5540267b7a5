package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/slidecast/internal/composition"
	"github.com/ivlev/slidecast/internal/engine"
)

func newComposeCommand(ctx *commandContext) *cobra.Command {
	var requestPath string

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Render a deck, time it to a recording and overlay both",
		Long: "Reads a request file, renders every slide, builds the timed slideshow\n" +
			"and composes it with the recording as picture-in-picture.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(requestPath)
			if path == "" {
				return fmt.Errorf("--request is required")
			}
			req, err := composition.ReadRequest(path)
			if err != nil {
				return err
			}

			project := engine.NewProject(ctx.runner(), ctx.cfg.Workers)
			project.WorkDir = ctx.cfg.WorkDir
			project.KeepWorkDir = ctx.cfg.KeepWorkDir
			if err := project.Run(cmd.Context(), *req); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", req.OutputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&requestPath, "request", "r", "", "Composition request file (YAML)")
	cmd.Flags().StringVar(&ctx.cfg.WorkDir, "work-dir", "", "Directory for frames and segments (default: a fresh temp dir)")
	cmd.Flags().BoolVar(&ctx.cfg.KeepWorkDir, "keep-work-dir", false, "Keep intermediate files after a successful run")
	cmd.Flags().IntVar(&ctx.cfg.Workers, "workers", 0, "Parallel page renderers (default: physical CPU count)")
	return cmd
}
