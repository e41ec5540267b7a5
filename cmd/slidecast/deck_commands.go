package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/slidecast/internal/source"
	"github.com/ivlev/slidecast/internal/system"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var outDir string
	var count int

	cmd := &cobra.Command{
		Use:   "render <deck>",
		Short: "Render deck pages to 1920x1080 PNG frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				return fmt.Errorf("--out is required")
			}
			src, err := source.Open(args[0])
			if err != nil {
				return err
			}
			defer src.Close()

			n := count
			if n <= 0 {
				n = src.PageCount()
			}
			workers := ctx.cfg.Workers
			if workers <= 0 {
				workers = system.DefaultWorkers()
			}

			paths, err := source.RenderFrames(cmd.Context(), src, outDir, n, workers)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d frames to %s\n", len(paths), outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Destination directory for frames")
	cmd.Flags().IntVar(&count, "count", 0, "Number of pages to render (default: all)")
	cmd.Flags().IntVar(&ctx.cfg.Workers, "workers", 0, "Parallel renderers (default: physical CPU count)")
	return cmd
}

func newPagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pages <deck>",
		Short: "Print the number of pages in a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := source.PageCount(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <video>",
		Short: "Print the duration of a media file in seconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := ctx.runner()
			r.OnProgress = nil
			d, err := system.ProbeDuration(cmd.Context(), r, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.3f\n", d)
			return nil
		},
	}
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the encoder can be found",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := system.CheckEncoder(ctx.ffmpegPath())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ffmpeg: %s\n", path)
			return nil
		},
	}
}
