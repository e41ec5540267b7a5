package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/slidecast/internal/composition"
	"github.com/ivlev/slidecast/internal/system"
	"github.com/ivlev/slidecast/internal/video"
)

func newOverlayCommand(ctx *commandContext) *cobra.Command {
	var recording, slides, output string
	var position, foreground, quality string
	var width float64

	cmd := &cobra.Command{
		Use:   "overlay",
		Short: "Overlay an existing slides video and a recording",
		RunE: func(cmd *cobra.Command, args []string) error {
			if recording == "" || slides == "" || output == "" {
				return fmt.Errorf("--recording, --slides and --output are required")
			}
			pos, err := composition.ParseOverlayPosition(position)
			if err != nil {
				return err
			}
			fg, err := composition.ParseForegroundKind(foreground)
			if err != nil {
				return err
			}
			q, err := parseQualityFlag(quality)
			if err != nil {
				return err
			}
			if err := composition.ValidateOverlayWidth(width); err != nil {
				return err
			}

			// Progress is relative to the recording, which drives -shortest
			// together with the slides video.
			r := ctx.runner()
			runCtx := cmd.Context()
			if total, err := system.ProbeDuration(runCtx, r, recording); err == nil {
				runCtx = video.WithProgressTotal(runCtx, video.SecondsDuration(total))
			}

			encode := video.BuildOverlayComposition(recording, slides, output, width, pos, fg)
			video.ApplyQuality(&encode, q)
			if err := runEncoder(runCtx, r, encode, "compose"); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&recording, "recording", "", "Talk recording (audio is taken from it)")
	cmd.Flags().StringVar(&slides, "slides", "", "Slides video")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output video")
	cmd.Flags().StringVar(&position, "position", "bottom-right", "Inset corner: top-left, top-right, bottom-left, bottom-right")
	cmd.Flags().Float64Var(&width, "width", 0.25, "Inset width relative to the canvas width")
	cmd.Flags().StringVar(&foreground, "foreground", "slides", "Stream shown as the inset: slides or recording")
	cmd.Flags().StringVarP(&quality, "quality", "q", "", "Encode quality: draft, standard, high")
	return cmd
}
