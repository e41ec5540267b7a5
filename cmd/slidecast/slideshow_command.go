package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/slidecast/internal/engine"
	"github.com/ivlev/slidecast/internal/video"
)

func newSlideshowCommand(ctx *commandContext) *cobra.Command {
	var framesDir, output, quality string
	var durations []float64

	cmd := &cobra.Command{
		Use:   "slideshow",
		Short: "Build a slideshow with one display duration per slide",
		Long: "Encodes framesDir/00000.png, 00001.png, ... for the given number of\n" +
			"seconds each and joins the segments into one video.",
		Example: "  slidecast slideshow --frames work/frames --durations 2,3.5,10 -o slides.mp4",
		RunE: func(cmd *cobra.Command, args []string) error {
			if framesDir == "" || output == "" {
				return fmt.Errorf("--frames and --output are required")
			}
			q, err := parseQualityFlag(quality)
			if err != nil {
				return err
			}

			var total float64
			for _, d := range durations {
				total += d
			}

			assembler := engine.NewAssembler(ctx.runner())
			assembler.Quality = q
			if err := assembler.Build(cmd.Context(), framesDir, durations, output); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d slides, %.2fs)\n", output, len(durations), total)
			return nil
		},
	}

	cmd.Flags().StringVar(&framesDir, "frames", "", "Directory holding the numbered slide images")
	cmd.Flags().Float64SliceVar(&durations, "durations", nil, "Comma-separated display duration per slide in seconds")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output video")
	cmd.Flags().StringVarP(&quality, "quality", "q", "", "Encode quality: draft, standard, high")
	return cmd
}

func newSequenceCommand(ctx *commandContext) *cobra.Command {
	var pattern, output, quality string
	var fps int

	cmd := &cobra.Command{
		Use:   "sequence",
		Short: "Encode a glob of images at a constant frame rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pattern == "" || output == "" {
				return fmt.Errorf("--glob and --output are required")
			}
			if fps <= 0 {
				return fmt.Errorf("--fps must be positive, got %d", fps)
			}
			q, err := parseQualityFlag(quality)
			if err != nil {
				return err
			}

			encode := video.BuildImageSequence(pattern, fps, output)
			video.ApplyQuality(&encode, q)
			if err := runEncoder(cmd.Context(), ctx.runner(), encode, "image sequence"); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "glob", "", "Image glob, e.g. 'frames/*.png'")
	cmd.Flags().IntVar(&fps, "fps", 1, "Frames per second")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output video")
	cmd.Flags().StringVarP(&quality, "quality", "q", "", "Encode quality: draft, standard, high")
	return cmd
}
