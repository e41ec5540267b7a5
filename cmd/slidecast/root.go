package main

import (
	"github.com/spf13/cobra"

	"github.com/ivlev/slidecast/internal/logging"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "slidecast",
		Short:         "Compose slide decks and talk recordings into one video",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(ctx.cfg.Verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.cfg.FFmpegPath, "ffmpeg", "", "Path to the ffmpeg binary (overrides $SLIDECAST_FFMPEG and saved settings)")
	rootCmd.PersistentFlags().BoolVarP(&ctx.cfg.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newComposeCommand(ctx))
	rootCmd.AddCommand(newOverlayCommand(ctx))
	rootCmd.AddCommand(newSlideshowCommand(ctx))
	rootCmd.AddCommand(newSequenceCommand(ctx))
	rootCmd.AddCommand(newRenderCommand(ctx))
	rootCmd.AddCommand(newPagesCommand())
	rootCmd.AddCommand(newProbeCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))

	return rootCmd
}
