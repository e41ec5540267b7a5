package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/slidecast/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigFFmpegPathCommand(ctx))
	return configCmd
}

func newConfigFFmpegPathCommand(ctx *commandContext) *cobra.Command {
	var clearPath bool

	cmd := &cobra.Command{
		Use:   "ffmpeg-path [path]",
		Short: "Show, save or clear the configured ffmpeg path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settingsPath, err := config.SettingsPath()
			if err != nil {
				return fmt.Errorf("determine settings path: %w", err)
			}
			settings, err := config.Load(settingsPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch {
			case clearPath:
				if len(args) > 0 {
					return fmt.Errorf("--clear does not take a path")
				}
				settings.FFmpegPath = ""
				if err := config.Save(settingsPath, settings); err != nil {
					return err
				}
				fmt.Fprintf(out, "Cleared ffmpeg path in %s\n", settingsPath)
			case len(args) == 1:
				settings.FFmpegPath = strings.TrimSpace(args[0])
				if err := config.Save(settingsPath, settings); err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved ffmpeg path to %s\n", settingsPath)
			default:
				if settings.FFmpegPath == "" {
					fmt.Fprintf(out, "not set (using %s)\n", ctx.ffmpegPath())
				} else {
					fmt.Fprintln(out, settings.FFmpegPath)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearPath, "clear", false, "Remove the saved path")
	return cmd
}
