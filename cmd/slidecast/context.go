package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/ivlev/slidecast/internal/composition"
	"github.com/ivlev/slidecast/internal/config"
	"github.com/ivlev/slidecast/internal/logging"
	"github.com/ivlev/slidecast/internal/video"
)

// commandContext carries the run options filled from flags.
type commandContext struct {
	cfg config.Config
}

// ffmpegPath resolves the encoder: --ffmpeg, then $SLIDECAST_FFMPEG, then
// the saved settings, then the platform default.
func (c *commandContext) ffmpegPath() string {
	if p := strings.TrimSpace(c.cfg.FFmpegPath); p != "" {
		return p
	}
	settingsPath, err := config.SettingsPath()
	if err != nil {
		settingsPath = ""
	}
	return config.ResolveFFmpegPath(settingsPath)
}

// runner returns an encoder runner that logs progress at debug level, with a
// percentage when the step's expected length is known.
func (c *commandContext) runner() *video.FFmpegRunner {
	r := video.NewFFmpegRunner(c.ffmpegPath())
	logger := logging.WithComponent("progress")
	r.OnProgress = func(p video.Progress) {
		ev := logger.Debug().Dur("out_time", p.OutTime).Str("speed", p.Speed)
		if pct := p.Percent(); pct >= 0 {
			ev = ev.Float64("percent", pct)
		}
		ev.Msg("encoding")
	}
	return r
}

// runEncoder runs one invocation and turns a failed exit into an error.
func runEncoder(ctx context.Context, r video.Runner, args video.Args, what string) error {
	res, err := r.Run(ctx, args.Flatten())
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if !res.Success() {
		return fmt.Errorf("%s failed: %s", what, res.Status())
	}
	return nil
}

func parseQualityFlag(s string) (composition.Quality, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return composition.ParseQuality(s)
}
