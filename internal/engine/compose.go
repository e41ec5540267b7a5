package engine

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ivlev/slidecast/internal/composition"
	"github.com/ivlev/slidecast/internal/logging"
	"github.com/ivlev/slidecast/internal/video"
)

// Composer runs the picture-in-picture encode for a request.
type Composer struct {
	Runner video.Runner
	Logger zerolog.Logger
}

func NewComposer(r video.Runner) *Composer {
	return &Composer{
		Runner: r,
		Logger: logging.WithComponent("compose"),
	}
}

// Compose validates req and overlays slidesVideo and req.RecordingPath into
// req.OutputPath. No process is started for an invalid request. Progress is
// measured against req.ExpectedDurationSec when set, otherwise against any
// total already attached to ctx.
func (c *Composer) Compose(ctx context.Context, req composition.Request, slidesVideo string) error {
	if err := composition.Validate(req); err != nil {
		return err
	}
	if req.ExpectedDurationSec != nil && *req.ExpectedDurationSec > 0 {
		ctx = video.WithProgressTotal(ctx, video.SecondsDuration(*req.ExpectedDurationSec))
	}

	args := video.BuildOverlayComposition(
		req.RecordingPath,
		slidesVideo,
		req.OutputPath,
		req.OverlayRelativeWidth,
		req.OverlayPosition,
		req.ForegroundKind,
	)
	video.ApplyQuality(&args, req.Quality)

	c.Logger.Info().
		Str("recording", req.RecordingPath).
		Str("slides", slidesVideo).
		Str("position", req.OverlayPosition.String()).
		Str("foreground", req.ForegroundKind.String()).
		Str("quality", string(req.Quality)).
		Msg("composing")

	res, err := c.Runner.Run(ctx, args.Flatten())
	if err != nil {
		return &CompositionError{Err: err}
	}
	if !res.Success() {
		return &CompositionError{Status: res.Status()}
	}

	c.Logger.Info().Str("output", req.OutputPath).Msg("composition finished")
	return nil
}
