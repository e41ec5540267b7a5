package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ivlev/slidecast/internal/composition"
	"github.com/ivlev/slidecast/internal/logging"
	"github.com/ivlev/slidecast/internal/source"
	"github.com/ivlev/slidecast/internal/system"
	"github.com/ivlev/slidecast/internal/video"
)

const (
	framesDirName   = "frames"
	slidesVideoName = "slides.mp4"
)

// Project runs a whole composition job: render the deck, build the timed
// slideshow, then overlay it with the recording.
type Project struct {
	Runner  video.Runner
	Workers int

	// WorkDir holds frames, segments and the slideshow. When empty a fresh
	// temp directory is created and removed again after a successful run.
	WorkDir     string
	KeepWorkDir bool

	OpenSource func(path string) (source.Source, error)
	Logger     zerolog.Logger
}

func NewProject(r video.Runner, workers int) *Project {
	return &Project{
		Runner:     r,
		Workers:    workers,
		OpenSource: source.Open,
		Logger:     logging.WithComponent("engine"),
	}
}

func (p *Project) Run(ctx context.Context, req composition.Request) error {
	startTime := time.Now()

	if err := composition.Validate(req); err != nil {
		return err
	}

	workDir := p.WorkDir
	created := false
	if workDir == "" {
		dir, err := system.NewJobDir("slidecast")
		if err != nil {
			return fmt.Errorf("create work dir: %w", err)
		}
		workDir, created = dir, true
	} else if err := os.MkdirAll(workDir, 0755); err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}

	unlock, err := system.LockDir(workDir)
	if err != nil {
		return err
	}
	defer unlock()

	succeeded := false
	defer func() {
		switch {
		case succeeded && created && !p.KeepWorkDir:
			os.RemoveAll(workDir)
		case !succeeded:
			p.Logger.Warn().Str("work_dir", workDir).Msg("job failed, intermediate files kept")
		}
	}()

	p.Logger.Info().
		Str("deck", req.SourceDeckPath).
		Str("recording", req.RecordingPath).
		Int("slides", len(req.Timings)).
		Str("work_dir", workDir).
		Msg("starting composition job")

	renderStart := time.Now()
	framesDir := filepath.Join(workDir, framesDirName)
	if err := p.renderDeck(ctx, req.SourceDeckPath, framesDir, len(req.Timings)); err != nil {
		return err
	}
	renderTime := time.Since(renderStart)

	total, err := p.recordingDuration(ctx, req)
	if err != nil {
		return err
	}
	durations, err := composition.SlideDurations(req.Timings, total)
	if err != nil {
		return err
	}

	encodeStart := time.Now()
	slidesVideo := filepath.Join(workDir, slidesVideoName)
	assembler := NewAssembler(p.Runner)
	assembler.Logger = p.Logger
	if err := assembler.Build(ctx, framesDir, durations, slidesVideo); err != nil {
		return err
	}
	encodeTime := time.Since(encodeStart)

	composeStart := time.Now()
	composer := NewComposer(p.Runner)
	composer.Logger = p.Logger
	composeCtx := video.WithProgressTotal(ctx, video.SecondsDuration(total))
	if err := composer.Compose(composeCtx, req, slidesVideo); err != nil {
		return err
	}
	succeeded = true

	p.Logger.Info().
		Dur("render", renderTime).
		Dur("slideshow", encodeTime).
		Dur("compose", time.Since(composeStart)).
		Dur("total", time.Since(startTime)).
		Str("output", req.OutputPath).
		Msg("composition job finished")
	return nil
}

func (p *Project) renderDeck(ctx context.Context, deckPath, framesDir string, count int) error {
	open := p.OpenSource
	if open == nil {
		open = source.Open
	}
	src, err := open(deckPath)
	if err != nil {
		return fmt.Errorf("open deck: %w", err)
	}
	defer src.Close()

	workers := p.Workers
	if workers <= 0 {
		workers = system.DefaultWorkers()
	}
	if _, err := source.RenderFrames(ctx, src, framesDir, count, workers); err != nil {
		return err
	}
	return nil
}

// recordingDuration prefers the duration given in the request and probes
// the recording otherwise.
func (p *Project) recordingDuration(ctx context.Context, req composition.Request) (float64, error) {
	if req.ExpectedDurationSec != nil && *req.ExpectedDurationSec > 0 {
		return *req.ExpectedDurationSec, nil
	}
	d, err := system.ProbeDuration(ctx, p.Runner, req.RecordingPath)
	if err != nil {
		return 0, fmt.Errorf("recording duration: %w", err)
	}
	return d, nil
}
