package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ivlev/slidecast/internal/composition"
	"github.com/ivlev/slidecast/internal/logging"
	"github.com/ivlev/slidecast/internal/source"
	"github.com/ivlev/slidecast/internal/video"
)

const (
	SegmentsDirName = "segments"
	ManifestName    = "concat.txt"
)

// SlideImagePath is where the image for slide i is expected in framesDir.
func SlideImagePath(framesDir string, i int) string {
	return filepath.Join(framesDir, source.FrameName(i))
}

// SegmentsDir returns the directory holding segments for outputPath. It is
// a sibling of the output file.
func SegmentsDir(outputPath string) string {
	return filepath.Join(filepath.Dir(outputPath), SegmentsDirName)
}

func segmentPath(segmentsDir string, i int) string {
	return filepath.Join(segmentsDir, fmt.Sprintf("seg_%05d.mp4", i))
}

// Assembler builds a slideshow in which every slide has its own display
// duration: one still-image segment per slide, then a stream-copy
// concatenation of all segments.
type Assembler struct {
	Runner video.Runner
	// Quality is applied to every segment encode when set.
	Quality composition.Quality
	Logger  zerolog.Logger
}

func NewAssembler(r video.Runner) *Assembler {
	return &Assembler{
		Runner: r,
		Logger: logging.WithComponent("slideshow"),
	}
}

// Build encodes durations[i] seconds of framesDir/%05d.png for every i and
// joins the segments into outputPath. Segments are encoded one at a time;
// on failure the segments produced so far stay on disk.
func (a *Assembler) Build(ctx context.Context, framesDir string, durations []float64, outputPath string) error {
	if len(durations) == 0 {
		return ErrNoSegments
	}
	for i, d := range durations {
		if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
			return fmt.Errorf("%w: slide %d has %v", ErrInvalidDuration, i, d)
		}
	}

	segDir := SegmentsDir(outputPath)
	if err := os.MkdirAll(segDir, 0755); err != nil {
		return fmt.Errorf("create segments dir: %w", err)
	}

	var total float64
	segments := make([]string, 0, len(durations))
	for i, d := range durations {
		img := SlideImagePath(framesDir, i)
		if _, err := os.Stat(img); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return &MissingSlideImageError{Index: i, Path: img}
			}
			return fmt.Errorf("slide image %d: %w", i, err)
		}

		seg := segmentPath(segDir, i)
		args := video.BuildStillSegment(img, d, seg)
		video.ApplyQuality(&args, a.Quality)

		res, err := a.Runner.Run(video.WithProgressTotal(ctx, video.SecondsDuration(d)), args.Flatten())
		if err != nil {
			return &SegmentEncodeError{Index: i, Err: err}
		}
		if !res.Success() {
			return &SegmentEncodeError{Index: i, Status: res.Status()}
		}

		segments = append(segments, seg)
		total += d
		a.Logger.Info().
			Int("segment", i+1).
			Int("total", len(durations)).
			Float64("seconds", d).
			Msg("segment ready")
	}

	manifest := filepath.Join(segDir, ManifestName)
	if err := WriteManifest(manifest, segments); err != nil {
		return fmt.Errorf("write concat manifest: %w", err)
	}

	args := video.BuildConcat(manifest, outputPath)
	res, err := a.Runner.Run(video.WithProgressTotal(ctx, video.SecondsDuration(total)), args.Flatten())
	if err != nil {
		return &ConcatError{Err: err}
	}
	if !res.Success() {
		return &ConcatError{Status: res.Status()}
	}

	a.Logger.Info().Str("output", outputPath).Int("segments", len(segments)).Msg("slideshow assembled")
	return nil
}

// WriteManifest writes a concat demuxer list with one absolute path per line
// in the given order.
func WriteManifest(path string, segments []string) error {
	var b strings.Builder
	for _, seg := range segments {
		abs, err := filepath.Abs(seg)
		if err != nil {
			return err
		}
		// Inside single quotes the demuxer only needs ' escaped.
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}
