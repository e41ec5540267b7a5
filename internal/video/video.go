package video

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/ivlev/slidecast/internal/composition"
)

const (
	VideoCodec   = "libx264"
	AudioCodec   = "aac"
	PixelFormat  = "yuv420p"
	AudioBitrate = "192k"
)

// Args is a single encoder invocation. The output path is kept apart from
// the flags so that later adjustments can never end up after it.
type Args struct {
	Leading []string
	Output  string
}

// Add appends flags before the output path. It never writes into spare
// capacity, so copies of an Args do not see each other's additions.
func (a *Args) Add(flags ...string) {
	a.Leading = append(slices.Clip(a.Leading), flags...)
}

// Flatten returns the argument list handed to the encoder: flags, then output.
func (a Args) Flatten() []string {
	out := make([]string, 0, len(a.Leading)+1)
	out = append(out, a.Leading...)
	return append(out, a.Output)
}

func (a Args) String() string {
	return fmt.Sprint(a.Flatten())
}

func canvasSize() string {
	return fmt.Sprintf("%dx%d", composition.CanvasWidth, composition.CanvasHeight)
}

// formatNumber prints floats without trailing zeros: 0.2 -> "0.2", 2.0 -> "2".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func baseArgs() []string {
	return []string{"-y", "-hide_banner", "-loglevel", "warning"}
}

// BuildOverlayComposition composes the recording (input 0) and the slides
// video (input 1) into a picture-in-picture on the 1920x1080 canvas. Audio
// of input 0 is passed through when present.
func BuildOverlayComposition(
	mainPath, overlayPath, outputPath string,
	relWidth float64,
	pos composition.OverlayPosition,
	fg composition.ForegroundKind,
) Args {
	bg, inset := "0:v", "1:v"
	if fg == composition.ForegroundRecording {
		bg, inset = "1:v", "0:v"
	}

	x, y := overlayOffset(pos)
	filter := fmt.Sprintf(
		"[%s]scale=%d*%s:-1[ov];[%s]scale=%d:%d:flags=bicubic[bg];[bg][ov]overlay=%s:%s:eval=init,fps=%d[vout]",
		inset, composition.CanvasWidth, formatNumber(relWidth),
		bg, composition.CanvasWidth, composition.CanvasHeight,
		x, y, composition.CanvasFPS,
	)

	args := Args{Leading: baseArgs(), Output: outputPath}
	args.Add(
		"-i", mainPath,
		"-i", overlayPath,
		"-filter_complex", filter,
		"-map", "[vout]",
		"-map", "0:a?",
		"-c:v", VideoCodec,
		"-pix_fmt", PixelFormat,
		"-r", strconv.Itoa(composition.CanvasFPS),
		"-s", canvasSize(),
		"-c:a", AudioCodec,
		"-b:a", AudioBitrate,
		"-shortest",
		"-movflags", "+faststart",
	)
	return args
}

// overlayOffset returns overlay filter coordinates; W/H are the background
// size and w/h the inset size as seen by the overlay filter.
func overlayOffset(pos composition.OverlayPosition) (string, string) {
	m := strconv.Itoa(composition.OverlayMargin)
	right := "W-w-" + m
	bottom := "H-h-" + m

	switch pos {
	case composition.TopRight:
		return right, m
	case composition.BottomLeft:
		return m, bottom
	case composition.BottomRight:
		return right, bottom
	default: // top-left
		return m, m
	}
}

// BuildImageSequence encodes a glob-matched, lexicographically ordered image
// sequence at a constant frame rate. The result has no audio.
func BuildImageSequence(globPattern string, fps int, outputPath string) Args {
	args := Args{Leading: baseArgs(), Output: outputPath}
	args.Add(
		"-framerate", strconv.Itoa(fps),
		"-pattern_type", "glob",
		"-i", globPattern,
		"-s", canvasSize(),
		"-c:v", VideoCodec,
		"-pix_fmt", PixelFormat,
		"-an",
	)
	return args
}

// BuildStillSegment loops one image for exactly seconds.
func BuildStillSegment(imagePath string, seconds float64, outputPath string) Args {
	args := Args{Leading: baseArgs(), Output: outputPath}
	args.Add(
		"-loop", "1",
		"-t", formatNumber(seconds),
		"-i", imagePath,
		"-s", canvasSize(),
		"-r", strconv.Itoa(composition.CanvasFPS),
		"-c:v", VideoCodec,
		"-pix_fmt", PixelFormat,
		"-an",
	)
	return args
}

// BuildConcat joins the files listed in a concat manifest without re-encoding.
func BuildConcat(manifestPath, outputPath string) Args {
	args := Args{Leading: baseArgs(), Output: outputPath}
	args.Add(
		"-f", "concat",
		"-safe", "0",
		"-i", manifestPath,
		"-c", "copy",
	)
	return args
}
