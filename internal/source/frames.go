package source

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/slidecast/internal/composition"
	"github.com/ivlev/slidecast/internal/logging"
	"github.com/ivlev/slidecast/internal/system"
)

const (
	minDPI = 72
	maxDPI = 600
)

// FrameName is the file name of slide i inside a frames directory.
func FrameName(i int) string {
	return fmt.Sprintf("%05d.png", i)
}

// RenderFrames writes the first count pages of src into dir as %05d.png,
// each letterboxed onto the 1920x1080 canvas. Pages render on up to workers
// goroutines; every page goes to its own file, and the call returns only
// after all of them finished or the first one failed.
func RenderFrames(ctx context.Context, src Source, dir string, count, workers int) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("nothing to render: %d pages requested", count)
	}
	if n := src.PageCount(); n < count {
		return nil, fmt.Errorf("deck has %d pages, %d slides requested", n, count)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = 1
	}

	logger := logging.WithComponent("render")
	paths := make([]string, count)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out := filepath.Join(dir, FrameName(i))
			if err := renderFrame(src, i, out); err != nil {
				return fmt.Errorf("render page %d: %w", i, err)
			}
			paths[i] = out
			logger.Debug().Int("page", i+1).Int("total", count).Msg("frame ready")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func renderFrame(src Source, index int, out string) error {
	w, h, err := src.GetPageDimensions(index)
	if err != nil {
		return err
	}
	img, err := src.RenderPage(index, pageDPI(w, h))
	if err != nil {
		return err
	}

	canvas := system.GetFrameCanvas()
	defer system.PutFrameCanvas(canvas)
	FitCanvas(canvas, img)

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, canvas); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// pageDPI picks the resolution at which a page of w x h points just covers
// the canvas.
func pageDPI(w, h float64) int {
	if w <= 0 || h <= 0 {
		return minDPI
	}
	scale := math.Min(float64(composition.CanvasWidth)/w, float64(composition.CanvasHeight)/h)
	dpi := int(math.Ceil(72 * scale))
	return max(minDPI, min(dpi, maxDPI))
}

// FitCanvas draws img centred on canvas, scaled to fit while keeping its
// aspect ratio. The uncovered bars keep the canvas background, so canvas
// should come cleared from a system.CanvasPool.
func FitCanvas(canvas *image.RGBA, img image.Image) {
	cb := canvas.Bounds()

	sb := img.Bounds()
	if sb.Empty() {
		return
	}
	scale := math.Min(float64(cb.Dx())/float64(sb.Dx()), float64(cb.Dy())/float64(sb.Dy()))
	tw := int(math.Round(float64(sb.Dx()) * scale))
	th := int(math.Round(float64(sb.Dy()) * scale))
	x := cb.Min.X + (cb.Dx()-tw)/2
	y := cb.Min.Y + (cb.Dy()-th)/2

	draw.CatmullRom.Scale(canvas, image.Rect(x, y, x+tw, y+th), img, sb, draw.Over, nil)
}
