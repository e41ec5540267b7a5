package source

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/slidecast/internal/system"
)

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestImageSource(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), 40, 30, color.White)
	writePNG(t, filepath.Join(dir, "a.png"), 16, 9, color.White)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0755))

	src, err := Open(dir)
	require.NoError(t, err)
	defer src.Close()

	require.Equal(t, 2, src.PageCount())

	w, h, err := src.GetPageDimensions(0)
	require.NoError(t, err)
	assert.Equal(t, 16.0, w)
	assert.Equal(t, 9.0, h)

	img, err := src.RenderPage(1, 300)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())

	_, err = src.RenderPage(2, 300)
	assert.Error(t, err)
}

func TestOpenMissingPDF(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "deck.pdf"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = PageCount(filepath.Join(t.TempDir(), "deck.PDF"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPageCountImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "01.png"), 4, 4, color.White)
	writePNG(t, filepath.Join(dir, "02.PNG"), 4, 4, color.White)

	n, err := PageCount(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestFitCanvasLetterbox(t *testing.T) {
	canvas := system.NewCanvasPool(192, 108).Get()
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}

	FitCanvas(canvas, src)

	// A square page on a 16:9 canvas leaves black bars left and right.
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, canvas.RGBAAt(5, 54))
	assert.Greater(t, canvas.RGBAAt(96, 54).R, uint8(0xf0))
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, canvas.RGBAAt(186, 54))
}

func TestPageDPI(t *testing.T) {
	assert.Equal(t, 192, pageDPI(720, 405))
	assert.Equal(t, 93, pageDPI(595, 842))
	assert.Equal(t, minDPI, pageDPI(0, 10))
	assert.Equal(t, maxDPI, pageDPI(10, 10))
	assert.Equal(t, minDPI, pageDPI(10000, 10000))
}

func TestRenderFrames(t *testing.T) {
	deck := t.TempDir()
	writePNG(t, filepath.Join(deck, "slide1.png"), 32, 18, color.White)
	writePNG(t, filepath.Join(deck, "slide2.png"), 18, 32, color.White)
	writePNG(t, filepath.Join(deck, "slide3.png"), 18, 32, color.White)

	src, err := NewImageSource(deck)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "frames")
	paths, err := RenderFrames(context.Background(), src, out, 2, 4)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(out, "00000.png"),
		filepath.Join(out, "00001.png"),
	}, paths)

	f, err := os.Open(paths[1])
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 1920, cfg.Width)
	assert.Equal(t, 1080, cfg.Height)

	assert.NoFileExists(t, filepath.Join(out, "00002.png"))
}

func TestRenderFramesTooFewPages(t *testing.T) {
	deck := t.TempDir()
	writePNG(t, filepath.Join(deck, "only.png"), 4, 4, color.White)
	src, err := NewImageSource(deck)
	require.NoError(t, err)

	_, err = RenderFrames(context.Background(), src, t.TempDir(), 3, 1)
	assert.ErrorContains(t, err, "deck has 1 pages, 3 slides requested")
}
