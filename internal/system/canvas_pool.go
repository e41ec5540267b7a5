package system

import (
	"image"
	"sync"

	"github.com/ivlev/slidecast/internal/composition"
)

// CanvasPool hands out RGBA canvases of one fixed size. Every canvas returned
// by Get is opaque black, which is the letterbox colour of a frame.
type CanvasPool struct {
	rect  image.Rectangle
	black []uint8
	pool  sync.Pool
}

var frameCanvases = NewCanvasPool(composition.CanvasWidth, composition.CanvasHeight)

func NewCanvasPool(width, height int) *CanvasPool {
	p := &CanvasPool{rect: image.Rect(0, 0, width, height)}
	p.black = make([]uint8, 4*width*height)
	for i := 3; i < len(p.black); i += 4 {
		p.black[i] = 0xff
	}
	p.pool.New = func() any {
		return image.NewRGBA(p.rect)
	}
	return p
}

// Get returns a cleared canvas, reused when one is available.
func (p *CanvasPool) Get() *image.RGBA {
	img := p.pool.Get().(*image.RGBA)
	copy(img.Pix, p.black)
	return img
}

// Put returns img for reuse. Canvases of another size are dropped.
func (p *CanvasPool) Put(img *image.RGBA) {
	if img == nil || img.Rect != p.rect || len(img.Pix) != len(p.black) {
		return
	}
	p.pool.Put(img)
}

// GetFrameCanvas takes a cleared 1920x1080 canvas from the shared pool.
func GetFrameCanvas() *image.RGBA {
	return frameCanvases.Get()
}

// PutFrameCanvas returns a canvas obtained from GetFrameCanvas.
func PutFrameCanvas(img *image.RGBA) {
	frameCanvases.Put(img)
}
