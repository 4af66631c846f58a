package imaging

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/coloring-page-mcp/internal/edges"
)

// PixelBuffer is a flat, row-major RGBA buffer with non-premultiplied alpha
// and 4 bytes per pixel, the layout the edges package works on.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer copies img into a new PixelBuffer. The origin of the buffer
// is the top-left corner of img's bounds.
func NewPixelBuffer(img image.Image) *PixelBuffer {
	n := imaging.Clone(img)
	return &PixelBuffer{
		Width:  n.Rect.Dx(),
		Height: n.Rect.Dy(),
		Pix:    n.Pix,
	}
}

// Validate reports whether the buffer length matches its dimensions.
func (b *PixelBuffer) Validate() error {
	return edges.Validate(b.Width, b.Height, len(b.Pix))
}

// Image wraps the buffer as an *image.NRGBA without copying.
func (b *PixelBuffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}
