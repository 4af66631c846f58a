package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestNewPixelBuffer(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{10, 20, 30, 255})
	src.Set(1, 0, color.RGBA{40, 50, 60, 255})
	src.Set(0, 1, color.RGBA{70, 80, 90, 255})
	src.Set(1, 1, color.RGBA{100, 110, 120, 255})

	buf := NewPixelBuffer(src)

	if buf.Width != 2 || buf.Height != 2 {
		t.Fatalf("dimensions: got %dx%d, want 2x2", buf.Width, buf.Height)
	}
	if err := buf.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	want := []uint8{
		10, 20, 30, 255, 40, 50, 60, 255,
		70, 80, 90, 255, 100, 110, 120, 255,
	}
	for i := range want {
		if buf.Pix[i] != want[i] {
			t.Fatalf("Pix[%d]: got %d, want %d", i, buf.Pix[i], want[i])
		}
	}
}

func TestNewPixelBuffer_Unpremultiplies(t *testing.T) {
	// Premultiplied half-transparent red is (128, 0, 0, 128).
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{128, 0, 0, 128})

	buf := NewPixelBuffer(src)

	if buf.Pix[0] != 255 || buf.Pix[3] != 128 {
		t.Errorf("got %v, want [255 0 0 128]", buf.Pix)
	}
}

func TestNewPixelBuffer_OffsetBounds(t *testing.T) {
	src := solidImage(10, 10, color.RGBA{1, 2, 3, 255}).SubImage(image.Rect(2, 3, 6, 8))

	buf := NewPixelBuffer(src)

	if buf.Width != 4 || buf.Height != 5 {
		t.Errorf("dimensions: got %dx%d, want 4x5", buf.Width, buf.Height)
	}
	if len(buf.Pix) != 4*5*4 {
		t.Errorf("len: got %d, want %d", len(buf.Pix), 4*5*4)
	}
}

func TestPixelBuffer_Image(t *testing.T) {
	buf := &PixelBuffer{
		Width:  2,
		Height: 1,
		Pix:    []uint8{255, 255, 255, 255, 0, 0, 0, 255},
	}

	img := buf.Image()

	if img.Rect != image.Rect(0, 0, 2, 1) {
		t.Errorf("bounds: got %v", img.Rect)
	}
	if c := img.NRGBAAt(0, 0); c != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("(0,0): got %v", c)
	}
	if c := img.NRGBAAt(1, 0); c != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("(1,0): got %v", c)
	}

	// Image shares the buffer
	buf.Pix[0] = 7
	if img.Pix[0] != 7 {
		t.Error("Image should not copy the pixel buffer")
	}
}

func TestPixelBuffer_Validate(t *testing.T) {
	bad := &PixelBuffer{Width: 3, Height: 3, Pix: make([]uint8, 10)}
	if err := bad.Validate(); err == nil {
		t.Error("Validate should fail for a short buffer")
	}
}
