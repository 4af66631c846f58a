package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestRender_Stripe(t *testing.T) {
	page, err := Render(stripeImage(10, 10), RenderOptions{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if page.Rect.Dx() != 10 || page.Rect.Dy() != 10 {
		t.Fatalf("dimensions: got %v, want 10x10", page.Rect)
	}

	// The black/white boundary sits between x=4 and x=5; both columns see it
	// in their 3x3 neighbourhood on every interior row.
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := uint8(0)
			if y >= 1 && y <= 8 && (x == 4 || x == 5) {
				want = 255
			}
			c := page.NRGBAAt(x, y)
			if c.R != want || c.G != want || c.B != want || c.A != 255 {
				t.Errorf("(%d,%d): got %v, want gray %d opaque", x, y, c, want)
			}
		}
	}
}

func TestRender_Invert(t *testing.T) {
	plain, err := Render(stripeImage(10, 10), RenderOptions{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	inverted, err := Render(stripeImage(10, 10), RenderOptions{Invert: true})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for i := 0; i < len(plain.Pix); i += 4 {
		if inverted.Pix[i] != 255-plain.Pix[i] {
			t.Fatalf("pixel %d: got %d, want %d", i/4, inverted.Pix[i], 255-plain.Pix[i])
		}
		if inverted.Pix[i+3] != 255 {
			t.Fatalf("pixel %d alpha: got %d", i/4, inverted.Pix[i+3])
		}
	}
}

func TestRender_UniformIsBlack(t *testing.T) {
	colors := []color.Color{
		color.RGBA{0, 0, 0, 255},
		color.RGBA{255, 255, 255, 255},
		color.RGBA{200, 30, 90, 255},
	}

	for _, c := range colors {
		page, err := Render(solidImage(12, 9, c), RenderOptions{})
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		for i := 0; i < len(page.Pix); i += 4 {
			if page.Pix[i] != 0 || page.Pix[i+3] != 255 {
				t.Fatalf("%v: pixel %d got %v, want black", c, i/4, page.Pix[i:i+4])
			}
		}
	}
}

func TestRender_ToneApplied(t *testing.T) {
	// Brightness -100 multiplies every channel by zero, flattening the stripe.
	page, err := Render(stripeImage(10, 10), RenderOptions{Tone: Tone{Brightness: -100}})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for i := 0; i < len(page.Pix); i += 4 {
		if page.Pix[i] != 0 {
			t.Fatalf("pixel %d: got %d, want 0", i/4, page.Pix[i])
		}
	}
}

func TestRender_ToneOutOfRange(t *testing.T) {
	_, err := Render(stripeImage(4, 4), RenderOptions{Tone: Tone{Contrast: 101}})
	if !errors.Is(err, ErrToneOutOfRange) {
		t.Errorf("got %v, want ErrToneOutOfRange", err)
	}
}

func TestRender_EmptyImage(t *testing.T) {
	_, err := Render(image.NewRGBA(image.Rect(0, 0, 0, 0)), RenderOptions{})
	if err == nil {
		t.Error("Render should fail for an empty image")
	}
}

func TestRender_OffsetBounds(t *testing.T) {
	src := stripeImage(20, 20).SubImage(image.Rect(5, 5, 15, 15))

	page, err := Render(src, RenderOptions{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if page.Rect != image.Rect(0, 0, 10, 10) {
		t.Errorf("bounds: got %v, want (0,0)-(10,10)", page.Rect)
	}
}

func TestRender_SourceUnchanged(t *testing.T) {
	src := stripeImage(8, 8)
	before := append([]uint8(nil), src.Pix...)

	if _, err := Render(src, RenderOptions{Tone: Tone{Brightness: 30, Contrast: -20}}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.Equal(src.Pix, before) {
		t.Error("Render modified the source image")
	}
}

func TestColoringPage(t *testing.T) {
	result, err := ColoringPage(stripeImage(10, 10), RenderOptions{})
	if err != nil {
		t.Fatalf("ColoringPage failed: %v", err)
	}

	if result.Width != 10 || result.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 10x10", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	if result.Filename != DefaultFilename {
		t.Errorf("Filename: got %s, want %s", result.Filename, DefaultFilename)
	}
	if result.WhitePercent != 16 {
		t.Errorf("WhitePercent: got %v, want 16", result.WhitePercent)
	}

	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(decoded))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 10 {
		t.Errorf("decoded dimensions: got %v, want 10x10", img.Bounds())
	}

	r, _, _, _ := img.At(4, 4).RGBA()
	if r>>8 != 255 {
		t.Errorf("decoded (4,4): got %d, want 255", r>>8)
	}
}

func TestWhitePercent(t *testing.T) {
	page := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	page.Pix = []uint8{
		255, 255, 255, 255,
		0, 0, 0, 255,
		0, 0, 0, 255,
	}

	if got := whitePercent(page); got != 33.3 {
		t.Errorf("got %v, want 33.3", got)
	}
	if got := whitePercent(image.NewNRGBA(image.Rect(0, 0, 0, 0))); got != 0 {
		t.Errorf("empty page: got %v, want 0", got)
	}
}
