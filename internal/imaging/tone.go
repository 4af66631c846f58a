package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
)

// Tone adjustment limits, in percent.
const (
	MinTone = -100
	MaxTone = 100
)

// ErrToneOutOfRange is returned when a brightness or contrast value falls
// outside [MinTone, MaxTone].
var ErrToneOutOfRange = errors.New("tone value out of range")

// Tone holds the brightness and contrast pre-adjustment applied to a photo
// before edge extraction.
//
// Both values are percentages relative to the unmodified image, so the zero
// Tone is the identity. They reproduce the CSS filter
// "brightness(100+B%) contrast(100+C%)":
//
//	brightness: v' = v * (1 + B/100)
//	contrast:   v' = ((v/255 - 0.5) * (1 + C/100) + 0.5) * 255
//
// Results are clamped to [0, 255]. Brightness is applied first.
type Tone struct {
	Brightness int `json:"brightness"`
	Contrast   int `json:"contrast"`
}

// Validate checks that both values are within [MinTone, MaxTone].
func (t Tone) Validate() error {
	if t.Brightness < MinTone || t.Brightness > MaxTone {
		return fmt.Errorf("%w: brightness %d not in [%d, %d]", ErrToneOutOfRange, t.Brightness, MinTone, MaxTone)
	}
	if t.Contrast < MinTone || t.Contrast > MaxTone {
		return fmt.Errorf("%w: contrast %d not in [%d, %d]", ErrToneOutOfRange, t.Contrast, MinTone, MaxTone)
	}
	return nil
}

// IsIdentity reports whether applying t leaves an image unchanged.
func (t Tone) IsIdentity() bool {
	return t.Brightness == 0 && t.Contrast == 0
}

// Apply returns img with the tone adjustment applied.
//
// The identity Tone returns img itself. Otherwise a new *image.NRGBA is
// returned and img is not modified. The adjustment acts on straight
// (non-premultiplied) color values and leaves alpha untouched, as CSS
// filters do.
func (t Tone) Apply(img image.Image) (image.Image, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if t.IsIdentity() {
		return img, nil
	}

	src := imaging.Clone(img)

	// bild premultiplies anything that is not opaque, so hand it an opaque
	// view of the straight channels.
	out := opaqueView(src)
	if t.Brightness != 0 {
		out = adjust.Brightness(out, float64(t.Brightness)/100)
	}
	if t.Contrast != 0 {
		out = adjust.Contrast(out, float64(t.Contrast)/100)
	}

	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:i+3], out.Pix[i:i+3])
	}
	return src, nil
}

// opaqueView copies the color channels of n into an RGBA image with every
// alpha set to 255.
func opaqueView(n *image.NRGBA) *image.RGBA {
	pix := make([]uint8, len(n.Pix))
	copy(pix, n.Pix)
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 255
	}
	return &image.RGBA{Pix: pix, Stride: n.Stride, Rect: n.Rect}
}
