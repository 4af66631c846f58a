package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/coloring-page-mcp/internal/edges"
)

// DefaultFilename is the suggested name for an exported coloring page.
const DefaultFilename = "coloring-page.png"

// RenderOptions controls how a source photo becomes a coloring page.
type RenderOptions struct {
	// Tone is the brightness/contrast pre-adjustment.
	Tone Tone `json:"tone"`

	// Invert flips the finished page so that strong gradients are drawn
	// black on white. By default strong gradients are white (255) and
	// everything else, including the one-pixel frame, is black (0).
	Invert bool `json:"invert"`
}

// Render converts img into a coloring page of the same dimensions.
//
// # Pipeline
//
//  1. Tone adjustment (see Tone).
//  2. Copy into a non-premultiplied RGBA PixelBuffer.
//  3. Edge extraction with edges.Extract: BT.601 luma, 3x3 horizontal and
//     vertical gradient kernels on interior pixels, magnitude > 30 -> 255,
//     everything else 0.
//  4. Optional inversion.
//
// Returns an error if the tone is out of range or the image is empty.
func Render(img image.Image, opts RenderOptions) (*image.NRGBA, error) {
	adjusted, err := opts.Tone.Apply(img)
	if err != nil {
		return nil, err
	}

	buf := NewPixelBuffer(adjusted)
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("failed to prepare pixel buffer: %w", err)
	}

	page := &PixelBuffer{
		Width:  buf.Width,
		Height: buf.Height,
		Pix:    edges.Extract(buf.Width, buf.Height, buf.Pix),
	}

	if opts.Invert {
		return imaging.Invert(page.Image()), nil
	}
	return page.Image(), nil
}

// ColoringPageResult contains a rendered coloring page encoded as base64 PNG.
type ColoringPageResult struct {
	// Width of the page in pixels (same as the source after any intake resize).
	Width int `json:"width"`

	// Height of the page in pixels.
	Height int `json:"height"`

	// ImageBase64 is the page encoded as base64 PNG.
	ImageBase64 string `json:"image_base64,omitempty"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`

	// Filename is the suggested download name.
	Filename string `json:"filename"`

	// WhitePercent is the share of white pixels on the page (0-100).
	WhitePercent float64 `json:"white_percent"`

	// SavedTo is the file the page was written to, if any.
	SavedTo string `json:"saved_to,omitempty"`
}

// ColoringPage renders img and packages the result for transport.
func ColoringPage(img image.Image, opts RenderOptions) (*ColoringPageResult, error) {
	page, err := Render(img, opts)
	if err != nil {
		return nil, err
	}
	return NewColoringPageResult(page)
}

// NewColoringPageResult encodes an already rendered page.
func NewColoringPageResult(page *image.NRGBA) (*ColoringPageResult, error) {
	data, err := EncodePNG(page)
	if err != nil {
		return nil, err
	}

	return &ColoringPageResult{
		Width:        page.Rect.Dx(),
		Height:       page.Rect.Dy(),
		ImageBase64:  base64.StdEncoding.EncodeToString(data),
		MimeType:     "image/png",
		Filename:     DefaultFilename,
		WhitePercent: whitePercent(page),
	}, nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode coloring page: %w", err)
	}
	return buf.Bytes(), nil
}

// whitePercent returns the share of pixels whose red channel is 255, rounded
// to one decimal. Pages are binary and gray, so red stands for all channels.
func whitePercent(page *image.NRGBA) float64 {
	total := page.Rect.Dx() * page.Rect.Dy()
	if total == 0 {
		return 0
	}
	white := 0
	for y := 0; y < page.Rect.Dy(); y++ {
		row := page.Pix[y*page.Stride : y*page.Stride+page.Rect.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			if row[i] == 255 {
				white++
			}
		}
	}
	return math.Round(float64(white)/float64(total)*1000) / 10
}
