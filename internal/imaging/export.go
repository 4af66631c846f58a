package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// SavePNG writes img to path as PNG, creating parent directories as needed.
//
// The file is always PNG encoded, whatever its extension.
func SavePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode coloring page: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// ConvertOptions configures ConvertFile.
type ConvertOptions struct {
	RenderOptions

	// MaxDimension downsizes sources larger than this before rendering.
	// 0 keeps the original size.
	MaxDimension int
}

// ConvertResult describes a finished file conversion.
type ConvertResult struct {
	Input        string  `json:"input"`
	Output       string  `json:"output"`
	SourceWidth  int     `json:"source_width"`
	SourceHeight int     `json:"source_height"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	WhitePercent float64 `json:"white_percent"`
}

// ConvertFile turns the photo at in into a coloring page written to out.
// An empty out writes DefaultFilename next to the input.
func ConvertFile(in, out string, opts ConvertOptions) (*ConvertResult, error) {
	src, err := Decode(in)
	if err != nil {
		return nil, err
	}

	if out == "" {
		out = filepath.Join(filepath.Dir(in), DefaultFilename)
	}

	fitted := Fit(src, opts.MaxDimension)
	page, err := Render(fitted, opts.RenderOptions)
	if err != nil {
		return nil, err
	}

	if err := SavePNG(page, out); err != nil {
		return nil, err
	}

	return &ConvertResult{
		Input:        in,
		Output:       out,
		SourceWidth:  src.Bounds().Dx(),
		SourceHeight: src.Bounds().Dy(),
		Width:        page.Rect.Dx(),
		Height:       page.Rect.Dy(),
		WhitePercent: whitePercent(page),
	}, nil
}
