// Package imaging turns source photos into coloring pages.
//
// This package wraps the pure edges package with everything around it:
// decoding source files, the brightness/contrast pre-adjustment, conversion
// between image.Image values and flat RGBA pixel buffers, and PNG export.
// Coordinates follow the standard image convention: (0,0) is the top-left
// corner, X increases rightward and Y increases downward.
//
// # Source Formats
//
// PNG, JPEG (.jpg, .jpeg) and WebP files are accepted, one file at a time.
// JPEG orientation tags are honored so camera photos come out upright.
//
// # Pipeline
//
//	source -> Fit (optional downscale) -> Tone -> PixelBuffer -> edges.Extract -> PNG
//
// Render is the single entry point for the image-to-page step. ColoringPage
// and ConvertFile add encoding and file handling on top of it.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Render and the other
// functions keep no state and can be called concurrently on different images.
// Source images are never modified.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Files whose extension is not accepted (ErrUnsupportedFormat)
//   - Brightness or contrast outside [-100, 100] (ErrToneOutOfRange)
//   - Empty images
//   - File I/O errors during loading or saving
package imaging
