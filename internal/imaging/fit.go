package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Fit scales img down so that neither side exceeds maxDimension, keeping the
// aspect ratio. Images that already fit, and a maxDimension of 0 or less,
// are returned unchanged.
//
// Resampling uses the Lanczos filter, which keeps thin outlines crisp enough
// for the gradient threshold to pick them up after downscaling.
func Fit(img image.Image, maxDimension int) image.Image {
	if maxDimension <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxDimension && b.Dy() <= maxDimension {
		return img
	}
	return imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
}
