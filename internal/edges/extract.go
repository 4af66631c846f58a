package edges

import (
	"fmt"
	"math"
)

// Threshold is the gradient magnitude above which a pixel is classified as
// non-edge (255). Magnitudes equal to the threshold stay at 0.
const Threshold = 30

// BT.601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Validate reports whether a buffer of n bytes can hold a width x height RGBA
// image.
func Validate(width, height, n int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if n != width*height*4 {
		return fmt.Errorf("buffer length %d does not match %dx%d RGBA (%d bytes)",
			n, width, height, width*height*4)
	}
	return nil
}

// Extract converts an RGBA pixel buffer into an RGBA edge image of the same
// dimensions.
//
// The steps are:
//
//  1. Grayscale: one BT.601 luma sample per pixel, alpha ignored.
//  2. Gradients: HorizontalKernel and VerticalKernel convolved at every
//     interior pixel (1 <= x <= width-2, 1 <= y <= height-2).
//  3. Threshold: sqrt(gx² + gy²) > Threshold gives 255, anything else 0.
//     Border pixels are never computed and stay 0.
//  4. Expansion: the edge value is copied into R, G and B; alpha is 255.
//
// Extract panics if width or height is less than 1 or if len(pixels) is not
// width*height*4. Callers that cannot guarantee the shape should call
// Validate first.
func Extract(width, height int, pixels []uint8) []uint8 {
	if err := Validate(width, height, len(pixels)); err != nil {
		panic("edges: " + err.Error())
	}
	gray := Grayscale(width, height, pixels)
	return Expand(EdgeMap(width, height, gray))
}

// Luma returns round(0.299*r + 0.587*g + 0.114*b) clamped to [0, 255].
func Luma(r, g, b uint8) uint8 {
	v := math.Round(lumaR*float64(r) + lumaG*float64(g) + lumaB*float64(b))
	return clampUint8(v)
}

// Grayscale returns one luma sample per pixel of an RGBA buffer.
func Grayscale(width, height int, pixels []uint8) []uint8 {
	gray := make([]uint8, width*height)
	for i := range gray {
		p := pixels[i*4 : i*4+3 : i*4+3]
		gray[i] = Luma(p[0], p[1], p[2])
	}
	return gray
}

// EdgeMap classifies every interior pixel of a grayscale buffer as edge (0)
// or non-edge (255). Border pixels keep their zero value.
func EdgeMap(width, height int, gray []uint8) []uint8 {
	edges := make([]uint8, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			gx := float64(Gradient(gray, width, x, y, HorizontalKernel))
			gy := float64(Gradient(gray, width, x, y, VerticalKernel))
			if math.Sqrt(gx*gx+gy*gy) > Threshold {
				edges[y*width+x] = 255
			}
		}
	}
	return edges
}

// Expand replicates each edge map sample into the R, G and B channels of an
// opaque RGBA buffer.
func Expand(edges []uint8) []uint8 {
	out := make([]uint8, len(edges)*4)
	for i, v := range edges {
		o := out[i*4 : i*4+4 : i*4+4]
		o[0] = v
		o[1] = v
		o[2] = v
		o[3] = 255
	}
	return out
}

func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
