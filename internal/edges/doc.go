// Package edges turns an RGBA pixel buffer into a binary edge map.
//
// The filter is a simplified Sobel operator: luminance is computed with the
// ITU-R BT.601 weights, each interior pixel is convolved with a horizontal and
// a vertical 3x3 gradient kernel, and the gradient magnitude is compared
// against a fixed threshold. There is no blur, no non-maximum suppression and
// no hysteresis.
//
// # Buffer Layout
//
// All buffers are flat []uint8 slices in row-major order with the origin at
// the top-left corner:
//   - Pixel buffers hold 4 bytes per pixel in R, G, B, A order.
//   - Grayscale buffers and edge maps hold 1 byte per pixel.
//
// # Classification
//
// A pixel whose gradient magnitude is greater than Threshold is written as
// 255. Every other pixel, including the whole one-pixel border that is never
// convolved, is written as 0. The output buffer replicates that value into
// the R, G and B channels and sets alpha to 255.
//
// # Thread Safety
//
// The package keeps no state between calls. Every call allocates its own
// intermediate buffers, so functions may run concurrently on different
// inputs.
package edges
