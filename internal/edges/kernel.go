package edges

// Kernel is a 3x3 convolution kernel stored row by row.
//
// The weight applied to the neighbour at row offset i and column offset j
// (both in -1..1) is k[(i+1)*3+(j+1)].
type Kernel [9]int

// HorizontalKernel approximates the derivative along X.
var HorizontalKernel = Kernel{
	-1, 0, 1,
	-2, 0, 2,
	-1, 0, 1,
}

// VerticalKernel approximates the derivative along Y. It is the transpose of
// HorizontalKernel.
var VerticalKernel = Kernel{
	-1, -2, -1,
	0, 0, 0,
	1, 2, 1,
}

// Transpose returns k mirrored across its main diagonal.
func (k Kernel) Transpose() Kernel {
	var t Kernel
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[j*3+i] = k[i*3+j]
		}
	}
	return t
}

// Gradient convolves the 3x3 neighbourhood around (x, y) of a grayscale
// buffer that is width samples wide.
//
// The caller must keep (x, y) inside the interior of the image; no clamping
// or reflection of out-of-range neighbours is done.
func Gradient(gray []uint8, width, x, y int, k Kernel) int {
	sum := 0
	for i := -1; i <= 1; i++ {
		row := (y + i) * width
		for j := -1; j <= 1; j++ {
			sum += int(gray[row+x+j]) * k[(i+1)*3+(j+1)]
		}
	}
	return sum
}
