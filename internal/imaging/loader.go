package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrUnsupportedFormat is returned for files whose extension is not one of
// the accepted source formats.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// AcceptedExtensions lists the file extensions accepted as coloring page
// sources. Matching is case-insensitive.
var AcceptedExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// formatForExtension maps an accepted extension to its format name.
var formatForExtension = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".webp": "webp",
}

// CheckSource verifies that path names a file with an accepted extension.
//
// Only the extension is inspected; the file is not opened. The returned error
// wraps ErrUnsupportedFormat.
func CheckSource(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := formatForExtension[ext]; !ok {
		return fmt.Errorf("%w: %q (accepted: %s)", ErrUnsupportedFormat, ext, strings.Join(AcceptedExtensions, ", "))
	}
	return nil
}

// ImageCache provides thread-safe caching of decoded source images to avoid
// redundant disk reads.
//
// The cache stores decoded image.Image objects keyed by their file path. Once
// an image is loaded, subsequent Load() calls for the same path return the
// cached copy without disk I/O.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). Photos straight from a camera are large; long-running servers
// should evict sources once their coloring page has been exported.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk if not
// cached.
//
// Parameters:
//   - path: Absolute or relative file path. Accepted formats are PNG, JPEG
//     (.jpg or .jpeg) and WebP.
//
// Returns:
//   - image.Image: The decoded image, rotated upright according to its EXIF
//     orientation tag when one is present.
//   - error: Non-nil if the extension is not accepted, or the file cannot be
//     opened or decoded.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := Decode(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Decode reads a source image from disk without caching it.
func Decode(path string) (image.Image, error) {
	if err := CheckSource(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ImageInfo contains metadata about a loaded source image.
type ImageInfo struct {
	// Width is the image width in pixels, after EXIF orientation is applied.
	Width int `json:"width"`

	// Height is the image height in pixels, after EXIF orientation is applied.
	Height int `json:"height"`

	// Format is "png", "jpeg" or "webp", taken from the file extension.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image and returns metadata about it.
//
// The image is loaded into the cache (if not already cached). Color depth and
// alpha presence are derived from the concrete Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - *image.RGBA, *image.NRGBA, *image.NRGBA64, *image.RGBA64 -> has alpha
//   - WebP images with transparency decode as *image.NYCbCrA -> has alpha
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.NYCbCrA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        formatForExtension[strings.ToLower(filepath.Ext(path))],
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
