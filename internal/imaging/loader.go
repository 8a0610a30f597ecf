package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// DefaultMaxDimension is the longest side an image is analysed at.
// Larger captures are scaled down; smaller ones are never enlarged.
const DefaultMaxDimension = 800

// ImageCache provides thread-safe caching of decoded images to avoid redundant disk reads.
//
// Images are keyed by the exact path string given to Load. Cached images are
// treated as immutable; the analysis pipeline always works on a normalized copy.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or Clear().
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/clock.jpg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gray := imaging.Preprocess(imaging.Normalize(img, imaging.DefaultMaxDimension))
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

// Load retrieves an image from the cache or decodes it from disk if not cached.
//
// PNG, JPEG and GIF are supported. EXIF orientation is applied, so photos taken
// with a rotated camera are returned upright.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// DecodeRaster decodes an uploaded image, applying EXIF orientation.
func DecodeRaster(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// DecodeBase64 decodes a base64-encoded image. A data URL prefix
// ("data:image/png;base64,") is accepted and stripped.
func DecodeBase64(data string) (image.Image, error) {
	if i := strings.Index(data, ","); i >= 0 && strings.HasPrefix(data, "data:") {
		data = data[i+1:]
	}
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, errors.New("empty image data")
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}
	return DecodeRaster(bytes.NewReader(raw))
}

// Normalize returns a copy of img whose longer side is at most maxDim pixels,
// preserving aspect ratio. The copy always has its origin at (0, 0).
// A non-positive maxDim disables scaling.
func Normalize(img image.Image, maxDim int) *image.NRGBA {
	b := img.Bounds()
	if maxDim <= 0 || max(b.Dx(), b.Dy()) <= maxDim {
		return imaging.Clone(img)
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width and Height are the stored image dimensions after EXIF orientation.
	Width  int `json:"width"`
	Height int `json:"height"`

	// AnalysisWidth and AnalysisHeight are the dimensions the clock pipeline
	// works at once the image is normalized.
	AnalysisWidth  int `json:"analysis_width"`
	AnalysisHeight int `json:"analysis_height"`

	// Format is the detected image format: "png", "jpeg", "gif", or "unknown".
	// Detection is based on file extension, not file contents.
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image into the cache and describes it.
//
// maxDim is the normalization limit used to report the analysis dimensions.
func LoadImageInfo(cache *ImageCache, path string, maxDim int) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	bounds := img.Bounds()
	aw, ah := AnalysisSize(bounds.Dx(), bounds.Dy(), maxDim)

	return &ImageInfo{
		Width:          bounds.Dx(),
		Height:         bounds.Dy(),
		AnalysisWidth:  aw,
		AnalysisHeight: ah,
		Format:         format,
		FileSizeBytes:  stat.Size(),
	}, nil
}

// AnalysisSize returns the dimensions Normalize produces for a w×h image.
// It mirrors the aspect-ratio arithmetic of imaging.Fit.
func AnalysisSize(w, h, maxDim int) (int, int) {
	if maxDim <= 0 || max(w, h) <= maxDim || w == 0 || h == 0 {
		return w, h
	}
	aspect := float64(w) / float64(h)
	var nw, nh int
	if aspect > 1 {
		nw = maxDim
		nh = int(float64(maxDim) / aspect)
	} else {
		nh = maxDim
		nw = int(float64(maxDim) * aspect)
	}
	return max(nw, 1), max(nh, 1)
}
