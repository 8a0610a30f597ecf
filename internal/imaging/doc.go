// Package imaging prepares raster images for clock analysis.
//
// It covers acquisition (decoding files and base64 uploads, EXIF orientation,
// caching), normalization to the analysis size, grayscale conversion and
// smoothing, disc masking, and a pure-Go Canny edge detector. All operations use
// the image package coordinate system: (0,0) is the top-left corner, X increases
// rightward and Y increases downward.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Every other function is
// stateless and returns a fresh image; inputs are never modified.
//
// # Performance Considerations
//
// Analysis cost grows with pixel count, so images are normalized so that their
// longer side is at most DefaultMaxDimension before any detector runs. Cached
// source images stay in memory until Evict() or Clear() is called.
package imaging
