package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// blurRadius approximates a 5x5 Gaussian kernel.
const blurRadius = 2.0

// Grayscale converts img to luminance. The result always has its origin at (0, 0).
func Grayscale(img image.Image) *image.Gray {
	return toGray(effect.Grayscale(img))
}

// Preprocess produces the grayscale analysis buffer: luminance followed by a
// Gaussian blur to suppress sensor noise and JPEG ringing before circle detection.
func Preprocess(img image.Image) *image.Gray {
	return toGray(blur.Gaussian(effect.Grayscale(img), blurRadius))
}

// MaskDisc returns a copy of gray in which every pixel farther than radius from
// (cx, cy) is zeroed. Coordinates are absolute image coordinates.
func MaskDisc(gray *image.Gray, cx, cy, radius float64) *image.Gray {
	b := gray.Bounds()
	out := image.NewGray(b)
	if radius <= 0 {
		return out
	}
	r2 := radius * radius

	for y := b.Min.Y; y < b.Max.Y; y++ {
		dy := float64(y) - cy
		if dy*dy > r2 {
			continue
		}
		src := gray.PixOffset(b.Min.X, y)
		dst := out.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := float64(x) - cx
			if dx*dx+dy*dy <= r2 {
				out.Pix[dst+x-b.Min.X] = gray.Pix[src+x-b.Min.X]
			}
		}
	}
	return out
}

// toGray copies the gray-valued RGBA images bild returns into an *image.Gray
// rebased to the origin.
func toGray(src *image.RGBA) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		row := out.Pix[y*out.Stride:]
		for x := 0; x < b.Dx(); x++ {
			row[x] = color.GrayModel.Convert(src.RGBAAt(b.Min.X+x, b.Min.Y+y)).(color.Gray).Y
		}
	}
	return out
}
