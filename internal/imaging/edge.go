package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"math"
)

// EdgeDetectResult contains an edge map encoded as base64 PNG.
//
// The result is a grayscale image where white pixels (255) represent detected
// edges and black pixels (0) represent non-edges.
type EdgeDetectResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	EdgePixels  int    `json:"edge_pixels"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodeEdges packages an edge map for transport.
func EncodeEdges(edges *image.Gray) (*EdgeDetectResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, edges); err != nil {
		return nil, fmt.Errorf("failed to encode edge image: %w", err)
	}

	count := 0
	for _, v := range edges.Pix {
		if v != 0 {
			count++
		}
	}

	return &EdgeDetectResult{
		Width:       edges.Bounds().Dx(),
		Height:      edges.Bounds().Dy(),
		EdgePixels:  count,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Gradients holds Sobel derivatives of a grayscale image, row-major, on the
// 0..1 luminance scale.
type Gradients struct {
	Width, Height int
	X, Y          []float64
}

// Sobel computes horizontal and vertical derivatives of gray with replicated borders.
func Sobel(gray *image.Gray) *Gradients {
	b := gray.Bounds()
	width, height := b.Dx(), b.Dy()
	g := &Gradients{
		Width:  width,
		Height: height,
		X:      make([]float64, width*height),
		Y:      make([]float64, width*height),
	}
	if width == 0 || height == 0 {
		return g
	}

	at := func(x, y int) float64 {
		x = clamp(x, 0, width-1)
		y = clamp(y, 0, height-1)
		return float64(gray.Pix[gray.PixOffset(x+b.Min.X, y+b.Min.Y)]) / 255.0
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tl, tc, tr := at(x-1, y-1), at(x, y-1), at(x+1, y-1)
			ml, mr := at(x-1, y), at(x+1, y)
			bl, bc, br := at(x-1, y+1), at(x, y+1), at(x+1, y+1)

			i := y*width + x
			g.X[i] = (tr + 2*mr + br) - (tl + 2*ml + bl)
			g.Y[i] = (bl + 2*bc + br) - (tl + 2*tc + tr)
		}
	}
	return g
}

// Canny returns a binary edge map of gray using Canny's method.
//
// Thresholds are on the 0-255 scale, compared against the Sobel gradient
// magnitude. No smoothing is applied; blur the input first (see Preprocess).
//
// # Algorithm
//
//  1. Gradient computation: Sobel operators, magnitude = sqrt(Gx² + Gy²)
//  2. Non-maximum suppression: keep only local maxima along the gradient direction
//  3. Hysteresis: pixels above thresholdHigh seed edges, which then grow through
//     8-connected pixels above thresholdLow
func Canny(gray *image.Gray, thresholdLow, thresholdHigh int) *image.Gray {
	b := gray.Bounds()
	width, height := b.Dx(), b.Dy()
	result := image.NewGray(b)
	if width < 3 || height < 3 {
		return result
	}

	grad := Sobel(gray)
	magnitude := make([]float64, width*height)
	for i := range magnitude {
		magnitude[i] = math.Hypot(grad.X[i], grad.Y[i])
	}

	// Non-maximum suppression
	suppressed := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			mag := magnitude[i]
			if mag == 0 {
				continue
			}
			angle := math.Atan2(grad.Y[i], grad.X[i])

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = magnitude[i-1], magnitude[i+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = magnitude[i-width-1], magnitude[i+width+1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = magnitude[i-width], magnitude[i+width]
			default:
				n1, n2 = magnitude[i-width+1], magnitude[i+width-1]
			}

			if mag >= n1 && mag > n2 {
				suppressed[i] = mag
			}
		}
	}

	// Hysteresis from strong seeds through weak pixels
	lowThresh := float64(thresholdLow) / 255.0
	highThresh := float64(thresholdHigh) / 255.0
	marked := make([]bool, width*height)
	stack := make([]int, 0, 256)

	for i, v := range suppressed {
		if v >= highThresh && !marked[i] {
			marked[i] = true
			stack = append(stack, i)
		}
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			px, py := p%width, p/width
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := px+dx, py+dy
					if nx < 0 || nx >= width || ny < 0 || ny >= height {
						continue
					}
					n := ny*width + nx
					if !marked[n] && suppressed[n] >= lowThresh && suppressed[n] > 0 {
						marked[n] = true
						stack = append(stack, n)
					}
				}
			}
		}
	}

	for y := 0; y < height; y++ {
		row := result.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < width; x++ {
			if marked[y*width+x] {
				result.Pix[row+x] = 255
			}
		}
	}
	return result
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
