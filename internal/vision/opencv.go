//go:build gocv

package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ironsheep/clock-reader-mcp/internal/clock"
)

// OpenCV implements clock.Vision with gocv: HoughCircles, Canny and HoughLinesP.
type OpenCV struct{}

// NewOpenCV returns the OpenCV backend.
func NewOpenCV() (clock.Vision, error) {
	return &OpenCV{}, nil
}

func (*OpenCV) DetectCircles(gray *image.Gray, p clock.CircleParams) ([]clock.Circle, error) {
	src, err := grayToMat(gray)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	circles := gocv.NewMat()
	defer circles.Close()

	gocv.HoughCirclesWithParams(src, &circles, gocv.HoughGradient,
		p.DP, p.MinDist, float64(p.CannyHigh), float64(p.AccumThreshold),
		p.MinRadius, p.MaxRadius)

	if circles.Empty() || circles.Cols() == 0 {
		return nil, nil
	}

	origin := gray.Bounds().Min
	out := make([]clock.Circle, circles.Cols())
	for i := 0; i < circles.Cols(); i++ {
		out[i] = clock.Circle{
			Center: clock.Point{
				X: float64(circles.GetFloatAt(0, i*3)) + float64(origin.X),
				Y: float64(circles.GetFloatAt(0, i*3+1)) + float64(origin.Y),
			},
			Radius: float64(circles.GetFloatAt(0, i*3+2)),
		}
	}
	return out, nil
}

func (*OpenCV) DetectEdges(masked *image.Gray, low, high int) (*image.Gray, error) {
	src, err := grayToMat(masked)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(src, &edges, float32(low), float32(high))

	b := masked.Bounds()
	out := image.NewGray(b)
	data := edges.ToBytes()
	if len(data) != b.Dx()*b.Dy() {
		return nil, fmt.Errorf("unexpected edge map size %d for %dx%d", len(data), b.Dx(), b.Dy())
	}
	for y := 0; y < b.Dy(); y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()], data[y*b.Dx():(y+1)*b.Dx()])
	}
	return out, nil
}

func (*OpenCV) DetectLineSegments(edges *image.Gray, p clock.SegmentParams) ([]clock.Segment, error) {
	src, err := grayToMat(edges)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	lines := gocv.NewMat()
	defer lines.Close()

	gocv.HoughLinesPWithParams(src, &lines, float32(p.Rho), float32(p.Theta),
		p.Threshold, float32(p.MinLineLength), float32(p.MaxLineGap))

	if lines.Empty() {
		return nil, nil
	}

	origin := edges.Bounds().Min
	ox, oy := float64(origin.X), float64(origin.Y)
	out := make([]clock.Segment, lines.Rows())
	for i := 0; i < lines.Rows(); i++ {
		out[i] = clock.Segment{
			A: clock.Point{X: float64(lines.GetIntAt(i, 0)) + ox, Y: float64(lines.GetIntAt(i, 1)) + oy},
			B: clock.Point{X: float64(lines.GetIntAt(i, 2)) + ox, Y: float64(lines.GetIntAt(i, 3)) + oy},
		}
	}
	return out, nil
}

// grayToMat copies g into a single-channel Mat, dropping any row padding.
func grayToMat(g *image.Gray) (gocv.Mat, error) {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	packed := make([]byte, w*h)
	for y := 0; y < h; y++ {
		copy(packed[y*w:(y+1)*w], g.Pix[g.PixOffset(b.Min.X, b.Min.Y+y):])
	}
	mat, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC1, packed)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to wrap image for opencv: %w", err)
	}
	return mat, nil
}
