package detection

import (
	"fmt"
	"image"
	"math"
	"math/rand"
)

// segmentSeed fixes the visiting order so detection is reproducible.
const segmentSeed = 0x5eed

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Segment represents a detected line segment between two edge pixels.
type Segment struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return math.Hypot(float64(s.End.X-s.Start.X), float64(s.End.Y-s.Start.Y))
}

// SegmentParams configures DetectSegments.
type SegmentParams struct {
	// Rho is the distance resolution of the accumulator in pixels.
	Rho float64

	// Theta is the angular resolution of the accumulator in radians.
	Theta float64

	// Threshold is the vote count at which a line is traced.
	Threshold int

	// MinLineLength is the shortest segment reported, measured along its major axis.
	MinLineLength int

	// MaxLineGap is the largest run of missing pixels bridged while tracing.
	MaxLineGap int
}

// DetectSegments finds straight line segments in a binary edge map using the
// progressive probabilistic Hough transform.
//
// # Algorithm
//
//  1. Edge pixels are visited in a pseudo-random (but fixed) order.
//  2. Each visited pixel votes in the (rho, theta) accumulator.
//  3. When a vote takes some bin to Threshold, the corresponding line is traced
//     through the edge map in both directions from the pixel, bridging gaps of up
//     to MaxLineGap pixels.
//  4. Traced pixels are removed from the edge map; if the segment is at least
//     MinLineLength long it is reported and its pixels' votes are withdrawn, so
//     one physical line is not found twice.
//
// Non-zero pixels of edges are edge pixels. Coordinates are absolute.
func DetectSegments(edges *image.Gray, p SegmentParams) ([]Segment, error) {
	if p.Rho <= 0 || p.Theta <= 0 {
		return nil, fmt.Errorf("invalid accumulator resolution rho=%g theta=%g", p.Rho, p.Theta)
	}
	if p.Threshold <= 0 {
		return nil, fmt.Errorf("threshold must be positive, got %d", p.Threshold)
	}

	bounds := edges.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, nil
	}

	numAngle := int(math.Round(math.Pi / p.Theta))
	numRho := int(math.Round(float64((width+height)*2+1) / p.Rho))
	rhoOffset := (numRho - 1) / 2

	cosT := make([]float64, numAngle)
	sinT := make([]float64, numAngle)
	for n := 0; n < numAngle; n++ {
		ang := float64(n) * p.Theta
		cosT[n] = math.Cos(ang) / p.Rho
		sinT[n] = math.Sin(ang) / p.Rho
	}

	accumulator := make([]int, numAngle*numRho)
	mask := make([]bool, width*height)
	points := make([]Point, 0, 1024)

	for y := 0; y < height; y++ {
		row := edges.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		for x := 0; x < width; x++ {
			if edges.Pix[row+x] != 0 {
				mask[y*width+x] = true
				points = append(points, Point{X: x, Y: y})
			}
		}
	}

	vote := func(x, y, delta int) (bestN, bestVal int) {
		bestVal = math.MinInt
		for n := 0; n < numAngle; n++ {
			r := int(math.Round(float64(x)*cosT[n]+float64(y)*sinT[n])) + rhoOffset
			i := n*numRho + r
			accumulator[i] += delta
			if accumulator[i] > bestVal {
				bestN, bestVal = n, accumulator[i]
			}
		}
		return bestN, bestVal
	}

	const shift = 16
	segments := make([]Segment, 0)
	rng := rand.New(rand.NewSource(segmentSeed))

	for _, idx := range rng.Perm(len(points)) {
		pt := points[idx]
		if !mask[pt.Y*width+pt.X] {
			continue
		}

		maxN, maxVal := vote(pt.X, pt.Y, 1)
		if maxVal < p.Threshold {
			continue
		}

		// Direction along the line (perpendicular to the normal at maxN).
		a := -sinT[maxN] * p.Rho
		b := cosT[maxN] * p.Rho

		// Fixed-point stepping along the major axis.
		x0, y0 := pt.X, pt.Y
		var dx0, dy0 int
		xflag := math.Abs(a) > math.Abs(b)
		if xflag {
			dx0 = 1
			if a < 0 {
				dx0 = -1
			}
			dy0 = int(math.Round(b * (1 << shift) / math.Abs(a)))
			y0 = (y0 << shift) + (1 << (shift - 1))
		} else {
			dy0 = 1
			if b < 0 {
				dy0 = -1
			}
			dx0 = int(math.Round(a * (1 << shift) / math.Abs(b)))
			x0 = (x0 << shift) + (1 << (shift - 1))
		}

		pixel := func(x, y int) (int, int) {
			if xflag {
				return x, y >> shift
			}
			return x >> shift, y
		}

		var lineEnd [2]Point
		for k := 0; k < 2; k++ {
			gap := 0
			x, y, dx, dy := x0, y0, dx0, dy0
			if k > 0 {
				dx, dy = -dx, -dy
			}
			for ; ; x, y = x+dx, y+dy {
				j1, i1 := pixel(x, y)
				if j1 < 0 || j1 >= width || i1 < 0 || i1 >= height {
					break
				}
				if mask[i1*width+j1] {
					gap = 0
					lineEnd[k] = Point{X: j1, Y: i1}
				} else {
					gap++
					if gap > p.MaxLineGap {
						break
					}
				}
			}
		}

		good := absInt(lineEnd[1].X-lineEnd[0].X) >= p.MinLineLength ||
			absInt(lineEnd[1].Y-lineEnd[0].Y) >= p.MinLineLength

		for k := 0; k < 2; k++ {
			x, y, dx, dy := x0, y0, dx0, dy0
			if k > 0 {
				dx, dy = -dx, -dy
			}
			for ; ; x, y = x+dx, y+dy {
				j1, i1 := pixel(x, y)
				if j1 < 0 || j1 >= width || i1 < 0 || i1 >= height {
					break
				}
				if m := i1*width + j1; mask[m] {
					if good {
						vote(j1, i1, -1)
					}
					mask[m] = false
				}
				if j1 == lineEnd[k].X && i1 == lineEnd[k].Y {
					break
				}
			}
		}

		if good {
			segments = append(segments, Segment{
				Start: Point{X: lineEnd[0].X + bounds.Min.X, Y: lineEnd[0].Y + bounds.Min.Y},
				End:   Point{X: lineEnd[1].X + bounds.Min.X, Y: lineEnd[1].Y + bounds.Min.Y},
			})
		}
	}

	return segments, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
