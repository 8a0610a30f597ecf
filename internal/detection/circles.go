package detection

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/ironsheep/clock-reader-mcp/internal/imaging"
)

// maxCenterCandidates bounds how many accumulator peaks get a radius estimate.
const maxCenterCandidates = 64

// PointF is a sub-pixel position.
type PointF struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Circle represents a detected circle.
type Circle struct {
	// Center is in absolute image coordinates.
	Center PointF `json:"center"`

	// Radius is the best-supported radius in pixels.
	Radius float64 `json:"radius"`

	// Votes is the accumulator count at the centre.
	Votes int `json:"votes"`

	// Confidence is the fraction of the circumference backed by edge pixels (0.0 to 1.0).
	Confidence float64 `json:"confidence"`
}

// CircleParams configures DetectCircles.
type CircleParams struct {
	// DP is the inverse accumulator resolution: 1 means one bin per pixel, 2 half as many.
	DP float64

	// MinDist is the minimum distance between reported centres.
	MinDist float64

	// CannyHigh is the upper Canny threshold; the lower one is half of it.
	CannyHigh int

	// AccumThreshold is the vote count a centre, and the edge support a radius, must exceed.
	AccumThreshold int

	MinRadius int
	MaxRadius int
}

// DetectCircles finds circles in a grayscale image with the gradient Hough transform.
//
// # Algorithm (Hough gradient method)
//
//  1. Edge Detection: Canny with CannyHigh/2 and CannyHigh
//  2. Centre Voting: every edge pixel votes along its gradient direction, both ways,
//     for each distance in [MinRadius, MaxRadius]. Circle centres collect votes
//     from all around the circumference.
//  3. Peak Detection: local maxima above AccumThreshold, strongest first
//  4. Duplicate Removal: peaks closer than MinDist to a stronger accepted centre are dropped
//  5. Radius Estimation: histogram of edge-pixel distances to the centre; the radius
//     with the largest support (±1 px window) wins if that support exceeds AccumThreshold
//
// Results are ordered by centre votes, strongest first. The transform is
// deterministic: the same image and parameters always give the same circles.
//
// # Performance
//
// Voting is O(edges × (MaxRadius - MinRadius)); radius estimation is O(edges) per
// candidate centre, with at most 64 candidates examined.
func DetectCircles(gray *image.Gray, p CircleParams) ([]Circle, error) {
	if p.MinRadius < 1 || p.MaxRadius < p.MinRadius {
		return nil, fmt.Errorf("invalid radius range [%d, %d]", p.MinRadius, p.MaxRadius)
	}
	if p.CannyHigh <= 0 {
		return nil, fmt.Errorf("canny threshold must be positive, got %d", p.CannyHigh)
	}
	dp := p.DP
	if dp < 1 {
		dp = 1
	}

	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 3 || height < 3 {
		return nil, nil
	}

	edges := imaging.Canny(gray, max(1, p.CannyHigh/2), p.CannyHigh)
	grad := imaging.Sobel(gray)

	aw := int(float64(width)/dp) + 1
	ah := int(float64(height)/dp) + 1
	accumulator := make([]int, aw*ah)
	points := make([]int, 0, 1024)

	for y := 0; y < height; y++ {
		row := edges.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		for x := 0; x < width; x++ {
			if edges.Pix[row+x] == 0 {
				continue
			}
			i := y*width + x
			gx, gy := grad.X[i], grad.Y[i]
			mag := math.Hypot(gx, gy)
			if mag == 0 {
				continue
			}
			points = append(points, i)
			ux, uy := gx/mag, gy/mag

			for _, sign := range [2]float64{1, -1} {
				for r := p.MinRadius; r <= p.MaxRadius; r++ {
					cx := int(math.Round((float64(x) + sign*ux*float64(r)) / dp))
					cy := int(math.Round((float64(y) + sign*uy*float64(r)) / dp))
					if cx < 0 || cx >= aw || cy < 0 || cy >= ah {
						break
					}
					accumulator[cy*aw+cx]++
				}
			}
		}
	}

	type peak struct {
		x, y  int
		votes int
	}
	peaks := make([]peak, 0)
	for y := 1; y < ah-1; y++ {
		for x := 1; x < aw-1; x++ {
			i := y*aw + x
			v := accumulator[i]
			if v <= p.AccumThreshold {
				continue
			}
			if v > accumulator[i-1] && v >= accumulator[i+1] &&
				v > accumulator[i-aw] && v >= accumulator[i+aw] {
				peaks = append(peaks, peak{x: x, y: y, votes: v})
			}
		}
	}
	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].votes > peaks[j].votes
	})
	if len(peaks) > maxCenterCandidates {
		peaks = peaks[:maxCenterCandidates]
	}

	minDist2 := p.MinDist * p.MinDist
	circles := make([]Circle, 0)
	hist := make([]int, p.MaxRadius+2)

	for _, pk := range peaks {
		cx := float64(pk.x) * dp
		cy := float64(pk.y) * dp

		duplicate := false
		for _, c := range circles {
			dx := cx - (c.Center.X - float64(bounds.Min.X))
			dy := cy - (c.Center.Y - float64(bounds.Min.Y))
			if dx*dx+dy*dy < minDist2 {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		for i := range hist {
			hist[i] = 0
		}
		for _, i := range points {
			d := math.Hypot(float64(i%width)-cx, float64(i/width)-cy)
			r := int(math.Round(d))
			if r >= p.MinRadius && r <= p.MaxRadius {
				hist[r]++
			}
		}

		bestR, bestSupport := 0, 0
		for r := p.MinRadius; r <= p.MaxRadius; r++ {
			support := hist[r] + hist[r+1]
			if r > 0 {
				support += hist[r-1]
			}
			if support > bestSupport {
				bestR, bestSupport = r, support
			}
		}
		if bestSupport <= p.AccumThreshold {
			continue
		}

		circles = append(circles, Circle{
			Center: PointF{
				X: cx + float64(bounds.Min.X),
				Y: cy + float64(bounds.Min.Y),
			},
			Radius:     float64(bestR),
			Votes:      pk.votes,
			Confidence: math.Min(float64(bestSupport)/(2*math.Pi*float64(bestR)), 1.0),
		})
	}

	return circles, nil
}
