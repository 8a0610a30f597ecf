package vision

import (
	"image"

	"github.com/ironsheep/clock-reader-mcp/internal/clock"
	"github.com/ironsheep/clock-reader-mcp/internal/detection"
	"github.com/ironsheep/clock-reader-mcp/internal/imaging"
)

// PureGo implements clock.Vision with the detectors in internal/detection.
type PureGo struct{}

// NewPureGo returns the pure-Go backend.
func NewPureGo() *PureGo {
	return &PureGo{}
}

func (*PureGo) DetectCircles(gray *image.Gray, p clock.CircleParams) ([]clock.Circle, error) {
	found, err := detection.DetectCircles(gray, detection.CircleParams{
		DP:             p.DP,
		MinDist:        p.MinDist,
		CannyHigh:      p.CannyHigh,
		AccumThreshold: p.AccumThreshold,
		MinRadius:      p.MinRadius,
		MaxRadius:      p.MaxRadius,
	})
	if err != nil {
		return nil, err
	}

	circles := make([]clock.Circle, len(found))
	for i, c := range found {
		circles[i] = clock.Circle{
			Center: clock.Point{X: c.Center.X, Y: c.Center.Y},
			Radius: c.Radius,
		}
	}
	return circles, nil
}

func (*PureGo) DetectEdges(masked *image.Gray, low, high int) (*image.Gray, error) {
	return imaging.Canny(masked, low, high), nil
}

func (*PureGo) DetectLineSegments(edges *image.Gray, p clock.SegmentParams) ([]clock.Segment, error) {
	found, err := detection.DetectSegments(edges, detection.SegmentParams{
		Rho:           p.Rho,
		Theta:         p.Theta,
		Threshold:     p.Threshold,
		MinLineLength: p.MinLineLength,
		MaxLineGap:    p.MaxLineGap,
	})
	if err != nil {
		return nil, err
	}

	segments := make([]clock.Segment, len(found))
	for i, s := range found {
		segments[i] = clock.Segment{
			A: clock.Point{X: float64(s.Start.X), Y: float64(s.Start.Y)},
			B: clock.Point{X: float64(s.End.X), Y: float64(s.End.Y)},
		}
	}
	return segments, nil
}
