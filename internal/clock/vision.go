package clock

import (
	"image"
	"math"
)

// Vision is the set of low-level detectors the pipeline depends on.
//
// Implementations return raw detections and must not filter them by clock
// semantics; that is this package's job. Coordinates are absolute pixel
// coordinates of the input image.
type Vision interface {
	// DetectCircles runs a circular Hough detector over a grayscale image.
	DetectCircles(gray *image.Gray, p CircleParams) ([]Circle, error)

	// DetectEdges returns a binary edge map (0 or 255) of the same bounds.
	DetectEdges(masked *image.Gray, low, high int) (*image.Gray, error)

	// DetectLineSegments runs a probabilistic line-segment detector over an edge map.
	DetectLineSegments(edges *image.Gray, p SegmentParams) ([]Segment, error)
}

// Detector tuning shared by every Vision implementation.
const (
	DefaultCircleDP             = 1.0
	DefaultCircleCannyHigh      = 120
	DefaultCircleAccumThreshold = 30
	DefaultMinRadiusRatio       = 0.20
	DefaultMaxRadiusRatio       = 0.90

	DefaultSegmentThreshold = 50
	DefaultMinLineRatio     = 0.12
	DefaultMaxLineGap       = 10
)

// CircleParams configures the circle detector.
type CircleParams struct {
	// DP is the inverse ratio of accumulator resolution to image resolution.
	DP float64 `json:"dp"`

	// MinDist is the minimum distance between detected centres.
	MinDist float64 `json:"min_dist"`

	// CannyHigh is the upper edge threshold used internally by the detector.
	CannyHigh int `json:"canny_high"`

	// AccumThreshold is the vote count a centre needs to be reported.
	AccumThreshold int `json:"accum_threshold"`

	MinRadius int `json:"min_radius"`
	MaxRadius int `json:"max_radius"`
}

// SegmentParams configures the line-segment detector.
type SegmentParams struct {
	// Rho is the distance resolution in pixels, Theta the angular resolution in radians.
	Rho   float64 `json:"rho"`
	Theta float64 `json:"theta"`

	// Threshold is the accumulator vote count a line needs.
	Threshold int `json:"threshold"`

	MinLineLength int `json:"min_line_length"`
	MaxLineGap    int `json:"max_line_gap"`
}

// CircleParamsFor sizes the circle search for an image: radii between 20% and 90%
// of the shorter side, centres at least an eighth of the height apart.
func CircleParamsFor(width, height int) CircleParams {
	short := float64(min(width, height))
	return CircleParams{
		DP:             DefaultCircleDP,
		MinDist:        float64(height) / 8,
		CannyHigh:      DefaultCircleCannyHigh,
		AccumThreshold: DefaultCircleAccumThreshold,
		MinRadius:      int(math.Round(short * DefaultMinRadiusRatio)),
		MaxRadius:      int(math.Round(short * DefaultMaxRadiusRatio)),
	}
}

// SegmentParamsFor sizes the segment search for a face of the given radius.
func SegmentParamsFor(radius float64) SegmentParams {
	return SegmentParams{
		Rho:           1,
		Theta:         math.Pi / 180,
		Threshold:     DefaultSegmentThreshold,
		MinLineLength: int(math.Round(radius * DefaultMinLineRatio)),
		MaxLineGap:    DefaultMaxLineGap,
	}
}
