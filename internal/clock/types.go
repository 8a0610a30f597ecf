package clock

import (
	"fmt"
	"math"
)

// Point is a position in pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Circle is a candidate clock face returned by a circle detector.
type Circle struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

// Segment is a raw, unfiltered straight line segment.
type Segment struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

// HandCandidate is a segment that passed the geometric hand filter.
type HandCandidate struct {
	Segment Segment `json:"segment"`

	// Base is the endpoint nearer the face centre, Tip the farther one.
	Base Point `json:"base"`
	Tip  Point `json:"tip"`

	// Angle is the tip direction as angle-from-12, in [0, 360).
	Angle float64 `json:"angle"`

	Length       float64 `json:"length"`
	BaseDistance float64 `json:"base_distance"`
	TipDistance  float64 `json:"tip_distance"`
}

// Cluster merges hand candidates judged to be the same physical hand.
//
// The embedded HandCandidate is the longest member; its angle is the one used for
// classification and time computation.
type Cluster struct {
	HandCandidate

	// Members is the number of candidates merged into this cluster.
	Members int `json:"members"`

	// MeanAngle is the circular mean of all member angles. Diagnostic only.
	MeanAngle float64 `json:"mean_angle"`
}

// Reading is the result of one successful analysis.
type Reading struct {
	// Hour is the displayed hour, 1-12. There is no hour 0.
	Hour int `json:"hour"`

	// Minute is 0-59.
	Minute int `json:"minute"`

	// HourEstimated is true when no hour hand was found and Hour was derived
	// from the minute position. This is a degraded-accuracy reading.
	HourEstimated bool `json:"hour_estimated"`

	// UsedFallback reports whether the relaxed hand thresholds were needed.
	UsedFallback bool `json:"used_fallback"`

	Face       Circle   `json:"face"`
	MinuteHand Cluster  `json:"minute_hand"`
	HourHand   *Cluster `json:"hour_hand,omitempty"`
}

// String formats the reading as zero-padded HH:MM.
func (r *Reading) String() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}
