package clock

import "math"

// PrimitiveKind names the shape of a drawable primitive.
type PrimitiveKind string

const (
	KindCircle PrimitiveKind = "circle"
	KindLine   PrimitiveKind = "line"
	KindMarker PrimitiveKind = "marker"
)

// Role names what a primitive depicts.
type Role string

const (
	RoleFace   Role = "face"
	RoleMinute Role = "minute"
	RoleHour   Role = "hour"
	RoleCenter Role = "center"
)

// Overlay colours, "#RRGGBBAA".
const (
	ColorFace   = "#00B400E6"
	ColorMinute = "#DC143CF2"
	ColorHour   = "#1464DCF2"
	ColorCenter = "#000000CC"
)

// Primitive is one drawable element of the detection overlay.
//
// Circles and markers use Center and Radius; lines use From and To.
// Width is the stroke width in pixels (unused for filled markers).
type Primitive struct {
	Kind   PrimitiveKind `json:"kind"`
	Role   Role          `json:"role"`
	Center Point         `json:"center"`
	Radius float64       `json:"radius,omitempty"`
	From   Point         `json:"from"`
	To     Point         `json:"to"`
	Width  float64       `json:"width,omitempty"`
	Color  string        `json:"color"`
}

// DescribeOverlay lists the primitives visualising a reading: the face circle,
// a line from the centre to each detected hand tip, and a centre marker.
//
// Hand lines are drawn at the cluster angle with the cluster's tip distance, so
// they show what the classifier used rather than the raw segment. A nil reading
// yields nil.
func DescribeOverlay(r *Reading) []Primitive {
	if r == nil {
		return nil
	}
	c := r.Face.Center
	radius := r.Face.Radius

	prims := []Primitive{{
		Kind:   KindCircle,
		Role:   RoleFace,
		Center: c,
		Radius: radius,
		Width:  strokeWidth(radius, 0.02, 2),
		Color:  ColorFace,
	}, {
		Kind:  KindLine,
		Role:  RoleMinute,
		From:  c,
		To:    TipPoint(c, r.MinuteHand.Angle, r.MinuteHand.TipDistance),
		Width: strokeWidth(radius, 0.025, 3),
		Color: ColorMinute,
	}}

	if r.HourHand != nil {
		prims = append(prims, Primitive{
			Kind:  KindLine,
			Role:  RoleHour,
			From:  c,
			To:    TipPoint(c, r.HourHand.Angle, r.HourHand.TipDistance),
			Width: strokeWidth(radius, 0.018, 3),
			Color: ColorHour,
		})
	}

	return append(prims, Primitive{
		Kind:   KindMarker,
		Role:   RoleCenter,
		Center: c,
		Radius: strokeWidth(radius, 0.02, 3),
		Color:  ColorCenter,
	})
}

// TipPoint is the inverse of AngleFrom12: the point at distance d from center
// in the direction angle (degrees clockwise from 12).
func TipPoint(center Point, angle, d float64) Point {
	rad := angle * math.Pi / 180
	return Point{
		X: center.X + math.Sin(rad)*d,
		Y: center.Y - math.Cos(rad)*d,
	}
}

func strokeWidth(radius, ratio, min float64) float64 {
	return math.Max(min, math.Round(radius*ratio))
}
