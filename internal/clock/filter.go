package clock

import "math"

// FilterHands keeps the segments that look like clock hands pivoting at the face centre.
//
// The primary band is applied first. Only when it accepts nothing is every segment
// re-examined under the fallback band; usedFallback reports which band produced the
// result. Candidates keep the input order.
func FilterHands(segments []Segment, face Circle, opts Options) (candidates []HandCandidate, usedFallback bool) {
	candidates = filterBand(segments, face, opts.Primary)
	if len(candidates) > 0 {
		return candidates, false
	}
	return filterBand(segments, face, opts.Fallback), true
}

func filterBand(segments []Segment, face Circle, band Band) []HandCandidate {
	baseMax := band.BaseMax * face.Radius
	tipMin := band.TipMin * face.Radius
	tipMax := band.TipMax * face.Radius

	var out []HandCandidate
	for _, s := range segments {
		hc := orient(s, face.Center)
		if hc.BaseDistance > baseMax {
			continue
		}
		if hc.TipDistance < tipMin || hc.TipDistance > tipMax {
			continue
		}
		out = append(out, hc)
	}
	return out
}

// orient assigns base and tip by distance to the centre and derives the hand attributes.
func orient(s Segment, center Point) HandCandidate {
	d1 := center.Distance(s.A)
	d2 := center.Distance(s.B)

	base, tip := s.A, s.B
	baseDist, tipDist := d1, d2
	if d2 < d1 {
		base, tip = s.B, s.A
		baseDist, tipDist = d2, d1
	}

	return HandCandidate{
		Segment:      s,
		Base:         base,
		Tip:          tip,
		Angle:        AngleFrom12(center, tip),
		Length:       s.Length(),
		BaseDistance: baseDist,
		TipDistance:  tipDist,
	}
}

// AngleFrom12 returns the direction from center to p in degrees clockwise from 12 o'clock.
//
// The vertical component is inverted because image Y grows downward; a point straight
// above the centre is 0, straight right is 90.
func AngleFrom12(center, p Point) float64 {
	deg := math.Atan2(center.Y-p.Y, p.X-center.X) * 180 / math.Pi
	return normalizeAngle(90 - deg)
}

// AngularDistance is the shortest circular distance between two angles, in [0, 180].
func AngularDistance(a, b float64) float64 {
	return math.Abs(normalizeAngle(a-b+540) - 180)
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}
