package clock

// LocateFace picks the clock face from the detector's candidate circles.
//
// The largest circle wins; spurious smaller circles (numerals, screws, the hub)
// are common in edge-dense photos. Ties keep the first candidate seen.
// An empty candidate list fails with ErrNoFace.
func LocateFace(candidates []Circle) (Circle, error) {
	if len(candidates) == 0 {
		return Circle{}, &Failure{Status: StatusNoFaceDetected, Err: ErrNoFace}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Radius > best.Radius {
			best = c
		}
	}
	return best, nil
}
