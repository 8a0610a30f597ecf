package clock

import "sort"

// ClassifyHands picks the minute and hour hands from the clusters.
//
// The longest cluster is the minute hand. The hour hand is the first following
// cluster that is either clearly apart from the minute hand (more than
// opts.HourSeparation degrees) or clearly shorter (below opts.HourLengthRatio of
// its length); this skips a second fragment of the minute hand that survived
// clustering. If no cluster qualifies the second-longest is used unconditionally.
// With a single cluster hour is nil. With none both are nil.
func ClassifyHands(clusters []Cluster, opts Options) (minute, hour *Cluster) {
	if len(clusters) == 0 {
		return nil, nil
	}

	sorted := make([]Cluster, len(clusters))
	copy(sorted, clusters)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Length > sorted[j].Length
	})

	minute = &sorted[0]
	if len(sorted) == 1 {
		return minute, nil
	}

	for i := 1; i < len(sorted); i++ {
		c := &sorted[i]
		if AngularDistance(c.Angle, minute.Angle) > opts.HourSeparation ||
			c.Length < minute.Length*opts.HourLengthRatio {
			return minute, c
		}
	}
	return minute, &sorted[1]
}
