package clock

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ClusterByAngle merges candidates whose angles lie within tolerance degrees of an
// existing cluster's representative.
//
// Candidates are visited longest first, so each cluster is founded by its longest
// member; a later candidate replaces the representative only if strictly longer.
// Longer segments are the more reliable estimate of the true hand angle.
func ClusterByAngle(candidates []HandCandidate, tolerance float64) []Cluster {
	sorted := make([]HandCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Length > sorted[j].Length
	})

	var clusters []Cluster
	var memberAngles [][]float64

	for _, c := range sorted {
		merged := false
		for i := range clusters {
			if AngularDistance(c.Angle, clusters[i].Angle) > tolerance {
				continue
			}
			if c.Length > clusters[i].Length {
				clusters[i].HandCandidate = c
			}
			clusters[i].Members++
			memberAngles[i] = append(memberAngles[i], c.Angle*math.Pi/180)
			merged = true
			break
		}
		if !merged {
			clusters = append(clusters, Cluster{HandCandidate: c, Members: 1})
			memberAngles = append(memberAngles, []float64{c.Angle * math.Pi / 180})
		}
	}

	for i := range clusters {
		clusters[i].MeanAngle = normalizeAngle(stat.CircularMean(memberAngles[i], nil) * 180 / math.Pi)
	}
	return clusters
}
