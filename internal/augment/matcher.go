package augment

import (
	"github.com/paulmach/orb"

	"github.com/beetlebugorg/interpolate/internal/geometry"
)

// matchStreet projects an address point onto every candidate street and
// returns the index of the street with the smallest projection distance,
// together with that projection. Ties go to the lowest candidate index.
//
// Candidates with degenerate geometry are passed over; if every candidate
// is degenerate, ErrNoMatch is returned.
func matchStreet(streets []*streetState, p orb.Point) (int, geometry.Projection, error) {
	bestIdx := -1
	var best geometry.Projection

	for i, s := range streets {
		pr, err := geometry.Project(s.line, p)
		if err != nil {
			continue
		}
		if bestIdx < 0 || pr.Distance < best.Distance {
			bestIdx = i
			best = pr
		}
	}

	if bestIdx < 0 {
		return 0, geometry.Projection{}, &ErrNoMatch{Candidates: len(streets)}
	}
	return bestIdx, best, nil
}

// distanceAlong measures the arc length in meters from the start of a
// linestring to a projection on it.
func distanceAlong(line orb.LineString, pr geometry.Projection) float64 {
	return geometry.Length(geometry.Slice(line, pr))
}
