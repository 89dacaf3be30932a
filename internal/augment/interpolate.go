package augment

// interpolate estimates a fractional house number at arc distance q over a
// track of observations sorted ascending by distance.
//
// The estimate is a straight linear blend between the nearest observation
// at or before q and the nearest at or after q. Both must exist: with
// fewer than two observations, or with q outside the observed range, there
// is nothing to interpolate against and ok is false. No extrapolation is
// ever performed.
func interpolate(track []Observation, q float64) (float64, bool) {
	if len(track) < 2 {
		return 0, false
	}

	loIdx, hiIdx := -1, -1
	for i, o := range track {
		if o.Distance <= q {
			loIdx = i
		}
		if hiIdx < 0 && o.Distance >= q {
			hiIdx = i
		}
	}
	if loIdx < 0 || hiIdx < 0 {
		return 0, false
	}

	lo, hi := track[loIdx], track[hiIdx]
	if lo.Distance == hi.Distance {
		// Coincident bounds, nothing to blend.
		return float64(lo.Housenumber), true
	}

	frac := (q - lo.Distance) / (hi.Distance - lo.Distance)
	return float64(lo.Housenumber) + float64(hi.Housenumber-lo.Housenumber)*frac, true
}
