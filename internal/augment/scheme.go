package augment

import (
	"github.com/beetlebugorg/interpolate/internal/geometry"
)

// Scheme is a street's numbering rule.
//
// Most streets interleave odd and even numbers across the two sides
// (zigzag); some run numbers up one side and back down the other
// (updown). The scheme decides which observations a vertex interpolation
// may draw on: all of them for zigzag, one side at a time for updown.
type Scheme int

const (
	// SchemeUpDown numbers one side up and the other side down.
	// The default when the parity pattern proves nothing.
	SchemeUpDown Scheme = iota

	// SchemeZigzag keeps odd numbers on one side and even on the other.
	SchemeZigzag
)

// String returns the scheme tag used in diagnostics.
func (s Scheme) String() string {
	if s == SchemeZigzag {
		return "zigzag"
	}
	return "updown"
}

// classifyScheme infers a street's numbering scheme from its observations.
//
// The street is zigzag when one side saw only odd numbers and the other
// only even numbers, in either orientation. Anything else, including an
// empty observation list, is updown.
func classifyScheme(obs []Observation) Scheme {
	var rOdd, rEven, lOdd, lEven int
	for _, o := range obs {
		odd := o.Housenumber%2 != 0
		switch {
		case o.Side == geometry.SideRight && odd:
			rOdd++
		case o.Side == geometry.SideRight:
			rEven++
		case odd:
			lOdd++
		default:
			lEven++
		}
	}

	rTotal := rOdd + rEven
	lTotal := lOdd + lEven
	if rTotal+lTotal == 0 {
		return SchemeUpDown
	}

	if rOdd == rTotal && lEven == lTotal {
		return SchemeZigzag
	}
	if lOdd == lTotal && rEven == rTotal {
		return SchemeZigzag
	}
	return SchemeUpDown
}
