package augment

import (
	"github.com/paulmach/orb"

	"github.com/beetlebugorg/interpolate/internal/geometry"
)

// Observation is one house number located along a street: the normalized
// number, the arc distance in meters from the start of the street's
// linestring to the projection of the address point, and the side of the
// street the point falls on. Observations are immutable once recorded.
type Observation struct {
	Housenumber int
	Distance    float64
	Side        geometry.Side
}

// Candidate is one street offered to the matcher: a stable external id,
// the raw name the street was grouped under, and its encoded geometry.
type Candidate struct {
	ID      string
	Name    string
	Encoded string
}

// Address is one raw address record from an input batch. All fields arrive
// as strings; normalization happens inside the driver.
type Address struct {
	Number string
	Lon    string
	Lat    string
}

// Tuple is one unit of driver work: candidate streets sharing a name in a
// locality, and the batch of address records grouped with them.
type Tuple struct {
	Streets []Candidate
	Batch   []Address
}

// Source tags an anchor as an observed address or a synthetic vertex.
type Source int

const (
	// SourceObserved marks an anchor created from an input address record.
	SourceObserved Source = iota

	// SourceVertex marks a synthetic anchor interpolated at a linestring vertex.
	SourceVertex
)

// String returns the source code used in persisted records.
func (s Source) String() string {
	if s == SourceVertex {
		return "VTX"
	}
	return "OBS"
}

// Anchor is one output record. Observed anchors carry the original point,
// its projection, and a side; vertex anchors carry only the vertex
// coordinate (as the projected point) and a fractional house number.
type Anchor struct {
	StreetID    string
	Source      Source
	Housenumber float64

	Point    orb.Point // original address point, observed anchors only
	HasPoint bool

	Projected orb.Point // foot of projection, or the vertex itself

	Side    geometry.Side
	HasSide bool
}

// streetState is the per-tuple working state for one candidate street:
// its decoded geometry and the observations recorded against it. The
// observations live on the street itself, so there is no parallel index
// to keep in sync with the candidate list.
type streetState struct {
	id     string
	line   orb.LineString
	obs    []Observation
	scheme Scheme
}

// sideObservations returns the street's observations on one side,
// preserving their order.
func (s *streetState) sideObservations(side geometry.Side) []Observation {
	out := make([]Observation, 0, len(s.obs))
	for _, o := range s.obs {
		if o.Side == side {
			out = append(out, o)
		}
	}
	return out
}
