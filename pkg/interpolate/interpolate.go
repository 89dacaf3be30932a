// Package interpolate provides a clean public API for conflating street
// geometry with point-located house numbers into geocoded address anchors.
//
// An Augmenter consumes lookup tuples (candidate streets plus a batch of
// raw address records) and emits anchors to a Sink: one observed anchor
// per usable address record, followed by synthetic anchors interpolated at
// the intermediate vertices of each street. Downstream, any house number
// on a street can then be estimated by linear interpolation between the
// two anchors bracketing its position, with no geometry involved.
package interpolate

import (
	"github.com/paulmach/orb"

	"github.com/beetlebugorg/interpolate/internal/augment"
	"github.com/beetlebugorg/interpolate/internal/geometry"
)

// AnchorSource distinguishes observed anchors from synthetic vertex anchors.
type AnchorSource int

const (
	// SourceObserved marks an anchor created from an input address record.
	SourceObserved AnchorSource = iota

	// SourceVertex marks an anchor interpolated at a linestring vertex.
	SourceVertex
)

// String returns the source code persisted with the anchor ("OBS" or "VTX").
func (s AnchorSource) String() string {
	if s == SourceVertex {
		return "VTX"
	}
	return "OBS"
}

// Side is the side of the street an observed address falls on, looking
// along the street's direction of travel.
type Side int

const (
	// SideLeft is the left-hand side.
	SideLeft Side = iota

	// SideRight is the right-hand side.
	SideRight
)

// String returns the side code persisted with the anchor ("L" or "R").
func (s Side) String() string {
	if s == SideLeft {
		return "L"
	}
	return "R"
}

// Anchor is one output record.
//
// Observed anchors carry the original address point (Lon/Lat), its
// projection onto the street (ProjLon/ProjLat), and a Side. Vertex anchors
// carry only the vertex coordinate in ProjLon/ProjLat and a fractional
// Housenumber; HasPoint and HasSide are false.
type Anchor struct {
	StreetID    string
	Source      AnchorSource
	Housenumber float64

	Lon, Lat float64
	HasPoint bool

	ProjLon, ProjLat float64

	Side    Side
	HasSide bool
}

// CandidateStreet is one street offered for matching: a stable id and its
// encoded polyline geometry.
type CandidateStreet struct {
	ID   string
	Name string
	Line string
}

// AddressRecord is one raw address in a batch. All fields are strings as
// they arrive from upstream extractors.
type AddressRecord struct {
	Number string
	Lon    string
	Lat    string
}

// LookupTuple is one unit of work: candidate streets sharing a name in a
// locality, and the address records grouped with them. Upstream batching
// has already narrowed the pairing; the augmenter takes it as given.
type LookupTuple struct {
	Streets []CandidateStreet
	Batch   []AddressRecord
}

// Sink receives anchors. WriteAnchor is called once per anchor in emission
// order; EndTuple is called once after all of a tuple's anchors, marking
// the transaction boundary. Errors from either abort the tuple and
// propagate to the caller unchanged.
type Sink interface {
	WriteAnchor(Anchor) error
	EndTuple() error
}

// Augmenter transforms lookup tuples into anchors.
//
// Create one with New and feed tuples through Augment. An Augmenter holds
// no state between tuples.
type Augmenter struct {
	internal *augment.Augmenter
}

// New creates an augmenter with default settings: the built-in
// house-number parser and a no-op diagnostics logger. Use options to
// override either.
//
// Example:
//
//	aug := interpolate.New()
//	err := aug.Augment(tuple, sink)
func New(opts ...Option) *Augmenter {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Augmenter{
		internal: augment.NewAugmenter(augment.ParseFunc(options.parser), options.logger),
	}
}

// Augment processes one lookup tuple and writes every resulting anchor to
// the sink, observed anchors first in batch order, then vertex anchors in
// street order, vertex by vertex, left side before right. EndTuple is
// invoked after the last anchor.
//
// Unusable address records are logged and skipped; only sink errors are
// returned.
func (a *Augmenter) Augment(tuple LookupTuple, sink Sink) error {
	internalTuple := convertTuple(tuple)
	err := a.internal.AugmentTuple(internalTuple, func(anchor augment.Anchor) error {
		return sink.WriteAnchor(convertAnchor(anchor))
	})
	if err != nil {
		return err
	}
	return sink.EndTuple()
}

// convertTuple converts the public tuple to the internal representation.
func convertTuple(tuple LookupTuple) augment.Tuple {
	streets := make([]augment.Candidate, len(tuple.Streets))
	for i, s := range tuple.Streets {
		streets[i] = augment.Candidate{ID: s.ID, Name: s.Name, Encoded: s.Line}
	}
	batch := make([]augment.Address, len(tuple.Batch))
	for i, r := range tuple.Batch {
		batch[i] = augment.Address{Number: r.Number, Lon: r.Lon, Lat: r.Lat}
	}
	return augment.Tuple{Streets: streets, Batch: batch}
}

// convertAnchor converts an internal anchor to the public API type.
func convertAnchor(a augment.Anchor) Anchor {
	anchor := Anchor{
		StreetID:    a.StreetID,
		Source:      AnchorSource(a.Source),
		Housenumber: a.Housenumber,
		ProjLon:     a.Projected[0],
		ProjLat:     a.Projected[1],
		HasPoint:    a.HasPoint,
		HasSide:     a.HasSide,
	}
	if a.HasPoint {
		anchor.Lon = a.Point[0]
		anchor.Lat = a.Point[1]
	}
	if a.HasSide {
		anchor.Side = convertSide(a.Side)
	}
	return anchor
}

func convertSide(s geometry.Side) Side {
	if s == geometry.SideLeft {
		return SideLeft
	}
	return SideRight
}

// EncodeLine encodes lon/lat points into the encoded polyline format
// accepted in CandidateStreet.Line. Mostly useful in tests and tooling.
func EncodeLine(points [][2]float64) string {
	line := make(orb.LineString, len(points))
	for i, p := range points {
		line[i] = orb.Point{p[0], p[1]}
	}
	return geometry.EncodeLine(line)
}
