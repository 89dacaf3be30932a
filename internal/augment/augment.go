// Package augment turns batches of point-located house numbers into
// geocoded anchors along street linestrings.
//
// For each incoming tuple of candidate streets and address records it
// projects every address onto the best-fitting street, records the arc
// distance and side of street, infers each street's numbering scheme from
// the observed parity pattern, and finally emits synthetic anchors at the
// intermediate vertices of each street so that a house number anywhere on
// the street can later be recovered by plain linear interpolation between
// consecutive anchors.
package augment

import (
	"sort"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/rs/zerolog"

	"github.com/beetlebugorg/interpolate/internal/geometry"
)

// ParseFunc normalizes a raw house-number string. The boolean is false
// when the string does not normalize to a positive integer.
type ParseFunc func(raw string) (int, bool)

// Augmenter drives the per-tuple augmentation. It holds no state between
// tuples; a single instance may process any number of tuples, and distinct
// instances may run in parallel over disjoint tuples.
type Augmenter struct {
	parse ParseFunc
	log   zerolog.Logger
}

// NewAugmenter creates an augmenter using the given house-number parser
// and diagnostics logger. The logger is only written to on skip events:
// a skipped address record or an unusable candidate street.
func NewAugmenter(parse ParseFunc, log zerolog.Logger) *Augmenter {
	return &Augmenter{parse: parse, log: log}
}

// AugmentTuple processes one tuple and hands every resulting anchor to emit.
//
// Observed anchors are emitted first, in batch order. After the whole batch
// is observed, each street's observations are sorted by arc distance, the
// street's numbering scheme is classified, and synthetic vertex anchors are
// emitted street by street, vertex by vertex, left side before right.
//
// A record that cannot be used (unparseable number, malformed coordinate,
// no street match) is logged and skipped; no input condition aborts the
// tuple. Errors returned by emit abort immediately and propagate unchanged.
func (a *Augmenter) AugmentTuple(t Tuple, emit func(Anchor) error) error {
	streets := a.decodeStreets(t.Streets)

	for _, rec := range t.Batch {
		number, ok := a.parse(rec.Number)
		if !ok {
			a.log.Warn().Str("number", rec.Number).Msg("skipping address: unparseable housenumber")
			continue
		}

		point, err := parsePoint(rec)
		if err != nil {
			a.log.Warn().Err(err).Msg("skipping address: malformed coordinate")
			continue
		}

		idx, pr, err := matchStreet(streets, point)
		if err != nil {
			a.log.Warn().Err(err).Str("number", rec.Number).Msg("skipping address: no street match")
			continue
		}

		street := streets[idx]
		side := pr.Side(point)
		dist := distanceAlong(street.line, pr)

		street.obs = append(street.obs, Observation{
			Housenumber: number,
			Distance:    dist,
			Side:        side,
		})

		anchor := Anchor{
			StreetID:    street.id,
			Source:      SourceObserved,
			Housenumber: float64(number),
			Point:       point,
			HasPoint:    true,
			Projected:   pr.Point,
			Side:        side,
			HasSide:     true,
		}
		if err := emit(anchor); err != nil {
			return err
		}
	}

	for _, street := range streets {
		sort.SliceStable(street.obs, func(i, j int) bool {
			return street.obs[i].Distance < street.obs[j].Distance
		})
		street.scheme = classifyScheme(street.obs)

		if err := a.emitVertexAnchors(street, emit); err != nil {
			return err
		}
	}

	return nil
}

// decodeStreets decodes every candidate's geometry into per-tuple street
// state. Candidates whose polyline fails to decode keep an empty line, and
// candidates that collapse below two vertices after dedup keep that short
// line; the matcher passes over both.
func (a *Augmenter) decodeStreets(candidates []Candidate) []*streetState {
	streets := make([]*streetState, len(candidates))
	for i, c := range candidates {
		line, err := geometry.DecodeLine(c.Encoded)
		if err != nil {
			a.log.Warn().Err(err).Str("street", c.ID).Msg("street geometry unusable")
			line = nil
		} else if len(line) < 2 {
			a.log.Warn().Str("street", c.ID).Int("vertices", len(line)).Msg("street geometry degenerate after dedup")
		}
		streets[i] = &streetState{id: c.ID, line: line}
	}
	return streets
}

// emitVertexAnchors walks a street's vertices and emits an interpolated
// anchor at every intermediate vertex that falls inside the observed range.
//
// The first vertex is skipped: its cumulative distance is zero, so it can
// only coincide with an observation already anchored there. For a zigzag
// street one interpolation runs over all observations; for updown, the two
// sides interpolate independently, left before right.
func (a *Augmenter) emitVertexAnchors(street *streetState, emit func(Anchor) error) error {
	if len(street.line) < 2 || len(street.obs) == 0 {
		return nil
	}

	var tracks [][]Observation
	if street.scheme == SchemeZigzag {
		tracks = [][]Observation{street.obs}
	} else {
		tracks = [][]Observation{
			street.sideObservations(geometry.SideLeft),
			street.sideObservations(geometry.SideRight),
		}
	}

	var cumulative float64
	for i := 1; i < len(street.line); i++ {
		cumulative += geo.DistanceHaversine(street.line[i-1], street.line[i])

		for _, track := range tracks {
			number, ok := interpolate(track, cumulative)
			if !ok {
				continue
			}
			anchor := Anchor{
				StreetID:    street.id,
				Source:      SourceVertex,
				Housenumber: number,
				Projected:   street.line[i],
			}
			if err := emit(anchor); err != nil {
				return err
			}
		}
	}
	return nil
}

// parsePoint parses the stringified lon/lat of an address record.
func parsePoint(rec Address) (orb.Point, error) {
	lon, lonErr := strconv.ParseFloat(rec.Lon, 64)
	lat, latErr := strconv.ParseFloat(rec.Lat, 64)
	if lonErr != nil || latErr != nil {
		return orb.Point{}, &ErrBadCoordinate{Lon: rec.Lon, Lat: rec.Lat}
	}
	return orb.Point{lon, lat}, nil
}
