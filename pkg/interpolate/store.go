package interpolate

import (
	"github.com/paulmach/orb"

	"github.com/beetlebugorg/interpolate/internal/augment"
	"github.com/beetlebugorg/interpolate/internal/geometry"
	"github.com/beetlebugorg/interpolate/internal/store"
)

// Store is a Sink that persists anchors into a SQLite address table.
//
// Each tuple's anchors are written inside one transaction: EndTuple
// commits, so a tuple either persists completely or not at all. A Store
// is not safe for concurrent use; Process serializes access to it.
//
// Example:
//
//	st, err := interpolate.OpenStore("addresses.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
//
//	aug := interpolate.New()
//	if err := aug.Augment(tuple, st); err != nil {
//	    log.Fatal(err)
//	}
type Store struct {
	internal *store.Store
}

// OpenStore opens (creating if needed) a SQLite anchor store at path.
// Use ":memory:" for an ephemeral store.
func OpenStore(path string) (*Store, error) {
	internal, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	return &Store{internal: internal}, nil
}

// WriteAnchor buffers one anchor in the current tuple's transaction.
func (s *Store) WriteAnchor(a Anchor) error {
	return s.internal.WriteAnchor(internalAnchor(a))
}

// EndTuple commits the current tuple's anchors.
func (s *Store) EndTuple() error {
	return s.internal.EndTuple()
}

// Rollback discards any uncommitted anchors of the current tuple.
func (s *Store) Rollback() error {
	return s.internal.Rollback()
}

// Count returns the number of persisted anchors, optionally filtered by
// street id. Pass "" for all streets.
func (s *Store) Count(streetID string) (int, error) {
	return s.internal.Count(streetID)
}

// Close rolls back any open transaction and closes the database.
func (s *Store) Close() error {
	return s.internal.Close()
}

// internalAnchor converts a public anchor back to the internal type the
// store persists.
func internalAnchor(a Anchor) augment.Anchor {
	anchor := augment.Anchor{
		StreetID:    a.StreetID,
		Source:      augment.Source(a.Source),
		Housenumber: a.Housenumber,
		Projected:   orb.Point{a.ProjLon, a.ProjLat},
		HasPoint:    a.HasPoint,
		HasSide:     a.HasSide,
	}
	if a.HasPoint {
		anchor.Point = orb.Point{a.Lon, a.Lat}
	}
	if a.HasSide {
		if a.Side == SideLeft {
			anchor.Side = geometry.SideLeft
		} else {
			anchor.Side = geometry.SideRight
		}
	}
	return anchor
}
