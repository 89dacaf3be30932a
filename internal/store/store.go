// Package store persists anchors into a SQLite address table.
//
// The table layout matches what the query side interpolates from: one row
// per anchor, NULL for fields an anchor does not carry. Each tuple's
// anchors are written inside one transaction, so a tuple either persists
// completely or not at all.
package store

import (
	"database/sql"
	"math"

	_ "github.com/mattn/go-sqlite3"

	"github.com/beetlebugorg/interpolate/internal/augment"
)

const schema = `
CREATE TABLE IF NOT EXISTS address (
	rowid INTEGER PRIMARY KEY,
	id TEXT NOT NULL,
	source TEXT NOT NULL,
	housenumber REAL NOT NULL,
	lon REAL,
	lat REAL,
	parity TEXT,
	proj_lon REAL,
	proj_lat REAL
);
CREATE INDEX IF NOT EXISTS idx_address_street ON address (id, housenumber);
`

const insertAnchor = `
INSERT INTO address (id, source, housenumber, lon, lat, parity, proj_lon, proj_lat)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// Store writes anchors to a SQLite database, one transaction per tuple.
// It is not safe for concurrent use; serialize writers in front of it.
type Store struct {
	db *sql.DB
	tx *sql.Tx
}

// Open opens (creating if needed) a SQLite database at path and ensures
// the address schema exists. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// WriteAnchor buffers one anchor in the current tuple's transaction,
// beginning a new transaction if none is open.
//
// Coordinates are stored with seven fractional digits, house numbers with
// three.
func (s *Store) WriteAnchor(a augment.Anchor) error {
	if s.tx == nil {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		s.tx = tx
	}

	var lon, lat, parity interface{}
	if a.HasPoint {
		lon = roundTo(a.Point[0], 1e7)
		lat = roundTo(a.Point[1], 1e7)
	}
	if a.HasSide {
		parity = a.Side.String()
	}

	_, err := s.tx.Exec(insertAnchor,
		a.StreetID,
		a.Source.String(),
		truncTo(a.Housenumber, 1e3),
		lon, lat, parity,
		roundTo(a.Projected[0], 1e7),
		roundTo(a.Projected[1], 1e7),
	)
	if err != nil {
		// Discard the failed tuple so a later EndTuple cannot commit it.
		s.tx.Rollback()
		s.tx = nil
	}
	return err
}

// EndTuple commits the current tuple's anchors. A tuple with no anchors
// commits nothing.
func (s *Store) EndTuple() error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit()
	s.tx = nil
	return err
}

// Rollback discards any uncommitted anchors of the current tuple.
func (s *Store) Rollback() error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Rollback()
	s.tx = nil
	return err
}

// Count returns the number of persisted anchors, optionally filtered by
// street id. Pass "" for all streets.
func (s *Store) Count(streetID string) (int, error) {
	var n int
	var err error
	if streetID == "" {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM address`).Scan(&n)
	} else {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM address WHERE id = ?`, streetID).Scan(&n)
	}
	return n, err
}

// Close rolls back any open transaction and closes the database.
func (s *Store) Close() error {
	if s.tx != nil {
		s.tx.Rollback()
		s.tx = nil
	}
	return s.db.Close()
}

// roundTo rounds x to the precision given by scale (1e7 keeps seven
// fractional digits).
func roundTo(x, scale float64) float64 {
	return math.Round(x*scale) / scale
}

// truncTo truncates x toward zero to the precision given by scale.
// House numbers are truncated, not rounded, so an interpolated value never
// moves past the next observed number.
func truncTo(x, scale float64) float64 {
	return math.Trunc(x*scale) / scale
}
