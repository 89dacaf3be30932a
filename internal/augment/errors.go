package augment

import (
	"fmt"
)

// ErrNoMatch indicates that no candidate street produced a valid projection
// for an address point.
type ErrNoMatch struct {
	Candidates int
}

func (e *ErrNoMatch) Error() string {
	return fmt.Sprintf("no street match: all %d candidates failed projection", e.Candidates)
}

// ErrBadCoordinate indicates an address record whose lon/lat fields did not
// parse as floats.
type ErrBadCoordinate struct {
	Lon, Lat string
}

func (e *ErrBadCoordinate) Error() string {
	return fmt.Sprintf("bad coordinate: lon=%q lat=%q", e.Lon, e.Lat)
}
