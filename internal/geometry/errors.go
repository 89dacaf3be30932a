package geometry

import (
	"fmt"
)

// ErrDegenerateLine indicates a linestring with too few distinct vertices
// to project onto.
type ErrDegenerateLine struct {
	Vertices int
}

func (e *ErrDegenerateLine) Error() string {
	return fmt.Sprintf("degenerate linestring: %d distinct vertices (need at least 2)", e.Vertices)
}

// ErrBadPolyline indicates an encoded polyline that could not be decoded.
type ErrBadPolyline struct {
	Encoded string
	Err     error
}

func (e *ErrBadPolyline) Error() string {
	return fmt.Sprintf("malformed polyline %q: %v", e.Encoded, e.Err)
}

func (e *ErrBadPolyline) Unwrap() error {
	return e.Err
}
