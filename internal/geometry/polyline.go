package geometry

import (
	"github.com/paulmach/orb"
	"github.com/twpayne/go-polyline"
)

// lineCodec decodes encoded polylines at six decimal digits of precision,
// the precision street geometry is exchanged at.
var lineCodec = polyline.Codec{Dim: 2, Scale: 1e6}

// DecodeLine decodes an encoded polyline string into a linestring.
//
// Encoded coordinates are lat/lon pairs; the result uses lon/lat order
// (GeoJSON convention). Consecutive duplicate vertices are removed.
func DecodeLine(encoded string) (orb.LineString, error) {
	coords, _, err := lineCodec.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, &ErrBadPolyline{Encoded: encoded, Err: err}
	}

	line := make(orb.LineString, len(coords))
	for i, c := range coords {
		line[i] = orb.Point{c[1], c[0]}
	}
	return Dedupe(line), nil
}

// EncodeLine encodes a linestring back into an encoded polyline string.
// The inverse of DecodeLine, used when re-exporting street geometry.
func EncodeLine(line orb.LineString) string {
	coords := make([][]float64, len(line))
	for i, p := range line {
		coords[i] = []float64{p[1], p[0]}
	}
	return string(lineCodec.EncodeCoords(nil, coords))
}
