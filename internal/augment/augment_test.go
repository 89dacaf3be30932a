package augment

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog"

	"github.com/beetlebugorg/interpolate/internal/geometry"
	"github.com/beetlebugorg/interpolate/internal/housenumber"
)

func encode(points ...orb.Point) string {
	return geometry.EncodeLine(orb.LineString(points))
}

func collect(t *testing.T, aug *Augmenter, tuple Tuple) []Anchor {
	t.Helper()
	var anchors []Anchor
	if err := aug.AugmentTuple(tuple, func(a Anchor) error {
		anchors = append(anchors, a)
		return nil
	}); err != nil {
		t.Fatalf("AugmentTuple failed: %v", err)
	}
	return anchors
}

func newTestAugmenter() *Augmenter {
	return NewAugmenter(housenumber.Normalize, zerolog.Nop())
}

// TestAugmentZigzag tests the full observation and vertex pass over a
// zigzag street with an intermediate vertex
func TestAugmentZigzag(t *testing.T) {
	tuple := Tuple{
		Streets: []Candidate{
			{ID: "S1", Encoded: encode(orb.Point{0, 0}, orb.Point{2, 0}, orb.Point{4, 0})},
		},
		Batch: []Address{
			{Number: "1", Lon: "1", Lat: "0.00001"},
			{Number: "2", Lon: "1", Lat: "-0.00001"},
			{Number: "3", Lon: "3", Lat: "0.00001"},
			{Number: "4", Lon: "3", Lat: "-0.00001"},
		},
	}

	anchors := collect(t, newTestAugmenter(), tuple)
	if len(anchors) != 5 {
		t.Fatalf("Expected 5 anchors (4 OBS + 1 VTX), got %d", len(anchors))
	}

	// Observed anchors come first, in batch order, alternating sides.
	wantSides := []geometry.Side{geometry.SideLeft, geometry.SideRight, geometry.SideLeft, geometry.SideRight}
	for i := 0; i < 4; i++ {
		a := anchors[i]
		if a.Source != SourceObserved {
			t.Fatalf("anchor %d: expected OBS, got %v", i, a.Source)
		}
		if a.StreetID != "S1" {
			t.Errorf("anchor %d: expected street S1, got %s", i, a.StreetID)
		}
		if !a.HasSide || a.Side != wantSides[i] {
			t.Errorf("anchor %d: expected side %v, got %v", i, wantSides[i], a.Side)
		}
		if !a.HasPoint {
			t.Errorf("anchor %d: expected original point", i)
		}
		if math.Abs(a.Projected[1]) > 1e-9 {
			t.Errorf("anchor %d: projection off centerline: %v", i, a.Projected)
		}
	}

	// One vertex anchor at the middle vertex. The far vertex is beyond the
	// last observation, so nothing is interpolated there.
	vtx := anchors[4]
	if vtx.Source != SourceVertex {
		t.Fatalf("Expected VTX anchor, got %v", vtx.Source)
	}
	if vtx.HasPoint || vtx.HasSide {
		t.Error("Vertex anchor must not carry a point or side")
	}
	if math.Abs(vtx.Projected[0]-2) > 1e-5 || math.Abs(vtx.Projected[1]) > 1e-5 {
		t.Errorf("Expected vertex (2,0), got %v", vtx.Projected)
	}
	// Observations 1..4 straddle the vertex symmetrically on the equator,
	// so the blend lands midway between 2 and 3.
	if math.Abs(vtx.Housenumber-2.5) > 1e-3 {
		t.Errorf("Expected housenumber ~2.5, got %f", vtx.Housenumber)
	}
}

// TestAugmentUpDownSides tests independent per-side interpolation with the
// left side emitted before the right
func TestAugmentUpDownSides(t *testing.T) {
	tuple := Tuple{
		Streets: []Candidate{
			{ID: "S1", Encoded: encode(orb.Point{0, 0}, orb.Point{2, 0}, orb.Point{4, 0})},
		},
		Batch: []Address{
			{Number: "1", Lon: "1", Lat: "0.00001"},
			{Number: "2", Lon: "3", Lat: "0.00001"},
			{Number: "9", Lon: "1", Lat: "-0.00001"},
			{Number: "8", Lon: "3", Lat: "-0.00001"},
		},
	}

	anchors := collect(t, newTestAugmenter(), tuple)
	if len(anchors) != 6 {
		t.Fatalf("Expected 6 anchors (4 OBS + 2 VTX), got %d", len(anchors))
	}

	left, right := anchors[4], anchors[5]
	if left.Source != SourceVertex || right.Source != SourceVertex {
		t.Fatal("Expected two vertex anchors")
	}
	if math.Abs(left.Housenumber-1.5) > 1e-3 {
		t.Errorf("Left track: expected ~1.5, got %f", left.Housenumber)
	}
	if math.Abs(right.Housenumber-8.5) > 1e-3 {
		t.Errorf("Right track: expected ~8.5, got %f", right.Housenumber)
	}
}

// TestAugmentNoExtrapolation tests that a vertex beyond the observed range
// produces nothing
func TestAugmentNoExtrapolation(t *testing.T) {
	tuple := Tuple{
		Streets: []Candidate{
			{ID: "S1", Encoded: encode(orb.Point{0, 0}, orb.Point{10, 0})},
		},
		Batch: []Address{
			{Number: "1", Lon: "1", Lat: "0.00001"},
			{Number: "2", Lon: "3", Lat: "0.00001"},
			{Number: "9", Lon: "1", Lat: "-0.00001"},
			{Number: "8", Lon: "3", Lat: "-0.00001"},
		},
	}

	anchors := collect(t, newTestAugmenter(), tuple)
	for _, a := range anchors {
		if a.Source == SourceVertex {
			t.Fatalf("Expected no vertex anchors, got one at %v", a.Projected)
		}
	}
	if len(anchors) != 4 {
		t.Fatalf("Expected 4 OBS anchors, got %d", len(anchors))
	}
}

// TestAugmentInvalidHousenumber tests diagnostic-and-skip on unparseable
// numbers
func TestAugmentInvalidHousenumber(t *testing.T) {
	var buf bytes.Buffer
	aug := NewAugmenter(housenumber.Normalize, zerolog.New(&buf))

	tuple := Tuple{
		Streets: []Candidate{
			{ID: "S1", Encoded: encode(orb.Point{0, 0}, orb.Point{10, 0})},
		},
		Batch: []Address{
			{Number: "B12", Lon: "1", Lat: "0.00001"},
		},
	}

	anchors := collect(t, aug, tuple)
	if len(anchors) != 0 {
		t.Fatalf("Expected no anchors, got %d", len(anchors))
	}

	diagnostics := strings.Count(buf.String(), "\n")
	if diagnostics != 1 {
		t.Errorf("Expected exactly 1 diagnostic, got %d", diagnostics)
	}
}

// TestAugmentNearestCandidate tests that the closest of several candidate
// streets wins
func TestAugmentNearestCandidate(t *testing.T) {
	tuple := Tuple{
		Streets: []Candidate{
			{ID: "far", Encoded: encode(orb.Point{0, 0.001}, orb.Point{10, 0.001})},
			{ID: "near", Encoded: encode(orb.Point{0, 0}, orb.Point{10, 0})},
		},
		Batch: []Address{
			{Number: "7", Lon: "5", Lat: "0.0001"},
		},
	}

	anchors := collect(t, newTestAugmenter(), tuple)
	if len(anchors) != 1 {
		t.Fatalf("Expected 1 anchor, got %d", len(anchors))
	}
	if anchors[0].StreetID != "near" {
		t.Errorf("Expected street near, got %s", anchors[0].StreetID)
	}
}

// TestAugmentDegenerateCandidate tests that a street collapsing to one
// vertex is passed over while other candidates still match
func TestAugmentDegenerateCandidate(t *testing.T) {
	var buf bytes.Buffer
	aug := NewAugmenter(housenumber.Normalize, zerolog.New(&buf))

	tuple := Tuple{
		Streets: []Candidate{
			{ID: "collapsed", Encoded: encode(orb.Point{5, 5}, orb.Point{5, 5})},
			{ID: "good", Encoded: encode(orb.Point{0, 0}, orb.Point{10, 0})},
		},
		Batch: []Address{
			{Number: "3", Lon: "5", Lat: "0.00001"},
		},
	}

	anchors := collect(t, aug, tuple)
	if len(anchors) != 1 {
		t.Fatalf("Expected 1 anchor, got %d", len(anchors))
	}
	if anchors[0].StreetID != "good" {
		t.Errorf("Expected street good, got %s", anchors[0].StreetID)
	}
	if buf.Len() == 0 {
		t.Error("Expected a diagnostic for the degenerate street")
	}
}

// TestAugmentAllCandidatesDegenerate tests the no-match skip path
func TestAugmentAllCandidatesDegenerate(t *testing.T) {
	var buf bytes.Buffer
	aug := NewAugmenter(housenumber.Normalize, zerolog.New(&buf))

	tuple := Tuple{
		Streets: []Candidate{
			{ID: "collapsed", Encoded: encode(orb.Point{5, 5}, orb.Point{5, 5})},
		},
		Batch: []Address{
			{Number: "3", Lon: "5", Lat: "0.00001"},
		},
	}

	anchors := collect(t, aug, tuple)
	if len(anchors) != 0 {
		t.Fatalf("Expected no anchors, got %d", len(anchors))
	}
	if !strings.Contains(buf.String(), "no street match") {
		t.Error("Expected a no-match diagnostic")
	}
}

// TestAugmentSingleObservation tests that one observation yields its OBS
// anchor but no vertex anchors
func TestAugmentSingleObservation(t *testing.T) {
	tuple := Tuple{
		Streets: []Candidate{
			{ID: "S1", Encoded: encode(orb.Point{0, 0}, orb.Point{2, 0}, orb.Point{4, 0})},
		},
		Batch: []Address{
			{Number: "11", Lon: "1", Lat: "0.00001"},
		},
	}

	anchors := collect(t, newTestAugmenter(), tuple)
	if len(anchors) != 1 {
		t.Fatalf("Expected 1 anchor, got %d", len(anchors))
	}
	if anchors[0].Source != SourceObserved {
		t.Errorf("Expected OBS anchor, got %v", anchors[0].Source)
	}
}

// TestAugmentBadCoordinate tests diagnostic-and-skip on malformed lon/lat
func TestAugmentBadCoordinate(t *testing.T) {
	var buf bytes.Buffer
	aug := NewAugmenter(housenumber.Normalize, zerolog.New(&buf))

	tuple := Tuple{
		Streets: []Candidate{
			{ID: "S1", Encoded: encode(orb.Point{0, 0}, orb.Point{10, 0})},
		},
		Batch: []Address{
			{Number: "3", Lon: "not-a-float", Lat: "0.00001"},
			{Number: "5", Lon: "1", Lat: "0.00001"},
		},
	}

	anchors := collect(t, aug, tuple)
	if len(anchors) != 1 {
		t.Fatalf("Expected 1 anchor, got %d", len(anchors))
	}
	if anchors[0].Housenumber != 5 {
		t.Errorf("Expected the valid record's anchor, got %f", anchors[0].Housenumber)
	}
}

// TestAugmentObservationInvariants tests that every observed anchor's arc
// distance lies within the street's length
func TestAugmentObservationInvariants(t *testing.T) {
	line := orb.LineString{{0, 0}, {2, 0}, {4, 0}}
	total := geometry.Length(line)

	tuple := Tuple{
		Streets: []Candidate{{ID: "S1", Encoded: encode(line...)}},
		Batch: []Address{
			{Number: "9", Lon: "3.5", Lat: "0.00001"},
			{Number: "1", Lon: "0.5", Lat: "0.00001"},
			{Number: "5", Lon: "2", Lat: "0.00001"},
		},
	}

	var observed []Anchor
	aug := newTestAugmenter()
	if err := aug.AugmentTuple(tuple, func(a Anchor) error {
		if a.Source == SourceObserved {
			observed = append(observed, a)
		}
		return nil
	}); err != nil {
		t.Fatalf("AugmentTuple failed: %v", err)
	}

	if len(observed) != 3 {
		t.Fatalf("Expected 3 OBS anchors, got %d", len(observed))
	}

	for i, a := range observed {
		pr, err := geometry.Project(line, a.Point)
		if err != nil {
			t.Fatalf("Project failed: %v", err)
		}
		d := geometry.Length(geometry.Slice(line, pr))
		if d < 0 || d > total+1e-6 {
			t.Errorf("anchor %d: arc distance %f outside [0, %f]", i, d, total)
		}
	}
}

// TestAugmentSinkError tests that emit errors abort and propagate
func TestAugmentSinkError(t *testing.T) {
	tuple := Tuple{
		Streets: []Candidate{
			{ID: "S1", Encoded: encode(orb.Point{0, 0}, orb.Point{10, 0})},
		},
		Batch: []Address{
			{Number: "1", Lon: "1", Lat: "0.00001"},
		},
	}

	sentinel := &ErrNoMatch{Candidates: 0}
	err := newTestAugmenter().AugmentTuple(tuple, func(Anchor) error {
		return sentinel
	})
	if err != sentinel {
		t.Fatalf("Expected the sink error back, got %v", err)
	}
}
