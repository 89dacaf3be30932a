package interpolate

import (
	"github.com/rs/zerolog"

	"github.com/beetlebugorg/interpolate/internal/geometry"
	"github.com/beetlebugorg/interpolate/internal/street"
)

// StreetDefinition describes one street to load into a Corpus: a stable
// id, its name variants, and encoded polyline geometry.
type StreetDefinition struct {
	ID    string
	Names []string
	Line  string
}

// Corpus is an immutable street corpus with a spatial index and a name
// dictionary. Build one with BuildCorpus; afterwards it is safe for
// concurrent readers.
//
// The corpus is the lookup side of the pipeline: batching code resolves a
// locality and street name to candidate streets here, then hands those
// candidates to an Augmenter as a LookupTuple.
type Corpus struct {
	internal *street.Corpus
}

// BuildCorpus decodes street definitions and assembles a corpus.
//
// Streets with undecodable or degenerate geometry are dropped with a
// diagnostic on the logger; a bad street never fails the build.
func BuildCorpus(defs []StreetDefinition, logger zerolog.Logger) *Corpus {
	builder := street.NewBuilder(logger)
	for _, def := range defs {
		builder.Add(street.Definition{ID: def.ID, Names: def.Names, Encoded: def.Line})
	}
	return &Corpus{internal: builder.Build()}
}

// Len returns the number of streets in the corpus.
func (c *Corpus) Len() int {
	return c.internal.Len()
}

// Candidates returns the streets matching a name variant as candidate
// streets ready for a LookupTuple, in corpus insertion order. Matching is
// case- and accent-insensitive with a fuzzy fallback.
func (c *Corpus) Candidates(name string) []CandidateStreet {
	return toCandidates(c.internal.ByName(name))
}

// CandidatesNear returns the streets whose bounding boxes intersect the
// given lon/lat box, as candidate streets ready for a LookupTuple.
func (c *Corpus) CandidatesNear(minLon, minLat, maxLon, maxLat float64) []CandidateStreet {
	return toCandidates(c.internal.Near(minLon, minLat, maxLon, maxLat))
}

func toCandidates(streets []*street.Street) []CandidateStreet {
	out := make([]CandidateStreet, len(streets))
	for i, st := range streets {
		name := ""
		if len(st.Names) > 0 {
			name = st.Names[0]
		}
		out[i] = CandidateStreet{
			ID:   st.ID,
			Name: name,
			Line: encodeStreetLine(st),
		}
	}
	return out
}

// encodeStreetLine re-encodes a corpus street's geometry into the polyline
// form lookup tuples carry.
func encodeStreetLine(st *street.Street) string {
	return geometry.EncodeLine(st.Line)
}
