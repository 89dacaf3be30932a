// Package street maintains the read-only street corpus: decoded street
// geometry behind a spatial index, and a name dictionary for resolving
// street-name variants to candidate streets.
package street

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog"

	"github.com/beetlebugorg/interpolate/internal/geometry"
)

// Street is one street in the corpus: a stable external id, its name
// variants, and decoded deduplicated geometry. Streets are immutable once
// the corpus is built.
type Street struct {
	ID    string
	Names []string
	Line  orb.LineString
}

// Definition describes a street before the corpus is built.
type Definition struct {
	ID      string
	Names   []string
	Encoded string
}

// Corpus is an immutable collection of streets with a spatial index and a
// name dictionary. Build it once with Builder; afterwards it is safe for
// concurrent readers without locking.
type Corpus struct {
	streets []*Street
	index   *spatialIndex
	names   *Dictionary
}

// Builder accumulates street definitions and assembles a Corpus.
type Builder struct {
	defs []Definition
	log  zerolog.Logger
}

// NewBuilder creates a corpus builder. The logger receives one diagnostic
// per street dropped during Build.
func NewBuilder(log zerolog.Logger) *Builder {
	return &Builder{log: log}
}

// Add queues a street definition for the next Build.
func (b *Builder) Add(def Definition) {
	b.defs = append(b.defs, def)
}

// Build decodes every queued definition and assembles the corpus.
//
// Streets whose polyline fails to decode, or whose geometry collapses
// below two vertices after dedup, are dropped with a diagnostic; a bad
// street never fails the build.
func (b *Builder) Build() *Corpus {
	corpus := &Corpus{
		names: NewDictionary(),
	}

	for _, def := range b.defs {
		line, err := geometry.DecodeLine(def.Encoded)
		if err != nil {
			b.log.Warn().Err(err).Str("street", def.ID).Msg("dropping street: undecodable geometry")
			continue
		}
		if len(line) < 2 {
			b.log.Warn().Str("street", def.ID).Msg("dropping street: degenerate geometry")
			continue
		}

		st := &Street{ID: def.ID, Names: def.Names, Line: line}
		corpus.streets = append(corpus.streets, st)
		for _, name := range def.Names {
			corpus.names.Add(name, st)
		}
	}

	corpus.index = buildSpatialIndex(corpus.streets)
	return corpus
}

// Streets returns every street in the corpus, in insertion order.
func (c *Corpus) Streets() []*Street {
	return c.streets
}

// Len returns the number of streets in the corpus.
func (c *Corpus) Len() int {
	return len(c.streets)
}

// Near returns the streets whose bounding boxes intersect the given
// lon/lat bounding box, via the spatial index.
func (c *Corpus) Near(minLon, minLat, maxLon, maxLat float64) []*Street {
	return c.index.search(minLon, minLat, maxLon, maxLat)
}

// ByName returns the candidate streets matching a name variant, in corpus
// insertion order. Matching is case- and accent-insensitive, with a fuzzy
// fallback for small spelling differences.
func (c *Corpus) ByName(name string) []*Street {
	return c.names.Lookup(name)
}

// foldName lowercases and strips accents so that name variants compare on
// their letters alone.
func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(name)))
}
