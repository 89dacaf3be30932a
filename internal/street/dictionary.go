package street

import (
	"github.com/xrash/smetrics"
)

// fuzzyThreshold is the minimum Jaro-Winkler similarity for a folded name
// to count as a match when no exact entry exists.
const fuzzyThreshold = 0.92

// Dictionary maps folded street names to the streets carrying them.
//
// Lookup tries an exact match on the folded form first and falls back to a
// Jaro-Winkler scan over all known names, so small spelling differences
// ("Beacon Streat" for "Beacon Street") still resolve. Streets are returned
// in insertion order, keeping candidate indexes reproducible run to run.
type Dictionary struct {
	entries map[string][]*Street
	keys    []string
}

// NewDictionary creates an empty name dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{entries: make(map[string][]*Street)}
}

// Add registers one name variant for a street. Variants folding to the
// same key register the street once.
func (d *Dictionary) Add(name string, st *Street) {
	key := foldName(name)
	if key == "" {
		return
	}
	entry, ok := d.entries[key]
	if !ok {
		d.keys = append(d.keys, key)
	}
	for _, existing := range entry {
		if existing == st {
			return
		}
	}
	d.entries[key] = append(entry, st)
}

// Lookup returns the streets registered under a name, exact folded match
// first, fuzzy fallback second. Returns nil when nothing clears the
// similarity threshold.
func (d *Dictionary) Lookup(name string) []*Street {
	key := foldName(name)
	if key == "" {
		return nil
	}
	if streets, ok := d.entries[key]; ok {
		return streets
	}

	bestScore := fuzzyThreshold
	bestKey := ""
	for _, candidate := range d.keys {
		score := smetrics.JaroWinkler(key, candidate, 0.7, 4)
		if score > bestScore {
			bestScore = score
			bestKey = candidate
		}
	}
	if bestKey == "" {
		return nil
	}
	return d.entries[bestKey]
}
