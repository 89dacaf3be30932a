package main

import (
	"fmt"
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/beetlebugorg/interpolate/pkg/interpolate"
)

// countSink counts anchors by source.
type countSink struct {
	observed int
	vertex   int
}

func (c *countSink) WriteAnchor(a interpolate.Anchor) error {
	if a.Source == interpolate.SourceVertex {
		c.vertex++
	} else {
		c.observed++
	}
	return nil
}

func (c *countSink) EndTuple() error { return nil }

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})

	// Build the street corpus once; it is read-only afterwards
	corpus := interpolate.BuildCorpus([]interpolate.StreetDefinition{
		{
			ID:    "way/1",
			Names: []string{"Müllerstraße", "Muellerstrasse"},
			Line: interpolate.EncodeLine([][2]float64{
				{13.340, 52.545},
				{13.345, 52.548},
				{13.350, 52.551},
			}),
		},
		{
			ID:    "way/2",
			Names: []string{"Seestraße"},
			Line: interpolate.EncodeLine([][2]float64{
				{13.330, 52.543},
				{13.344, 52.547},
			}),
		},
	}, logger)

	fmt.Printf("Corpus: %d streets\n", corpus.Len())

	// Resolve a name variant to candidate streets; the lookup is accent-
	// and case-insensitive with a fuzzy fallback
	candidates := corpus.Candidates("mullerstrasse")
	fmt.Printf("Candidates for 'mullerstrasse': %d\n", len(candidates))

	tuple := interpolate.LookupTuple{
		Streets: candidates,
		Batch: []interpolate.AddressRecord{
			{Number: "5", Lon: "13.341", Lat: "52.5455"},
			{Number: "7", Lon: "13.349", Lat: "52.5512"},
			{Number: "6", Lon: "13.341", Lat: "52.5450"},
			{Number: "8", Lon: "13.349", Lat: "52.5508"},
		},
	}

	sink := &countSink{}
	if err := interpolate.New(interpolate.WithLogger(logger)).Augment(tuple, sink); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Anchors: %d observed, %d vertex\n", sink.observed, sink.vertex)
}
