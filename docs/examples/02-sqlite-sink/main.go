package main

import (
	"fmt"
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/beetlebugorg/interpolate/pkg/interpolate"
)

func main() {
	// Persist anchors into a SQLite address table
	st, err := interpolate.OpenStore("addresses.db")
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	tuples := []interpolate.LookupTuple{
		{
			Streets: []interpolate.CandidateStreet{
				{
					ID:   "way/100",
					Name: "Beacon Street",
					Line: interpolate.EncodeLine([][2]float64{
						{-71.100, 42.350},
						{-71.080, 42.352},
						{-71.060, 42.356},
					}),
				},
			},
			Batch: []interpolate.AddressRecord{
				{Number: "12", Lon: "-71.095", Lat: "42.3506"},
				{Number: "48", Lon: "-71.065", Lat: "42.3556"},
				{Number: "11", Lon: "-71.095", Lat: "42.3500"},
				{Number: "47", Lon: "-71.065", Lat: "42.3550"},
			},
		},
	}

	// Diagnostics for skipped records go to stderr
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	aug := interpolate.New(interpolate.WithLogger(logger))

	// Process with progress reporting; each tuple commits atomically
	errs := interpolate.Process(aug, tuples, st, interpolate.ProcessOptions{
		SkipErrors: true,
		Progress: func(done, total int) {
			fmt.Printf("\rProcessing: %d/%d", done, total)
		},
	})
	fmt.Println()

	if len(errs) > 0 {
		fmt.Printf("Skipped %d tuples due to errors\n", len(errs))
	}

	n, err := st.Count("")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Persisted %d anchors\n", n)
}
