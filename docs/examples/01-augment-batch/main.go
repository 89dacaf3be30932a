package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/interpolate/pkg/interpolate"
)

// printSink writes every anchor to stdout.
type printSink struct{}

func (printSink) WriteAnchor(a interpolate.Anchor) error {
	if a.HasSide {
		fmt.Printf("%s %s %g side=%s proj=(%.7f,%.7f)\n",
			a.StreetID, a.Source, a.Housenumber, a.Side, a.ProjLon, a.ProjLat)
	} else {
		fmt.Printf("%s %s %.3f proj=(%.7f,%.7f)\n",
			a.StreetID, a.Source, a.Housenumber, a.ProjLon, a.ProjLat)
	}
	return nil
}

func (printSink) EndTuple() error {
	fmt.Println("-- tuple done")
	return nil
}

func main() {
	// One street, a handful of addresses along it
	tuple := interpolate.LookupTuple{
		Streets: []interpolate.CandidateStreet{
			{
				ID:   "way/4567",
				Name: "Main Street",
				Line: interpolate.EncodeLine([][2]float64{
					{-71.060, 42.350},
					{-71.055, 42.352},
					{-71.050, 42.355},
				}),
			},
		},
		Batch: []interpolate.AddressRecord{
			{Number: "1", Lon: "-71.0590", Lat: "42.3506"},
			{Number: "3", Lon: "-71.0520", Lat: "42.3546"},
			{Number: "2", Lon: "-71.0585", Lat: "42.3502"},
			{Number: "4", Lon: "-71.0525", Lat: "42.3542"},
		},
	}

	// Augment: observed anchors first, vertex anchors after
	aug := interpolate.New()
	if err := aug.Augment(tuple, printSink{}); err != nil {
		log.Fatal(err)
	}
}
