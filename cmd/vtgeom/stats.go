package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"slices"

	"github.com/eak1mov/go-vtgeom/geometry"
	"github.com/eak1mov/go-vtgeom/mb"
	"github.com/eak1mov/go-vtgeom/mvt"
	"github.com/eak1mov/go-vtgeom/tile"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type statsCmd struct {
	inputPath string
	verbose   bool
}

func (c *statsCmd) Name() string     { return "stats" }
func (c *statsCmd) Synopsis() string { return "decode all geometries of a tileset and report statistics" }
func (c *statsCmd) Usage() string {
	return "vtgeom stats -i <path> [-v]\n"
}
func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input MBTiles path")
	f.BoolVar(&c.verbose, "v", false, "Report every tile with decoding errors")
}

// counter is a handler counting decoded parts.
type counter struct {
	points      int
	lineStrings int
	rings       [3]int // by geometry.RingType
}

func (c *counter) Convert(geometry.UnscaledPoint) struct{} {
	return struct{}{}
}

func (c *counter) PointsBegin(count uint32) error {
	c.points += int(count)
	return nil
}

func (c *counter) PointsPoint(struct{}) error {
	return nil
}

func (c *counter) PointsEnd() error {
	return nil
}

func (c *counter) LineStringBegin(uint32) error {
	c.lineStrings++
	return nil
}

func (c *counter) LineStringPoint(struct{}) error {
	return nil
}

func (c *counter) LineStringEnd() error {
	return nil
}

func (c *counter) RingBegin(uint32) error {
	return nil
}

func (c *counter) RingPoint(struct{}) error {
	return nil
}

func (c *counter) RingEnd(ringType geometry.RingType) error {
	c.rings[ringType]++
	return nil
}

func (c *counter) add(other counter) {
	c.points += other.points
	c.lineStrings += other.lineStrings
	for i := range c.rings {
		c.rings[i] += other.rings[i]
	}
}

type tileReport struct {
	features int
	errors   []error
}

type stats struct {
	counter
	name     string
	tiles    int
	features map[geometry.GeomType]int
	errors   map[string]int

	// reports holds the tiles with decoding errors by tile code.
	reports map[uint64]*tileReport
}

func newStats() *stats {
	return &stats{
		features: make(map[geometry.GeomType]int),
		errors:   make(map[string]int),
		reports:  make(map[uint64]*tileReport),
	}
}

// decode counts the parts of g. Nothing is counted if g fails to decode.
func (s *stats) decode(g geometry.Geometry) error {
	var c counter
	if err := geometry.DecodeGeometry[struct{}](g, &c); err != nil {
		return err
	}
	s.counter.add(c)
	return nil
}

func (s *stats) addTile(tileID tile.ID, tileData []byte) error {
	s.tiles++

	layers, err := mvt.ReadLayers(tileData)
	if err != nil {
		return fmt.Errorf("tile %v: %w", tileID, err)
	}

	report := &tileReport{}
	for _, layer := range layers {
		for _, feature := range layer.Features {
			report.features++
			s.features[feature.Type]++

			g, err := feature.Geometry()
			if err == nil {
				err = s.decode(g)
			}
			if err != nil {
				report.errors = append(report.errors, fmt.Errorf("layer %q feature %d: %w", layer.Name, feature.ID, err))
				s.errors[errorKind(err)]++
			}
		}
	}

	if len(report.errors) > 0 {
		s.reports[tile.EncodeID(tileID)] = report
	}
	return nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, geometry.ErrGeometry):
		return "geometry"
	case errors.Is(err, geometry.ErrFormat):
		return "format"
	case errors.Is(err, mvt.ErrInvalidTile):
		return "tile"
	}
	return "other"
}

// print writes the totals and, if verbose, the tiles with errors in tile
// code order.
func (s *stats) print(w io.Writer, verbose bool) {
	if s.name != "" {
		fmt.Fprintf(w, "tileset:     %s\n", s.name)
	}
	fmt.Fprintf(w, "tiles:       %d\n", s.tiles)
	for _, geomType := range []geometry.GeomType{geometry.GeomPoint, geometry.GeomLineString, geometry.GeomPolygon, geometry.GeomUnknown} {
		fmt.Fprintf(w, "%-12s %d features\n", geomType.String()+":", s.features[geomType])
	}
	fmt.Fprintf(w, "points:      %d\n", s.points)
	fmt.Fprintf(w, "linestrings: %d\n", s.lineStrings)
	fmt.Fprintf(w, "rings:       %d outer, %d inner, %d invalid\n",
		s.rings[geometry.RingOuter], s.rings[geometry.RingInner], s.rings[geometry.RingInvalid])
	for _, kind := range slices.Sorted(maps.Keys(s.errors)) {
		fmt.Fprintf(w, "%s errors: %d\n", kind, s.errors[kind])
	}

	if !verbose {
		return
	}

	for _, tileCode := range slices.Sorted(maps.Keys(s.reports)) {
		report := s.reports[tileCode]
		fmt.Fprintf(w, "tile %v: %d features, %d errors\n", tile.DecodeID(tileCode), report.features, len(report.errors))
		for _, err := range report.errors {
			fmt.Fprintf(w, "  %v\n", err)
		}
	}
}

func (c *statsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" {
		log.Println("missing input path")
		return subcommands.ExitUsageError
	}

	reader, err := mb.NewReader(c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer reader.Close()

	s := newStats()

	metadata, err := reader.ReadMetadata()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if format := metadata["format"]; format != "" && format != "pbf" {
		log.Printf("tileset format is %q, expected pbf", format)
	}
	s.name = metadata["name"]

	bar := progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
	err = reader.VisitTiles(func(tileID tile.ID, tileData []byte) error {
		if err := s.addTile(tileID, tileData); err != nil {
			log.Println(err)
		}
		bar.Add(1)
		return nil
	})
	bar.Finish()
	fmt.Println()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	s.print(os.Stdout, c.verbose)
	return subcommands.ExitSuccess
}
