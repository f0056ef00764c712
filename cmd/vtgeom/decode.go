package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/eak1mov/go-vtgeom/geometry"
	"github.com/eak1mov/go-vtgeom/mb"
	"github.com/eak1mov/go-vtgeom/mvt"
	"github.com/eak1mov/go-vtgeom/orbgeom"
	"github.com/eak1mov/go-vtgeom/tile"
	"github.com/google/subcommands"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type decodeCmd struct {
	geomType      string
	elevations    string
	attributes    string
	inputPath     string
	layer         string
	feature       int
	format        string
	tileID        string
	extent        uint
	maxCount      int
	maxAttributes int
}

func (c *decodeCmd) Name() string     { return "decode" }
func (c *decodeCmd) Synopsis() string { return "decode a single geometry command stream" }
func (c *decodeCmd) Usage() string {
	return `vtgeom decode -type <type> [-elev <ints>] [-attr <ints>] [-format events|geojson] <ints>...
vtgeom decode -i <path> -tile <z/x/y> -layer <name> [-feature <n>] [-format events|geojson]
`
}
func (c *decodeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.geomType, "type", "", "Geometry type (point, linestring, polygon)")
	f.StringVar(&c.elevations, "elev", "", "Elevation deltas, comma separated")
	f.StringVar(&c.attributes, "attr", "", "Geometric attribute stream, comma separated")
	f.StringVar(&c.inputPath, "i", "", "Input MBTiles path, decodes a feature of the tile given by -tile")
	f.StringVar(&c.layer, "layer", "", "Layer name (with -i)")
	f.IntVar(&c.feature, "feature", 0, "Feature index within the layer (with -i)")
	f.StringVar(&c.format, "format", "events", "Output format (events, geojson)")
	f.StringVar(&c.tileID, "tile", "", "Tile z/x/y, projects geojson output to WGS84")
	f.UintVar(&c.extent, "extent", 4096, "Tile extent (layer extent with -i)")
	f.IntVar(&c.maxCount, "max-count", -1, "Maximum command count (default: half the stream length)")
	f.IntVar(&c.maxAttributes, "max-attributes", geometry.DefaultMaxAttributes, "Maximum number of geometric attributes")
}

func (c *decodeCmd) validate() error {
	if c.maxCount > geometry.MaxCommandCount {
		return fmt.Errorf("max count %d exceeds %d", c.maxCount, geometry.MaxCommandCount)
	}
	if c.inputPath != "" && c.tileID == "" {
		return fmt.Errorf("-i requires -tile")
	}
	if c.format != "events" && c.format != "geojson" {
		return fmt.Errorf("invalid output format: %q", c.format)
	}
	return nil
}

// tileGeometry reads the geometry of the selected feature from the MBTiles
// file. It also returns the extent of the feature's layer.
func (c *decodeCmd) tileGeometry() (geometry.Geometry, uint32, error) {
	tileID, err := tile.ParseID(c.tileID)
	if err != nil {
		return geometry.Geometry{}, 0, err
	}

	reader, err := mb.NewReader(c.inputPath)
	if err != nil {
		return geometry.Geometry{}, 0, err
	}
	defer reader.Close()

	tileData, err := reader.ReadTile(tileID)
	if err != nil {
		return geometry.Geometry{}, 0, err
	}
	if len(tileData) == 0 {
		return geometry.Geometry{}, 0, fmt.Errorf("tile %v not found", tileID)
	}

	layers, err := mvt.ReadLayers(tileData)
	if err != nil {
		return geometry.Geometry{}, 0, err
	}
	for _, layer := range layers {
		if layer.Name != c.layer {
			continue
		}
		if c.feature < 0 || c.feature >= len(layer.Features) {
			return geometry.Geometry{}, 0, fmt.Errorf("feature %d out of range, layer %q has %d features",
				c.feature, layer.Name, len(layer.Features))
		}
		g, err := layer.Features[c.feature].Geometry()
		return g, layer.Extent, err
	}
	return geometry.Geometry{}, 0, fmt.Errorf("layer %q not found in tile %v", c.layer, tileID)
}

func (c *decodeCmd) geometry(args []string) (geometry.Geometry, error) {
	geomType, err := parseGeomType(c.geomType)
	if err != nil {
		return geometry.Geometry{}, err
	}
	commands, err := parseIntegers[uint32](args...)
	if err != nil {
		return geometry.Geometry{}, err
	}
	elevations, err := parseIntegers[int64](c.elevations)
	if err != nil {
		return geometry.Geometry{}, err
	}
	attributes, err := parseIntegers[uint64](c.attributes)
	if err != nil {
		return geometry.Geometry{}, err
	}
	return geometry.Geometry{
		Type:       geomType,
		Commands:   geometry.Slice(commands),
		Elevations: geometry.Slice(elevations),
		Attributes: geometry.Slice(attributes),
	}, nil
}

func (c *decodeCmd) options() []geometry.Option {
	opts := []geometry.Option{geometry.WithMaxAttributes(c.maxAttributes)}
	if c.maxCount >= 0 {
		opts = append(opts, geometry.WithMaxCount(uint32(c.maxCount)))
	}
	return opts
}

func (c *decodeCmd) writeGeoJSON(w io.Writer, g geometry.Geometry, extent uint32) error {
	handler := orbgeom.NewHandler()
	if c.tileID != "" {
		tileID, err := tile.ParseID(c.tileID)
		if err != nil {
			return err
		}
		handler = orbgeom.NewProjectedHandler(tileID, extent)
	}

	result, err := geometry.DecodeResult[orb.Geometry, orb.Point](g, handler, c.options()...)
	if err != nil {
		return err
	}
	if result == nil {
		return fmt.Errorf("empty geometry")
	}

	feature := geojson.NewFeature(result)
	for keyIndex, values := range handler.Attributes {
		feature.Properties[strconv.FormatUint(uint64(keyIndex), 10)] = values.Values
	}
	if handler.InvalidRings > 0 {
		feature.Properties["invalid_rings"] = handler.InvalidRings
	}

	data, err := feature.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func (c *decodeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if err := c.validate(); err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	var g geometry.Geometry
	var extent uint32
	var err error
	if c.inputPath != "" {
		g, extent, err = c.tileGeometry()
		if err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
	} else {
		g, err = c.geometry(f.Args())
		if err != nil {
			log.Println(err)
			return subcommands.ExitUsageError
		}
		extent = uint32(c.extent)
	}

	if c.format == "geojson" {
		err = c.writeGeoJSON(os.Stdout, g, extent)
	} else {
		err = geometry.DecodeGeometry[geometry.UnscaledPoint](g, &printer{w: os.Stdout}, c.options()...)
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
