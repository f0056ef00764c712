// Package mvt reads layers and features of a Mapbox Vector Tile and exposes
// the feature geometries for decoding with package geometry.
//
// Only the fields needed to locate geometries are read: layer name, version,
// extent, keys and feature id, type and geometry. Feature tags and layer
// values are skipped.
package mvt

import (
	"errors"
	"fmt"

	"github.com/eak1mov/go-vtgeom/geometry"
	"google.golang.org/protobuf/encoding/protowire"
)

var ErrInvalidTile = errors.New("vtgeom: invalid vector tile")

const DefaultExtent = 4096

const (
	tileLayers = 3

	layerName     = 1
	layerFeatures = 2
	layerKeys     = 3
	layerExtent   = 5
	layerVersion  = 15

	featureID       = 1
	featureType     = 3
	featureGeometry = 4
)

type Layer struct {
	Version  uint32
	Name     string
	Extent   uint32
	Keys     []string
	Features []Feature
}

type Feature struct {
	ID    uint64
	HasID bool
	Type  geometry.GeomType

	geometry []byte // packed command integers
}

// Geometry returns the command stream of the feature.
func (f *Feature) Geometry() (geometry.Geometry, error) {
	commands, err := geometry.PackedUint32(f.geometry)
	if err != nil {
		return geometry.Geometry{}, fmt.Errorf("%w: %w", ErrInvalidTile, err)
	}
	return geometry.Geometry{Type: f.Type, Commands: commands}, nil
}

// ReadLayers reads all layers of a vector tile. Gzip compressed tiles are
// uncompressed first.
func ReadLayers(data []byte) ([]Layer, error) {
	data, err := uncompressed(data)
	if err != nil {
		return nil, err
	}

	var layers []Layer
	err = walk(data, func(num protowire.Number, payload []byte, _ uint64) error {
		if num != tileLayers || payload == nil {
			return nil
		}
		layer, err := readLayer(payload)
		if err != nil {
			return err
		}
		layers = append(layers, layer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return layers, nil
}

func readLayer(data []byte) (Layer, error) {
	layer := Layer{Version: 1, Extent: DefaultExtent}
	err := walk(data, func(num protowire.Number, payload []byte, value uint64) error {
		switch num {
		case layerName:
			layer.Name = string(payload)
		case layerFeatures:
			feature, err := readFeature(payload)
			if err != nil {
				return fmt.Errorf("layer %q: %w", layer.Name, err)
			}
			layer.Features = append(layer.Features, feature)
		case layerKeys:
			layer.Keys = append(layer.Keys, string(payload))
		case layerExtent:
			layer.Extent = uint32(value)
		case layerVersion:
			layer.Version = uint32(value)
		}
		return nil
	})
	return layer, err
}

func readFeature(data []byte) (Feature, error) {
	feature := Feature{}
	err := walk(data, func(num protowire.Number, payload []byte, value uint64) error {
		switch num {
		case featureID:
			feature.ID = value
			feature.HasID = true
		case featureType:
			if value <= uint64(geometry.GeomPolygon) {
				feature.Type = geometry.GeomType(value)
			}
		case featureGeometry:
			if payload != nil {
				feature.geometry = append(feature.geometry, payload...)
			} else {
				// unpacked repeated field
				feature.geometry = protowire.AppendVarint(feature.geometry, value)
			}
		}
		return nil
	})
	return feature, err
}

// walk calls fn for every varint and length-delimited field of a message.
// Length-delimited fields pass a non-nil payload, varint fields pass their
// value. Fields of other wire types are skipped.
func walk(data []byte, fn func(num protowire.Number, payload []byte, value uint64) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return parseError(n)
		}
		data = data[n:]

		switch typ {
		case protowire.VarintType:
			value, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return parseError(n)
			}
			data = data[n:]
			if err := fn(num, nil, value); err != nil {
				return err
			}
		case protowire.BytesType:
			payload, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return parseError(n)
			}
			data = data[n:]
			if payload == nil {
				payload = []byte{}
			}
			if err := fn(num, payload, 0); err != nil {
				return err
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return parseError(n)
			}
			data = data[n:]
		}
	}
	return nil
}

func parseError(n int) error {
	return fmt.Errorf("%w: %w", ErrInvalidTile, protowire.ParseError(n))
}
