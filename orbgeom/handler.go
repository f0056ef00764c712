// Package orbgeom builds github.com/paulmach/orb geometries out of decoded
// vector tile geometries.
package orbgeom

import (
	"errors"
	"math"

	"github.com/eak1mov/go-vtgeom/geometry"
	"github.com/eak1mov/go-vtgeom/tile"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

var ErrOrphanInnerRing = errors.New("vtgeom: inner ring without outer ring")

// AttributeValues holds the values of one geometric attribute, one entry per
// vertex. A nil entry means the vertex has no value.
type AttributeValues struct {
	ScalingIndex uint32
	Values       []*int64
}

// Handler collects a decoded geometry into orb geometries.
//
// Points are either kept in tile coordinates or, for a handler created by
// NewProjectedHandler, projected to WGS84 longitude/latitude.
type Handler struct {
	project bool
	tile    maptile.Tile
	extent  float64

	points      orb.MultiPoint
	lineStrings orb.MultiLineString
	polygons    orb.MultiPolygon

	lineString orb.LineString
	ring       orb.Ring

	// InvalidRings counts rings with zero area, which are dropped.
	InvalidRings int

	// Attributes maps attribute key indexes to their per-vertex values.
	Attributes map[uint32]*AttributeValues
}

var (
	_ geometry.ResultHandler[orb.Point, orb.Geometry] = (*Handler)(nil)
	_ geometry.AttributeHandler                       = (*Handler)(nil)
)

// NewHandler returns a handler keeping tile coordinates.
func NewHandler() *Handler {
	return &Handler{}
}

// NewProjectedHandler returns a handler projecting coordinates of the given
// tile with the given extent to WGS84.
func NewProjectedHandler(tileID tile.ID, extent uint32) *Handler {
	return &Handler{
		project: true,
		tile:    maptile.New(tileID.X, tileID.Y, maptile.Zoom(tileID.Z)),
		extent:  float64(extent),
	}
}

func (h *Handler) Convert(p geometry.UnscaledPoint) orb.Point {
	if !h.project {
		return orb.Point{float64(p.X), float64(p.Y)}
	}

	n := float64(uint64(1) << h.tile.Z)
	x := (float64(h.tile.X) + float64(p.X)/h.extent) / n
	y := (float64(h.tile.Y) + float64(p.Y)/h.extent) / n

	lon := 360*x - 180
	lat := 180 / math.Pi * math.Atan(math.Sinh(math.Pi*(1-2*y)))
	return orb.Point{lon, lat}
}

func (h *Handler) PointsBegin(count uint32) error {
	h.points = make(orb.MultiPoint, 0, count)
	return nil
}

func (h *Handler) PointsPoint(p orb.Point) error {
	h.points = append(h.points, p)
	return nil
}

func (h *Handler) PointsEnd() error {
	return nil
}

func (h *Handler) LineStringBegin(count uint32) error {
	h.lineString = make(orb.LineString, 0, count)
	return nil
}

func (h *Handler) LineStringPoint(p orb.Point) error {
	h.lineString = append(h.lineString, p)
	return nil
}

func (h *Handler) LineStringEnd() error {
	h.lineStrings = append(h.lineStrings, h.lineString)
	h.lineString = nil
	return nil
}

func (h *Handler) RingBegin(count uint32) error {
	h.ring = make(orb.Ring, 0, count)
	return nil
}

func (h *Handler) RingPoint(p orb.Point) error {
	h.ring = append(h.ring, p)
	return nil
}

func (h *Handler) RingEnd(ringType geometry.RingType) error {
	ring := h.ring
	h.ring = nil

	switch ringType {
	case geometry.RingOuter:
		h.polygons = append(h.polygons, orb.Polygon{ring})
	case geometry.RingInner:
		if len(h.polygons) == 0 {
			return ErrOrphanInnerRing
		}
		last := len(h.polygons) - 1
		h.polygons[last] = append(h.polygons[last], ring)
	default:
		h.InvalidRings++
	}
	return nil
}

func (h *Handler) attribute(keyIndex uint32) *AttributeValues {
	if h.Attributes == nil {
		h.Attributes = make(map[uint32]*AttributeValues)
	}
	values, ok := h.Attributes[keyIndex]
	if !ok {
		values = &AttributeValues{}
		h.Attributes[keyIndex] = values
	}
	return values
}

func (h *Handler) PointAttribute(keyIndex, scalingIndex uint32, value int64) error {
	values := h.attribute(keyIndex)
	values.ScalingIndex = scalingIndex
	values.Values = append(values.Values, &value)
	return nil
}

func (h *Handler) PointNullAttribute(keyIndex uint32) error {
	values := h.attribute(keyIndex)
	values.Values = append(values.Values, nil)
	return nil
}

// Result returns the collected geometry: a single point, linestring or
// polygon when the geometry has exactly one part, the multi geometry
// otherwise. It returns nil if nothing was decoded.
func (h *Handler) Result() (orb.Geometry, error) {
	switch {
	case h.points != nil:
		if len(h.points) == 1 {
			return h.points[0], nil
		}
		return h.points, nil
	case len(h.lineStrings) == 1:
		return h.lineStrings[0], nil
	case len(h.lineStrings) > 1:
		return h.lineStrings, nil
	case len(h.polygons) == 1:
		return h.polygons[0], nil
	case len(h.polygons) > 1:
		return h.polygons, nil
	}
	return nil, nil
}

// Decode decodes g into an orb geometry using a handler keeping tile
// coordinates.
func Decode(g geometry.Geometry, opts ...geometry.Option) (orb.Geometry, error) {
	return geometry.DecodeResult[orb.Geometry, orb.Point](g, NewHandler(), opts...)
}
