// Package geometry decodes the geometry encoding of vector tiles.
//
// A geometry is a stream of command integers (MoveTo, LineTo, ClosePath) each
// followed by zigzag encoded coordinate deltas. A geometry may additionally
// carry a stream of elevation deltas (making it three dimensional) and a
// stream of geometric attributes, which are per-vertex scalar values.
//
// Decoding is driven by the caller supplied Handler, which receives one
// callback per ring/line/point event in stream order.
package geometry

import "fmt"

// Point is a tile-local coordinate.
type Point struct {
	X int32
	Y int32
}

// UnscaledPoint is the running absolute position of the decoder before any
// caller side transformation. Z is zero for two dimensional geometries.
type UnscaledPoint struct {
	X int32
	Y int32
	Z int64
}

func (p UnscaledPoint) Point() Point {
	return Point{X: p.X, Y: p.Y}
}

// GeomType is the geometry type tag of an encoded feature.
type GeomType uint8

const (
	GeomUnknown GeomType = iota
	GeomPoint
	GeomLineString
	GeomPolygon
)

func (t GeomType) String() string {
	switch t {
	case GeomUnknown:
		return "unknown"
	case GeomPoint:
		return "point"
	case GeomLineString:
		return "linestring"
	case GeomPolygon:
		return "polygon"
	}
	return fmt.Sprintf("GeomType(%d)", uint8(t))
}

// RingType classifies a polygon ring by the sign of its area.
type RingType uint8

const (
	RingOuter RingType = iota
	RingInner
	RingInvalid // zero area
)

func (t RingType) String() string {
	switch t {
	case RingOuter:
		return "outer"
	case RingInner:
		return "inner"
	case RingInvalid:
		return "invalid"
	}
	return fmt.Sprintf("RingType(%d)", uint8(t))
}

type CommandID uint32

const (
	CommandMoveTo    CommandID = 1
	CommandLineTo    CommandID = 2
	CommandClosePath CommandID = 7
)

// MaxCommandCount is the largest count that fits into a command integer.
const MaxCommandCount = 1<<29 - 1

// CommandInteger packs a command id and its repeat count.
func CommandInteger(id CommandID, count uint32) uint32 {
	return uint32(id)&0x7 | count<<3
}

func CommandIDOf(value uint32) CommandID {
	return CommandID(value & 0x7)
}

func CommandCountOf(value uint32) uint32 {
	return value >> 3
}
