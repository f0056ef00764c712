// Package geomtest provides an encoder and a recording handler for geometry
// tests.
package geomtest

import (
	"github.com/eak1mov/go-vtgeom/geometry"
	"google.golang.org/protobuf/encoding/protowire"
)

func ZigZag32(value int32) uint32 {
	return uint32(protowire.EncodeZigZag(int64(value)))
}

// Encoder builds a command stream out of absolute points.
type Encoder struct {
	cursor   geometry.Point
	commands []uint32
}

func (e *Encoder) MoveTo(points ...geometry.Point) *Encoder {
	return e.command(geometry.CommandMoveTo, points)
}

func (e *Encoder) LineTo(points ...geometry.Point) *Encoder {
	return e.command(geometry.CommandLineTo, points)
}

func (e *Encoder) ClosePath() *Encoder {
	e.commands = append(e.commands, geometry.CommandInteger(geometry.CommandClosePath, 1))
	return e
}

// Raw appends integers as they are.
func (e *Encoder) Raw(values ...uint32) *Encoder {
	e.commands = append(e.commands, values...)
	return e
}

func (e *Encoder) Commands() []uint32 {
	return e.commands
}

func (e *Encoder) command(id geometry.CommandID, points []geometry.Point) *Encoder {
	e.commands = append(e.commands, geometry.CommandInteger(id, uint32(len(points))))
	for _, p := range points {
		e.commands = append(e.commands, ZigZag32(p.X-e.cursor.X), ZigZag32(p.Y-e.cursor.Y))
		e.cursor = p
	}
	return e
}

// Elevations encodes absolute elevations as deltas.
func Elevations(values ...int64) []int64 {
	result := make([]int64, 0, len(values))
	last := int64(0)
	for _, v := range values {
		result = append(result, v-last)
		last = v
	}
	return result
}

// Attribute encodes one number list attribute. A nil value is encoded as
// absent.
func Attribute(keyIndex, scalingIndex uint32, values ...*int64) []uint64 {
	result := []uint64{uint64(keyIndex)<<4 | 10, uint64(len(values)), uint64(scalingIndex)}
	last := int64(0)
	for _, v := range values {
		if v == nil {
			result = append(result, 0)
			continue
		}
		result = append(result, protowire.EncodeZigZag(*v-last)+1)
		last = *v
	}
	return result
}

func Value(v int64) *int64 {
	return &v
}

// PackVarints encodes values as a packed repeated field body.
func PackVarints[T uint32 | uint64](values []T) []byte {
	var buffer []byte
	for _, v := range values {
		buffer = protowire.AppendVarint(buffer, uint64(v))
	}
	return buffer
}
