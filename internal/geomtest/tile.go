package geomtest

import (
	"github.com/eak1mov/go-vtgeom/geometry"
	"google.golang.org/protobuf/encoding/protowire"
)

// Feature encodes a vector tile feature message.
func Feature(id uint64, geomType geometry.GeomType, commands []uint32) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, id)
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(geomType))
	b = protowire.AppendTag(b, 4, protowire.BytesType)
	return protowire.AppendBytes(b, PackVarints(commands))
}

// Layer encodes a vector tile layer message.
func Layer(name string, extent uint32, features ...[]byte) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, name)
	for _, feature := range features {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, feature)
	}
	b = protowire.AppendTag(b, 5, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(extent))
}

// Tile encodes a vector tile message.
func Tile(layers ...[]byte) []byte {
	var b []byte
	for _, layer := range layers {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, layer)
	}
	return b
}
