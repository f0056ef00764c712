package tile

import (
	"math/bits"

	"github.com/google/hilbert"
)

// Tile codes number every tile of a tileset: zoom levels in increasing order,
// the tiles of one zoom level along the hilbert curve. Tiles close to each
// other on the map get close codes.

// levelStart returns the code of the first tile of zoom level z, which is the
// number of tiles on all lower levels (1 + 4 + ... + 4^(z-1)).
func levelStart(z uint32) uint64 {
	return (uint64(1)<<(2*z) - 1) / 3
}

// levelOf returns the zoom level of a tile code.
func levelOf(tileCode uint64) uint32 {
	return uint32(bits.Len64(3*tileCode+1)-1) / 2
}

func curve(z uint32) *hilbert.Hilbert {
	// side lengths are powers of two, which NewHilbert always accepts
	h, _ := hilbert.NewHilbert(1 << z)
	return h
}

// EncodeID returns the tile code of tileID.
func EncodeID(tileID ID) uint64 {
	d, _ := curve(tileID.Z).MapInverse(int(tileID.X), int(tileID.Y))
	return levelStart(tileID.Z) + uint64(d)
}

// DecodeID returns the tile with the given tile code.
func DecodeID(tileCode uint64) ID {
	z := levelOf(tileCode)
	x, y, _ := curve(z).Map(int(tileCode - levelStart(z)))
	return ID{X: uint32(x), Y: uint32(y), Z: z}
}
