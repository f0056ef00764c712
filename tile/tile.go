// Package tile provides tile coordinates and tile source interfaces.
package tile

import (
	"errors"
	"fmt"
	"iter"
)

// ID represents tile coordinates in the XYZ scheme (Tiled web map).
type ID struct {
	X uint32
	Y uint32
	Z uint32
}

func (t ID) Valid() bool {
	return t.Z < 32 && t.X < (1<<t.Z) && t.Y < (1<<t.Z)
}

func (t ID) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// ParseID parses tile coordinates in "z/x/y" form.
func ParseID(s string) (ID, error) {
	var t ID
	if _, err := fmt.Sscanf(s, "%d/%d/%d", &t.Z, &t.X, &t.Y); err != nil {
		return ID{}, fmt.Errorf("invalid tile id %q: %w", s, err)
	}
	if !t.Valid() {
		return ID{}, fmt.Errorf("invalid tile id %q: out of range", s)
	}
	return t, nil
}

type Reader interface {
	// ReadTile reads a single tile from the tileset.
	// If the tile does not exist, it returns an empty slice with no error.
	ReadTile(tileID ID) ([]byte, error)
}

type Visitor interface {
	// VisitTiles visits all tiles in the tileset, calling the visitor for each.
	// Order of tiles is implementation-defined.
	VisitTiles(visitor func(ID, []byte) error) error
}

var errVisitCancelled = errors.New("visit cancelled")

// IterTiles returns an iterator over all tiles in the tileset.
// Iteration panics on errors returned by the tileset.
func IterTiles(r Visitor) iter.Seq2[ID, []byte] {
	return func(yield func(ID, []byte) bool) {
		err := r.VisitTiles(func(tileID ID, tileData []byte) error {
			if !yield(tileID, tileData) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			panic(err)
		}
	}
}
