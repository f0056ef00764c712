package mvt

import (
	"bytes"
	"compress/gzip"
	"fmt"
)

// gzipMagic starts every gzip stream. It cannot start an uncompressed tile:
// 0x1f would be a field with the invalid wire type 7.
var gzipMagic = []byte{0x1f, 0x8b}

// uncompressed returns data gunzipped if it carries the gzip magic, as is
// otherwise. MBTiles stores vector tiles gzipped.
func uncompressed(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, gzipMagic) {
		return data, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTile, err)
	}

	var tile bytes.Buffer
	if _, err := tile.ReadFrom(zr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTile, err)
	}
	if err := zr.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTile, err)
	}
	return tile.Bytes(), nil
}
