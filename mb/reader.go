// Package mb provides a tile source reading tiles from MBTiles files.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package mb

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eak1mov/go-vtgeom/tile"
)

// Reader implements tile.Reader and tile.Visitor interfaces for MBTiles format.
type Reader struct {
	db     *sql.DB
	stmt   *sql.Stmt
	logger *slog.Logger
}

var (
	_ tile.Reader  = (*Reader)(nil)
	_ tile.Visitor = (*Reader)(nil)
)

type readerConfig struct {
	Logger *slog.Logger
}

type ReaderOption func(*readerConfig)

func WithLogger(logger *slog.Logger) ReaderOption {
	return func(c *readerConfig) { c.Logger = logger }
}

// NewReader opens the given MBTiles file read-only.
//
// The returned Reader must be closed after use to release database resources.
func NewReader(filePath string, opts ...ReaderOption) (*Reader, error) {
	config := readerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", filePath))
	if err != nil {
		return nil, err
	}

	stmt, err := db.Prepare("SELECT tile_data FROM tiles WHERE zoom_level = ? AND tile_column = ? AND tile_row = ?")
	if err != nil {
		db.Close()
		return nil, err
	}

	config.Logger.Debug("vtgeom: opened mbtiles", "path", filePath)
	return &Reader{db: db, stmt: stmt, logger: config.Logger}, nil
}

func (r *Reader) Close() error {
	return errors.Join(r.stmt.Close(), r.db.Close())
}

// ReadMetadata returns the name/value pairs of the metadata table.
func (r *Reader) ReadMetadata() (map[string]string, error) {
	metadata := make(map[string]string)

	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metadata[name] = value
	}

	return metadata, rows.Err()
}

func (r *Reader) ReadTile(tileID tile.ID) ([]byte, error) {
	if !tileID.Valid() {
		return nil, fmt.Errorf("invalid tile id %v", tileID)
	}

	var tileData []byte
	err := r.stmt.QueryRow(tileID.Z, tileID.X, flipY(tileID.Y, tileID.Z)).Scan(&tileData)
	if errors.Is(err, sql.ErrNoRows) {
		return make([]byte, 0), nil
	}
	if err != nil {
		return nil, err
	}

	return tileData, nil
}

func (r *Reader) VisitTiles(visitor func(tile.ID, []byte) error) error {
	rows, err := r.db.Query("SELECT zoom_level, tile_column, tile_row, tile_data FROM tiles")
	if err != nil {
		return err
	}
	defer rows.Close()

	visited := 0
	for rows.Next() {
		var x, y, z uint32
		var tileData []byte

		if err := rows.Scan(&z, &x, &y, &tileData); err != nil {
			return err
		}

		tileID := tile.ID{X: x, Y: flipY(y, z), Z: z}
		if !tileID.Valid() {
			r.logger.Warn("vtgeom: skipping tile with invalid coordinates", "z", z, "x", x, "row", y)
			continue
		}

		if err := visitor(tileID, tileData); err != nil {
			return err
		}
		visited++
	}

	r.logger.Debug("vtgeom: visited tiles", "count", visited)
	return rows.Err()
}

// flipY converts between the TMS row of MBTiles and the XYZ row.
func flipY(y, z uint32) uint32 {
	return (1 << z) - 1 - y
}
