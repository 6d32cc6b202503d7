// Package tile provides common tile interfaces and types.
package tile

// ID represents tile coordinates in the XYZ scheme (Tiled web map).
type ID struct {
	X uint32
	Y uint32
	Z uint32
}

func (t ID) Valid() bool {
	return t.Z < 32 && t.X < (1<<t.Z) && t.Y < (1<<t.Z)
}

// FlipY converts a row between the XYZ (top-left origin) and TMS (bottom-left origin)
// schemes. The conversion is its own inverse.
func FlipY(y, z uint32) uint32 {
	return (1 << z) - 1 - y
}

// Writer defines an interface for writing tiles to a tileset.
type Writer interface {
	// WriteTile writes a single tile to the tileset.
	// Writing the same tile twice replaces the previous data.
	WriteTile(tileID ID, tileData []byte) error

	// Finalize completes the writing process: flushes buffers and commits pending data.
	// It must be called before closing the Writer.
	Finalize() error
}

type Reader interface {
	// ReadTile reads a single tile from the tileset.
	// If the tile does not exist, it returns an empty slice with no error.
	ReadTile(tileID ID) ([]byte, error)
}

type Visitor interface {
	// VisitTiles visits all tiles in the tileset, calling the visitor for each.
	// It returns an error if visiting fails.
	// Order of tiles is implementation-defined.
	VisitTiles(visitor func(ID, []byte) error) error
}
