package xyz

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ganeshsahu2020/EcoListing/tile"
)

var (
	_ tile.Reader  = (*Reader)(nil)
	_ tile.Visitor = (*Reader)(nil)
	_ tile.Writer  = (*Writer)(nil)
)

// Reader implements tile.Reader and tile.Visitor interfaces for tiles in XYZ format.
//
// VisitTiles silently skips entries that do not follow the "z/x/y.ext" layout:
// non-numeric directory names, files without the extension, non-numeric row names
// and coordinates outside of their zoom level. A row like "2/1/4.png" has no TMS
// counterpart at zoom 2, so it is dropped rather than flipped to a negative row.
type Reader struct {
	rootDir string
	ext     string
}

// NewReader creates a new Reader for the tile tree at rootDir (e.g. "/home/user/tiles")
// holding files with the given extension (e.g. ".png").
func NewReader(rootDir, ext string) (*Reader, error) {
	ext, err := normalizeExtension(ext)
	if err != nil {
		return nil, err
	}
	return &Reader{rootDir: rootDir, ext: ext}, nil
}

func (r *Reader) tilePath(tileID tile.ID) string {
	return filepath.Join(
		r.rootDir,
		strconv.FormatUint(uint64(tileID.Z), 10),
		strconv.FormatUint(uint64(tileID.X), 10),
		strconv.FormatUint(uint64(tileID.Y), 10)+r.ext,
	)
}

func (r *Reader) ReadTile(tileID tile.ID) ([]byte, error) {
	tileData, err := os.ReadFile(r.tilePath(tileID))
	if os.IsNotExist(err) {
		return make([]byte, 0), nil
	}
	if err != nil {
		return nil, err
	}
	return tileData, nil
}

// VisitTiles visits every valid tile of the tree. Each directory is processed in
// lexicographic name order, so the visiting order is reproducible.
func (r *Reader) VisitTiles(visitor func(tile.ID, []byte) error) error {
	zoomEntries, err := os.ReadDir(r.rootDir)
	if err != nil {
		return err
	}

	for _, zoomEntry := range zoomEntries {
		z, ok := ParseIndex(zoomEntry.Name())
		if !ok || !isDir(r.rootDir, zoomEntry) {
			continue
		}
		zoomDir := filepath.Join(r.rootDir, zoomEntry.Name())

		columnEntries, err := os.ReadDir(zoomDir)
		if err != nil {
			return err
		}

		for _, columnEntry := range columnEntries {
			x, ok := ParseIndex(columnEntry.Name())
			if !ok || !isDir(zoomDir, columnEntry) {
				continue
			}
			columnDir := filepath.Join(zoomDir, columnEntry.Name())

			if err := r.visitColumn(columnDir, z, x, visitor); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *Reader) visitColumn(columnDir string, z, x uint32, visitor func(tile.ID, []byte) error) error {
	fileEntries, err := os.ReadDir(columnDir)
	if err != nil {
		return err
	}

	for _, fileEntry := range fileEntries {
		y, ok := ParseTileName(fileEntry.Name(), r.ext)
		if !ok || isDir(columnDir, fileEntry) {
			continue
		}

		tileID := tile.ID{X: x, Y: y, Z: z}
		if !tileID.Valid() {
			continue
		}

		filePath := filepath.Join(columnDir, fileEntry.Name())
		tileData, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("read tile %v: %w", filePath, err)
		}

		if err := visitor(tileID, tileData); err != nil {
			return err
		}
	}

	return nil
}

// isDir reports whether entry is a directory, following symbolic links.
func isDir(parent string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(filepath.Join(parent, entry.Name()))
		return err == nil && info.IsDir()
	}
	return entry.IsDir()
}
