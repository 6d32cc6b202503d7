package xyz

import (
	"os"
	"path/filepath"

	"github.com/ganeshsahu2020/EcoListing/tile"
)

// Writer implements tile.Writer interface for tiles in XYZ format.
// It exports any tile.Visitor (e.g. an mb.Reader) back into a tree that Reader,
// and so the packer, can consume.
type Writer struct {
	reader *Reader
}

// NewWriter creates a new Writer for the tile tree at rootDir with the given extension.
func NewWriter(rootDir, ext string) (*Writer, error) {
	reader, err := NewReader(rootDir, ext)
	if err != nil {
		return nil, err
	}
	return &Writer{reader}, nil
}

func (w *Writer) WriteTile(tileID tile.ID, tileData []byte) error {
	filePath := w.reader.tilePath(tileID)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}

	return os.WriteFile(filePath, tileData, 0644)
}

func (w *Writer) Finalize() error {
	return nil
}
