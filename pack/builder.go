// Package pack builds a single MBTiles archive from a tile tree laid out as
// "root/{z}/{x}/{y}.png".
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package pack

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ganeshsahu2020/EcoListing/mb"
	"github.com/ganeshsahu2020/EcoListing/tile"
	"github.com/ganeshsahu2020/EcoListing/xyz"
)

// DefaultMetadata returns the fixed metadata written to every archive.
// MinZoom and MaxZoom are always computed by Build.
func DefaultMetadata() mb.Metadata {
	return mb.Metadata{
		Name:        "city_raster",
		Format:      "png",
		Type:        "baselayer",
		Version:     "1.1",
		Description: "Local raster packed to MBTiles",
		Bounds:      "-180,-85,180,85",
		Center:      "0,0,1",
	}
}

const DefaultExtension = ".png"

// Summary describes a finished archive.
type Summary struct {
	MinZoom   uint32
	MaxZoom   uint32
	Zooms     []uint32 // distinct zoom levels of stored tiles, ascending
	TileCount int      // number of tiles written, including replaced duplicates
}

// Builder converts tile trees into MBTiles archives.
// A Builder holds no state between Build calls.
type Builder struct {
	metadata       mb.Metadata
	extension      string
	batchSize      int
	computedBounds bool
	logger         *slog.Logger
	progress       func(tile.ID)
}

type Option func(*Builder)

// WithMetadata replaces the fixed metadata fields. MinZoom and MaxZoom are ignored.
func WithMetadata(metadata mb.Metadata) Option {
	return func(b *Builder) { b.metadata = metadata }
}

// WithExtension sets the tile file extension, ".png" by default.
func WithExtension(ext string) Option {
	return func(b *Builder) { b.extension = ext }
}

// WithBatchSize sets the number of tiles per write transaction (see mb.WithBatchSize).
func WithBatchSize(batchSize int) Option {
	return func(b *Builder) { b.batchSize = batchSize }
}

// WithComputedBounds derives the "bounds" and "center" metadata from the stored tiles
// instead of using the fixed values.
func WithComputedBounds(enabled bool) Option {
	return func(b *Builder) { b.computedBounds = enabled }
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// WithProgress sets a callback invoked after each stored tile.
func WithProgress(progress func(tile.ID)) Option {
	return func(b *Builder) { b.progress = progress }
}

func New(opts ...Option) *Builder {
	b := &Builder{
		metadata:  DefaultMetadata(),
		extension: DefaultExtension,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build writes every valid tile under rootDir into a fresh archive at outputPath.
//
// An existing file at outputPath is removed first and the parent directory is created
// if needed. Entries not following the "z/x/y.ext" layout are skipped (see xyz.Reader).
// If no tiles are found, minzoom and maxzoom are both 0.
//
// Build is not safe to run concurrently for the same outputPath.
func (b *Builder) Build(rootDir, outputPath string) (Summary, error) {
	reader, err := xyz.NewReader(rootDir, b.extension)
	if err != nil {
		return Summary{}, err
	}

	if err := os.Remove(outputPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Summary{}, fmt.Errorf("remove existing archive: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return Summary{}, fmt.Errorf("create output directory: %w", err)
	}

	writer, err := mb.NewWriter(outputPath, mb.WithBatchSize(b.batchSize), mb.WithLogger(b.logger))
	if err != nil {
		return Summary{}, fmt.Errorf("open archive: %w", err)
	}
	defer writer.Close()

	b.logger.Debug("tilepack: visit tiles", "root", rootDir, "output", outputPath)

	var zooms zoomSet
	var bounds extent
	tileCount := 0

	err = reader.VisitTiles(func(tileID tile.ID, tileData []byte) error {
		if err := writer.WriteTile(tileID, tileData); err != nil {
			return err
		}
		zooms.add(tileID.Z)
		if b.computedBounds {
			bounds.add(tileID)
		}
		tileCount++
		if b.progress != nil {
			b.progress(tileID)
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	metadata := b.metadata
	metadata.MinZoom, metadata.MaxZoom = zooms.min(), zooms.max()
	if b.computedBounds && !bounds.empty() {
		metadata.Bounds = bounds.boundsString()
		metadata.Center = bounds.centerString(metadata.MinZoom)
	}

	b.logger.Debug("tilepack: write metadata", "minzoom", metadata.MinZoom, "maxzoom", metadata.MaxZoom)
	if err := writer.WriteMetadata(metadata.Map()); err != nil {
		return Summary{}, err
	}

	if err := writer.Finalize(); err != nil {
		return Summary{}, err
	}

	if err := writer.Close(); err != nil {
		return Summary{}, err
	}

	return Summary{
		MinZoom:   metadata.MinZoom,
		MaxZoom:   metadata.MaxZoom,
		Zooms:     zooms.sorted(),
		TileCount: tileCount,
	}, nil
}
