package mb_test

import (
	"maps"
	"path/filepath"
	"testing"

	"github.com/ganeshsahu2020/EcoListing/mb"
	"github.com/ganeshsahu2020/EcoListing/tile"
	"github.com/google/go-cmp/cmp"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func writeTiles(t *testing.T, filePath string, tiles []tile.ID, data func(tile.ID) []byte, opts ...mb.WriterOption) {
	t.Helper()

	writer, err := mb.NewWriter(filePath, opts...)
	require.NoError(t, err)
	defer writer.Close()

	for _, tileID := range tiles {
		require.NoError(t, writer.WriteTile(tileID, data(tileID)))
	}
	require.NoError(t, writer.Finalize())
}

func readAll(t *testing.T, filePath string) map[tile.ID][]byte {
	t.Helper()

	reader, err := mb.NewReader(filePath)
	require.NoError(t, err)
	defer reader.Close()

	return maps.Collect(tile.IterTiles(reader))
}

func TestWriterReader(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "tiles.mbtiles")

	tiles := map[tile.ID][]byte{
		{X: 0, Y: 0, Z: 0}: []byte("tile000"),
		{X: 1, Y: 0, Z: 1}: []byte("tile101"),
		{X: 0, Y: 0, Z: 6}: []byte("tile006"),
		{X: 6, Y: 6, Z: 6}: []byte("tile666"),
		{X: 2, Y: 3, Z: 2}: {},
	}

	writer, err := mb.NewWriter(filePath)
	require.NoError(t, err)
	defer writer.Close()

	for tileID, tileData := range tiles {
		require.NoError(t, writer.WriteTile(tileID, tileData))
	}
	require.NoError(t, writer.WriteMetadata(map[string]string{"name": "test", "format": "png"}))
	require.NoError(t, writer.Finalize())
	require.NoError(t, writer.Close())

	reader, err := mb.NewReader(filePath)
	require.NoError(t, err)
	defer reader.Close()

	if diff := cmp.Diff(tiles, maps.Collect(tile.IterTiles(reader))); diff != "" {
		t.Errorf("VisitTiles data mismatch (-want+got):\n%v", diff)
	}

	for tileID, tileData := range tiles {
		data, err := reader.ReadTile(tileID)
		require.NoError(t, err)
		require.Equal(t, tileData, data, "ReadTile(%v)", tileID)
	}

	data, err := reader.ReadTile(tile.ID{X: 9, Y: 9, Z: 9})
	require.NoError(t, err)
	require.Empty(t, data)

	count, err := reader.CountTiles()
	require.NoError(t, err)
	require.Equal(t, len(tiles), count)

	metadata, err := reader.ReadMetadata()
	require.NoError(t, err)
	require.Equal(t, map[string]string{"name": "test", "format": "png"}, metadata)
}

func TestWriterStoresTMSRows(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "tiles.mbtiles")
	writeTiles(t, filePath, []tile.ID{{X: 1, Y: 1, Z: 2}}, func(tile.ID) []byte { return []byte("X") })

	reader, err := mb.NewReader(filePath)
	require.NoError(t, err)
	defer reader.Close()

	// Row 1 in XYZ is row 2 in TMS at zoom 2, so reading XYZ row 2 back finds nothing.
	data, err := reader.ReadTile(tile.ID{X: 1, Y: 2, Z: 2})
	require.NoError(t, err)
	require.Empty(t, data)

	data, err = reader.ReadTile(tile.ID{X: 1, Y: 1, Z: 2})
	require.NoError(t, err)
	require.Equal(t, []byte("X"), data)
}

func TestWriterUpsert(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "tiles.mbtiles")

	writer, err := mb.NewWriter(filePath)
	require.NoError(t, err)
	defer writer.Close()

	tileID := tile.ID{X: 3, Y: 1, Z: 2}
	require.NoError(t, writer.WriteTile(tileID, []byte("old")))
	require.NoError(t, writer.WriteTile(tileID, []byte("new")))
	require.NoError(t, writer.WriteMetadata(map[string]string{"name": "old"}))
	require.NoError(t, writer.WriteMetadata(map[string]string{"name": "new"}))
	require.NoError(t, writer.Finalize())
	require.NoError(t, writer.Close())

	reader, err := mb.NewReader(filePath)
	require.NoError(t, err)
	defer reader.Close()

	count, err := reader.CountTiles()
	require.NoError(t, err)
	require.Equal(t, 1, count)

	data, err := reader.ReadTile(tileID)
	require.NoError(t, err)
	require.Equal(t, []byte("new"), data)

	metadata, err := reader.ReadMetadata()
	require.NoError(t, err)
	require.Equal(t, map[string]string{"name": "new"}, metadata)
}

func TestWriterBatching(t *testing.T) {
	var tiles []tile.ID
	for z := range uint32(4) {
		for x := range uint32(1) << z {
			for y := range uint32(1) << z {
				tiles = append(tiles, tile.ID{X: x, Y: y, Z: z})
			}
		}
	}
	data := func(tileID tile.ID) []byte {
		return []byte{byte(tileID.X), byte(tileID.Y), byte(tileID.Z)}
	}

	dir := t.TempDir()
	want := filepath.Join(dir, "single.mbtiles")
	writeTiles(t, want, tiles, data)

	for _, batchSize := range []int{1, 7, 85, 1000} {
		got := filepath.Join(dir, "batched.mbtiles")
		writeTiles(t, got, tiles, data, mb.WithBatchSize(batchSize))
		if diff := cmp.Diff(readAll(t, want), readAll(t, got)); diff != "" {
			t.Errorf("batchSize=%v mismatch (-want+got):\n%v", batchSize, diff)
		}
	}
}

func TestWriterAfterFinalize(t *testing.T) {
	writer, err := mb.NewWriter(filepath.Join(t.TempDir(), "tiles.mbtiles"))
	require.NoError(t, err)
	defer writer.Close()

	require.NoError(t, writer.Finalize())
	require.ErrorIs(t, writer.WriteTile(tile.ID{}, []byte("x")), mb.ErrFinalized)
	require.ErrorIs(t, writer.WriteMetadata(map[string]string{"a": "b"}), mb.ErrFinalized)
	require.ErrorIs(t, writer.Finalize(), mb.ErrFinalized)
}

func TestWriterInvalidTile(t *testing.T) {
	writer, err := mb.NewWriter(filepath.Join(t.TempDir(), "tiles.mbtiles"))
	require.NoError(t, err)
	defer writer.Close()

	require.Error(t, writer.WriteTile(tile.ID{X: 0, Y: 4, Z: 2}, []byte("x")))
}

func TestWriterCloseWithoutFinalize(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "tiles.mbtiles")

	writer, err := mb.NewWriter(filePath)
	require.NoError(t, err)
	require.NoError(t, writer.WriteTile(tile.ID{}, []byte("x")))
	require.NoError(t, writer.Close())

	require.Empty(t, readAll(t, filePath))
}

func TestMetadataMap(t *testing.T) {
	metadata := mb.Metadata{
		Name:        "city_raster",
		Format:      "png",
		Type:        "baselayer",
		Version:     "1.1",
		Description: "Local raster packed to MBTiles",
		Bounds:      "-180,-85,180,85",
		Center:      "0,0,1",
		MinZoom:     3,
		MaxZoom:     12,
	}
	require.Equal(t, map[string]string{
		"name":        "city_raster",
		"format":      "png",
		"type":        "baselayer",
		"version":     "1.1",
		"minzoom":     "3",
		"maxzoom":     "12",
		"bounds":      "-180,-85,180,85",
		"center":      "0,0,1",
		"description": "Local raster packed to MBTiles",
	}, metadata.Map())
}
