package mb

import (
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func TestWriterSchemaAndPragmas(t *testing.T) {
	writer, err := NewWriter(filepath.Join(t.TempDir(), "tiles.mbtiles"))
	require.NoError(t, err)
	defer writer.Close()

	var journalMode string
	require.NoError(t, writer.tx.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	require.Equal(t, "memory", journalMode)

	var synchronous int
	require.NoError(t, writer.tx.QueryRow("PRAGMA synchronous").Scan(&synchronous))
	require.Equal(t, 0, synchronous)

	rows, err := writer.tx.Query("SELECT name FROM sqlite_master WHERE type = 'index' ORDER BY name")
	require.NoError(t, err)
	defer rows.Close()

	var indexes []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		indexes = append(indexes, name)
	}
	require.NoError(t, rows.Err())
	require.Equal(t, []string{"name", "tile_index"}, indexes)
}

func TestFileURI(t *testing.T) {
	require.Equal(t, "file:/a/b.mbtiles?mode=ro", fileURI("/a/b.mbtiles", "mode=ro"))
	require.Equal(t, "file:/a/t%231%3fx%2541.mbtiles?mode=ro", fileURI("/a/t#1?x%41.mbtiles", "mode=ro"))
}
