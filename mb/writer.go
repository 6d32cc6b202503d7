package mb

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/ganeshsahu2020/EcoListing/tile"
)

var ErrFinalized = errors.New("tilepack: writer is finalized")

// Writer implements tile.Writer interface for MBTiles format.
//
// Tiles and metadata are upserted: writing an existing key replaces its value.
// All writes go through a single connection inside a transaction which is committed
// every batchSize tiles (or once in Finalize when batching is disabled).
type Writer struct {
	db        *sql.DB
	tx        *sql.Tx
	stmt      *sql.Stmt
	batchSize int
	pending   int
	logger    *slog.Logger
}

type writerConfig struct {
	BatchSize int
	Logger    *slog.Logger
}

type WriterOption func(*writerConfig)

// WithBatchSize sets the number of tiles written per transaction.
// Zero (the default) writes all tiles in one transaction.
func WithBatchSize(batchSize int) WriterOption {
	return func(c *writerConfig) { c.BatchSize = max(batchSize, 0) }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new Writer for writing to a MBTiles file.
// It applies given options and initializes database for writing tiles.
//
// Durability is relaxed (synchronous=OFF, journal_mode=MEMORY): a file left by a crash
// is expected to be discarded and rebuilt.
func NewWriter(filePath string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	var err error
	db, err := sql.Open("sqlite3", fileURI(filePath, "_synchronous=OFF&_journal_mode=MEMORY"))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	// Pragmas and the open transaction are bound to a connection.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS tiles (
			zoom_level INTEGER,
			tile_column INTEGER,
			tile_row INTEGER,
			tile_data BLOB
		);
		CREATE UNIQUE INDEX IF NOT EXISTS tile_index ON tiles (zoom_level, tile_column, tile_row);
		CREATE TABLE IF NOT EXISTS metadata (name TEXT, value TEXT);
		CREATE UNIQUE INDEX IF NOT EXISTS name ON metadata (name);
	`)
	if err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	w := &Writer{db: db, batchSize: config.BatchSize, logger: config.Logger}
	if err = w.begin(); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Writer) begin() error {
	tx, err := w.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO tiles (zoom_level, tile_column, tile_row, tile_data) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}

	w.tx, w.stmt, w.pending = tx, stmt, 0
	return nil
}

func (w *Writer) commit() error {
	w.logger.Debug("tilepack: commit", "tiles", w.pending)
	err := errors.Join(w.stmt.Close(), w.tx.Commit())
	w.tx, w.stmt = nil, nil
	return err
}

func (w *Writer) Close() error {
	var errs []error
	if w.stmt != nil {
		errs = append(errs, w.stmt.Close())
	}
	if w.tx != nil {
		errs = append(errs, w.tx.Rollback())
	}
	w.tx, w.stmt = nil, nil
	return errors.Join(append(errs, w.db.Close())...)
}

func (w *Writer) WriteTile(tileID tile.ID, tileData []byte) error {
	if w.tx == nil {
		return ErrFinalized
	}
	if !tileID.Valid() {
		return fmt.Errorf("tilepack: invalid tile %v", tileID)
	}

	x, y, z := tileID.X, tile.FlipY(tileID.Y, tileID.Z), tileID.Z // XYZ -> TMS

	if _, err := w.stmt.Exec(z, x, y, tileData); err != nil {
		return fmt.Errorf("write tile %v: %w", tileID, err)
	}

	w.pending++
	if w.batchSize > 0 && w.pending >= w.batchSize {
		if err := w.commit(); err != nil {
			return err
		}
		return w.begin()
	}

	return nil
}

// WriteMetadata upserts the given name/value pairs into the metadata table.
func (w *Writer) WriteMetadata(metadata map[string]string) error {
	if w.tx == nil {
		return ErrFinalized
	}

	for _, name := range slices.Sorted(maps.Keys(metadata)) {
		_, err := w.tx.Exec("INSERT OR REPLACE INTO metadata (name, value) VALUES (?, ?)", name, metadata[name])
		if err != nil {
			return fmt.Errorf("write metadata %q: %w", name, err)
		}
	}

	return nil
}

// Finalize commits pending writes. The Writer must still be closed afterwards.
func (w *Writer) Finalize() error {
	if w.tx == nil {
		return ErrFinalized
	}

	if err := w.commit(); err != nil {
		return err
	}

	w.logger.Debug("tilepack: done!")
	return nil
}
