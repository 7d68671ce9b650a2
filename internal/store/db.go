package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"
)

// ErrStorage marks failures of the local database or of the stored blob
// itself. The remedy is to clear the store, not to fix the input file.
var ErrStorage = errors.New("storage error")

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS exports (
    id        TEXT PRIMARY KEY,
    data      BLOB NOT NULL,
    raw_size  INTEGER NOT NULL DEFAULT 0,
    stored_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);
`

// exactly one export is resident at a time
const currentExport = "current"

// schemaVersion should be bumped whenever the blob encoding changes;
// older blobs are dropped on open.
const schemaVersion = "1"

type DB struct {
	db   *sql.DB
	path string
	enc  *zstd.Encoder
	dec  *zstd.Decoder
}

// Snapshot is the stored export as loaded back from disk.
type Snapshot struct {
	Blob           []byte
	StoredAt       time.Time
	CompressedSize int
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create db dir: %v", ErrStorage, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open db: %v", ErrStorage, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: init schema: %v", ErrStorage, err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: zstd encoder: %v", ErrStorage, err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("%w: zstd decoder: %v", ErrStorage, err)
	}

	d := &DB{db: db, path: dbPath, enc: enc, dec: dec}
	d.migrateSchemaVersion()
	return d, nil
}

func (d *DB) migrateSchemaVersion() {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err != nil || ver != schemaVersion {
		d.db.Exec("DELETE FROM exports")
		d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	}
}

func (d *DB) Close() error {
	d.dec.Close()
	d.enc.Close()
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

func (d *DB) Path() string {
	return d.path
}

// Save compresses blob and replaces whatever export was stored before.
func (d *DB) Save(blob []byte) error {
	data := d.enc.EncodeAll(blob, nil)
	_, err := d.db.Exec(
		`INSERT OR REPLACE INTO exports (id, data, raw_size, stored_at) VALUES (?, ?, ?, ?)`,
		currentExport, data, len(blob), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("%w: save export: %v", ErrStorage, err)
	}
	return nil
}

// Load returns the stored export, or nil when none is stored.
func (d *DB) Load() (*Snapshot, error) {
	var (
		data     []byte
		rawSize  int
		storedAt int64
	)
	err := d.db.QueryRow(
		"SELECT data, raw_size, stored_at FROM exports WHERE id = ?", currentExport,
	).Scan(&data, &rawSize, &storedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load export: %v", ErrStorage, err)
	}

	blob, err := d.dec.DecodeAll(data, make([]byte, 0, rawSize))
	if err != nil {
		return nil, fmt.Errorf("%w: decompress export: %v", ErrStorage, err)
	}
	return &Snapshot{
		Blob:           blob,
		StoredAt:       time.UnixMilli(storedAt),
		CompressedSize: len(data),
	}, nil
}

// Clear removes the stored export. Clearing an empty store is not an error.
func (d *DB) Clear() error {
	if _, err := d.db.Exec("DELETE FROM exports WHERE id = ?", currentExport); err != nil {
		return fmt.Errorf("%w: clear export: %v", ErrStorage, err)
	}
	return nil
}
