package persist

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"

	"kbsearch/internal/domain"
)

// SQLite persists snapshots in a single-file SQLite database. Record
// rows keep their insertion position so a restored store ranks ties in
// the original order.
type SQLite struct {
	db   *sql.DB
	path string
}

// NewSQLite opens (or creates) a snapshot database at the given path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &SQLite{db: db, path: path}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) init() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("pragma failed: %w", err)
		}
	}
	schema := `
		CREATE TABLE IF NOT EXISTS records (
			position INTEGER PRIMARY KEY,
			text TEXT NOT NULL,
			embedding BLOB NOT NULL,
			metadata TEXT
		);
		CREATE TABLE IF NOT EXISTS snapshot_info (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			saved_at TEXT NOT NULL
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	return nil
}

// Save replaces the stored snapshot in one transaction.
func (s *SQLite) Save(ctx context.Context, snap *Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO records (position, text, embedding, metadata) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range snap.Texts {
		var metaJSON []byte
		if snap.Metadata[i] != nil {
			metaJSON, err = json.Marshal(snap.Metadata[i])
			if err != nil {
				return err
			}
		}
		if _, err := stmt.ExecContext(ctx, i, snap.Texts[i], encodeFloat64Slice(snap.Vectors[i]), metaJSON); err != nil {
			return err
		}
	}
	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO snapshot_info (id, saved_at) VALUES (1, ?)", ts.Format(time.RFC3339Nano)); err != nil {
		return err
	}
	return tx.Commit()
}

// Load restores the stored snapshot, ordered by insertion position.
func (s *SQLite) Load(ctx context.Context) (*Snapshot, bool, error) {
	var savedAt string
	err := s.db.QueryRowContext(ctx, "SELECT saved_at FROM snapshot_info WHERE id = 1").Scan(&savedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &domain.StoreLoadError{Path: s.path, Err: err}
	}
	ts, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return nil, false, &domain.StoreLoadError{Path: s.path, Err: fmt.Errorf("bad timestamp: %w", err)}
	}

	rows, err := s.db.QueryContext(ctx, "SELECT text, embedding, metadata FROM records ORDER BY position")
	if err != nil {
		return nil, false, &domain.StoreLoadError{Path: s.path, Err: err}
	}
	defer rows.Close()

	snap := &Snapshot{Timestamp: ts}
	for rows.Next() {
		var text string
		var embBytes []byte
		var metaJSON sql.NullString
		if err := rows.Scan(&text, &embBytes, &metaJSON); err != nil {
			return nil, false, &domain.StoreLoadError{Path: s.path, Err: err}
		}
		var meta domain.Metadata
		if metaJSON.Valid && metaJSON.String != "" {
			if err := json.Unmarshal([]byte(metaJSON.String), &meta); err != nil {
				return nil, false, &domain.StoreLoadError{Path: s.path, Err: err}
			}
		}
		snap.Texts = append(snap.Texts, text)
		snap.Vectors = append(snap.Vectors, decodeFloat64Slice(embBytes))
		snap.Metadata = append(snap.Metadata, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, false, &domain.StoreLoadError{Path: s.path, Err: err}
	}
	return snap, true, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error { return s.db.Close() }

func encodeFloat64Slice(f []float64) []byte {
	buf := make([]byte, len(f)*8)
	for i, v := range f {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

func decodeFloat64Slice(b []byte) []float64 {
	f := make([]float64, len(b)/8)
	for i := range f {
		f[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return f
}
