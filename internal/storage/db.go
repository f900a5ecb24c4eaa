package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"astrodash/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS records (
  seq INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  year INTEGER NOT NULL,
  gender TEXT NOT NULL,
  nationality TEXT NOT NULL,
  missionRole TEXT NOT NULL,
  evaActivity TEXT NOT NULL,
  overallNumber INTEGER NOT NULL,
  nationwideNumber INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_year ON records(year);
CREATE INDEX IF NOT EXISTS idx_records_nationality ON records(nationality);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ReplaceRecords swaps the snapshot for a freshly ingested table in one
// transaction. The seq column preserves natural record order, which the
// cumulative-counter invariants depend on.
func (d *DB) ReplaceRecords(records []internal.Record, sourcePath string) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO records (seq, name, year, gender, nationality, missionRole, evaActivity, overallNumber, nationwideNumber)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(
			i+1, r.Name, r.Year, r.Gender, r.Nationality, r.MissionRole, r.EVAActivity, r.OverallNumber, r.NationwideNumber,
		); err != nil {
			return err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := setMetadataTx(tx, "source_path", sourcePath); err != nil {
		return err
	}
	if err := setMetadataTx(tx, "ingested_at", now); err != nil {
		return err
	}
	if err := setMetadataTx(tx, "record_count", strconv.Itoa(len(records))); err != nil {
		return err
	}

	return tx.Commit()
}

// ListRecords returns the snapshot in natural ingest order.
func (d *DB) ListRecords() ([]internal.Record, error) {
	rows, err := d.conn.Query(`
SELECT name, year, gender, nationality, missionRole, evaActivity, overallNumber, nationwideNumber
FROM records ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Record
	for rows.Next() {
		var r internal.Record
		if err := rows.Scan(
			&r.Name, &r.Year, &r.Gender, &r.Nationality, &r.MissionRole, &r.EVAActivity, &r.OverallNumber, &r.NationwideNumber,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) Meta() (internal.DatasetMeta, error) {
	meta := internal.DatasetMeta{}

	source, err := d.GetMetadata("source_path")
	if err != nil {
		return meta, err
	}
	if source != nil {
		meta.SourcePath = *source
	}
	ingested, err := d.GetMetadata("ingested_at")
	if err != nil {
		return meta, err
	}
	if ingested != nil {
		meta.IngestedAt = *ingested
	}

	if err := d.conn.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&meta.RecordCount); err != nil {
		return meta, err
	}
	return meta, nil
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func setMetadataTx(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}
