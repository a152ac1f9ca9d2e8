package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"companyintel/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS company_records (
	key        TEXT PRIMARY KEY,
	record     TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// Migrate creates the records table.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Put(ctx context.Context, key string, rec model.CompanyRecord) error {
	if err := validKey(key); err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal record")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO company_records (key, record, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UTC(),
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: upsert record %s", key)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (model.CompanyRecord, error) {
	var rec model.CompanyRecord
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM company_records WHERE key = ?`, key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, eris.Wrapf(err, "sqlite: get record %s", key)
	}
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return rec, eris.Wrapf(err, "sqlite: decode record %s", key)
	}
	return rec, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, record FROM company_records ORDER BY key`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list records")
	}
	defer rows.Close() //nolint:errcheck

	var entries []Entry
	for rows.Next() {
		var key, data string
		if err := rows.Scan(&key, &data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan record")
		}
		var rec model.CompanyRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			continue
		}
		entries = append(entries, Entry{Key: key, Record: rec})
	}
	return entries, eris.Wrap(rows.Err(), "sqlite: iterate records")
}
