// Package store persists company records between runs, one record per company key.
package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"companyintel/config"
	"companyintel/model"
)

// ErrNotFound is returned by Get when no record exists for the key.
var ErrNotFound = errors.New("store: record not found")

// Entry is a stored record together with its key.
type Entry struct {
	Key    string              `json:"key"`
	Record model.CompanyRecord `json:"record"`
}

// Store defines record persistence. Put replaces any existing record for the
// key; List returns entries ordered by key.
type Store interface {
	Put(ctx context.Context, key string, rec model.CompanyRecord) error
	Get(ctx context.Context, key string) (model.CompanyRecord, error)
	List(ctx context.Context) ([]Entry, error)
	Close() error
}

// Key derives the storage key for a company name: lower-cased, spaces
// replaced by underscores.
func Key(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Open builds the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "file":
		return NewFileStore(cfg.DataDir)
	case "redis":
		return NewRedisStore(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case "sqlite":
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, eris.Wrapf(err, "store: create %s", dir)
			}
		}
		st, err := NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, err
		}
		return st, nil
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}

func validKey(key string) error {
	if key == "" {
		return eris.New("store: empty key")
	}
	return nil
}
