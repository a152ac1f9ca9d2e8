package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rotisserie/eris"

	"companyintel/model"
)

const (
	recordExt = ".json"
	tempExt   = ".tmp"
)

// FileStore keeps each record as a JSON file named after its key.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "store: create %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+recordExt)
}

// Put writes rec for key, replacing the previous file atomically.
func (s *FileStore) Put(_ context.Context, key string, rec model.CompanyRecord) error {
	if err := validKey(key); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return eris.Wrap(err, "store: marshal record")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, "~record-*"+tempExt)
	if err != nil {
		return eris.Wrap(err, "store: create temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return eris.Wrap(err, "store: write record")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "store: close record")
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return eris.Wrapf(err, "store: save %s", key)
	}
	return nil
}

// Get reads the record for key.
func (s *FileStore) Get(_ context.Context, key string) (model.CompanyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rec model.CompanyRecord
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, eris.Wrapf(err, "store: read %s", key)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, eris.Wrapf(err, "store: decode %s", key)
	}
	return rec, nil
}

// List returns every record in the directory. Files that cannot be decoded are skipped.
func (s *FileStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.RLock()
	files, err := os.ReadDir(s.dir)
	s.mu.RUnlock()
	if err != nil {
		return nil, eris.Wrapf(err, "store: list %s", s.dir)
	}

	var keys []string
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, recordExt))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		rec, err := s.Get(ctx, key)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Key: key, Record: rec})
	}
	return entries, nil
}

// Close is a no-op.
func (s *FileStore) Close() error {
	return nil
}
