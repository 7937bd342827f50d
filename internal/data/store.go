package data

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
)

// Store holds the repository currently served. Reloads swap it atomically;
// in-flight requests keep the repository they started with.
type Store struct {
	cur atomic.Pointer[Repository]
}

func NewStore(r *Repository) *Store {
	s := &Store{}
	s.cur.Store(r)
	return s
}

func (s *Store) Current() *Repository {
	return s.cur.Load()
}

func (s *Store) Swap(r *Repository) {
	s.cur.Store(r)
}

// IsSQLitePath reports whether path names a SQLite dataset rather than a CSV.
func IsSQLitePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// LoadDataset reads a dataset from a CSV or SQLite file, by extension.
func LoadDataset(path string) (*Dataset, error) {
	if !IsSQLitePath(path) {
		return LoadCSV(path)
	}
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return LoadSQLite(db)
}

// LoadRepository loads path and wraps it in a Repository.
func LoadRepository(path string, cacheSize int) (*Repository, error) {
	ds, err := LoadDataset(path)
	if err != nil {
		return nil, err
	}
	repo, err := NewRepository(ds, cacheSize)
	if err != nil {
		return nil, fmt.Errorf("build repository from %s: %w", path, err)
	}
	return repo, nil
}
