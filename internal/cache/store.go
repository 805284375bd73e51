// Package cache persists fetched datasets on disk, one JSON entry per
// (end year, dataset kind). Entries have no TTL: they stay valid until
// explicitly cleared or overwritten by a refresh. The store assumes a
// single writer; concurrent writers to the same key are last-writer-wins.
package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "mdscli/internal/errors"
	"mdscli/pkg/contracts/domain"
)

// Key identifies one cached dataset.
type Key struct {
	EndYear int
	Kind    domain.DatasetKind
}

func (k Key) String() string {
	return fmt.Sprintf("%s_%d", k.Kind, k.EndYear)
}

// Store is a file-backed dataset cache rooted at a managed directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a store rooted at dir, creating the directory if
// needed.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperrors.NewStorageError("init", err)
	}
	return &Store{
		dir:    dir,
		logger: logger.With(slog.String("component", "cache")),
	}, nil
}

func (s *Store) path(key Key) string {
	return filepath.Join(s.dir, key.String()+".json")
}

// Exists reports whether an entry is cached for key.
func (s *Store) Exists(key Key) bool {
	info, err := os.Stat(s.path(key))
	return err == nil && !info.IsDir()
}

// Read decodes the cached entry for key into v.
func (s *Store) Read(key Key, v interface{}) error {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return apperrors.NewNotFoundError(fmt.Sprintf("cache entry %s", key))
	}
	if err != nil {
		return apperrors.NewStorageError("read", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return apperrors.NewStorageError("read", fmt.Errorf("corrupt entry %s: %w", key, err))
	}
	return nil
}

// Write persists v as the entry for key, overwriting any previous entry.
// The write goes through a temp file and rename so a crash cannot leave a
// half-written entry behind.
func (s *Store) Write(key Key, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return apperrors.NewStorageError("write", err)
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return apperrors.NewStorageError("write", err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		os.Remove(tmp)
		return apperrors.NewStorageError("write", err)
	}

	s.logger.Debug("cache entry written",
		slog.String("key", key.String()),
		slog.Int("bytes", len(data)))
	return nil
}

// Clear removes every entry the filter accepts; a nil filter clears all.
// It returns the number of entries removed.
func (s *Store) Clear(filter func(Key) bool) (int, error) {
	keys, err := s.Keys()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, key := range keys {
		if filter != nil && !filter(key) {
			continue
		}
		if err := os.Remove(s.path(key)); err != nil {
			return removed, apperrors.NewStorageError("clear", err)
		}
		removed++
	}

	s.logger.Info("cache cleared", slog.Int("removed", removed))
	return removed, nil
}

// Keys lists every cached entry.
func (s *Store) Keys() ([]Key, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, apperrors.NewStorageError("list", err)
	}

	var keys []Key
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key, ok := parseEntryName(entry.Name())
		if !ok {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// parseEntryName recovers a Key from an entry filename like
// "enr_tidy_2024.json".
func parseEntryName(name string) (Key, bool) {
	if !strings.HasSuffix(name, ".json") {
		return Key{}, false
	}
	stem := strings.TrimSuffix(name, ".json")
	idx := strings.LastIndex(stem, "_")
	if idx <= 0 {
		return Key{}, false
	}
	year, err := strconv.Atoi(stem[idx+1:])
	if err != nil {
		return Key{}, false
	}
	return Key{EndYear: year, Kind: domain.DatasetKind(stem[:idx])}, true
}
