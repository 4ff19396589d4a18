// Package jsonfile persists the enrichment cache and the run's side outputs
// as pretty-printed JSON files.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"catalog_sync/internal/adapters/observability"
	"catalog_sync/internal/domain"
)

// FileStore is the default EntryStore: one JSON object keyed by ASIN.
type FileStore struct {
	path string
}

func New(path string) *FileStore { return &FileStore{path: path} }

// Load returns an empty cache when the file does not exist yet.
func (s *FileStore) Load(_ context.Context) (domain.CacheMap, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		observability.ObserveCache("file", "miss")
		return domain.CacheMap{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache %s: %w", s.path, err)
	}
	m := domain.CacheMap{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode cache %s: %w", s.path, err)
	}
	observability.ObserveCache("file", "hit")
	return m, nil
}

func (s *FileStore) Save(_ context.Context, m domain.CacheMap) error {
	if err := WriteJSON(s.path, m); err != nil {
		return err
	}
	observability.ObserveCache("file", "set")
	return nil
}

// Encode renders v the way every file of a run is written: two-space indent,
// non-ASCII and markup characters kept literal, map keys sorted.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON encodes v and replaces path with it, creating parent directories
// as needed. The file is written to a temporary sibling first and renamed.
func WriteJSON(path string, v any) error {
	b, err := Encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return WriteFile(path, b)
}

// WriteFile atomically replaces path with b.
func WriteFile(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("bytes", len(b)).Msg("file written")
	return nil
}
