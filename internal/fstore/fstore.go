package fstore

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/patrickmn/go-cache"
)

// Store reads and writes named JSON documents under a single data
// directory. A document that is missing, unreadable or corrupt loads as
// the caller's default; read failures are never surfaced. Writes replace
// the whole file. Single-process use only: concurrent writers to the
// same name are last-writer-wins.
type Store struct {
	dir   string
	cache *cache.Cache
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{
		dir:   dir,
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Load unmarshals the named document into target. When the file is
// absent, unreadable or not valid JSON, target is filled from def
// instead and no error is reported.
func (s *Store) Load(name string, target any, def any) error {
	raw, ok := s.cache.Get(name)
	if !ok {
		data, err := os.ReadFile(s.path(name))
		if err != nil {
			if !os.IsNotExist(err) {
				log.Printf("fstore: reading %s: %v; using default", name, err)
			}
			return s.loadDefault(name, target, def)
		}
		if !json.Valid(data) {
			log.Printf("fstore: document %s is corrupt; using default", name)
			return s.loadDefault(name, target, def)
		}
		s.cache.Set(name, data, cache.NoExpiration)
		raw = data
	}

	if err := json.Unmarshal(raw.([]byte), target); err != nil {
		log.Printf("fstore: decoding %s: %v; using default", name, err)
		s.cache.Delete(name)
		return s.loadDefault(name, target, def)
	}
	return nil
}

// loadDefault fills target from def by a marshal round trip, so callers
// can pass defaults as plain values.
func (s *Store) loadDefault(name string, target any, def any) error {
	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("marshaling default for %s: %w", name, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decoding default for %s: %w", name, err)
	}
	return nil
}

// Save serializes doc and overwrites the named document. The write goes
// through a temp file and rename so readers in this process never see a
// partial file.
func (s *Store) Save(name string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", name, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", name, err)
	}

	s.cache.Set(name, data, cache.NoExpiration)
	return nil
}

// Exists reports whether the named document has ever been saved.
func (s *Store) Exists(name string) bool {
	if _, ok := s.cache.Get(name); ok {
		return true
	}
	_, err := os.Stat(s.path(name))
	return err == nil
}
