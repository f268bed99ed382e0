package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DiskStore writes records as JSON files to a lazily-created temp
// directory. Records survive for the lifetime of the host process,
// which matches how long their run IDs circulate in a session.
type DiskStore struct {
	mu  sync.Mutex
	dir string
}

// NewDiskStore creates a new DiskStore. The underlying temp directory
// is created lazily on the first Save.
func NewDiskStore() *DiskStore {
	return &DiskStore{}
}

// Save writes a record as a JSON file to disk.
func (s *DiskStore) Save(rec *Record) error {
	dir, err := s.ensureDir()
	if err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshalling record %s: %w", rec.ID, err)
	}
	path := filepath.Join(dir, rec.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing record %s: %w", rec.ID, err)
	}
	return nil
}

// Load reads a record from disk.
func (s *DiskStore) Load(id string) (*Record, error) {
	dir, err := s.ensureDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, id+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record %s: %w", id, err)
	}
	rec := &Record{}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("parsing record %s: %w", id, err)
	}
	return rec, nil
}

func (s *DiskStore) ensureDir() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dir != "" {
		return s.dir, nil
	}
	dir, err := os.MkdirTemp("", "outpost-history-*")
	if err != nil {
		return "", fmt.Errorf("creating history dir: %w", err)
	}
	s.dir = dir
	return dir, nil
}
