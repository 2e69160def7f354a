package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// FileStore persists each key as a file under a data directory. Writes go
// through a temp file and rename so a crash mid-write never leaves a
// truncated value behind. Read failures are logged and reported as absence,
// never returned to callers.
type FileStore struct {
	dir    string
	logger *zap.Logger

	mu sync.RWMutex
}

// NewFileStore creates the data directory if needed and returns a store
// rooted at it.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// path maps a store key to a filename. Keys contain ':' and user-chosen
// collection names, so everything is base64url-encoded.
func (s *FileStore) path(key string) string {
	enc := base64.RawURLEncoding.EncodeToString([]byte(key))
	return filepath.Join(s.dir, enc+".json")
}

// Get returns the stored bytes for key, or (nil, false) when the key is
// absent or unreadable.
func (s *FileStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("unreadable store entry treated as absent",
				zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Set writes the value atomically via temp file + rename.
func (s *FileStore) Set(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dst := s.path(key)
	tmp, err := os.CreateTemp(s.dir, "lb-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

// Delete removes the key; absent keys are ignored.
func (s *FileStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("delete store entry", zap.String("key", key), zap.Error(err))
	}
}

// Keys lists all stored keys, decoding filenames back to key strings.
// Entries that do not decode are skipped.
func (s *FileStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn("list store entries", zap.Error(err))
		return nil
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".json")
		if name == e.Name() {
			continue
		}
		raw, err := base64.RawURLEncoding.DecodeString(name)
		if err != nil {
			continue
		}
		keys = append(keys, string(raw))
	}
	return keys
}
