package storage

import (
	"go.uber.org/zap"
)

// Sealer encrypts and decrypts a payload bound to a key name.
// Implemented by crypto.Sealer.
type Sealer interface {
	Seal(name string, plaintext []byte) ([]byte, error)
	Open(name string, sealed []byte) ([]byte, error)
}

// SealedStore wraps a Store and transparently seals a fixed set of keys at
// rest. Non-listed keys pass through untouched. A payload that fails to
// open (wrong secret, tampering) reads as absent, matching the store's
// malformed-content leniency.
type SealedStore struct {
	inner  Store
	sealer Sealer
	keys   map[string]bool
	logger *zap.Logger
}

// NewSealedStore seals the given keys of inner with sealer.
func NewSealedStore(inner Store, sealer Sealer, keys []string, logger *zap.Logger) *SealedStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return &SealedStore{inner: inner, sealer: sealer, keys: set, logger: logger}
}

func (s *SealedStore) Get(key string) ([]byte, bool) {
	data, ok := s.inner.Get(key)
	if !ok || !s.keys[key] {
		return data, ok
	}
	plain, err := s.sealer.Open(key, data)
	if err != nil {
		s.logger.Warn("sealed entry failed to open, treated as absent",
			zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return plain, true
}

func (s *SealedStore) Set(key string, data []byte) error {
	if !s.keys[key] {
		return s.inner.Set(key, data)
	}
	sealed, err := s.sealer.Seal(key, data)
	if err != nil {
		return err
	}
	return s.inner.Set(key, sealed)
}

func (s *SealedStore) Delete(key string) { s.inner.Delete(key) }
