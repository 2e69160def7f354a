package storage

import (
	"encoding/json"

	"github.com/lowtide/localbase/internal/model"
	"go.uber.org/zap"
)

// Collections reads and writes whole record collections over a Store.
// Malformed or absent content always reads as an empty collection; parse
// failures are logged, never surfaced.
type Collections struct {
	store  Store
	logger *zap.Logger
}

// NewCollections wraps a Store with the collection codec.
func NewCollections(store Store, logger *zap.Logger) *Collections {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collections{store: store, logger: logger}
}

// Store exposes the underlying key-value store for reserved-key access.
func (c *Collections) Store() Store { return c.store }

// Read returns all records of the named collection. An unknown name or
// undecodable payload yields an empty slice.
func (c *Collections) Read(name string) []model.Record {
	data, ok := c.store.Get(CollectionKey(name))
	if !ok {
		c.logger.Debug("collection absent, reading as empty", zap.String("collection", name))
		return []model.Record{}
	}
	var recs []model.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		c.logger.Warn("malformed collection treated as empty",
			zap.String("collection", name), zap.Error(err))
		return []model.Record{}
	}
	if recs == nil {
		recs = []model.Record{}
	}
	return recs
}

// Write replaces the named collection in full.
func (c *Collections) Write(name string, recs []model.Record) error {
	if recs == nil {
		recs = []model.Record{}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return c.store.Set(CollectionKey(name), data)
}
