// Package seed performs the one-time store bootstrap: catalog collections
// plus the administrative user, guarded by a reserved initialized-flag key.
package seed

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/lowtide/localbase/internal/catalog"
	pkgcrypto "github.com/lowtide/localbase/internal/crypto"
	"github.com/lowtide/localbase/internal/model"
	"github.com/lowtide/localbase/internal/storage"
)

// Admin is the bootstrap administrative account written on first seed.
type Admin struct {
	Email    string
	Password string
}

// Seeder writes the catalog and admin user into the store once.
type Seeder struct {
	cols    *storage.Collections
	catalog catalog.Catalog
	admin   Admin
	logger  *zap.Logger
}

// NewSeeder constructs a Seeder.
func NewSeeder(cols *storage.Collections, c catalog.Catalog, admin Admin, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{cols: cols, catalog: c, admin: admin, logger: logger}
}

// Run seeds the store unless the initialized flag is already set. Reruns
// are no-ops, so callers can invoke it unconditionally at startup.
func (s *Seeder) Run() error {
	if _, ok := s.cols.Store().Get(storage.InitializedKey); ok {
		s.logger.Debug("store already initialized, skipping seed")
		return nil
	}

	collections := []struct {
		name string
		data any
	}{
		{"artists", s.catalog.Artists},
		{"releases", s.catalog.Releases},
		{"tracks", s.catalog.Tracks},
		{"posts", s.catalog.Posts},
		{"authors", s.catalog.Authors},
		{"genres", s.catalog.Genres},
		{"services", s.catalog.Services},
	}
	for _, c := range collections {
		recs, err := toRecords(c.data)
		if err != nil {
			return fmt.Errorf("encode %s: %w", c.name, err)
		}
		if err := s.cols.Write(c.name, recs); err != nil {
			return fmt.Errorf("seed %s: %w", c.name, err)
		}
		s.logger.Info("seeded collection", zap.String("collection", c.name), zap.Int("records", len(recs)))
	}

	if err := s.seedAdmin(); err != nil {
		return err
	}

	if err := s.cols.Store().Set(storage.InitializedKey, []byte(time.Now().UTC().Format(time.RFC3339))); err != nil {
		return fmt.Errorf("set initialized flag: %w", err)
	}
	s.logger.Info("store initialized")
	return nil
}

func (s *Seeder) seedAdmin() error {
	if s.admin.Email == "" || s.admin.Password == "" {
		s.logger.Warn("no admin credentials configured, skipping admin user")
		return nil
	}
	hash, err := pkgcrypto.HashPassword(s.admin.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	admin := model.Record{
		model.FieldID:        id.String(),
		"email":              s.admin.Email,
		"password_hash":      hash,
		"role":               "admin",
		model.FieldCreatedAt: now,
		model.FieldUpdatedAt: now,
	}
	if err := s.cols.Write("users", []model.Record{admin}); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	s.logger.Info("seeded admin user", zap.String("email", s.admin.Email))
	return nil
}

// toRecords converts a typed entity slice into schemaless records via a
// JSON round trip, matching what the query layer reads back.
func toRecords(v any) ([]model.Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var recs []model.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}
