// internal/adapters/jsonstore/store.go
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/domain"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/ports"
)

// Config holds the storage location of the inventory document.
type Config struct {
	Dir      string // directory holding the data file, created on startup
	FileName string // name of the JSON document inside Dir
}

// Store persists the entire inventory state as a single pretty-printed
// JSON document. Every Save is a full-document replace; there is no
// locking or versioning at the file level.
type Store struct {
	path   string
	logger *slog.Logger
}

// Statically assert that *Store implements the StateStore interface.
var _ ports.StateStore = (*Store)(nil)

// NewStore creates a new JSON file store.
func NewStore(cfg *Config, logger *slog.Logger) *Store {
	return &Store{
		path:   filepath.Join(cfg.Dir, cfg.FileName),
		logger: logger.With(slog.String("component", "jsonstore")),
	}
}

// Path returns the location of the persisted document.
func (s *Store) Path() string {
	return s.path
}

// Initialize ensures the data directory exists and seeds the file with a
// default empty state if it is absent. Idempotent.
func (s *Store) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &domain.StorageError{Op: "initialize", Err: fmt.Errorf("create data dir: %w", err)}
	}

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return &domain.StorageError{Op: "initialize", Err: fmt.Errorf("stat data file: %w", err)}
	}

	s.logger.InfoContext(ctx, "seeding default inventory state",
		slog.String("path", s.path))

	if err := s.Save(ctx, domain.NewInventoryState()); err != nil {
		return err
	}
	return nil
}

// Load reads and parses the persisted document. On any read or parse
// failure it logs the error and returns a default empty state; failures
// never propagate to the caller.
func (s *Store) Load(ctx context.Context) *domain.InventoryState {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read inventory state, using empty default",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return domain.NewInventoryState()
	}

	state := domain.NewInventoryState()
	if err := json.Unmarshal(data, state); err != nil {
		s.logger.ErrorContext(ctx, "failed to parse inventory state, using empty default",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return domain.NewInventoryState()
	}

	if state.Products == nil {
		state.Products = []domain.Product{}
	}
	return state
}

// Save serializes the full state and overwrites the persisted document.
func (s *Store) Save(ctx context.Context, state *domain.InventoryState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to serialize inventory state",
			slog.String("error", err.Error()))
		return &domain.StorageError{Op: "save", Err: fmt.Errorf("marshal state: %w", err)}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.ErrorContext(ctx, "failed to write inventory state",
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return &domain.StorageError{Op: "save", Err: fmt.Errorf("write state: %w", err)}
	}

	s.logger.DebugContext(ctx, "inventory state persisted",
		slog.String("path", s.path),
		slog.Int("products", len(state.Products)))

	return nil
}
