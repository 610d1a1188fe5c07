// internal/core/ports/state_store.go
package ports

import (
	"context"

	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/domain"
)

// StateStore defines the persistence port for the inventory state.
// Implementations persist the whole state as a single document; there
// are no partial writes.
type StateStore interface {
	// Initialize ensures the storage location exists and seeds a default
	// empty state on first run. Safe to call on every startup.
	Initialize(ctx context.Context) error

	// Load reads the persisted state. Read and parse failures are
	// swallowed: implementations log and return a default empty state.
	Load(ctx context.Context) *domain.InventoryState

	// Save replaces the persisted document with the given state.
	Save(ctx context.Context, state *domain.InventoryState) error
}
