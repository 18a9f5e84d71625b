package inventory

import (
	"context"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// FabricRepository defines the interface for fabric persistence
type FabricRepository interface {
	// FindByID finds a fabric by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Fabric, error)

	// FindBySKU finds a fabric by its SKU
	FindBySKU(ctx context.Context, sku string) (*Fabric, error)

	// FindAll finds all fabrics with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Fabric, error)

	// FindLowStock finds active fabrics at or below their reorder level
	FindLowStock(ctx context.Context) ([]Fabric, error)

	// Save creates or updates a fabric
	Save(ctx context.Context, f *Fabric) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, f *Fabric) error

	// Delete deletes a fabric
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts fabrics matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// MovementRepository defines the interface for stock movement persistence.
// Movements are append-only: there is no update or delete.
type MovementRepository interface {
	// FindByID finds a movement by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Movement, error)

	// FindByFabric finds the movements recorded for a fabric, newest first
	FindByFabric(ctx context.Context, fabricID uuid.UUID, filter shared.Filter) ([]Movement, error)

	// Save persists a movement record
	Save(ctx context.Context, m *Movement) error

	// CountByFabric counts the movements recorded for a fabric
	CountByFabric(ctx context.Context, fabricID uuid.UUID) (int64, error)
}
