package order

import (
	"context"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for order persistence
type Repository interface {
	// FindByID finds an order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its business number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// NextOrderNumber generates the next sequential order number
	NextOrderNumber(ctx context.Context) (string, error)

	// FindAll finds all orders with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByStatus finds orders in a given status
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) ([]Order, error)

	// FindByTailor finds orders assigned to an employee
	FindByTailor(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order with its items
	Save(ctx context.Context, o *Order) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, o *Order) error

	// Delete deletes an order
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts orders in a given status
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
