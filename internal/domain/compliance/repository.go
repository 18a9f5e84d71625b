package compliance

import (
	"context"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for compliance report persistence
type Repository interface {
	// FindByID finds a report by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Report, error)

	// FindByReferenceNo finds a report by its reference number
	FindByReferenceNo(ctx context.Context, referenceNo string) (*Report, error)

	// FindAll finds all reports with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Report, error)

	// FindByStatus finds reports in a given status
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) ([]Report, error)

	// FindByCategory finds reports of a given category
	FindByCategory(ctx context.Context, category Category, filter shared.Filter) ([]Report, error)

	// FindOverdue finds open reports past their due date
	FindOverdue(ctx context.Context, asOf time.Time) ([]Report, error)

	// Save creates or updates a report
	Save(ctx context.Context, r *Report) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, r *Report) error

	// Delete deletes a report
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts reports matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts reports in a given status
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
