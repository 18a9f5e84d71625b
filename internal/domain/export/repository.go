package export

import (
	"context"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for export job persistence
type Repository interface {
	// FindByID finds a job by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Job, error)

	// FindAll finds all jobs with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Job, error)

	// FindByStatus finds jobs in a given status
	FindByStatus(ctx context.Context, status JobStatus, filter shared.Filter) ([]Job, error)

	// FindByRequester finds the jobs queued by an employee
	FindByRequester(ctx context.Context, requestedBy uuid.UUID, filter shared.Filter) ([]Job, error)

	// ClaimNextPending atomically claims the oldest pending job and moves it
	// to RUNNING, or returns nil when the queue is empty
	ClaimNextPending(ctx context.Context) (*Job, error)

	// FindStaleRunning finds jobs stuck in RUNNING since before the cutoff,
	// left behind by a crashed worker
	FindStaleRunning(ctx context.Context, cutoff time.Time) ([]Job, error)

	// Save creates or updates a job
	Save(ctx context.Context, j *Job) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, j *Job) error

	// Count counts jobs matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts jobs in a given status
	CountByStatus(ctx context.Context, status JobStatus) (int64, error)
}
