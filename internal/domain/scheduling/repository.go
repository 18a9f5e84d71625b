package scheduling

import (
	"context"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ScheduleRepository defines the interface for schedule persistence
type ScheduleRepository interface {
	// FindByID finds a schedule by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Schedule, error)

	// FindAll finds all schedules with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Schedule, error)

	// FindByKind finds schedules of a given kind
	FindByKind(ctx context.Context, kind Kind, filter shared.Filter) ([]Schedule, error)

	// FindDue finds active schedules whose next run is at or before the instant
	FindDue(ctx context.Context, asOf time.Time) ([]Schedule, error)

	// Save creates or updates a schedule
	Save(ctx context.Context, s *Schedule) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, s *Schedule) error

	// Delete deletes a schedule
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts schedules matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// EquipmentRepository defines the interface for equipment persistence
type EquipmentRepository interface {
	// FindByID finds equipment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Equipment, error)

	// FindBySerialNo finds equipment by serial number
	FindBySerialNo(ctx context.Context, serialNo string) (*Equipment, error)

	// FindAll finds all equipment with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Equipment, error)

	// Save creates or updates equipment
	Save(ctx context.Context, e *Equipment) error

	// Delete deletes equipment
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts equipment matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// TicketRepository defines the interface for maintenance ticket persistence
type TicketRepository interface {
	// FindByID finds a ticket by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Ticket, error)

	// FindOpen finds open tickets, oldest due first
	FindOpen(ctx context.Context, filter shared.Filter) ([]Ticket, error)

	// FindBySchedule finds the tickets dispatched by a schedule
	FindBySchedule(ctx context.Context, scheduleID uuid.UUID, filter shared.Filter) ([]Ticket, error)

	// FindByEquipment finds the tickets for a piece of equipment
	FindByEquipment(ctx context.Context, equipmentID uuid.UUID, filter shared.Filter) ([]Ticket, error)

	// Save creates or updates a ticket
	Save(ctx context.Context, t *Ticket) error

	// Count counts tickets matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
