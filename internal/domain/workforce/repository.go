package workforce

import (
	"context"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EmployeeRepository defines the interface for employee persistence
type EmployeeRepository interface {
	// FindByID finds an employee by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)

	// FindByUsername finds an employee by username
	FindByUsername(ctx context.Context, username string) (*Employee, error)

	// FindAll finds all employees with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Employee, error)

	// FindByRole finds employees with a given role
	FindByRole(ctx context.Context, role Role, filter shared.Filter) ([]Employee, error)

	// Save creates or updates an employee
	Save(ctx context.Context, e *Employee) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, e *Employee) error

	// Delete deletes an employee
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts employees matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// PerformanceRepository defines the interface for performance record persistence
type PerformanceRepository interface {
	// FindByID finds a performance record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PerformanceRecord, error)

	// FindByEmployeeAndPeriod finds the record for an employee in a month
	FindByEmployeeAndPeriod(ctx context.Context, employeeID uuid.UUID, year int, month time.Month) (*PerformanceRecord, error)

	// FindByEmployee finds all records for an employee, newest period first
	FindByEmployee(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]PerformanceRecord, error)

	// FindByPeriod finds all employee records for a month
	FindByPeriod(ctx context.Context, year int, month time.Month) ([]PerformanceRecord, error)

	// Save creates or updates a performance record
	Save(ctx context.Context, p *PerformanceRecord) error

	// Delete deletes a performance record
	Delete(ctx context.Context, id uuid.UUID) error
}
