package workforce

import (
	"github.com/atelier/backend/internal/domain/shared"
)

const (
	AggregateTypeEmployee = "Employee"

	EventTypeEmployeeCreated     = "workforce.employee.created"
	EventTypeEmployeeRoleChanged = "workforce.employee.role_changed"
	EventTypeEmployeeDeactivated = "workforce.employee.deactivated"
)

// EmployeeCreatedEvent is raised when a new employee account is created
type EmployeeCreatedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

// NewEmployeeCreatedEvent creates a new employee created event
func NewEmployeeCreatedEvent(e *Employee) *EmployeeCreatedEvent {
	return &EmployeeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeCreated, AggregateTypeEmployee, e.GetID()),
		Username:        e.Username,
		FullName:        e.FullName,
		Role:            e.Role,
	}
}

// EmployeeRoleChangedEvent is raised when an employee's role changes
type EmployeeRoleChangedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
	OldRole  Role   `json:"old_role"`
	NewRole  Role   `json:"new_role"`
}

// NewEmployeeRoleChangedEvent creates a new role changed event
func NewEmployeeRoleChangedEvent(e *Employee, oldRole, newRole Role) *EmployeeRoleChangedEvent {
	return &EmployeeRoleChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeRoleChanged, AggregateTypeEmployee, e.GetID()),
		Username:        e.Username,
		OldRole:         oldRole,
		NewRole:         newRole,
	}
}

// EmployeeDeactivatedEvent is raised when an employee account is deactivated
type EmployeeDeactivatedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
}

// NewEmployeeDeactivatedEvent creates a new employee deactivated event
func NewEmployeeDeactivatedEvent(e *Employee) *EmployeeDeactivatedEvent {
	return &EmployeeDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeDeactivated, AggregateTypeEmployee, e.GetID()),
		Username:        e.Username,
	}
}
