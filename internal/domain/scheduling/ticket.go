package scheduling

import (
	"strings"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TicketStatus is the state of a maintenance ticket
type TicketStatus string

const (
	TicketOpen      TicketStatus = "OPEN"
	TicketCompleted TicketStatus = "COMPLETED"
	TicketSkipped   TicketStatus = "SKIPPED"
)

// IsValid checks if the ticket status is valid
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketOpen, TicketCompleted, TicketSkipped:
		return true
	}
	return false
}

// Ticket is one dispatched occurrence of a maintenance schedule
type Ticket struct {
	shared.BaseEntity
	ScheduleID  uuid.UUID
	EquipmentID uuid.UUID
	DueAt       time.Time
	Status      TicketStatus
	CompletedAt *time.Time
	CompletedBy *uuid.UUID
	Notes       string
}

// NewTicket opens a maintenance ticket for a schedule occurrence
func NewTicket(scheduleID, equipmentID uuid.UUID, dueAt time.Time) (*Ticket, error) {
	if scheduleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCHEDULE", "Ticket must reference a schedule")
	}
	if equipmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EQUIPMENT", "Ticket must reference equipment")
	}

	return &Ticket{
		BaseEntity:  shared.NewBaseEntity(),
		ScheduleID:  scheduleID,
		EquipmentID: equipmentID,
		DueAt:       dueAt,
		Status:      TicketOpen,
	}, nil
}

// Complete closes the ticket with the servicing employee and notes
func (t *Ticket) Complete(completedBy uuid.UUID, notes string) error {
	if t.Status != TicketOpen {
		return shared.ErrInvalidState
	}
	if completedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_EMPLOYEE", "Ticket completion must record an employee")
	}
	now := time.Now()
	t.Status = TicketCompleted
	t.CompletedAt = &now
	t.CompletedBy = &completedBy
	t.Notes = strings.TrimSpace(notes)
	t.Touch()
	return nil
}

// Skip closes the ticket without service, with a reason
func (t *Ticket) Skip(reason string) error {
	if t.Status != TicketOpen {
		return shared.ErrInvalidState
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Skipping a ticket requires a reason")
	}
	t.Status = TicketSkipped
	t.Notes = reason
	t.Touch()
	return nil
}
