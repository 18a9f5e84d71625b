package scheduling

import (
	"strings"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Kind distinguishes what a schedule dispatches
type Kind string

const (
	KindReport      Kind = "REPORT"
	KindMaintenance Kind = "MAINTENANCE"
)

// IsValid checks if the kind is valid
func (k Kind) IsValid() bool {
	return k == KindReport || k == KindMaintenance
}

// String returns the string representation
func (k Kind) String() string {
	return string(k)
}

// Schedule is the aggregate root for a recurring job. Report schedules
// render a template on their cadence; maintenance schedules open a
// service ticket for a piece of equipment.
type Schedule struct {
	shared.BaseAggregateRoot
	Name        string
	Kind        Kind
	Cadence     Cadence
	AnchorDay   int
	NextRunAt   time.Time
	LastRunAt   *time.Time
	TemplateID  *uuid.UUID
	EquipmentID *uuid.UUID
	Recipients  []string
	Active      bool
}

// NewReportSchedule creates a schedule that renders a report template
func NewReportSchedule(name string, cadence Cadence, firstRunAt time.Time, templateID uuid.UUID, recipients []string) (*Schedule, error) {
	s, err := newSchedule(name, KindReport, cadence, firstRunAt)
	if err != nil {
		return nil, err
	}
	if templateID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TEMPLATE", "Report schedule must reference a template")
	}
	s.TemplateID = &templateID
	s.Recipients = recipients
	s.AddDomainEvent(NewScheduleCreatedEvent(s))
	return s, nil
}

// NewMaintenanceSchedule creates a schedule that opens service tickets
func NewMaintenanceSchedule(name string, cadence Cadence, firstRunAt time.Time, equipmentID uuid.UUID) (*Schedule, error) {
	s, err := newSchedule(name, KindMaintenance, cadence, firstRunAt)
	if err != nil {
		return nil, err
	}
	if equipmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EQUIPMENT", "Maintenance schedule must reference equipment")
	}
	s.EquipmentID = &equipmentID
	s.AddDomainEvent(NewScheduleCreatedEvent(s))
	return s, nil
}

func newSchedule(name string, kind Kind, cadence Cadence, firstRunAt time.Time) (*Schedule, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Schedule name cannot be empty")
	}
	if !cadence.IsValid() {
		return nil, shared.NewDomainError("INVALID_CADENCE", "Invalid cadence: "+cadence.String())
	}
	if firstRunAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_FIRST_RUN", "Schedule must have a first run time")
	}

	return &Schedule{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Kind:              kind,
		Cadence:           cadence,
		AnchorDay:         firstRunAt.Day(),
		NextRunAt:         firstRunAt,
		Active:            true,
	}, nil
}

// IsDue reports whether the schedule should fire at the given instant
func (s *Schedule) IsDue(now time.Time) bool {
	return s.Active && !now.Before(s.NextRunAt)
}

// MarkRun records a dispatch and advances the next run. The next run is
// computed from the scheduled time, not the dispatch time, so a late
// dispatcher does not drift the schedule.
func (s *Schedule) MarkRun(dispatchedAt time.Time) error {
	if !s.Active {
		return shared.NewDomainError("SCHEDULE_PAUSED", "Cannot run a paused schedule")
	}

	s.LastRunAt = &dispatchedAt
	next := s.Cadence.Next(s.NextRunAt, s.AnchorDay)
	// Catch up if multiple periods were missed.
	for !next.After(dispatchedAt) {
		next = s.Cadence.Next(next, s.AnchorDay)
	}
	s.NextRunAt = next
	s.Touch()
	s.AddDomainEvent(NewScheduleDispatchedEvent(s, dispatchedAt))
	return nil
}

// Reschedule changes the cadence and next run
func (s *Schedule) Reschedule(cadence Cadence, nextRunAt time.Time) error {
	if !cadence.IsValid() {
		return shared.NewDomainError("INVALID_CADENCE", "Invalid cadence: "+cadence.String())
	}
	if nextRunAt.IsZero() {
		return shared.NewDomainError("INVALID_FIRST_RUN", "Schedule must have a next run time")
	}
	s.Cadence = cadence
	s.AnchorDay = nextRunAt.Day()
	s.NextRunAt = nextRunAt
	s.Touch()
	return nil
}

// SetRecipients replaces the delivery list for a report schedule
func (s *Schedule) SetRecipients(recipients []string) error {
	if s.Kind != KindReport {
		return shared.NewDomainError("INVALID_KIND", "Only report schedules have recipients")
	}
	s.Recipients = recipients
	s.Touch()
	return nil
}

// Pause stops the schedule from dispatching
func (s *Schedule) Pause() error {
	if !s.Active {
		return shared.ErrInvalidState
	}
	s.Active = false
	s.Touch()
	return nil
}

// Resume reactivates a paused schedule. Missed periods are skipped:
// the next run moves forward until it is in the future.
func (s *Schedule) Resume(now time.Time) error {
	if s.Active {
		return shared.ErrInvalidState
	}
	s.Active = true
	for !s.NextRunAt.After(now) {
		s.NextRunAt = s.Cadence.Next(s.NextRunAt, s.AnchorDay)
	}
	s.Touch()
	return nil
}
