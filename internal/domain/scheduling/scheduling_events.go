package scheduling

import (
	"time"

	"github.com/atelier/backend/internal/domain/shared"
)

const (
	AggregateTypeSchedule = "Schedule"

	EventTypeScheduleCreated    = "scheduling.schedule.created"
	EventTypeScheduleDispatched = "scheduling.schedule.dispatched"
)

// ScheduleCreatedEvent is raised when a schedule is created
type ScheduleCreatedEvent struct {
	shared.BaseDomainEvent
	Name      string    `json:"name"`
	Kind      Kind      `json:"kind"`
	Cadence   Cadence   `json:"cadence"`
	NextRunAt time.Time `json:"next_run_at"`
}

// NewScheduleCreatedEvent creates a new schedule created event
func NewScheduleCreatedEvent(s *Schedule) *ScheduleCreatedEvent {
	return &ScheduleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeScheduleCreated, AggregateTypeSchedule, s.GetID()),
		Name:            s.Name,
		Kind:            s.Kind,
		Cadence:         s.Cadence,
		NextRunAt:       s.NextRunAt,
	}
}

// ScheduleDispatchedEvent is raised when a schedule occurrence fires
type ScheduleDispatchedEvent struct {
	shared.BaseDomainEvent
	Name         string    `json:"name"`
	Kind         Kind      `json:"kind"`
	DispatchedAt time.Time `json:"dispatched_at"`
	NextRunAt    time.Time `json:"next_run_at"`
}

// NewScheduleDispatchedEvent creates a new schedule dispatched event
func NewScheduleDispatchedEvent(s *Schedule, dispatchedAt time.Time) *ScheduleDispatchedEvent {
	return &ScheduleDispatchedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeScheduleDispatched, AggregateTypeSchedule, s.GetID()),
		Name:            s.Name,
		Kind:            s.Kind,
		DispatchedAt:    dispatchedAt,
		NextRunAt:       s.NextRunAt,
	}
}
