package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	exportapp "github.com/atelier/backend/internal/application/export"
	"github.com/atelier/backend/internal/domain/export"
	"github.com/atelier/backend/internal/domain/reporting"
	"github.com/atelier/backend/internal/domain/scheduling"
	"github.com/atelier/backend/internal/domain/shared"
)

// ExportEnqueuer queues export jobs for dispatched report schedules
type ExportEnqueuer interface {
	Enqueue(ctx context.Context, req exportapp.EnqueueJobRequest) (*exportapp.JobResponse, error)
}

// Service provides schedule, equipment and ticket application logic,
// including the dispatch sweep that fires due schedules.
type Service struct {
	logger         *zap.Logger
	scheduleRepo   scheduling.ScheduleRepository
	equipmentRepo  scheduling.EquipmentRepository
	ticketRepo     scheduling.TicketRepository
	templateRepo   reporting.TemplateRepository
	exporter       ExportEnqueuer
	systemOperator uuid.UUID
	eventPublisher shared.EventPublisher
}

// NewService creates a new scheduling service
func NewService(logger *zap.Logger, scheduleRepo scheduling.ScheduleRepository, equipmentRepo scheduling.EquipmentRepository, ticketRepo scheduling.TicketRepository, templateRepo reporting.TemplateRepository) *Service {
	return &Service{
		logger:        logger,
		scheduleRepo:  scheduleRepo,
		equipmentRepo: equipmentRepo,
		ticketRepo:    ticketRepo,
		templateRepo:  templateRepo,
	}
}

// SetExporter wires the export queue used by report schedules. Scheduled
// exports are attributed to the given system operator account.
func (s *Service) SetExporter(exporter ExportEnqueuer, systemOperator uuid.UUID) {
	s.exporter = exporter
	s.systemOperator = systemOperator
}

// SetEventPublisher sets the event publisher for domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateReportSchedule creates a schedule that renders a report template
func (s *Service) CreateReportSchedule(ctx context.Context, req CreateReportScheduleRequest) (*ScheduleResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}
	if !template.Active {
		return nil, shared.NewDomainError("TEMPLATE_INACTIVE", "Cannot schedule a retired template")
	}

	schedule, err := scheduling.NewReportSchedule(req.Name, req.Cadence, req.FirstRunAt, template.GetID(), req.Recipients)
	if err != nil {
		return nil, err
	}
	if err := s.scheduleRepo.Save(ctx, schedule); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, schedule)

	return ToScheduleResponse(schedule), nil
}

// CreateMaintenanceSchedule creates a schedule that opens service tickets
func (s *Service) CreateMaintenanceSchedule(ctx context.Context, req CreateMaintenanceScheduleRequest) (*ScheduleResponse, error) {
	equipment, err := s.equipmentRepo.FindByID(ctx, req.EquipmentID)
	if err != nil {
		return nil, err
	}
	if !equipment.Active {
		return nil, shared.NewDomainError("EQUIPMENT_RETIRED", "Cannot schedule maintenance for retired equipment")
	}

	schedule, err := scheduling.NewMaintenanceSchedule(req.Name, req.Cadence, req.FirstRunAt, equipment.GetID())
	if err != nil {
		return nil, err
	}
	if err := s.scheduleRepo.Save(ctx, schedule); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, schedule)

	return ToScheduleResponse(schedule), nil
}

// GetSchedule returns a schedule by ID
func (s *Service) GetSchedule(ctx context.Context, scheduleID uuid.UUID) (*ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	return ToScheduleResponse(schedule), nil
}

// ListSchedules returns schedules matching the filter along with the total count
func (s *Service) ListSchedules(ctx context.Context, filter ListFilter) ([]ScheduleResponse, int64, error) {
	domainFilter := buildFilter(filter)

	schedules, err := s.scheduleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.scheduleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToScheduleResponses(schedules), total, nil
}

// Reschedule changes a schedule's cadence and next run
func (s *Service) Reschedule(ctx context.Context, scheduleID uuid.UUID, req RescheduleRequest) (*ScheduleResponse, error) {
	return s.mutate(ctx, scheduleID, func(sch *scheduling.Schedule) error {
		return sch.Reschedule(req.Cadence, req.NextRunAt)
	})
}

// SetRecipients replaces a report schedule's delivery list
func (s *Service) SetRecipients(ctx context.Context, scheduleID uuid.UUID, req SetRecipientsRequest) (*ScheduleResponse, error) {
	return s.mutate(ctx, scheduleID, func(sch *scheduling.Schedule) error {
		return sch.SetRecipients(req.Recipients)
	})
}

// PauseSchedule stops a schedule from dispatching
func (s *Service) PauseSchedule(ctx context.Context, scheduleID uuid.UUID) (*ScheduleResponse, error) {
	return s.mutate(ctx, scheduleID, func(sch *scheduling.Schedule) error {
		return sch.Pause()
	})
}

// ResumeSchedule reactivates a paused schedule, skipping missed periods
func (s *Service) ResumeSchedule(ctx context.Context, scheduleID uuid.UUID) (*ScheduleResponse, error) {
	return s.mutate(ctx, scheduleID, func(sch *scheduling.Schedule) error {
		return sch.Resume(time.Now())
	})
}

// DeleteSchedule removes a schedule
func (s *Service) DeleteSchedule(ctx context.Context, scheduleID uuid.UUID) error {
	if _, err := s.scheduleRepo.FindByID(ctx, scheduleID); err != nil {
		return err
	}
	return s.scheduleRepo.Delete(ctx, scheduleID)
}

// Dispatch fires every due schedule once: report schedules queue a PDF
// export of their template, maintenance schedules open a service ticket.
// A failing schedule is skipped and retried on the next sweep.
func (s *Service) Dispatch(ctx context.Context, now time.Time) (*DispatchResult, error) {
	due, err := s.scheduleRepo.FindDue(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &DispatchResult{}
	for i := range due {
		schedule := &due[i]
		scheduledAt := schedule.NextRunAt

		var dispatchErr error
		switch schedule.Kind {
		case scheduling.KindReport:
			dispatchErr = s.dispatchReport(ctx, schedule, scheduledAt)
			if dispatchErr == nil {
				result.Reports++
			}
		case scheduling.KindMaintenance:
			var opened bool
			opened, dispatchErr = s.dispatchMaintenance(ctx, schedule, scheduledAt)
			if dispatchErr == nil && !opened {
				// Schedule was paused because its equipment is retired.
				result.Skipped++
				continue
			}
			if dispatchErr == nil {
				result.Tickets++
			}
		}
		if dispatchErr != nil {
			s.logger.Error("schedule dispatch failed",
				zap.String("schedule_id", schedule.GetID().String()),
				zap.String("schedule_name", schedule.Name),
				zap.String("kind", schedule.Kind.String()),
				zap.Error(dispatchErr),
			)
			result.Skipped++
			continue
		}

		if err := schedule.MarkRun(now); err != nil {
			s.logger.Error("failed to advance schedule",
				zap.String("schedule_id", schedule.GetID().String()),
				zap.Error(err),
			)
			result.Skipped++
			continue
		}
		schedule.IncrementVersion()
		if err := s.scheduleRepo.SaveWithLock(ctx, schedule); err != nil {
			s.logger.Error("failed to save dispatched schedule",
				zap.String("schedule_id", schedule.GetID().String()),
				zap.Error(err),
			)
			result.Skipped++
			continue
		}

		s.publishEvents(ctx, schedule)
		result.Dispatched++
	}
	return result, nil
}

func (s *Service) dispatchReport(ctx context.Context, schedule *scheduling.Schedule, scheduledAt time.Time) error {
	if s.exporter == nil {
		return shared.NewDomainError("EXPORTER_UNSET", "No export queue is wired for report schedules")
	}

	req := exportapp.EnqueueJobRequest{
		Dataset:     export.DatasetOrders,
		Format:      export.FormatPDF,
		TemplateID:  schedule.TemplateID,
		RequestedBy: s.systemOperator,
		// One key per occurrence: a restarted dispatcher cannot double-queue.
		IdempotencyKey: fmt.Sprintf("schedule:%s:%d", schedule.GetID(), scheduledAt.Unix()),
	}
	if schedule.LastRunAt != nil {
		start := *schedule.LastRunAt
		req.PeriodStart = &start
		req.PeriodEnd = &scheduledAt
	}

	_, err := s.exporter.Enqueue(ctx, req)
	if err != nil && errors.Is(err, shared.ErrAlreadyExists) {
		// Already queued by a previous sweep.
		return nil
	}
	return err
}

func (s *Service) dispatchMaintenance(ctx context.Context, schedule *scheduling.Schedule, scheduledAt time.Time) (bool, error) {
	equipment, err := s.equipmentRepo.FindByID(ctx, *schedule.EquipmentID)
	if err != nil {
		return false, err
	}
	if !equipment.Active {
		// Retired equipment stops its schedule instead of piling up tickets.
		if err := schedule.Pause(); err != nil {
			return false, err
		}
		return false, s.scheduleRepo.Save(ctx, schedule)
	}

	ticket, err := scheduling.NewTicket(schedule.GetID(), equipment.GetID(), scheduledAt)
	if err != nil {
		return false, err
	}
	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return false, err
	}
	return true, nil
}

// RegisterEquipment registers a serviceable machine
func (s *Service) RegisterEquipment(ctx context.Context, req RegisterEquipmentRequest) (*EquipmentResponse, error) {
	if existing, err := s.equipmentRepo.FindBySerialNo(ctx, req.SerialNo); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	equipment, err := scheduling.NewEquipment(req.Name, req.SerialNo, req.Location)
	if err != nil {
		return nil, err
	}
	if req.PurchasedAt != nil {
		if err := equipment.SetPurchaseDate(*req.PurchasedAt); err != nil {
			return nil, err
		}
	}
	if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
		return nil, err
	}
	return ToEquipmentResponse(equipment), nil
}

// GetEquipment returns equipment by ID
func (s *Service) GetEquipment(ctx context.Context, equipmentID uuid.UUID) (*EquipmentResponse, error) {
	equipment, err := s.equipmentRepo.FindByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	return ToEquipmentResponse(equipment), nil
}

// ListEquipment returns equipment matching the filter along with the total count
func (s *Service) ListEquipment(ctx context.Context, filter ListFilter) ([]EquipmentResponse, int64, error) {
	domainFilter := buildFilter(filter)

	equipment, err := s.equipmentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.equipmentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToEquipmentResponses(equipment), total, nil
}

// RelocateEquipment moves equipment to a new location
func (s *Service) RelocateEquipment(ctx context.Context, equipmentID uuid.UUID, req RelocateEquipmentRequest) (*EquipmentResponse, error) {
	equipment, err := s.equipmentRepo.FindByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	equipment.Relocate(req.Location)
	if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
		return nil, err
	}
	return ToEquipmentResponse(equipment), nil
}

// RetireEquipment removes equipment from service
func (s *Service) RetireEquipment(ctx context.Context, equipmentID uuid.UUID) (*EquipmentResponse, error) {
	equipment, err := s.equipmentRepo.FindByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if err := equipment.Retire(); err != nil {
		return nil, err
	}
	if err := s.equipmentRepo.Save(ctx, equipment); err != nil {
		return nil, err
	}
	return ToEquipmentResponse(equipment), nil
}

// CompleteTicket closes a ticket and records the service on the equipment
func (s *Service) CompleteTicket(ctx context.Context, ticketID uuid.UUID, req CompleteTicketRequest) (*TicketResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := ticket.Complete(req.CompletedBy, req.Notes); err != nil {
		return nil, err
	}
	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepo.FindByID(ctx, ticket.EquipmentID)
	if err == nil {
		if err := equipment.RecordService(*ticket.CompletedAt); err == nil {
			_ = s.equipmentRepo.Save(ctx, equipment)
		}
	}

	return ToTicketResponse(ticket), nil
}

// SkipTicket closes a ticket without service
func (s *Service) SkipTicket(ctx context.Context, ticketID uuid.UUID, req SkipTicketRequest) (*TicketResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := ticket.Skip(req.Reason); err != nil {
		return nil, err
	}
	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}
	return ToTicketResponse(ticket), nil
}

// ListOpenTickets returns open tickets, oldest due first
func (s *Service) ListOpenTickets(ctx context.Context, filter ListFilter) ([]TicketResponse, error) {
	tickets, err := s.ticketRepo.FindOpen(ctx, buildFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToTicketResponses(tickets), nil
}

// ListTicketsByEquipment returns the service history for a piece of equipment
func (s *Service) ListTicketsByEquipment(ctx context.Context, equipmentID uuid.UUID, filter ListFilter) ([]TicketResponse, error) {
	tickets, err := s.ticketRepo.FindByEquipment(ctx, equipmentID, buildFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToTicketResponses(tickets), nil
}

func (s *Service) mutate(ctx context.Context, scheduleID uuid.UUID, op func(*scheduling.Schedule) error) (*ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if err := op(schedule); err != nil {
		return nil, err
	}
	if err := s.scheduleRepo.Save(ctx, schedule); err != nil {
		return nil, err
	}
	return ToScheduleResponse(schedule), nil
}

func (s *Service) publishEvents(ctx context.Context, schedule *scheduling.Schedule) {
	if s.eventPublisher == nil {
		schedule.ClearDomainEvents()
		return
	}
	events := schedule.GetDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	schedule.ClearDomainEvents()
}

func buildFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir
	if filter.Kind != "" {
		domainFilter.Filters["kind"] = filter.Kind
	}
	return domainFilter
}
