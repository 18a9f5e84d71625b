package compliance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/atelier/backend/internal/domain/compliance"
	"github.com/atelier/backend/internal/domain/shared"
)

// Service provides compliance report application logic
type Service struct {
	reportRepo     compliance.Repository
	eventPublisher shared.EventPublisher
}

// NewService creates a new compliance service
func NewService(reportRepo compliance.Repository) *Service {
	return &Service{reportRepo: reportRepo}
}

// SetEventPublisher sets the event publisher for domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// File registers a new compliance report
func (s *Service) File(ctx context.Context, req FileReportRequest) (*ReportResponse, error) {
	if existing, err := s.reportRepo.FindByReferenceNo(ctx, req.ReferenceNo); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	report, err := compliance.NewReport(req.ReferenceNo, req.Category, req.Title, req.Description, req.ReportedBy)
	if err != nil {
		return nil, err
	}
	if req.DueDate != nil {
		if err := report.SetDueDate(*req.DueDate); err != nil {
			return nil, err
		}
	}

	if err := s.reportRepo.Save(ctx, report); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, report)

	return ToReportResponse(report), nil
}

// GetByID returns a report by ID
func (s *Service) GetByID(ctx context.Context, reportID uuid.UUID) (*ReportResponse, error) {
	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	return ToReportResponse(report), nil
}

// List returns reports matching the filter along with the total count
func (s *Service) List(ctx context.Context, filter ListFilter) ([]ReportResponse, int64, error) {
	domainFilter := buildFilter(filter)

	reports, err := s.reportRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reportRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToReportResponses(reports), total, nil
}

// ListOverdue returns open reports past their due date
func (s *Service) ListOverdue(ctx context.Context) ([]ReportResponse, error) {
	reports, err := s.reportRepo.FindOverdue(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	return ToReportResponses(reports), nil
}

// Update changes title and description while the report is open
func (s *Service) Update(ctx context.Context, reportID uuid.UUID, req UpdateReportRequest) (*ReportResponse, error) {
	return s.transition(ctx, reportID, func(r *compliance.Report) error {
		return r.UpdateDetails(req.Title, req.Description)
	})
}

// StartReview assigns a reviewer and moves the report into review
func (s *Service) StartReview(ctx context.Context, reportID uuid.UUID, req StartReviewRequest) (*ReportResponse, error) {
	return s.transition(ctx, reportID, func(r *compliance.Report) error {
		return r.StartReview(req.AssigneeID)
	})
}

// Resolve closes the report with a resolution note
func (s *Service) Resolve(ctx context.Context, reportID uuid.UUID, req ResolveReportRequest) (*ReportResponse, error) {
	return s.transition(ctx, reportID, func(r *compliance.Report) error {
		return r.Resolve(req.Resolution)
	})
}

// Escalate closes the report as escalated to an external authority
func (s *Service) Escalate(ctx context.Context, reportID uuid.UUID, req EscalateReportRequest) (*ReportResponse, error) {
	return s.transition(ctx, reportID, func(r *compliance.Report) error {
		return r.Escalate(req.Reason)
	})
}

func (s *Service) transition(ctx context.Context, reportID uuid.UUID, op func(*compliance.Report) error) (*ReportResponse, error) {
	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := op(report); err != nil {
		return nil, err
	}
	report.IncrementVersion()
	if err := s.reportRepo.SaveWithLock(ctx, report); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, report)

	return ToReportResponse(report), nil
}

func (s *Service) publishEvents(ctx context.Context, report *compliance.Report) {
	if s.eventPublisher == nil {
		report.ClearDomainEvents()
		return
	}
	events := report.GetDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	report.ClearDomainEvents()
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
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}
