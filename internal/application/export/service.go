package export

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/atelier/backend/internal/domain/export"
	"github.com/atelier/backend/internal/domain/reporting"
	"github.com/atelier/backend/internal/domain/shared"
)

// idempotencyTTL is how long a submitted idempotency key blocks duplicates
const idempotencyTTL = 24 * time.Hour

// Service provides export job application logic. Execution happens in the
// infrastructure worker pool; the service only manages the queue.
type Service struct {
	jobRepo          export.Repository
	templateRepo     reporting.TemplateRepository
	idempotencyStore shared.IdempotencyStore
	eventPublisher   shared.EventPublisher
}

// NewService creates a new export service
func NewService(jobRepo export.Repository, templateRepo reporting.TemplateRepository) *Service {
	return &Service{
		jobRepo:      jobRepo,
		templateRepo: templateRepo,
	}
}

// SetIdempotencyStore sets the store used to dedupe double submits
func (s *Service) SetIdempotencyStore(store shared.IdempotencyStore) {
	s.idempotencyStore = store
}

// SetEventPublisher sets the event publisher for domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Enqueue queues a new export job. PDF exports must reference an active
// template. A repeated idempotency key is rejected instead of queuing twice.
func (s *Service) Enqueue(ctx context.Context, req EnqueueJobRequest) (*JobResponse, error) {
	if req.IdempotencyKey != "" && s.idempotencyStore != nil {
		fresh, err := s.idempotencyStore.MarkProcessed(ctx, "export:"+req.IdempotencyKey, idempotencyTTL)
		if err != nil {
			return nil, err
		}
		if !fresh {
			return nil, shared.ErrAlreadyExists
		}
	}

	job, err := export.NewJob(req.Dataset, req.Format, req.RequestedBy)
	if err != nil {
		return nil, err
	}

	if req.Format == export.FormatPDF {
		if req.TemplateID == nil {
			return nil, shared.NewDomainError("TEMPLATE_REQUIRED", "PDF exports require a report template")
		}
		template, err := s.templateRepo.FindByID(ctx, *req.TemplateID)
		if err != nil {
			return nil, err
		}
		if !template.Active {
			return nil, shared.NewDomainError("TEMPLATE_INACTIVE", "Cannot export with a retired template")
		}
		if err := job.SetTemplate(template.GetID()); err != nil {
			return nil, err
		}
	}

	if req.PeriodStart != nil && req.PeriodEnd != nil {
		if err := job.SetPeriod(*req.PeriodStart, *req.PeriodEnd); err != nil {
			return nil, err
		}
	}

	if err := s.jobRepo.Save(ctx, job); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, job)

	return ToJobResponse(job), nil
}

// GetByID returns a job by ID
func (s *Service) GetByID(ctx context.Context, jobID uuid.UUID) (*JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return ToJobResponse(job), nil
}

// List returns jobs matching the filter along with the total count
func (s *Service) List(ctx context.Context, filter ListFilter) ([]JobResponse, int64, error) {
	domainFilter := buildFilter(filter)

	jobs, err := s.jobRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.jobRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToJobResponses(jobs), total, nil
}

// ListByRequester returns the jobs queued by an employee
func (s *Service) ListByRequester(ctx context.Context, requestedBy uuid.UUID, filter ListFilter) ([]JobResponse, error) {
	jobs, err := s.jobRepo.FindByRequester(ctx, requestedBy, buildFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToJobResponses(jobs), nil
}

// Cancel stops a job that has not finished. Only the employee who queued
// the job, or a caller with management permissions, may cancel it. A
// running job keeps executing until its worker observes the cancellation
// on the next progress write.
func (s *Service) Cancel(ctx context.Context, jobID, cancelledBy uuid.UUID, canManage bool) (*JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !canManage && job.RequestedBy != cancelledBy {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the requester or a manager can cancel this job")
	}
	if err := job.Cancel(); err != nil {
		return nil, err
	}
	job.IncrementVersion()
	if err := s.jobRepo.SaveWithLock(ctx, job); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, job)

	return ToJobResponse(job), nil
}

// Retry puts a permanently failed job back on the queue with a fresh
// attempt budget
func (s *Service) Retry(ctx context.Context, jobID uuid.UUID) (*JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := job.Retry(); err != nil {
		return nil, err
	}
	job.IncrementVersion()
	if err := s.jobRepo.SaveWithLock(ctx, job); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, job)

	return ToJobResponse(job), nil
}

// Stats summarizes the export queue by status
func (s *Service) Stats(ctx context.Context) (*QueueStats, error) {
	stats := &QueueStats{}
	counts := []struct {
		status export.JobStatus
		target *int64
	}{
		{export.JobStatusPending, &stats.Pending},
		{export.JobStatusRunning, &stats.Running},
		{export.JobStatusCompleted, &stats.Completed},
		{export.JobStatusFailed, &stats.Failed},
		{export.JobStatusCancelled, &stats.Cancelled},
	}
	for _, c := range counts {
		n, err := s.jobRepo.CountByStatus(ctx, c.status)
		if err != nil {
			return nil, err
		}
		*c.target = n
	}
	return stats, nil
}

func (s *Service) publishEvents(ctx context.Context, job *export.Job) {
	if s.eventPublisher == nil {
		job.ClearDomainEvents()
		return
	}
	events := job.GetDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	job.ClearDomainEvents()
}

func buildFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Dataset != "" {
		domainFilter.Filters["dataset"] = filter.Dataset
	}
	return domainFilter
}
