package workforce

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/atelier/backend/internal/domain/workforce"
)

// Service provides employee and performance application logic
type Service struct {
	employeeRepo    workforce.EmployeeRepository
	performanceRepo workforce.PerformanceRepository
	eventPublisher  shared.EventPublisher
}

// NewService creates a new workforce service
func NewService(employeeRepo workforce.EmployeeRepository, performanceRepo workforce.PerformanceRepository) *Service {
	return &Service{
		employeeRepo:    employeeRepo,
		performanceRepo: performanceRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create hires a new employee
func (s *Service) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	if existing, err := s.employeeRepo.FindByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	hiredAt := time.Time{}
	if req.HiredAt != nil {
		hiredAt = *req.HiredAt
	}
	emp, err := workforce.NewEmployee(req.Username, req.Password, req.FullName, req.Role, hiredAt)
	if err != nil {
		return nil, err
	}
	if req.Email != "" {
		if err := emp.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.Phone != "" {
		if err := emp.SetPhone(req.Phone); err != nil {
			return nil, err
		}
	}
	if !req.HourlyRate.IsZero() {
		if err := emp.SetHourlyRate(valueobject.NewMoneyUSD(req.HourlyRate)); err != nil {
			return nil, err
		}
	}

	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, emp)

	return ToEmployeeResponse(emp), nil
}

// GetByID returns an employee by ID
func (s *Service) GetByID(ctx context.Context, employeeID uuid.UUID) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return ToEmployeeResponse(emp), nil
}

// List returns employees matching the filter along with the total count
func (s *Service) List(ctx context.Context, filter ListFilter) ([]EmployeeResponse, int64, error) {
	domainFilter := buildFilter(filter)

	employees, err := s.employeeRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.employeeRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToEmployeeResponses(employees), total, nil
}

// Update changes an employee's contact details
func (s *Service) Update(ctx context.Context, employeeID uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := emp.SetFullName(req.FullName); err != nil {
		return nil, err
	}
	if err := emp.SetEmail(req.Email); err != nil {
		return nil, err
	}
	if err := emp.SetPhone(req.Phone); err != nil {
		return nil, err
	}
	emp.SetNotes(req.Notes)

	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}
	return ToEmployeeResponse(emp), nil
}

// ChangeRole changes an employee's role
func (s *Service) ChangeRole(ctx context.Context, employeeID uuid.UUID, req ChangeRoleRequest) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := emp.ChangeRole(req.Role); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, emp)

	return ToEmployeeResponse(emp), nil
}

// SetHourlyRate changes an employee's pay rate
func (s *Service) SetHourlyRate(ctx context.Context, employeeID uuid.UUID, req SetHourlyRateRequest) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := emp.SetHourlyRate(valueobject.NewMoneyUSD(req.HourlyRate)); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}
	return ToEmployeeResponse(emp), nil
}

// ChangePassword changes an employee's password after verifying the current one
func (s *Service) ChangePassword(ctx context.Context, employeeID uuid.UUID, req ChangePasswordRequest) error {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if err := emp.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return s.employeeRepo.Save(ctx, emp)
}

// ResetPassword sets a new password without checking the old one.
// Only managers may call this; the handler enforces the role.
func (s *Service) ResetPassword(ctx context.Context, employeeID uuid.UUID, req ResetPasswordRequest) error {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if err := emp.SetPassword(req.NewPassword); err != nil {
		return err
	}
	return s.employeeRepo.Save(ctx, emp)
}

// Deactivate deactivates an employee account
func (s *Service) Deactivate(ctx context.Context, employeeID uuid.UUID) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := emp.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, emp)

	return ToEmployeeResponse(emp), nil
}

// Reactivate restores a deactivated or locked employee account
func (s *Service) Reactivate(ctx context.Context, employeeID uuid.UUID) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := emp.Reactivate(); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}
	return ToEmployeeResponse(emp), nil
}

// RecordPerformance upserts an employee's production metrics for a month
func (s *Service) RecordPerformance(ctx context.Context, employeeID uuid.UUID, req RecordPerformanceRequest) (*PerformanceResponse, error) {
	if _, err := s.employeeRepo.FindByID(ctx, employeeID); err != nil {
		return nil, err
	}

	record, err := s.performanceRepo.FindByEmployeeAndPeriod(ctx, employeeID, req.Year, time.Month(req.Month))
	if err != nil {
		record, err = workforce.NewPerformanceRecord(employeeID, req.Year, time.Month(req.Month))
		if err != nil {
			return nil, err
		}
	}

	if err := record.Record(req.OrdersCompleted, req.GarmentsProduced, req.HoursWorked, req.ReworkCount, req.QualityScore); err != nil {
		return nil, err
	}
	if req.Remarks != "" {
		record.SetRemarks(req.Remarks)
	}

	if err := s.performanceRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	return ToPerformanceResponse(record), nil
}

// ListPerformance returns an employee's performance history, newest period first
func (s *Service) ListPerformance(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]PerformanceResponse, error) {
	records, err := s.performanceRepo.FindByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, err
	}
	return ToPerformanceResponses(records), nil
}

// PeriodPerformance returns all employee records for a month
func (s *Service) PeriodPerformance(ctx context.Context, year int, month time.Month) ([]PerformanceResponse, error) {
	records, err := s.performanceRepo.FindByPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return ToPerformanceResponses(records), nil
}

func (s *Service) publishEvents(ctx context.Context, emp *workforce.Employee) {
	if s.eventPublisher == nil {
		emp.ClearDomainEvents()
		return
	}
	events := emp.GetDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	emp.ClearDomainEvents()
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
	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}
