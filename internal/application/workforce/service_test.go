package workforce

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/workforce"
)

// MockEmployeeRepository is a mock implementation of workforce.EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByUsername(ctx context.Context, username string) (*workforce.Employee, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workforce.Employee, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByRole(ctx context.Context, role workforce.Role, filter shared.Filter) ([]workforce.Employee, error) {
	args := m.Called(ctx, role, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, e *workforce.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEmployeeRepository) SaveWithLock(ctx context.Context, e *workforce.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockPerformanceRepository is a mock implementation of workforce.PerformanceRepository
type MockPerformanceRepository struct {
	mock.Mock
}

func (m *MockPerformanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.PerformanceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.PerformanceRecord), args.Error(1)
}

func (m *MockPerformanceRepository) FindByEmployeeAndPeriod(ctx context.Context, employeeID uuid.UUID, year int, month time.Month) (*workforce.PerformanceRecord, error) {
	args := m.Called(ctx, employeeID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.PerformanceRecord), args.Error(1)
}

func (m *MockPerformanceRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]workforce.PerformanceRecord, error) {
	args := m.Called(ctx, employeeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.PerformanceRecord), args.Error(1)
}

func (m *MockPerformanceRepository) FindByPeriod(ctx context.Context, year int, month time.Month) ([]workforce.PerformanceRecord, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.PerformanceRecord), args.Error(1)
}

func (m *MockPerformanceRepository) Save(ctx context.Context, p *workforce.PerformanceRecord) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPerformanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func activeTailor(t *testing.T) *workforce.Employee {
	t.Helper()
	emp, err := workforce.NewEmployee("m.rossi", "needle42thread", "Marco Rossi",
		workforce.RoleTailor, time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	emp.ClearDomainEvents()
	return emp
}

func TestService_Create(t *testing.T) {
	employeeRepo := new(MockEmployeeRepository)
	svc := NewService(employeeRepo, new(MockPerformanceRepository))

	employeeRepo.On("FindByUsername", mock.Anything, "m.rossi").Return(nil, shared.ErrNotFound)
	employeeRepo.On("Save", mock.Anything, mock.AnythingOfType("*workforce.Employee")).Return(nil)

	resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Username:   "m.rossi",
		Password:   "needle42thread",
		FullName:   "Marco Rossi",
		Email:      "m.rossi@atelier.example",
		Role:       workforce.RoleTailor,
		HourlyRate: decimal.NewFromInt(35),
	})

	require.NoError(t, err)
	assert.Equal(t, "m.rossi", resp.Username)
	assert.Equal(t, workforce.RoleTailor, resp.Role)
	assert.Equal(t, workforce.EmployeeStatusActive, resp.Status)
	assert.Equal(t, "35", resp.HourlyRate.String())
	employeeRepo.AssertExpectations(t)
}

func TestService_Create_DuplicateUsername(t *testing.T) {
	existing := activeTailor(t)

	employeeRepo := new(MockEmployeeRepository)
	svc := NewService(employeeRepo, new(MockPerformanceRepository))

	employeeRepo.On("FindByUsername", mock.Anything, "m.rossi").Return(existing, nil)

	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Username: "m.rossi",
		Password: "needle42thread",
		FullName: "Marco Rossi",
		Role:     workforce.RoleTailor,
	})
	assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
	employeeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_ChangeRole(t *testing.T) {
	emp := activeTailor(t)

	employeeRepo := new(MockEmployeeRepository)
	svc := NewService(employeeRepo, new(MockPerformanceRepository))

	employeeRepo.On("FindByID", mock.Anything, emp.GetID()).Return(emp, nil)
	employeeRepo.On("Save", mock.Anything, emp).Return(nil)

	resp, err := svc.ChangeRole(context.Background(), emp.GetID(), ChangeRoleRequest{Role: workforce.RoleManager})
	require.NoError(t, err)
	assert.Equal(t, workforce.RoleManager, resp.Role)
}

func TestService_ChangePassword(t *testing.T) {
	emp := activeTailor(t)

	employeeRepo := new(MockEmployeeRepository)
	svc := NewService(employeeRepo, new(MockPerformanceRepository))

	employeeRepo.On("FindByID", mock.Anything, emp.GetID()).Return(emp, nil)
	employeeRepo.On("Save", mock.Anything, emp).Return(nil)

	err := svc.ChangePassword(context.Background(), emp.GetID(), ChangePasswordRequest{
		OldPassword: "needle42thread",
		NewPassword: "bobbin7shuttle",
	})
	require.NoError(t, err)
	assert.True(t, emp.VerifyPassword("bobbin7shuttle"))
}

func TestService_ChangePassword_WrongCurrent(t *testing.T) {
	emp := activeTailor(t)

	employeeRepo := new(MockEmployeeRepository)
	svc := NewService(employeeRepo, new(MockPerformanceRepository))

	employeeRepo.On("FindByID", mock.Anything, emp.GetID()).Return(emp, nil)

	err := svc.ChangePassword(context.Background(), emp.GetID(), ChangePasswordRequest{
		OldPassword: "wrong1password",
		NewPassword: "bobbin7shuttle",
	})
	assert.Error(t, err)
	employeeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_RecordPerformance_CreatesRecord(t *testing.T) {
	emp := activeTailor(t)

	employeeRepo := new(MockEmployeeRepository)
	performanceRepo := new(MockPerformanceRepository)
	svc := NewService(employeeRepo, performanceRepo)

	employeeRepo.On("FindByID", mock.Anything, emp.GetID()).Return(emp, nil)
	performanceRepo.On("FindByEmployeeAndPeriod", mock.Anything, emp.GetID(), 2026, time.July).
		Return(nil, shared.ErrNotFound)
	performanceRepo.On("Save", mock.Anything, mock.AnythingOfType("*workforce.PerformanceRecord")).Return(nil)

	resp, err := svc.RecordPerformance(context.Background(), emp.GetID(), RecordPerformanceRequest{
		Year:             2026,
		Month:            7,
		OrdersCompleted:  6,
		GarmentsProduced: 14,
		HoursWorked:      decimal.NewFromInt(160),
		ReworkCount:      2,
		QualityScore:     88,
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-07", resp.Period)
	assert.Equal(t, 88, resp.QualityScore)
	assert.Equal(t, "0.09", resp.GarmentsPerHour.String())
	assert.Equal(t, "0.1429", resp.ReworkRate.String())
	performanceRepo.AssertExpectations(t)
}

func TestService_RecordPerformance_UpdatesExisting(t *testing.T) {
	emp := activeTailor(t)
	record, err := workforce.NewPerformanceRecord(emp.GetID(), 2026, time.July)
	require.NoError(t, err)
	require.NoError(t, record.Record(3, 8, decimal.NewFromInt(80), 1, 75))

	employeeRepo := new(MockEmployeeRepository)
	performanceRepo := new(MockPerformanceRepository)
	svc := NewService(employeeRepo, performanceRepo)

	employeeRepo.On("FindByID", mock.Anything, emp.GetID()).Return(emp, nil)
	performanceRepo.On("FindByEmployeeAndPeriod", mock.Anything, emp.GetID(), 2026, time.July).
		Return(record, nil)
	performanceRepo.On("Save", mock.Anything, record).Return(nil)

	resp, err := svc.RecordPerformance(context.Background(), emp.GetID(), RecordPerformanceRequest{
		Year:             2026,
		Month:            7,
		OrdersCompleted:  6,
		GarmentsProduced: 14,
		HoursWorked:      decimal.NewFromInt(160),
		ReworkCount:      2,
	})

	require.NoError(t, err)
	assert.Equal(t, 6, resp.OrdersCompleted)
	assert.Equal(t, record.GetID(), resp.ID)
}

func TestService_RecordPerformance_RejectsImpossibleHours(t *testing.T) {
	emp := activeTailor(t)

	employeeRepo := new(MockEmployeeRepository)
	performanceRepo := new(MockPerformanceRepository)
	svc := NewService(employeeRepo, performanceRepo)

	employeeRepo.On("FindByID", mock.Anything, emp.GetID()).Return(emp, nil)
	performanceRepo.On("FindByEmployeeAndPeriod", mock.Anything, emp.GetID(), 2026, time.July).
		Return(nil, shared.ErrNotFound)

	_, err := svc.RecordPerformance(context.Background(), emp.GetID(), RecordPerformanceRequest{
		Year:        2026,
		Month:       7,
		HoursWorked: decimal.NewFromInt(800),
	})
	assert.Error(t, err)
	performanceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
