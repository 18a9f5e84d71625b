package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/workforce"
	"github.com/atelier/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements workforce.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee by its ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUsername finds an employee by username
func (r *GormEmployeeRepository) FindByUsername(ctx context.Context, username string) (*workforce.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all employees matching the filter
func (r *GormEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workforce.Employee, error) {
	var employeeModels []models.EmployeeModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.EmployeeModel{}), filter)
	if err := query.Find(&employeeModels).Error; err != nil {
		return nil, err
	}
	return toEmployees(employeeModels), nil
}

// FindByRole finds employees with a given role
func (r *GormEmployeeRepository) FindByRole(ctx context.Context, role workforce.Role, filter shared.Filter) ([]workforce.Employee, error) {
	var employeeModels []models.EmployeeModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.EmployeeModel{}).Where("role = ?", role),
		filter,
	)
	if err := query.Find(&employeeModels).Error; err != nil {
		return nil, err
	}
	return toEmployees(employeeModels), nil
}

// Save creates or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, e *workforce.Employee) error {
	var model models.EmployeeModel
	model.FromDomain(e)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveWithLock saves an employee with optimistic locking (version check)
func (r *GormEmployeeRepository) SaveWithLock(ctx context.Context, e *workforce.Employee) error {
	var model models.EmployeeModel
	model.FromDomain(e)

	currentVersion := e.Version
	model.Version = currentVersion + 1
	model.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).
		Model(&models.EmployeeModel{}).
		Where("id = ? AND version = ?", e.GetID(), currentVersion).
		Select("*").Omit("id", "created_at").
		Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The employee record has been modified by another transaction")
	}
	e.Version = model.Version
	return nil
}

// Delete deletes an employee
func (r *GormEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EmployeeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts employees matching the filter
func (r *GormEmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.EmployeeModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toEmployees(employeeModels []models.EmployeeModel) []workforce.Employee {
	employees := make([]workforce.Employee, len(employeeModels))
	for i := range employeeModels {
		employees[i] = *employeeModels[i].ToDomain()
	}
	return employees
}

func (r *GormEmployeeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, EmployeeSortFields, "full_name")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormEmployeeRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("username ILIKE ? OR full_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "role":
			query = query.Where("role = ?", value)
		}
	}
	return query
}

// GormPerformanceRepository implements workforce.PerformanceRepository using GORM
type GormPerformanceRepository struct {
	db *gorm.DB
}

// NewGormPerformanceRepository creates a new GormPerformanceRepository
func NewGormPerformanceRepository(db *gorm.DB) *GormPerformanceRepository {
	return &GormPerformanceRepository{db: db}
}

// FindByID finds a performance record by its ID
func (r *GormPerformanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.PerformanceRecord, error) {
	var model models.PerformanceRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmployeeAndPeriod finds the record for an employee in a month
func (r *GormPerformanceRepository) FindByEmployeeAndPeriod(ctx context.Context, employeeID uuid.UUID, year int, month time.Month) (*workforce.PerformanceRecord, error) {
	var model models.PerformanceRecordModel
	if err := r.db.WithContext(ctx).
		Where("employee_id = ? AND year = ? AND month = ?", employeeID, year, int(month)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmployee finds all records for an employee, newest period first
func (r *GormPerformanceRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]workforce.PerformanceRecord, error) {
	var recordModels []models.PerformanceRecordModel
	query := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("year DESC, month DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toPerformanceRecords(recordModels), nil
}

// FindByPeriod finds all employee records for a month
func (r *GormPerformanceRepository) FindByPeriod(ctx context.Context, year int, month time.Month) ([]workforce.PerformanceRecord, error) {
	var recordModels []models.PerformanceRecordModel
	if err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, int(month)).
		Order("employee_id ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toPerformanceRecords(recordModels), nil
}

// Save creates or updates a performance record
func (r *GormPerformanceRepository) Save(ctx context.Context, p *workforce.PerformanceRecord) error {
	var model models.PerformanceRecordModel
	model.FromDomain(p)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a performance record
func (r *GormPerformanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PerformanceRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toPerformanceRecords(recordModels []models.PerformanceRecordModel) []workforce.PerformanceRecord {
	records := make([]workforce.PerformanceRecord, len(recordModels))
	for i := range recordModels {
		records[i] = *recordModels[i].ToDomain()
	}
	return records
}
