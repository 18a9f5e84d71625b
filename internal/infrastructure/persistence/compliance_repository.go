package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/atelier/backend/internal/domain/compliance"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormComplianceRepository implements compliance.Repository using GORM
type GormComplianceRepository struct {
	db *gorm.DB
}

// NewGormComplianceRepository creates a new GormComplianceRepository
func NewGormComplianceRepository(db *gorm.DB) *GormComplianceRepository {
	return &GormComplianceRepository{db: db}
}

// FindByID finds a report by its ID
func (r *GormComplianceRepository) FindByID(ctx context.Context, id uuid.UUID) (*compliance.Report, error) {
	var model models.ComplianceReportModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReferenceNo finds a report by its reference number
func (r *GormComplianceRepository) FindByReferenceNo(ctx context.Context, referenceNo string) (*compliance.Report, error) {
	var model models.ComplianceReportModel
	if err := r.db.WithContext(ctx).Where("reference_no = ?", referenceNo).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all reports matching the filter
func (r *GormComplianceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]compliance.Report, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ComplianceReportModel{}), filter)
	return r.findReports(query)
}

// FindByStatus finds reports in a given status
func (r *GormComplianceRepository) FindByStatus(ctx context.Context, status compliance.Status, filter shared.Filter) ([]compliance.Report, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ComplianceReportModel{}).Where("status = ?", status),
		filter,
	)
	return r.findReports(query)
}

// FindByCategory finds reports of a given category
func (r *GormComplianceRepository) FindByCategory(ctx context.Context, category compliance.Category, filter shared.Filter) ([]compliance.Report, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ComplianceReportModel{}).Where("category = ?", category),
		filter,
	)
	return r.findReports(query)
}

// FindOverdue finds open reports past their due date
func (r *GormComplianceRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]compliance.Report, error) {
	var reportModels []models.ComplianceReportModel
	if err := r.db.WithContext(ctx).
		Where("status IN ? AND due_date < ?",
			[]compliance.Status{compliance.StatusOpen, compliance.StatusInReview, compliance.StatusEscalated}, asOf).
		Order("due_date ASC").
		Find(&reportModels).Error; err != nil {
		return nil, err
	}
	return toReports(reportModels), nil
}

// Save creates or updates a report
func (r *GormComplianceRepository) Save(ctx context.Context, report *compliance.Report) error {
	var model models.ComplianceReportModel
	model.FromDomain(report)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveWithLock saves a report with optimistic locking. The caller has
// already incremented the aggregate version.
func (r *GormComplianceRepository) SaveWithLock(ctx context.Context, report *compliance.Report) error {
	var model models.ComplianceReportModel
	model.FromDomain(report)

	result := r.db.WithContext(ctx).
		Model(&models.ComplianceReportModel{}).
		Where("id = ? AND version = ?", report.GetID(), report.Version-1).
		Select("*").Omit("id", "created_at").
		Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The report has been modified by another transaction")
	}
	return nil
}

// Delete deletes a report
func (r *GormComplianceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ComplianceReportModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts reports matching the filter
func (r *GormComplianceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ComplianceReportModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts reports in a given status
func (r *GormComplianceRepository) CountByStatus(ctx context.Context, status compliance.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ComplianceReportModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormComplianceRepository) findReports(query *gorm.DB) ([]compliance.Report, error) {
	var reportModels []models.ComplianceReportModel
	if err := query.Find(&reportModels).Error; err != nil {
		return nil, err
	}
	return toReports(reportModels), nil
}

func toReports(reportModels []models.ComplianceReportModel) []compliance.Report {
	reports := make([]compliance.Report, len(reportModels))
	for i := range reportModels {
		reports[i] = *reportModels[i].ToDomain()
	}
	return reports
}

func (r *GormComplianceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ComplianceReportSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormComplianceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("reference_no ILIKE ? OR title ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "assignee_id":
			query = query.Where("assignee_id = ?", value)
		case "reported_by":
			query = query.Where("reported_by = ?", value)
		}
	}
	return query
}
