package persistence

import (
	"context"
	"errors"

	"github.com/atelier/backend/internal/domain/reporting"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDashboardRepository implements reporting.DashboardRepository using GORM
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// FindByID finds a dashboard by its ID
func (r *GormDashboardRepository) FindByID(ctx context.Context, id uuid.UUID) (*reporting.Dashboard, error) {
	var model models.DashboardModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByOwner finds the dashboards owned by an employee
func (r *GormDashboardRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]reporting.Dashboard, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.DashboardModel{}).Where("owner_id = ?", ownerID),
		filter,
	)
	return r.findDashboards(query)
}

// FindDefault finds the owner's default dashboard, if any
func (r *GormDashboardRepository) FindDefault(ctx context.Context, ownerID uuid.UUID) (*reporting.Dashboard, error) {
	var model models.DashboardModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_default = ?", ownerID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll finds all dashboards matching the filter
func (r *GormDashboardRepository) FindAll(ctx context.Context, filter shared.Filter) ([]reporting.Dashboard, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DashboardModel{}), filter)
	return r.findDashboards(query)
}

// Save creates or updates a dashboard
func (r *GormDashboardRepository) Save(ctx context.Context, d *reporting.Dashboard) error {
	var model models.DashboardModel
	if err := model.FromDomain(d); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a dashboard
func (r *GormDashboardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DashboardModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts dashboards matching the filter
func (r *GormDashboardRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.DashboardModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDashboardRepository) findDashboards(query *gorm.DB) ([]reporting.Dashboard, error) {
	var dashboardModels []models.DashboardModel
	if err := query.Find(&dashboardModels).Error; err != nil {
		return nil, err
	}

	dashboards := make([]reporting.Dashboard, len(dashboardModels))
	for i := range dashboardModels {
		d, err := dashboardModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		dashboards[i] = *d
	}
	return dashboards, nil
}

func (r *GormDashboardRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, DashboardSortFields, "name")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormDashboardRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "owner_id":
			query = query.Where("owner_id = ?", value)
		case "is_default":
			query = query.Where("is_default = ?", value)
		}
	}
	return query
}
