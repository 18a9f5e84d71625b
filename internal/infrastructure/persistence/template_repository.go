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

// GormTemplateRepository implements reporting.TemplateRepository using GORM
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GormTemplateRepository
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// FindByID finds a template by its ID
func (r *GormTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*reporting.Template, error) {
	var model models.ReportTemplateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByName finds a template by its name
func (r *GormTemplateRepository) FindByName(ctx context.Context, name string) (*reporting.Template, error) {
	var model models.ReportTemplateModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll finds all templates matching the filter
func (r *GormTemplateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]reporting.Template, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ReportTemplateModel{}), filter)
	return r.findTemplates(query)
}

// FindActive finds active templates ordered by name
func (r *GormTemplateRepository) FindActive(ctx context.Context) ([]reporting.Template, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ReportTemplateModel{}).
		Where("active = ?", true).
		Order("name ASC")
	return r.findTemplates(query)
}

// Save creates or updates a template
func (r *GormTemplateRepository) Save(ctx context.Context, t *reporting.Template) error {
	var model models.ReportTemplateModel
	if err := model.FromDomain(t); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a template
func (r *GormTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReportTemplateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts templates matching the filter
func (r *GormTemplateRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ReportTemplateModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTemplateRepository) findTemplates(query *gorm.DB) ([]reporting.Template, error) {
	var templateModels []models.ReportTemplateModel
	if err := query.Find(&templateModels).Error; err != nil {
		return nil, err
	}

	templates := make([]reporting.Template, len(templateModels))
	for i := range templateModels {
		t, err := templateModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		templates[i] = *t
	}
	return templates, nil
}

func (r *GormTemplateRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TemplateSortFields, "name")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormTemplateRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		case "paper_size":
			query = query.Where("paper_size = ?", value)
		}
	}
	return query
}
