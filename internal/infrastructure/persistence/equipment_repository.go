package persistence

import (
	"context"
	"errors"

	"github.com/atelier/backend/internal/domain/scheduling"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEquipmentRepository implements scheduling.EquipmentRepository using GORM
type GormEquipmentRepository struct {
	db *gorm.DB
}

// NewGormEquipmentRepository creates a new GormEquipmentRepository
func NewGormEquipmentRepository(db *gorm.DB) *GormEquipmentRepository {
	return &GormEquipmentRepository{db: db}
}

// FindByID finds equipment by its ID
func (r *GormEquipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*scheduling.Equipment, error) {
	var model models.EquipmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySerialNo finds equipment by serial number
func (r *GormEquipmentRepository) FindBySerialNo(ctx context.Context, serialNo string) (*scheduling.Equipment, error) {
	var model models.EquipmentModel
	if err := r.db.WithContext(ctx).Where("serial_no = ?", serialNo).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all equipment matching the filter
func (r *GormEquipmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]scheduling.Equipment, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.EquipmentModel{}), filter)

	var equipmentModels []models.EquipmentModel
	if err := query.Find(&equipmentModels).Error; err != nil {
		return nil, err
	}

	equipment := make([]scheduling.Equipment, len(equipmentModels))
	for i := range equipmentModels {
		equipment[i] = *equipmentModels[i].ToDomain()
	}
	return equipment, nil
}

// Save creates or updates equipment
func (r *GormEquipmentRepository) Save(ctx context.Context, e *scheduling.Equipment) error {
	var model models.EquipmentModel
	model.FromDomain(e)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes equipment
func (r *GormEquipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EquipmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts equipment matching the filter
func (r *GormEquipmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.EquipmentModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormEquipmentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, EquipmentSortFields, "name")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormEquipmentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR serial_no ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		case "location":
			query = query.Where("location = ?", value)
		}
	}
	return query
}
