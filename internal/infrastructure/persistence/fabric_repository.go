package persistence

import (
	"context"
	"errors"

	"github.com/atelier/backend/internal/domain/inventory"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFabricRepository implements inventory.FabricRepository using GORM
type GormFabricRepository struct {
	db *gorm.DB
}

// NewGormFabricRepository creates a new GormFabricRepository
func NewGormFabricRepository(db *gorm.DB) *GormFabricRepository {
	return &GormFabricRepository{db: db}
}

// FindByID finds a fabric by its ID
func (r *GormFabricRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Fabric, error) {
	var model models.FabricModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySKU finds a fabric by its SKU
func (r *GormFabricRepository) FindBySKU(ctx context.Context, sku string) (*inventory.Fabric, error) {
	var model models.FabricModel
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all fabrics matching the filter
func (r *GormFabricRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Fabric, error) {
	var fabricModels []models.FabricModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FabricModel{}), filter)
	if err := query.Find(&fabricModels).Error; err != nil {
		return nil, err
	}
	return toFabrics(fabricModels), nil
}

// FindLowStock finds active fabrics at or below their reorder level
func (r *GormFabricRepository) FindLowStock(ctx context.Context) ([]inventory.Fabric, error) {
	var fabricModels []models.FabricModel
	if err := r.db.WithContext(ctx).
		Where("active = ? AND reorder_level > 0 AND quantity_m <= reorder_level", true).
		Order("quantity_m ASC").
		Find(&fabricModels).Error; err != nil {
		return nil, err
	}
	return toFabrics(fabricModels), nil
}

// Save creates or updates a fabric
func (r *GormFabricRepository) Save(ctx context.Context, f *inventory.Fabric) error {
	var model models.FabricModel
	model.FromDomain(f)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveWithLock saves a fabric with optimistic locking. The caller has
// already incremented the aggregate version; the update only lands when
// the stored row still carries the previous one.
func (r *GormFabricRepository) SaveWithLock(ctx context.Context, f *inventory.Fabric) error {
	var model models.FabricModel
	model.FromDomain(f)

	result := r.db.WithContext(ctx).
		Model(&models.FabricModel{}).
		Where("id = ? AND version = ?", f.GetID(), f.Version-1).
		Select("*").Omit("id", "created_at").
		Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The fabric has been modified by another transaction")
	}
	return nil
}

// Delete deletes a fabric
func (r *GormFabricRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FabricModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts fabrics matching the filter
func (r *GormFabricRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.FabricModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toFabrics(fabricModels []models.FabricModel) []inventory.Fabric {
	fabrics := make([]inventory.Fabric, len(fabricModels))
	for i := range fabricModels {
		fabrics[i] = *fabricModels[i].ToDomain()
	}
	return fabrics
}

func (r *GormFabricRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, FabricSortFields, "name")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormFabricRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("sku ILIKE ? OR name ILIKE ? OR color ILIKE ?", pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		case "color":
			query = query.Where("color = ?", value)
		case "composition":
			query = query.Where("composition = ?", value)
		}
	}
	return query
}

// GormMovementRepository implements inventory.MovementRepository using GORM.
// Movements are append-only.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// FindByID finds a movement by its ID
func (r *GormMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Movement, error) {
	var model models.MovementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByFabric finds the movements recorded for a fabric, newest first
func (r *GormMovementRepository) FindByFabric(ctx context.Context, fabricID uuid.UUID, filter shared.Filter) ([]inventory.Movement, error) {
	var movementModels []models.MovementModel
	query := r.db.WithContext(ctx).
		Where("fabric_id = ?", fabricID).
		Order("created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&movementModels).Error; err != nil {
		return nil, err
	}

	movements := make([]inventory.Movement, len(movementModels))
	for i := range movementModels {
		movements[i] = *movementModels[i].ToDomain()
	}
	return movements, nil
}

// Save persists a movement record
func (r *GormMovementRepository) Save(ctx context.Context, m *inventory.Movement) error {
	var model models.MovementModel
	model.FromDomain(m)
	return r.db.WithContext(ctx).Create(&model).Error
}

// CountByFabric counts the movements recorded for a fabric
func (r *GormMovementRepository) CountByFabric(ctx context.Context, fabricID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.MovementModel{}).
		Where("fabric_id = ?", fabricID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
