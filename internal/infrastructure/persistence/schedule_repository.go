package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/atelier/backend/internal/domain/scheduling"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormScheduleRepository implements scheduling.ScheduleRepository using GORM
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewGormScheduleRepository creates a new GormScheduleRepository
func NewGormScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

// FindByID finds a schedule by its ID
func (r *GormScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*scheduling.Schedule, error) {
	var model models.ScheduleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll finds all schedules matching the filter
func (r *GormScheduleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]scheduling.Schedule, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ScheduleModel{}), filter)
	return r.findSchedules(query)
}

// FindByKind finds schedules of a given kind
func (r *GormScheduleRepository) FindByKind(ctx context.Context, kind scheduling.Kind, filter shared.Filter) ([]scheduling.Schedule, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ScheduleModel{}).Where("kind = ?", kind),
		filter,
	)
	return r.findSchedules(query)
}

// FindDue finds active schedules whose next run is at or before the instant
func (r *GormScheduleRepository) FindDue(ctx context.Context, asOf time.Time) ([]scheduling.Schedule, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ScheduleModel{}).
		Where("active = ? AND next_run_at <= ?", true, asOf).
		Order("next_run_at ASC")
	return r.findSchedules(query)
}

// Save creates or updates a schedule
func (r *GormScheduleRepository) Save(ctx context.Context, s *scheduling.Schedule) error {
	var model models.ScheduleModel
	if err := model.FromDomain(s); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveWithLock saves a schedule with optimistic locking. The caller has
// already incremented the aggregate version.
func (r *GormScheduleRepository) SaveWithLock(ctx context.Context, s *scheduling.Schedule) error {
	var model models.ScheduleModel
	if err := model.FromDomain(s); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&models.ScheduleModel{}).
		Where("id = ? AND version = ?", s.GetID(), s.Version-1).
		Select("*").Omit("id", "created_at").
		Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The schedule has been modified by another transaction")
	}
	return nil
}

// Delete deletes a schedule
func (r *GormScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ScheduleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts schedules matching the filter
func (r *GormScheduleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ScheduleModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormScheduleRepository) findSchedules(query *gorm.DB) ([]scheduling.Schedule, error) {
	var scheduleModels []models.ScheduleModel
	if err := query.Find(&scheduleModels).Error; err != nil {
		return nil, err
	}

	schedules := make([]scheduling.Schedule, len(scheduleModels))
	for i := range scheduleModels {
		s, err := scheduleModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		schedules[i] = *s
	}
	return schedules, nil
}

func (r *GormScheduleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ScheduleSortFields, "next_run_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormScheduleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "kind":
			query = query.Where("kind = ?", value)
		case "cadence":
			query = query.Where("cadence = ?", value)
		case "active":
			query = query.Where("active = ?", value)
		}
	}
	return query
}
