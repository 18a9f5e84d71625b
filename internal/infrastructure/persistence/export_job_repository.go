package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/atelier/backend/internal/domain/export"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormExportJobRepository implements export.Repository using GORM
type GormExportJobRepository struct {
	db *gorm.DB
}

// NewGormExportJobRepository creates a new GormExportJobRepository
func NewGormExportJobRepository(db *gorm.DB) *GormExportJobRepository {
	return &GormExportJobRepository{db: db}
}

// FindByID finds a job by its ID
func (r *GormExportJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*export.Job, error) {
	var model models.ExportJobModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all jobs matching the filter
func (r *GormExportJobRepository) FindAll(ctx context.Context, filter shared.Filter) ([]export.Job, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ExportJobModel{}), filter)
	return r.findJobs(query)
}

// FindByStatus finds jobs in a given status
func (r *GormExportJobRepository) FindByStatus(ctx context.Context, status export.JobStatus, filter shared.Filter) ([]export.Job, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ExportJobModel{}).Where("status = ?", status),
		filter,
	)
	return r.findJobs(query)
}

// FindByRequester finds the jobs queued by an employee
func (r *GormExportJobRepository) FindByRequester(ctx context.Context, requestedBy uuid.UUID, filter shared.Filter) ([]export.Job, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ExportJobModel{}).Where("requested_by = ?", requestedBy),
		filter,
	)
	return r.findJobs(query)
}

// ClaimNextPending atomically claims the oldest pending job and moves it to
// RUNNING. The row is locked with FOR UPDATE SKIP LOCKED so concurrent
// workers never claim the same job. Returns nil when the queue is empty.
func (r *GormExportJobRepository) ClaimNextPending(ctx context.Context) (*export.Job, error) {
	var job *export.Job

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.ExportJobModel
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ?", export.JobStatusPending).
			Order("created_at ASC").
			First(&model).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		claimed := model.ToDomain()
		if err := claimed.Start(); err != nil {
			return err
		}
		claimed.IncrementVersion()

		var updated models.ExportJobModel
		updated.FromDomain(claimed)
		if err := tx.
			Model(&models.ExportJobModel{}).
			Where("id = ?", claimed.GetID()).
			Select("*").Omit("id", "created_at").
			Updates(&updated).Error; err != nil {
			return err
		}

		job = claimed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// FindStaleRunning finds jobs stuck in RUNNING since before the cutoff
func (r *GormExportJobRepository) FindStaleRunning(ctx context.Context, cutoff time.Time) ([]export.Job, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ExportJobModel{}).
		Where("status = ? AND started_at < ?", export.JobStatusRunning, cutoff).
		Order("started_at ASC")
	return r.findJobs(query)
}

// Save creates or updates a job
func (r *GormExportJobRepository) Save(ctx context.Context, j *export.Job) error {
	var model models.ExportJobModel
	model.FromDomain(j)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveWithLock saves a job with optimistic locking. The caller has already
// incremented the aggregate version.
func (r *GormExportJobRepository) SaveWithLock(ctx context.Context, j *export.Job) error {
	var model models.ExportJobModel
	model.FromDomain(j)

	result := r.db.WithContext(ctx).
		Model(&models.ExportJobModel{}).
		Where("id = ? AND version = ?", j.GetID(), j.Version-1).
		Select("*").Omit("id", "created_at").
		Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The export job has been modified by another transaction")
	}
	return nil
}

// CountByStatus counts jobs in a given status
func (r *GormExportJobRepository) CountByStatus(ctx context.Context, status export.JobStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ExportJobModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count counts jobs matching the filter
func (r *GormExportJobRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ExportJobModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormExportJobRepository) findJobs(query *gorm.DB) ([]export.Job, error) {
	var jobModels []models.ExportJobModel
	if err := query.Find(&jobModels).Error; err != nil {
		return nil, err
	}

	jobs := make([]export.Job, len(jobModels))
	for i := range jobModels {
		jobs[i] = *jobModels[i].ToDomain()
	}
	return jobs, nil
}

func (r *GormExportJobRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ExportJobSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormExportJobRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "dataset":
			query = query.Where("dataset = ?", value)
		case "format":
			query = query.Where("format = ?", value)
		case "requested_by":
			query = query.Where("requested_by = ?", value)
		}
	}
	return query
}
