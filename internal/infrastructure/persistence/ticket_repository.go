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

// GormTicketRepository implements scheduling.TicketRepository using GORM
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// FindByID finds a ticket by its ID
func (r *GormTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*scheduling.Ticket, error) {
	var model models.MaintenanceTicketModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpen finds open tickets, oldest due first
func (r *GormTicketRepository) FindOpen(ctx context.Context, filter shared.Filter) ([]scheduling.Ticket, error) {
	query := r.db.WithContext(ctx).
		Model(&models.MaintenanceTicketModel{}).
		Where("status = ?", scheduling.TicketOpen).
		Order("due_at ASC")
	query = r.applyPagination(query, filter)
	return r.findTickets(query)
}

// FindBySchedule finds the tickets dispatched by a schedule
func (r *GormTicketRepository) FindBySchedule(ctx context.Context, scheduleID uuid.UUID, filter shared.Filter) ([]scheduling.Ticket, error) {
	query := r.db.WithContext(ctx).
		Model(&models.MaintenanceTicketModel{}).
		Where("schedule_id = ?", scheduleID).
		Order("due_at DESC")
	query = r.applyPagination(query, filter)
	return r.findTickets(query)
}

// FindByEquipment finds the tickets for a piece of equipment
func (r *GormTicketRepository) FindByEquipment(ctx context.Context, equipmentID uuid.UUID, filter shared.Filter) ([]scheduling.Ticket, error) {
	query := r.db.WithContext(ctx).
		Model(&models.MaintenanceTicketModel{}).
		Where("equipment_id = ?", equipmentID).
		Order("due_at DESC")
	query = r.applyPagination(query, filter)
	return r.findTickets(query)
}

// Save creates or updates a ticket
func (r *GormTicketRepository) Save(ctx context.Context, t *scheduling.Ticket) error {
	var model models.MaintenanceTicketModel
	model.FromDomain(t)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Count counts tickets matching the filter
func (r *GormTicketRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.MaintenanceTicketModel{})
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "schedule_id":
			query = query.Where("schedule_id = ?", value)
		case "equipment_id":
			query = query.Where("equipment_id = ?", value)
		}
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTicketRepository) findTickets(query *gorm.DB) ([]scheduling.Ticket, error) {
	var ticketModels []models.MaintenanceTicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, err
	}

	tickets := make([]scheduling.Ticket, len(ticketModels))
	for i := range ticketModels {
		tickets[i] = *ticketModels[i].ToDomain()
	}
	return tickets, nil
}

func (r *GormTicketRepository) applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}
