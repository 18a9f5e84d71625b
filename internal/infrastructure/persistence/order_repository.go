package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/atelier/backend/internal/domain/order"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID, items included
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByOrderNumber finds an order by its business number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// NextOrderNumber generates the next sequential order number
func (r *GormOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	return nextBusinessNumber(ctx, r.db, "ORD")
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	return r.findOrders(query)
}

// FindByStatus finds orders in a given status
func (r *GormOrderRepository) FindByStatus(ctx context.Context, status order.Status, filter shared.Filter) ([]order.Order, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("status = ?", status),
		filter,
	)
	return r.findOrders(query)
}

// FindByTailor finds orders assigned to an employee
func (r *GormOrderRepository) FindByTailor(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("assigned_tailor_id = ?", employeeID),
		filter,
	)
	return r.findOrders(query)
}

// Save creates or updates an order with its items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	var model models.OrderModel
	if err := model.FromDomain(o); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := model.Items
		model.Items = nil
		if err := tx.Save(&model).Error; err != nil {
			return err
		}
		return r.saveItems(tx, o.GetID(), items)
	})
}

// SaveWithLock saves an order with optimistic locking (version check).
// Returns an error if the version has changed under us.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	var model models.OrderModel
	if err := model.FromDomain(o); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := o.Version
		model.Version = currentVersion + 1
		model.UpdatedAt = time.Now()

		items := model.Items
		model.Items = nil
		result := tx.Model(&models.OrderModel{}).
			Where("id = ? AND version = ?", o.GetID(), currentVersion).
			Select("*").Omit("id", "created_at").
			Updates(&model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The order has been modified by another user")
		}
		o.Version = model.Version

		return r.saveItems(tx, o.GetID(), items)
	})
}

// Delete deletes an order and its items
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.OrderModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts orders in a given status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// saveItems reconciles the order_items rows with the aggregate's lines:
// rows no longer present are deleted, the rest are upserted.
func (r *GormOrderRepository) saveItems(tx *gorm.DB, orderID uuid.UUID, items []models.OrderItemModel) error {
	if len(items) == 0 {
		return tx.Where("order_id = ?", orderID).Delete(&models.OrderItemModel{}).Error
	}

	currentIDs := make([]uuid.UUID, len(items))
	for i := range items {
		currentIDs[i] = items[i].ID
	}
	if err := tx.Where("order_id = ? AND id NOT IN ?", orderID, currentIDs).
		Delete(&models.OrderItemModel{}).Error; err != nil {
		return err
	}

	for i := range items {
		items[i].OrderID = orderID
		if err := tx.Save(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormOrderRepository) findOrders(query *gorm.DB) ([]order.Order, error) {
	var orderModels []models.OrderModel
	if err := query.Preload("Items").Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]order.Order, len(orderModels))
	for i := range orderModels {
		o, err := orderModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		orders[i] = *o
	}
	return orders, nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR customer_name ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "assigned_tailor_id":
			query = query.Where("assigned_tailor_id = ?", value)
		case "due_before":
			query = query.Where("due_date <= ?", value)
		case "due_after":
			query = query.Where("due_date >= ?", value)
		}
	}
	return query
}
