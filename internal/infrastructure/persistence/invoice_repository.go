package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/atelier/backend/internal/domain/billing"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID, lines included
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).Preload("Lines").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoiceNumber finds an invoice by its business number
func (r *GormInvoiceRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).Preload("Lines").
		Where("invoice_number = ?", invoiceNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// NextInvoiceNumber generates the next sequential invoice number
func (r *GormInvoiceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	return nextBusinessNumber(ctx, r.db, "INV")
}

// FindByOrder finds the invoices issued for an order
func (r *GormInvoiceRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).Preload("Lines").
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return toInvoices(invoiceModels), nil
}

// FindAll finds all invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
	if err := query.Preload("Lines").Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return toInvoices(invoiceModels), nil
}

// FindOverdue finds unpaid invoices past their due date
func (r *GormInvoiceRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).Preload("Lines").
		Where("status IN ? AND due_date < ?",
			[]billing.InvoiceStatus{billing.InvoiceStatusIssued, billing.InvoiceStatusPartiallyPaid}, asOf).
		Order("due_date ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return toInvoices(invoiceModels), nil
}

// Save creates or updates an invoice with its lines
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *billing.Invoice) error {
	var model models.InvoiceModel
	model.FromDomain(inv)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines := model.Lines
		model.Lines = nil
		if err := tx.Save(&model).Error; err != nil {
			return err
		}
		return r.saveLines(tx, inv.GetID(), lines)
	})
}

// SaveWithLock saves an invoice with optimistic locking (version check)
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, inv *billing.Invoice) error {
	var model models.InvoiceModel
	model.FromDomain(inv)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := inv.Version
		model.Version = currentVersion + 1
		model.UpdatedAt = time.Now()

		lines := model.Lines
		model.Lines = nil
		result := tx.Model(&models.InvoiceModel{}).
			Where("id = ? AND version = ?", inv.GetID(), currentVersion).
			Select("*").Omit("id", "created_at").
			Updates(&model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The invoice has been modified by another user")
		}
		inv.Version = model.Version

		return r.saveLines(tx, inv.GetID(), lines)
	})
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// OutstandingTotal sums the unpaid remainder over all open invoices
func (r *GormInvoiceRepository) OutstandingTotal(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Select("SUM(total - paid_amount)").
		Where("status IN ?", []billing.InvoiceStatus{billing.InvoiceStatusIssued, billing.InvoiceStatusPartiallyPaid}).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *GormInvoiceRepository) saveLines(tx *gorm.DB, invoiceID uuid.UUID, lines []models.InvoiceLineModel) error {
	if len(lines) == 0 {
		return tx.Where("invoice_id = ?", invoiceID).Delete(&models.InvoiceLineModel{}).Error
	}

	currentIDs := make([]uuid.UUID, len(lines))
	for i := range lines {
		currentIDs[i] = lines[i].ID
	}
	if err := tx.Where("invoice_id = ? AND id NOT IN ?", invoiceID, currentIDs).
		Delete(&models.InvoiceLineModel{}).Error; err != nil {
		return err
	}

	for i := range lines {
		lines[i].InvoiceID = invoiceID
		if err := tx.Save(&lines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func toInvoices(invoiceModels []models.InvoiceModel) []billing.Invoice {
	invoices := make([]billing.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = *invoiceModels[i].ToDomain()
	}
	return invoices
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InvoiceSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("invoice_number ILIKE ? OR customer_name ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "order_id":
			query = query.Where("order_id = ?", value)
		case "due_before":
			query = query.Where("due_date <= ?", value)
		}
	}
	return query
}

// GormPaymentRepository implements billing.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoice finds all payments recorded for an invoice, oldest first
func (r *GormPaymentRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]billing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("received_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]billing.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments, nil
}

// Save persists a payment record
func (r *GormPaymentRepository) Save(ctx context.Context, p *billing.Payment) error {
	var model models.PaymentModel
	model.FromDomain(p)
	return r.db.WithContext(ctx).Save(&model).Error
}
