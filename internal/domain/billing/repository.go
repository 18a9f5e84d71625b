package billing

import (
	"context"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByInvoiceNumber finds an invoice by its business number
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)

	// NextInvoiceNumber generates the next sequential invoice number
	NextInvoiceNumber(ctx context.Context) (string, error)

	// FindByOrder finds the invoices issued for an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Invoice, error)

	// FindAll finds all invoices with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)

	// FindOverdue finds unpaid invoices past their due date
	FindOverdue(ctx context.Context, asOf time.Time) ([]Invoice, error)

	// Save creates or updates an invoice with its lines
	Save(ctx context.Context, inv *Invoice) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, inv *Invoice) error

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// OutstandingTotal sums the unpaid remainder over all open invoices
	OutstandingTotal(ctx context.Context) (decimal.Decimal, error)
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByInvoice finds all payments recorded for an invoice
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)

	// Save persists a payment record
	Save(ctx context.Context, p *Payment) error
}
