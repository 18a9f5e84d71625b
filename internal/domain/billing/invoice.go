package billing

import (
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "DRAFT"
	InvoiceStatusIssued        InvoiceStatus = "ISSUED"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
	InvoiceStatusVoid          InvoiceStatus = "VOID"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusPartiallyPaid, InvoiceStatusPaid, InvoiceStatusVoid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true for states that accept no further payments
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusVoid
}

// InvoiceLine is one billed position on an invoice
type InvoiceLine struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// NewInvoiceLine creates a billed position
func NewInvoiceLine(invoiceID uuid.UUID, description string, quantity int, unitPrice valueobject.Money) (*InvoiceLine, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Line description cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	return &InvoiceLine{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Amount:      unitPrice.Amount().Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// Invoice represents an invoice aggregate root issued against a tailoring order
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string
	OrderID       uuid.UUID
	CustomerName  string
	Lines         []InvoiceLine
	Subtotal      decimal.Decimal
	TaxRate       decimal.Decimal // e.g. 0.0875 for 8.75%
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	PaidAmount    decimal.Decimal
	Status        InvoiceStatus
	IssuedAt      *time.Time
	DueDate       *time.Time
	VoidedAt      *time.Time
	VoidReason    string
}

// NewInvoice creates a new draft invoice for an order
func NewInvoice(invoiceNumber string, orderID uuid.UUID, customerName string, taxRate decimal.Decimal) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 1")
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		OrderID:           orderID,
		CustomerName:      customerName,
		Lines:             make([]InvoiceLine, 0),
		Subtotal:          decimal.Zero,
		TaxRate:           taxRate,
		TaxAmount:         decimal.Zero,
		Total:             decimal.Zero,
		PaidAmount:        decimal.Zero,
		Status:            InvoiceStatusDraft,
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// AddLine adds a billed position. Only allowed while DRAFT.
func (inv *Invoice) AddLine(line *InvoiceLine) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be added to draft invoices")
	}
	line.InvoiceID = inv.ID
	inv.Lines = append(inv.Lines, *line)
	inv.recalculate()
	inv.Touch()
	return nil
}

// Issue finalizes the invoice and sets the payment due date
func (inv *Invoice) Issue(dueDate time.Time) error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be issued")
	}
	if len(inv.Lines) == 0 {
		return shared.NewDomainError("EMPTY_INVOICE", "Cannot issue an invoice without lines")
	}

	now := time.Now()
	inv.Status = InvoiceStatusIssued
	inv.IssuedAt = &now
	inv.DueDate = &dueDate
	inv.Touch()

	inv.AddDomainEvent(NewInvoiceIssuedEvent(inv))

	return nil
}

// ApplyPayment records a received amount and advances the status
// by the paid ratio. Overpayment is rejected.
func (inv *Invoice) ApplyPayment(amount valueobject.Money) error {
	if inv.Status != InvoiceStatusIssued && inv.Status != InvoiceStatusPartiallyPaid {
		return shared.NewDomainError("INVALID_STATE", "Invoice does not accept payments in status: "+inv.Status.String())
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	outstanding := inv.Total.Sub(inv.PaidAmount)
	if amount.Amount().GreaterThan(outstanding) {
		return shared.ErrOverpayment
	}

	inv.PaidAmount = inv.PaidAmount.Add(amount.Amount())
	if inv.PaidAmount.Equal(inv.Total) {
		inv.Status = InvoiceStatusPaid
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	} else {
		inv.Status = InvoiceStatusPartiallyPaid
	}
	inv.Touch()

	return nil
}

// Void cancels the invoice. Paid invoices cannot be voided.
func (inv *Invoice) Void(reason string) error {
	if inv.Status == InvoiceStatusPaid || inv.Status == InvoiceStatusVoid {
		return shared.NewDomainError("INVALID_STATE", "Cannot void invoice in status: "+inv.Status.String())
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_VOID_REASON", "Void reason cannot be empty")
	}

	now := time.Now()
	inv.Status = InvoiceStatusVoid
	inv.VoidedAt = &now
	inv.VoidReason = reason
	inv.Touch()

	inv.AddDomainEvent(NewInvoiceVoidedEvent(inv, reason))

	return nil
}

// Outstanding returns the unpaid remainder
func (inv *Invoice) Outstanding() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.Total.Sub(inv.PaidAmount))
}

// IsOverdue reports whether the invoice is unpaid past its due date
func (inv *Invoice) IsOverdue(now time.Time) bool {
	if inv.Status != InvoiceStatusIssued && inv.Status != InvoiceStatusPartiallyPaid {
		return false
	}
	return inv.DueDate != nil && now.After(*inv.DueDate)
}

func (inv *Invoice) recalculate() {
	subtotal := decimal.Zero
	for _, line := range inv.Lines {
		subtotal = subtotal.Add(line.Amount)
	}
	inv.Subtotal = subtotal
	inv.TaxAmount = subtotal.Mul(inv.TaxRate).Round(2)
	inv.Total = subtotal.Add(inv.TaxAmount)
}
