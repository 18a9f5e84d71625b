package billing

import (
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheck    PaymentMethod = "CHECK"
)

// IsValid checks if the PaymentMethod is a valid value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodCheck:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Payment is an immutable record of money received against an invoice
type Payment struct {
	shared.BaseEntity
	InvoiceID  uuid.UUID
	Amount     decimal.Decimal
	Method     PaymentMethod
	Reference  string // external reference, e.g. card transaction ID or check number
	ReceivedAt time.Time
	ReceivedBy *uuid.UUID // employee who recorded the payment
	Remark     string
}

// NewPayment creates a payment record for an invoice
func NewPayment(invoiceID uuid.UUID, amount valueobject.Money, method PaymentMethod, reference string, receivedBy *uuid.UUID) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Invalid payment method")
	}

	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		InvoiceID:  invoiceID,
		Amount:     amount.Amount(),
		Method:     method,
		Reference:  reference,
		ReceivedAt: time.Now(),
		ReceivedBy: receivedBy,
	}, nil
}

// GetAmountMoney returns the payment amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Amount)
}
