package models

import (
	"time"

	"github.com/atelier/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate.
type InvoiceModel struct {
	AggregateModel
	InvoiceNumber string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderID       uuid.UUID            `gorm:"type:uuid;not null;index"`
	CustomerName  string               `gorm:"type:varchar(200);not null"`
	Lines         []InvoiceLineModel   `gorm:"foreignKey:InvoiceID;references:ID"`
	Subtotal      decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRate       decimal.Decimal      `gorm:"type:decimal(8,6);not null;default:0"`
	TaxAmount     decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Total         decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	PaidAmount    decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Status        billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	IssuedAt      *time.Time
	DueDate       *time.Time `gorm:"index"`
	VoidedAt      *time.Time
	VoidReason    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		InvoiceNumber: m.InvoiceNumber,
		OrderID:       m.OrderID,
		CustomerName:  m.CustomerName,
		Subtotal:      m.Subtotal,
		TaxRate:       m.TaxRate,
		TaxAmount:     m.TaxAmount,
		Total:         m.Total,
		PaidAmount:    m.PaidAmount,
		Status:        m.Status,
		IssuedAt:      m.IssuedAt,
		DueDate:       m.DueDate,
		VoidedAt:      m.VoidedAt,
		VoidReason:    m.VoidReason,
	}
	m.PopulateAggregateRoot(&inv.BaseAggregateRoot)

	inv.Lines = make([]billing.InvoiceLine, len(m.Lines))
	for i := range m.Lines {
		inv.Lines[i] = *m.Lines[i].ToDomain()
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.OrderID = inv.OrderID
	m.CustomerName = inv.CustomerName
	m.Subtotal = inv.Subtotal
	m.TaxRate = inv.TaxRate
	m.TaxAmount = inv.TaxAmount
	m.Total = inv.Total
	m.PaidAmount = inv.PaidAmount
	m.Status = inv.Status
	m.IssuedAt = inv.IssuedAt
	m.DueDate = inv.DueDate
	m.VoidedAt = inv.VoidedAt
	m.VoidReason = inv.VoidReason

	m.Lines = make([]InvoiceLineModel, len(inv.Lines))
	for i := range inv.Lines {
		m.Lines[i].FromDomain(&inv.Lines[i])
	}
}

// InvoiceLineModel is the persistence model for a billed position.
type InvoiceLineModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    int             `gorm:"not null;default:1"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// ToDomain converts the persistence model to a domain InvoiceLine
func (m *InvoiceLineModel) ToDomain() *billing.InvoiceLine {
	return &billing.InvoiceLine{
		ID:          m.ID,
		InvoiceID:   m.InvoiceID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
	}
}

// FromDomain populates the persistence model from a domain InvoiceLine
func (m *InvoiceLineModel) FromDomain(line *billing.InvoiceLine) {
	m.ID = line.ID
	m.InvoiceID = line.InvoiceID
	m.Description = line.Description
	m.Quantity = line.Quantity
	m.UnitPrice = line.UnitPrice
	m.Amount = line.Amount
}

// PaymentModel is the persistence model for a payment record.
type PaymentModel struct {
	BaseModel
	InvoiceID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Method     billing.PaymentMethod `gorm:"type:varchar(20);not null"`
	Reference  string                `gorm:"type:varchar(200)"`
	ReceivedAt time.Time             `gorm:"not null;index"`
	ReceivedBy *uuid.UUID            `gorm:"type:uuid"`
	Remark     string                `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseEntity: m.BaseModel.ToDomain(),
		InvoiceID:  m.InvoiceID,
		Amount:     m.Amount,
		Method:     m.Method,
		Reference:  m.Reference,
		ReceivedAt: m.ReceivedAt,
		ReceivedBy: m.ReceivedBy,
		Remark:     m.Remark,
	}
}

// FromDomain populates the persistence model from a domain Payment
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.InvoiceID = p.InvoiceID
	m.Amount = p.Amount
	m.Method = p.Method
	m.Reference = p.Reference
	m.ReceivedAt = p.ReceivedAt
	m.ReceivedBy = p.ReceivedBy
	m.Remark = p.Remark
}
