package billing

import (
	"time"

	"github.com/atelier/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest represents a request to draft an invoice for an order
type CreateInvoiceRequest struct {
	OrderID uuid.UUID                `json:"order_id" binding:"required"`
	TaxRate decimal.Decimal          `json:"tax_rate"`
	Lines   []CreateInvoiceLineInput `json:"lines"`
}

// CreateInvoiceLineInput represents one billed position
type CreateInvoiceLineInput struct {
	Description string          `json:"description" binding:"required,min=1,max=500"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// AddLineRequest adds a billed position to a draft invoice
type AddLineRequest struct {
	Description string          `json:"description" binding:"required,min=1,max=500"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// IssueInvoiceRequest finalizes a draft invoice
type IssueInvoiceRequest struct {
	DueDate time.Time `json:"due_date" binding:"required"`
}

// RecordPaymentRequest records a received payment against an invoice
type RecordPaymentRequest struct {
	Amount     decimal.Decimal       `json:"amount" binding:"required"`
	Method     billing.PaymentMethod `json:"method" binding:"required"`
	Reference  string                `json:"reference" binding:"max=100"`
	ReceivedBy *uuid.UUID            `json:"received_by"`
}

// VoidInvoiceRequest voids an invoice with a reason
type VoidInvoiceRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// ListFilter defines filtering options for invoice lists
type ListFilter struct {
	Page     int                    `form:"page"`
	PageSize int                    `form:"page_size"`
	OrderBy  string                 `form:"order_by"`
	OrderDir string                 `form:"order_dir"`
	Search   string                 `form:"search"`
	Status   *billing.InvoiceStatus `form:"status"`
	OrderID  *uuid.UUID             `form:"order_id"`
}

// InvoiceLineResponse represents a billed position in responses
type InvoiceLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse represents a full invoice in responses
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	OrderID       uuid.UUID             `json:"order_id"`
	CustomerName  string                `json:"customer_name"`
	Status        billing.InvoiceStatus `json:"status"`
	Lines         []InvoiceLineResponse `json:"lines"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TaxRate       decimal.Decimal       `json:"tax_rate"`
	TaxAmount     decimal.Decimal       `json:"tax_amount"`
	Total         decimal.Decimal       `json:"total"`
	PaidAmount    decimal.Decimal       `json:"paid_amount"`
	Outstanding   decimal.Decimal       `json:"outstanding"`
	IssuedAt      *time.Time            `json:"issued_at,omitempty"`
	DueDate       *time.Time            `json:"due_date,omitempty"`
	VoidedAt      *time.Time            `json:"voided_at,omitempty"`
	VoidReason    string                `json:"void_reason,omitempty"`
	Version       int                   `json:"version"`
	CreatedAt     time.Time             `json:"created_at"`
}

// PaymentResponse represents a payment record in responses
type PaymentResponse struct {
	ID         uuid.UUID             `json:"id"`
	InvoiceID  uuid.UUID             `json:"invoice_id"`
	Amount     decimal.Decimal       `json:"amount"`
	Method     billing.PaymentMethod `json:"method"`
	Reference  string                `json:"reference,omitempty"`
	ReceivedBy *uuid.UUID            `json:"received_by,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}

// ToInvoiceResponse converts a domain invoice to the response DTO
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, InvoiceLineResponse{
			ID:          l.ID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Amount,
		})
	}

	return InvoiceResponse{
		ID:            inv.GetID(),
		InvoiceNumber: inv.InvoiceNumber,
		OrderID:       inv.OrderID,
		CustomerName:  inv.CustomerName,
		Status:        inv.Status,
		Lines:         lines,
		Subtotal:      inv.Subtotal,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		PaidAmount:    inv.PaidAmount,
		Outstanding:   inv.Total.Sub(inv.PaidAmount),
		IssuedAt:      inv.IssuedAt,
		DueDate:       inv.DueDate,
		VoidedAt:      inv.VoidedAt,
		VoidReason:    inv.VoidReason,
		Version:       inv.GetVersion(),
		CreatedAt:     inv.CreatedAt,
	}
}

// ToInvoiceResponses converts a slice of invoices
func ToInvoiceResponses(invoices []billing.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		out = append(out, ToInvoiceResponse(&invoices[i]))
	}
	return out
}

// ToPaymentResponse converts a domain payment to the response DTO
func ToPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.GetID(),
		InvoiceID:  p.InvoiceID,
		Amount:     p.Amount,
		Method:     p.Method,
		Reference:  p.Reference,
		ReceivedBy: p.ReceivedBy,
		CreatedAt:  p.CreatedAt,
	}
}

// ToPaymentResponses converts a slice of payments
func ToPaymentResponses(payments []billing.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, ToPaymentResponse(&payments[i]))
	}
	return out
}
