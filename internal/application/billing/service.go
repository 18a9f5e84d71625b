package billing

import (
	"context"
	"time"

	"github.com/atelier/backend/internal/domain/billing"
	"github.com/atelier/backend/internal/domain/order"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service handles invoicing and payment operations
type Service struct {
	invoiceRepo    billing.InvoiceRepository
	paymentRepo    billing.PaymentRepository
	orderRepo      order.Repository
	eventPublisher shared.EventPublisher
}

// NewService creates a new billing service
func NewService(invoiceRepo billing.InvoiceRepository, paymentRepo billing.PaymentRepository, orderRepo order.Repository) *Service {
	return &Service{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create drafts an invoice for an order. When no explicit lines are given,
// the order's garment lines are billed as-is.
func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if o.Status == order.StatusDraft || o.Status == order.StatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "Only confirmed orders can be invoiced")
	}

	invoiceNumber, err := s.invoiceRepo.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	inv, err := billing.NewInvoice(invoiceNumber, o.GetID(), o.CustomerName, req.TaxRate)
	if err != nil {
		return nil, err
	}

	if len(req.Lines) > 0 {
		for _, in := range req.Lines {
			line, err := billing.NewInvoiceLine(inv.GetID(), in.Description,
				in.Quantity, valueobject.NewMoneyUSD(in.UnitPrice))
			if err != nil {
				return nil, err
			}
			if err := inv.AddLine(line); err != nil {
				return nil, err
			}
		}
	} else {
		for _, item := range o.Items {
			desc := string(item.GarmentType) + " - " + item.FabricName
			line, err := billing.NewInvoiceLine(inv.GetID(), desc,
				item.Quantity, valueobject.NewMoneyUSD(item.UnitPrice))
			if err != nil {
				return nil, err
			}
			if err := inv.AddLine(line); err != nil {
				return nil, err
			}
		}
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, inv)

	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// GetByID retrieves an invoice by ID
func (s *Service) GetByID(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// List retrieves invoices with filtering and pagination
func (s *Service) List(ctx context.Context, filter ListFilter) ([]InvoiceResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if filter.OrderID != nil {
		domainFilter.Filters["order_id"] = *filter.OrderID
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToInvoiceResponses(invoices), total, nil
}

// AddLine adds a billed position to a draft invoice
func (s *Service) AddLine(ctx context.Context, invoiceID uuid.UUID, req AddLineRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	line, err := billing.NewInvoiceLine(inv.GetID(), req.Description,
		req.Quantity, valueobject.NewMoneyUSD(req.UnitPrice))
	if err != nil {
		return nil, err
	}
	if err := inv.AddLine(line); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}

	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// Issue finalizes a draft invoice
func (s *Service) Issue(ctx context.Context, invoiceID uuid.UUID, req IssueInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.Issue(req.DueDate); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, inv)

	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// RecordPayment applies a payment to an invoice and stores the payment
// record. Overpayment is rejected before anything is written.
func (s *Service) RecordPayment(ctx context.Context, invoiceID uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	amount := valueobject.NewMoneyUSD(req.Amount)
	if err := inv.ApplyPayment(amount); err != nil {
		return nil, err
	}

	payment, err := billing.NewPayment(inv.GetID(), amount, req.Method, req.Reference, req.ReceivedBy)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, inv)

	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// ListPayments retrieves the payments recorded for an invoice
func (s *Service) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}

// Void voids an invoice
func (s *Service) Void(ctx context.Context, invoiceID uuid.UUID, req VoidInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.Void(req.Reason); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, inv)

	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// ListOverdue retrieves unpaid invoices past their due date
func (s *Service) ListOverdue(ctx context.Context) ([]InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.FindOverdue(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponses(invoices), nil
}

// OutstandingTotal returns the unpaid remainder over all open invoices
func (s *Service) OutstandingTotal(ctx context.Context) (decimal.Decimal, error) {
	return s.invoiceRepo.OutstandingTotal(ctx)
}

func (s *Service) publishEvents(ctx context.Context, inv *billing.Invoice) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range inv.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	inv.ClearDomainEvents()
}
