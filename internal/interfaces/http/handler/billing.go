package handler

import (
	billingapp "github.com/atelier/backend/internal/application/billing"
	"github.com/atelier/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BillingHandler handles invoice and payment API endpoints
type BillingHandler struct {
	BaseHandler
	billingService *billingapp.Service
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(billingService *billingapp.Service) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
	}
}

// Create creates a draft invoice for an order
func (h *BillingHandler) Create(c *gin.Context) {
	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.billingService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a single invoice by ID
func (h *BillingHandler) Get(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	result, err := h.billingService.GetByID(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated list of invoices
func (h *BillingHandler) List(c *gin.Context) {
	var filter billingapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	results, total, err := h.billingService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, results, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// AddLine adds a billing line to a draft invoice
func (h *BillingHandler) AddLine(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req billingapp.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.billingService.AddLine(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Issue issues a draft invoice and sets its due date
func (h *BillingHandler) Issue(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req billingapp.IssueInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.billingService.Issue(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RecordPayment records a payment against an issued invoice
func (h *BillingHandler) RecordPayment(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req billingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.billingService.RecordPayment(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListPayments returns the payments recorded against an invoice
func (h *BillingHandler) ListPayments(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	results, err := h.billingService.ListPayments(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// Void voids an invoice with a reason
func (h *BillingHandler) Void(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req billingapp.VoidInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.billingService.Void(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListOverdue returns issued invoices past their due date
func (h *BillingHandler) ListOverdue(c *gin.Context) {
	results, err := h.billingService.ListOverdue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// OutstandingTotal returns the total unpaid balance across issued invoices
func (h *BillingHandler) OutstandingTotal(c *gin.Context) {
	total, err := h.billingService.OutstandingTotal(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"outstanding_total": total})
}
