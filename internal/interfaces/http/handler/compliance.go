package handler

import (
	complianceapp "github.com/atelier/backend/internal/application/compliance"
	"github.com/atelier/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ComplianceHandler handles compliance report API endpoints
type ComplianceHandler struct {
	BaseHandler
	complianceService *complianceapp.Service
}

// NewComplianceHandler creates a new ComplianceHandler
func NewComplianceHandler(complianceService *complianceapp.Service) *ComplianceHandler {
	return &ComplianceHandler{
		complianceService: complianceService,
	}
}

// File files a new compliance report
func (h *ComplianceHandler) File(c *gin.Context) {
	var req complianceapp.FileReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.complianceService.File(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a single report by ID
func (h *ComplianceHandler) Get(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid report ID")
		return
	}

	result, err := h.complianceService.GetByID(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated list of reports
func (h *ComplianceHandler) List(c *gin.Context) {
	var filter complianceapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	results, total, err := h.complianceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, results, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// ListOverdue returns open reports past their due date
func (h *ComplianceHandler) ListOverdue(c *gin.Context) {
	results, err := h.complianceService.ListOverdue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// Update updates an open report's title and description
func (h *ComplianceHandler) Update(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid report ID")
		return
	}

	var req complianceapp.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.complianceService.Update(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// StartReview assigns a reviewer and moves the report into review
func (h *ComplianceHandler) StartReview(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid report ID")
		return
	}

	var req complianceapp.StartReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.complianceService.StartReview(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Resolve closes the report with a resolution note
func (h *ComplianceHandler) Resolve(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid report ID")
		return
	}

	var req complianceapp.ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.complianceService.Resolve(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Escalate closes the report as escalated
func (h *ComplianceHandler) Escalate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid report ID")
		return
	}

	var req complianceapp.EscalateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.complianceService.Escalate(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
