package handler

import (
	"strconv"
	"time"

	workforceapp "github.com/atelier/backend/internal/application/workforce"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WorkforceHandler handles employee and performance API endpoints
type WorkforceHandler struct {
	BaseHandler
	workforceService *workforceapp.Service
}

// NewWorkforceHandler creates a new WorkforceHandler
func NewWorkforceHandler(workforceService *workforceapp.Service) *WorkforceHandler {
	return &WorkforceHandler{
		workforceService: workforceService,
	}
}

// Create hires a new employee
func (h *WorkforceHandler) Create(c *gin.Context) {
	var req workforceapp.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.workforceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a single employee by ID
func (h *WorkforceHandler) Get(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	result, err := h.workforceService.GetByID(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated list of employees
func (h *WorkforceHandler) List(c *gin.Context) {
	var filter workforceapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	results, total, err := h.workforceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, results, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// Update updates employee contact details
func (h *WorkforceHandler) Update(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req workforceapp.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.workforceService.Update(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ChangeRole changes an employee's workshop role
func (h *WorkforceHandler) ChangeRole(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req workforceapp.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.workforceService.ChangeRole(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SetHourlyRate changes an employee's pay rate
func (h *WorkforceHandler) SetHourlyRate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req workforceapp.SetHourlyRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.workforceService.SetHourlyRate(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ChangePassword performs a self-service password change
func (h *WorkforceHandler) ChangePassword(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req workforceapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.workforceService.ChangePassword(c.Request.Context(), uuid.MustParse(uri.ID), req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Password changed successfully"})
}

// ResetPassword performs an administrative password reset
func (h *WorkforceHandler) ResetPassword(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req workforceapp.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.workforceService.ResetPassword(c.Request.Context(), uuid.MustParse(uri.ID), req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Password reset successfully"})
}

// Deactivate deactivates an employee account
func (h *WorkforceHandler) Deactivate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	result, err := h.workforceService.Deactivate(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Reactivate restores a deactivated employee account
func (h *WorkforceHandler) Reactivate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	result, err := h.workforceService.Reactivate(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RecordPerformance upserts an employee's monthly metrics
func (h *WorkforceHandler) RecordPerformance(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req workforceapp.RecordPerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.workforceService.RecordPerformance(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListPerformance returns an employee's performance history
func (h *WorkforceHandler) ListPerformance(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}

	results, err := h.workforceService.ListPerformance(c.Request.Context(), uuid.MustParse(uri.ID), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// PeriodPerformance returns all employees' metrics for a given month
func (h *WorkforceHandler) PeriodPerformance(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		h.BadRequest(c, "Invalid year")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		h.BadRequest(c, "Invalid month")
		return
	}

	results, err := h.workforceService.PeriodPerformance(c.Request.Context(), year, time.Month(month))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}
