package handler

import (
	reportingapp "github.com/atelier/backend/internal/application/reporting"
	"github.com/atelier/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportingHandler handles dashboard, template, and analytics API endpoints
type ReportingHandler struct {
	BaseHandler
	reportingService *reportingapp.Service
}

// NewReportingHandler creates a new ReportingHandler
func NewReportingHandler(reportingService *reportingapp.Service) *ReportingHandler {
	return &ReportingHandler{
		reportingService: reportingService,
	}
}

// CreateDashboard creates a dashboard for the authenticated employee
func (h *ReportingHandler) CreateDashboard(c *gin.Context) {
	var req reportingapp.CreateDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportingService.CreateDashboard(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// CloneDashboard creates a dashboard from a report template's layout
func (h *ReportingHandler) CloneDashboard(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid template ID")
		return
	}

	var req reportingapp.CloneDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportingService.CloneDashboardFromTemplate(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetDashboard returns a single dashboard by ID
func (h *ReportingHandler) GetDashboard(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid dashboard ID")
		return
	}

	result, err := h.reportingService.GetDashboard(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetDefaultDashboard returns the authenticated employee's default dashboard
func (h *ReportingHandler) GetDefaultDashboard(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.reportingService.GetDefaultDashboard(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListDashboards lists the authenticated employee's dashboards
func (h *ReportingHandler) ListDashboards(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter reportingapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	results, err := h.reportingService.ListDashboards(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// UpdateDashboard renames a dashboard
func (h *ReportingHandler) UpdateDashboard(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid dashboard ID")
		return
	}

	var req reportingapp.UpdateDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportingService.UpdateDashboard(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ReplaceDashboardLayout swaps in a new widget layout
func (h *ReportingHandler) ReplaceDashboardLayout(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid dashboard ID")
		return
	}

	var req reportingapp.ReplaceLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportingService.ReplaceDashboardLayout(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SetDefaultDashboard marks a dashboard as its owner's default
func (h *ReportingHandler) SetDefaultDashboard(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid dashboard ID")
		return
	}

	result, err := h.reportingService.SetDefaultDashboard(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteDashboard deletes a dashboard
func (h *ReportingHandler) DeleteDashboard(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid dashboard ID")
		return
	}

	if err := h.reportingService.DeleteDashboard(c.Request.Context(), uuid.MustParse(uri.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateTemplate creates a report template
func (h *ReportingHandler) CreateTemplate(c *gin.Context) {
	var req reportingapp.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportingService.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetTemplate returns a single template by ID
func (h *ReportingHandler) GetTemplate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid template ID")
		return
	}

	result, err := h.reportingService.GetTemplate(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListTemplates returns a paginated list of templates
func (h *ReportingHandler) ListTemplates(c *gin.Context) {
	var filter reportingapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	results, total, err := h.reportingService.ListTemplates(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, results, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// UpdateTemplate updates a template's name and layout
func (h *ReportingHandler) UpdateTemplate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid template ID")
		return
	}

	var req reportingapp.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportingService.UpdateTemplate(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SetTemplatePageSetup changes a template's paper size and orientation
func (h *ReportingHandler) SetTemplatePageSetup(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid template ID")
		return
	}

	var req reportingapp.PageSetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportingService.SetTemplatePageSetup(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeactivateTemplate retires a template from use
func (h *ReportingHandler) DeactivateTemplate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid template ID")
		return
	}

	result, err := h.reportingService.DeactivateTemplate(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ActivateTemplate restores a deactivated template
func (h *ReportingHandler) ActivateTemplate(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid template ID")
		return
	}

	result, err := h.reportingService.ActivateTemplate(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// OrderSummary returns order counts and totals by status
func (h *ReportingHandler) OrderSummary(c *gin.Context) {
	result, err := h.reportingService.OrderSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RevenueTrend returns monthly payment totals for a period
func (h *ReportingHandler) RevenueTrend(c *gin.Context) {
	query, ok := h.bindAnalyticsQuery(c)
	if !ok {
		return
	}

	result, err := h.reportingService.RevenueTrend(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// OutstandingInvoices returns issued invoices with unpaid balances
func (h *ReportingHandler) OutstandingInvoices(c *gin.Context) {
	query, ok := h.bindAnalyticsQuery(c)
	if !ok {
		return
	}

	result, err := h.reportingService.OutstandingInvoices(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// FabricConsumption returns fabric issue totals for a period
func (h *ReportingHandler) FabricConsumption(c *gin.Context) {
	query, ok := h.bindAnalyticsQuery(c)
	if !ok {
		return
	}

	result, err := h.reportingService.FabricConsumption(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// EmployeeProductivity returns per-employee production metrics
func (h *ReportingHandler) EmployeeProductivity(c *gin.Context) {
	query, ok := h.bindAnalyticsQuery(c)
	if !ok {
		return
	}

	result, err := h.reportingService.EmployeeProductivity(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ComplianceOpenItems returns open compliance reports by category
func (h *ReportingHandler) ComplianceOpenItems(c *gin.Context) {
	result, err := h.reportingService.ComplianceOpenItems(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

func (h *ReportingHandler) bindAnalyticsQuery(c *gin.Context) (reportingapp.AnalyticsQuery, bool) {
	var query reportingapp.AnalyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return query, false
	}
	return query, true
}
