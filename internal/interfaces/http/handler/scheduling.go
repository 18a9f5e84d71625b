package handler

import (
	"time"

	schedulingapp "github.com/atelier/backend/internal/application/scheduling"
	"github.com/atelier/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SchedulingHandler handles schedule, equipment, and maintenance ticket endpoints
type SchedulingHandler struct {
	BaseHandler
	schedulingService *schedulingapp.Service
}

// NewSchedulingHandler creates a new SchedulingHandler
func NewSchedulingHandler(schedulingService *schedulingapp.Service) *SchedulingHandler {
	return &SchedulingHandler{
		schedulingService: schedulingService,
	}
}

// CreateReportSchedule creates a recurring report schedule
func (h *SchedulingHandler) CreateReportSchedule(c *gin.Context) {
	var req schedulingapp.CreateReportScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.schedulingService.CreateReportSchedule(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// CreateMaintenanceSchedule creates a recurring equipment maintenance schedule
func (h *SchedulingHandler) CreateMaintenanceSchedule(c *gin.Context) {
	var req schedulingapp.CreateMaintenanceScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.schedulingService.CreateMaintenanceSchedule(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetSchedule returns a single schedule by ID
func (h *SchedulingHandler) GetSchedule(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid schedule ID")
		return
	}

	result, err := h.schedulingService.GetSchedule(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListSchedules returns a paginated list of schedules
func (h *SchedulingHandler) ListSchedules(c *gin.Context) {
	var filter schedulingapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	results, total, err := h.schedulingService.ListSchedules(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, results, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// Reschedule changes a schedule's cadence and next run
func (h *SchedulingHandler) Reschedule(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid schedule ID")
		return
	}

	var req schedulingapp.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.schedulingService.Reschedule(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SetRecipients replaces a report schedule's recipient list
func (h *SchedulingHandler) SetRecipients(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid schedule ID")
		return
	}

	var req schedulingapp.SetRecipientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.schedulingService.SetRecipients(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// PauseSchedule pauses a schedule
func (h *SchedulingHandler) PauseSchedule(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid schedule ID")
		return
	}

	result, err := h.schedulingService.PauseSchedule(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ResumeSchedule resumes a paused schedule
func (h *SchedulingHandler) ResumeSchedule(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid schedule ID")
		return
	}

	result, err := h.schedulingService.ResumeSchedule(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteSchedule removes a schedule
func (h *SchedulingHandler) DeleteSchedule(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid schedule ID")
		return
	}

	if err := h.schedulingService.DeleteSchedule(c.Request.Context(), uuid.MustParse(uri.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Dispatch runs due schedules immediately
func (h *SchedulingHandler) Dispatch(c *gin.Context) {
	result, err := h.schedulingService.Dispatch(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterEquipment registers a piece of workshop equipment
func (h *SchedulingHandler) RegisterEquipment(c *gin.Context) {
	var req schedulingapp.RegisterEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.schedulingService.RegisterEquipment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetEquipment returns a single equipment record by ID
func (h *SchedulingHandler) GetEquipment(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid equipment ID")
		return
	}

	result, err := h.schedulingService.GetEquipment(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListEquipment returns a paginated list of equipment
func (h *SchedulingHandler) ListEquipment(c *gin.Context) {
	var filter schedulingapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	results, total, err := h.schedulingService.ListEquipment(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, results, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// RelocateEquipment moves equipment to a new location
func (h *SchedulingHandler) RelocateEquipment(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid equipment ID")
		return
	}

	var req schedulingapp.RelocateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.schedulingService.RelocateEquipment(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RetireEquipment retires equipment from service
func (h *SchedulingHandler) RetireEquipment(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid equipment ID")
		return
	}

	result, err := h.schedulingService.RetireEquipment(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CompleteTicket closes a maintenance ticket with service notes
func (h *SchedulingHandler) CompleteTicket(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid ticket ID")
		return
	}

	var req schedulingapp.CompleteTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.schedulingService.CompleteTicket(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SkipTicket closes a maintenance ticket as skipped
func (h *SchedulingHandler) SkipTicket(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid ticket ID")
		return
	}

	var req schedulingapp.SkipTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.schedulingService.SkipTicket(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListOpenTickets returns open maintenance tickets
func (h *SchedulingHandler) ListOpenTickets(c *gin.Context) {
	var filter schedulingapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	results, err := h.schedulingService.ListOpenTickets(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// ListTicketsByEquipment returns the maintenance history for one machine
func (h *SchedulingHandler) ListTicketsByEquipment(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid equipment ID")
		return
	}

	var filter schedulingapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	results, err := h.schedulingService.ListTicketsByEquipment(c.Request.Context(), uuid.MustParse(uri.ID), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}
