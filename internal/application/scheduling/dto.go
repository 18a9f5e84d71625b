package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/atelier/backend/internal/domain/scheduling"
)

// CreateReportScheduleRequest creates a recurring report dispatch
type CreateReportScheduleRequest struct {
	Name       string             `json:"name" binding:"required,max=200"`
	Cadence    scheduling.Cadence `json:"cadence" binding:"required"`
	FirstRunAt time.Time          `json:"first_run_at" binding:"required"`
	TemplateID uuid.UUID          `json:"template_id" binding:"required"`
	Recipients []string           `json:"recipients" binding:"dive,email"`
}

// CreateMaintenanceScheduleRequest creates a recurring service ticket
type CreateMaintenanceScheduleRequest struct {
	Name        string             `json:"name" binding:"required,max=200"`
	Cadence     scheduling.Cadence `json:"cadence" binding:"required"`
	FirstRunAt  time.Time          `json:"first_run_at" binding:"required"`
	EquipmentID uuid.UUID          `json:"equipment_id" binding:"required"`
}

// RescheduleRequest changes a schedule's cadence and next run
type RescheduleRequest struct {
	Cadence   scheduling.Cadence `json:"cadence" binding:"required"`
	NextRunAt time.Time          `json:"next_run_at" binding:"required"`
}

// SetRecipientsRequest replaces a report schedule's delivery list
type SetRecipientsRequest struct {
	Recipients []string `json:"recipients" binding:"required,dive,email"`
}

// RegisterEquipmentRequest registers a serviceable machine
type RegisterEquipmentRequest struct {
	Name        string     `json:"name" binding:"required,max=200"`
	SerialNo    string     `json:"serial_no" binding:"required,max=100"`
	Location    string     `json:"location" binding:"max=200"`
	PurchasedAt *time.Time `json:"purchased_at"`
}

// RelocateEquipmentRequest moves equipment to a new location
type RelocateEquipmentRequest struct {
	Location string `json:"location" binding:"max=200"`
}

// CompleteTicketRequest closes a ticket after service
type CompleteTicketRequest struct {
	CompletedBy uuid.UUID `json:"completed_by" binding:"required"`
	Notes       string    `json:"notes" binding:"max=1000"`
}

// SkipTicketRequest closes a ticket without service
type SkipTicketRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ListFilter represents listing parameters
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Kind     string `form:"kind"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// ScheduleResponse represents schedule data returned to clients
type ScheduleResponse struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Kind        scheduling.Kind    `json:"kind"`
	Cadence     scheduling.Cadence `json:"cadence"`
	AnchorDay   int                `json:"anchor_day"`
	NextRunAt   time.Time          `json:"next_run_at"`
	LastRunAt   *time.Time         `json:"last_run_at,omitempty"`
	TemplateID  *uuid.UUID         `json:"template_id,omitempty"`
	EquipmentID *uuid.UUID         `json:"equipment_id,omitempty"`
	Recipients  []string           `json:"recipients,omitempty"`
	Active      bool               `json:"active"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// EquipmentResponse represents equipment data returned to clients
type EquipmentResponse struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	SerialNo       string     `json:"serial_no"`
	Location       string     `json:"location,omitempty"`
	PurchasedAt    *time.Time `json:"purchased_at,omitempty"`
	LastServicedAt *time.Time `json:"last_serviced_at,omitempty"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TicketResponse represents a maintenance ticket
type TicketResponse struct {
	ID          uuid.UUID               `json:"id"`
	ScheduleID  uuid.UUID               `json:"schedule_id"`
	EquipmentID uuid.UUID               `json:"equipment_id"`
	DueAt       time.Time               `json:"due_at"`
	Status      scheduling.TicketStatus `json:"status"`
	CompletedAt *time.Time              `json:"completed_at,omitempty"`
	CompletedBy *uuid.UUID              `json:"completed_by,omitempty"`
	Notes       string                  `json:"notes,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

// DispatchResult summarizes one dispatcher sweep
type DispatchResult struct {
	Dispatched int `json:"dispatched"`
	Reports    int `json:"reports"`
	Tickets    int `json:"tickets"`
	Skipped    int `json:"skipped"`
}

// ToScheduleResponse converts a domain schedule to a response DTO
func ToScheduleResponse(s *scheduling.Schedule) *ScheduleResponse {
	return &ScheduleResponse{
		ID:          s.ID,
		Name:        s.Name,
		Kind:        s.Kind,
		Cadence:     s.Cadence,
		AnchorDay:   s.AnchorDay,
		NextRunAt:   s.NextRunAt,
		LastRunAt:   s.LastRunAt,
		TemplateID:  s.TemplateID,
		EquipmentID: s.EquipmentID,
		Recipients:  s.Recipients,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToScheduleResponses converts a slice of schedules to response DTOs
func ToScheduleResponses(schedules []scheduling.Schedule) []ScheduleResponse {
	responses := make([]ScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = *ToScheduleResponse(&schedules[i])
	}
	return responses
}

// ToEquipmentResponse converts domain equipment to a response DTO
func ToEquipmentResponse(e *scheduling.Equipment) *EquipmentResponse {
	return &EquipmentResponse{
		ID:             e.ID,
		Name:           e.Name,
		SerialNo:       e.SerialNo,
		Location:       e.Location,
		PurchasedAt:    e.PurchasedAt,
		LastServicedAt: e.LastServicedAt,
		Active:         e.Active,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

// ToEquipmentResponses converts a slice of equipment to response DTOs
func ToEquipmentResponses(equipment []scheduling.Equipment) []EquipmentResponse {
	responses := make([]EquipmentResponse, len(equipment))
	for i := range equipment {
		responses[i] = *ToEquipmentResponse(&equipment[i])
	}
	return responses
}

// ToTicketResponse converts a domain ticket to a response DTO
func ToTicketResponse(t *scheduling.Ticket) *TicketResponse {
	return &TicketResponse{
		ID:          t.ID,
		ScheduleID:  t.ScheduleID,
		EquipmentID: t.EquipmentID,
		DueAt:       t.DueAt,
		Status:      t.Status,
		CompletedAt: t.CompletedAt,
		CompletedBy: t.CompletedBy,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
	}
}

// ToTicketResponses converts a slice of tickets to response DTOs
func ToTicketResponses(tickets []scheduling.Ticket) []TicketResponse {
	responses := make([]TicketResponse, len(tickets))
	for i := range tickets {
		responses[i] = *ToTicketResponse(&tickets[i])
	}
	return responses
}
