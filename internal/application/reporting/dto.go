package reporting

import (
	"time"

	"github.com/google/uuid"

	"github.com/atelier/backend/internal/domain/reporting"
)

// CreateDashboardRequest represents a request to create a dashboard
type CreateDashboardRequest struct {
	Name        string           `json:"name" binding:"required,max=200"`
	Description string           `json:"description" binding:"max=1000"`
	OwnerID     uuid.UUID        `json:"owner_id" binding:"required"`
	Layout      reporting.Layout `json:"layout" binding:"required"`
	IsDefault   bool             `json:"is_default"`
}

// CloneDashboardRequest represents a request to create a dashboard
// from a report template's layout
type CloneDashboardRequest struct {
	Name        string    `json:"name" binding:"max=200"`
	Description string    `json:"description" binding:"max=1000"`
	OwnerID     uuid.UUID `json:"owner_id" binding:"required"`
	IsDefault   bool      `json:"is_default"`
}

// UpdateDashboardRequest represents a request to rename a dashboard
type UpdateDashboardRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=1000"`
}

// ReplaceLayoutRequest swaps in a new widget layout
type ReplaceLayoutRequest struct {
	Layout reporting.Layout `json:"layout" binding:"required"`
}

// CreateTemplateRequest represents a request to create a report template
type CreateTemplateRequest struct {
	Name        string                `json:"name" binding:"required,max=200"`
	Description string                `json:"description" binding:"max=1000"`
	CreatedBy   uuid.UUID             `json:"created_by" binding:"required"`
	Layout      reporting.Layout      `json:"layout" binding:"required"`
	PaperSize   reporting.PaperSize   `json:"paper_size" binding:"required"`
	Orientation reporting.Orientation `json:"orientation" binding:"required"`
}

// UpdateTemplateRequest represents a request to update a template
type UpdateTemplateRequest struct {
	Name        string           `json:"name" binding:"required,max=200"`
	Description string           `json:"description" binding:"max=1000"`
	Layout      reporting.Layout `json:"layout" binding:"required"`
}

// PageSetupRequest changes a template's render page setup
type PageSetupRequest struct {
	PaperSize   reporting.PaperSize   `json:"paper_size" binding:"required"`
	Orientation reporting.Orientation `json:"orientation" binding:"required"`
}

// AnalyticsQuery bounds an analytics request to a period
type AnalyticsQuery struct {
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
	EmployeeID *uuid.UUID `form:"employee_id"`
	FabricID   *uuid.UUID `form:"fabric_id"`
	TopN       int        `form:"top_n"`
}

// ListFilter represents dashboard/template listing parameters
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// DashboardResponse represents dashboard data returned to clients
type DashboardResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	OwnerID     uuid.UUID        `json:"owner_id"`
	Layout      reporting.Layout `json:"layout"`
	IsDefault   bool             `json:"is_default"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// TemplateResponse represents template data returned to clients
type TemplateResponse struct {
	ID          uuid.UUID             `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	CreatedBy   uuid.UUID             `json:"created_by"`
	Layout      reporting.Layout      `json:"layout"`
	PaperSize   reporting.PaperSize   `json:"paper_size"`
	Orientation reporting.Orientation `json:"orientation"`
	Active      bool                  `json:"active"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// ToDashboardResponse converts a domain dashboard to a response DTO
func ToDashboardResponse(d *reporting.Dashboard) *DashboardResponse {
	return &DashboardResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		OwnerID:     d.OwnerID,
		Layout:      d.Layout,
		IsDefault:   d.IsDefault,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDashboardResponses converts a slice of dashboards to response DTOs
func ToDashboardResponses(dashboards []reporting.Dashboard) []DashboardResponse {
	responses := make([]DashboardResponse, len(dashboards))
	for i := range dashboards {
		responses[i] = *ToDashboardResponse(&dashboards[i])
	}
	return responses
}

// ToTemplateResponse converts a domain template to a response DTO
func ToTemplateResponse(t *reporting.Template) *TemplateResponse {
	return &TemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedBy:   t.CreatedBy,
		Layout:      t.Layout,
		PaperSize:   t.PaperSize,
		Orientation: t.Orientation,
		Active:      t.Active,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToTemplateResponses converts a slice of templates to response DTOs
func ToTemplateResponses(templates []reporting.Template) []TemplateResponse {
	responses := make([]TemplateResponse, len(templates))
	for i := range templates {
		responses[i] = *ToTemplateResponse(&templates[i])
	}
	return responses
}
