package compliance

import (
	"time"

	"github.com/google/uuid"

	"github.com/atelier/backend/internal/domain/compliance"
)

// FileReportRequest represents a request to file a compliance report
type FileReportRequest struct {
	ReferenceNo string              `json:"reference_no" binding:"required,max=50"`
	Category    compliance.Category `json:"category" binding:"required"`
	Title       string              `json:"title" binding:"required,max=200"`
	Description string              `json:"description" binding:"max=5000"`
	ReportedBy  uuid.UUID           `json:"reported_by" binding:"required"`
	DueDate     *time.Time          `json:"due_date"`
}

// UpdateReportRequest represents a request to update an open report
type UpdateReportRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=5000"`
}

// StartReviewRequest assigns a reviewer to the report
type StartReviewRequest struct {
	AssigneeID uuid.UUID `json:"assignee_id" binding:"required"`
}

// ResolveReportRequest closes the report with a resolution note
type ResolveReportRequest struct {
	Resolution string `json:"resolution" binding:"required,max=5000"`
}

// EscalateReportRequest closes the report as escalated
type EscalateReportRequest struct {
	Reason string `json:"reason" binding:"required,max=5000"`
}

// ListFilter represents report listing parameters
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Category string `form:"category"`
	Status   string `form:"status"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// ReportResponse represents compliance report data returned to clients
type ReportResponse struct {
	ID          uuid.UUID           `json:"id"`
	ReferenceNo string              `json:"reference_no"`
	Category    compliance.Category `json:"category"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Status      compliance.Status   `json:"status"`
	ReportedBy  uuid.UUID           `json:"reported_by"`
	AssigneeID  *uuid.UUID          `json:"assignee_id,omitempty"`
	DueDate     *time.Time          `json:"due_date,omitempty"`
	IsOverdue   bool                `json:"is_overdue"`
	Resolution  string              `json:"resolution,omitempty"`
	ResolvedAt  *time.Time          `json:"resolved_at,omitempty"`
	Version     int                 `json:"version"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ToReportResponse converts a domain report to a response DTO
func ToReportResponse(r *compliance.Report) *ReportResponse {
	return &ReportResponse{
		ID:          r.ID,
		ReferenceNo: r.ReferenceNo,
		Category:    r.Category,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		ReportedBy:  r.ReportedBy,
		AssigneeID:  r.AssigneeID,
		DueDate:     r.DueDate,
		IsOverdue:   r.IsOverdue(time.Now()),
		Resolution:  r.Resolution,
		ResolvedAt:  r.ResolvedAt,
		Version:     r.Version,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ToReportResponses converts a slice of reports to response DTOs
func ToReportResponses(reports []compliance.Report) []ReportResponse {
	responses := make([]ReportResponse, len(reports))
	for i := range reports {
		responses[i] = *ToReportResponse(&reports[i])
	}
	return responses
}
