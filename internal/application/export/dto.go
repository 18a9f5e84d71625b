package export

import (
	"time"

	"github.com/google/uuid"

	"github.com/atelier/backend/internal/domain/export"
)

// EnqueueJobRequest represents a request to queue an export job.
// IdempotencyKey dedupes client-side double submits.
type EnqueueJobRequest struct {
	Dataset        export.Dataset `json:"dataset" binding:"required"`
	Format         export.Format  `json:"format" binding:"required"`
	TemplateID     *uuid.UUID     `json:"template_id"`
	RequestedBy    uuid.UUID      `json:"requested_by" binding:"required"`
	PeriodStart    *time.Time     `json:"period_start"`
	PeriodEnd      *time.Time     `json:"period_end"`
	IdempotencyKey string         `json:"idempotency_key" binding:"max=100"`
}

// ListFilter represents job listing parameters
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	Dataset  string `form:"dataset"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// JobResponse represents export job data returned to clients
type JobResponse struct {
	ID           uuid.UUID        `json:"id"`
	Dataset      export.Dataset   `json:"dataset"`
	Format       export.Format    `json:"format"`
	TemplateID   *uuid.UUID       `json:"template_id,omitempty"`
	RequestedBy  uuid.UUID        `json:"requested_by"`
	Status       export.JobStatus `json:"status"`
	Progress     int              `json:"progress"`
	Attempts     int              `json:"attempts"`
	MaxAttempts  int              `json:"max_attempts"`
	ArtifactURL  string           `json:"artifact_url,omitempty"`
	ErrorMessage string           `json:"error_message,omitempty"`
	PeriodStart  *time.Time       `json:"period_start,omitempty"`
	PeriodEnd    *time.Time       `json:"period_end,omitempty"`
	StartedAt    *time.Time       `json:"started_at,omitempty"`
	CompletedAt  *time.Time       `json:"completed_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// QueueStats summarizes the export queue by status
type QueueStats struct {
	Pending   int64 `json:"pending"`
	Running   int64 `json:"running"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
	Cancelled int64 `json:"cancelled"`
}

// ToJobResponse converts a domain job to a response DTO
func ToJobResponse(j *export.Job) *JobResponse {
	return &JobResponse{
		ID:           j.ID,
		Dataset:      j.Dataset,
		Format:       j.Format,
		TemplateID:   j.TemplateID,
		RequestedBy:  j.RequestedBy,
		Status:       j.Status,
		Progress:     j.Progress,
		Attempts:     j.Attempts,
		MaxAttempts:  j.MaxAttempts,
		ArtifactURL:  j.ArtifactURL,
		ErrorMessage: j.ErrorMessage,
		PeriodStart:  j.PeriodStart,
		PeriodEnd:    j.PeriodEnd,
		StartedAt:    j.StartedAt,
		CompletedAt:  j.CompletedAt,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

// ToJobResponses converts a slice of jobs to response DTOs
func ToJobResponses(jobs []export.Job) []JobResponse {
	responses := make([]JobResponse, len(jobs))
	for i := range jobs {
		responses[i] = *ToJobResponse(&jobs[i])
	}
	return responses
}
