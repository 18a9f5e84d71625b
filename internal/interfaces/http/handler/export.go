package handler

import (
	"time"

	exportapp "github.com/atelier/backend/internal/application/export"
	"github.com/atelier/backend/internal/domain/export"
	"github.com/atelier/backend/internal/domain/workforce"
	"github.com/atelier/backend/internal/infrastructure/storage"
	"github.com/atelier/backend/internal/interfaces/http/dto"
	"github.com/atelier/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExportHandler handles export job API endpoints
type ExportHandler struct {
	BaseHandler
	exportService *exportapp.Service
	store         storage.ObjectStore
}

// NewExportHandler creates a new ExportHandler. The object store may be nil
// when artifact downloads are disabled.
func NewExportHandler(exportService *exportapp.Service, store storage.ObjectStore) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		store:         store,
	}
}

// DownloadResponse carries a presigned artifact URL
type DownloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Enqueue queues a new export job
func (h *ExportHandler) Enqueue(c *gin.Context) {
	var req exportapp.EnqueueJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.exportService.Enqueue(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a single export job by ID
func (h *ExportHandler) Get(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	result, err := h.exportService.GetByID(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated list of export jobs
func (h *ExportHandler) List(c *gin.Context) {
	var filter exportapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	results, total, err := h.exportService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, results, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// ListMine returns the authenticated employee's export jobs
func (h *ExportHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter exportapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	results, err := h.exportService.ListByRequester(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// Cancel cancels a pending or running export job. Employees may only
// cancel their own jobs; managers and admins may cancel any job.
func (h *ExportHandler) Cancel(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	canManage := workforce.Role(middleware.GetJWTRole(c)).CanManage()

	result, err := h.exportService.Cancel(c.Request.Context(), uuid.MustParse(uri.ID), userID, canManage)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Retry puts a failed export job back on the queue
func (h *ExportHandler) Retry(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	result, err := h.exportService.Retry(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Stats returns export queue depth by status
func (h *ExportHandler) Stats(c *gin.Context) {
	result, err := h.exportService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Download presigns a time-limited URL for a completed job's artifact
func (h *ExportHandler) Download(c *gin.Context) {
	if h.store == nil {
		h.InternalError(c, "Artifact storage is not configured")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	job, err := h.exportService.GetByID(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if job.Status != export.JobStatusCompleted || job.ArtifactURL == "" {
		h.UnprocessableEntity(c, dto.ErrCodeInvalidState, "Job has no artifact to download")
		return
	}

	url, expiresAt, err := h.store.PresignDownload(c.Request.Context(), job.ArtifactURL)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DownloadResponse{
		URL:       url,
		ExpiresAt: expiresAt,
	})
}
