package export

import (
	"github.com/atelier/backend/internal/domain/shared"
)

const (
	AggregateTypeJob = "ExportJob"

	EventTypeJobCreated       = "export.job.created"
	EventTypeJobStatusChanged = "export.job.status_changed"
	EventTypeJobCompleted     = "export.job.completed"
	EventTypeJobFailed        = "export.job.failed"
)

// JobCreatedEvent is raised when an export job is queued
type JobCreatedEvent struct {
	shared.BaseDomainEvent
	Dataset Dataset `json:"dataset"`
	Format  Format  `json:"format"`
}

// NewJobCreatedEvent creates a new job created event
func NewJobCreatedEvent(j *Job) *JobCreatedEvent {
	return &JobCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobCreated, AggregateTypeJob, j.GetID()),
		Dataset:         j.Dataset,
		Format:          j.Format,
	}
}

// JobStatusChangedEvent is raised on every job state transition
type JobStatusChangedEvent struct {
	shared.BaseDomainEvent
	OldStatus JobStatus `json:"old_status"`
	NewStatus JobStatus `json:"new_status"`
	Attempts  int       `json:"attempts"`
}

// NewJobStatusChangedEvent creates a new status changed event
func NewJobStatusChangedEvent(j *Job, oldStatus, newStatus JobStatus) *JobStatusChangedEvent {
	return &JobStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobStatusChanged, AggregateTypeJob, j.GetID()),
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
		Attempts:        j.Attempts,
	}
}

// JobCompletedEvent is raised when a job finishes successfully
type JobCompletedEvent struct {
	shared.BaseDomainEvent
	Dataset     Dataset `json:"dataset"`
	Format      Format  `json:"format"`
	ArtifactURL string  `json:"artifact_url"`
}

// NewJobCompletedEvent creates a new job completed event
func NewJobCompletedEvent(j *Job) *JobCompletedEvent {
	return &JobCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobCompleted, AggregateTypeJob, j.GetID()),
		Dataset:         j.Dataset,
		Format:          j.Format,
		ArtifactURL:     j.ArtifactURL,
	}
}

// JobFailedEvent is raised when a job exhausts its attempts
type JobFailedEvent struct {
	shared.BaseDomainEvent
	Dataset      Dataset `json:"dataset"`
	Format       Format  `json:"format"`
	Attempts     int     `json:"attempts"`
	ErrorMessage string  `json:"error_message"`
}

// NewJobFailedEvent creates a new job failed event
func NewJobFailedEvent(j *Job) *JobFailedEvent {
	return &JobFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobFailed, AggregateTypeJob, j.GetID()),
		Dataset:         j.Dataset,
		Format:          j.Format,
		Attempts:        j.Attempts,
		ErrorMessage:    j.ErrorMessage,
	}
}
