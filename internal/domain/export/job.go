package export

import (
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultMaxAttempts is how many times a job may run before failing for good
const DefaultMaxAttempts = 3

// Job is the aggregate root for a document export. Jobs are durable:
// every state change is persisted, and a job interrupted by a crash is
// requeued instead of lost. Transient failures retry up to MaxAttempts.
type Job struct {
	shared.BaseAggregateRoot
	Dataset      Dataset
	Format       Format
	TemplateID   *uuid.UUID
	RequestedBy  uuid.UUID
	Status       JobStatus
	Progress     int
	Attempts     int
	MaxAttempts  int
	ArtifactURL  string
	ErrorMessage string
	PeriodStart  *time.Time
	PeriodEnd    *time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
}

// NewJob creates a pending export job
func NewJob(dataset Dataset, format Format, requestedBy uuid.UUID) (*Job, error) {
	if !dataset.IsValid() {
		return nil, shared.NewDomainError("INVALID_DATASET", "Unknown export dataset: "+dataset.String())
	}
	if !format.IsValid() {
		return nil, shared.NewDomainError("INVALID_FORMAT", "Unknown export format: "+format.String())
	}
	if requestedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Export job must record who requested it")
	}

	job := &Job{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Dataset:           dataset,
		Format:            format,
		RequestedBy:       requestedBy,
		Status:            JobStatusPending,
		MaxAttempts:       DefaultMaxAttempts,
	}

	job.AddDomainEvent(NewJobCreatedEvent(job))

	return job, nil
}

// SetTemplate attaches the report template for PDF exports
func (j *Job) SetTemplate(templateID uuid.UUID) error {
	if j.Format != FormatPDF {
		return shared.NewDomainError("INVALID_FORMAT", "Only PDF exports use a template")
	}
	if templateID == uuid.Nil {
		return shared.NewDomainError("INVALID_TEMPLATE", "Template ID cannot be empty")
	}
	j.TemplateID = &templateID
	j.Touch()
	return nil
}

// SetPeriod bounds the exported records to a date range
func (j *Job) SetPeriod(start, end time.Time) error {
	if end.Before(start) {
		return shared.NewDomainError("INVALID_PERIOD", "Period end cannot precede period start")
	}
	j.PeriodStart = &start
	j.PeriodEnd = &end
	j.Touch()
	return nil
}

// Start claims the job for a worker and counts the attempt
func (j *Job) Start() error {
	if !j.Status.CanTransitionTo(JobStatusRunning) {
		return shared.NewDomainError("INVALID_STATE", "Cannot start job from status: "+j.Status.String())
	}

	now := time.Now()
	oldStatus := j.Status
	j.Status = JobStatusRunning
	j.Attempts++
	j.Progress = 0
	j.ErrorMessage = ""
	j.StartedAt = &now
	j.Touch()

	j.AddDomainEvent(NewJobStatusChangedEvent(j, oldStatus, JobStatusRunning))

	return nil
}

// UpdateProgress records completion percentage while running
func (j *Job) UpdateProgress(percent int) error {
	if j.Status != JobStatusRunning {
		return shared.NewDomainError("INVALID_STATE", "Progress only applies to a running job")
	}
	if percent < 0 || percent > 100 {
		return shared.NewDomainError("INVALID_PROGRESS", "Progress must be between 0 and 100")
	}
	if percent < j.Progress {
		return nil
	}
	j.Progress = percent
	j.Touch()
	return nil
}

// Complete marks the job done with the artifact location
func (j *Job) Complete(artifactURL string) error {
	if !j.Status.CanTransitionTo(JobStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", "Cannot complete job from status: "+j.Status.String())
	}
	if artifactURL == "" {
		return shared.NewDomainError("INVALID_ARTIFACT", "Artifact URL cannot be empty")
	}

	now := time.Now()
	oldStatus := j.Status
	j.Status = JobStatusCompleted
	j.Progress = 100
	j.ArtifactURL = artifactURL
	j.CompletedAt = &now
	j.Touch()

	j.AddDomainEvent(NewJobStatusChangedEvent(j, oldStatus, JobStatusCompleted))
	j.AddDomainEvent(NewJobCompletedEvent(j))

	return nil
}

// Fail records a failed attempt. The job returns to PENDING for another
// attempt until MaxAttempts is exhausted, then fails permanently.
func (j *Job) Fail(errorMessage string) error {
	if j.Status != JobStatusRunning {
		return shared.NewDomainError("INVALID_STATE", "Cannot fail job from status: "+j.Status.String())
	}

	oldStatus := j.Status
	j.ErrorMessage = errorMessage

	if j.Attempts < j.MaxAttempts {
		j.Status = JobStatusPending
		j.Touch()
		j.AddDomainEvent(NewJobStatusChangedEvent(j, oldStatus, JobStatusPending))
		return nil
	}

	now := time.Now()
	j.Status = JobStatusFailed
	j.CompletedAt = &now
	j.Touch()

	j.AddDomainEvent(NewJobStatusChangedEvent(j, oldStatus, JobStatusFailed))
	j.AddDomainEvent(NewJobFailedEvent(j))

	return nil
}

// Cancel stops a job that has not finished. Running jobs are cancelled
// cooperatively: the worker observes the status on its next progress write.
func (j *Job) Cancel() error {
	if !j.Status.CanTransitionTo(JobStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel job from status: "+j.Status.String())
	}

	now := time.Now()
	oldStatus := j.Status
	j.Status = JobStatusCancelled
	j.CompletedAt = &now
	j.Touch()

	j.AddDomainEvent(NewJobStatusChangedEvent(j, oldStatus, JobStatusCancelled))

	return nil
}

// Requeue returns a job abandoned by a crashed worker to the queue
// without consuming an attempt.
func (j *Job) Requeue() error {
	if j.Status != JobStatusRunning {
		return shared.NewDomainError("INVALID_STATE", "Only running jobs can be requeued")
	}

	oldStatus := j.Status
	j.Status = JobStatusPending
	j.Progress = 0
	j.Touch()

	j.AddDomainEvent(NewJobStatusChangedEvent(j, oldStatus, JobStatusPending))

	return nil
}

// Retry returns a permanently failed job to the queue with a fresh
// attempt budget. Operator-initiated; crash recovery uses Requeue.
func (j *Job) Retry() error {
	if j.Status != JobStatusFailed {
		return shared.NewDomainError("INVALID_STATE", "Only failed jobs can be retried")
	}

	oldStatus := j.Status
	j.Status = JobStatusPending
	j.Progress = 0
	j.Attempts = 0
	j.ErrorMessage = ""
	j.StartedAt = nil
	j.CompletedAt = nil
	j.Touch()

	j.AddDomainEvent(NewJobStatusChangedEvent(j, oldStatus, JobStatusPending))

	return nil
}

// IsTerminal returns true if the job has finished
func (j *Job) IsTerminal() bool {
	return j.Status.IsTerminal()
}

// HasAttemptsLeft returns true if the job may run again
func (j *Job) HasAttemptsLeft() bool {
	return j.Attempts < j.MaxAttempts
}
