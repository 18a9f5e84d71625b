package models

import (
	"time"

	"github.com/atelier/backend/internal/domain/export"
	"github.com/google/uuid"
)

// ExportJobModel is the persistence model for the export Job aggregate.
type ExportJobModel struct {
	AggregateModel
	Dataset      export.Dataset   `gorm:"type:varchar(30);not null;index"`
	Format       export.Format    `gorm:"type:varchar(10);not null"`
	TemplateID   *uuid.UUID       `gorm:"type:uuid;index"`
	RequestedBy  uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status       export.JobStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Progress     int              `gorm:"not null;default:0"`
	Attempts     int              `gorm:"not null;default:0"`
	MaxAttempts  int              `gorm:"not null;default:3"`
	ArtifactURL  string           `gorm:"type:varchar(1000)"`
	ErrorMessage string           `gorm:"type:text"`
	PeriodStart  *time.Time
	PeriodEnd    *time.Time
	StartedAt    *time.Time `gorm:"index"`
	CompletedAt  *time.Time
}

// TableName returns the table name for GORM
func (ExportJobModel) TableName() string {
	return "export_jobs"
}

// ToDomain converts the persistence model to a domain Job
func (m *ExportJobModel) ToDomain() *export.Job {
	j := &export.Job{
		Dataset:      m.Dataset,
		Format:       m.Format,
		TemplateID:   m.TemplateID,
		RequestedBy:  m.RequestedBy,
		Status:       m.Status,
		Progress:     m.Progress,
		Attempts:     m.Attempts,
		MaxAttempts:  m.MaxAttempts,
		ArtifactURL:  m.ArtifactURL,
		ErrorMessage: m.ErrorMessage,
		PeriodStart:  m.PeriodStart,
		PeriodEnd:    m.PeriodEnd,
		StartedAt:    m.StartedAt,
		CompletedAt:  m.CompletedAt,
	}
	m.PopulateAggregateRoot(&j.BaseAggregateRoot)
	return j
}

// FromDomain populates the persistence model from a domain Job
func (m *ExportJobModel) FromDomain(j *export.Job) {
	m.FromDomainAggregateRoot(j.BaseAggregateRoot)
	m.Dataset = j.Dataset
	m.Format = j.Format
	m.TemplateID = j.TemplateID
	m.RequestedBy = j.RequestedBy
	m.Status = j.Status
	m.Progress = j.Progress
	m.Attempts = j.Attempts
	m.MaxAttempts = j.MaxAttempts
	m.ArtifactURL = j.ArtifactURL
	m.ErrorMessage = j.ErrorMessage
	m.PeriodStart = j.PeriodStart
	m.PeriodEnd = j.PeriodEnd
	m.StartedAt = j.StartedAt
	m.CompletedAt = j.CompletedAt
}
