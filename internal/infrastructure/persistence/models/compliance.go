package models

import (
	"time"

	"github.com/atelier/backend/internal/domain/compliance"
	"github.com/google/uuid"
)

// ComplianceReportModel is the persistence model for the compliance Report aggregate.
type ComplianceReportModel struct {
	AggregateModel
	ReferenceNo string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	Category    compliance.Category `gorm:"type:varchar(20);not null;index"`
	Title       string              `gorm:"type:varchar(200);not null"`
	Description string              `gorm:"type:text"`
	Status      compliance.Status   `gorm:"type:varchar(20);not null;default:'OPEN';index"`
	ReportedBy  uuid.UUID           `gorm:"type:uuid;not null"`
	AssigneeID  *uuid.UUID          `gorm:"type:uuid;index"`
	DueDate     *time.Time          `gorm:"index"`
	Resolution  string              `gorm:"type:text"`
	ResolvedAt  *time.Time
}

// TableName returns the table name for GORM
func (ComplianceReportModel) TableName() string {
	return "compliance_reports"
}

// ToDomain converts the persistence model to a domain Report
func (m *ComplianceReportModel) ToDomain() *compliance.Report {
	r := &compliance.Report{
		ReferenceNo: m.ReferenceNo,
		Category:    m.Category,
		Title:       m.Title,
		Description: m.Description,
		Status:      m.Status,
		ReportedBy:  m.ReportedBy,
		AssigneeID:  m.AssigneeID,
		DueDate:     m.DueDate,
		Resolution:  m.Resolution,
		ResolvedAt:  m.ResolvedAt,
	}
	m.PopulateAggregateRoot(&r.BaseAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain Report
func (m *ComplianceReportModel) FromDomain(r *compliance.Report) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.ReferenceNo = r.ReferenceNo
	m.Category = r.Category
	m.Title = r.Title
	m.Description = r.Description
	m.Status = r.Status
	m.ReportedBy = r.ReportedBy
	m.AssigneeID = r.AssigneeID
	m.DueDate = r.DueDate
	m.Resolution = r.Resolution
	m.ResolvedAt = r.ResolvedAt
}
