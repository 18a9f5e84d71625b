package compliance

import (
	"github.com/atelier/backend/internal/domain/shared"
)

const (
	AggregateTypeReport = "ComplianceReport"

	EventTypeReportFiled  = "compliance.report.filed"
	EventTypeReportClosed = "compliance.report.closed"
)

// ReportFiledEvent is raised when a compliance report is filed
type ReportFiledEvent struct {
	shared.BaseDomainEvent
	ReferenceNo string   `json:"reference_no"`
	Category    Category `json:"category"`
	Title       string   `json:"title"`
}

// NewReportFiledEvent creates a new report filed event
func NewReportFiledEvent(r *Report) *ReportFiledEvent {
	return &ReportFiledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReportFiled, AggregateTypeReport, r.GetID()),
		ReferenceNo:     r.ReferenceNo,
		Category:        r.Category,
		Title:           r.Title,
	}
}

// ReportClosedEvent is raised when a report is resolved or escalated
type ReportClosedEvent struct {
	shared.BaseDomainEvent
	ReferenceNo string `json:"reference_no"`
	Status      Status `json:"status"`
	Resolution  string `json:"resolution"`
}

// NewReportClosedEvent creates a new report closed event
func NewReportClosedEvent(r *Report) *ReportClosedEvent {
	return &ReportClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReportClosed, AggregateTypeReport, r.GetID()),
		ReferenceNo:     r.ReferenceNo,
		Status:          r.Status,
		Resolution:      r.Resolution,
	}
}
