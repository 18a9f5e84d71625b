package compliance

import (
	"strings"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Category classifies a compliance report
type Category string

const (
	CategorySafety        Category = "SAFETY"
	CategoryLabor         Category = "LABOR"
	CategoryEnvironmental Category = "ENVIRONMENTAL"
	CategoryTax           Category = "TAX"
	CategoryQuality       Category = "QUALITY"
)

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategorySafety, CategoryLabor, CategoryEnvironmental, CategoryTax, CategoryQuality:
		return true
	}
	return false
}

// String returns the string representation
func (c Category) String() string {
	return string(c)
}

// Status represents the review state of a compliance report
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusInReview  Status = "IN_REVIEW"
	StatusResolved  Status = "RESOLVED"
	StatusEscalated Status = "ESCALATED"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInReview, StatusResolved, StatusEscalated:
		return true
	}
	return false
}

// String returns the string representation
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if no further transitions are allowed
func (s Status) IsTerminal() bool {
	return s == StatusResolved || s == StatusEscalated
}

// CanTransitionTo checks if transition to the target status is allowed
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusOpen:
		return target == StatusInReview
	case StatusInReview:
		return target == StatusResolved || target == StatusEscalated
	default:
		return false
	}
}

// Report is the aggregate root for a compliance finding. Reports move
// OPEN -> IN_REVIEW -> RESOLVED or ESCALATED and are never reopened.
type Report struct {
	shared.BaseAggregateRoot
	ReferenceNo string
	Category    Category
	Title       string
	Description string
	Status      Status
	ReportedBy  uuid.UUID
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
	Resolution  string
	ResolvedAt  *time.Time
}

// NewReport files a new compliance report
func NewReport(referenceNo string, category Category, title, description string, reportedBy uuid.UUID) (*Report, error) {
	referenceNo = strings.TrimSpace(referenceNo)
	title = strings.TrimSpace(title)
	if referenceNo == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Reference number cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Invalid compliance category: "+category.String())
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Report title cannot be empty")
	}
	if reportedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REPORTER", "Report must record who filed it")
	}

	r := &Report{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReferenceNo:       referenceNo,
		Category:          category,
		Title:             title,
		Description:       description,
		Status:            StatusOpen,
		ReportedBy:        reportedBy,
	}

	r.AddDomainEvent(NewReportFiledEvent(r))

	return r, nil
}

// UpdateDetails updates title and description while the report is open
func (r *Report) UpdateDetails(title, description string) error {
	if r.Status.IsTerminal() {
		return shared.ErrInvalidState
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Report title cannot be empty")
	}
	r.Title = title
	r.Description = description
	r.Touch()
	return nil
}

// SetDueDate sets the deadline for handling the report
func (r *Report) SetDueDate(dueDate time.Time) error {
	if r.Status.IsTerminal() {
		return shared.ErrInvalidState
	}
	r.DueDate = &dueDate
	r.Touch()
	return nil
}

// StartReview assigns a reviewer and moves the report into review
func (r *Report) StartReview(assigneeID uuid.UUID) error {
	if !r.Status.CanTransitionTo(StatusInReview) {
		return shared.NewDomainError("INVALID_TRANSITION", "Report cannot move from "+r.Status.String()+" to "+StatusInReview.String())
	}
	if assigneeID == uuid.Nil {
		return shared.NewDomainError("INVALID_ASSIGNEE", "Review must be assigned to an employee")
	}
	r.Status = StatusInReview
	r.AssigneeID = &assigneeID
	r.Touch()
	return nil
}

// Resolve closes the report with a resolution note
func (r *Report) Resolve(resolution string) error {
	if !r.Status.CanTransitionTo(StatusResolved) {
		return shared.NewDomainError("INVALID_TRANSITION", "Report cannot move from "+r.Status.String()+" to "+StatusResolved.String())
	}
	resolution = strings.TrimSpace(resolution)
	if resolution == "" {
		return shared.NewDomainError("INVALID_RESOLUTION", "Resolution note is required")
	}
	now := time.Now()
	r.Status = StatusResolved
	r.Resolution = resolution
	r.ResolvedAt = &now
	r.Touch()
	r.AddDomainEvent(NewReportClosedEvent(r))
	return nil
}

// Escalate closes the report as escalated to an external authority
func (r *Report) Escalate(reason string) error {
	if !r.Status.CanTransitionTo(StatusEscalated) {
		return shared.NewDomainError("INVALID_TRANSITION", "Report cannot move from "+r.Status.String()+" to "+StatusEscalated.String())
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewDomainError("INVALID_RESOLUTION", "Escalation reason is required")
	}
	now := time.Now()
	r.Status = StatusEscalated
	r.Resolution = reason
	r.ResolvedAt = &now
	r.Touch()
	r.AddDomainEvent(NewReportClosedEvent(r))
	return nil
}

// IsOverdue reports whether the report is still open past its due date
func (r *Report) IsOverdue(now time.Time) bool {
	if r.Status.IsTerminal() || r.DueDate == nil {
		return false
	}
	return now.After(*r.DueDate)
}
