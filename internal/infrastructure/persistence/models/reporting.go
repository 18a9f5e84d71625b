package models

import (
	"encoding/json"

	"github.com/atelier/backend/internal/domain/reporting"
	"github.com/google/uuid"
)

// DashboardModel is the persistence model for the Dashboard aggregate.
// The widget layout is stored as a JSON document.
type DashboardModel struct {
	AggregateModel
	Name        string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Layout      string    `gorm:"type:jsonb;not null;default:'[]'"`
	IsDefault   bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (DashboardModel) TableName() string {
	return "dashboards"
}

// ToDomain converts the persistence model to a domain Dashboard
func (m *DashboardModel) ToDomain() (*reporting.Dashboard, error) {
	layout, err := unmarshalLayout(m.Layout)
	if err != nil {
		return nil, err
	}
	d := &reporting.Dashboard{
		Name:        m.Name,
		Description: m.Description,
		OwnerID:     m.OwnerID,
		Layout:      layout,
		IsDefault:   m.IsDefault,
	}
	m.PopulateAggregateRoot(&d.BaseAggregateRoot)
	return d, nil
}

// FromDomain populates the persistence model from a domain Dashboard
func (m *DashboardModel) FromDomain(d *reporting.Dashboard) error {
	layout, err := marshalLayout(d.Layout)
	if err != nil {
		return err
	}
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.Name = d.Name
	m.Description = d.Description
	m.OwnerID = d.OwnerID
	m.Layout = layout
	m.IsDefault = d.IsDefault
	return nil
}

// ReportTemplateModel is the persistence model for the report Template aggregate.
type ReportTemplateModel struct {
	AggregateModel
	Name        string                `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description string                `gorm:"type:text"`
	CreatedBy   uuid.UUID             `gorm:"type:uuid;not null"`
	Layout      string                `gorm:"type:jsonb;not null;default:'[]'"`
	PaperSize   reporting.PaperSize   `gorm:"type:varchar(20);not null;default:'A4'"`
	Orientation reporting.Orientation `gorm:"type:varchar(20);not null;default:'PORTRAIT'"`
	Active      bool                  `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ReportTemplateModel) TableName() string {
	return "report_templates"
}

// ToDomain converts the persistence model to a domain Template
func (m *ReportTemplateModel) ToDomain() (*reporting.Template, error) {
	layout, err := unmarshalLayout(m.Layout)
	if err != nil {
		return nil, err
	}
	t := &reporting.Template{
		Name:        m.Name,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
		Layout:      layout,
		PaperSize:   m.PaperSize,
		Orientation: m.Orientation,
		Active:      m.Active,
	}
	m.PopulateAggregateRoot(&t.BaseAggregateRoot)
	return t, nil
}

// FromDomain populates the persistence model from a domain Template
func (m *ReportTemplateModel) FromDomain(t *reporting.Template) error {
	layout, err := marshalLayout(t.Layout)
	if err != nil {
		return err
	}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Name = t.Name
	m.Description = t.Description
	m.CreatedBy = t.CreatedBy
	m.Layout = layout
	m.PaperSize = t.PaperSize
	m.Orientation = t.Orientation
	m.Active = t.Active
	return nil
}

func marshalLayout(layout reporting.Layout) (string, error) {
	if layout == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(layout)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalLayout(raw string) (reporting.Layout, error) {
	if raw == "" {
		return reporting.Layout{}, nil
	}
	var layout reporting.Layout
	if err := json.Unmarshal([]byte(raw), &layout); err != nil {
		return nil, err
	}
	return layout, nil
}
