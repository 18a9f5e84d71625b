package models

import (
	"encoding/json"
	"time"

	"github.com/atelier/backend/internal/domain/scheduling"
	"github.com/google/uuid"
)

// ScheduleModel is the persistence model for the Schedule aggregate.
type ScheduleModel struct {
	AggregateModel
	Name        string              `gorm:"type:varchar(200);not null"`
	Kind        scheduling.Kind     `gorm:"type:varchar(20);not null;index"`
	Cadence     scheduling.Cadence  `gorm:"type:varchar(20);not null"`
	AnchorDay   int                 `gorm:"not null;default:1"`
	NextRunAt   time.Time           `gorm:"not null;index"`
	LastRunAt   *time.Time
	TemplateID  *uuid.UUID `gorm:"type:uuid;index"`
	EquipmentID *uuid.UUID `gorm:"type:uuid;index"`
	Recipients  string     `gorm:"type:jsonb;not null;default:'[]'"`
	Active      bool       `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ScheduleModel) TableName() string {
	return "schedules"
}

// ToDomain converts the persistence model to a domain Schedule
func (m *ScheduleModel) ToDomain() (*scheduling.Schedule, error) {
	var recipients []string
	if m.Recipients != "" {
		if err := json.Unmarshal([]byte(m.Recipients), &recipients); err != nil {
			return nil, err
		}
	}
	s := &scheduling.Schedule{
		Name:        m.Name,
		Kind:        m.Kind,
		Cadence:     m.Cadence,
		AnchorDay:   m.AnchorDay,
		NextRunAt:   m.NextRunAt,
		LastRunAt:   m.LastRunAt,
		TemplateID:  m.TemplateID,
		EquipmentID: m.EquipmentID,
		Recipients:  recipients,
		Active:      m.Active,
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)
	return s, nil
}

// FromDomain populates the persistence model from a domain Schedule
func (m *ScheduleModel) FromDomain(s *scheduling.Schedule) error {
	recipients := s.Recipients
	if recipients == nil {
		recipients = []string{}
	}
	raw, err := json.Marshal(recipients)
	if err != nil {
		return err
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Name = s.Name
	m.Kind = s.Kind
	m.Cadence = s.Cadence
	m.AnchorDay = s.AnchorDay
	m.NextRunAt = s.NextRunAt
	m.LastRunAt = s.LastRunAt
	m.TemplateID = s.TemplateID
	m.EquipmentID = s.EquipmentID
	m.Recipients = string(raw)
	m.Active = s.Active
	return nil
}

// EquipmentModel is the persistence model for the Equipment aggregate.
type EquipmentModel struct {
	AggregateModel
	Name           string `gorm:"type:varchar(200);not null"`
	SerialNo       string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Location       string `gorm:"type:varchar(200)"`
	PurchasedAt    *time.Time
	LastServicedAt *time.Time
	Active         bool `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (EquipmentModel) TableName() string {
	return "equipment"
}

// ToDomain converts the persistence model to domain Equipment
func (m *EquipmentModel) ToDomain() *scheduling.Equipment {
	e := &scheduling.Equipment{
		Name:           m.Name,
		SerialNo:       m.SerialNo,
		Location:       m.Location,
		PurchasedAt:    m.PurchasedAt,
		LastServicedAt: m.LastServicedAt,
		Active:         m.Active,
	}
	m.PopulateAggregateRoot(&e.BaseAggregateRoot)
	return e
}

// FromDomain populates the persistence model from domain Equipment
func (m *EquipmentModel) FromDomain(e *scheduling.Equipment) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.Name = e.Name
	m.SerialNo = e.SerialNo
	m.Location = e.Location
	m.PurchasedAt = e.PurchasedAt
	m.LastServicedAt = e.LastServicedAt
	m.Active = e.Active
}

// MaintenanceTicketModel is the persistence model for a maintenance ticket.
type MaintenanceTicketModel struct {
	BaseModel
	ScheduleID  uuid.UUID               `gorm:"type:uuid;not null;index"`
	EquipmentID uuid.UUID               `gorm:"type:uuid;not null;index"`
	DueAt       time.Time               `gorm:"not null;index"`
	Status      scheduling.TicketStatus `gorm:"type:varchar(20);not null;default:'OPEN';index"`
	CompletedAt *time.Time
	CompletedBy *uuid.UUID `gorm:"type:uuid"`
	Notes       string     `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (MaintenanceTicketModel) TableName() string {
	return "maintenance_tickets"
}

// ToDomain converts the persistence model to a domain Ticket
func (m *MaintenanceTicketModel) ToDomain() *scheduling.Ticket {
	return &scheduling.Ticket{
		BaseEntity:  m.BaseModel.ToDomain(),
		ScheduleID:  m.ScheduleID,
		EquipmentID: m.EquipmentID,
		DueAt:       m.DueAt,
		Status:      m.Status,
		CompletedAt: m.CompletedAt,
		CompletedBy: m.CompletedBy,
		Notes:       m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Ticket
func (m *MaintenanceTicketModel) FromDomain(t *scheduling.Ticket) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.ScheduleID = t.ScheduleID
	m.EquipmentID = t.EquipmentID
	m.DueAt = t.DueAt
	m.Status = t.Status
	m.CompletedAt = t.CompletedAt
	m.CompletedBy = t.CompletedBy
	m.Notes = t.Notes
}
