package models

import (
	"time"

	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/atelier/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeModel is the persistence model for the Employee aggregate.
type EmployeeModel struct {
	AggregateModel
	Username       string                   `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email          string                   `gorm:"type:varchar(200);index"`
	Phone          string                   `gorm:"type:varchar(50)"`
	PasswordHash   string                   `gorm:"type:varchar(255);not null"`
	FullName       string                   `gorm:"type:varchar(200);not null"`
	Role           workforce.Role           `gorm:"type:varchar(20);not null;index"`
	Status         workforce.EmployeeStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	HourlyRate     decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	HiredAt        time.Time                `gorm:"not null"`
	LastLoginAt    *time.Time
	FailedAttempts int `gorm:"not null;default:0"`
	LockedUntil    *time.Time
	Notes          string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee
func (m *EmployeeModel) ToDomain() *workforce.Employee {
	e := &workforce.Employee{
		Username:       m.Username,
		Email:          m.Email,
		Phone:          m.Phone,
		PasswordHash:   m.PasswordHash,
		FullName:       m.FullName,
		Role:           m.Role,
		Status:         m.Status,
		HourlyRate:     valueobject.NewMoneyUSD(m.HourlyRate),
		HiredAt:        m.HiredAt,
		LastLoginAt:    m.LastLoginAt,
		FailedAttempts: m.FailedAttempts,
		LockedUntil:    m.LockedUntil,
		Notes:          m.Notes,
	}
	m.PopulateAggregateRoot(&e.BaseAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain Employee
func (m *EmployeeModel) FromDomain(e *workforce.Employee) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.Username = e.Username
	m.Email = e.Email
	m.Phone = e.Phone
	m.PasswordHash = e.PasswordHash
	m.FullName = e.FullName
	m.Role = e.Role
	m.Status = e.Status
	m.HourlyRate = e.HourlyRate.Amount()
	m.HiredAt = e.HiredAt
	m.LastLoginAt = e.LastLoginAt
	m.FailedAttempts = e.FailedAttempts
	m.LockedUntil = e.LockedUntil
	m.Notes = e.Notes
}

// PerformanceRecordModel is the persistence model for a monthly performance record.
type PerformanceRecordModel struct {
	BaseModel
	EmployeeID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_performance_employee_period,priority:1"`
	Year             int             `gorm:"not null;uniqueIndex:idx_performance_employee_period,priority:2"`
	Month            int             `gorm:"not null;uniqueIndex:idx_performance_employee_period,priority:3"`
	OrdersCompleted  int             `gorm:"not null;default:0"`
	GarmentsProduced int             `gorm:"not null;default:0"`
	HoursWorked      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ReworkCount      int             `gorm:"not null;default:0"`
	QualityScore     int             `gorm:"not null;default:0"`
	Remarks          string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PerformanceRecordModel) TableName() string {
	return "performance_records"
}

// ToDomain converts the persistence model to a domain PerformanceRecord
func (m *PerformanceRecordModel) ToDomain() *workforce.PerformanceRecord {
	return &workforce.PerformanceRecord{
		BaseEntity:       m.BaseModel.ToDomain(),
		EmployeeID:       m.EmployeeID,
		Year:             m.Year,
		Month:            time.Month(m.Month),
		OrdersCompleted:  m.OrdersCompleted,
		GarmentsProduced: m.GarmentsProduced,
		HoursWorked:      m.HoursWorked,
		ReworkCount:      m.ReworkCount,
		QualityScore:     m.QualityScore,
		Remarks:          m.Remarks,
	}
}

// FromDomain populates the persistence model from a domain PerformanceRecord
func (m *PerformanceRecordModel) FromDomain(p *workforce.PerformanceRecord) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.EmployeeID = p.EmployeeID
	m.Year = p.Year
	m.Month = int(p.Month)
	m.OrdersCompleted = p.OrdersCompleted
	m.GarmentsProduced = p.GarmentsProduced
	m.HoursWorked = p.HoursWorked
	m.ReworkCount = p.ReworkCount
	m.QualityScore = p.QualityScore
	m.Remarks = p.Remarks
}
