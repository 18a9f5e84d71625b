package workforce

import (
	"fmt"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PerformanceRecord captures an employee's production metrics for one
// calendar month. One record exists per employee per period.
type PerformanceRecord struct {
	shared.BaseEntity
	EmployeeID       uuid.UUID
	Year             int
	Month            time.Month
	OrdersCompleted  int
	GarmentsProduced int
	HoursWorked      decimal.Decimal
	ReworkCount      int
	QualityScore     int
	Remarks          string
}

// NewPerformanceRecord creates a performance record for a period
func NewPerformanceRecord(employeeID uuid.UUID, year int, month time.Month) (*PerformanceRecord, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Performance record must reference an employee")
	}
	if year < 2000 || year > 2100 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Year is out of range")
	}
	if month < time.January || month > time.December {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Month must be between 1 and 12")
	}

	return &PerformanceRecord{
		BaseEntity: shared.NewBaseEntity(),
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
	}, nil
}

// Record updates the metrics for the period
func (p *PerformanceRecord) Record(ordersCompleted, garmentsProduced int, hoursWorked decimal.Decimal, reworkCount, qualityScore int) error {
	if ordersCompleted < 0 || garmentsProduced < 0 || reworkCount < 0 {
		return shared.NewDomainError("INVALID_METRICS", "Performance counts cannot be negative")
	}
	if qualityScore < 0 || qualityScore > 100 {
		return shared.NewDomainError("INVALID_METRICS", "Quality score must be between 0 and 100")
	}
	if hoursWorked.IsNegative() {
		return shared.NewDomainError("INVALID_METRICS", "Hours worked cannot be negative")
	}
	// A month has at most 744 hours.
	if hoursWorked.GreaterThan(decimal.NewFromInt(744)) {
		return shared.NewDomainError("INVALID_METRICS", "Hours worked exceeds the hours in a month")
	}

	p.OrdersCompleted = ordersCompleted
	p.GarmentsProduced = garmentsProduced
	p.HoursWorked = hoursWorked
	p.ReworkCount = reworkCount
	p.QualityScore = qualityScore
	p.Touch()
	return nil
}

// SetRemarks sets reviewer remarks on the record
func (p *PerformanceRecord) SetRemarks(remarks string) {
	p.Remarks = remarks
	p.Touch()
}

// Period returns the record's period formatted as YYYY-MM
func (p *PerformanceRecord) Period() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// GarmentsPerHour returns production throughput, zero when no hours were logged
func (p *PerformanceRecord) GarmentsPerHour() decimal.Decimal {
	if p.HoursWorked.IsZero() {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(p.GarmentsProduced)).Div(p.HoursWorked).Round(2)
}

// ReworkRate returns rework as a fraction of garments produced
func (p *PerformanceRecord) ReworkRate() decimal.Decimal {
	if p.GarmentsProduced == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(p.ReworkCount)).Div(decimal.NewFromInt(int64(p.GarmentsProduced))).Round(4)
}
