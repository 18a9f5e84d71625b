package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models for the analytics queries backing dashboard widgets.
// These are CQRS read models optimized for querying, not aggregates.

// OrderSummary is a snapshot of the order book
type OrderSummary struct {
	AsOf            time.Time       `json:"as_of"`
	TotalOrders     int64           `json:"total_orders"`
	DraftCount      int64           `json:"draft_count"`
	ConfirmedCount  int64           `json:"confirmed_count"`
	InProgressCount int64           `json:"in_progress_count"`
	FittingCount    int64           `json:"fitting_count"`
	CompletedCount  int64           `json:"completed_count"`
	CancelledCount  int64           `json:"cancelled_count"`
	OpenOrderValue  decimal.Decimal `json:"open_order_value"`
}

// RevenueTrendPoint is one day of invoiced and collected revenue
type RevenueTrendPoint struct {
	Date      time.Time       `json:"date"`
	Invoiced  decimal.Decimal `json:"invoiced"`
	Collected decimal.Decimal `json:"collected"`
}

// AgingBucket groups outstanding invoices by how far past due they are
type AgingBucket string

const (
	AgingCurrent   AgingBucket = "CURRENT"
	AgingDays30    AgingBucket = "1-30"
	AgingDays60    AgingBucket = "31-60"
	AgingDays90    AgingBucket = "61-90"
	AgingDays90Pls AgingBucket = "90+"
)

// AgingBucketFor classifies days overdue into the standard receivables buckets
func AgingBucketFor(daysOverdue int) AgingBucket {
	switch {
	case daysOverdue <= 0:
		return AgingCurrent
	case daysOverdue <= 30:
		return AgingDays30
	case daysOverdue <= 60:
		return AgingDays60
	case daysOverdue <= 90:
		return AgingDays90
	default:
		return AgingDays90Pls
	}
}

// OutstandingInvoiceRow is one unpaid invoice in the receivables view
type OutstandingInvoiceRow struct {
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	DueDate       time.Time       `json:"due_date"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	DaysOverdue   int             `json:"days_overdue"`
	AgingBucket   AgingBucket     `json:"aging_bucket"`
}

// FabricConsumptionRow aggregates meters issued per fabric over a period
type FabricConsumptionRow struct {
	FabricID      uuid.UUID       `json:"fabric_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	MetersIssued  decimal.Decimal `json:"meters_issued"`
	MetersOnHand  decimal.Decimal `json:"meters_on_hand"`
	ConsumedValue decimal.Decimal `json:"consumed_value"`
}

// EmployeeProductivityRow aggregates one employee's output over a period
type EmployeeProductivityRow struct {
	EmployeeID       uuid.UUID       `json:"employee_id"`
	FullName         string          `json:"full_name"`
	Role             string          `json:"role"`
	OrdersCompleted  int64           `json:"orders_completed"`
	GarmentsProduced int64           `json:"garments_produced"`
	HoursWorked      decimal.Decimal `json:"hours_worked"`
	ReworkCount      int64           `json:"rework_count"`
	AvgQualityScore  decimal.Decimal `json:"avg_quality_score"`
}

// ComplianceOpenItemsRow counts open reports per category
type ComplianceOpenItemsRow struct {
	Category     string `json:"category"`
	OpenCount    int64  `json:"open_count"`
	InReview     int64  `json:"in_review"`
	OverdueCount int64  `json:"overdue_count"`
}

// AnalyticsFilter bounds an analytics query to a period
type AnalyticsFilter struct {
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	EmployeeID *uuid.UUID `json:"employee_id,omitempty"`
	FabricID   *uuid.UUID `json:"fabric_id,omitempty"`
	TopN       int        `json:"top_n,omitempty"`
}

// AnalyticsRepository is the read side backing dashboard widgets and
// rendered reports. Implementations query projections with raw SQL.
type AnalyticsRepository interface {
	// GetOrderSummary returns the current order book snapshot
	GetOrderSummary(ctx context.Context) (*OrderSummary, error)

	// GetRevenueTrend returns daily invoiced vs collected revenue
	GetRevenueTrend(ctx context.Context, filter AnalyticsFilter) ([]RevenueTrendPoint, error)

	// GetOutstandingInvoices returns unpaid invoices, most overdue first
	GetOutstandingInvoices(ctx context.Context, filter AnalyticsFilter) ([]OutstandingInvoiceRow, error)

	// GetFabricConsumption returns meters issued per fabric over the period
	GetFabricConsumption(ctx context.Context, filter AnalyticsFilter) ([]FabricConsumptionRow, error)

	// GetEmployeeProductivity returns per-employee output over the period
	GetEmployeeProductivity(ctx context.Context, filter AnalyticsFilter) ([]EmployeeProductivityRow, error)

	// GetComplianceOpenItems returns open report counts per category
	GetComplianceOpenItems(ctx context.Context) ([]ComplianceOpenItemsRow, error)
}
