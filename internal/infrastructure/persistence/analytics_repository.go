package persistence

import (
	"context"
	"sort"
	"time"

	"github.com/atelier/backend/internal/domain/billing"
	"github.com/atelier/backend/internal/domain/compliance"
	"github.com/atelier/backend/internal/domain/order"
	"github.com/atelier/backend/internal/domain/reporting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormAnalyticsRepository implements reporting.AnalyticsRepository with
// aggregation queries over the write-side tables. Results feed dashboard
// widgets and rendered reports; nothing here mutates state.
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewGormAnalyticsRepository creates a new GormAnalyticsRepository
func NewGormAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// GetOrderSummary returns the current order book snapshot
func (r *GormAnalyticsRepository) GetOrderSummary(ctx context.Context) (*reporting.OrderSummary, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := r.db.WithContext(ctx).Table("orders").
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	summary := &reporting.OrderSummary{AsOf: time.Now()}
	for _, c := range counts {
		summary.TotalOrders += c.Count
		switch order.Status(c.Status) {
		case order.StatusDraft:
			summary.DraftCount = c.Count
		case order.StatusConfirmed:
			summary.ConfirmedCount = c.Count
		case order.StatusInProgress:
			summary.InProgressCount = c.Count
		case order.StatusFitting:
			summary.FittingCount = c.Count
		case order.StatusCompleted:
			summary.CompletedCount = c.Count
		case order.StatusCancelled:
			summary.CancelledCount = c.Count
		}
	}

	var openValue decimal.NullDecimal
	if err := r.db.WithContext(ctx).Table("orders").
		Select("SUM(total_amount)").
		Where("status IN ?", []order.Status{
			order.StatusConfirmed, order.StatusInProgress, order.StatusFitting,
		}).
		Scan(&openValue).Error; err != nil {
		return nil, err
	}
	if openValue.Valid {
		summary.OpenOrderValue = openValue.Decimal
	} else {
		summary.OpenOrderValue = decimal.Zero
	}

	return summary, nil
}

// GetRevenueTrend returns daily invoiced vs collected revenue over the period
func (r *GormAnalyticsRepository) GetRevenueTrend(ctx context.Context, filter reporting.AnalyticsFilter) ([]reporting.RevenueTrendPoint, error) {
	type dayAmount struct {
		Day    time.Time
		Amount decimal.Decimal
	}

	var invoiced []dayAmount
	if err := r.db.WithContext(ctx).Table("invoices").
		Select("DATE(issued_at) as day, COALESCE(SUM(total), 0) as amount").
		Where("issued_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("status <> ?", billing.InvoiceStatusVoid).
		Group("DATE(issued_at)").
		Scan(&invoiced).Error; err != nil {
		return nil, err
	}

	var collected []dayAmount
	if err := r.db.WithContext(ctx).Table("payments").
		Select("DATE(received_at) as day, COALESCE(SUM(amount), 0) as amount").
		Where("received_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Group("DATE(received_at)").
		Scan(&collected).Error; err != nil {
		return nil, err
	}

	byDay := make(map[string]*reporting.RevenueTrendPoint)
	dayKey := func(t time.Time) string { return t.Format("2006-01-02") }
	pointFor := func(day time.Time) *reporting.RevenueTrendPoint {
		key := dayKey(day)
		if p, ok := byDay[key]; ok {
			return p
		}
		p := &reporting.RevenueTrendPoint{Date: day, Invoiced: decimal.Zero, Collected: decimal.Zero}
		byDay[key] = p
		return p
	}
	for _, row := range invoiced {
		pointFor(row.Day).Invoiced = row.Amount
	}
	for _, row := range collected {
		pointFor(row.Day).Collected = row.Amount
	}

	points := make([]reporting.RevenueTrendPoint, 0, len(byDay))
	for _, p := range byDay {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}

// GetOutstandingInvoices returns unpaid invoices, most overdue first
func (r *GormAnalyticsRepository) GetOutstandingInvoices(ctx context.Context, filter reporting.AnalyticsFilter) ([]reporting.OutstandingInvoiceRow, error) {
	type outstandingRow struct {
		InvoiceID     uuid.UUID
		InvoiceNumber string
		CustomerName  string
		DueDate       time.Time
		Outstanding   decimal.Decimal
	}

	query := r.db.WithContext(ctx).Table("invoices").
		Select(`
			id as invoice_id,
			invoice_number,
			customer_name,
			due_date,
			(total - paid_amount) as outstanding
		`).
		Where("status IN ?", []billing.InvoiceStatus{billing.InvoiceStatusIssued, billing.InvoiceStatusPartiallyPaid}).
		Order("due_date ASC")
	if filter.TopN > 0 {
		query = query.Limit(filter.TopN)
	}

	var rows []outstandingRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]reporting.OutstandingInvoiceRow, len(rows))
	for i, row := range rows {
		daysOverdue := 0
		if row.DueDate.Before(now) {
			daysOverdue = int(now.Sub(row.DueDate).Hours() / 24)
		}
		result[i] = reporting.OutstandingInvoiceRow{
			InvoiceID:     row.InvoiceID,
			InvoiceNumber: row.InvoiceNumber,
			CustomerName:  row.CustomerName,
			DueDate:       row.DueDate,
			Outstanding:   row.Outstanding,
			DaysOverdue:   daysOverdue,
			AgingBucket:   reporting.AgingBucketFor(daysOverdue),
		}
	}
	return result, nil
}

// GetFabricConsumption returns meters issued per fabric over the period
func (r *GormAnalyticsRepository) GetFabricConsumption(ctx context.Context, filter reporting.AnalyticsFilter) ([]reporting.FabricConsumptionRow, error) {
	query := r.db.WithContext(ctx).Table("fabric_movements fm").
		Select(`
			f.id as fabric_id,
			f.sku,
			f.name,
			COALESCE(SUM(fm.quantity_m), 0) as meters_issued,
			f.quantity_m as meters_on_hand,
			COALESCE(SUM(fm.quantity_m * f.unit_cost), 0) as consumed_value
		`).
		Joins("JOIN fabrics f ON f.id = fm.fabric_id").
		Where("fm.type = ?", "ISSUE").
		Where("fm.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Group("f.id, f.sku, f.name, f.quantity_m").
		Order("meters_issued DESC")
	if filter.FabricID != nil {
		query = query.Where("f.id = ?", *filter.FabricID)
	}
	if filter.TopN > 0 {
		query = query.Limit(filter.TopN)
	}

	var rows []reporting.FabricConsumptionRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetEmployeeProductivity returns per-employee output over the period
func (r *GormAnalyticsRepository) GetEmployeeProductivity(ctx context.Context, filter reporting.AnalyticsFilter) ([]reporting.EmployeeProductivityRow, error) {
	query := r.db.WithContext(ctx).Table("performance_records pr").
		Select(`
			e.id as employee_id,
			e.full_name,
			e.role,
			COALESCE(SUM(pr.orders_completed), 0) as orders_completed,
			COALESCE(SUM(pr.garments_produced), 0) as garments_produced,
			COALESCE(SUM(pr.hours_worked), 0) as hours_worked,
			COALESCE(SUM(pr.rework_count), 0) as rework_count,
			COALESCE(ROUND(AVG(pr.quality_score), 1), 0) as avg_quality_score
		`).
		Joins("JOIN employees e ON e.id = pr.employee_id").
		Where("(pr.year * 100 + pr.month) >= ?", filter.StartDate.Year()*100+int(filter.StartDate.Month())).
		Where("(pr.year * 100 + pr.month) <= ?", filter.EndDate.Year()*100+int(filter.EndDate.Month())).
		Group("e.id, e.full_name, e.role").
		Order("garments_produced DESC")
	if filter.EmployeeID != nil {
		query = query.Where("e.id = ?", *filter.EmployeeID)
	}
	if filter.TopN > 0 {
		query = query.Limit(filter.TopN)
	}

	var rows []reporting.EmployeeProductivityRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetComplianceOpenItems returns open report counts per category
func (r *GormAnalyticsRepository) GetComplianceOpenItems(ctx context.Context) ([]reporting.ComplianceOpenItemsRow, error) {
	now := time.Now()
	var rows []reporting.ComplianceOpenItemsRow
	if err := r.db.WithContext(ctx).Table("compliance_reports").
		Select(`
			category,
			COUNT(*) FILTER (WHERE status = ?) as open_count,
			COUNT(*) FILTER (WHERE status = ?) as in_review,
			COUNT(*) FILTER (WHERE due_date < ?) as overdue_count
		`, compliance.StatusOpen, compliance.StatusInReview, now).
		Where("status <> ?", compliance.StatusResolved).
		Group("category").
		Order("category ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
