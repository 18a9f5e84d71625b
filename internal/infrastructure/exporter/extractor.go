package exporter

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/atelier/backend/internal/domain/billing"
	"github.com/atelier/backend/internal/domain/compliance"
	"github.com/atelier/backend/internal/domain/export"
	"github.com/atelier/backend/internal/domain/inventory"
	"github.com/atelier/backend/internal/domain/order"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/workforce"
)

// extractPageSize is how many parent records one repository page holds
// while walking a dataset.
const extractPageSize = 500

// Table is the tabular form of an extracted dataset, ready for CSV
// encoding or PDF rendering.
type Table struct {
	Columns []string
	Rows    [][]string
}

// DatasetExtractor pulls the records an export job covers out of the
// domain repositories and flattens them into a Table. Jobs with a period
// keep only records whose business timestamp falls inside it.
type DatasetExtractor struct {
	orders      order.Repository
	invoices    billing.InvoiceRepository
	payments    billing.PaymentRepository
	fabrics     inventory.FabricRepository
	movements   inventory.MovementRepository
	employees   workforce.EmployeeRepository
	performance workforce.PerformanceRepository
	compliance  compliance.Repository
}

// NewDatasetExtractor creates a dataset extractor over the domain repositories
func NewDatasetExtractor(
	orders order.Repository,
	invoices billing.InvoiceRepository,
	payments billing.PaymentRepository,
	fabrics inventory.FabricRepository,
	movements inventory.MovementRepository,
	employees workforce.EmployeeRepository,
	performance workforce.PerformanceRepository,
	complianceReports compliance.Repository,
) *DatasetExtractor {
	return &DatasetExtractor{
		orders:      orders,
		invoices:    invoices,
		payments:    payments,
		fabrics:     fabrics,
		movements:   movements,
		employees:   employees,
		performance: performance,
		compliance:  complianceReports,
	}
}

// Extract builds the table for the job's dataset
func (e *DatasetExtractor) Extract(ctx context.Context, job *export.Job) (*Table, error) {
	switch job.Dataset {
	case export.DatasetOrders:
		return e.extractOrders(ctx, job)
	case export.DatasetInvoices:
		return e.extractInvoices(ctx, job)
	case export.DatasetPayments:
		return e.extractPayments(ctx, job)
	case export.DatasetFabrics:
		return e.extractFabrics(ctx, job)
	case export.DatasetMovements:
		return e.extractMovements(ctx, job)
	case export.DatasetEmployees:
		return e.extractEmployees(ctx, job)
	case export.DatasetPerformance:
		return e.extractPerformance(ctx, job)
	case export.DatasetComplianceReports:
		return e.extractComplianceReports(ctx, job)
	default:
		return nil, shared.NewDomainError("INVALID_DATASET", "Unknown export dataset: "+job.Dataset.String())
	}
}

func (e *DatasetExtractor) extractOrders(ctx context.Context, job *export.Job) (*Table, error) {
	t := &Table{Columns: []string{
		"order_number", "customer_name", "customer_email", "customer_phone",
		"status", "total_amount", "assigned_tailor_id", "fitting_date",
		"due_date", "created_at",
	}}

	for page := 1; ; page++ {
		orders, err := e.orders.FindAll(ctx, extractFilter(page))
		if err != nil {
			return nil, err
		}
		for i := range orders {
			o := &orders[i]
			if !withinPeriod(job, o.CreatedAt) {
				continue
			}
			t.Rows = append(t.Rows, []string{
				o.OrderNumber,
				o.CustomerName,
				o.CustomerEmail,
				o.CustomerPhone,
				string(o.Status),
				o.TotalAmount.StringFixed(2),
				formatUUIDPtr(o.AssignedTailorID),
				formatTimePtr(o.FittingDate),
				formatTimePtr(o.DueDate),
				formatTime(o.CreatedAt),
			})
		}
		if len(orders) < extractPageSize {
			return t, nil
		}
	}
}

func (e *DatasetExtractor) extractInvoices(ctx context.Context, job *export.Job) (*Table, error) {
	t := &Table{Columns: []string{
		"invoice_number", "order_id", "customer_name", "status",
		"subtotal", "tax_rate", "tax_amount", "total", "paid_amount",
		"issued_at", "due_date",
	}}

	for page := 1; ; page++ {
		invoices, err := e.invoices.FindAll(ctx, extractFilter(page))
		if err != nil {
			return nil, err
		}
		for i := range invoices {
			inv := &invoices[i]
			if !withinPeriod(job, invoiceTimestamp(inv)) {
				continue
			}
			t.Rows = append(t.Rows, []string{
				inv.InvoiceNumber,
				inv.OrderID.String(),
				inv.CustomerName,
				string(inv.Status),
				inv.Subtotal.StringFixed(2),
				inv.TaxRate.String(),
				inv.TaxAmount.StringFixed(2),
				inv.Total.StringFixed(2),
				inv.PaidAmount.StringFixed(2),
				formatTimePtr(inv.IssuedAt),
				formatTimePtr(inv.DueDate),
			})
		}
		if len(invoices) < extractPageSize {
			return t, nil
		}
	}
}

// extractPayments walks invoices and collects the payments recorded
// against each. Payments carry no top-level listing of their own.
func (e *DatasetExtractor) extractPayments(ctx context.Context, job *export.Job) (*Table, error) {
	t := &Table{Columns: []string{
		"invoice_number", "amount", "method", "reference",
		"received_at", "received_by",
	}}

	for page := 1; ; page++ {
		invoices, err := e.invoices.FindAll(ctx, extractFilter(page))
		if err != nil {
			return nil, err
		}
		for i := range invoices {
			inv := &invoices[i]
			payments, err := e.payments.FindByInvoice(ctx, inv.GetID())
			if err != nil {
				return nil, err
			}
			for j := range payments {
				p := &payments[j]
				if !withinPeriod(job, p.ReceivedAt) {
					continue
				}
				t.Rows = append(t.Rows, []string{
					inv.InvoiceNumber,
					p.Amount.StringFixed(2),
					string(p.Method),
					p.Reference,
					formatTime(p.ReceivedAt),
					formatUUIDPtr(p.ReceivedBy),
				})
			}
		}
		if len(invoices) < extractPageSize {
			return t, nil
		}
	}
}

func (e *DatasetExtractor) extractFabrics(ctx context.Context, job *export.Job) (*Table, error) {
	t := &Table{Columns: []string{
		"sku", "name", "composition", "color", "width_cm",
		"unit_cost", "currency", "quantity_m", "reorder_level",
		"supplier_name", "location", "active",
	}}

	for page := 1; ; page++ {
		fabrics, err := e.fabrics.FindAll(ctx, extractFilter(page))
		if err != nil {
			return nil, err
		}
		for i := range fabrics {
			f := &fabrics[i]
			if !withinPeriod(job, f.CreatedAt) {
				continue
			}
			t.Rows = append(t.Rows, []string{
				f.SKU,
				f.Name,
				f.Composition,
				f.Color,
				f.WidthCM.String(),
				f.UnitCost.Amount().StringFixed(2),
				string(f.UnitCost.Currency()),
				f.QuantityM.String(),
				f.ReorderLevel.String(),
				f.SupplierName,
				f.Location,
				strconv.FormatBool(f.Active),
			})
		}
		if len(fabrics) < extractPageSize {
			return t, nil
		}
	}
}

// extractMovements walks fabrics and collects each fabric's stock
// movement history.
func (e *DatasetExtractor) extractMovements(ctx context.Context, job *export.Job) (*Table, error) {
	t := &Table{Columns: []string{
		"fabric_sku", "type", "quantity_m", "reference", "notes",
		"recorded_by", "recorded_at",
	}}

	for page := 1; ; page++ {
		fabrics, err := e.fabrics.FindAll(ctx, extractFilter(page))
		if err != nil {
			return nil, err
		}
		for i := range fabrics {
			f := &fabrics[i]
			for inner := 1; ; inner++ {
				movements, err := e.movements.FindByFabric(ctx, f.GetID(), extractFilter(inner))
				if err != nil {
					return nil, err
				}
				for j := range movements {
					m := &movements[j]
					if !withinPeriod(job, m.CreatedAt) {
						continue
					}
					t.Rows = append(t.Rows, []string{
						f.SKU,
						string(m.Type),
						m.QuantityM.String(),
						m.Reference,
						m.Notes,
						m.RecordedBy.String(),
						formatTime(m.CreatedAt),
					})
				}
				if len(movements) < extractPageSize {
					break
				}
			}
		}
		if len(fabrics) < extractPageSize {
			return t, nil
		}
	}
}

func (e *DatasetExtractor) extractEmployees(ctx context.Context, job *export.Job) (*Table, error) {
	t := &Table{Columns: []string{
		"username", "full_name", "email", "phone", "role", "status",
		"hourly_rate", "hired_at",
	}}

	for page := 1; ; page++ {
		employees, err := e.employees.FindAll(ctx, extractFilter(page))
		if err != nil {
			return nil, err
		}
		for i := range employees {
			emp := &employees[i]
			if !withinPeriod(job, emp.HiredAt) {
				continue
			}
			t.Rows = append(t.Rows, []string{
				emp.Username,
				emp.FullName,
				emp.Email,
				emp.Phone,
				string(emp.Role),
				string(emp.Status),
				emp.HourlyRate.Amount().StringFixed(2),
				formatTime(emp.HiredAt),
			})
		}
		if len(employees) < extractPageSize {
			return t, nil
		}
	}
}

// extractPerformance walks employees and collects their monthly
// performance records. A record belongs to the period when the first day
// of its month does.
func (e *DatasetExtractor) extractPerformance(ctx context.Context, job *export.Job) (*Table, error) {
	t := &Table{Columns: []string{
		"username", "full_name", "year", "month", "orders_completed",
		"garments_produced", "hours_worked", "rework_count", "quality_score",
	}}

	for page := 1; ; page++ {
		employees, err := e.employees.FindAll(ctx, extractFilter(page))
		if err != nil {
			return nil, err
		}
		for i := range employees {
			emp := &employees[i]
			for inner := 1; ; inner++ {
				records, err := e.performance.FindByEmployee(ctx, emp.GetID(), extractFilter(inner))
				if err != nil {
					return nil, err
				}
				for j := range records {
					r := &records[j]
					periodStart := time.Date(r.Year, r.Month, 1, 0, 0, 0, 0, time.UTC)
					if !withinPeriod(job, periodStart) {
						continue
					}
					t.Rows = append(t.Rows, []string{
						emp.Username,
						emp.FullName,
						strconv.Itoa(r.Year),
						strconv.Itoa(int(r.Month)),
						strconv.Itoa(r.OrdersCompleted),
						strconv.Itoa(r.GarmentsProduced),
						r.HoursWorked.String(),
						strconv.Itoa(r.ReworkCount),
						strconv.Itoa(r.QualityScore),
					})
				}
				if len(records) < extractPageSize {
					break
				}
			}
		}
		if len(employees) < extractPageSize {
			return t, nil
		}
	}
}

func (e *DatasetExtractor) extractComplianceReports(ctx context.Context, job *export.Job) (*Table, error) {
	t := &Table{Columns: []string{
		"reference_no", "category", "title", "status", "reported_by",
		"assignee_id", "due_date", "resolved_at", "created_at",
	}}

	for page := 1; ; page++ {
		reports, err := e.compliance.FindAll(ctx, extractFilter(page))
		if err != nil {
			return nil, err
		}
		for i := range reports {
			r := &reports[i]
			if !withinPeriod(job, r.CreatedAt) {
				continue
			}
			t.Rows = append(t.Rows, []string{
				r.ReferenceNo,
				string(r.Category),
				r.Title,
				string(r.Status),
				r.ReportedBy.String(),
				formatUUIDPtr(r.AssigneeID),
				formatTimePtr(r.DueDate),
				formatTimePtr(r.ResolvedAt),
				formatTime(r.CreatedAt),
			})
		}
		if len(reports) < extractPageSize {
			return t, nil
		}
	}
}

// invoiceTimestamp is the business timestamp for period filtering: the
// issue date once the invoice has one, otherwise its creation time.
func invoiceTimestamp(inv *billing.Invoice) time.Time {
	if inv.IssuedAt != nil {
		return *inv.IssuedAt
	}
	return inv.CreatedAt
}

func extractFilter(page int) shared.Filter {
	return shared.Filter{
		Page:     page,
		PageSize: extractPageSize,
		OrderBy:  "created_at",
		OrderDir: "asc",
		Filters:  map[string]interface{}{},
	}
}

func withinPeriod(job *export.Job, ts time.Time) bool {
	if job.PeriodStart != nil && ts.Before(*job.PeriodStart) {
		return false
	}
	if job.PeriodEnd != nil && ts.After(*job.PeriodEnd) {
		return false
	}
	return true
}

func formatTime(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339)
}

func formatTimePtr(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return formatTime(*ts)
}

func formatUUIDPtr(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
