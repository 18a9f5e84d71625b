package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// Common allowed sort fields for entities with base fields
// These are the common fields present in most entities

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"order_number":  true,
	"customer_name": true,
	"status":        true,
	"total_amount":  true,
	"fitting_date":  true,
	"due_date":      true,
	"confirmed_at":  true,
	"completed_at":  true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"customer_name":  true,
	"status":         true,
	"total":          true,
	"paid_amount":    true,
	"issued_at":      true,
	"due_date":       true,
}

// FabricSortFields contains allowed sort fields for fabrics
var FabricSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"sku":           true,
	"name":          true,
	"color":         true,
	"composition":   true,
	"unit_cost":     true,
	"quantity_m":    true,
	"reorder_level": true,
}

// EmployeeSortFields contains allowed sort fields for employees
var EmployeeSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"email":         true,
	"full_name":     true,
	"role":          true,
	"status":        true,
	"hired_at":      true,
	"last_login_at": true,
}

// ComplianceReportSortFields contains allowed sort fields for compliance reports
var ComplianceReportSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"reference_no": true,
	"category":     true,
	"title":        true,
	"status":       true,
	"due_date":     true,
	"resolved_at":  true,
}

// DashboardSortFields contains allowed sort fields for dashboards
var DashboardSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"is_default": true,
}

// TemplateSortFields contains allowed sort fields for report templates
var TemplateSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"paper_size": true,
	"active":     true,
}

// ScheduleSortFields contains allowed sort fields for schedules
var ScheduleSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"kind":        true,
	"cadence":     true,
	"next_run_at": true,
	"last_run_at": true,
	"active":      true,
}

// EquipmentSortFields contains allowed sort fields for equipment
var EquipmentSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"name":             true,
	"serial_no":        true,
	"location":         true,
	"last_serviced_at": true,
	"active":           true,
}

// ExportJobSortFields contains allowed sort fields for export jobs
var ExportJobSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"dataset":      true,
	"format":       true,
	"status":       true,
	"attempts":     true,
	"started_at":   true,
	"completed_at": true,
}
