package export

// JobStatus represents the lifecycle state of an export job
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
	JobStatusCancelled JobStatus = "CANCELLED"
)

// IsValid checks if the status is valid
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusRunning, JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further transitions are allowed
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if transition to the target status is allowed.
// RUNNING back to PENDING is a retry after a transient failure.
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	switch s {
	case JobStatusPending:
		return target == JobStatusRunning || target == JobStatusCancelled
	case JobStatusRunning:
		return target == JobStatusCompleted || target == JobStatusFailed ||
			target == JobStatusCancelled || target == JobStatusPending
	default:
		return false
	}
}

// Format is the output document format of an export
type Format string

const (
	FormatCSV Format = "CSV"
	FormatPDF Format = "PDF"
)

// IsValid checks if the format is valid
func (f Format) IsValid() bool {
	return f == FormatCSV || f == FormatPDF
}

// String returns the string representation
func (f Format) String() string {
	return string(f)
}

// FileExtension returns the artifact file extension including the dot
func (f Format) FileExtension() string {
	switch f {
	case FormatPDF:
		return ".pdf"
	default:
		return ".csv"
	}
}

// Dataset identifies which records an export job extracts
type Dataset string

const (
	DatasetOrders            Dataset = "ORDERS"
	DatasetInvoices          Dataset = "INVOICES"
	DatasetPayments          Dataset = "PAYMENTS"
	DatasetFabrics           Dataset = "FABRICS"
	DatasetMovements         Dataset = "MOVEMENTS"
	DatasetEmployees         Dataset = "EMPLOYEES"
	DatasetPerformance       Dataset = "PERFORMANCE"
	DatasetComplianceReports Dataset = "COMPLIANCE_REPORTS"
)

// IsValid checks if the dataset is valid
func (d Dataset) IsValid() bool {
	switch d {
	case DatasetOrders, DatasetInvoices, DatasetPayments, DatasetFabrics,
		DatasetMovements, DatasetEmployees, DatasetPerformance, DatasetComplianceReports:
		return true
	}
	return false
}

// String returns the string representation
func (d Dataset) String() string {
	return string(d)
}
