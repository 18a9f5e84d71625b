package workforce

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atelier/backend/internal/domain/workforce"
)

// CreateEmployeeRequest represents a request to hire an employee
type CreateEmployeeRequest struct {
	Username   string          `json:"username" binding:"required,min=3,max=100"`
	Password   string          `json:"password" binding:"required,min=8,max=128"`
	FullName   string          `json:"full_name" binding:"required,max=200"`
	Email      string          `json:"email" binding:"omitempty,email"`
	Phone      string          `json:"phone" binding:"max=50"`
	Role       workforce.Role  `json:"role" binding:"required"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	HiredAt    *time.Time      `json:"hired_at"`
}

// UpdateEmployeeRequest represents a request to update employee details
type UpdateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required,max=200"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"max=50"`
	Notes    string `json:"notes" binding:"max=1000"`
}

// ChangeRoleRequest represents a request to change an employee's role
type ChangeRoleRequest struct {
	Role workforce.Role `json:"role" binding:"required"`
}

// SetHourlyRateRequest represents a request to change the pay rate
type SetHourlyRateRequest struct {
	HourlyRate decimal.Decimal `json:"hourly_rate" binding:"required"`
}

// ChangePasswordRequest represents a self-service password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// ResetPasswordRequest represents an administrative password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// RecordPerformanceRequest upserts an employee's metrics for a month
type RecordPerformanceRequest struct {
	Year             int             `json:"year" binding:"required,min=2000,max=2100"`
	Month            int             `json:"month" binding:"required,min=1,max=12"`
	OrdersCompleted  int             `json:"orders_completed" binding:"min=0"`
	GarmentsProduced int             `json:"garments_produced" binding:"min=0"`
	HoursWorked      decimal.Decimal `json:"hours_worked"`
	ReworkCount      int             `json:"rework_count" binding:"min=0"`
	QualityScore     int             `json:"quality_score" binding:"min=0,max=100"`
	Remarks          string          `json:"remarks" binding:"max=1000"`
}

// ListFilter represents employee listing parameters
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Role     string `form:"role"`
	Status   string `form:"status"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// EmployeeResponse represents employee data returned to clients.
// The password hash never leaves the service.
type EmployeeResponse struct {
	ID          uuid.UUID                `json:"id"`
	Username    string                   `json:"username"`
	FullName    string                   `json:"full_name"`
	Email       string                   `json:"email,omitempty"`
	Phone       string                   `json:"phone,omitempty"`
	Role        workforce.Role           `json:"role"`
	Status      workforce.EmployeeStatus `json:"status"`
	HourlyRate  decimal.Decimal          `json:"hourly_rate"`
	HiredAt     time.Time                `json:"hired_at"`
	TenureYears decimal.Decimal          `json:"tenure_years"`
	LastLoginAt *time.Time               `json:"last_login_at,omitempty"`
	Notes       string                   `json:"notes,omitempty"`
	Version     int                      `json:"version"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// PerformanceResponse represents one month of production metrics
type PerformanceResponse struct {
	ID               uuid.UUID       `json:"id"`
	EmployeeID       uuid.UUID       `json:"employee_id"`
	Period           string          `json:"period"`
	OrdersCompleted  int             `json:"orders_completed"`
	GarmentsProduced int             `json:"garments_produced"`
	HoursWorked      decimal.Decimal `json:"hours_worked"`
	ReworkCount      int             `json:"rework_count"`
	QualityScore     int             `json:"quality_score"`
	GarmentsPerHour  decimal.Decimal `json:"garments_per_hour"`
	ReworkRate       decimal.Decimal `json:"rework_rate"`
	Remarks          string          `json:"remarks,omitempty"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToEmployeeResponse converts a domain employee to a response DTO
func ToEmployeeResponse(e *workforce.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		ID:          e.ID,
		Username:    e.Username,
		FullName:    e.FullName,
		Email:       e.Email,
		Phone:       e.Phone,
		Role:        e.Role,
		Status:      e.Status,
		HourlyRate:  e.HourlyRate.Amount(),
		HiredAt:     e.HiredAt,
		TenureYears: e.TenureYears(),
		LastLoginAt: e.LastLoginAt,
		Notes:       e.Notes,
		Version:     e.Version,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToEmployeeResponses converts a slice of employees to response DTOs
func ToEmployeeResponses(employees []workforce.Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, len(employees))
	for i := range employees {
		responses[i] = *ToEmployeeResponse(&employees[i])
	}
	return responses
}

// ToPerformanceResponse converts a domain performance record to a response DTO
func ToPerformanceResponse(p *workforce.PerformanceRecord) *PerformanceResponse {
	return &PerformanceResponse{
		ID:               p.ID,
		EmployeeID:       p.EmployeeID,
		Period:           p.Period(),
		OrdersCompleted:  p.OrdersCompleted,
		GarmentsProduced: p.GarmentsProduced,
		HoursWorked:      p.HoursWorked,
		ReworkCount:      p.ReworkCount,
		QualityScore:     p.QualityScore,
		GarmentsPerHour:  p.GarmentsPerHour(),
		ReworkRate:       p.ReworkRate(),
		Remarks:          p.Remarks,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToPerformanceResponses converts a slice of performance records to response DTOs
func ToPerformanceResponses(records []workforce.PerformanceRecord) []PerformanceResponse {
	responses := make([]PerformanceResponse, len(records))
	for i := range records {
		responses[i] = *ToPerformanceResponse(&records[i])
	}
	return responses
}
