package workforce

import (
	"regexp"
	"strings"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Role represents an employee's function in the atelier
type Role string

const (
	RoleTailor   Role = "TAILOR"
	RoleCutter   Role = "CUTTER"
	RoleFinisher Role = "FINISHER"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleTailor, RoleCutter, RoleFinisher, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

// CanManage reports whether the role carries management permissions
func (r Role) CanManage() bool {
	return r == RoleManager || r == RoleAdmin
}

// IsProduction reports whether the role works on garments directly
func (r Role) IsProduction() bool {
	switch r {
	case RoleTailor, RoleCutter, RoleFinisher:
		return true
	}
	return false
}

// EmployeeStatus represents the status of an employee account
type EmployeeStatus string

const (
	EmployeeStatusActive      EmployeeStatus = "ACTIVE"
	EmployeeStatusLocked      EmployeeStatus = "LOCKED"
	EmployeeStatusDeactivated EmployeeStatus = "DEACTIVATED"
)

// Password cost for bcrypt
const bcryptCost = 12

// Employee is the aggregate root for staff accounts. An employee both
// appears on orders (as assigned tailor) and logs in to the dashboard.
type Employee struct {
	shared.BaseAggregateRoot
	Username       string
	Email          string
	Phone          string
	PasswordHash   string
	FullName       string
	Role           Role
	Status         EmployeeStatus
	HourlyRate     valueobject.Money
	HiredAt        time.Time
	LastLoginAt    *time.Time
	FailedAttempts int
	LockedUntil    *time.Time
	Notes          string
}

// NewEmployee creates a new active employee with login credentials
func NewEmployee(username, password, fullName string, role Role, hiredAt time.Time) (*Employee, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Employee name cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Invalid employee role: "+role.String())
	}
	if hiredAt.IsZero() {
		hiredAt = time.Now()
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	emp := &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          strings.ToLower(strings.TrimSpace(username)),
		PasswordHash:      passwordHash,
		FullName:          fullName,
		Role:              role,
		Status:            EmployeeStatusActive,
		HourlyRate:        valueobject.ZeroUSD(),
		HiredAt:           hiredAt,
	}

	emp.AddDomainEvent(NewEmployeeCreatedEvent(emp))

	return emp, nil
}

// SetEmail sets the employee's email address
func (e *Employee) SetEmail(email string) error {
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
		email = strings.ToLower(strings.TrimSpace(email))
	}
	e.Email = email
	e.Touch()
	return nil
}

// SetPhone sets the employee's phone number
func (e *Employee) SetPhone(phone string) error {
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	e.Phone = strings.TrimSpace(phone)
	e.Touch()
	return nil
}

// SetFullName updates the employee's name
func (e *Employee) SetFullName(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return shared.NewDomainError("INVALID_NAME", "Employee name cannot be empty")
	}
	e.FullName = fullName
	e.Touch()
	return nil
}

// SetNotes sets free-form notes on the employee record
func (e *Employee) SetNotes(notes string) {
	e.Notes = notes
	e.Touch()
}

// SetHourlyRate updates the employee's pay rate
func (e *Employee) SetHourlyRate(rate valueobject.Money) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Hourly rate cannot be negative")
	}
	e.HourlyRate = rate
	e.Touch()
	return nil
}

// ChangeRole changes the employee's role
func (e *Employee) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Invalid employee role: "+role.String())
	}
	if role == e.Role {
		return nil
	}
	oldRole := e.Role
	e.Role = role
	e.Touch()
	e.AddDomainEvent(NewEmployeeRoleChangedEvent(e, oldRole, role))
	return nil
}

// ChangePassword changes the password after verifying the current one
func (e *Employee) ChangePassword(oldPassword, newPassword string) error {
	if !e.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return e.SetPassword(newPassword)
}

// SetPassword sets a new password without checking the old one (admin reset)
func (e *Employee) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	e.PasswordHash = passwordHash
	e.Touch()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (e *Employee) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password))
	return err == nil
}

// Deactivate deactivates the employee account
func (e *Employee) Deactivate() error {
	if e.Status == EmployeeStatusDeactivated {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "Employee is already deactivated")
	}
	e.Status = EmployeeStatusDeactivated
	e.Touch()
	e.AddDomainEvent(NewEmployeeDeactivatedEvent(e))
	return nil
}

// Reactivate restores a deactivated or locked employee account
func (e *Employee) Reactivate() error {
	if e.Status == EmployeeStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Employee is already active")
	}
	e.Status = EmployeeStatusActive
	e.FailedAttempts = 0
	e.LockedUntil = nil
	e.Touch()
	return nil
}

// Lock locks the account for the given duration
func (e *Employee) Lock(duration time.Duration) error {
	if e.Status == EmployeeStatusDeactivated {
		return shared.NewDomainError("EMPLOYEE_DEACTIVATED", "Cannot lock a deactivated employee")
	}
	e.Status = EmployeeStatusLocked
	if duration > 0 {
		lockedUntil := time.Now().Add(duration)
		e.LockedUntil = &lockedUntil
	}
	e.Touch()
	return nil
}

// RecordLoginSuccess records a successful login
func (e *Employee) RecordLoginSuccess() {
	now := time.Now()
	e.LastLoginAt = &now
	e.FailedAttempts = 0
	e.Touch()
}

// RecordLoginFailure records a failed login attempt.
// Returns true if the account was locked as a result.
func (e *Employee) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	e.FailedAttempts++
	e.Touch()

	if e.FailedAttempts >= maxAttempts {
		_ = e.Lock(lockDuration)
		return true
	}
	return false
}

// IsLocked returns true if the account is locked and the lock has not expired
func (e *Employee) IsLocked() bool {
	if e.Status != EmployeeStatusLocked {
		return false
	}
	if e.LockedUntil != nil && time.Now().After(*e.LockedUntil) {
		return false
	}
	return true
}

// IsActive returns true if the employee account is active
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

// CanLogin returns true if the employee can log in to the dashboard
func (e *Employee) CanLogin() bool {
	if e.Status == EmployeeStatusDeactivated {
		return false
	}
	return !e.IsLocked()
}

// TenureYears returns the employee's tenure in fractional years as of now
func (e *Employee) TenureYears() decimal.Decimal {
	hours := time.Since(e.HiredAt).Hours()
	return decimal.NewFromFloat(hours / (24 * 365.25)).Round(2)
}

// Validation functions

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 100 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}

	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	if !usernameRegex.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username can only contain letters, numbers, underscores, hyphens, and dots")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
