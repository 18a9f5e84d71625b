package scheduling

import (
	"strings"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
)

// Equipment is a serviceable machine in the workshop: sewing machines,
// cutting tables, pressing stations.
type Equipment struct {
	shared.BaseAggregateRoot
	Name           string
	SerialNo       string
	Location       string
	PurchasedAt    *time.Time
	LastServicedAt *time.Time
	Active         bool
}

// NewEquipment registers a piece of equipment
func NewEquipment(name, serialNo, location string) (*Equipment, error) {
	name = strings.TrimSpace(name)
	serialNo = strings.TrimSpace(serialNo)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Equipment name cannot be empty")
	}
	if serialNo == "" {
		return nil, shared.NewDomainError("INVALID_SERIAL", "Equipment serial number cannot be empty")
	}

	return &Equipment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SerialNo:          serialNo,
		Location:          strings.TrimSpace(location),
		Active:            true,
	}, nil
}

// SetPurchaseDate records when the equipment was bought
func (e *Equipment) SetPurchaseDate(purchasedAt time.Time) error {
	if purchasedAt.IsZero() {
		return shared.NewDomainError("INVALID_PURCHASE_DATE", "Purchase date is required")
	}
	if purchasedAt.After(time.Now()) {
		return shared.NewDomainError("INVALID_PURCHASE_DATE", "Purchase date cannot be in the future")
	}
	e.PurchasedAt = &purchasedAt
	e.Touch()
	return nil
}

// RecordService records a completed service visit
func (e *Equipment) RecordService(servicedAt time.Time) error {
	if !e.Active {
		return shared.NewDomainError("EQUIPMENT_RETIRED", "Cannot service retired equipment")
	}
	if servicedAt.IsZero() {
		return shared.NewDomainError("INVALID_SERVICE_TIME", "Service time is required")
	}
	e.LastServicedAt = &servicedAt
	e.Touch()
	return nil
}

// Relocate updates where the equipment lives
func (e *Equipment) Relocate(location string) {
	e.Location = strings.TrimSpace(location)
	e.Touch()
}

// Retire removes the equipment from service
func (e *Equipment) Retire() error {
	if !e.Active {
		return shared.ErrInvalidState
	}
	e.Active = false
	e.Touch()
	return nil
}
