package inventory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atelier/backend/internal/domain/shared"
)

// MovementType classifies a stock movement
type MovementType string

const (
	MovementReceipt    MovementType = "RECEIPT"
	MovementIssue      MovementType = "ISSUE"
	MovementAdjustment MovementType = "ADJUSTMENT"
	MovementReturn     MovementType = "RETURN"
)

// IsValid checks if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementReceipt, MovementIssue, MovementAdjustment, MovementReturn:
		return true
	}
	return false
}

// String returns the string representation
func (t MovementType) String() string {
	return string(t)
}

// Movement is an append-only record of a change to fabric stock.
// Movements are never updated or deleted once recorded.
type Movement struct {
	shared.BaseEntity
	FabricID   uuid.UUID
	Type       MovementType
	QuantityM  decimal.Decimal
	Reference  string
	Notes      string
	RecordedBy uuid.UUID
}

// NewMovement creates a stock movement. Receipt, issue and return quantities
// must be positive; adjustments carry their sign and must be nonzero.
func NewMovement(fabricID uuid.UUID, movementType MovementType, quantityM decimal.Decimal, reference, notes string, recordedBy uuid.UUID) (*Movement, error) {
	if fabricID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FABRIC", "Movement must reference a fabric")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type: "+movementType.String())
	}

	if movementType == MovementAdjustment {
		if quantityM.IsZero() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjustment quantity cannot be zero")
		}
	} else if quantityM.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity must be positive")
	}

	return &Movement{
		BaseEntity: shared.NewBaseEntity(),
		FabricID:   fabricID,
		Type:       movementType,
		QuantityM:  quantityM,
		Reference:  strings.TrimSpace(reference),
		Notes:      strings.TrimSpace(notes),
		RecordedBy: recordedBy,
	}, nil
}

// SignedQuantity returns the movement's effect on on-hand stock:
// issues are negative, adjustments carry their recorded sign,
// receipts and returns are positive.
func (m *Movement) SignedQuantity() decimal.Decimal {
	switch m.Type {
	case MovementIssue:
		return m.QuantityM.Neg()
	case MovementAdjustment:
		return m.QuantityM
	default:
		return m.QuantityM
	}
}
