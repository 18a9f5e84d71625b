package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
)

// Fabric is the aggregate root for a fabric stocked by the atelier.
// Stock is tracked in meters and only changes through recorded movements.
type Fabric struct {
	shared.BaseAggregateRoot
	SKU          string
	Name         string
	Composition  string
	Color        string
	WidthCM      decimal.Decimal
	UnitCost     valueobject.Money
	QuantityM    decimal.Decimal
	ReorderLevel decimal.Decimal
	SupplierName string
	Location     string
	Active       bool
}

// NewFabric creates a new fabric with zero stock
func NewFabric(sku, name, composition, color string, widthCM decimal.Decimal, unitCost valueobject.Money) (*Fabric, error) {
	sku = strings.TrimSpace(sku)
	name = strings.TrimSpace(name)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Fabric SKU cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Fabric name cannot be empty")
	}
	if widthCM.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_WIDTH", "Fabric width must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_COST", "Fabric unit cost cannot be negative")
	}

	return &Fabric{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Name:              name,
		Composition:       composition,
		Color:             color,
		WidthCM:           widthCM,
		UnitCost:          unitCost,
		QuantityM:         decimal.Zero,
		ReorderLevel:      decimal.Zero,
		Active:            true,
	}, nil
}

// UpdateDetails updates the descriptive attributes of the fabric
func (f *Fabric) UpdateDetails(name, composition, color string, widthCM decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Fabric name cannot be empty")
	}
	if widthCM.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_WIDTH", "Fabric width must be positive")
	}
	f.Name = name
	f.Composition = composition
	f.Color = color
	f.WidthCM = widthCM
	f.Touch()
	return nil
}

// SetUnitCost updates the per-meter cost used for stock valuation
func (f *Fabric) SetUnitCost(cost valueobject.Money) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_UNIT_COST", "Fabric unit cost cannot be negative")
	}
	f.UnitCost = cost
	f.Touch()
	return nil
}

// SetSupplier records where the fabric is sourced from and where it is stored
func (f *Fabric) SetSupplier(supplierName, location string) {
	f.SupplierName = strings.TrimSpace(supplierName)
	f.Location = strings.TrimSpace(location)
	f.Touch()
}

// SetReorderLevel updates the threshold below which the fabric is flagged for reorder
func (f *Fabric) SetReorderLevel(level decimal.Decimal) error {
	if level.IsNegative() {
		return shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}
	f.ReorderLevel = level
	f.Touch()
	return nil
}

// Apply applies a stock movement to the fabric. A movement that would drive
// the on-hand quantity negative is rejected. Crossing the reorder threshold
// raises a below-reorder event.
func (f *Fabric) Apply(m *Movement) error {
	if m == nil {
		return shared.ErrInvalidInput
	}
	if m.FabricID != f.GetID() {
		return shared.NewDomainError("FABRIC_MISMATCH", "Movement does not belong to this fabric")
	}
	if !f.Active {
		return shared.NewDomainError("FABRIC_INACTIVE", "Cannot apply movements to an inactive fabric")
	}

	wasBelowLevel := f.IsBelowReorderLevel()
	newQuantity := f.QuantityM.Add(m.SignedQuantity())
	if newQuantity.IsNegative() {
		return shared.ErrInsufficientStock
	}

	f.QuantityM = newQuantity
	f.Touch()

	if !wasBelowLevel && f.IsBelowReorderLevel() {
		f.AddDomainEvent(NewFabricBelowReorderLevelEvent(f.GetID(), f.SKU, f.Name, f.QuantityM, f.ReorderLevel))
	}
	return nil
}

// IsBelowReorderLevel reports whether on-hand stock has fallen below the reorder threshold
func (f *Fabric) IsBelowReorderLevel() bool {
	if f.ReorderLevel.IsZero() {
		return false
	}
	return f.QuantityM.LessThan(f.ReorderLevel)
}

// Deactivate retires the fabric from the catalog
func (f *Fabric) Deactivate() error {
	if !f.Active {
		return shared.ErrInvalidState
	}
	f.Active = false
	f.Touch()
	return nil
}

// StockValue returns the valuation of the on-hand stock at the current unit cost
func (f *Fabric) StockValue() valueobject.Money {
	return f.UnitCost.Multiply(f.QuantityM)
}

// HasStock reports whether at least the requested quantity is on hand
func (f *Fabric) HasStock(meters decimal.Decimal) bool {
	return f.QuantityM.GreaterThanOrEqual(meters)
}
