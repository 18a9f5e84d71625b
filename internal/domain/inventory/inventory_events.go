package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atelier/backend/internal/domain/shared"
)

const (
	AggregateTypeFabric = "Fabric"

	EventTypeFabricBelowReorderLevel = "inventory.fabric.below_reorder_level"
)

// FabricBelowReorderLevelEvent is raised when a movement drives on-hand
// stock below the fabric's reorder threshold
type FabricBelowReorderLevelEvent struct {
	shared.BaseDomainEvent
	FabricID     uuid.UUID       `json:"fabric_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	QuantityM    decimal.Decimal `json:"quantity_m"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// NewFabricBelowReorderLevelEvent creates a new below-reorder-level event
func NewFabricBelowReorderLevelEvent(fabricID uuid.UUID, sku, name string, quantityM, reorderLevel decimal.Decimal) *FabricBelowReorderLevelEvent {
	return &FabricBelowReorderLevelEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFabricBelowReorderLevel, AggregateTypeFabric, fabricID),
		FabricID:        fabricID,
		SKU:             sku,
		Name:            name,
		QuantityM:       quantityM,
		ReorderLevel:    reorderLevel,
	}
}
