package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atelier/backend/internal/domain/inventory"
)

// CreateFabricRequest represents a request to register a new fabric
type CreateFabricRequest struct {
	SKU          string          `json:"sku" binding:"required,max=50"`
	Name         string          `json:"name" binding:"required,max=200"`
	Composition  string          `json:"composition" binding:"max=200"`
	Color        string          `json:"color" binding:"max=50"`
	WidthCM      decimal.Decimal `json:"width_cm" binding:"required"`
	UnitCost     decimal.Decimal `json:"unit_cost" binding:"required"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	SupplierName string          `json:"supplier_name" binding:"max=200"`
	Location     string          `json:"location" binding:"max=100"`
}

// UpdateFabricRequest represents a request to update fabric details
type UpdateFabricRequest struct {
	Name         string          `json:"name" binding:"required,max=200"`
	Composition  string          `json:"composition" binding:"max=200"`
	Color        string          `json:"color" binding:"max=50"`
	WidthCM      decimal.Decimal `json:"width_cm" binding:"required"`
	SupplierName string          `json:"supplier_name" binding:"max=200"`
	Location     string          `json:"location" binding:"max=100"`
}

// SetUnitCostRequest represents a request to change the valuation cost
type SetUnitCostRequest struct {
	UnitCost decimal.Decimal `json:"unit_cost" binding:"required"`
}

// SetReorderLevelRequest represents a request to change the reorder threshold
type SetReorderLevelRequest struct {
	ReorderLevel decimal.Decimal `json:"reorder_level" binding:"required"`
}

// RecordMovementRequest represents a request to record a stock movement
type RecordMovementRequest struct {
	Type       inventory.MovementType `json:"type" binding:"required"`
	QuantityM  decimal.Decimal        `json:"quantity_m" binding:"required"`
	Reference  string                 `json:"reference" binding:"max=100"`
	Notes      string                 `json:"notes" binding:"max=500"`
	RecordedBy uuid.UUID              `json:"recorded_by"`
}

// ListFilter represents fabric listing parameters
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Color    string `form:"color"`
	Active   *bool  `form:"active"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// FabricResponse represents fabric data returned to clients
type FabricResponse struct {
	ID                  uuid.UUID       `json:"id"`
	SKU                 string          `json:"sku"`
	Name                string          `json:"name"`
	Composition         string          `json:"composition,omitempty"`
	Color               string          `json:"color,omitempty"`
	WidthCM             decimal.Decimal `json:"width_cm"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	QuantityM           decimal.Decimal `json:"quantity_m"`
	ReorderLevel        decimal.Decimal `json:"reorder_level"`
	SupplierName        string          `json:"supplier_name,omitempty"`
	Location            string          `json:"location,omitempty"`
	StockValue          decimal.Decimal `json:"stock_value"`
	IsBelowReorderLevel bool            `json:"is_below_reorder_level"`
	Active              bool            `json:"active"`
	Version             int             `json:"version"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// MovementResponse represents a recorded stock movement
type MovementResponse struct {
	ID         uuid.UUID              `json:"id"`
	FabricID   uuid.UUID              `json:"fabric_id"`
	Type       inventory.MovementType `json:"type"`
	QuantityM  decimal.Decimal        `json:"quantity_m"`
	Reference  string                 `json:"reference,omitempty"`
	Notes      string                 `json:"notes,omitempty"`
	RecordedBy uuid.UUID              `json:"recorded_by"`
	CreatedAt  time.Time              `json:"created_at"`
}

// ToFabricResponse converts a domain fabric to a response DTO
func ToFabricResponse(f *inventory.Fabric) *FabricResponse {
	return &FabricResponse{
		ID:                  f.ID,
		SKU:                 f.SKU,
		Name:                f.Name,
		Composition:         f.Composition,
		Color:               f.Color,
		WidthCM:             f.WidthCM,
		UnitCost:            f.UnitCost.Amount(),
		QuantityM:           f.QuantityM,
		ReorderLevel:        f.ReorderLevel,
		SupplierName:        f.SupplierName,
		Location:            f.Location,
		StockValue:          f.StockValue().Amount(),
		IsBelowReorderLevel: f.IsBelowReorderLevel(),
		Active:              f.Active,
		Version:             f.Version,
		CreatedAt:           f.CreatedAt,
		UpdatedAt:           f.UpdatedAt,
	}
}

// ToFabricResponses converts a slice of fabrics to response DTOs
func ToFabricResponses(fabrics []inventory.Fabric) []FabricResponse {
	responses := make([]FabricResponse, len(fabrics))
	for i := range fabrics {
		responses[i] = *ToFabricResponse(&fabrics[i])
	}
	return responses
}

// ToMovementResponse converts a domain movement to a response DTO
func ToMovementResponse(m *inventory.Movement) *MovementResponse {
	return &MovementResponse{
		ID:         m.ID,
		FabricID:   m.FabricID,
		Type:       m.Type,
		QuantityM:  m.QuantityM,
		Reference:  m.Reference,
		Notes:      m.Notes,
		RecordedBy: m.RecordedBy,
		CreatedAt:  m.CreatedAt,
	}
}

// ToMovementResponses converts a slice of movements to response DTOs
func ToMovementResponses(movements []inventory.Movement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = *ToMovementResponse(&movements[i])
	}
	return responses
}
