package models

import (
	"github.com/atelier/backend/internal/domain/inventory"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FabricModel is the persistence model for the Fabric aggregate.
type FabricModel struct {
	AggregateModel
	SKU          string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Composition  string          `gorm:"type:varchar(200)"`
	Color        string          `gorm:"type:varchar(100)"`
	WidthCM      decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	QuantityM    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReorderLevel decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SupplierName string          `gorm:"type:varchar(200)"`
	Location     string          `gorm:"type:varchar(100)"`
	Active       bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (FabricModel) TableName() string {
	return "fabrics"
}

// ToDomain converts the persistence model to a domain Fabric
func (m *FabricModel) ToDomain() *inventory.Fabric {
	f := &inventory.Fabric{
		SKU:          m.SKU,
		Name:         m.Name,
		Composition:  m.Composition,
		Color:        m.Color,
		WidthCM:      m.WidthCM,
		UnitCost:     valueobject.NewMoneyUSD(m.UnitCost),
		QuantityM:    m.QuantityM,
		ReorderLevel: m.ReorderLevel,
		SupplierName: m.SupplierName,
		Location:     m.Location,
		Active:       m.Active,
	}
	m.PopulateAggregateRoot(&f.BaseAggregateRoot)
	return f
}

// FromDomain populates the persistence model from a domain Fabric
func (m *FabricModel) FromDomain(f *inventory.Fabric) {
	m.FromDomainAggregateRoot(f.BaseAggregateRoot)
	m.SKU = f.SKU
	m.Name = f.Name
	m.Composition = f.Composition
	m.Color = f.Color
	m.WidthCM = f.WidthCM
	m.UnitCost = f.UnitCost.Amount()
	m.QuantityM = f.QuantityM
	m.ReorderLevel = f.ReorderLevel
	m.SupplierName = f.SupplierName
	m.Location = f.Location
	m.Active = f.Active
}

// MovementModel is the persistence model for a stock movement.
// Movements are append-only.
type MovementModel struct {
	BaseModel
	FabricID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	Type       inventory.MovementType `gorm:"type:varchar(20);not null"`
	QuantityM  decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Reference  string                 `gorm:"type:varchar(200);index"`
	Notes      string                 `gorm:"type:varchar(500)"`
	RecordedBy uuid.UUID              `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (MovementModel) TableName() string {
	return "fabric_movements"
}

// ToDomain converts the persistence model to a domain Movement
func (m *MovementModel) ToDomain() *inventory.Movement {
	return &inventory.Movement{
		BaseEntity: m.BaseModel.ToDomain(),
		FabricID:   m.FabricID,
		Type:       m.Type,
		QuantityM:  m.QuantityM,
		Reference:  m.Reference,
		Notes:      m.Notes,
		RecordedBy: m.RecordedBy,
	}
}

// FromDomain populates the persistence model from a domain Movement
func (m *MovementModel) FromDomain(mv *inventory.Movement) {
	m.FromDomainBaseEntity(mv.BaseEntity)
	m.FabricID = mv.FabricID
	m.Type = mv.Type
	m.QuantityM = mv.QuantityM
	m.Reference = mv.Reference
	m.Notes = mv.Notes
	m.RecordedBy = mv.RecordedBy
}
