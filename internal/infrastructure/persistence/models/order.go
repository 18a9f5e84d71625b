package models

import (
	"encoding/json"
	"time"

	"github.com/atelier/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate.
type OrderModel struct {
	AggregateModel
	OrderNumber      string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerName     string           `gorm:"type:varchar(200);not null"`
	CustomerEmail    string           `gorm:"type:varchar(200)"`
	CustomerPhone    string           `gorm:"type:varchar(50)"`
	Items            []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount      decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Status           order.Status     `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	AssignedTailorID *uuid.UUID       `gorm:"type:uuid;index"`
	FittingDate      *time.Time
	DueDate          *time.Time `gorm:"index"`
	Remark           string     `gorm:"type:text"`
	ConfirmedAt      *time.Time
	CompletedAt      *time.Time
	CancelledAt      *time.Time
	CancelReason     string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() (*order.Order, error) {
	o := &order.Order{
		OrderNumber:      m.OrderNumber,
		CustomerName:     m.CustomerName,
		CustomerEmail:    m.CustomerEmail,
		CustomerPhone:    m.CustomerPhone,
		TotalAmount:      m.TotalAmount,
		Status:           m.Status,
		AssignedTailorID: m.AssignedTailorID,
		FittingDate:      m.FittingDate,
		DueDate:          m.DueDate,
		Remark:           m.Remark,
		ConfirmedAt:      m.ConfirmedAt,
		CompletedAt:      m.CompletedAt,
		CancelledAt:      m.CancelledAt,
		CancelReason:     m.CancelReason,
	}
	m.PopulateAggregateRoot(&o.BaseAggregateRoot)

	o.Items = make([]order.Item, len(m.Items))
	for i := range m.Items {
		item, err := m.Items[i].ToDomain()
		if err != nil {
			return nil, err
		}
		o.Items[i] = *item
	}
	return o, nil
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *order.Order) error {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerName = o.CustomerName
	m.CustomerEmail = o.CustomerEmail
	m.CustomerPhone = o.CustomerPhone
	m.TotalAmount = o.TotalAmount
	m.Status = o.Status
	m.AssignedTailorID = o.AssignedTailorID
	m.FittingDate = o.FittingDate
	m.DueDate = o.DueDate
	m.Remark = o.Remark
	m.ConfirmedAt = o.ConfirmedAt
	m.CompletedAt = o.CompletedAt
	m.CancelledAt = o.CancelledAt
	m.CancelReason = o.CancelReason

	m.Items = make([]OrderItemModel, len(o.Items))
	for i := range o.Items {
		if err := m.Items[i].FromDomain(&o.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

// OrderItemModel is the persistence model for a garment line.
// Measurements are stored as a JSON document.
type OrderItemModel struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key"`
	OrderID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	GarmentType  order.GarmentType `gorm:"type:varchar(20);not null"`
	FabricID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	FabricName   string            `gorm:"type:varchar(200);not null"`
	FabricMeters decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Quantity     int               `gorm:"not null;default:1"`
	UnitPrice    decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Amount       decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Measurements string            `gorm:"type:jsonb"`
	Remark       string            `gorm:"type:varchar(500)"`
	CreatedAt    time.Time         `gorm:"not null"`
	UpdatedAt    time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain Item
func (m *OrderItemModel) ToDomain() (*order.Item, error) {
	var measurements order.Measurements
	if m.Measurements != "" {
		if err := json.Unmarshal([]byte(m.Measurements), &measurements); err != nil {
			return nil, err
		}
	}
	return &order.Item{
		ID:           m.ID,
		OrderID:      m.OrderID,
		GarmentType:  m.GarmentType,
		FabricID:     m.FabricID,
		FabricName:   m.FabricName,
		FabricMeters: m.FabricMeters,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		Amount:       m.Amount,
		Measurements: measurements,
		Remark:       m.Remark,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

// FromDomain populates the persistence model from a domain Item
func (m *OrderItemModel) FromDomain(item *order.Item) error {
	measurements, err := json.Marshal(item.Measurements)
	if err != nil {
		return err
	}
	m.ID = item.ID
	m.OrderID = item.OrderID
	m.GarmentType = item.GarmentType
	m.FabricID = item.FabricID
	m.FabricName = item.FabricName
	m.FabricMeters = item.FabricMeters
	m.Quantity = item.Quantity
	m.UnitPrice = item.UnitPrice
	m.Amount = item.Amount
	m.Measurements = string(measurements)
	m.Remark = item.Remark
	m.CreatedAt = item.CreatedAt
	m.UpdatedAt = item.UpdatedAt
	return nil
}
