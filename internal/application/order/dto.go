package order

import (
	"time"

	"github.com/atelier/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents a request to create a tailoring order
type CreateOrderRequest struct {
	CustomerName  string                 `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerEmail string                 `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone string                 `json:"customer_phone" binding:"omitempty,max=50"`
	Items         []CreateOrderItemInput `json:"items"`
	Remark        string                 `json:"remark"`
}

// CreateOrderItemInput represents a garment line in the create request
type CreateOrderItemInput struct {
	GarmentType  order.GarmentType  `json:"garment_type" binding:"required"`
	FabricID     uuid.UUID          `json:"fabric_id" binding:"required"`
	FabricName   string             `json:"fabric_name" binding:"required,min=1,max=200"`
	FabricMeters decimal.Decimal    `json:"fabric_meters" binding:"required"`
	Quantity     int                `json:"quantity" binding:"required,min=1"`
	UnitPrice    decimal.Decimal    `json:"unit_price" binding:"required"`
	Measurements order.Measurements `json:"measurements"`
	Remark       string             `json:"remark"`
}

// UpdateOrderRequest represents a request to update order details
type UpdateOrderRequest struct {
	CustomerEmail *string    `json:"customer_email"`
	CustomerPhone *string    `json:"customer_phone"`
	DueDate       *time.Time `json:"due_date"`
	Remark        *string    `json:"remark"`
}

// AddItemRequest represents a request to add a garment line
type AddItemRequest struct {
	GarmentType  order.GarmentType  `json:"garment_type" binding:"required"`
	FabricID     uuid.UUID          `json:"fabric_id" binding:"required"`
	FabricName   string             `json:"fabric_name" binding:"required,min=1,max=200"`
	FabricMeters decimal.Decimal    `json:"fabric_meters" binding:"required"`
	Quantity     int                `json:"quantity" binding:"required,min=1"`
	UnitPrice    decimal.Decimal    `json:"unit_price" binding:"required"`
	Measurements order.Measurements `json:"measurements"`
}

// UpdateItemRequest represents a request to update a garment line
type UpdateItemRequest struct {
	Quantity     int                `json:"quantity" binding:"required,min=1"`
	UnitPrice    decimal.Decimal    `json:"unit_price" binding:"required"`
	Measurements order.Measurements `json:"measurements"`
}

// ScheduleFittingRequest sets the fitting appointment
type ScheduleFittingRequest struct {
	FittingDate time.Time `json:"fitting_date" binding:"required"`
}

// AssignTailorRequest assigns the order to an employee
type AssignTailorRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" binding:"required"`
}

// CancelOrderRequest cancels the order with a reason
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// ListFilter defines filtering options for order lists
type ListFilter struct {
	Page     int           `form:"page"`
	PageSize int           `form:"page_size"`
	OrderBy  string        `form:"order_by"`
	OrderDir string        `form:"order_dir"`
	Search   string        `form:"search"`
	Status   *order.Status `form:"status"`
	TailorID *uuid.UUID    `form:"tailor_id"`
}

// ItemResponse represents a garment line in responses
type ItemResponse struct {
	ID           uuid.UUID          `json:"id"`
	GarmentType  order.GarmentType  `json:"garment_type"`
	FabricID     uuid.UUID          `json:"fabric_id"`
	FabricName   string             `json:"fabric_name"`
	FabricMeters decimal.Decimal    `json:"fabric_meters"`
	Quantity     int                `json:"quantity"`
	UnitPrice    decimal.Decimal    `json:"unit_price"`
	Amount       decimal.Decimal    `json:"amount"`
	Measurements order.Measurements `json:"measurements"`
	Remark       string             `json:"remark,omitempty"`
}

// OrderResponse represents a full order in responses
type OrderResponse struct {
	ID               uuid.UUID      `json:"id"`
	OrderNumber      string         `json:"order_number"`
	CustomerName     string         `json:"customer_name"`
	CustomerEmail    string         `json:"customer_email,omitempty"`
	CustomerPhone    string         `json:"customer_phone,omitempty"`
	Status           order.Status   `json:"status"`
	Items            []ItemResponse `json:"items"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	AssignedTailorID *uuid.UUID     `json:"assigned_tailor_id,omitempty"`
	FittingDate      *time.Time     `json:"fitting_date,omitempty"`
	DueDate          *time.Time     `json:"due_date,omitempty"`
	Remark           string         `json:"remark,omitempty"`
	ConfirmedAt      *time.Time     `json:"confirmed_at,omitempty"`
	CompletedAt      *time.Time     `json:"completed_at,omitempty"`
	CancelledAt      *time.Time     `json:"cancelled_at,omitempty"`
	CancelReason     string         `json:"cancel_reason,omitempty"`
	Version          int            `json:"version"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// OrderListItemResponse is the compact shape for list views
type OrderListItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	Status       order.Status    `json:"status"`
	ItemCount    int             `json:"item_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToOrderResponse converts a domain order to the response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemResponse{
			ID:           it.ID,
			GarmentType:  it.GarmentType,
			FabricID:     it.FabricID,
			FabricName:   it.FabricName,
			FabricMeters: it.FabricMeters,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			Amount:       it.Amount,
			Measurements: it.Measurements,
			Remark:       it.Remark,
		})
	}

	return OrderResponse{
		ID:               o.GetID(),
		OrderNumber:      o.OrderNumber,
		CustomerName:     o.CustomerName,
		CustomerEmail:    o.CustomerEmail,
		CustomerPhone:    o.CustomerPhone,
		Status:           o.Status,
		Items:            items,
		TotalAmount:      o.TotalAmount,
		AssignedTailorID: o.AssignedTailorID,
		FittingDate:      o.FittingDate,
		DueDate:          o.DueDate,
		Remark:           o.Remark,
		ConfirmedAt:      o.ConfirmedAt,
		CompletedAt:      o.CompletedAt,
		CancelledAt:      o.CancelledAt,
		CancelReason:     o.CancelReason,
		Version:          o.GetVersion(),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// ToOrderListItemResponses converts domain orders to the list DTO
func ToOrderListItemResponses(orders []order.Order) []OrderListItemResponse {
	out := make([]OrderListItemResponse, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		out = append(out, OrderListItemResponse{
			ID:           o.GetID(),
			OrderNumber:  o.OrderNumber,
			CustomerName: o.CustomerName,
			Status:       o.Status,
			ItemCount:    len(o.Items),
			TotalAmount:  o.TotalAmount,
			DueDate:      o.DueDate,
			CreatedAt:    o.CreatedAt,
		})
	}
	return out
}
