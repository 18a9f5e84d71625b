package order

import (
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of a tailoring order
type Status string

const (
	StatusDraft      Status = "DRAFT"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusFitting    Status = "FITTING"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusConfirmed, StatusInProgress, StatusFitting, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true for states with no outgoing transitions
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusInProgress || target == StatusCancelled
	case StatusInProgress:
		return target == StatusFitting || target == StatusCancelled
	case StatusFitting:
		return target == StatusInProgress || target == StatusCompleted || target == StatusCancelled
	case StatusCompleted, StatusCancelled:
		return false
	}
	return false
}

// GarmentType classifies what is being made
type GarmentType string

const (
	GarmentSuit     GarmentType = "SUIT"
	GarmentJacket   GarmentType = "JACKET"
	GarmentTrousers GarmentType = "TROUSERS"
	GarmentShirt    GarmentType = "SHIRT"
	GarmentDress    GarmentType = "DRESS"
	GarmentCoat     GarmentType = "COAT"
	GarmentAlter    GarmentType = "ALTERATION"
)

// IsValid checks if the GarmentType is a valid value
func (g GarmentType) IsValid() bool {
	switch g {
	case GarmentSuit, GarmentJacket, GarmentTrousers, GarmentShirt, GarmentDress, GarmentCoat, GarmentAlter:
		return true
	}
	return false
}

// Measurements holds the customer measurements for one garment, in centimeters.
// Zero fields mean "not taken" - which fields matter depends on the garment type.
type Measurements struct {
	Chest     decimal.Decimal `json:"chest"`
	Waist     decimal.Decimal `json:"waist"`
	Hips      decimal.Decimal `json:"hips"`
	Shoulder  decimal.Decimal `json:"shoulder"`
	SleeveLen decimal.Decimal `json:"sleeve_length"`
	Inseam    decimal.Decimal `json:"inseam"`
	Neck      decimal.Decimal `json:"neck"`
	Notes     string          `json:"notes,omitempty"`
}

// Validate rejects negative measurement values
func (m Measurements) Validate() error {
	for _, v := range []decimal.Decimal{m.Chest, m.Waist, m.Hips, m.Shoulder, m.SleeveLen, m.Inseam, m.Neck} {
		if v.IsNegative() {
			return shared.NewDomainError("INVALID_MEASUREMENT", "Measurements cannot be negative")
		}
	}
	return nil
}

// Item represents a garment line in a tailoring order
type Item struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	GarmentType  GarmentType
	FabricID     uuid.UUID
	FabricName   string
	FabricMeters decimal.Decimal // Estimated fabric consumption in meters
	Quantity     int
	UnitPrice    decimal.Decimal
	Amount       decimal.Decimal // Quantity * UnitPrice
	Measurements Measurements
	Remark       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewItem creates a new order line for one garment
func NewItem(orderID, fabricID uuid.UUID, garmentType GarmentType, fabricName string, fabricMeters decimal.Decimal, quantity int, unitPrice valueobject.Money, measurements Measurements) (*Item, error) {
	if !garmentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_GARMENT_TYPE", "Invalid garment type")
	}
	if fabricID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FABRIC", "Fabric ID cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if fabricMeters.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FABRIC_METERS", "Fabric consumption cannot be negative")
	}
	if err := measurements.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Item{
		ID:           uuid.New(),
		OrderID:      orderID,
		GarmentType:  garmentType,
		FabricID:     fabricID,
		FabricName:   fabricName,
		FabricMeters: fabricMeters,
		Quantity:     quantity,
		UnitPrice:    unitPrice.Amount(),
		Amount:       unitPrice.Amount().Mul(decimal.NewFromInt(int64(quantity))),
		Measurements: measurements,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// UpdateMeasurements replaces the measurements on the line
func (i *Item) UpdateMeasurements(m Measurements) error {
	if err := m.Validate(); err != nil {
		return err
	}
	i.Measurements = m
	i.UpdatedAt = time.Now()
	return nil
}

// UpdatePricing updates quantity and unit price, recalculating the amount
func (i *Item) UpdatePricing(quantity int, unitPrice valueobject.Money) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	i.Quantity = quantity
	i.UnitPrice = unitPrice.Amount()
	i.Amount = unitPrice.Amount().Mul(decimal.NewFromInt(int64(quantity)))
	i.UpdatedAt = time.Now()
	return nil
}

// GetAmountMoney returns the line amount as Money
func (i *Item) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.Amount)
}

// Order represents a tailoring order aggregate root.
// It covers the full path from the first consultation to garment delivery.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber      string
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	Items            []Item
	TotalAmount      decimal.Decimal
	Status           Status
	AssignedTailorID *uuid.UUID
	FittingDate      *time.Time
	DueDate          *time.Time
	Remark           string
	ConfirmedAt      *time.Time
	CompletedAt      *time.Time
	CancelledAt      *time.Time
	CancelReason     string
}

// NewOrder creates a new tailoring order in DRAFT status
func NewOrder(orderNumber, customerName, customerEmail, customerPhone string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerName:      customerName,
		CustomerEmail:     customerEmail,
		CustomerPhone:     customerPhone,
		Items:             make([]Item, 0),
		TotalAmount:       decimal.Zero,
		Status:            StatusDraft,
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// AddItem adds a garment line to the order. Only allowed while DRAFT.
func (o *Order) AddItem(item *Item) error {
	if o.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Items can only be added to draft orders")
	}
	item.OrderID = o.ID
	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	o.Touch()
	return nil
}

// RemoveItem removes a garment line from the order. Only allowed while DRAFT.
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if o.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Items can only be removed from draft orders")
	}
	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotal()
			o.Touch()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// UpdateItem applies pricing and measurement changes to a line. Only allowed while DRAFT.
func (o *Order) UpdateItem(itemID uuid.UUID, quantity int, unitPrice valueobject.Money, measurements Measurements) error {
	if o.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Items can only be changed on draft orders")
	}
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdatePricing(quantity, unitPrice); err != nil {
				return err
			}
			if err := o.Items[idx].UpdateMeasurements(measurements); err != nil {
				return err
			}
			o.recalculateTotal()
			o.Touch()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// Confirm moves the order from DRAFT to CONFIRMED. Requires at least one item.
func (o *Order) Confirm() error {
	if !o.Status.CanTransitionTo(StatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", "Cannot confirm order in status: "+o.Status.String())
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot confirm an order without items")
	}

	now := time.Now()
	o.Status = StatusConfirmed
	o.ConfirmedAt = &now
	o.Touch()

	o.AddDomainEvent(NewOrderConfirmedEvent(o))

	return nil
}

// StartWork moves the order into IN_PROGRESS
func (o *Order) StartWork() error {
	if !o.Status.CanTransitionTo(StatusInProgress) {
		return shared.NewDomainError("INVALID_STATE", "Cannot start work on order in status: "+o.Status.String())
	}
	o.Status = StatusInProgress
	o.Touch()
	return nil
}

// ScheduleFitting records a fitting appointment and moves the order to FITTING
func (o *Order) ScheduleFitting(at time.Time) error {
	if !o.Status.CanTransitionTo(StatusFitting) {
		return shared.NewDomainError("INVALID_STATE", "Cannot schedule fitting for order in status: "+o.Status.String())
	}
	o.Status = StatusFitting
	o.FittingDate = &at
	o.Touch()
	return nil
}

// ReturnToWork sends a fitted order back to the workroom for adjustments
func (o *Order) ReturnToWork() error {
	if o.Status != StatusFitting {
		return shared.NewDomainError("INVALID_STATE", "Only orders in fitting can return to the workroom")
	}
	o.Status = StatusInProgress
	o.Touch()
	return nil
}

// Complete marks the order as delivered to the customer
func (o *Order) Complete() error {
	if !o.Status.CanTransitionTo(StatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", "Cannot complete order in status: "+o.Status.String())
	}

	now := time.Now()
	o.Status = StatusCompleted
	o.CompletedAt = &now
	o.Touch()

	o.AddDomainEvent(NewOrderCompletedEvent(o))

	return nil
}

// Cancel cancels the order with a reason. Completed orders cannot be cancelled.
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel order in status: "+o.Status.String())
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_CANCEL_REASON", "Cancel reason cannot be empty")
	}

	now := time.Now()
	o.Status = StatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.Touch()

	o.AddDomainEvent(NewOrderCancelledEvent(o, reason))

	return nil
}

// AssignTailor assigns the employee responsible for the garments
func (o *Order) AssignTailor(employeeID uuid.UUID) error {
	if employeeID == uuid.Nil {
		return shared.NewDomainError("INVALID_EMPLOYEE", "Employee ID cannot be empty")
	}
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot assign a tailor to a closed order")
	}
	o.AssignedTailorID = &employeeID
	o.Touch()
	return nil
}

// SetDueDate sets the promised delivery date
func (o *Order) SetDueDate(due time.Time) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot reschedule a closed order")
	}
	o.DueDate = &due
	o.Touch()
	return nil
}

// SetRemark sets the free-form remark
func (o *Order) SetRemark(remark string) {
	o.Remark = remark
	o.Touch()
}

// GetTotalMoney returns the order total as Money
func (o *Order) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}

// FabricRequirements sums estimated fabric consumption per fabric ID
func (o *Order) FabricRequirements() map[uuid.UUID]decimal.Decimal {
	reqs := make(map[uuid.UUID]decimal.Decimal, len(o.Items))
	for _, item := range o.Items {
		total := item.FabricMeters.Mul(decimal.NewFromInt(int64(item.Quantity)))
		reqs[item.FabricID] = reqs[item.FabricID].Add(total)
	}
	return reqs
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}
