package order

import (
	"context"

	"github.com/atelier/backend/internal/domain/inventory"
	"github.com/atelier/backend/internal/domain/order"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Service handles tailoring order operations
type Service struct {
	orderRepo      order.Repository
	fabricRepo     inventory.FabricRepository
	eventPublisher shared.EventPublisher
}

// NewService creates a new order service
func NewService(orderRepo order.Repository, fabricRepo inventory.FabricRepository) *Service {
	return &Service{
		orderRepo:  orderRepo,
		fabricRepo: fabricRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new tailoring order in draft status
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	orderNumber, err := s.orderRepo.NextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(orderNumber, req.CustomerName, req.CustomerEmail, req.CustomerPhone)
	if err != nil {
		return nil, err
	}

	for _, in := range req.Items {
		item, err := order.NewItem(o.GetID(), in.FabricID, in.GarmentType, in.FabricName,
			in.FabricMeters, in.Quantity, valueobject.NewMoneyUSD(in.UnitPrice), in.Measurements)
		if err != nil {
			return nil, err
		}
		if in.Remark != "" {
			item.Remark = in.Remark
		}
		if err := o.AddItem(item); err != nil {
			return nil, err
		}
	}

	if req.Remark != "" {
		o.SetRemark(req.Remark)
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	resp := ToOrderResponse(o)
	return &resp, nil
}

// GetByID retrieves an order by ID
func (s *Service) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// GetByOrderNumber retrieves an order by its business number
func (s *Service) GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// List retrieves orders with filtering and pagination
func (s *Service) List(ctx context.Context, filter ListFilter) ([]OrderListItemResponse, int64, error) {
	domainFilter := buildFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderListItemResponses(orders), total, nil
}

// Update updates order details
func (s *Service) Update(ctx context.Context, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if req.CustomerEmail != nil {
		o.CustomerEmail = *req.CustomerEmail
	}
	if req.CustomerPhone != nil {
		o.CustomerPhone = *req.CustomerPhone
	}
	if req.DueDate != nil {
		if err := o.SetDueDate(*req.DueDate); err != nil {
			return nil, err
		}
	}
	if req.Remark != nil {
		o.SetRemark(*req.Remark)
	}

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// AddItem adds a garment line to a draft order
func (s *Service) AddItem(ctx context.Context, orderID uuid.UUID, req AddItemRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	item, err := order.NewItem(o.GetID(), req.FabricID, req.GarmentType, req.FabricName,
		req.FabricMeters, req.Quantity, valueobject.NewMoneyUSD(req.UnitPrice), req.Measurements)
	if err != nil {
		return nil, err
	}
	if err := o.AddItem(item); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// UpdateItem updates a garment line on a draft order
func (s *Service) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, req UpdateItemRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.UpdateItem(itemID, req.Quantity, valueobject.NewMoneyUSD(req.UnitPrice), req.Measurements); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// RemoveItem removes a garment line from a draft order
func (s *Service) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// Confirm confirms a draft order after checking fabric availability.
// The actual stock issue happens in the inventory context when the
// confirmation event is handled.
func (s *Service) Confirm(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	for fabricID, meters := range o.FabricRequirements() {
		fabric, err := s.fabricRepo.FindByID(ctx, fabricID)
		if err != nil {
			return nil, err
		}
		if !fabric.HasStock(meters) {
			return nil, shared.ErrInsufficientStock
		}
	}

	if err := o.Confirm(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	resp := ToOrderResponse(o)
	return &resp, nil
}

// StartWork moves a confirmed order into production
func (s *Service) StartWork(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *order.Order) error { return o.StartWork() })
}

// ScheduleFitting books a fitting appointment
func (s *Service) ScheduleFitting(ctx context.Context, orderID uuid.UUID, req ScheduleFittingRequest) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *order.Order) error { return o.ScheduleFitting(req.FittingDate) })
}

// ReturnToWork sends a fitted garment back for adjustments
func (s *Service) ReturnToWork(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *order.Order) error { return o.ReturnToWork() })
}

// Complete marks the order delivered
func (s *Service) Complete(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *order.Order) error { return o.Complete() })
}

// Cancel cancels the order with a reason
func (s *Service) Cancel(ctx context.Context, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *order.Order) error { return o.Cancel(req.Reason) })
}

// AssignTailor assigns the order to an employee
func (s *Service) AssignTailor(ctx context.Context, orderID uuid.UUID, req AssignTailorRequest) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *order.Order) error { return o.AssignTailor(req.EmployeeID) })
}

// Delete deletes a draft order
func (s *Service) Delete(ctx context.Context, orderID uuid.UUID) error {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o.Status != order.StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be deleted")
	}
	return s.orderRepo.Delete(ctx, orderID)
}

func (s *Service) transition(ctx context.Context, orderID uuid.UUID, op func(*order.Order) error) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := op(o); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	resp := ToOrderResponse(o)
	return &resp, nil
}

func (s *Service) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range o.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	o.ClearDomainEvents()
}

func buildFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if filter.TailorID != nil {
		domainFilter.Filters["assigned_tailor_id"] = *filter.TailorID
	}
	return domainFilter
}
