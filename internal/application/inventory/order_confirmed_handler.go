package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/atelier/backend/internal/domain/inventory"
	"github.com/atelier/backend/internal/domain/order"
	"github.com/atelier/backend/internal/domain/shared"
)

// OrderConfirmedHandler issues fabric when a tailoring order is confirmed.
// For every fabric on the order it records an ISSUE movement referencing the
// order number, so the cutting table starts with the fabric already booked out.
type OrderConfirmedHandler struct {
	logger       *zap.Logger
	fabricRepo   inventory.FabricRepository
	movementRepo inventory.MovementRepository
}

// NewOrderConfirmedHandler creates a handler that books fabric out for confirmed orders
func NewOrderConfirmedHandler(logger *zap.Logger, fabricRepo inventory.FabricRepository, movementRepo inventory.MovementRepository) *OrderConfirmedHandler {
	return &OrderConfirmedHandler{
		logger:       logger,
		fabricRepo:   fabricRepo,
		movementRepo: movementRepo,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderConfirmedHandler) EventTypes() []string {
	return []string{order.EventTypeOrderConfirmed}
}

// Handle processes an OrderConfirmedEvent
func (h *OrderConfirmedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	confirmed, ok := event.(*order.OrderConfirmedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", order.EventTypeOrderConfirmed),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderConfirmed, event.EventType())
	}

	for fabricID, meters := range fabricRequirements(confirmed.Items) {
		if err := h.issue(ctx, confirmed.OrderNumber, fabricID, meters); err != nil {
			h.logger.Error("failed to issue fabric for confirmed order",
				zap.String("order_number", confirmed.OrderNumber),
				zap.String("fabric_id", fabricID.String()),
				zap.String("meters", meters.String()),
				zap.Error(err),
			)
			return err
		}
	}

	h.logger.Info("fabric issued for confirmed order",
		zap.String("order_number", confirmed.OrderNumber),
		zap.Int("items", len(confirmed.Items)),
	)
	return nil
}

// fabricRequirements sums the required meters per fabric so items cut from
// the same bolt are issued as a single movement.
func fabricRequirements(items []order.ItemInfo) map[uuid.UUID]decimal.Decimal {
	required := make(map[uuid.UUID]decimal.Decimal, len(items))
	for _, item := range items {
		meters := item.FabricMeters.Mul(decimal.NewFromInt(int64(item.Quantity)))
		required[item.FabricID] = required[item.FabricID].Add(meters)
	}
	return required
}

func (h *OrderConfirmedHandler) issue(ctx context.Context, orderNumber string, fabricID uuid.UUID, meters decimal.Decimal) error {
	fabric, err := h.fabricRepo.FindByID(ctx, fabricID)
	if err != nil {
		return err
	}

	movement, err := inventory.NewMovement(fabricID, inventory.MovementIssue, meters,
		orderNumber, "Issued for confirmed order", uuid.Nil)
	if err != nil {
		return err
	}
	if err := fabric.Apply(movement); err != nil {
		return err
	}
	fabric.IncrementVersion()

	if err := h.fabricRepo.SaveWithLock(ctx, fabric); err != nil {
		return err
	}
	return h.movementRepo.Save(ctx, movement)
}
