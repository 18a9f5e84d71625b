package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/atelier/backend/internal/domain/inventory"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
)

// Service provides fabric inventory application logic
type Service struct {
	fabricRepo     inventory.FabricRepository
	movementRepo   inventory.MovementRepository
	eventPublisher shared.EventPublisher
}

// NewService creates a new inventory service
func NewService(fabricRepo inventory.FabricRepository, movementRepo inventory.MovementRepository) *Service {
	return &Service{
		fabricRepo:   fabricRepo,
		movementRepo: movementRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateFabric registers a new fabric in the catalog
func (s *Service) CreateFabric(ctx context.Context, req CreateFabricRequest) (*FabricResponse, error) {
	if existing, err := s.fabricRepo.FindBySKU(ctx, req.SKU); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	fabric, err := inventory.NewFabric(req.SKU, req.Name, req.Composition, req.Color,
		req.WidthCM, valueobject.NewMoneyUSD(req.UnitCost))
	if err != nil {
		return nil, err
	}
	if !req.ReorderLevel.IsZero() {
		if err := fabric.SetReorderLevel(req.ReorderLevel); err != nil {
			return nil, err
		}
	}
	if req.SupplierName != "" || req.Location != "" {
		fabric.SetSupplier(req.SupplierName, req.Location)
	}

	if err := s.fabricRepo.Save(ctx, fabric); err != nil {
		return nil, err
	}

	return ToFabricResponse(fabric), nil
}

// GetByID returns a fabric by its ID
func (s *Service) GetByID(ctx context.Context, fabricID uuid.UUID) (*FabricResponse, error) {
	fabric, err := s.fabricRepo.FindByID(ctx, fabricID)
	if err != nil {
		return nil, err
	}
	return ToFabricResponse(fabric), nil
}

// GetBySKU returns a fabric by its SKU
func (s *Service) GetBySKU(ctx context.Context, sku string) (*FabricResponse, error) {
	fabric, err := s.fabricRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	return ToFabricResponse(fabric), nil
}

// List returns fabrics matching the filter along with the total count
func (s *Service) List(ctx context.Context, filter ListFilter) ([]FabricResponse, int64, error) {
	domainFilter := buildFilter(filter)

	fabrics, err := s.fabricRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.fabricRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToFabricResponses(fabrics), total, nil
}

// ListLowStock returns active fabrics at or below their reorder level
func (s *Service) ListLowStock(ctx context.Context) ([]FabricResponse, error) {
	fabrics, err := s.fabricRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToFabricResponses(fabrics), nil
}

// Update changes the descriptive attributes of a fabric
func (s *Service) Update(ctx context.Context, fabricID uuid.UUID, req UpdateFabricRequest) (*FabricResponse, error) {
	fabric, err := s.fabricRepo.FindByID(ctx, fabricID)
	if err != nil {
		return nil, err
	}
	if err := fabric.UpdateDetails(req.Name, req.Composition, req.Color, req.WidthCM); err != nil {
		return nil, err
	}
	fabric.SetSupplier(req.SupplierName, req.Location)
	if err := s.fabricRepo.Save(ctx, fabric); err != nil {
		return nil, err
	}
	return ToFabricResponse(fabric), nil
}

// SetUnitCost changes the per-meter cost used for stock valuation
func (s *Service) SetUnitCost(ctx context.Context, fabricID uuid.UUID, req SetUnitCostRequest) (*FabricResponse, error) {
	fabric, err := s.fabricRepo.FindByID(ctx, fabricID)
	if err != nil {
		return nil, err
	}
	if err := fabric.SetUnitCost(valueobject.NewMoneyUSD(req.UnitCost)); err != nil {
		return nil, err
	}
	if err := s.fabricRepo.Save(ctx, fabric); err != nil {
		return nil, err
	}
	return ToFabricResponse(fabric), nil
}

// SetReorderLevel changes the threshold below which the fabric is flagged for reorder
func (s *Service) SetReorderLevel(ctx context.Context, fabricID uuid.UUID, req SetReorderLevelRequest) (*FabricResponse, error) {
	fabric, err := s.fabricRepo.FindByID(ctx, fabricID)
	if err != nil {
		return nil, err
	}
	if err := fabric.SetReorderLevel(req.ReorderLevel); err != nil {
		return nil, err
	}
	if err := s.fabricRepo.Save(ctx, fabric); err != nil {
		return nil, err
	}
	return ToFabricResponse(fabric), nil
}

// RecordMovement records a stock movement and applies it to the fabric.
// The fabric and the movement are saved together; the fabric save uses
// optimistic locking so concurrent movements cannot lose stock.
func (s *Service) RecordMovement(ctx context.Context, fabricID uuid.UUID, req RecordMovementRequest) (*MovementResponse, error) {
	fabric, err := s.fabricRepo.FindByID(ctx, fabricID)
	if err != nil {
		return nil, err
	}

	movement, err := inventory.NewMovement(fabricID, req.Type, req.QuantityM, req.Reference, req.Notes, req.RecordedBy)
	if err != nil {
		return nil, err
	}
	if err := fabric.Apply(movement); err != nil {
		return nil, err
	}
	fabric.IncrementVersion()

	if err := s.fabricRepo.SaveWithLock(ctx, fabric); err != nil {
		return nil, err
	}
	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, fabric)

	return ToMovementResponse(movement), nil
}

// ListMovements returns the movements recorded for a fabric, newest first
func (s *Service) ListMovements(ctx context.Context, fabricID uuid.UUID, filter shared.Filter) ([]MovementResponse, int64, error) {
	movements, err := s.movementRepo.FindByFabric(ctx, fabricID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.movementRepo.CountByFabric(ctx, fabricID)
	if err != nil {
		return nil, 0, err
	}
	return ToMovementResponses(movements), total, nil
}

// Deactivate retires a fabric from the catalog
func (s *Service) Deactivate(ctx context.Context, fabricID uuid.UUID) (*FabricResponse, error) {
	fabric, err := s.fabricRepo.FindByID(ctx, fabricID)
	if err != nil {
		return nil, err
	}
	if err := fabric.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.fabricRepo.Save(ctx, fabric); err != nil {
		return nil, err
	}
	return ToFabricResponse(fabric), nil
}

// Delete removes a fabric. Fabrics with recorded movements cannot be
// deleted, only deactivated.
func (s *Service) Delete(ctx context.Context, fabricID uuid.UUID) error {
	if _, err := s.fabricRepo.FindByID(ctx, fabricID); err != nil {
		return err
	}
	count, err := s.movementRepo.CountByFabric(ctx, fabricID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("FABRIC_HAS_MOVEMENTS", "Fabrics with recorded movements cannot be deleted")
	}
	return s.fabricRepo.Delete(ctx, fabricID)
}

func (s *Service) publishEvents(ctx context.Context, fabric *inventory.Fabric) {
	if s.eventPublisher == nil {
		fabric.ClearDomainEvents()
		return
	}
	events := fabric.GetDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	fabric.ClearDomainEvents()
}

func buildFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir
	if filter.Color != "" {
		domainFilter.Filters["color"] = filter.Color
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}
	return domainFilter
}
