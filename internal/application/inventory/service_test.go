package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atelier/backend/internal/domain/inventory"
	"github.com/atelier/backend/internal/domain/order"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
)

// MockFabricRepository is a mock implementation of inventory.FabricRepository
type MockFabricRepository struct {
	mock.Mock
}

func (m *MockFabricRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Fabric, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Fabric), args.Error(1)
}

func (m *MockFabricRepository) FindBySKU(ctx context.Context, sku string) (*inventory.Fabric, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Fabric), args.Error(1)
}

func (m *MockFabricRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Fabric, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Fabric), args.Error(1)
}

func (m *MockFabricRepository) FindLowStock(ctx context.Context) ([]inventory.Fabric, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Fabric), args.Error(1)
}

func (m *MockFabricRepository) Save(ctx context.Context, f *inventory.Fabric) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFabricRepository) SaveWithLock(ctx context.Context, f *inventory.Fabric) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFabricRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFabricRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockMovementRepository is a mock implementation of inventory.MovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Movement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Movement), args.Error(1)
}

func (m *MockMovementRepository) FindByFabric(ctx context.Context, fabricID uuid.UUID, filter shared.Filter) ([]inventory.Movement, error) {
	args := m.Called(ctx, fabricID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Movement), args.Error(1)
}

func (m *MockMovementRepository) Save(ctx context.Context, mv *inventory.Movement) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}

func (m *MockMovementRepository) CountByFabric(ctx context.Context, fabricID uuid.UUID) (int64, error) {
	args := m.Called(ctx, fabricID)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher captures published domain events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func stockedFabric(t *testing.T, meters int64) *inventory.Fabric {
	t.Helper()
	fabric, err := inventory.NewFabric("WOOL-001", "Grey Flannel", "100% wool", "grey",
		decimal.NewFromInt(150), valueobject.NewMoneyUSD(decimal.NewFromInt(42)))
	require.NoError(t, err)
	if meters > 0 {
		receipt, err := inventory.NewMovement(fabric.GetID(), inventory.MovementReceipt,
			decimal.NewFromInt(meters), "PO-1", "", uuid.Nil)
		require.NoError(t, err)
		require.NoError(t, fabric.Apply(receipt))
	}
	return fabric
}

func TestService_CreateFabric(t *testing.T) {
	fabricRepo := new(MockFabricRepository)
	svc := NewService(fabricRepo, new(MockMovementRepository))

	fabricRepo.On("FindBySKU", mock.Anything, "WOOL-001").Return(nil, shared.ErrNotFound)
	fabricRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.Fabric")).Return(nil)

	resp, err := svc.CreateFabric(context.Background(), CreateFabricRequest{
		SKU:          "WOOL-001",
		Name:         "Grey Flannel",
		Composition:  "100% wool",
		Color:        "grey",
		WidthCM:      decimal.NewFromInt(150),
		UnitCost:     decimal.NewFromInt(42),
		ReorderLevel: decimal.NewFromInt(10),
	})

	require.NoError(t, err)
	assert.Equal(t, "WOOL-001", resp.SKU)
	assert.True(t, resp.QuantityM.IsZero())
	assert.Equal(t, "10", resp.ReorderLevel.String())
	assert.True(t, resp.Active)
	fabricRepo.AssertExpectations(t)
}

func TestService_CreateFabric_DuplicateSKU(t *testing.T) {
	existing := stockedFabric(t, 0)

	fabricRepo := new(MockFabricRepository)
	svc := NewService(fabricRepo, new(MockMovementRepository))

	fabricRepo.On("FindBySKU", mock.Anything, "WOOL-001").Return(existing, nil)

	_, err := svc.CreateFabric(context.Background(), CreateFabricRequest{
		SKU:      "WOOL-001",
		Name:     "Grey Flannel",
		WidthCM:  decimal.NewFromInt(150),
		UnitCost: decimal.NewFromInt(42),
	})
	assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
	fabricRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_RecordMovement_Receipt(t *testing.T) {
	fabric := stockedFabric(t, 0)

	fabricRepo := new(MockFabricRepository)
	movementRepo := new(MockMovementRepository)
	svc := NewService(fabricRepo, movementRepo)

	fabricRepo.On("FindByID", mock.Anything, fabric.GetID()).Return(fabric, nil)
	fabricRepo.On("SaveWithLock", mock.Anything, fabric).Return(nil)
	movementRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.Movement")).Return(nil)

	resp, err := svc.RecordMovement(context.Background(), fabric.GetID(), RecordMovementRequest{
		Type:      inventory.MovementReceipt,
		QuantityM: decimal.NewFromInt(25),
		Reference: "PO-42",
	})

	require.NoError(t, err)
	assert.Equal(t, inventory.MovementReceipt, resp.Type)
	assert.Equal(t, "25", fabric.QuantityM.String())
	fabricRepo.AssertExpectations(t)
	movementRepo.AssertExpectations(t)
}

func TestService_RecordMovement_InsufficientStock(t *testing.T) {
	fabric := stockedFabric(t, 5)

	fabricRepo := new(MockFabricRepository)
	movementRepo := new(MockMovementRepository)
	svc := NewService(fabricRepo, movementRepo)

	fabricRepo.On("FindByID", mock.Anything, fabric.GetID()).Return(fabric, nil)

	_, err := svc.RecordMovement(context.Background(), fabric.GetID(), RecordMovementRequest{
		Type:      inventory.MovementIssue,
		QuantityM: decimal.NewFromInt(8),
	})

	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
	assert.Equal(t, "5", fabric.QuantityM.String())
	fabricRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	movementRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_RecordMovement_PublishesReorderAlert(t *testing.T) {
	fabric := stockedFabric(t, 20)
	require.NoError(t, fabric.SetReorderLevel(decimal.NewFromInt(10)))

	fabricRepo := new(MockFabricRepository)
	movementRepo := new(MockMovementRepository)
	publisher := new(MockEventPublisher)
	svc := NewService(fabricRepo, movementRepo)
	svc.SetEventPublisher(publisher)

	fabricRepo.On("FindByID", mock.Anything, fabric.GetID()).Return(fabric, nil)
	fabricRepo.On("SaveWithLock", mock.Anything, fabric).Return(nil)
	movementRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.Movement")).Return(nil)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == inventory.EventTypeFabricBelowReorderLevel
	})).Return(nil)

	_, err := svc.RecordMovement(context.Background(), fabric.GetID(), RecordMovementRequest{
		Type:      inventory.MovementIssue,
		QuantityM: decimal.NewFromInt(15),
	})

	require.NoError(t, err)
	publisher.AssertExpectations(t)
	assert.Empty(t, fabric.GetDomainEvents())
}

func TestService_Delete_BlockedByMovements(t *testing.T) {
	fabric := stockedFabric(t, 10)

	fabricRepo := new(MockFabricRepository)
	movementRepo := new(MockMovementRepository)
	svc := NewService(fabricRepo, movementRepo)

	fabricRepo.On("FindByID", mock.Anything, fabric.GetID()).Return(fabric, nil)
	movementRepo.On("CountByFabric", mock.Anything, fabric.GetID()).Return(int64(3), nil)

	err := svc.Delete(context.Background(), fabric.GetID())
	assert.Error(t, err)
	fabricRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestOrderConfirmedHandler_IssuesAggregatedFabric(t *testing.T) {
	fabric := stockedFabric(t, 20)

	fabricRepo := new(MockFabricRepository)
	movementRepo := new(MockMovementRepository)
	handler := NewOrderConfirmedHandler(zap.NewNop(), fabricRepo, movementRepo)

	o, err := order.NewOrder("ORD-2026-0011", "C. Fontaine", "", "")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		item, err := order.NewItem(o.GetID(), fabric.GetID(), order.GarmentTrousers, fabric.Name,
			decimal.NewFromFloat(1.5), 2, valueobject.NewMoneyUSD(decimal.NewFromInt(180)), order.Measurements{})
		require.NoError(t, err)
		require.NoError(t, o.AddItem(item))
	}
	require.NoError(t, o.Confirm())
	events := o.GetDomainEvents()
	var confirmed *order.OrderConfirmedEvent
	for _, e := range events {
		if ev, ok := e.(*order.OrderConfirmedEvent); ok {
			confirmed = ev
		}
	}
	require.NotNil(t, confirmed)

	fabricRepo.On("FindByID", mock.Anything, fabric.GetID()).Return(fabric, nil)
	fabricRepo.On("SaveWithLock", mock.Anything, fabric).Return(nil)
	movementRepo.On("Save", mock.Anything, mock.MatchedBy(func(m *inventory.Movement) bool {
		return m.Type == inventory.MovementIssue && m.QuantityM.Equal(decimal.NewFromInt(6)) &&
			m.Reference == "ORD-2026-0011"
	})).Return(nil)

	err = handler.Handle(context.Background(), confirmed)
	require.NoError(t, err)
	assert.Equal(t, "14", fabric.QuantityM.String())
	fabricRepo.AssertNumberOfCalls(t, "FindByID", 1)
	movementRepo.AssertExpectations(t)
}

func TestOrderConfirmedHandler_RejectsOtherEvents(t *testing.T) {
	handler := NewOrderConfirmedHandler(zap.NewNop(), new(MockFabricRepository), new(MockMovementRepository))

	o, err := order.NewOrder("ORD-2026-0012", "D. Weiss", "", "")
	require.NoError(t, err)

	err = handler.Handle(context.Background(), order.NewOrderCreatedEvent(o))
	assert.Error(t, err)
}
