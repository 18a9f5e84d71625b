package order

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atelier/backend/internal/domain/inventory"
	"github.com/atelier/backend/internal/domain/order"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status order.Status, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByTailor(ctx context.Context, employeeID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, employeeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

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

func stockedFabric(t *testing.T, meters int64) *inventory.Fabric {
	t.Helper()
	f, err := inventory.NewFabric("WOOL-001", "Grey Flannel", "100% Wool", "Grey",
		decimal.NewFromInt(150), valueobject.ZeroUSD())
	require.NoError(t, err)
	if meters > 0 {
		m, err := inventory.NewMovement(f.GetID(), inventory.MovementReceipt,
			decimal.NewFromInt(meters), "PO-1", "", uuid.New())
		require.NoError(t, err)
		require.NoError(t, f.Apply(m))
	}
	return f
}

func draftOrderWithItem(t *testing.T, fabricID uuid.UUID, meters int64) *order.Order {
	t.Helper()
	o, err := order.NewOrder("ORD-2026-0001", "A. Moreau", "", "")
	require.NoError(t, err)
	item, err := order.NewItem(o.GetID(), fabricID, order.GarmentSuit, "Grey Flannel",
		decimal.NewFromInt(meters), 1, valueobject.NewMoneyUSD(decimal.NewFromInt(1200)), order.Measurements{})
	require.NoError(t, err)
	require.NoError(t, o.AddItem(item))
	return o
}

func TestService_Create(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	fabricRepo := new(MockFabricRepository)
	svc := NewService(orderRepo, fabricRepo)

	orderRepo.On("NextOrderNumber", mock.Anything).Return("ORD-2026-0042", nil)
	orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)

	resp, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerName: "A. Moreau",
		Items: []CreateOrderItemInput{
			{
				GarmentType:  order.GarmentSuit,
				FabricID:     uuid.New(),
				FabricName:   "Grey Flannel",
				FabricMeters: decimal.NewFromFloat(3.5),
				Quantity:     1,
				UnitPrice:    decimal.NewFromInt(1200),
			},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "ORD-2026-0042", resp.OrderNumber)
	assert.Equal(t, order.StatusDraft, resp.Status)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, "1200", resp.TotalAmount.String())
	orderRepo.AssertExpectations(t)
}

func TestService_Create_InvalidItem(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	svc := NewService(orderRepo, new(MockFabricRepository))

	orderRepo.On("NextOrderNumber", mock.Anything).Return("ORD-2026-0042", nil)

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerName: "A. Moreau",
		Items: []CreateOrderItemInput{
			{GarmentType: order.GarmentType("CAPE"), FabricID: uuid.New(), Quantity: 1},
		},
	})
	assert.Error(t, err)
	orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Confirm(t *testing.T) {
	fabric := stockedFabric(t, 10)
	o := draftOrderWithItem(t, fabric.GetID(), 4)

	orderRepo := new(MockOrderRepository)
	fabricRepo := new(MockFabricRepository)
	svc := NewService(orderRepo, fabricRepo)

	orderRepo.On("FindByID", mock.Anything, o.GetID()).Return(o, nil)
	fabricRepo.On("FindByID", mock.Anything, fabric.GetID()).Return(fabric, nil)
	orderRepo.On("SaveWithLock", mock.Anything, o).Return(nil)

	resp, err := svc.Confirm(context.Background(), o.GetID())
	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, resp.Status)
	orderRepo.AssertExpectations(t)
}

func TestService_Confirm_InsufficientStock(t *testing.T) {
	fabric := stockedFabric(t, 2)
	o := draftOrderWithItem(t, fabric.GetID(), 4)

	orderRepo := new(MockOrderRepository)
	fabricRepo := new(MockFabricRepository)
	svc := NewService(orderRepo, fabricRepo)

	orderRepo.On("FindByID", mock.Anything, o.GetID()).Return(o, nil)
	fabricRepo.On("FindByID", mock.Anything, fabric.GetID()).Return(fabric, nil)

	_, err := svc.Confirm(context.Background(), o.GetID())
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
	assert.Equal(t, order.StatusDraft, o.Status, "order stays draft when stock is short")
	orderRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestService_Cancel(t *testing.T) {
	fabric := stockedFabric(t, 10)
	o := draftOrderWithItem(t, fabric.GetID(), 4)

	orderRepo := new(MockOrderRepository)
	svc := NewService(orderRepo, new(MockFabricRepository))

	orderRepo.On("FindByID", mock.Anything, o.GetID()).Return(o, nil)
	orderRepo.On("SaveWithLock", mock.Anything, o).Return(nil)

	resp, err := svc.Cancel(context.Background(), o.GetID(), CancelOrderRequest{Reason: "customer withdrew"})
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, resp.Status)
	assert.Equal(t, "customer withdrew", resp.CancelReason)
}

func TestService_Delete_OnlyDraft(t *testing.T) {
	fabric := stockedFabric(t, 10)
	o := draftOrderWithItem(t, fabric.GetID(), 4)
	require.NoError(t, o.Confirm())

	orderRepo := new(MockOrderRepository)
	svc := NewService(orderRepo, new(MockFabricRepository))

	orderRepo.On("FindByID", mock.Anything, o.GetID()).Return(o, nil)

	err := svc.Delete(context.Background(), o.GetID())
	assert.Error(t, err)
	orderRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_GetByID_NotFound(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	svc := NewService(orderRepo, new(MockFabricRepository))

	orderRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
