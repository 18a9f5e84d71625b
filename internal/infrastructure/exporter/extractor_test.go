package exporter

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier/backend/internal/domain/export"
	"github.com/atelier/backend/internal/domain/inventory"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
)

type fakeFabricRepo struct {
	fabrics []inventory.Fabric
}

func (r *fakeFabricRepo) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Fabric, error) {
	for i := range r.fabrics {
		if r.fabrics[i].GetID() == id {
			return &r.fabrics[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeFabricRepo) FindBySKU(ctx context.Context, sku string) (*inventory.Fabric, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeFabricRepo) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Fabric, error) {
	if filter.Page > 1 {
		return nil, nil
	}
	return r.fabrics, nil
}

func (r *fakeFabricRepo) FindLowStock(ctx context.Context) ([]inventory.Fabric, error) {
	return nil, nil
}

func (r *fakeFabricRepo) Save(ctx context.Context, f *inventory.Fabric) error         { return nil }
func (r *fakeFabricRepo) SaveWithLock(ctx context.Context, f *inventory.Fabric) error { return nil }
func (r *fakeFabricRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }

func (r *fakeFabricRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.fabrics)), nil
}

type fakeMovementRepo struct {
	movements []inventory.Movement
}

func (r *fakeMovementRepo) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Movement, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeMovementRepo) FindByFabric(ctx context.Context, fabricID uuid.UUID, filter shared.Filter) ([]inventory.Movement, error) {
	if filter.Page > 1 {
		return nil, nil
	}
	var out []inventory.Movement
	for _, m := range r.movements {
		if m.FabricID == fabricID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) Save(ctx context.Context, m *inventory.Movement) error { return nil }

func (r *fakeMovementRepo) CountByFabric(ctx context.Context, fabricID uuid.UUID) (int64, error) {
	return 0, nil
}

func newExtractorFabric(t *testing.T, sku, name string, createdAt time.Time) inventory.Fabric {
	t.Helper()
	f, err := inventory.NewFabric(sku, name, "100% wool", "Charcoal",
		decimal.NewFromInt(150), valueobject.NewMoneyUSD(decimal.NewFromInt(42)))
	require.NoError(t, err)
	f.ClearDomainEvents()
	f.CreatedAt = createdAt
	return *f
}

func TestDatasetExtractor_Fabrics(t *testing.T) {
	now := time.Now()
	fabrics := &fakeFabricRepo{fabrics: []inventory.Fabric{
		newExtractorFabric(t, "WOOL-120-CHR", "Super 120s Wool", now),
		newExtractorFabric(t, "LIN-090-NAT", "Natural Linen", now),
	}}
	extractor := NewDatasetExtractor(nil, nil, nil, fabrics, &fakeMovementRepo{}, nil, nil, nil)

	job, err := export.NewJob(export.DatasetFabrics, export.FormatCSV, uuid.New())
	require.NoError(t, err)

	table, err := extractor.Extract(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"sku", "name", "composition", "color", "width_cm",
		"unit_cost", "currency", "quantity_m", "reorder_level",
		"supplier_name", "location", "active",
	}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "WOOL-120-CHR", table.Rows[0][0])
	assert.Equal(t, "42.00", table.Rows[0][5])
	assert.Equal(t, "USD", table.Rows[0][6])
	assert.Equal(t, "true", table.Rows[0][11])
}

func TestDatasetExtractor_FabricsPeriodFilter(t *testing.T) {
	now := time.Now()
	fabrics := &fakeFabricRepo{fabrics: []inventory.Fabric{
		newExtractorFabric(t, "OLD-001", "Old Stock", now.Add(-90*24*time.Hour)),
		newExtractorFabric(t, "NEW-001", "New Stock", now),
	}}
	extractor := NewDatasetExtractor(nil, nil, nil, fabrics, &fakeMovementRepo{}, nil, nil, nil)

	job, err := export.NewJob(export.DatasetFabrics, export.FormatCSV, uuid.New())
	require.NoError(t, err)
	require.NoError(t, job.SetPeriod(now.Add(-24*time.Hour), now.Add(24*time.Hour)))

	table, err := extractor.Extract(context.Background(), job)
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "NEW-001", table.Rows[0][0])
}

func TestDatasetExtractor_MovementsWalkFabrics(t *testing.T) {
	now := time.Now()
	wool := newExtractorFabric(t, "WOOL-120-CHR", "Super 120s Wool", now)
	linen := newExtractorFabric(t, "LIN-090-NAT", "Natural Linen", now)

	receipt, err := inventory.NewMovement(wool.GetID(), inventory.MovementReceipt,
		decimal.NewFromInt(50), "PO-2026-014", "", uuid.New())
	require.NoError(t, err)
	issue, err := inventory.NewMovement(linen.GetID(), inventory.MovementIssue,
		decimal.NewFromInt(3), "ORD-2026-0031", "jacket lining", uuid.New())
	require.NoError(t, err)

	extractor := NewDatasetExtractor(nil, nil, nil,
		&fakeFabricRepo{fabrics: []inventory.Fabric{wool, linen}},
		&fakeMovementRepo{movements: []inventory.Movement{*receipt, *issue}},
		nil, nil, nil)

	job, err := export.NewJob(export.DatasetMovements, export.FormatCSV, uuid.New())
	require.NoError(t, err)

	table, err := extractor.Extract(context.Background(), job)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "WOOL-120-CHR", table.Rows[0][0])
	assert.Equal(t, string(inventory.MovementReceipt), table.Rows[0][1])
	assert.Equal(t, "LIN-090-NAT", table.Rows[1][0])
	assert.Equal(t, "ORD-2026-0031", table.Rows[1][3])
}

func TestDatasetExtractor_UnknownDataset(t *testing.T) {
	extractor := NewDatasetExtractor(nil, nil, nil, nil, nil, nil, nil, nil)

	job := &export.Job{Dataset: export.Dataset("SECRETS"), Format: export.FormatCSV}
	_, err := extractor.Extract(context.Background(), job)

	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_DATASET", derr.Code)
}
