package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/atelier/backend/internal/domain/billing"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InvoiceModelSQLite is a SQLite-compatible version of InvoiceModel for testing
type InvoiceModelSQLite struct {
	ID            string `gorm:"primaryKey"`
	Version       int    `gorm:"not null;default:1"`
	InvoiceNumber string `gorm:"uniqueIndex;not null"`
	OrderID       string `gorm:"index;not null"`
	CustomerName  string `gorm:"not null"`
	Subtotal      decimal.Decimal `gorm:"type:numeric"`
	TaxRate       decimal.Decimal `gorm:"type:numeric"`
	TaxAmount     decimal.Decimal `gorm:"type:numeric"`
	Total         decimal.Decimal `gorm:"type:numeric"`
	PaidAmount    decimal.Decimal `gorm:"type:numeric"`
	Status        string          `gorm:"not null"`
	IssuedAt      *time.Time
	DueDate       *time.Time
	VoidedAt      *time.Time
	VoidReason    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (InvoiceModelSQLite) TableName() string {
	return "invoices"
}

// InvoiceLineModelSQLite is a SQLite-compatible version of InvoiceLineModel for testing
type InvoiceLineModelSQLite struct {
	ID          string `gorm:"primaryKey"`
	InvoiceID   string `gorm:"index;not null"`
	Description string `gorm:"not null"`
	Quantity    int
	UnitPrice   decimal.Decimal `gorm:"type:numeric"`
	Amount      decimal.Decimal `gorm:"type:numeric"`
}

func (InvoiceLineModelSQLite) TableName() string {
	return "invoice_lines"
}

func setupInvoiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&InvoiceModelSQLite{}, &InvoiceLineModelSQLite{})
	require.NoError(t, err)

	return db
}

func newPersistedInvoice(t *testing.T, invoiceNumber string) *billing.Invoice {
	inv, err := billing.NewInvoice(invoiceNumber, uuid.New(), "Elena Conti", decimal.NewFromFloat(0.0875))
	require.NoError(t, err)

	line, err := billing.NewInvoiceLine(inv.GetID(), "Bespoke two-piece suit", 1,
		valueobject.NewMoneyUSD(decimal.NewFromInt(1800)))
	require.NoError(t, err)
	require.NoError(t, inv.AddLine(line))

	inv.ClearDomainEvents()
	return inv
}

func TestGormInvoiceRepository_SaveAndFind(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	inv := newPersistedInvoice(t, "INV-20260801-0001")
	require.NoError(t, repo.Save(ctx, inv))

	found, err := repo.FindByID(ctx, inv.GetID())
	require.NoError(t, err)
	assert.Equal(t, "INV-20260801-0001", found.InvoiceNumber)
	assert.Equal(t, billing.InvoiceStatusDraft, found.Status)
	require.Len(t, found.Lines, 1)
	assert.True(t, found.Subtotal.Equal(decimal.NewFromInt(1800)))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.Equal(t, shared.ErrNotFound, err)
}

// A reloaded invoice must survive issue and payment transitions followed by
// optimistic saves without a phantom version conflict.
func TestGormInvoiceRepository_SaveWithLockRoundTrip(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	inv := newPersistedInvoice(t, "INV-20260801-0002")
	require.NoError(t, repo.Save(ctx, inv))

	loaded, err := repo.FindByID(ctx, inv.GetID())
	require.NoError(t, err)
	require.NoError(t, loaded.Issue(time.Now().AddDate(0, 0, 14)))
	loaded.ClearDomainEvents()

	require.NoError(t, repo.SaveWithLock(ctx, loaded))
	assert.Equal(t, 2, loaded.Version)

	found, err := repo.FindByID(ctx, loaded.GetID())
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusIssued, found.Status)
	require.NotNil(t, found.IssuedAt)
	assert.Equal(t, 2, found.Version)

	require.NoError(t, found.ApplyPayment(valueobject.NewMoneyUSD(decimal.NewFromInt(500))))
	found.ClearDomainEvents()
	require.NoError(t, repo.SaveWithLock(ctx, found))

	paid, err := repo.FindByID(ctx, found.GetID())
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusPartiallyPaid, paid.Status)
	assert.True(t, paid.PaidAmount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 3, paid.Version)
}

func TestGormInvoiceRepository_SaveWithLockRejectsStale(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	inv := newPersistedInvoice(t, "INV-20260801-0003")
	require.NoError(t, repo.Save(ctx, inv))

	first, err := repo.FindByID(ctx, inv.GetID())
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, inv.GetID())
	require.NoError(t, err)

	require.NoError(t, first.Issue(time.Now().AddDate(0, 0, 14)))
	first.ClearDomainEvents()
	require.NoError(t, repo.SaveWithLock(ctx, first))

	require.NoError(t, second.Void("duplicate invoice"))
	second.ClearDomainEvents()
	err = repo.SaveWithLock(ctx, second)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONCURRENT_MODIFICATION", domainErr.Code)
}
