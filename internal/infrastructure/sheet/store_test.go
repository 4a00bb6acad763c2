package sheet_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huseyintonguc/DEPO/internal/domain/entity"
	dominv "github.com/huseyintonguc/DEPO/internal/domain/inventory"
	"github.com/huseyintonguc/DEPO/internal/infrastructure/sheet"
	"github.com/huseyintonguc/DEPO/pkg/logger"
)

func newFileStore(t *testing.T) *sheet.Store {
	t.Helper()
	blob := sheet.NewFileBlob(filepath.Join(t.TempDir(), "depo.xlsx"))
	return sheet.NewStore(blob, logger.New(logger.Config{Env: "development", Level: "error"}))
}

func TestStore_FreshStoreIsEmpty(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	products, err := store.LoadProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	ledger, report, err := store.LoadMovements(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledger)
	assert.True(t, report.Clean())
}

// persist(append(load(), m)) followed by load() reproduces the appended
// ledger: the round-trip property against the real workbook store.
func TestStore_PersistLoadRoundTrip(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceProducts(ctx, []entity.Product{{Code: "P1", Name: "Vida"}}))

	ledger, _, err := store.LoadMovements(ctx)
	require.NoError(t, err)

	m := entity.Movement{
		ProductCode: "P1", ProductName: "Vida",
		Kind: entity.MovementIn, Quantity: decimal.NewFromInt(10), Unit: "adet",
		EffectiveDate: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		RecordedAt:    time.Date(2024, 3, 8, 9, 15, 0, 0, time.UTC),
	}
	require.NoError(t, store.ReplaceMovements(ctx, ledger.Append(m)))

	reloaded, report, err := store.LoadMovements(ctx)
	require.NoError(t, err)
	assert.True(t, report.Clean())
	require.Len(t, reloaded, 1)
	assert.Equal(t, "P1", reloaded[0].ProductCode)
	assert.True(t, reloaded[0].Quantity.Equal(decimal.NewFromInt(10)))

	// The catalog survived the movement rewrite.
	products, err := store.LoadProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Vida", products[0].Name)
}

func TestStore_ReplaceKeepsLedgerOrder(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	var ledger dominv.Ledger
	for i, code := range []string{"A", "B", "C"} {
		ledger = ledger.Append(entity.Movement{
			ProductCode: code, ProductName: code,
			Kind: entity.MovementIn, Quantity: decimal.NewFromInt(int64(i + 1)), Unit: "adet",
			EffectiveDate: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
			RecordedAt:    time.Date(2024, 3, 8, 9, i, 0, 0, time.UTC),
		})
	}
	require.NoError(t, store.ReplaceMovements(ctx, ledger))

	reloaded, _, err := store.LoadMovements(ctx)
	require.NoError(t, err)
	require.Len(t, reloaded, 3)
	for i, code := range []string{"A", "B", "C"} {
		assert.Equal(t, code, reloaded[i].ProductCode, "insertion order preserved")
	}
}
