package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/huseyintonguc/DEPO/internal/application/inventory"
	"github.com/huseyintonguc/DEPO/internal/domain/entity"
	dominv "github.com/huseyintonguc/DEPO/internal/domain/inventory"
)

func reportLedger() dominv.Ledger {
	mk := func(code, name string, kind entity.MovementKind, qty float64, day string, hour int) entity.Movement {
		d, _ := time.Parse("2006-01-02", day)
		return entity.Movement{
			ProductCode: code, ProductName: name, Kind: kind,
			Quantity: decimal.NewFromFloat(qty), Unit: "adet",
			EffectiveDate: d,
			RecordedAt:    d.Add(time.Duration(hour) * time.Hour),
		}
	}
	return dominv.Ledger{
		mk("P1", "Vida", entity.MovementIn, 10, "2024-03-08", 9),
		mk("P2", "Somun", entity.MovementIn, 5, "2024-03-09", 10),
		mk("P1", "Vida", entity.MovementOut, 4, "2024-03-10", 11),
		mk("P1", "Vida", entity.MovementIn, 1, "2024-03-10", 16),
	}
}

func TestReportMovements_FilterTotalsAndOrder(t *testing.T) {
	store := &fakeStore{ledger: reportLedger()}
	uc := appinv.NewReportUseCase(store)

	start := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	report, err := uc.Movements(context.Background(), start, end, "")
	require.NoError(t, err)
	require.Len(t, report.Movements, 3)

	// Newest first: same effective date breaks the tie on recorded-at.
	assert.Equal(t, "2024-03-10 16:00", report.Movements[0].RecordedAt.Format("2006-01-02 15:04"))
	assert.Equal(t, "2024-03-10 11:00", report.Movements[1].RecordedAt.Format("2006-01-02 15:04"))
	assert.Equal(t, "2024-03-09 10:00", report.Movements[2].RecordedAt.Format("2006-01-02 15:04"))

	assert.True(t, report.Summary.TotalIn.Equal(decimal.NewFromInt(6)))
	assert.True(t, report.Summary.TotalOut.Equal(decimal.NewFromInt(4)))
	assert.True(t, report.Summary.Net.Equal(decimal.NewFromInt(2)))
}

func TestReportMovements_ProductFilter(t *testing.T) {
	store := &fakeStore{ledger: reportLedger()}
	uc := appinv.NewReportUseCase(store)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	report, err := uc.Movements(context.Background(), start, end, "P2")
	require.NoError(t, err)
	require.Len(t, report.Movements, 1)
	assert.Equal(t, "Somun", report.Movements[0].ProductName)
}

func TestReportMovements_SurfacesLoadReport(t *testing.T) {
	store := &fakeStore{
		ledger: reportLedger(),
		load: &appinv.LoadReport{
			Skipped: []appinv.RowIssue{{Table: "hareketler", Row: 7, Reason: "bad date"}},
		},
	}
	uc := appinv.NewReportUseCase(store)

	report, err := uc.Movements(context.Background(),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)
	require.NotNil(t, report.Load)
	assert.False(t, report.Load.Clean())
	assert.Len(t, report.Load.Skipped, 1)
}

func TestRecent_LimitsAndSorts(t *testing.T) {
	store := &fakeStore{ledger: reportLedger()}
	uc := appinv.NewReportUseCase(store)

	movements, _, err := uc.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, "2024-03-10 16:00", movements[0].RecordedAt.Format("2006-01-02 15:04"))
}

func TestStockLevels_LedgerOnly(t *testing.T) {
	store := &fakeStore{ledger: reportLedger(), products: []entity.Product{
		{Code: "P1", Name: "Vida"}, {Code: "P2", Name: "Somun"}, {Code: "P3", Name: "Pul"},
	}}
	uc := appinv.NewReportUseCase(store)

	levels, err := uc.StockLevels(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, levels, 2, "products without movements are absent from the ledger view")
}

// With the catalog union, unmoved products show up as explicit zero rows.
func TestStockLevels_CatalogUnion(t *testing.T) {
	store := &fakeStore{ledger: reportLedger(), products: []entity.Product{
		{Code: "P1", Name: "Vida"}, {Code: "P2", Name: "Somun"}, {Code: "P3", Name: "Pul"},
	}}
	uc := appinv.NewReportUseCase(store)

	levels, err := uc.StockLevels(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, levels, 3)

	last := levels[len(levels)-1]
	assert.Equal(t, "P3", last.ProductCode)
	assert.True(t, last.NetQuantity.IsZero())
}

func TestStockLevels_EmptyLedgerEmptyView(t *testing.T) {
	uc := appinv.NewReportUseCase(&fakeStore{})
	levels, err := uc.StockLevels(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, levels)
}
