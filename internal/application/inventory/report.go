package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/huseyintonguc/DEPO/internal/domain/entity"
	dominv "github.com/huseyintonguc/DEPO/internal/domain/inventory"
)

// ReportUseCase serves the read side: filtered movement reports, the recent
// tail of the ledger and the net-stock view. Pure queries, nothing persisted.
type ReportUseCase struct {
	store TableStore
}

// NewReportUseCase builds the use case.
func NewReportUseCase(store TableStore) *ReportUseCase {
	return &ReportUseCase{store: store}
}

// MovementReport is a filtered movement view plus its totals and whatever
// the load had to skip or coerce.
type MovementReport struct {
	Movements []entity.Movement
	Summary   dominv.Summary
	Load      *LoadReport
}

// Movements returns the movements with effective date in [start, end]
// (inclusive), optionally restricted to one product code, newest first.
func (uc *ReportUseCase) Movements(ctx context.Context, start, end time.Time, productCode string) (*MovementReport, error) {
	ledger, load, err := uc.store.LoadMovements(ctx)
	if err != nil {
		return nil, err
	}
	filtered := dominv.FilterByDate(ledger, start, end, productCode)
	summary := dominv.Totals(filtered)
	return &MovementReport{
		Movements: sortForDisplay(filtered),
		Summary:   summary,
		Load:      load,
	}, nil
}

// Recent returns the newest movements of the whole ledger, at most limit
// (0 = all). Backs the "son hareketler" list under the entry form.
func (uc *ReportUseCase) Recent(ctx context.Context, limit int) ([]entity.Movement, *LoadReport, error) {
	ledger, load, err := uc.store.LoadMovements(ctx)
	if err != nil {
		return nil, nil, err
	}
	movements := sortForDisplay(ledger)
	if limit > 0 && len(movements) > limit {
		movements = movements[:limit]
	}
	return movements, load, nil
}

// StockLevels returns the net-stock view derived from the ledger. With
// includeCatalog, products without any movement are appended as zero rows
// (the union against the catalog lives here, not in the aggregator).
func (uc *ReportUseCase) StockLevels(ctx context.Context, includeCatalog bool) ([]entity.StockLevel, error) {
	ledger, _, err := uc.store.LoadMovements(ctx)
	if err != nil {
		return nil, err
	}
	levels := dominv.StockLevels(ledger)
	if !includeCatalog {
		return levels, nil
	}

	products, err := uc.store.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	moved := make(map[string]bool, len(levels))
	for _, lv := range levels {
		moved[lv.ProductCode] = true
	}
	for _, p := range products {
		if moved[p.Code] {
			continue
		}
		levels = append(levels, entity.StockLevel{
			ProductCode: p.Code,
			ProductName: p.Name,
			NetQuantity: decimal.Zero,
		})
	}
	return levels, nil
}

// sortForDisplay orders newest first by (effective date, recorded at). This
// is presentation only; the ledger itself keeps insertion order.
func sortForDisplay(l dominv.Ledger) []entity.Movement {
	out := make([]entity.Movement, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].EffectiveDate.Equal(out[j].EffectiveDate) {
			return out[i].EffectiveDate.After(out[j].EffectiveDate)
		}
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	return out
}
