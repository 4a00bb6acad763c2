package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/huseyintonguc/DEPO/internal/domain/entity"
)

// LevelKey identifies one aggregation bucket. Name and unit are part of the
// key because they are denormalized into each movement: if a product was ever
// recorded under two units, both buckets are reported rather than mixed.
type LevelKey struct {
	ProductCode string
	ProductName string
	Unit        string
}

// NetStock folds the ledger into signed net quantities per bucket
// (+quantity for Giriş, -quantity for Çıkış). The result is independent of
// insertion order. Products without any movements do not appear; joining in
// the full catalog with zero rows is the caller's concern.
func NetStock(l Ledger) map[LevelKey]decimal.Decimal {
	net := make(map[LevelKey]decimal.Decimal, len(l))
	for _, m := range l {
		k := LevelKey{ProductCode: m.ProductCode, ProductName: m.ProductName, Unit: m.Unit}
		net[k] = net[k].Add(m.SignedQuantity())
	}
	return net
}

// NetOf returns the net stock of a single product across all of its buckets.
// This is what the sufficiency check compares a withdrawal against.
func NetOf(l Ledger, productCode string) decimal.Decimal {
	net := decimal.Zero
	for _, m := range l {
		if m.ProductCode == productCode {
			net = net.Add(m.SignedQuantity())
		}
	}
	return net
}

// StockLevels returns the aggregation as a slice, one StockLevel per bucket,
// in first-seen ledger order.
func StockLevels(l Ledger) []entity.StockLevel {
	net := NetStock(l)
	seen := make(map[LevelKey]bool, len(net))
	levels := make([]entity.StockLevel, 0, len(net))
	for _, m := range l {
		k := LevelKey{ProductCode: m.ProductCode, ProductName: m.ProductName, Unit: m.Unit}
		if seen[k] {
			continue
		}
		seen[k] = true
		levels = append(levels, entity.StockLevel{
			ProductCode: k.ProductCode,
			ProductName: k.ProductName,
			Unit:        k.Unit,
			NetQuantity: net[k],
		})
	}
	return levels
}
