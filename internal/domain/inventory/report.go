package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/huseyintonguc/DEPO/internal/domain/entity"
)

// FilterByDate returns the movements whose effective date falls inside
// [start, end], both bounds inclusive, compared on the date component only
// (kayit_zamani plays no role). An empty productCode means no product
// restriction. Ledger order is preserved; any display ordering is applied by
// the caller.
func FilterByDate(l Ledger, start, end time.Time, productCode string) Ledger {
	startDay := dateOnly(start)
	endDay := dateOnly(end)

	var out Ledger
	for _, m := range l {
		d := dateOnly(m.EffectiveDate)
		if d.Before(startDay) || d.After(endDay) {
			continue
		}
		if productCode != "" && m.ProductCode != productCode {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Summary are the totals of a (filtered) movement sequence.
type Summary struct {
	TotalIn  decimal.Decimal
	TotalOut decimal.Decimal
	Net      decimal.Decimal // TotalIn - TotalOut
}

// Totals sums the quantities of l by kind.
func Totals(l Ledger) Summary {
	s := Summary{TotalIn: decimal.Zero, TotalOut: decimal.Zero, Net: decimal.Zero}
	for _, m := range l {
		if m.Kind == entity.MovementIn {
			s.TotalIn = s.TotalIn.Add(m.Quantity)
		} else {
			s.TotalOut = s.TotalOut.Add(m.Quantity)
		}
	}
	s.Net = s.TotalIn.Sub(s.TotalOut)
	return s
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
