// Package inventory holds the pure movement-ledger logic: appending,
// net-stock aggregation and date filtering. Everything here is side-effect
// free; loading and persisting live behind the application-layer TableStore
// port.
package inventory

import "github.com/huseyintonguc/DEPO/internal/domain/entity"

// Ledger is the ordered, append-only collection of all movements for one
// session. Order is significant for audit and display, not for aggregation.
type Ledger []entity.Movement

// Append returns a new ledger with m added at the end. The receiver is left
// untouched, so callers holding the old value keep a consistent view.
func (l Ledger) Append(m entity.Movement) Ledger {
	out := make(Ledger, len(l), len(l)+1)
	copy(out, l)
	return append(out, m)
}
