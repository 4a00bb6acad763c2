// Package inventory contains the application use cases around the movement
// ledger: recording, reporting and exporting. Persistence sits behind the
// TableStore port; implementations live under internal/infrastructure.
package inventory

import (
	"context"
	"fmt"

	"github.com/huseyintonguc/DEPO/internal/domain/entity"
	dominv "github.com/huseyintonguc/DEPO/internal/domain/inventory"
)

// RowIssue describes one table row that could not be used as-is during a load.
type RowIssue struct {
	Table  string `json:"table"`
	Row    int    `json:"row"` // 1-based, header included, as a user sees it
	Reason string `json:"reason"`
}

// LoadReport accounts for rows that were skipped or coerced while loading a
// table. Loads never abort on bad rows; instead the damage is counted here so
// callers can surface it instead of silently discarding data.
type LoadReport struct {
	Skipped []RowIssue
	Coerced []RowIssue
}

// Clean reports whether the load used every row untouched.
func (r *LoadReport) Clean() bool {
	return r == nil || (len(r.Skipped) == 0 && len(r.Coerced) == 0)
}

// TableStore is the port to the remote table store holding the product and
// movement tables. Load tolerates an absent table by returning empty data;
// Replace rewrites the whole table (no incremental upsert). The store is the
// system of record across sessions; last writer wins.
type TableStore interface {
	LoadProducts(ctx context.Context) ([]entity.Product, error)
	LoadMovements(ctx context.Context) (dominv.Ledger, *LoadReport, error)
	ReplaceMovements(ctx context.Context, l dominv.Ledger) error

	// ReplaceProducts is tooling-only (cmd/seed); the service itself never
	// mutates the catalog.
	ReplaceProducts(ctx context.Context, products []entity.Product) error
}

// DivergedError reports a persist failure after the movement was already
// appended locally: the in-memory ledger now differs from the remote store
// until a retry succeeds or the next load discards the unsynced append.
// The built movement rides along so nothing is lost to the caller.
type DivergedError struct {
	Movement entity.Movement
	Cause    error
}

func (e *DivergedError) Error() string {
	return fmt.Sprintf("movement %s recorded locally but not persisted: %v", e.Movement.ID, e.Cause)
}

func (e *DivergedError) Unwrap() error { return e.Cause }
