package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/huseyintonguc/DEPO/internal/domain"
	"github.com/huseyintonguc/DEPO/internal/domain/entity"
	dominv "github.com/huseyintonguc/DEPO/internal/domain/inventory"
)

// RecordMovementUseCase validates and records one stock movement:
// Validating -> CheckingStock -> Appending -> Persisting. Validation and
// sufficiency failures reject the request with no side effect; a persist
// failure after the local append surfaces as *DivergedError. Every call
// loads fresh state from the store, there is no process-wide ledger.
type RecordMovementUseCase struct {
	store TableStore
	loc   *time.Location
	now   func() time.Time
}

// NewRecordMovementUseCase builds the use case. loc is the time zone the
// kayit_zamani stamp is taken in (configurable, Europe/Istanbul by default).
func NewRecordMovementUseCase(store TableStore, loc *time.Location) *RecordMovementUseCase {
	return &RecordMovementUseCase{store: store, loc: loc, now: time.Now}
}

// WithClock replaces the time source. Test hook.
func (uc *RecordMovementUseCase) WithClock(now func() time.Time) *RecordMovementUseCase {
	uc.now = now
	return uc
}

// RecordMovementInput is the recorder's input. Quantity 0 is accepted (the
// entry form allows it as a boundary); negative is rejected.
type RecordMovementInput struct {
	ProductCode   string
	Kind          entity.MovementKind
	Quantity      decimal.Decimal
	Unit          string
	Note          string
	EffectiveDate time.Time // zero value = today
}

// Record runs one recording attempt and returns the committed movement.
// On *DivergedError the movement was built and appended locally but the
// remote write failed; the caller decides whether to retry.
func (uc *RecordMovementUseCase) Record(ctx context.Context, in RecordMovementInput) (*entity.Movement, error) {
	// Validating
	if !in.Kind.Valid() {
		return nil, domain.ErrInvalidKind
	}
	if in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}

	products, err := uc.store.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	var product *entity.Product
	for i := range products {
		if products[i].Code == in.ProductCode {
			product = &products[i]
			break
		}
	}
	if product == nil {
		return nil, domain.ErrUnknownProduct
	}

	ledger, _, err := uc.store.LoadMovements(ctx)
	if err != nil {
		return nil, err
	}

	// CheckingStock: a withdrawal may not drive net stock below zero. The
	// check runs against the ledger as it is before this append.
	if in.Kind == entity.MovementOut {
		available := dominv.NetOf(ledger, in.ProductCode)
		if in.Quantity.GreaterThan(available) {
			return nil, &domain.InsufficientStockError{
				ProductCode: in.ProductCode,
				Requested:   in.Quantity,
				Available:   available,
			}
		}
	}

	// Appending
	now := uc.now().In(uc.loc).Truncate(time.Minute)
	effective := in.EffectiveDate
	if effective.IsZero() {
		effective = now
	}
	y, mo, d := effective.Date()

	m := entity.Movement{
		ID:            uuid.NewString(),
		ProductCode:   product.Code,
		ProductName:   product.Name, // denormalized at write time
		Kind:          in.Kind,
		Quantity:      in.Quantity,
		Unit:          in.Unit,
		Note:          in.Note,
		EffectiveDate: time.Date(y, mo, d, 0, 0, 0, 0, uc.loc),
		RecordedAt:    now,
	}
	updated := ledger.Append(m)

	// Persisting: full-table replace, at most once, no automatic retry.
	if err := uc.store.ReplaceMovements(ctx, updated); err != nil {
		return nil, &DivergedError{Movement: m, Cause: err}
	}
	return &m, nil
}
