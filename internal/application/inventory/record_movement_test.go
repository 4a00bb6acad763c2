package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/huseyintonguc/DEPO/internal/application/inventory"
	"github.com/huseyintonguc/DEPO/internal/domain"
	"github.com/huseyintonguc/DEPO/internal/domain/entity"
	dominv "github.com/huseyintonguc/DEPO/internal/domain/inventory"
)

// fakeStore is an in-memory TableStore for use-case tests.
type fakeStore struct {
	products []entity.Product
	ledger   dominv.Ledger
	load     *appinv.LoadReport

	loadErr error
	saveErr error
	saves   int
}

func (s *fakeStore) LoadProducts(context.Context) ([]entity.Product, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.products, nil
}

func (s *fakeStore) LoadMovements(context.Context) (dominv.Ledger, *appinv.LoadReport, error) {
	if s.loadErr != nil {
		return nil, nil, s.loadErr
	}
	return s.ledger, s.load, nil
}

func (s *fakeStore) ReplaceMovements(_ context.Context, l dominv.Ledger) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.ledger = l
	return nil
}

func (s *fakeStore) ReplaceProducts(_ context.Context, products []entity.Product) error {
	s.products = products
	return nil
}

var testClock = func() time.Time {
	return time.Date(2024, 3, 10, 14, 30, 45, 123, time.UTC)
}

func newRecorder(store *fakeStore) *appinv.RecordMovementUseCase {
	return appinv.NewRecordMovementUseCase(store, time.UTC).WithClock(testClock)
}

func catalogP1() []entity.Product {
	return []entity.Product{{Code: "P1", Name: "Çelik Vida M8"}}
}

func inMovement(code string, qty int64) entity.Movement {
	return entity.Movement{
		ProductCode: code, ProductName: "Çelik Vida M8",
		Kind: entity.MovementIn, Quantity: decimal.NewFromInt(qty), Unit: "adet",
		EffectiveDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		RecordedAt:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestRecord_StampsAndPersists(t *testing.T) {
	store := &fakeStore{products: catalogP1()}
	uc := newRecorder(store)

	got, err := uc.Record(context.Background(), appinv.RecordMovementInput{
		ProductCode: "P1",
		Kind:        entity.MovementIn,
		Quantity:    decimal.NewFromInt(10),
		Unit:        "adet",
		Note:        "ilk parti",
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Çelik Vida M8", got.ProductName, "name denormalized from the catalog")
	assert.Equal(t, "2024-03-10 14:30", got.RecordedAt.Format("2006-01-02 15:04"))
	assert.Zero(t, got.RecordedAt.Second(), "seconds truncated, minute precision")
	assert.Equal(t, "2024-03-10", got.EffectiveDate.Format("2006-01-02"), "defaults to today")

	assert.Equal(t, 1, store.saves)
	require.Len(t, store.ledger, 1)
	assert.Equal(t, got.ID, store.ledger[0].ID)
}

func TestRecord_UnknownProduct(t *testing.T) {
	store := &fakeStore{products: catalogP1()}
	uc := newRecorder(store)

	_, err := uc.Record(context.Background(), appinv.RecordMovementInput{
		ProductCode: "YOK",
		Kind:        entity.MovementIn,
		Quantity:    decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
	assert.Zero(t, store.saves, "rejected requests must not persist anything")
}

func TestRecord_NegativeQuantityRejected_ZeroAccepted(t *testing.T) {
	store := &fakeStore{products: catalogP1()}
	uc := newRecorder(store)

	_, err := uc.Record(context.Background(), appinv.RecordMovementInput{
		ProductCode: "P1",
		Kind:        entity.MovementIn,
		Quantity:    decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	// Quantity 0 is a boundary the entry form allows; it stays allowed.
	_, err = uc.Record(context.Background(), appinv.RecordMovementInput{
		ProductCode: "P1",
		Kind:        entity.MovementIn,
		Quantity:    decimal.Zero,
	})
	assert.NoError(t, err)
}

func TestRecord_UnknownKindRejected(t *testing.T) {
	store := &fakeStore{products: catalogP1()}
	uc := newRecorder(store)

	_, err := uc.Record(context.Background(), appinv.RecordMovementInput{
		ProductCode: "P1",
		Kind:        entity.MovementKind("Transfer"),
		Quantity:    decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidKind)
}

// Scenario from the stock rules: [In 10, Out 4] -> net 6; Out 6 succeeds
// and drives net to exactly 0; a further Out 1 is rejected with available 0.
func TestRecord_SufficiencyBoundary(t *testing.T) {
	store := &fakeStore{
		products: catalogP1(),
		ledger: dominv.Ledger{
			inMovement("P1", 10),
			withKind(inMovement("P1", 4), entity.MovementOut),
		},
	}
	uc := newRecorder(store)

	_, err := uc.Record(context.Background(), appinv.RecordMovementInput{
		ProductCode: "P1",
		Kind:        entity.MovementOut,
		Quantity:    decimal.NewFromInt(6),
		Unit:        "adet",
	})
	require.NoError(t, err, "withdrawal equal to net stock must succeed")
	assert.True(t, dominv.NetOf(store.ledger, "P1").IsZero())

	_, err = uc.Record(context.Background(), appinv.RecordMovementInput{
		ProductCode: "P1",
		Kind:        entity.MovementOut,
		Quantity:    decimal.NewFromInt(1),
		Unit:        "adet",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.IsZero())
	assert.Len(t, store.ledger, 3, "the rejected withdrawal must not be appended")
}

func TestRecord_InsufficientStockCarriesAvailable(t *testing.T) {
	store := &fakeStore{products: catalogP1(), ledger: dominv.Ledger{inMovement("P1", 3)}}
	uc := newRecorder(store)

	_, err := uc.Record(context.Background(), appinv.RecordMovementInput{
		ProductCode: "P1",
		Kind:        entity.MovementOut,
		Quantity:    decimal.NewFromInt(5),
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(decimal.NewFromInt(3)))
	assert.True(t, insufficient.Requested.Equal(decimal.NewFromInt(5)))
}

func TestRecord_PersistFailureDiverges(t *testing.T) {
	store := &fakeStore{products: catalogP1(), saveErr: errors.New("drive: 503")}
	uc := newRecorder(store)

	_, err := uc.Record(context.Background(), appinv.RecordMovementInput{
		ProductCode: "P1",
		Kind:        entity.MovementIn,
		Quantity:    decimal.NewFromInt(2),
		Unit:        "adet",
	})

	var diverged *appinv.DivergedError
	require.ErrorAs(t, err, &diverged)
	assert.Equal(t, "P1", diverged.Movement.ProductCode, "the unsynced movement must be observable")
	assert.EqualError(t, diverged.Cause, "drive: 503")
}

func TestRecord_ExplicitEffectiveDate(t *testing.T) {
	store := &fakeStore{products: catalogP1()}
	uc := newRecorder(store)

	got, err := uc.Record(context.Background(), appinv.RecordMovementInput{
		ProductCode:   "P1",
		Kind:          entity.MovementIn,
		Quantity:      decimal.NewFromInt(1),
		EffectiveDate: time.Date(2024, 2, 29, 17, 45, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got.EffectiveDate.Format("2006-01-02"), "time of day stripped")
}

func withKind(m entity.Movement, k entity.MovementKind) entity.Movement {
	m.Kind = k
	return m
}
