package inventory

import (
	"context"

	"github.com/huseyintonguc/DEPO/internal/domain/entity"
)

// CatalogUseCase exposes the read-only product catalog.
type CatalogUseCase struct {
	store TableStore
}

// NewCatalogUseCase builds the use case.
func NewCatalogUseCase(store TableStore) *CatalogUseCase {
	return &CatalogUseCase{store: store}
}

// List returns the catalog as stored, in sheet order.
func (uc *CatalogUseCase) List(ctx context.Context) ([]entity.Product, error) {
	return uc.store.LoadProducts(ctx)
}
