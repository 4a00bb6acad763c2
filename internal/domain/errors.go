package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Domain errors (no dependencies beyond the decimal payloads).
var (
	ErrUnknownProduct    = errors.New("product not in catalog")
	ErrInvalidQuantity   = errors.New("quantity must not be negative")
	ErrInvalidKind       = errors.New("unrecognized movement kind")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrRemoteUnavailable = errors.New("remote table store unavailable")
	ErrMalformedRow      = errors.New("malformed table row")
)

// InsufficientStockError is returned when a withdrawal asks for more than the
// current net stock of the product. Available is the pre-append net quantity,
// so the caller can tell the user how much is actually left.
type InsufficientStockError struct {
	ProductCode string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %s, available %s",
		e.ProductCode, e.Requested.String(), e.Available.String())
}

// Unwrap lets errors.Is(err, ErrInsufficientStock) match.
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
