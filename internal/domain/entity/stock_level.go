package entity

import "github.com/shopspring/decimal"

// StockLevel is the derived net on-hand quantity for one
// (product code, product name, unit) combination observed in the ledger.
// It is recomputed from movements on every query and never stored.
type StockLevel struct {
	ProductCode string
	ProductName string
	Unit        string
	NetQuantity decimal.Decimal
}
