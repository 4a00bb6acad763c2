package entity

// Product is one row of the urunler sheet: a catalog entry keyed by code.
// The catalog is read-only for this service; it is maintained directly in
// the shared workbook (or seeded with cmd/seed) and reloaded on every action.
type Product struct {
	Code string // urun_kodu, unique
	Name string // urun_adi
}
