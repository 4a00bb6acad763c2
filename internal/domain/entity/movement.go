package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/huseyintonguc/DEPO/internal/domain"
)

// Movement kinds. The literals are the islem_turu values written to the
// shared workbook; existing spreadsheets depend on them, so they stay Turkish.
const (
	MovementIn  MovementKind = "Giriş"
	MovementOut MovementKind = "Çıkış"
)

// MovementKind is a two-variant tag for stock direction.
type MovementKind string

// Sign returns +1 for Giriş and -1 for Çıkış.
func (k MovementKind) Sign() decimal.Decimal {
	if k == MovementOut {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// Valid reports whether k is one of the two known kinds.
func (k MovementKind) Valid() bool {
	return k == MovementIn || k == MovementOut
}

func (k MovementKind) String() string { return string(k) }

// Turkish case folding: ASCII lowering maps "GİRİŞ" to "gİrİş", so the
// dotted-İ rules of language.Turkish are required here.
var kindFolder = cases.Lower(language.Turkish)

// ParseMovementKind maps a raw islem_turu cell to a MovementKind. Matching is
// exact after trimming and Turkish-aware lowering; anything else is a
// malformed row, never a silent default.
func ParseMovementKind(raw string) (MovementKind, error) {
	switch kindFolder.String(strings.TrimSpace(raw)) {
	case "giriş":
		return MovementIn, nil
	case "çıkış":
		return MovementOut, nil
	}
	return "", fmt.Errorf("%w: islem_turu %q", domain.ErrInvalidKind, raw)
}

// Movement is one stock-in or stock-out event against a catalog product.
// Movements are append-only: once recorded they are never edited or deleted.
type Movement struct {
	ID            string          // assigned at record time; not part of the sheet format
	ProductCode   string          // urun_kodu
	ProductName   string          // urun_adi, denormalized at write time
	Kind          MovementKind    // islem_turu
	Quantity      decimal.Decimal // miktar, always >= 0; direction comes from Kind
	Unit          string          // birim
	Note          string          // aciklama
	EffectiveDate time.Time       // tarih, date precision
	RecordedAt    time.Time       // kayit_zamani, minute precision
}

// SignedQuantity is Quantity with the kind's sign applied.
func (m Movement) SignedQuantity() decimal.Decimal {
	return m.Quantity.Mul(m.Kind.Sign())
}
