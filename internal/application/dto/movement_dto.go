package dto

import (
	"github.com/shopspring/decimal"

	"github.com/huseyintonguc/DEPO/internal/domain/entity"
)

// JSON field names follow the workbook columns (urun_kodu, islem_turu, ...);
// the UI posts the same vocabulary the sheets store.

// RecordMovementRequest is the body of POST /api/movements.
type RecordMovementRequest struct {
	ProductCode   string          `json:"urun_kodu" validate:"required,max=100"`
	Kind          string          `json:"islem_turu" validate:"required"`
	Quantity      decimal.Decimal `json:"miktar"`
	Unit          string          `json:"birim" validate:"required,max=50"`
	Note          string          `json:"aciklama" validate:"max=500"`
	EffectiveDate string          `json:"tarih" validate:"omitempty,datetime=2006-01-02"` // empty = today
}

// MovementResponse is one movement in API responses.
type MovementResponse struct {
	ID            string          `json:"id"`
	ProductCode   string          `json:"urun_kodu"`
	ProductName   string          `json:"urun_adi"`
	Kind          string          `json:"islem_turu"`
	Quantity      decimal.Decimal `json:"miktar"`
	Unit          string          `json:"birim"`
	Note          string          `json:"aciklama,omitempty"`
	EffectiveDate string          `json:"tarih"`         // 2006-01-02
	RecordedAt    string          `json:"kayit_zamani"`  // 2006-01-02 15:04
	Synced        bool            `json:"synced"`        // false only on a diverged record
}

// NewMovementResponse maps an entity to its API shape.
func NewMovementResponse(m entity.Movement, synced bool) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		ProductCode:   m.ProductCode,
		ProductName:   m.ProductName,
		Kind:          m.Kind.String(),
		Quantity:      m.Quantity,
		Unit:          m.Unit,
		Note:          m.Note,
		EffectiveDate: m.EffectiveDate.Format("2006-01-02"),
		RecordedAt:    m.RecordedAt.Format("2006-01-02 15:04"),
		Synced:        synced,
	}
}

// NewMovementResponses maps a slice of movements.
func NewMovementResponses(ms []entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewMovementResponse(m, true))
	}
	return out
}

// MovementListResponse is the body of GET /api/movements.
type MovementListResponse struct {
	Items    []MovementResponse `json:"items"`
	Warnings *LoadWarnings      `json:"warnings,omitempty"`
}

// ProductResponse is one catalog row.
type ProductResponse struct {
	Code string `json:"urun_kodu"`
	Name string `json:"urun_adi"`
}
