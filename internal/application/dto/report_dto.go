package dto

import (
	"github.com/shopspring/decimal"

	"github.com/huseyintonguc/DEPO/internal/domain/entity"
	dominv "github.com/huseyintonguc/DEPO/internal/domain/inventory"
)

// ReportQuery are the query parameters of GET /api/reports/movements.
type ReportQuery struct {
	Start       string `query:"baslangic" validate:"required,datetime=2006-01-02"`
	End         string `query:"bitis" validate:"required,datetime=2006-01-02"`
	ProductCode string `query:"urun_kodu"`
}

// SummaryResponse are the totals of a filtered report.
type SummaryResponse struct {
	TotalIn  decimal.Decimal `json:"toplam_giris"`
	TotalOut decimal.Decimal `json:"toplam_cikis"`
	Net      decimal.Decimal `json:"net"`
}

// NewSummaryResponse maps domain totals.
func NewSummaryResponse(s dominv.Summary) SummaryResponse {
	return SummaryResponse{TotalIn: s.TotalIn, TotalOut: s.TotalOut, Net: s.Net}
}

// MovementReportResponse is the body of GET /api/reports/movements.
type MovementReportResponse struct {
	Items    []MovementResponse `json:"items"`
	Summary  SummaryResponse    `json:"summary"`
	Warnings *LoadWarnings      `json:"warnings,omitempty"`
}

// StockLevelResponse is one row of the net-stock view.
type StockLevelResponse struct {
	ProductCode string          `json:"urun_kodu"`
	ProductName string          `json:"urun_adi"`
	Unit        string          `json:"birim,omitempty"`
	NetQuantity decimal.Decimal `json:"net_miktar"`
}

// NewStockLevelResponses maps derived stock levels.
func NewStockLevelResponses(levels []entity.StockLevel) []StockLevelResponse {
	out := make([]StockLevelResponse, 0, len(levels))
	for _, lv := range levels {
		out = append(out, StockLevelResponse{
			ProductCode: lv.ProductCode,
			ProductName: lv.ProductName,
			Unit:        lv.Unit,
			NetQuantity: lv.NetQuantity,
		})
	}
	return out
}
