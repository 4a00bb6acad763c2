// Package export serializes already-computed report data into downloadable
// files (xlsx, csv, pdf). Pure rendering: filtering and totals happen in the
// report use case before anything reaches this package.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/huseyintonguc/DEPO/internal/domain/entity"
)

const reportSheet = "rapor"

var (
	movementColumns = []string{"tarih", "kayit_zamani", "islem_turu", "urun_kodu", "urun_adi", "miktar", "birim", "aciklama"}
	stockColumns    = []string{"urun_kodu", "urun_adi", "birim", "net_miktar"}
)

// MovementsXLSX renders a movement sequence as a single-sheet workbook; this
// backs the report page's download button.
func MovementsXLSX(movements []entity.Movement) ([]byte, error) {
	rows := make([][]any, 0, len(movements))
	for _, m := range movements {
		rows = append(rows, []any{
			m.EffectiveDate.Format("2006-01-02"),
			m.RecordedAt.Format("2006-01-02 15:04"),
			m.Kind.String(),
			m.ProductCode,
			m.ProductName,
			m.Quantity.String(),
			m.Unit,
			m.Note,
		})
	}
	return singleSheet(movementColumns, rows)
}

// StockXLSX renders the net-stock view as a single-sheet workbook.
func StockXLSX(levels []entity.StockLevel) ([]byte, error) {
	rows := make([][]any, 0, len(levels))
	for _, lv := range levels {
		rows = append(rows, []any{lv.ProductCode, lv.ProductName, lv.Unit, lv.NetQuantity.String()})
	}
	return singleSheet(stockColumns, rows)
}

func singleSheet(header []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(reportSheet, "A1", &headerCells); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(reportSheet, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
