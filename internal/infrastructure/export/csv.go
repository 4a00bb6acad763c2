package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/huseyintonguc/DEPO/internal/domain/entity"
)

// MovementsCSV renders a movement sequence as CSV with the workbook column
// names as header.
func MovementsCSV(movements []entity.Movement) ([]byte, error) {
	records := make([][]string, 0, len(movements)+1)
	records = append(records, movementColumns)
	for _, m := range movements {
		records = append(records, []string{
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
	return writeCSV(records)
}

// StockCSV renders the net-stock view as CSV.
func StockCSV(levels []entity.StockLevel) ([]byte, error) {
	records := make([][]string, 0, len(levels)+1)
	records = append(records, stockColumns)
	for _, lv := range levels {
		records = append(records, []string{lv.ProductCode, lv.ProductName, lv.Unit, lv.NetQuantity.String()})
	}
	return writeCSV(records)
}

func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
