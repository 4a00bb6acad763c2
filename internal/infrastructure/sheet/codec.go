// Package sheet implements the spreadsheet-backed table store: a single
// xlsx workbook with an urunler sheet (product catalog) and a hareketler
// sheet (movement log), fetched and rewritten as a whole through a Blob
// transport. The column names and the Giriş/Çıkış literals are a wire
// contract with spreadsheets that predate this service.
package sheet

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	appinv "github.com/huseyintonguc/DEPO/internal/application/inventory"
	"github.com/huseyintonguc/DEPO/internal/domain/entity"
	dominv "github.com/huseyintonguc/DEPO/internal/domain/inventory"
)

// Workbook sheet names.
const (
	SheetProducts  = "urunler"
	SheetMovements = "hareketler"
)

var (
	productHeader  = []string{"urun_kodu", "urun_adi"}
	movementHeader = []string{"tarih", "kayit_zamani", "islem_turu", "urun_kodu", "urun_adi", "miktar", "birim", "aciklama"}
)

// Accepted cell layouts. v1-era workbooks wrote the full timestamp into
// tarih, so date cells may still carry a time component.
var (
	dateLayouts     = []string{"2006-01-02", "2006-01-02 15:04", "2006-01-02 15:04:05", "02.01.2006"}
	dateTimeLayouts = []string{"2006-01-02 15:04", "2006-01-02 15:04:05", "2006-01-02"}
)

// DecodeWorkbook parses an xlsx workbook into the catalog and the ledger.
// A nil/empty payload and missing sheets both yield empty tables, never an
// error. Malformed movement rows are skipped or coerced and accounted for in
// the returned LoadReport; a bad row never aborts the whole load.
func DecodeWorkbook(data []byte) ([]entity.Product, dominv.Ledger, *appinv.LoadReport, error) {
	report := &appinv.LoadReport{}
	if len(data) == 0 {
		return nil, nil, report, nil
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	products := decodeProducts(f, report)
	ledger := decodeMovements(f, report)
	return products, ledger, report, nil
}

func decodeProducts(f *excelize.File, report *appinv.LoadReport) []entity.Product {
	rows, err := f.GetRows(SheetProducts)
	if err != nil || len(rows) == 0 {
		return nil // absent sheet = empty catalog
	}
	cols := headerIndex(rows[0])

	var products []entity.Product
	for i, row := range rows[1:] {
		code := strings.TrimSpace(cell(row, cols, "urun_kodu"))
		name := strings.TrimSpace(cell(row, cols, "urun_adi"))
		if code == "" && name == "" {
			continue // trailing blank row
		}
		if code == "" {
			report.Skipped = append(report.Skipped, appinv.RowIssue{
				Table: SheetProducts, Row: i + 2, Reason: "empty urun_kodu",
			})
			continue
		}
		products = append(products, entity.Product{Code: code, Name: name})
	}
	return products
}

func decodeMovements(f *excelize.File, report *appinv.LoadReport) dominv.Ledger {
	rows, err := f.GetRows(SheetMovements)
	if err != nil || len(rows) == 0 {
		return nil // absent sheet = empty ledger
	}
	cols := headerIndex(rows[0])

	var ledger dominv.Ledger
	for i, row := range rows[1:] {
		rowNum := i + 2
		skip := func(reason string) {
			report.Skipped = append(report.Skipped, appinv.RowIssue{
				Table: SheetMovements, Row: rowNum, Reason: reason,
			})
		}

		if allBlank(row) {
			continue
		}

		kind, err := entity.ParseMovementKind(cell(row, cols, "islem_turu"))
		if err != nil {
			skip(fmt.Sprintf("islem_turu %q", cell(row, cols, "islem_turu")))
			continue
		}

		rawDate := strings.TrimSpace(cell(row, cols, "tarih"))
		effective, ok := parseAny(rawDate, dateLayouts)
		if !ok {
			skip(fmt.Sprintf("tarih %q", rawDate))
			continue
		}

		qty := decimal.Zero
		rawQty := strings.TrimSpace(cell(row, cols, "miktar"))
		if rawQty != "" {
			if parsed, err := decimal.NewFromString(rawQty); err == nil && !parsed.IsNegative() {
				qty = parsed
			} else {
				// Legacy sheets carry free-text quantities; coerce to zero
				// rather than fail the whole table, but count it.
				report.Coerced = append(report.Coerced, appinv.RowIssue{
					Table: SheetMovements, Row: rowNum,
					Reason: fmt.Sprintf("miktar %q coerced to 0", rawQty),
				})
			}
		}

		recorded, ok := parseAny(strings.TrimSpace(cell(row, cols, "kayit_zamani")), dateTimeLayouts)
		if !ok {
			// Pre-v3 rows have no kayit_zamani; fall back to the effective date.
			recorded = effective
		}

		ledger = append(ledger, entity.Movement{
			ProductCode:   strings.TrimSpace(cell(row, cols, "urun_kodu")),
			ProductName:   strings.TrimSpace(cell(row, cols, "urun_adi")),
			Kind:          kind,
			Quantity:      qty,
			Unit:          strings.TrimSpace(cell(row, cols, "birim")),
			Note:          strings.TrimSpace(cell(row, cols, "aciklama")),
			EffectiveDate: truncateToDay(effective),
			RecordedAt:    recorded,
		})
	}
	return ledger
}

// EncodeWorkbook renders the catalog and the ledger back into a full xlsx
// workbook, both sheets rewritten, ledger order preserved.
func EncodeWorkbook(products []entity.Product, ledger dominv.Ledger) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetProducts); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetMovements); err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}

	if err := writeRow(f, SheetProducts, 1, toAny(productHeader)); err != nil {
		return nil, err
	}
	for i, p := range products {
		if err := writeRow(f, SheetProducts, i+2, []any{p.Code, p.Name}); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, SheetMovements, 1, toAny(movementHeader)); err != nil {
		return nil, err
	}
	for i, m := range ledger {
		row := []any{
			m.EffectiveDate.Format("2006-01-02"),
			m.RecordedAt.Format("2006-01-02 15:04"),
			m.Kind.String(),
			m.ProductCode,
			m.ProductName,
			m.Quantity.String(),
			m.Unit,
			m.Note,
		}
		if err := writeRow(f, SheetMovements, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// headerIndex maps lowercased header names to their column index.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func cell(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func allBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseAny(s string, layouts []string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func writeRow(f *excelize.File, sheetName string, rowNum int, values []any) error {
	cellRef, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, cellRef, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheetName, rowNum, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
